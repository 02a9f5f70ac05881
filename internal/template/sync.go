package template

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/galisofc/notificacondo/internal/models"
	"github.com/galisofc/notificacondo/internal/whatsapp"
)

// ErrSyncInProgress is returned when a reconciliation run is triggered while
// another one is still running.
var ErrSyncInProgress = errors.New("template sync already in progress")

// CatalogSource fetches the WABA template catalog.
type CatalogSource interface {
	ListTemplates(ctx context.Context) ([]whatsapp.Template, error)
}

// Notifier receives dashboard events. The websocket hub satisfies this.
type Notifier interface {
	BroadcastEvent(eventType string, data interface{})
}

// SyncFailure records a single template whose persistence write failed.
type SyncFailure struct {
	LocalID string `json:"local_id"`
	Slug    string `json:"slug"`
	Error   string `json:"error"`
}

// SyncReport summarizes a reconciliation or verification run. Counts are
// never collapsed into a bare boolean: partial success is a normal outcome.
type SyncReport struct {
	Linked     []Match       `json:"linked"`
	Unresolved []string      `json:"unresolved"`
	Cleared    []string      `json:"cleared"`
	Failures   []SyncFailure `json:"failures"`
}

// Syncer reconciles local templates against the WABA catalog. A run fetches
// both sides once and works on those snapshots; callers wanting fresh data
// trigger a new run. Only one run may be active at a time.
type Syncer struct {
	store    Store
	catalog  CatalogSource
	slugMap  map[string]string
	notifier Notifier
	inFlight atomic.Bool
}

func NewSyncer(store Store, catalog CatalogSource, slugMap map[string]string, notifier Notifier) *Syncer {
	if slugMap == nil {
		slugMap = SlugVendorNames
	}
	return &Syncer{
		store:    store,
		catalog:  catalog,
		slugMap:  slugMap,
		notifier: notifier,
	}
}

// Sync pairs unlinked local templates with approved catalog entries and
// persists the discovered links. Write failures on individual records do not
// abort the run; they are collected into the report.
func (s *Syncer) Sync(ctx context.Context) (*SyncReport, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.inFlight.Store(false)

	locals, catalog, err := s.fetchSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	result := Reconcile(locals, catalog, s.slugMap)

	report := &SyncReport{Unresolved: result.Unresolved}
	linked, failures := s.writeLinks(ctx, result.Matches)
	report.Linked = linked
	report.Failures = failures

	log.Printf("Template sync: %d linked, %d unresolved, %d failed",
		len(report.Linked), len(report.Unresolved), len(report.Failures))
	s.notify("sync_report", report)
	return report, nil
}

// Verify clears linkages whose vendor template no longer exists in the
// catalog. Zero orphans is the common, non-error outcome.
func (s *Syncer) Verify(ctx context.Context) (*SyncReport, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.inFlight.Store(false)

	locals, catalog, err := s.fetchSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}
	for _, orphan := range Orphans(locals, catalog) {
		if ctx.Err() != nil {
			break
		}
		if err := s.store.ClearLink(context.WithoutCancel(ctx), orphan.ID); err != nil {
			report.Failures = append(report.Failures, SyncFailure{
				LocalID: orphan.ID,
				Slug:    orphan.Slug,
				Error:   err.Error(),
			})
			continue
		}
		report.Cleared = append(report.Cleared, orphan.ID)
	}

	log.Printf("Template verify: %d orphan links cleared, %d failed",
		len(report.Cleared), len(report.Failures))
	s.notify("verify_report", report)
	return report, nil
}

// fetchSnapshots loads local templates and the vendor catalog concurrently.
// Both must succeed: reconciling against a partial catalog would silently
// look like "no matches", so a fetch failure is surfaced as such.
func (s *Syncer) fetchSnapshots(ctx context.Context) ([]models.MessageTemplate, []whatsapp.Template, error) {
	var (
		wg       sync.WaitGroup
		locals   []models.MessageTemplate
		catalog  []whatsapp.Template
		localErr error
		fetchErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		locals, localErr = s.store.List(ctx)
	}()
	go func() {
		defer wg.Done()
		catalog, fetchErr = s.catalog.ListTemplates(ctx)
	}()
	wg.Wait()

	if fetchErr != nil {
		return nil, nil, fmt.Errorf("fetch vendor catalog: %w", fetchErr)
	}
	if localErr != nil {
		return nil, nil, fmt.Errorf("list local templates: %w", localErr)
	}
	return locals, catalog, nil
}

type writeOutcome struct {
	match Match
	err   error
}

// writeLinks persists each discovered link independently. Writes already
// issued are allowed to finish even if ctx is cancelled; only not-yet-issued
// work is abandoned.
func (s *Syncer) writeLinks(ctx context.Context, matches []Match) ([]Match, []SyncFailure) {
	if len(matches) == 0 {
		return nil, nil
	}

	outcomes := make(chan writeOutcome, len(matches))
	issued := 0
	for _, m := range matches {
		if ctx.Err() != nil {
			break
		}
		issued++
		go func(m Match) {
			err := s.store.SetLink(context.WithoutCancel(ctx), m.LocalID, m.VendorName, m.VendorLanguage)
			outcomes <- writeOutcome{match: m, err: err}
		}(m)
	}

	var (
		linked   []Match
		failures []SyncFailure
	)
	for i := 0; i < issued; i++ {
		o := <-outcomes
		if o.err != nil {
			failures = append(failures, SyncFailure{
				LocalID: o.match.LocalID,
				Slug:    o.match.Slug,
				Error:   o.err.Error(),
			})
			continue
		}
		linked = append(linked, o.match)
	}
	return linked, failures
}

func (s *Syncer) notify(eventType string, data interface{}) {
	if s.notifier != nil {
		s.notifier.BroadcastEvent(eventType, data)
	}
}
