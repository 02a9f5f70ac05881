package template

import (
	"strings"

	"github.com/galisofc/notificacondo/internal/models"
	"github.com/galisofc/notificacondo/internal/whatsapp"
)

// Match pairs a local template with an approved WABA template.
type Match struct {
	LocalID        string `json:"local_id"`
	Slug           string `json:"slug"`
	VendorName     string `json:"waba_template_name"`
	VendorLanguage string `json:"waba_language"`
}

// ReconcileResult is the outcome of pairing local templates against the
// fetched catalog. Unresolved templates are left unlinked.
type ReconcileResult struct {
	Matches    []Match  `json:"matches"`
	Unresolved []string `json:"unresolved"` // local template IDs
}

// Reconcile computes a best-effort pairing between unlinked local templates
// and the vendor catalog. Candidates are restricted to APPROVED templates
// and tried in three tiers, in order:
//
//  1. the curated slug-to-vendor-name map (slugMap),
//  2. case-insensitive equality of slug and vendor name,
//  3. substring containment in either direction, first catalog-order hit.
//
// Tier 3 is knowingly ambiguous when several vendor names contain the slug;
// the first hit wins and no similarity ranking is attempted. Already linked
// templates are skipped. Pure function: no writes are issued here.
func Reconcile(locals []models.MessageTemplate, catalog []whatsapp.Template, slugMap map[string]string) ReconcileResult {
	approved := make([]whatsapp.Template, 0, len(catalog))
	for _, vt := range catalog {
		if vt.Status == whatsapp.StatusApproved {
			approved = append(approved, vt)
		}
	}

	var result ReconcileResult
	for _, local := range locals {
		if local.Linked() {
			continue
		}

		vt, ok := findCandidate(local.Slug, approved, slugMap)
		if !ok {
			result.Unresolved = append(result.Unresolved, local.ID)
			continue
		}

		result.Matches = append(result.Matches, Match{
			LocalID:        local.ID,
			Slug:           local.Slug,
			VendorName:     vt.Name,
			VendorLanguage: vt.Language,
		})
	}

	return result
}

func findCandidate(slug string, approved []whatsapp.Template, slugMap map[string]string) (whatsapp.Template, bool) {
	if mapped, ok := slugMap[slug]; ok {
		for _, vt := range approved {
			if vt.Name == mapped {
				return vt, true
			}
		}
	}

	lowerSlug := strings.ToLower(slug)
	for _, vt := range approved {
		if strings.ToLower(vt.Name) == lowerSlug {
			return vt, true
		}
	}

	for _, vt := range approved {
		lowerName := strings.ToLower(vt.Name)
		if strings.Contains(lowerName, lowerSlug) || strings.Contains(lowerSlug, lowerName) {
			return vt, true
		}
	}

	return whatsapp.Template{}, false
}

// Orphans returns the local templates whose linked vendor template no longer
// exists in the catalog. Any catalog status counts as present: a link to a
// REJECTED or DISABLED template is stale, not orphaned.
func Orphans(locals []models.MessageTemplate, catalog []whatsapp.Template) []models.MessageTemplate {
	present := make(map[string]bool, len(catalog))
	for _, vt := range catalog {
		present[vt.Name] = true
	}

	var orphans []models.MessageTemplate
	for _, local := range locals {
		if local.Linked() && !present[*local.WabaTemplateName] {
			orphans = append(orphans, local)
		}
	}
	return orphans
}
