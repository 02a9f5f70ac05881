package whatsapp

import (
	"encoding/json"
	"strings"
)

// TemplateStatus is the review status Meta reports for a message template.
// The set is closed on our side; anything the API sends that we do not
// recognize decodes to StatusUnknown instead of failing.
type TemplateStatus string

const (
	StatusApproved TemplateStatus = "APPROVED"
	StatusPending  TemplateStatus = "PENDING"
	StatusRejected TemplateStatus = "REJECTED"
	StatusDisabled TemplateStatus = "DISABLED"
	StatusInAppeal TemplateStatus = "IN_APPEAL"
	StatusUnknown  TemplateStatus = "UNKNOWN"
)

func ParseStatus(s string) TemplateStatus {
	switch TemplateStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusApproved:
		return StatusApproved
	case StatusPending:
		return StatusPending
	case StatusRejected:
		return StatusRejected
	case StatusDisabled:
		return StatusDisabled
	case StatusInAppeal:
		return StatusInAppeal
	default:
		return StatusUnknown
	}
}

func (s *TemplateStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// Component types used by the Graph API template format.
const (
	ComponentHeader  = "HEADER"
	ComponentBody    = "BODY"
	ComponentFooter  = "FOOTER"
	ComponentButtons = "BUTTONS"
)

// Header formats.
const (
	FormatText     = "TEXT"
	FormatImage    = "IMAGE"
	FormatDocument = "DOCUMENT"
)

// TemplateButton is a button inside a BUTTONS component.
type TemplateButton struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	URL         string   `json:"url,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Example     []string `json:"example,omitempty"`
}

// ComponentExample carries the sample values Meta requires for review when a
// component contains placeholders or media.
type ComponentExample struct {
	HeaderText   []string   `json:"header_text,omitempty"`
	HeaderHandle []string   `json:"header_handle,omitempty"`
	BodyText     [][]string `json:"body_text,omitempty"`
}

// TemplateComponent is one structural part of a WABA template.
type TemplateComponent struct {
	Type    string            `json:"type"`
	Format  string            `json:"format,omitempty"`
	Text    string            `json:"text,omitempty"`
	Example *ComponentExample `json:"example,omitempty"`
	Buttons []TemplateButton  `json:"buttons,omitempty"`
}

// Template is a WABA message template as returned by the Graph API catalog.
type Template struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Status         TemplateStatus      `json:"status"`
	Category       string              `json:"category"` // UTILITY, MARKETING, AUTHENTICATION
	Language       string              `json:"language"`
	QualityScore   *QualityScore       `json:"quality_score,omitempty"`
	RejectedReason string              `json:"rejected_reason,omitempty"`
	Components     []TemplateComponent `json:"components,omitempty"`
}

// QualityScore is Meta's delivery quality rating for an approved template.
type QualityScore struct {
	Score string `json:"score"` // GREEN, YELLOW, RED
}

// BodyText returns the text of the BODY component, or "" when absent.
func (t *Template) BodyText() string {
	for _, c := range t.Components {
		if c.Type == ComponentBody {
			return c.Text
		}
	}
	return ""
}

// CreateTemplateRequest is the payload for registering a new template with
// Meta for review.
type CreateTemplateRequest struct {
	Name       string              `json:"name"`
	Language   string              `json:"language"`
	Category   string              `json:"category"`
	Components []TemplateComponent `json:"components"`
}

// CreateTemplateResponse is Meta's answer to a template creation call.
type CreateTemplateResponse struct {
	ID       string         `json:"id"`
	Status   TemplateStatus `json:"status"`
	Category string         `json:"category"`
}

// templateListPage is one page of the catalog listing.
type templateListPage struct {
	Data   []Template `json:"data"`
	Paging struct {
		Cursors struct {
			Before string `json:"before"`
			After  string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}
