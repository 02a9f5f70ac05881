package whatsapp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want TemplateStatus
	}{
		{"APPROVED", StatusApproved},
		{"approved", StatusApproved},
		{" Pending ", StatusPending},
		{"REJECTED", StatusRejected},
		{"DISABLED", StatusDisabled},
		{"IN_APPEAL", StatusInAppeal},
		{"PAUSED", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTemplateUnmarshalUnknownStatus(t *testing.T) {
	raw := `{
		"id": "123",
		"name": "encomenda_management_5",
		"status": "SOME_NEW_STATE",
		"category": "UTILITY",
		"language": "pt_BR"
	}`

	var tmpl Template
	require.NoError(t, json.Unmarshal([]byte(raw), &tmpl))
	assert.Equal(t, StatusUnknown, tmpl.Status)
	assert.Equal(t, "encomenda_management_5", tmpl.Name)
}

func TestTemplateBodyText(t *testing.T) {
	tmpl := Template{
		Components: []TemplateComponent{
			{Type: ComponentHeader, Format: FormatText, Text: "Encomenda"},
			{Type: ComponentBody, Text: "Olá {{1}}, chegou uma encomenda."},
			{Type: ComponentFooter, Text: "NotificaCondo"},
		},
	}
	assert.Equal(t, "Olá {{1}}, chegou uma encomenda.", tmpl.BodyText())

	empty := Template{Components: []TemplateComponent{{Type: ComponentHeader}}}
	assert.Equal(t, "", empty.BodyText())
}

func TestCatalogPageDecoding(t *testing.T) {
	raw := `{
		"data": [
			{"name": "a", "status": "APPROVED", "language": "pt_BR"},
			{"name": "b", "status": "REJECTED", "language": "pt_BR", "rejected_reason": "INVALID_FORMAT"}
		],
		"paging": {"cursors": {"before": "x", "after": "y"}, "next": "https://graph.facebook.com/page2"}
	}`

	var page templateListPage
	require.NoError(t, json.Unmarshal([]byte(raw), &page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, StatusApproved, page.Data[0].Status)
	assert.Equal(t, "INVALID_FORMAT", page.Data[1].RejectedReason)
	assert.Equal(t, "https://graph.facebook.com/page2", page.Paging.Next)
}
