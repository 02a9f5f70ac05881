package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/galisofc/notificacondo/internal/models"
	"github.com/galisofc/notificacondo/internal/whatsapp"
)

// templateNamePattern is Meta's allowed character set for template names.
var templateNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// bodyVariablePattern matches a named placeholder in local body text, in
// either single-brace ({nome}) or double-brace ({{nome}}) form. Purely
// numeric tokens are positional slots, not variables, so the name must start
// with a letter or underscore.
var bodyVariablePattern = regexp.MustCompile(`\{\{([A-Za-z_]\w*)\}\}|\{([A-Za-z_]\w*)\}`)

// MaxHeaderLength is Meta's ceiling for TEXT header components.
const MaxHeaderLength = 60

// ComposeOverrides carries the caller-supplied pieces of a submission that
// are not part of the stored template row.
type ComposeOverrides struct {
	Name             string // vendor-facing name; defaults to the local slug
	Language         string // defaults to pt_BR
	Category         string // defaults to UTILITY
	HeaderType       string // TEXT, IMAGE, DOCUMENT or empty for none
	HeaderText       string
	HeaderMediaRef   string
	FooterText       string
	VariableExamples map[string]string
}

// Compose converts a local template into Meta's structured create-template
// request. Local named placeholders are renumbered to positional {{k}} slots
// in first-occurrence order, and every variable gets an example value since
// Meta rejects submissions without them.
func Compose(local *models.MessageTemplate, ov ComposeOverrides) (whatsapp.CreateTemplateRequest, error) {
	var req whatsapp.CreateTemplateRequest

	name := ov.Name
	if name == "" {
		name = local.Slug
	}
	if !templateNamePattern.MatchString(name) {
		return req, validationErr("name", "%q must contain only lowercase letters, digits and underscores", name)
	}

	if strings.TrimSpace(local.Content) == "" {
		return req, validationErr("content", "template body is empty")
	}

	req.Name = name
	req.Language = ov.Language
	if req.Language == "" {
		req.Language = "pt_BR"
	}
	req.Category = ov.Category
	if req.Category == "" {
		req.Category = "UTILITY"
	}

	header, err := composeHeader(ov)
	if err != nil {
		return req, err
	}
	if header != nil {
		req.Components = append(req.Components, *header)
	}

	body := composeBody(local.Content, ov.VariableExamples)
	req.Components = append(req.Components, body)

	if footer := strings.TrimSpace(ov.FooterText); footer != "" {
		req.Components = append(req.Components, whatsapp.TemplateComponent{
			Type: whatsapp.ComponentFooter,
			Text: footer,
		})
	}

	if buttons := composeButtons(local.Button); buttons != nil {
		req.Components = append(req.Components, *buttons)
	}

	return req, nil
}

func composeHeader(ov ComposeOverrides) (*whatsapp.TemplateComponent, error) {
	switch strings.ToUpper(ov.HeaderType) {
	case "", "NONE":
		return nil, nil
	case whatsapp.FormatText:
		text := SanitizeHeader(ov.HeaderText)
		if text == "" {
			return nil, nil
		}
		return &whatsapp.TemplateComponent{
			Type:   whatsapp.ComponentHeader,
			Format: whatsapp.FormatText,
			Text:   text,
		}, nil
	case whatsapp.FormatImage, whatsapp.FormatDocument:
		if ov.HeaderMediaRef == "" {
			return nil, validationErr("header_media", "media reference is required for %s headers", ov.HeaderType)
		}
		return &whatsapp.TemplateComponent{
			Type:   whatsapp.ComponentHeader,
			Format: strings.ToUpper(ov.HeaderType),
			Example: &whatsapp.ComponentExample{
				HeaderHandle: []string{ov.HeaderMediaRef},
			},
		}, nil
	default:
		return nil, validationErr("header_type", "unsupported header type %q", ov.HeaderType)
	}
}

func composeBody(content string, examples map[string]string) whatsapp.TemplateComponent {
	index := map[string]int{}
	var order []string

	text := bodyVariablePattern.ReplaceAllStringFunc(content, func(match string) string {
		name := strings.Trim(match, "{}")
		k, ok := index[name]
		if !ok {
			k = len(order) + 1
			index[name] = k
			order = append(order, name)
		}
		return "{{" + strconv.Itoa(k) + "}}"
	})

	component := whatsapp.TemplateComponent{
		Type: whatsapp.ComponentBody,
		Text: text,
	}

	if len(order) > 0 {
		sample := make([]string, len(order))
		for i, name := range order {
			if v, ok := examples[name]; ok && v != "" {
				sample[i] = v
			} else {
				sample[i] = "exemplo_" + name
			}
		}
		component.Example = &whatsapp.ComponentExample{BodyText: [][]string{sample}}
	}

	return component
}

func composeButtons(cfg *models.ButtonConfig) *whatsapp.TemplateComponent {
	if cfg == nil || cfg.Text == "" {
		return nil
	}

	var btn whatsapp.TemplateButton
	switch cfg.Type {
	case "url":
		btn = whatsapp.TemplateButton{Type: "URL", Text: cfg.Text, URL: cfg.BaseURL}
		if cfg.DynamicSuffix {
			btn.URL = strings.TrimSuffix(cfg.BaseURL, "/") + "/{{1}}"
			btn.Example = []string{strings.TrimSuffix(cfg.BaseURL, "/") + "/exemplo"}
		}
	case "call":
		btn = whatsapp.TemplateButton{Type: "PHONE_NUMBER", Text: cfg.Text, PhoneNumber: cfg.BaseURL}
	case "quick_reply":
		btn = whatsapp.TemplateButton{Type: "QUICK_REPLY", Text: cfg.Text}
	default:
		return nil
	}

	return &whatsapp.TemplateComponent{
		Type:    whatsapp.ComponentButtons,
		Buttons: []whatsapp.TemplateButton{btn},
	}
}

// emojiRanges covers the common emoji blocks Meta refuses inside TEXT
// headers.
var emojiRanges = [][2]rune{
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // extended-A
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0xFE00, 0xFE0F},   // variation selectors
	{0x200D, 0x200D},   // zero width joiner
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// SanitizeHeader prepares free text for a TEXT header component: emoji and
// asterisks are stripped, newlines and whitespace runs collapse to single
// spaces, and the result is trimmed and capped at MaxHeaderLength runes.
func SanitizeHeader(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isEmoji(r) || r == '*' {
			continue
		}
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		b.WriteRune(r)
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")

	runes := []rune(collapsed)
	if len(runes) > MaxHeaderLength {
		runes = runes[:MaxHeaderLength]
		collapsed = strings.TrimSpace(string(runes))
	}
	return collapsed
}
