package template

import (
	"regexp"
	"strconv"
	"strings"
)

// variablePattern matches named placeholders like {variavel} in template
// content.
var variablePattern = regexp.MustCompile(`\{(\w+)\}`)

// Render replaces placeholders in tmpl with concrete values for preview.
//
// Two dialects are supported: named `{variavel}` placeholders and the
// positional `{{n}}` form used by approved WABA templates. Positional slots
// resolve through params (1-indexed) and then the same value chain as named
// placeholders. A placeholder with no value anywhere is left untouched.
//
// The scan is a single left-to-right pass: text that came out of a
// substituted value is never re-scanned, so placeholder syntax inside a
// value cannot trigger further expansion.
func Render(tmpl string, params []string, values, defaults map[string]string) string {
	var out strings.Builder
	out.Grow(len(tmpl))

	i := 0
	for i < len(tmpl) {
		c := tmpl[i]
		if c != '{' {
			out.WriteByte(c)
			i++
			continue
		}

		// Double-brace dialect first: positional {{n}} or named {{variavel}}
		if i+1 < len(tmpl) && tmpl[i+1] == '{' {
			if end := strings.Index(tmpl[i+2:], "}}"); end >= 0 {
				inner := tmpl[i+2 : i+2+end]
				if n, err := strconv.Atoi(inner); err == nil && n > 0 {
					out.WriteString(resolvePositional(n, params, values, defaults))
					i += end + 4
					continue
				}
				if isIdentifier(inner) {
					if v, ok := lookup(inner, values, defaults); ok {
						out.WriteString(v)
					} else {
						out.WriteString("{{" + inner + "}}")
					}
					i += end + 4
					continue
				}
			}
			// Not a well-formed positional slot; emit one brace and rescan
			// from the second so a named placeholder right after still works.
			out.WriteByte('{')
			i++
			continue
		}

		// Named dialect: {identifier}
		if end := strings.IndexByte(tmpl[i+1:], '}'); end >= 0 {
			inner := tmpl[i+1 : i+1+end]
			if isIdentifier(inner) {
				out.WriteString(resolveNamed(inner, values, defaults))
				i += end + 2
				continue
			}
		}

		out.WriteByte('{')
		i++
	}

	return out.String()
}

func lookup(name string, values, defaults map[string]string) (string, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	if v, ok := defaults[name]; ok {
		return v, true
	}
	return "", false
}

func resolveNamed(name string, values, defaults map[string]string) string {
	if v, ok := lookup(name, values, defaults); ok {
		return v
	}
	return "{" + name + "}"
}

func resolvePositional(n int, params []string, values, defaults map[string]string) string {
	literal := "{{" + strconv.Itoa(n) + "}}"

	if n <= len(params) {
		if v, ok := lookup(params[n-1], values, defaults); ok {
			return v
		}
		return literal
	}

	// Slot beyond the declared parameters: fall back to generic sample text
	// so previews of externally authored templates still read naturally.
	idx := n - 1
	if idx < len(genericExamples) {
		return genericExamples[idx]
	}
	return literal
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// RenderBold converts WhatsApp inline bold markup (*texto*) into HTML <b>
// spans for dashboard display. Pairs are matched per line, left to right and
// non-overlapping. A lone asterisk used as a bullet marker at the start of a
// line is left alone.
func RenderBold(s string) string {
	lines := strings.Split(s, "\n")
	for li, line := range lines {
		lines[li] = boldLine(line)
	}
	return strings.Join(lines, "\n")
}

func boldLine(line string) string {
	var out strings.Builder
	out.Grow(len(line))

	i := 0
	for i < len(line) {
		c := line[i]
		if c != '*' {
			out.WriteByte(c)
			i++
			continue
		}

		// Bullet marker: "* " at the start of the line.
		if i == 0 && i+1 < len(line) && line[i+1] == ' ' {
			out.WriteByte(c)
			i++
			continue
		}

		rel := strings.IndexByte(line[i+1:], '*')
		if rel < 0 {
			out.WriteByte(c)
			i++
			continue
		}

		span := line[i+1 : i+1+rel]
		if span == "" {
			out.WriteString("**")
			i += 2
			continue
		}

		out.WriteString("<b>")
		out.WriteString(span)
		out.WriteString("</b>")
		i += rel + 2
	}

	return out.String()
}

// ExtractVariables returns the unique named placeholders in content, in
// first-occurrence order.
func ExtractVariables(content string) []string {
	matches := variablePattern.FindAllStringSubmatch(content, -1)
	seen := map[string]bool{}
	var vars []string
	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			vars = append(vars, name)
		}
	}
	return vars
}
