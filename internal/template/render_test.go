package template

import (
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		params   []string
		values   map[string]string
		defaults map[string]string
		want     string
	}{
		{
			name: "no placeholders is identity",
			tmpl: "Bem-vindo ao condomínio.",
			want: "Bem-vindo ao condomínio.",
		},
		{
			name:     "named values with defaults fallback",
			tmpl:     "Olá {nome}, seu código é {codigo}",
			values:   map[string]string{"nome": "Ana"},
			defaults: map[string]string{"codigo": "0000"},
			want:     "Olá Ana, seu código é 0000",
		},
		{
			name: "unknown named placeholder left literal",
			tmpl: "Olá {desconhecido}!",
			want: "Olá {desconhecido}!",
		},
		{
			name:   "positional resolves through parameter list",
			tmpl:   "Olá {{1}}, bloco {{2}}",
			params: []string{"nome", "bloco"},
			values: map[string]string{"nome": "Ana", "bloco": "B"},
			want:   "Olá Ana, bloco B",
		},
		{
			name:   "positional beyond params uses generic example",
			tmpl:   "Morador: {{1}}",
			params: nil,
			want:   "Morador: " + genericExamples[0],
		},
		{
			name:   "positional beyond generic list left literal",
			tmpl:   "Slot {{99}} fica",
			params: []string{"nome"},
			want:   "Slot {{99}} fica",
		},
		{
			name:   "double-brace named placeholder",
			tmpl:   "Olá {{nome}}!",
			values: map[string]string{"nome": "Ana"},
			want:   "Olá Ana!",
		},
		{
			name: "double-brace named without value left literal",
			tmpl: "Olá {{nome}}!",
			want: "Olá {{nome}}!",
		},
		{
			name:     "substituted value is not re-expanded",
			tmpl:     "Olá {a}",
			values:   map[string]string{"a": "{b}"},
			defaults: map[string]string{"b": "nunca"},
			want:     "Olá {b}",
		},
		{
			name: "unmatched brace degrades to literal",
			tmpl: "metade {aberta e {nome}",
			values: map[string]string{
				"nome": "Ana",
			},
			want: "metade {aberta e Ana",
		},
		{
			name:   "both dialects in one template",
			tmpl:   "{saudacao} {{1}}",
			params: []string{"nome"},
			values: map[string]string{"saudacao": "Olá", "nome": "Ana"},
			want:   "Olá Ana",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.tmpl, tt.params, tt.values, tt.defaults)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSecondPassStable(t *testing.T) {
	values := map[string]string{"nome": "Ana"}
	first := Render("Olá {nome}", nil, values, nil)
	second := Render(first, nil, values, nil)
	if first != second {
		t.Errorf("second render mutated output: %q -> %q", first, second)
	}
}

func TestRenderBold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple span",
			in:   "*Aviso* importante",
			want: "<b>Aviso</b> importante",
		},
		{
			name: "bullet marker untouched",
			in:   "* item um",
			want: "* item um",
		},
		{
			name: "pairs resolved left to right non-overlapping",
			in:   "a *b* c *d* e",
			want: "a <b>b</b> c <b>d</b> e",
		},
		{
			name: "unclosed asterisk left alone",
			in:   "valor *aberto",
			want: "valor *aberto",
		},
		{
			name: "empty pair left literal",
			in:   "a ** b",
			want: "a ** b",
		},
		{
			name: "per line matching",
			in:   "* lista\n*negrito*",
			want: "* lista\n<b>negrito</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderBold(tt.in); got != tt.want {
				t.Errorf("RenderBold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractVariables(t *testing.T) {
	got := ExtractVariables("Olá {nome}, {nome} do {bloco}")
	want := []string{"nome", "bloco"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
