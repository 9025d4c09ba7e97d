package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nao1215/seoaudit/internal/keyword"
	"github.com/nao1215/seoaudit/internal/model"
)

func samplePhrases() []model.Phrase {
	return []model.Phrase{
		{Text: "bombas", Score: 40},
		{Text: "bombas hidráulicas", Score: 38},
		{Text: "manutenção de bombas", Score: 35},
		{Text: "peças", Score: 20},
		{Text: "válvulas industriais", Score: 18},
	}
}

func TestSynthesizeInvariants(t *testing.T) {
	t.Parallel()

	contexts := []keyword.BusinessContext{
		keyword.ContextEcommerce, keyword.ContextServices, keyword.ContextTechnology,
		keyword.ContextEducation, keyword.ContextGeneral,
	}

	for _, ctx := range contexts {
		t.Run(string(ctx), func(t *testing.T) {
			t.Parallel()
			prompts := Synthesize(Input{
				Phrases: samplePhrases(),
				Context: ctx,
				Cues:    Cues{HasCTA: true, HasLists: true, HasFAQ: true},
				Text:    "Atendemos São Paulo, Campinas e Curitiba",
				Host:    "www.hidro-forte.com.br",
				Year:    2026,
			})

			if len(prompts) == 0 || len(prompts) > MaxPrompts {
				t.Fatalf("expected 1..%d prompts, got %d", MaxPrompts, len(prompts))
			}
			seen := make(map[string]bool)
			for _, p := range prompts {
				n := utf8.RuneCountInString(p)
				if n < 8 || n > 120 {
					t.Errorf("prompt %q has %d runes", p, n)
				}
				key := strings.ToLower(p)
				if seen[key] {
					t.Errorf("duplicate prompt %q", p)
				}
				seen[key] = true
			}
		})
	}
}

func TestSynthesizeFamilies(t *testing.T) {
	t.Parallel()

	prompts := Synthesize(Input{
		Phrases: samplePhrases(),
		Context: keyword.ContextGeneral,
		Text:    "Entregamos em São Paulo",
		Host:    "hidroforte.com.br",
		Year:    2026,
	})

	expected := []string{
		"bombas hidráulicas vale a pena?",
		"como funciona manutenção de bombas?",
		"bombas hidráulicas em São Paulo",
		"bombas hidráulicas ou manutenção de bombas: qual escolher?",
		"Hidroforte é confiável?",
	}
	for _, want := range expected {
		if !containsPrompt(prompts, want) {
			t.Errorf("expected prompt %q in %v", want, prompts)
		}
	}
}

func TestSynthesizeWithoutPlacesUsesCountry(t *testing.T) {
	t.Parallel()

	prompts := Synthesize(Input{Phrases: samplePhrases(), Context: keyword.ContextGeneral})
	if !containsPrompt(prompts, "bombas hidráulicas no Brasil") {
		t.Errorf("expected country prompt in %v", prompts)
	}
	for _, p := range prompts {
		if strings.Contains(p, "tendências") {
			t.Errorf("trend prompt generated without a year: %q", p)
		}
	}
}

func TestSynthesizeNoPhrases(t *testing.T) {
	t.Parallel()

	prompts := Synthesize(Input{Host: "example.com", Year: 2026})
	if prompts == nil || len(prompts) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", prompts)
	}
}

func TestSynthesizeDropsOversizedPrompts(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("palavra ", 20) + "final"
	prompts := Synthesize(Input{
		Phrases: []model.Phrase{{Text: long, Score: 10}},
		Context: keyword.ContextServices,
		Year:    2026,
	})
	for _, p := range prompts {
		if utf8.RuneCountInString(p) > 120 {
			t.Errorf("oversized prompt kept: %q", p)
		}
	}
}

func TestBrandName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		host     string
		expected string
	}{
		{"www.loja-exemplo.com.br", "Loja Exemplo"},
		{"acme.com", "Acme"},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.host, func(t *testing.T) {
			t.Parallel()
			if got := BrandName(tc.host); got != tc.expected {
				t.Errorf("BrandName(%q) = %q, want %q", tc.host, got, tc.expected)
			}
		})
	}
}

func containsPrompt(prompts []string, want string) bool {
	for _, p := range prompts {
		if p == want {
			return true
		}
	}
	return false
}
