package analyzer

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
)

// Keyword density band, in percent of body words.
const (
	DensityMin = 0.5
	DensityMax = 2.5
)

// KeywordAnalyzer measures how well the page targets the focus phrase.
// It only runs when a focus phrase is supplied.
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer creates a KeywordAnalyzer.
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Name returns the analyzer category.
func (a *KeywordAnalyzer) Name() model.CategoryName {
	return model.CategoryKeywordOptimization
}

// Analyze adds points for the phrase in title (25), description (20),
// URL (15) and a body density inside the band (40).
func (a *KeywordAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	kw := in.FocusKeyword()
	score := 0
	issues := make([]model.Issue, 0, 4)

	if strings.Contains(strings.ToLower(doc.Title), kw) {
		score += 25
		issues = append(issues, model.Success("Focus keyword found in the title"))
	} else {
		issues = append(issues, model.Warning(model.PriorityHigh,
			"Focus keyword not found in the title",
			fmt.Sprintf("Add %q to the page title", kw)))
	}

	if strings.Contains(strings.ToLower(doc.MetaDescription), kw) {
		score += 20
		issues = append(issues, model.Success("Focus keyword found in the meta description"))
	} else {
		issues = append(issues, model.Warning(model.PriorityMedium,
			"Focus keyword not found in the meta description",
			fmt.Sprintf("Mention %q in the meta description", kw)))
	}

	slug := strings.ReplaceAll(kw, " ", "-")
	if strings.Contains(decodedURL(doc.URL), slug) {
		score += 15
		issues = append(issues, model.Success("Focus keyword found in the URL"))
	} else {
		issues = append(issues, model.Warning(model.PriorityMedium,
			"Focus keyword not found in the URL",
			fmt.Sprintf("Use a URL slug such as /%s", slug)))
	}

	density, ok := Density(doc.Text, kw)
	switch {
	case !ok:
		issues = append(issues, model.Warning(model.PriorityHigh,
			"Unable to compute keyword density: the page has no body text",
			"Add written content that covers the focus keyword"))
	case density >= DensityMin && density <= DensityMax:
		score += 40
		issues = append(issues, model.Success(
			fmt.Sprintf("Keyword density is %.1f%%, within the recommended range", density)).
			WithMetadata("density", density))
	case density < DensityMin:
		issues = append(issues, model.Warning(model.PriorityHigh,
			fmt.Sprintf("Keyword density is too low (%.1f%%)", density),
			"Use the focus keyword a few more times in the body text").
			WithMetadata("density", density))
	default:
		issues = append(issues, model.Warning(model.PriorityHigh,
			fmt.Sprintf("Keyword density is too high (%.1f%%)", density),
			"Reduce repetitions of the focus keyword to avoid keyword stuffing").
			WithMetadata("density", density))
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}

// decodedURL lowercases rawURL with percent-escapes decoded, so accented
// slugs compare equal to their encoded form.
func decodedURL(rawURL string) string {
	if decoded, err := url.PathUnescape(rawURL); err == nil {
		rawURL = decoded
	}
	return strings.ToLower(rawURL)
}

// Density returns the percentage of words in text that contain the first
// token of phrase, rounded to two decimals. ok is false when text or
// phrase has no words.
func Density(text, phrase string) (float64, bool) {
	words := strings.Fields(strings.ToLower(text))
	tokens := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 || len(tokens) == 0 {
		return 0, false
	}

	count := 0
	for _, w := range words {
		if strings.Contains(w, tokens[0]) {
			count++
		}
	}
	density := float64(count) / float64(len(words)) * 100
	return math.Round(density*100) / 100, true
}
