package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/seoaudit/internal/model"
)

// Title and description length bands, in characters.
const (
	TitleMinLength       = 30
	TitleMaxLength       = 60
	DescriptionMinLength = 120
	DescriptionMaxLength = 160
)

// MetaTagsAnalyzer checks the title and meta description.
type MetaTagsAnalyzer struct{}

// NewMetaTagsAnalyzer creates a MetaTagsAnalyzer.
func NewMetaTagsAnalyzer() *MetaTagsAnalyzer {
	return &MetaTagsAnalyzer{}
}

// Name returns the analyzer category.
func (a *MetaTagsAnalyzer) Name() model.CategoryName {
	return model.CategoryMetaTags
}

// Analyze scores title and description length and focus phrase presence.
func (a *MetaTagsAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	score := 100
	issues := make([]model.Issue, 0, 4)

	titleLen := utf8.RuneCountInString(doc.Title)
	switch {
	case titleLen == 0:
		score -= 30
		issues = append(issues, model.Error(model.PriorityHigh,
			"Page title is missing",
			"Add a unique <title> between 30 and 60 characters that describes the page"))
	case titleLen > TitleMaxLength:
		score -= 15
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Title is too long (%d characters)", titleLen),
			"Keep the title within 60 characters so search engines do not truncate it"))
	case titleLen < TitleMinLength:
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Title is too short (%d characters)", titleLen),
			"Expand the title to at least 30 characters with the page's main topic"))
	default:
		issues = append(issues, model.Success(
			fmt.Sprintf("Title length is optimal (%d characters)", titleLen)))
	}

	descLen := utf8.RuneCountInString(doc.MetaDescription)
	switch {
	case descLen == 0:
		score -= 25
		issues = append(issues, model.Error(model.PriorityHigh,
			"Meta description is missing",
			"Add a meta description between 120 and 160 characters summarizing the page"))
	case descLen > DescriptionMaxLength:
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Meta description is too long (%d characters)", descLen),
			"Shorten the meta description to 160 characters or less"))
	case descLen < DescriptionMinLength:
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Meta description is too short (%d characters)", descLen),
			"Expand the meta description to at least 120 characters"))
	default:
		issues = append(issues, model.Success(
			fmt.Sprintf("Meta description length is optimal (%d characters)", descLen)))
	}

	if kw := in.FocusKeyword(); kw != "" {
		if strings.Contains(strings.ToLower(doc.Title), kw) {
			issues = append(issues, model.Success("Focus keyword appears in the title"))
		} else {
			score -= 10
			issues = append(issues, model.Warning(model.PriorityHigh,
				"Focus keyword is missing from the title",
				fmt.Sprintf("Include %q in the title, preferably near the beginning", kw)))
		}
		if strings.Contains(strings.ToLower(doc.MetaDescription), kw) {
			issues = append(issues, model.Success("Focus keyword appears in the meta description"))
		} else {
			score -= 5
			issues = append(issues, model.Warning(model.PriorityMedium,
				"Focus keyword is missing from the meta description",
				fmt.Sprintf("Mention %q naturally in the meta description", kw)))
		}
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}
