package analyzer

import (
	"fmt"

	"github.com/nao1215/seoaudit/internal/model"
)

// longContentWords is the word count above which missing subheadings are
// reported.
const longContentWords = 300

// minSemanticTags is the number of distinct sectioning tags rewarded.
const minSemanticTags = 3

// StructureAnalyzer checks doctype, language and heading hierarchy.
type StructureAnalyzer struct{}

// NewStructureAnalyzer creates a StructureAnalyzer.
func NewStructureAnalyzer() *StructureAnalyzer {
	return &StructureAnalyzer{}
}

// Name returns the analyzer category.
func (a *StructureAnalyzer) Name() model.CategoryName {
	return model.CategoryStructure
}

// Analyze scores the document structure.
func (a *StructureAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	score := 100
	issues := make([]model.Issue, 0, 6)

	if doc.HasDoctype {
		issues = append(issues, model.Success("Document type declaration present"))
	} else {
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			"Document type declaration is missing",
			"Start the document with <!DOCTYPE html>"))
	}

	if doc.Lang != "" {
		issues = append(issues, model.Success(fmt.Sprintf("Page language declared (%s)", doc.Lang)))
	} else {
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			"Page language is not declared",
			`Add a lang attribute to the <html> element, e.g. <html lang="pt-BR">`))
	}

	switch h1 := len(doc.H(1)); {
	case h1 == 0:
		score -= 25
		issues = append(issues, model.Error(model.PriorityHigh,
			"No H1 heading found",
			"Add exactly one H1 that states the page's main topic"))
	case h1 > 1:
		score -= 15
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Multiple H1 headings found (%d)", h1),
			"Keep a single H1 and demote the others to H2"))
	default:
		issues = append(issues, model.Success("Exactly one H1 heading"))
	}

	if n := len(doc.H(2)); n > 0 {
		issues = append(issues, model.Success(fmt.Sprintf("%d H2 subheadings organize the content", n)))
	} else if doc.WordCount > longContentWords {
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			"Long content without H2 subheadings",
			"Break the content into sections with H2 subheadings"))
	}

	if n := len(doc.H(3)); n > 0 {
		issues = append(issues, model.Success(fmt.Sprintf("%d H3 headings add hierarchy", n)))
	} else if doc.WordCount > longContentWords {
		score -= 5
		issues = append(issues, model.Warning(model.PriorityLow,
			"Long content without H3 headings",
			"Use H3 headings to structure longer sections"))
	}

	if doc.SemanticTags >= minSemanticTags {
		issues = append(issues, model.Success(
			fmt.Sprintf("Semantic HTML5 elements used (%d kinds)", doc.SemanticTags)))
	} else {
		score -= 10
		issues = append(issues, model.Warning(model.PriorityLow,
			"Few semantic HTML5 elements",
			"Use header, nav, main, article, section and footer to describe the layout"))
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}
