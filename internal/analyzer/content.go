package analyzer

import (
	"fmt"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
)

// longParagraphWords is the size above which a paragraph is hard to scan.
const longParagraphWords = 100

// ContentAnalyzer checks content length, lists, paragraphs and calls to action.
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a ContentAnalyzer.
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// Name returns the analyzer category.
func (a *ContentAnalyzer) Name() model.CategoryName {
	return model.CategoryContentStructure
}

// Analyze scores content structure.
func (a *ContentAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	score := 100
	issues := make([]model.Issue, 0, 4)

	words := doc.WordCount
	switch {
	case words >= 600:
		issues = append(issues, model.Success(fmt.Sprintf("Comprehensive content (%d words)", words)))
	case words >= 300:
		score -= 5
		issues = append(issues, model.Success(fmt.Sprintf("Good content length (%d words)", words)))
	case words >= 150:
		score -= 20
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Content is thin (%d words)", words),
			"Expand the page to at least 300 words of useful content"))
	default:
		score -= 35
		issues = append(issues, model.Error(model.PriorityHigh,
			fmt.Sprintf("Very little content (%d words)", words),
			"Write at least 300 words that answer the visitor's questions"))
	}

	if doc.ListCount > 0 {
		issues = append(issues, model.Success(fmt.Sprintf("%d lists make the content scannable", doc.ListCount)))
	} else {
		score -= 10
		issues = append(issues, model.Warning(model.PriorityLow,
			"No bulleted or numbered lists",
			"Use lists for features, steps or benefits"))
	}

	long := 0
	for _, p := range doc.Paragraphs {
		if len(strings.Fields(p)) > longParagraphWords {
			long++
		}
	}
	if long > 0 {
		score -= min(5*long, 15)
		issues = append(issues, model.Warning(model.PriorityLow,
			fmt.Sprintf("%d paragraphs are longer than %d words", long, longParagraphWords),
			"Split long paragraphs into shorter ones"))
	}

	if ctaVocabulary.in(doc.Text) {
		issues = append(issues, model.Success("Call to action found"))
	} else {
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			"No call to action found",
			`Tell visitors what to do next, e.g. "Solicite um orçamento" or "Fale conosco"`))
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}
