package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
)

// Readability limits.
const (
	MaxWordsPerSentence  = 20
	MaxWordsPerParagraph = 100
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// ReadabilityAnalyzer estimates how easy the body text is to read.
type ReadabilityAnalyzer struct{}

// NewReadabilityAnalyzer creates a ReadabilityAnalyzer.
func NewReadabilityAnalyzer() *ReadabilityAnalyzer {
	return &ReadabilityAnalyzer{}
}

// Name returns the analyzer category.
func (a *ReadabilityAnalyzer) Name() model.CategoryName {
	return model.CategoryReadability
}

// Analyze adds 40 points for short sentences, 30 for transition words and
// 30 for short paragraphs. A page without text scores zero.
func (a *ReadabilityAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	sentences := Sentences(doc.Text)
	if len(sentences) == 0 {
		return model.NewCategoryResult(a.Name(), 0, []model.Issue{
			model.Warning(model.PriorityMedium,
				"Unable to analyze readability: no text content found",
				"Add written content to the page"),
		})
	}

	score := 0
	issues := make([]model.Issue, 0, 3)

	avgSentence := float64(doc.WordCount) / float64(len(sentences))
	if avgSentence <= MaxWordsPerSentence {
		score += 40
		issues = append(issues, model.Success(
			fmt.Sprintf("Sentences are short (%.1f words on average)", avgSentence)))
	} else {
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Sentences are long (%.1f words on average)", avgSentence),
			"Keep sentences under 20 words"))
	}

	if transitionVocabulary.in(doc.Text) {
		score += 30
		issues = append(issues, model.Success("Transition words connect the ideas"))
	} else {
		issues = append(issues, model.Warning(model.PriorityLow,
			"No transition words found",
			`Use connectors such as "além disso", "portanto" and "por exemplo"`))
	}

	paragraphWords := 0
	for _, p := range doc.Paragraphs {
		paragraphWords += len(strings.Fields(p))
	}
	avgParagraph := float64(paragraphWords) / float64(max(len(doc.Paragraphs), 1))
	if avgParagraph <= MaxWordsPerParagraph {
		score += 30
		issues = append(issues, model.Success(
			fmt.Sprintf("Paragraphs are short (%.0f words on average)", avgParagraph)))
	} else {
		issues = append(issues, model.Warning(model.PriorityLow,
			fmt.Sprintf("Paragraphs are long (%.0f words on average)", avgParagraph),
			"Keep paragraphs under 100 words"))
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}

// Sentences splits text on terminal punctuation and drops empty pieces.
func Sentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
