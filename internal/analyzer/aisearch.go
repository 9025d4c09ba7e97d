package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/seoaudit/internal/keyword"
	"github.com/nao1215/seoaudit/internal/markup"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/prompt"
)

// minPhrases is the number of distinct phrases expected from a page that
// covers its topic broadly.
const minPhrases = 10

var listMarker = regexp.MustCompile(`^(\d+[.)]|[-•*])\s`)

// AISearchAnalyzer estimates how well AI assistants can quote the page.
// Each of its four checks is worth a quarter of the score.
type AISearchAnalyzer struct{}

// NewAISearchAnalyzer creates an AISearchAnalyzer.
func NewAISearchAnalyzer() *AISearchAnalyzer {
	return &AISearchAnalyzer{}
}

// Name returns the analyzer category.
func (a *AISearchAnalyzer) Name() model.CategoryName {
	return model.CategoryAISearchOptimization
}

// Analyze scores topical breadth, structure, FAQ and actionable content,
// then attaches the extracted phrases and prompts as metadata.
func (a *AISearchAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	score := 0
	issues := make([]model.Issue, 0, 5)

	if n := len(in.Phrases); n >= minPhrases {
		score += 25
		issues = append(issues, model.Success(fmt.Sprintf("%d relevant phrases identified", n)))
	} else {
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Only %d relevant phrases identified", n),
			"Cover the topic in more depth with related terms and questions"))
	}

	switch signals := structuralSignals(doc); signals {
	case 0:
		issues = append(issues, model.Warning(model.PriorityMedium,
			"Content has no structure AI assistants can extract",
			"Use lists, labelled sections ending with a colon and numbered steps"))
	case 1:
		score += 12
		issues = append(issues, model.Warning(model.PriorityLow,
			"Content has little extractable structure",
			"Combine lists with labelled sections or numbered steps"))
	default:
		score += 25
		issues = append(issues, model.Success("Content is well structured for AI extraction"))
	}

	if hasFAQ(doc) {
		score += 25
		issues = append(issues, model.Success("Question and answer content found"))
	} else {
		issues = append(issues, model.Warning(model.PriorityLow,
			"No FAQ or question-style content",
			"Add a FAQ section answering common questions about the topic"))
	}

	if actionableVocabulary.in(doc.Text) {
		score += 25
		issues = append(issues, model.Success("Actionable, instructional content found"))
	} else {
		issues = append(issues, model.Warning(model.PriorityLow,
			"No actionable instructions found",
			`Include practical guidance such as "passo a passo" or "dicas"`))
	}

	phrases := in.Phrases
	if phrases == nil {
		phrases = []model.Phrase{}
	}
	prompts := in.Prompts
	if prompts == nil {
		prompts = []string{}
	}
	scores := in.ContextScores
	if scores == nil {
		scores = map[keyword.BusinessContext]int{}
	}
	issues = append(issues, model.Success("AI search keyword analysis").
		WithMetadata("keywords", phrases).
		WithMetadata("prompts", prompts).
		WithMetadata("business_context", string(in.Context)).
		WithMetadata("context_scores", scores))

	return model.NewCategoryResult(a.Name(), score, issues)
}

// structuralSignals counts the kinds of extractable structure present:
// lists, colon-terminated labels and step vocabulary.
func structuralSignals(doc *markup.Document) int {
	lists, labels := doc.ListItems > 0, false
	for _, p := range doc.Paragraphs {
		if listMarker.MatchString(p) {
			lists = true
		}
		if strings.HasSuffix(p, ":") {
			labels = true
		}
	}

	n := 0
	for _, present := range []bool{lists, labels, stepVocabulary.in(doc.Text)} {
		if present {
			n++
		}
	}
	return n
}

// hasFAQ reports whether the page contains FAQ vocabulary or question headings.
func hasFAQ(doc *markup.Document) bool {
	if faqVocabulary.in(doc.Text) {
		return true
	}
	for level := 1; level <= 6; level++ {
		for _, h := range doc.H(level) {
			if strings.HasSuffix(h, "?") {
				return true
			}
		}
	}
	return false
}

// DetectCues derives the structural cues the prompt synthesizer uses.
func DetectCues(doc *markup.Document) prompt.Cues {
	return prompt.Cues{
		HasCTA:   ctaVocabulary.in(doc.Text),
		HasLists: doc.ListCount > 0,
		HasFAQ:   hasFAQ(doc),
	}
}
