package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/seoaudit/internal/model"
)

// Link count bands.
const (
	MinInternalLinks = 3
	MaxExternalLinks = 5

	// maxGenericAnchorRunes is the length at or below which anchor text is
	// considered non-descriptive.
	maxGenericAnchorRunes = 5
)

// LinksAnalyzer checks internal and external linking.
type LinksAnalyzer struct{}

// NewLinksAnalyzer creates a LinksAnalyzer.
func NewLinksAnalyzer() *LinksAnalyzer {
	return &LinksAnalyzer{}
}

// Name returns the analyzer category.
func (a *LinksAnalyzer) Name() model.CategoryName {
	return model.CategoryLinks
}

// Analyze scores link counts, anchor text quality and target safety.
func (a *LinksAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	score := 100
	issues := make([]model.Issue, 0, 4)

	switch internal := doc.InternalLinks; {
	case internal >= MinInternalLinks:
		issues = append(issues, model.Success(fmt.Sprintf("%d internal links", internal)))
	case internal > 0:
		score -= 10
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("Only %d internal links", internal),
			"Link to at least three related pages of your site"))
	default:
		score -= 25
		issues = append(issues, model.Error(model.PriorityHigh,
			"No internal links",
			"Link to related pages so visitors and crawlers can navigate the site"))
	}

	switch external := doc.ExternalLinks; {
	case external == 0:
		score -= 10
		issues = append(issues, model.Warning(model.PriorityLow,
			"No external links",
			"Cite one or two authoritative sources to support the content"))
	case external > MaxExternalLinks:
		score -= 10
		issues = append(issues, model.Warning(model.PriorityLow,
			fmt.Sprintf("Many external links (%d)", external),
			"Keep external links to the most relevant references"))
	default:
		issues = append(issues, model.Success(fmt.Sprintf("%d external links to references", external)))
	}

	generic, unsafe := 0, 0
	for _, anchor := range doc.Anchors {
		if !anchor.Internal && !anchor.External {
			continue
		}
		if !descriptiveAnchor(anchor.Text) {
			generic++
		}
		if anchor.External && anchor.Target == "_blank" &&
			!strings.Contains(anchor.Rel, "noopener") && !strings.Contains(anchor.Rel, "noreferrer") {
			unsafe++
		}
	}

	if generic > 0 {
		score -= min(3*generic, 15)
		issues = append(issues, model.Warning(model.PriorityLow,
			fmt.Sprintf("%d links have non-descriptive anchor text", generic),
			`Replace texts such as "clique aqui" with words describing the target page`))
	}
	if unsafe > 0 {
		score -= min(5*unsafe, 15)
		issues = append(issues, model.Warning(model.PriorityMedium,
			fmt.Sprintf("%d external links open a new tab without rel=\"noopener\"", unsafe),
			`Add rel="noopener noreferrer" to links with target="_blank"`))
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}

// descriptiveAnchor reports whether an anchor text describes its target.
func descriptiveAnchor(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if utf8.RuneCountInString(text) <= maxGenericAnchorRunes {
		return false
	}
	return !genericAnchors[text]
}
