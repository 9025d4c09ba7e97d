package analyzer

import (
	"github.com/nao1215/seoaudit/internal/model"
)

// TechnicalAnalyzer checks machine-readable signals. Each present signal
// adds its weight; the weights sum to 100.
type TechnicalAnalyzer struct{}

// NewTechnicalAnalyzer creates a TechnicalAnalyzer.
func NewTechnicalAnalyzer() *TechnicalAnalyzer {
	return &TechnicalAnalyzer{}
}

// Name returns the analyzer category.
func (a *TechnicalAnalyzer) Name() model.CategoryName {
	return model.CategoryTechnical
}

type technicalSignal struct {
	present        bool
	weight         int
	found          string
	missing        string
	priority       model.Priority
	recommendation string
}

// Analyze scores structured data, canonical, social tags, robots and https.
func (a *TechnicalAnalyzer) Analyze(in *Input) model.CategoryResult {
	doc := in.Doc
	signals := []technicalSignal{
		{
			present: doc.HasStructuredData, weight: 25,
			found:          "Structured data (Schema.org) found",
			missing:        "No structured data found",
			priority:       model.PriorityMedium,
			recommendation: "Describe the business or content with JSON-LD Schema.org markup",
		},
		{
			present: doc.Canonical != "", weight: 20,
			found:          "Canonical URL declared",
			missing:        "No canonical URL declared",
			priority:       model.PriorityMedium,
			recommendation: `Add <link rel="canonical"> pointing to the preferred URL`,
		},
		{
			present: len(doc.OpenGraph) > 0, weight: 20,
			found:          "Open Graph tags found",
			missing:        "No Open Graph tags found",
			priority:       model.PriorityLow,
			recommendation: "Add og:title, og:description and og:image for social sharing",
		},
		{
			present: len(doc.TwitterCard) > 0, weight: 10,
			found:          "Twitter Card tags found",
			missing:        "No Twitter Card tags found",
			priority:       model.PriorityLow,
			recommendation: `Add <meta name="twitter:card" content="summary_large_image">`,
		},
		{
			present: doc.MetaRobots != "", weight: 10,
			found:          "Robots meta tag declared",
			missing:        "No robots meta tag declared",
			priority:       model.PriorityLow,
			recommendation: `Add <meta name="robots" content="index, follow"> to make indexing explicit`,
		},
		{
			present: doc.Scheme() == "https", weight: 15,
			found:          "Page is served over HTTPS",
			missing:        "Page is not served over HTTPS",
			priority:       model.PriorityMedium,
			recommendation: "Install a TLS certificate and redirect HTTP to HTTPS",
		},
	}

	score := 0
	issues := make([]model.Issue, 0, len(signals))
	for _, s := range signals {
		if s.present {
			score += s.weight
			issues = append(issues, model.Success(s.found))
			continue
		}
		issues = append(issues, model.Warning(s.priority, s.missing, s.recommendation))
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}
