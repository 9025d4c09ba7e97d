package metrics

// Scorecard is the subset of a PageSpeed Insights (Lighthouse) response the
// engine consumes.
type Scorecard struct {
	LighthouseResult LighthouseResult `json:"lighthouseResult"`
}

// LighthouseResult holds category scores and individual audits.
type LighthouseResult struct {
	Categories map[string]CategoryScore `json:"categories"`
	Audits     map[string]Audit         `json:"audits"`
}

// CategoryScore is a Lighthouse category score in [0,1]. Score is nil when
// Lighthouse could not compute it.
type CategoryScore struct {
	ID    string   `json:"id"`
	Title string   `json:"title,omitempty"`
	Score *float64 `json:"score"`
}

// Audit is a single Lighthouse audit.
type Audit struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Score        *float64 `json:"score"`
	DisplayValue string   `json:"displayValue,omitempty"`
	NumericValue float64  `json:"numericValue,omitempty"`
}

// Lighthouse category identifiers.
const (
	CategoryPerformance   = "performance"
	CategoryAccessibility = "accessibility"
	CategoryBestPractices = "best-practices"
	CategorySEO           = "seo"
)

// CategoryScore returns the score of the named category in [0,1].
func (s *Scorecard) CategoryScore(id string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	c, ok := s.LighthouseResult.Categories[id]
	if !ok || c.Score == nil {
		return 0, false
	}
	return *c.Score, true
}

// Audit returns the named audit.
func (s *Scorecard) Audit(id string) (Audit, bool) {
	if s == nil {
		return Audit{}, false
	}
	a, ok := s.LighthouseResult.Audits[id]
	return a, ok
}

// External bundles the optional desktop and mobile scorecards of a page.
// A nil side means the metrics service returned nothing for it.
type External struct {
	Desktop *Scorecard `json:"desktop,omitempty"`
	Mobile  *Scorecard `json:"mobile,omitempty"`
}

// Empty reports whether neither scorecard is present.
func (e External) Empty() bool {
	return e.Desktop == nil && e.Mobile == nil
}
