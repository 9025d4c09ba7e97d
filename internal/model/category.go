package model

// CategoryName identifies one scored quality dimension of an audit.
// The string values are stable and used in JSON and in the database.
type CategoryName string

const (
	CategoryMetaTags             CategoryName = "meta_tags"
	CategoryStructure            CategoryName = "structure"
	CategoryImages               CategoryName = "images"
	CategoryKeywordOptimization  CategoryName = "keyword_optimization"
	CategoryContentStructure     CategoryName = "content_structure"
	CategoryLinks                CategoryName = "links"
	CategoryTechnical            CategoryName = "technical"
	CategoryReadability          CategoryName = "readability"
	CategoryAISearchOptimization CategoryName = "ai_search_optimization"
	CategoryPerformance          CategoryName = "performance"
	CategoryMobileFriendliness   CategoryName = "mobile_friendliness"
)

// CategoryOrder is the order in which categories appear in a report.
var CategoryOrder = []CategoryName{
	CategoryMetaTags,
	CategoryStructure,
	CategoryImages,
	CategoryKeywordOptimization,
	CategoryContentStructure,
	CategoryLinks,
	CategoryTechnical,
	CategoryReadability,
	CategoryAISearchOptimization,
	CategoryPerformance,
	CategoryMobileFriendliness,
}

var categoryLabels = map[CategoryName]string{
	CategoryMetaTags:             "Meta Tags",
	CategoryStructure:            "Document Structure",
	CategoryImages:               "Images",
	CategoryKeywordOptimization:  "Keyword Optimization",
	CategoryContentStructure:     "Content Structure",
	CategoryLinks:                "Links",
	CategoryTechnical:            "Technical Signals",
	CategoryReadability:          "Readability",
	CategoryAISearchOptimization: "AI Search Optimization",
	CategoryPerformance:          "Performance",
	CategoryMobileFriendliness:   "Mobile Friendliness",
}

// Label returns the human-readable category name.
func (c CategoryName) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// External reports whether the category is derived from third-party
// scorecards. Those categories use the lower status thresholds.
func (c CategoryName) External() bool {
	return c == CategoryPerformance || c == CategoryMobileFriendliness
}

// CategoryStatus is the qualitative band a category score falls into.
type CategoryStatus string

const (
	StatusExcellent        CategoryStatus = "excellent"
	StatusGood             CategoryStatus = "good"
	StatusNeedsImprovement CategoryStatus = "needs_improvement"
	StatusCritical         CategoryStatus = "critical"
)

// thresholds holds the minimum scores for excellent, good and needs_improvement.
type thresholds struct {
	excellent, good, needsImprovement int
}

var (
	standardThresholds = thresholds{excellent: 90, good: 70, needsImprovement: 50}
	externalThresholds = thresholds{excellent: 80, good: 60, needsImprovement: 40}
)

// StatusFor derives the status band of a score for the given category.
func StatusFor(name CategoryName, score int) CategoryStatus {
	t := standardThresholds
	if name.External() {
		t = externalThresholds
	}
	switch {
	case score >= t.excellent:
		return StatusExcellent
	case score >= t.good:
		return StatusGood
	case score >= t.needsImprovement:
		return StatusNeedsImprovement
	default:
		return StatusCritical
	}
}

// CategoryResult is the scored outcome of one analyzer.
type CategoryResult struct {
	Category CategoryName   `json:"category"`
	Score    int            `json:"score"`
	Status   CategoryStatus `json:"status"`
	Issues   []Issue        `json:"issues"`
}

// NewCategoryResult clamps score into [0,100] and derives the status.
func NewCategoryResult(name CategoryName, score int, issues []Issue) CategoryResult {
	score = ClampScore(score)
	if issues == nil {
		issues = []Issue{}
	}
	return CategoryResult{
		Category: name,
		Score:    score,
		Status:   StatusFor(name, score),
		Issues:   issues,
	}
}

// Count returns how many issues of the given type the category holds.
func (r CategoryResult) Count(t IssueType) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Type == t {
			n++
		}
	}
	return n
}

// ClampScore bounds a score to the [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
