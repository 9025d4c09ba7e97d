package model

import (
	"math"
	"time"
)

// ReportStatus is the lifecycle state of an audit report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportAnalyzing ReportStatus = "analyzing"
	ReportCompleted ReportStatus = "completed"
	ReportFailed    ReportStatus = "failed"
)

// AuditReport is the result of auditing a single page.
//
// A completed report always carries every category produced by the run
// and an overall score equal to the rounded mean of the category scores.
// A failed report carries no categories, only the error kind and a
// user-facing message.
type AuditReport struct {
	// ID is the database identifier. Zero until the report is persisted.
	ID int64 `json:"id,omitempty"`

	// URL is the normalized address of the audited page.
	URL string `json:"url"`

	// FocusKeyword is the optional phrase the page should rank for.
	FocusKeyword string `json:"focus_keyword,omitempty"`

	// OverallScore is the rounded mean of all category scores.
	OverallScore int `json:"overall_score"`

	// Status is the lifecycle state of the report.
	Status ReportStatus `json:"status"`

	// Categories are the per-dimension results in report order.
	Categories []CategoryResult `json:"categories"`

	// ErrorKind classifies the failure when Status is failed.
	ErrorKind string `json:"error_kind,omitempty"`

	// ErrorMessage is the user-facing failure message.
	ErrorMessage string `json:"error_message,omitempty"`

	// CreatedAt is when the audit was requested.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is when the audit reached a terminal state.
	CompletedAt time.Time `json:"completed_at,omitzero"`
}

// NewAuditReport creates a pending report for the given page.
func NewAuditReport(url, focusKeyword string) *AuditReport {
	return &AuditReport{
		URL:          url,
		FocusKeyword: focusKeyword,
		Status:       ReportPending,
		Categories:   []CategoryResult{},
		CreatedAt:    time.Now(),
	}
}

// MarkAnalyzing moves the report into the analyzing state.
func (r *AuditReport) MarkAnalyzing() {
	r.Status = ReportAnalyzing
}

// Complete stores the category results and computes the overall score.
func (r *AuditReport) Complete(categories []CategoryResult) {
	if categories == nil {
		categories = []CategoryResult{}
	}
	r.Categories = categories
	r.OverallScore = OverallScore(categories)
	r.Status = ReportCompleted
	r.ErrorKind = ""
	r.ErrorMessage = ""
	r.CompletedAt = time.Now()
}

// Fail marks the report as failed. Partial category results are discarded.
func (r *AuditReport) Fail(kind, message string) {
	r.Categories = []CategoryResult{}
	r.OverallScore = 0
	r.Status = ReportFailed
	r.ErrorKind = kind
	r.ErrorMessage = message
	r.CompletedAt = time.Now()
}

// Finished reports whether the report reached a terminal state.
func (r *AuditReport) Finished() bool {
	return r.Status == ReportCompleted || r.Status == ReportFailed
}

// Category returns the result for the named category, if present.
func (r *AuditReport) Category(name CategoryName) (CategoryResult, bool) {
	for _, c := range r.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryResult{}, false
}

// IssueCounts returns the number of issues per type across all categories.
func (r *AuditReport) IssueCounts() map[IssueType]int {
	counts := map[IssueType]int{
		IssueSuccess: 0,
		IssueWarning: 0,
		IssueError:   0,
	}
	for _, c := range r.Categories {
		for _, issue := range c.Issues {
			counts[issue.Type]++
		}
	}
	return counts
}

// OverallScore returns the rounded arithmetic mean of the category scores.
// An empty slice scores zero.
func OverallScore(categories []CategoryResult) int {
	if len(categories) == 0 {
		return 0
	}
	sum := 0
	for _, c := range categories {
		sum += c.Score
	}
	return int(math.Round(float64(sum) / float64(len(categories))))
}
