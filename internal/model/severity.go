package model

import "fmt"

// IssueType classifies a single finding inside a category.
type IssueType string

const (
	// IssueSuccess marks a check the page passed.
	IssueSuccess IssueType = "success"
	// IssueWarning marks a check the page partially failed or could improve.
	IssueWarning IssueType = "warning"
	// IssueError marks a check the page failed outright.
	IssueError IssueType = "error"
)

// Priority represents how urgently an issue should be addressed.
// Higher values are more urgent, so priorities sort naturally.
type Priority int

const (
	// PriorityLow is used for informational findings and minor polish.
	PriorityLow Priority = iota

	// PriorityMedium is used for findings that noticeably affect ranking.
	PriorityMedium

	// PriorityHigh is used for findings that should be fixed first.
	PriorityHigh
)

// String returns the wire representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText encodes the priority as its lowercase name.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a lowercase priority name.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePriority converts a priority name back to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityLow, fmt.Errorf("unknown priority %q", s)
	}
}

// Issue is a single finding produced by a category analyzer.
type Issue struct {
	// Type is the outcome of the check.
	Type IssueType `json:"type"`

	// Message is a short human-readable description of the finding.
	Message string `json:"message"`

	// Priority tells the reader how urgently the finding matters.
	Priority Priority `json:"priority"`

	// Recommendation is an optional actionable hint.
	Recommendation string `json:"recommendation,omitempty"`

	// Metadata carries structured values attached to the finding,
	// such as the measured keyword density or extracted phrases.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Success returns a passed-check issue with low priority.
func Success(message string) Issue {
	return Issue{Type: IssueSuccess, Message: message, Priority: PriorityLow}
}

// Warning returns a warning issue.
func Warning(priority Priority, message, recommendation string) Issue {
	return Issue{Type: IssueWarning, Message: message, Priority: priority, Recommendation: recommendation}
}

// Error returns an error issue.
func Error(priority Priority, message, recommendation string) Issue {
	return Issue{Type: IssueError, Message: message, Priority: priority, Recommendation: recommendation}
}

// WithMetadata returns a copy of the issue carrying the given key/value pair.
func (i Issue) WithMetadata(key string, value any) Issue {
	meta := make(map[string]any, len(i.Metadata)+1)
	for k, v := range i.Metadata {
		meta[k] = v
	}
	meta[key] = value
	i.Metadata = meta
	return i
}
