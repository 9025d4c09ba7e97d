package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showSuccess controls whether passed checks are listed.
	showSuccess bool

	// verbose enables issue metadata in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowSuccess configures the writer to list passed checks too.
func WithShowSuccess(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showSuccess = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	if report.Status == model.ReportCompleted {
		w.writeSummary(&sb, report)
		w.writeCategories(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory outputs one line per past audit.
func (w *SimpleWriter) WriteHistory(reports []*model.AuditReport) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if len(reports) > 0 {
		sb.WriteString(fmt.Sprintf("AUDIT HISTORY: %s\n", reports[0].URL))
	} else {
		sb.WriteString("AUDIT HISTORY\n")
	}
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if len(reports) == 0 {
		sb.WriteString("  No audits recorded\n")
	}
	for _, r := range reports {
		line := fmt.Sprintf("  #%-5d %s  %-10s", r.ID, r.CreatedAt.Format(dateLayout), r.Status)
		if r.Status == model.ReportCompleted {
			line += fmt.Sprintf(" %3d/100", r.OverallScore)
		}
		if r.FocusKeyword != "" {
			line += fmt.Sprintf("  keyword=%q", r.FocusKeyword)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          SEO AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("URL:            %s\n", report.URL))
	if report.FocusKeyword != "" {
		sb.WriteString(fmt.Sprintf("Focus Keyword:  %s\n", report.FocusKeyword))
	}
	sb.WriteString(fmt.Sprintf("Audit Date:     %s\n", report.CreatedAt.Format(dateLayout)))

	switch report.Status {
	case model.ReportCompleted:
		sb.WriteString("Status:         Complete\n")
		sb.WriteString(fmt.Sprintf("Overall Score:  %d/100\n", report.OverallScore))
	case model.ReportFailed:
		sb.WriteString(fmt.Sprintf("Status:         FAILED - %s\n", report.ErrorMessage))
	default:
		sb.WriteString(fmt.Sprintf("Status:         %s\n", report.Status))
	}

	sb.WriteString("\n")
}

// writeSummary writes the per-category score table.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CATEGORY SCORES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, c := range report.Categories {
		sb.WriteString(fmt.Sprintf("  %-28s %3d  %-18s %s\n",
			c.Category.Label(), c.Score, c.Status, scoreBar(c.Score)))
	}
	sb.WriteString("\n")

	counts := report.IssueCounts()
	sb.WriteString(fmt.Sprintf("  ERRORS:   %d\n", counts[model.IssueError]))
	sb.WriteString(fmt.Sprintf("  WARNINGS: %d\n", counts[model.IssueWarning]))
	sb.WriteString(fmt.Sprintf("  PASSED:   %d\n", counts[model.IssueSuccess]))
	sb.WriteString("\n")
}

// scoreBar renders a ten-cell bar for a 0-100 score.
func scoreBar(score int) string {
	filled := score / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

// writeCategories writes the findings of each category, most urgent first.
func (w *SimpleWriter) writeCategories(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, c := range report.Categories {
		issues := w.visibleIssues(c.Issues)
		if len(issues) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s (%d/100)\n", c.Category.Label(), c.Score))
		for _, issue := range issues {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", issueIndicator(issue), issue.Message))
			if issue.Recommendation != "" {
				sb.WriteString(fmt.Sprintf("        -> %s\n", issue.Recommendation))
			}
			if w.verbose {
				for _, k := range sortedKeys(issue.Metadata) {
					sb.WriteString(fmt.Sprintf("        %s: %v\n", k, issue.Metadata[k]))
				}
			}
		}
		sb.WriteString("\n")
	}
}

// visibleIssues orders problems by priority and drops passed checks unless
// showSuccess is set.
func (w *SimpleWriter) visibleIssues(issues []model.Issue) []model.Issue {
	out := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Type == model.IssueSuccess && !w.showSuccess {
			continue
		}
		out = append(out, issue)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return issueRank(out[i]) > issueRank(out[j])
	})
	return out
}

// issueRank orders errors before warnings before successes, then by priority.
func issueRank(issue model.Issue) int {
	rank := int(issue.Priority)
	switch issue.Type {
	case model.IssueError:
		rank += 20
	case model.IssueWarning:
		rank += 10
	}
	return rank
}

// issueIndicator returns a visual indicator for the issue.
func issueIndicator(issue model.Issue) string {
	switch issue.Type {
	case model.IssueError:
		return "x"
	case model.IssueWarning:
		if issue.Priority == model.PriorityHigh {
			return "!!"
		}
		return "!"
	case model.IssueSuccess:
		return "+"
	default:
		return "?"
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by seoaudit\n")
	sb.WriteString("https://github.com/nao1215/seoaudit\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
