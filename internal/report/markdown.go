package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/seoaudit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for sharing with
// stakeholders. Tables, alerts and a mermaid pie chart are produced with
// nao1215/markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	if report.Status == model.ReportCompleted {
		w.writeSummary(md, report)
		w.writeCategories(md, report)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteHistory outputs a table of past audits.
func (w *MarkdownWriter) WriteHistory(reports []*model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Audit History")
	md.PlainText("")

	if len(reports) == 0 {
		md.PlainText("No audits recorded.")
		return len(md.String()), md.Build()
	}

	md.PlainTextf("Page: `%s`", reports[0].URL)
	md.PlainText("")

	rows := make([][]string, len(reports))
	for i, r := range reports {
		score := "-"
		if r.Status == model.ReportCompleted {
			score = strconv.Itoa(r.OverallScore)
		}
		keyword := r.FocusKeyword
		if keyword == "" {
			keyword = "-"
		}
		rows[i] = []string{strconv.FormatInt(r.ID, 10), r.CreatedAt.Format(dateLayout), string(r.Status), score, keyword}
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Date", "Status", "Score", "Keyword"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("SEO Audit Report")
	md.PlainText("")

	rows := [][]string{
		{"URL", "`" + report.URL + "`"},
		{"Audit Date", report.CreatedAt.Format(dateLayout)},
		{"Status", statusText(report)},
	}
	if report.FocusKeyword != "" {
		rows = append(rows, []string{"Focus Keyword", report.FocusKeyword})
	}
	if report.Status == model.ReportCompleted {
		rows = append(rows, []string{"Overall Score", "**" + strconv.Itoa(report.OverallScore) + "/100**"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusText returns the status text based on report state.
func statusText(report *model.AuditReport) string {
	switch report.Status {
	case model.ReportCompleted:
		return "✅ Complete"
	case model.ReportFailed:
		return "❌ Failed - " + report.ErrorMessage
	default:
		return "⏳ " + string(report.Status)
	}
}

// statusIcon marks a category status band.
func statusIcon(status model.CategoryStatus) string {
	switch status {
	case model.StatusExcellent:
		return "🟢"
	case model.StatusGood:
		return "🔵"
	case model.StatusNeedsImprovement:
		return "🟡"
	default:
		return "🔴"
	}
}

// writeSummary writes the category score table, chart and alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Category Scores")
	md.PlainText("")

	rows := make([][]string, len(report.Categories))
	for i, c := range report.Categories {
		rows[i] = []string{
			c.Category.Label(),
			strconv.Itoa(c.Score),
			statusIcon(c.Status) + " " + string(c.Status),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Score", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	counts := report.IssueCounts()
	if counts[model.IssueError]+counts[model.IssueWarning]+counts[model.IssueSuccess] > 0 {
		w.writePieChart(md, counts)
	}

	w.writeAlert(md, report, counts)
}

// writePieChart writes a mermaid pie chart of issue types.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.IssueType]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Findings by Type"),
		piechart.WithShowData(true),
	)

	if n := counts[model.IssueError]; n > 0 {
		chart.LabelAndIntValue("Errors", uint64(n))
	}
	if n := counts[model.IssueWarning]; n > 0 {
		chart.LabelAndIntValue("Warnings", uint64(n))
	}
	if n := counts[model.IssueSuccess]; n > 0 {
		chart.LabelAndIntValue("Passed", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the overall score.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport, counts map[model.IssueType]int) {
	switch {
	case report.OverallScore < 50:
		md.Cautionf(
			"Overall score %d/100. %d error(s) require immediate attention.",
			report.OverallScore, counts[model.IssueError],
		)
	case report.OverallScore < 70:
		md.Warningf(
			"Overall score %d/100. Address the %d error(s) and %d warning(s) below.",
			report.OverallScore, counts[model.IssueError], counts[model.IssueWarning],
		)
	case counts[model.IssueError] > 0:
		md.Importantf(
			"Overall score %d/100, but %d error(s) remain.",
			report.OverallScore, counts[model.IssueError],
		)
	case counts[model.IssueWarning] > 0:
		md.Note("Only warnings were found. Work through them to reach an excellent score.")
	default:
		md.Tip("No problems detected. Keep the page up to date.")
	}
	md.PlainText("")
}

// writeCategories writes one findings table per category.
func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Findings")
	md.PlainText("")

	for _, c := range report.Categories {
		md.PlainText("### " + statusIcon(c.Status) + " " + c.Category.Label() + " (" + strconv.Itoa(c.Score) + "/100)")
		md.PlainText("")

		if len(c.Issues) == 0 {
			md.PlainText("No findings.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, len(c.Issues))
		for i, issue := range c.Issues {
			rec := issue.Recommendation
			if rec == "" {
				rec = "-"
			}
			rows[i] = []string{
				string(issue.Type),
				issue.Priority.String(),
				truncateString(issue.Message, 80),
				truncateString(rec, 80),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Type", "Priority", "Finding", "Recommendation"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [seoaudit](https://github.com/nao1215/seoaudit)*")
}
