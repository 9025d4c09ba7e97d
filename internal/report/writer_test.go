package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/seoaudit/internal/model"
)

// createTestReport creates a completed report with sample findings.
func createTestReport() *model.AuditReport {
	report := model.NewAuditReport("https://example.com/bombas", "bombas industriais")
	report.ID = 7
	report.Complete([]model.CategoryResult{
		model.NewCategoryResult(model.CategoryMetaTags, 70, []model.Issue{
			model.Error(model.PriorityHigh, "Page title is missing", "Add a unique <title>"),
			model.Success("Meta description length is ideal"),
		}),
		model.NewCategoryResult(model.CategoryLinks, 90, []model.Issue{
			model.Warning(model.PriorityLow, "3 links use generic anchor text", "Describe the destination").
				WithMetadata("count", 3),
		}),
	})
	return report
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and scores", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"SEO AUDIT REPORT",
			"https://example.com/bombas",
			"Overall Score:  80/100",
			"CATEGORY SCORES",
			"Meta Tags",
			"ERRORS:   1",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("hides passed checks by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "Meta description length is ideal") {
			t.Error("passed check should be hidden")
		}
		if !strings.Contains(buf.String(), "-> Add a unique <title>") {
			t.Error("expected recommendation in output")
		}
	})

	t.Run("shows passed checks and metadata when asked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowSuccess(true), WithVerbose(true))
		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[+] Meta description length is ideal") {
			t.Error("expected passed check in output")
		}
		if !strings.Contains(buf.String(), "count: 3") {
			t.Error("expected metadata in verbose output")
		}
	})

	t.Run("writes failure message", func(t *testing.T) {
		t.Parallel()

		report := model.NewAuditReport("https://example.com", "")
		report.Fail("fetch_failed", "The site could not be reached.")

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "FAILED - The site could not be reached.") {
			t.Errorf("expected failure status, got %s", buf.String())
		}
		if strings.Contains(buf.String(), "CATEGORY SCORES") {
			t.Error("failed report should not list scores")
		}
	})

	t.Run("writes history", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteHistory([]*model.AuditReport{createTestReport()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "AUDIT HISTORY: https://example.com/bombas") {
			t.Error("expected history header")
		}
		if !strings.Contains(buf.String(), " 80/100") {
			t.Error("expected score in history line")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes compact JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.AuditReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.OverallScore != 80 {
			t.Errorf("expected overall 80, got %d", decoded.OverallScore)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("compact output should be a single line")
		}
	})

	t.Run("pretty prints", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"url\"") {
			t.Error("expected indented output")
		}
	})

	t.Run("wraps with version and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewFullJSONWriter(&buf, "v1.2.3").Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Version string         `json:"version"`
			Summary map[string]int `json:"summary"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", decoded.Version)
		}
		if decoded.Summary["error"] != 1 || decoded.Summary["warning"] != 1 {
			t.Errorf("unexpected summary %v", decoded.Summary)
		}
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteHistory(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("expected [], got %q", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# SEO Audit Report",
			"## Category Scores",
			"```mermaid",
			"### 🔵 Meta Tags (70/100)",
			"Page title is missing",
			"[!IMPORTANT]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes history table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteHistory([]*model.AuditReport{createTestReport()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "# Audit History") {
			t.Error("expected history heading")
		}
		if !strings.Contains(buf.String(), "bombas industriais") {
			t.Error("expected keyword column")
		}
	})
}

// TestTruncateString tests rune-aware truncation.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "abc", 10, "abc"},
		{"truncates with ellipsis", "abcdefghij", 6, "abc..."},
		{"counts runes not bytes", "ação rápida", 7, "ação..."},
		{"tiny limit", "abcdef", 2, "ab"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateString(tc.input, tc.maxLen); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
