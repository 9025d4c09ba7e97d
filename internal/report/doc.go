// Package report renders audit reports.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown with tables, alerts and a mermaid chart
//
// Writers implement the Writer interface so the CLI can pick one by flag.
// Each writer also renders the score history of a page.
package report
