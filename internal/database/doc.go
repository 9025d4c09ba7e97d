// Package database persists audit reports in SQLite.
//
// The pure-Go modernc.org/sqlite driver is used so the binary stays free of
// cgo. Each report is stored as one row in audit_reports with its
// categories in audit_categories and findings in audit_issues; issue
// metadata is kept as a JSON column. The HTTP API and the history command
// read from here.
package database
