// Package model defines the data structures shared across the audit engine.
//
// This package contains the following main types:
//   - Issue: a single finding with type, priority and optional recommendation
//   - CategoryResult: the score, status band and issues of one dimension
//   - AuditReport: the aggregated result of auditing a page
//   - Phrase: a ranked keyword or phrase extracted from page content
//
// The models are serializable to JSON for report output, the HTTP API and
// database storage.
package model
