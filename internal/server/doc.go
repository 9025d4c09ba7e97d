// Package server exposes the audit engine over HTTP.
//
// Audits are jobs: POST /api/audits stores a pending report and answers 202
// with its ID, the audit runs in the background, and clients poll
// GET /api/audits/:id until the status is completed or failed.
//
//	GET  /api/health
//	POST /api/audits          {"url": "...", "keyword": "..."}
//	GET  /api/audits/:id
//	GET  /api/audits?url=...  history of one page, newest first
//	GET  /api/audits          every audited URL
//
// Requests are limited per client IP with a token bucket.
package server
