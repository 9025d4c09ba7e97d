// Package fetch downloads the page to audit.
//
// The Fetcher sends browser-like headers, decodes gzip, deflate and brotli
// bodies, truncates oversized responses and falls back from https to http
// when the secure address cannot be reached. Failures wrap one of the
// package's sentinel errors so callers can map them to user messages.
package fetch
