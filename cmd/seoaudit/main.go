// Package main provides the entry point for the seoaudit CLI.
//
// seoaudit audits web pages for search engine and AI assistant visibility.
// It scores meta tags, structure, images, keywords, content, links,
// technical signals, readability, AI-search readiness, performance and
// mobile friendliness, and lists actionable findings.
//
// Usage:
//
//	seoaudit audit <url> [-k keyword]
//	seoaudit history <url>
//	seoaudit serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
