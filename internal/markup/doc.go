// Package markup turns raw HTML into the read-only Document every analyzer
// consumes.
//
// Parsing uses golang.org/x/net/html for the tree and goquery for selector
// queries. The visible body text is rendered with script and style blocks
// removed, entities decoded, whitespace collapsed and paragraph boundaries
// kept as blank lines, so sentence and paragraph statistics stay meaningful.
package markup
