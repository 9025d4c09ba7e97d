package markup

import "strings"

// Image is an <img> element found in the page.
type Image struct {
	// Src is the raw src attribute.
	Src string `json:"src"`

	// Alt is the trimmed alt attribute.
	Alt string `json:"alt"`

	// HasAlt is true when the alt attribute is present and not blank.
	HasAlt bool `json:"has_alt"`
}

// Anchor is an <a href> element found in the page.
type Anchor struct {
	Href   string `json:"href"`
	Text   string `json:"text"`
	Target string `json:"target,omitempty"`
	Rel    string `json:"rel,omitempty"`

	// Internal is true for links to the same host, root-relative paths,
	// fragments and other scheme-less relative paths.
	Internal bool `json:"internal"`

	// External is true for absolute http(s) links to a different host.
	External bool `json:"external"`
}

// Document is the structured view of a page's markup.
// It is built once per audit and must be treated as read-only.
type Document struct {
	// URL is the audited page address and Host its lowercase hostname.
	URL  string
	Host string

	// Raw is the original markup.
	Raw string

	// Text is the visible body text. Paragraph boundaries are preserved as
	// a single blank line ("\n\n"); all other whitespace is collapsed.
	Text string

	// Paragraphs are the non-empty blocks of Text.
	Paragraphs []string

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int

	Title           string
	MetaDescription string
	MetaRobots      string
	MetaViewport    string
	Canonical       string
	Lang            string
	HasDoctype      bool

	// OpenGraph maps og:* properties to their content.
	OpenGraph map[string]string

	// TwitterCard maps twitter:* names to their content.
	TwitterCard map[string]string

	// HasStructuredData is true for JSON-LD scripts or microdata scopes.
	HasStructuredData bool

	// Headings holds heading texts by level, index 1 through 6.
	Headings [7][]string

	Images  []Image
	Anchors []Anchor

	InternalLinks int
	ExternalLinks int

	// SemanticTags is the number of distinct HTML5 sectioning tags used.
	SemanticTags int

	// ListCount counts ul and ol elements, ListItems counts li elements.
	ListCount int
	ListItems int
}

// H returns the heading texts of the given level (1-6).
func (d *Document) H(level int) []string {
	if level < 1 || level > 6 {
		return nil
	}
	return d.Headings[level]
}

// Scheme returns "https" or "http" depending on the page URL.
func (d *Document) Scheme() string {
	if strings.HasPrefix(strings.ToLower(d.URL), "https://") {
		return "https"
	}
	return "http"
}
