package markup

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// breakMarker separates text blocks while the body is being flattened.
// It is a control character that never survives HTML tokenization as text.
const breakMarker = "\x1e"

// skippedElements are never rendered as text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
}

// blockElements start and end a paragraph in the flattened text.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "nav": true, "aside": true, "main": true, "li": true,
	"ul": true, "ol": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "table": true, "tr": true, "blockquote": true,
	"pre": true, "form": true, "figure": true, "dl": true, "dt": true, "dd": true,
}

// semanticElements are the HTML5 sectioning tags counted by SemanticTags.
var semanticElements = []string{"header", "nav", "main", "article", "section", "aside", "footer"}

// Extract parses raw markup into a Document. pageURL is used to classify
// links and to derive the host; malformed markup never fails, it simply
// yields fewer signals.
func Extract(raw, pageURL string) *Document {
	doc := &Document{
		URL:         pageURL,
		Raw:         raw,
		OpenGraph:   make(map[string]string),
		TwitterCard: make(map[string]string),
		Paragraphs:  []string{},
		Images:      []Image{},
		Anchors:     []Anchor{},
	}

	base, err := url.Parse(pageURL)
	if err == nil {
		doc.Host = strings.ToLower(base.Hostname())
	}

	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return doc
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			doc.HasDoctype = true
			break
		}
	}

	q := goquery.NewDocumentFromNode(root)

	doc.Title = collapse(q.Find("title").First().Text())
	doc.Lang = strings.TrimSpace(q.Find("html").First().AttrOr("lang", ""))
	doc.Canonical = strings.TrimSpace(q.Find(`link[rel="canonical"]`).First().AttrOr("href", ""))
	doc.HasStructuredData = q.Find(`script[type="application/ld+json"]`).Length() > 0 ||
		q.Find("[itemscope]").Length() > 0

	extractMeta(q, doc)
	extractHeadings(q, doc)
	extractImages(q, doc)
	extractAnchors(q, doc)

	for _, tag := range semanticElements {
		if q.Find(tag).Length() > 0 {
			doc.SemanticTags++
		}
	}
	doc.ListCount = q.Find("ul, ol").Length()
	doc.ListItems = q.Find("li").Length()

	body := q.Find("body").First()
	if body.Length() > 0 {
		doc.Text, doc.Paragraphs = flatten(body.Get(0))
	}
	doc.WordCount = len(strings.Fields(doc.Text))

	return doc
}

// extractMeta reads description, robots, viewport, Open Graph and Twitter tags.
func extractMeta(q *goquery.Document, doc *Document) {
	q.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(s.AttrOr("name", "")))
		property := strings.ToLower(strings.TrimSpace(s.AttrOr("property", "")))
		content := strings.TrimSpace(s.AttrOr("content", ""))

		switch name {
		case "description":
			if doc.MetaDescription == "" {
				doc.MetaDescription = collapse(content)
			}
		case "robots":
			doc.MetaRobots = content
		case "viewport":
			doc.MetaViewport = content
		}

		if strings.HasPrefix(property, "og:") && content != "" {
			doc.OpenGraph[property] = content
		}
		// Twitter tags are commonly published under either attribute.
		for _, key := range []string{name, property} {
			if strings.HasPrefix(key, "twitter:") && content != "" {
				doc.TwitterCard[key] = content
			}
		}
	})
}

func extractHeadings(q *goquery.Document, doc *Document) {
	q.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(goquery.NodeName(s)[1] - '0')
		doc.Headings[level] = append(doc.Headings[level], collapse(s.Text()))
	})
}

func extractImages(q *goquery.Document, doc *Document) {
	q.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt := collapse(s.AttrOr("alt", ""))
		doc.Images = append(doc.Images, Image{
			Src:    strings.TrimSpace(s.AttrOr("src", "")),
			Alt:    alt,
			HasAlt: alt != "",
		})
	})
}

func extractAnchors(q *goquery.Document, doc *Document) {
	q.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		text := collapse(s.Text())
		if text == "" {
			text = collapse(s.AttrOr("aria-label", s.AttrOr("title", "")))
		}

		a := Anchor{
			Href:   href,
			Text:   text,
			Target: strings.ToLower(strings.TrimSpace(s.AttrOr("target", ""))),
			Rel:    strings.ToLower(strings.TrimSpace(s.AttrOr("rel", ""))),
		}
		a.Internal, a.External = ClassifyLink(href, doc.Host)
		if a.Internal {
			doc.InternalLinks++
		}
		if a.External {
			doc.ExternalLinks++
		}
		doc.Anchors = append(doc.Anchors, a)
	})
}

// ClassifyLink reports whether href is internal or external relative to
// pageHost. Non-navigational hrefs (mailto:, tel:, javascript:, data:,
// empty) are neither.
func ClassifyLink(href, pageHost string) (internal, external bool) {
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)

	switch {
	case href == "":
		return false, false
	case strings.HasPrefix(lower, "mailto:"),
		strings.HasPrefix(lower, "tel:"),
		strings.HasPrefix(lower, "javascript:"),
		strings.HasPrefix(lower, "data:"):
		return false, false
	case strings.HasPrefix(href, "#"):
		return true, false
	case strings.HasPrefix(href, "//"):
		lower = "https:" + lower
	case strings.HasPrefix(href, "/"):
		return true, false
	}

	u, err := url.Parse(lower)
	if err != nil {
		return false, false
	}
	if u.Scheme == "" && u.Host == "" {
		return true, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false, false
	}
	if pageHost != "" && strings.EqualFold(u.Hostname(), pageHost) {
		return true, false
	}
	return false, true
}

// flatten renders the visible text under n. Block boundaries become
// paragraph separators and whitespace inside a block collapses to one space.
func flatten(n *html.Node) (string, []string) {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "br" {
				b.WriteString(breakMarker)
				return
			}
		case html.CommentNode:
			return
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			b.WriteString(breakMarker)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteString(breakMarker)
		}
	}
	walk(n)

	paragraphs := make([]string, 0)
	for _, chunk := range strings.Split(b.String(), breakMarker) {
		if p := collapse(chunk); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n"), paragraphs
}

// collapse trims s and replaces every whitespace run with a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
