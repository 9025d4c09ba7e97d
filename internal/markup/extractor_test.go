package markup

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <title>  Bombas   Hidráulicas Industriais </title>
  <meta name="description" content="Venda de bombas &amp; peças">
  <meta name="robots" content="index, follow">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta property="og:title" content="Bombas">
  <meta name="twitter:card" content="summary">
  <link rel="canonical" href="https://example.com/bombas">
  <script type="application/ld+json">{"@type":"Organization"}</script>
  <style>body { color: red; }</style>
</head>
<body>
  <header><nav><a href="/">Início</a></nav></header>
  <main>
    <h1>Bombas hidráulicas</h1>
    <p>Primeiro parágrafo com   espaços
       e quebra de linha.</p>
    <script>var hidden = "não aparece";</script>
    <p>Segunda linha<br>depois do br &eacute; aqui.</p>
    <h2>Modelos</h2>
    <ul><li>Modelo A</li><li>Modelo B</li></ul>
    <img src="a.jpg" alt="Bomba hidráulica modelo A">
    <img src="b.jpg" alt="  ">
    <img src="c.jpg">
    <a href="https://example.com/contato">Contato</a>
    <a href="https://other.org/ref" target="_blank">Referência externa</a>
    <a href="#topo">Topo</a>
    <a href="mailto:vendas@example.com">Email</a>
    <a href="produtos.html">Produtos</a>
  </main>
  <footer>Rodapé</footer>
</body>
</html>`

func TestExtract(t *testing.T) {
	t.Parallel()

	doc := Extract(samplePage, "https://example.com/bombas")

	t.Run("head signals", func(t *testing.T) {
		t.Parallel()
		if doc.Title != "Bombas Hidráulicas Industriais" {
			t.Errorf("unexpected title %q", doc.Title)
		}
		if doc.MetaDescription != "Venda de bombas & peças" {
			t.Errorf("unexpected description %q", doc.MetaDescription)
		}
		if doc.MetaRobots != "index, follow" {
			t.Errorf("unexpected robots %q", doc.MetaRobots)
		}
		if doc.MetaViewport == "" {
			t.Error("expected viewport")
		}
		if doc.Canonical != "https://example.com/bombas" {
			t.Errorf("unexpected canonical %q", doc.Canonical)
		}
		if doc.Lang != "pt-BR" {
			t.Errorf("unexpected lang %q", doc.Lang)
		}
		if !doc.HasDoctype {
			t.Error("expected doctype")
		}
		if !doc.HasStructuredData {
			t.Error("expected structured data")
		}
		if doc.OpenGraph["og:title"] != "Bombas" {
			t.Errorf("unexpected open graph %v", doc.OpenGraph)
		}
		if doc.TwitterCard["twitter:card"] != "summary" {
			t.Errorf("unexpected twitter card %v", doc.TwitterCard)
		}
		if doc.Host != "example.com" {
			t.Errorf("unexpected host %q", doc.Host)
		}
	})

	t.Run("headings", func(t *testing.T) {
		t.Parallel()
		if len(doc.H(1)) != 1 || doc.H(1)[0] != "Bombas hidráulicas" {
			t.Errorf("unexpected h1 %v", doc.H(1))
		}
		if len(doc.H(2)) != 1 {
			t.Errorf("unexpected h2 %v", doc.H(2))
		}
		if doc.H(0) != nil || doc.H(7) != nil {
			t.Error("out of range levels should be nil")
		}
	})

	t.Run("images", func(t *testing.T) {
		t.Parallel()
		if len(doc.Images) != 3 {
			t.Fatalf("expected 3 images, got %d", len(doc.Images))
		}
		if !doc.Images[0].HasAlt || doc.Images[1].HasAlt || doc.Images[2].HasAlt {
			t.Errorf("unexpected alt flags %+v", doc.Images)
		}
	})

	t.Run("links", func(t *testing.T) {
		t.Parallel()
		// "/", contato, #topo and produtos.html are internal; mailto is neither.
		if doc.InternalLinks != 4 {
			t.Errorf("expected 4 internal links, got %d", doc.InternalLinks)
		}
		if doc.ExternalLinks != 1 {
			t.Errorf("expected 1 external link, got %d", doc.ExternalLinks)
		}
		if len(doc.Anchors) != 6 {
			t.Errorf("expected 6 anchors, got %d", len(doc.Anchors))
		}
	})

	t.Run("structure counts", func(t *testing.T) {
		t.Parallel()
		if doc.SemanticTags != 4 {
			t.Errorf("expected 4 semantic tags (header, nav, main, footer), got %d", doc.SemanticTags)
		}
		if doc.ListCount != 1 || doc.ListItems != 2 {
			t.Errorf("unexpected list counts %d/%d", doc.ListCount, doc.ListItems)
		}
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		if strings.Contains(doc.Text, "não aparece") || strings.Contains(doc.Text, "color: red") {
			t.Error("script or style content leaked into text")
		}
		if strings.Contains(doc.Text, "Bombas Hidráulicas Industriais") {
			t.Error("head title leaked into body text")
		}
		if !strings.Contains(doc.Text, "Primeiro parágrafo com espaços e quebra de linha.") {
			t.Errorf("whitespace not collapsed: %q", doc.Text)
		}
		if !strings.Contains(doc.Text, "Segunda linha\n\ndepois do br é aqui.") {
			t.Errorf("br or entity not handled: %q", doc.Text)
		}
		if strings.Contains(doc.Text, "\n\n\n") {
			t.Error("paragraph separators should be collapsed")
		}
		if doc.WordCount != len(strings.Fields(doc.Text)) {
			t.Errorf("word count mismatch: %d", doc.WordCount)
		}
		if len(doc.Paragraphs) == 0 || strings.Join(doc.Paragraphs, "\n\n") != doc.Text {
			t.Error("paragraphs should rebuild the text")
		}
	})
}

func TestExtractEmptyAndMalformed(t *testing.T) {
	t.Parallel()

	t.Run("empty markup", func(t *testing.T) {
		t.Parallel()
		doc := Extract("", "https://example.com")
		if doc.Title != "" || doc.WordCount != 0 || doc.HasDoctype {
			t.Errorf("unexpected signals in empty document: %+v", doc)
		}
	})

	t.Run("unclosed tags", func(t *testing.T) {
		t.Parallel()
		doc := Extract("<html><title>Oi</title><h1>Um<h1>Dois<p>texto", "https://example.com")
		if doc.Title != "Oi" {
			t.Errorf("unexpected title %q", doc.Title)
		}
		if len(doc.H(1)) != 2 {
			t.Errorf("expected 2 h1 headings, got %v", doc.H(1))
		}
	})
}

func TestClassifyLink(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		href     string
		internal bool
		external bool
	}{
		{"/sobre", true, false},
		{"#faq", true, false},
		{"contato.html", true, false},
		{"https://example.com/x", true, false},
		{"HTTPS://EXAMPLE.COM/x", true, false},
		{"https://blog.example.com/x", false, true},
		{"//cdn.other.net/lib.js", false, true},
		{"http://other.org", false, true},
		{"mailto:a@b.com", false, false},
		{"tel:+5511999999999", false, false},
		{"javascript:void(0)", false, false},
		{"", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.href, func(t *testing.T) {
			t.Parallel()
			internal, external := ClassifyLink(tc.href, "example.com")
			if internal != tc.internal || external != tc.external {
				t.Errorf("ClassifyLink(%q) = (%v, %v), want (%v, %v)",
					tc.href, internal, external, tc.internal, tc.external)
			}
		})
	}
}

func TestScheme(t *testing.T) {
	t.Parallel()

	if (&Document{URL: "https://a.com"}).Scheme() != "https" {
		t.Error("expected https")
	}
	if (&Document{URL: "http://a.com"}).Scheme() != "http" {
		t.Error("expected http")
	}
}
