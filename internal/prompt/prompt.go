package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/seoaudit/internal/keyword"
	"github.com/nao1215/seoaudit/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxPrompts caps the number of prompts returned by Synthesize.
	MaxPrompts = 25

	minPromptRunes = 8
	maxPromptRunes = 120

	// maxTopics is how many ranked phrases feed the templates.
	maxTopics = 3
)

// Cues are structural signals of the page that unlock extra prompt families.
type Cues struct {
	HasCTA   bool
	HasLists bool
	HasFAQ   bool
}

// Input is everything the synthesizer needs about a page.
type Input struct {
	// Phrases are the ranked keywords, best first.
	Phrases []model.Phrase

	// Context is the page's business category.
	Context keyword.BusinessContext

	Cues Cues

	// Text is the page text scanned for geographic mentions.
	Text string

	// Host is the page hostname used for brand prompts.
	Host string

	// Year stamps trend prompts. Callers inject it for reproducibility.
	Year int
}

// generator appends candidate prompts for the given topics.
type generator func(in Input, topics []string, acc *accumulator)

// generators run in order; earlier families win when the cap is reached.
var generators = []generator{
	contextPrompts,
	longTailPrompts,
	geographyPrompts,
	comparisonPrompts,
	problemPrompts,
	cuePrompts,
	brandPrompts,
	trendPrompts,
}

// Synthesize generates natural-language questions a user might ask an AI
// assistant that this page should answer. The result is deduplicated
// case-insensitively, every entry is 8 to 120 runes long, and at most
// MaxPrompts entries are returned.
func Synthesize(in Input) []string {
	topics := topicsFrom(in.Phrases)
	acc := &accumulator{seen: make(map[string]bool)}
	if len(topics) == 0 {
		return acc.items()
	}
	for _, gen := range generators {
		gen(in, topics, acc)
	}
	return acc.items()
}

// topicsFrom picks the best ranked phrases, preferring multi-word phrases.
func topicsFrom(phrases []model.Phrase) []string {
	texts := model.PhraseTexts(phrases)
	topics := make([]string, 0, maxTopics)
	for _, multi := range []bool{true, false} {
		for _, text := range texts {
			if len(topics) == maxTopics {
				return topics
			}
			if strings.Contains(text, " ") == multi && !contains(topics, text) {
				topics = append(topics, text)
			}
		}
	}
	return topics
}

type accumulator struct {
	list []string
	seen map[string]bool
}

func (a *accumulator) add(format string, args ...any) {
	p := strings.TrimSpace(fmt.Sprintf(format, args...))
	n := utf8.RuneCountInString(p)
	if n < minPromptRunes || n > maxPromptRunes {
		return
	}
	key := strings.ToLower(p)
	if a.seen[key] {
		return
	}
	a.seen[key] = true
	a.list = append(a.list, p)
}

func (a *accumulator) items() []string {
	if len(a.list) > MaxPrompts {
		return a.list[:MaxPrompts]
	}
	if a.list == nil {
		return []string{}
	}
	return a.list
}

var contextTemplates = map[keyword.BusinessContext][]string{
	keyword.ContextEcommerce: {
		"onde comprar %s com o melhor preço",
		"%s com frete grátis",
		"qual a melhor loja de %s",
	},
	keyword.ContextServices: {
		"empresa de %s confiável",
		"quanto custa %s",
		"melhor serviço de %s perto de mim",
	},
	keyword.ContextTechnology: {
		"qual a melhor solução de %s para empresas",
		"como implementar %s",
	},
	keyword.ContextEducation: {
		"melhor curso de %s",
		"onde aprender %s online",
	},
}

func contextPrompts(in Input, topics []string, acc *accumulator) {
	templates := contextTemplates[in.Context]
	for _, topic := range first(topics, 2) {
		for _, tpl := range templates {
			acc.add(tpl, topic)
		}
	}
}

func longTailPrompts(_ Input, topics []string, acc *accumulator) {
	for _, topic := range topics {
		acc.add("%s vale a pena?", topic)
		acc.add("como funciona %s?", topic)
	}
}

func comparisonPrompts(_ Input, topics []string, acc *accumulator) {
	for i := 0; i < len(topics); i++ {
		for j := i + 1; j < len(topics); j++ {
			acc.add("%s ou %s: qual escolher?", topics[i], topics[j])
		}
	}
}

func geographyPrompts(in Input, topics []string, acc *accumulator) {
	places := findPlaces(in.Text)
	if len(places) == 0 {
		acc.add("%s no Brasil", topics[0])
		return
	}
	for _, topic := range first(topics, 2) {
		for _, place := range first(places, 2) {
			acc.add("%s em %s", topic, place)
		}
	}
}

func problemPrompts(_ Input, topics []string, acc *accumulator) {
	for _, topic := range first(topics, 2) {
		acc.add("como resolver problemas com %s", topic)
	}
	acc.add("dicas para escolher %s", topics[0])
}

func cuePrompts(in Input, topics []string, acc *accumulator) {
	topic := topics[0]
	if in.Cues.HasCTA {
		acc.add("como contratar %s", topic)
	}
	if in.Cues.HasLists {
		acc.add("passo a passo para escolher %s", topic)
	}
	if in.Cues.HasFAQ {
		acc.add("perguntas frequentes sobre %s", topic)
	}
}

func brandPrompts(in Input, _ []string, acc *accumulator) {
	brand := BrandName(in.Host)
	if brand == "" {
		return
	}
	acc.add("%s é confiável?", brand)
	acc.add("avaliações sobre %s", brand)
}

func trendPrompts(in Input, topics []string, acc *accumulator) {
	if in.Year <= 0 {
		return
	}
	acc.add("tendências de %s em %d", topics[0], in.Year)
	acc.add("melhores opções de %s em %d", topics[0], in.Year)
}

// BrandName derives a display brand from a hostname, e.g.
// "www.loja-exemplo.com.br" becomes "Loja Exemplo".
func BrandName(host string) string {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	label, _, _ := strings.Cut(host, ".")
	label = strings.TrimSpace(strings.ReplaceAll(label, "-", " "))
	if label == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(label)
}

func first(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
