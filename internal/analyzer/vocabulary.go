package analyzer

import (
	"regexp"
	"strings"
)

// vocabulary matches any of a list of lowercase words or phrases as whole
// words inside lowercased text.
type vocabulary struct {
	pattern *regexp.Regexp
}

func newVocabulary(terms ...string) vocabulary {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return vocabulary{
		pattern: regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`),
	}
}

// in reports whether text mentions any term. text is lowercased here.
func (v vocabulary) in(text string) bool {
	return v.pattern.MatchString(strings.ToLower(text))
}

var (
	ctaVocabulary = newVocabulary(
		"entre em contato", "fale conosco", "solicite", "orçamento", "compre",
		"comprar", "saiba mais", "agende", "ligue", "whatsapp", "cadastre-se",
		"assine", "baixe", "contrate", "peça já", "peça agora", "contact us",
		"buy now", "sign up",
	)

	transitionVocabulary = newVocabulary(
		"além disso", "portanto", "no entanto", "por exemplo", "assim", "ou seja",
		"em primeiro lugar", "finalmente", "por isso", "contudo", "dessa forma",
		"enquanto", "também", "porém", "em seguida", "por fim", "ademais",
		"consequentemente", "todavia",
	)

	faqVocabulary = newVocabulary(
		"perguntas frequentes", "faq", "dúvidas", "dúvidas frequentes",
		"como funciona", "o que é", "por que", "quanto custa", "qual é",
	)

	actionableVocabulary = newVocabulary(
		"como fazer", "passo a passo", "guia", "dicas", "tutorial", "aprenda",
		"veja como", "siga", "confira", "descubra como",
	)

	stepVocabulary = newVocabulary(
		"passo", "etapa", "primeiro", "segundo", "terceiro", "em seguida", "por fim",
	)
)

// genericAnchors are link texts that say nothing about the target.
var genericAnchors = map[string]bool{
	"clique aqui": true,
	"clique":      true,
	"aqui":        true,
	"leia mais":   true,
	"saiba mais":  true,
	"veja mais":   true,
	"veja":        true,
	"mais":        true,
	"link":        true,
	"acesse":      true,
	"click here":  true,
	"read more":   true,
	"here":        true,
}
