package keyword

import (
	"regexp"
	"strings"
)

// contextMatcher counts indicator hits for one business category.
type contextMatcher struct {
	context BusinessContext
	pattern *regexp.Regexp
}

// contextMatchers are compiled once from contextIndicators. Each pattern
// requires a non-letter (or start of text) before the indicator stem.
var contextMatchers = compileMatchers()

func compileMatchers() []contextMatcher {
	matchers := make([]contextMatcher, 0, len(contextIndicators))
	for _, ci := range contextIndicators {
		quoted := make([]string, len(ci.terms))
		for i, term := range ci.terms {
			quoted[i] = regexp.QuoteMeta(term)
		}
		matchers = append(matchers, contextMatcher{
			context: ci.context,
			pattern: regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)`),
		})
	}
	return matchers
}

// Classify returns the business category whose indicators occur most often
// in text. No hits, or a tie for the top count, yields ContextGeneral.
func Classify(text string) BusinessContext {
	return fromScores(Scores(text))
}

// fromScores picks the category with the unique highest hit count, or
// ContextGeneral when nothing matched or the top count is tied.
func fromScores(scores map[BusinessContext]int) BusinessContext {
	best := ContextGeneral
	bestHits := 0
	tied := false
	for context, hits := range scores {
		switch {
		case hits > bestHits:
			best, bestHits, tied = context, hits, false
		case hits == bestHits && hits > 0:
			tied = true
		}
	}

	if bestHits == 0 || tied {
		return ContextGeneral
	}
	return best
}

// Scores returns the indicator hit count of every business category.
func Scores(text string) map[BusinessContext]int {
	text = strings.ToLower(text)
	scores := make(map[BusinessContext]int, len(contextMatchers))
	for _, m := range contextMatchers {
		scores[m.context] = len(m.pattern.FindAllStringIndex(text, -1))
	}
	return scores
}
