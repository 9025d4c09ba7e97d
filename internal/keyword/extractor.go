package keyword

import (
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nao1215/seoaudit/internal/model"
	"golang.org/x/net/html"
)

const (
	// MaxPhrases caps the number of ranked phrases returned by Extract.
	MaxPhrases = 80

	minTokenRunes  = 2
	minSingleRunes = 4
	longWordRunes  = 6

	singleFrequencyWeight = 2.0
	commercialBonus       = 15.0
	longWordBonus         = 5.0
	domainPatternBonus    = 20.0
	headlineBonus         = 10.0
)

// ngramWeights maps phrase length to its per-occurrence score.
var ngramWeights = map[int]float64{2: 3, 3: 5, 4: 7}

// Extract ranks single words and 2-4 word phrases found in the page's
// title, meta description and body text.
//
// Single words score twice their frequency; phrases score per occurrence
// by length. Both earn bonuses for commercial vocabulary and for appearing
// in the title or description; phrases also earn a bonus for matching a
// catalog pattern such as "manutenção de bombas". The result is sorted by
// score (ties by text) and capped at MaxPhrases.
func Extract(title, description, body string) []model.Phrase {
	titleTokens, descTokens := Tokenize(title), Tokenize(description)
	headlineWords := toSet(slices.Concat(titleTokens, descTokens)...)
	// Title and description are padded separately so a phrase spanning
	// both does not count as verbatim in either.
	headlines := []string{
		" " + strings.Join(titleTokens, " ") + " ",
		" " + strings.Join(descTokens, " ") + " ",
	}

	tokens := Tokenize(title + " " + description + " " + body)
	scores := make(map[string]float64)

	freq := make(map[string]int)
	for _, tok := range tokens {
		if !isStopWord(tok) {
			freq[tok]++
		}
	}
	for word, n := range freq {
		if utf8.RuneCountInString(word) < minSingleRunes {
			continue
		}
		score := float64(n) * singleFrequencyWeight
		if isCommercial(word) {
			score += commercialBonus
		}
		if utf8.RuneCountInString(word) >= longWordRunes {
			score += longWordBonus
		}
		if headlineWords[word] {
			score += headlineBonus
		}
		scores[word] = score
	}

	for n := 2; n <= 4; n++ {
		counts := make(map[string]int)
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i : i+n]
			if isStopWord(gram[0]) || isStopWord(gram[n-1]) {
				continue
			}
			counts[strings.Join(gram, " ")]++
		}
		for phrase, occurrences := range counts {
			score := float64(occurrences) * ngramWeights[n]
			if anyCommercial(strings.Fields(phrase)) {
				score += commercialBonus
			}
			if matchesDomainPattern(phrase) {
				score += domainPatternBonus
			}
			if inAny(headlines, " "+phrase+" ") {
				score += headlineBonus
			}
			scores[phrase] = score
		}
	}

	phrases := make([]model.Phrase, 0, len(scores))
	for text, score := range scores {
		phrases = append(phrases, model.Phrase{Text: text, Score: score})
	}
	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].Score != phrases[j].Score {
			return phrases[i].Score > phrases[j].Score
		}
		return phrases[i].Text < phrases[j].Text
	})

	if len(phrases) > MaxPhrases {
		phrases = phrases[:MaxPhrases]
	}
	return phrases
}

func inAny(texts []string, sub string) bool {
	for _, t := range texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// Tokenize lowercases and entity-decodes text, splits it on every rune
// that is not a letter or digit, and drops pure numbers and tokens shorter
// than two runes.
func Tokenize(text string) []string {
	text = strings.ToLower(html.UnescapeString(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenRunes || isNumeric(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// isStopWord reports whether the lowercase word is a function word.
func isStopWord(word string) bool {
	return stopWords[word]
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isCommercial reports whether token overlaps the commercial vocabulary.
// Short tokens only match when they contain a term, so "de" never matches
// "desconto".
func isCommercial(token string) bool {
	long := utf8.RuneCountInString(token) >= minSingleRunes
	for _, term := range commercialTerms {
		if strings.Contains(token, term) || (long && strings.Contains(term, token)) {
			return true
		}
	}
	return false
}

func anyCommercial(tokens []string) bool {
	for _, tok := range tokens {
		if isCommercial(tok) {
			return true
		}
	}
	return false
}

func matchesDomainPattern(phrase string) bool {
	for _, p := range domainPatterns {
		if p.MatchString(phrase) {
			return true
		}
	}
	return false
}
