package model

// Phrase is a ranked keyword or multi-word phrase extracted from a page.
type Phrase struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// PhraseTexts returns the texts of the phrases in order.
func PhraseTexts(phrases []Phrase) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.Text
	}
	return out
}
