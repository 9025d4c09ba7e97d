package prompt

import "strings"

// places are Brazilian cities and states recognized in page text, as
// lowercase needle and display name.
var places = []struct {
	needle  string
	display string
}{
	{"são paulo", "São Paulo"},
	{"rio de janeiro", "Rio de Janeiro"},
	{"belo horizonte", "Belo Horizonte"},
	{"porto alegre", "Porto Alegre"},
	{"curitiba", "Curitiba"},
	{"salvador", "Salvador"},
	{"recife", "Recife"},
	{"fortaleza", "Fortaleza"},
	{"brasília", "Brasília"},
	{"campinas", "Campinas"},
	{"goiânia", "Goiânia"},
	{"manaus", "Manaus"},
	{"belém", "Belém"},
	{"florianópolis", "Florianópolis"},
	{"vitória", "Vitória"},
	{"minas gerais", "Minas Gerais"},
	{"santa catarina", "Santa Catarina"},
	{"paraná", "Paraná"},
	{"bahia", "Bahia"},
	{"pernambuco", "Pernambuco"},
	{"rio grande do sul", "Rio Grande do Sul"},
	{"goiás", "Goiás"},
}

// findPlaces returns the display names of known places mentioned in text,
// in table order.
func findPlaces(text string) []string {
	text = strings.ToLower(text)
	found := make([]string, 0)
	for _, p := range places {
		if strings.Contains(text, p.needle) {
			found = append(found, p.display)
		}
	}
	return found
}
