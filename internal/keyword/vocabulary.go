package keyword

import "regexp"

// stopWords are function words that never rank as keywords on their own
// and never start or end a multi-word phrase.
var stopWords = toSet(
	// Portuguese
	"a", "ao", "aos", "as", "à", "às", "até", "com", "como", "da", "das", "de",
	"dela", "dele", "do", "dos", "e", "é", "ela", "ele", "eles", "em", "entre",
	"era", "essa", "esse", "esta", "está", "este", "eu", "foi", "há", "isso",
	"isto", "já", "lhe", "mais", "mas", "me", "mesmo", "meu", "minha", "muito",
	"na", "nas", "não", "nem", "no", "nos", "nós", "nossa", "nosso", "num",
	"numa", "o", "os", "ou", "para", "pela", "pelas", "pelo", "pelos", "por",
	"qual", "quando", "que", "quem", "se", "sem", "ser", "seu", "seus", "só",
	"sua", "suas", "também", "te", "tem", "têm", "ter", "um", "uma", "umas",
	"uns", "você", "vocês", "vos", "sobre", "são", "pode", "podem", "todo",
	"toda", "todos", "todas", "aqui", "onde", "cada", "depois", "antes",
	// English
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"her", "was", "one", "our", "out", "his", "has", "have", "this", "that",
	"with", "from", "they", "will", "your", "what", "about", "which", "their",
	"of", "to", "in", "is", "it", "on", "or", "an", "as", "at", "be", "by",
)

// commercialTerms signal purchase or hiring intent.
var commercialTerms = []string{
	"comprar", "compra", "preço", "preços", "orçamento", "venda", "vendas",
	"loja", "promoção", "desconto", "oferta", "serviço", "serviços",
	"contratar", "melhor", "barato", "frete", "entrega", "atendimento",
	"empresa", "profissional", "qualidade", "garantia", "fornecedor",
}

// domainPatterns match phrases typical of product and service catalogs.
var domainPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\p{L}+ (hidráulicos|hidráulicas|industriais|automotivos|automotivas|elétricos|elétricas)$`),
	regexp.MustCompile(`^(serviços|serviço|venda|manutenção|conserto|instalação|aluguel|loja|curso|empresa) de \p{L}+$`),
}

// BusinessContext is the coarse business category of a page.
type BusinessContext string

const (
	ContextEcommerce     BusinessContext = "ecommerce"
	ContextServices      BusinessContext = "services"
	ContextTechnology    BusinessContext = "technology"
	ContextEducation     BusinessContext = "education"
	ContextHealth        BusinessContext = "health"
	ContextFinance       BusinessContext = "finance"
	ContextManufacturing BusinessContext = "manufacturing"
	ContextLegal         BusinessContext = "legal"
	ContextRealEstate    BusinessContext = "real_estate"
	ContextAutomotive    BusinessContext = "automotive"
	ContextGeneral       BusinessContext = "general"
)

// contextIndicators lists indicator stems per category in tie-break order.
var contextIndicators = []struct {
	context BusinessContext
	terms   []string
}{
	{ContextEcommerce, []string{"loja", "comprar", "compre", "carrinho", "frete", "produto", "promoção", "desconto", "oferta", "checkout", "parcel", "entrega"}},
	{ContextServices, []string{"serviço", "serviços", "consultoria", "orçamento", "atendimento", "manutenção", "instalação", "conserto", "assistência", "agende", "profissionais", "técnico"}},
	{ContextTechnology, []string{"software", "sistema", "tecnologia", "aplicativo", "nuvem", "cloud", "plataforma", "digital", "desenvolvimento", "api", "dados", "automação"}},
	{ContextEducation, []string{"curso", "aula", "escola", "ensino", "aluno", "professor", "faculdade", "certificado", "aprend", "treinamento"}},
	{ContextHealth, []string{"saúde", "clínica", "médic", "consulta", "tratamento", "paciente", "hospital", "exame", "odontolog", "terapia"}},
	{ContextFinance, []string{"financ", "crédito", "empréstimo", "investimento", "banco", "seguro", "cartão", "juros", "contábil", "contabilidade"}},
	{ContextManufacturing, []string{"indústria", "industrial", "fábrica", "fabricação", "fabricante", "produção", "máquina", "equipamento", "hidráulic", "usinagem", "peças"}},
	{ContextLegal, []string{"advogad", "advocacia", "jurídic", "direito", "tribunal", "contrato", "trabalhista", "processual"}},
	{ContextRealEstate, []string{"imóve", "imóvel", "imobiliária", "apartamento", "terreno", "condomínio", "corretor", "locação"}},
	{ContextAutomotive, []string{"carro", "veículo", "automotiv", "moto", "oficina", "pneu", "concessionária", "autopeças", "mecânica"}},
}

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
