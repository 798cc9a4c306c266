// Package assist composes the scripted attendant message that accompanies a
// resolved search: one of a fixed set of conversational scenarios chosen from
// the query intent and the classification mix of the candidates.
package assist

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/classify"
)

// Scenario identifiers.
const (
	ScenarioReference = "SC1_REFERENCIA_ETICO"
	ScenarioGeneric   = "SC2_PRINCIPIO_ATIVO_OU_GENERICO"
	ScenarioSimilar   = "SC3_SIMILAR_NOME_ESPECIFICO"
	ScenarioDrugstore = "SC4_PERFUMARIA"
	ScenarioNoResults = "SEM_RESULTADO"
)

var (
	referenceTerms = regexp.MustCompile(`\b(referencia|etico|etica|marca)\b`)
	genericTerms   = regexp.MustCompile(`\b(generico|genericos|gen)\b`)
	similarTerms   = regexp.MustCompile(`\b(similar|similares)\b`)
	drugstoreTerms = regexp.MustCompile(`\b(shampoo|condicionador|sabonete|hidratante|desodorante|perfume|creme|protetor|fralda|absorvente|escova|pasta)\b`)
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Message is the scripted attendant reply for one search result.
type Message struct {
	ScenarioID  string `json:"scenario_id"`
	Text        string `json:"mensagem"`
	FollowUpYes string `json:"follow_up_sim,omitempty"`
	FollowUpNo  string `json:"follow_up_nao,omitempty"`
}

// PriceQuote is the price pair extracted for display: the struck-through
// "from" price and the effective "for" price.
type PriceQuote struct {
	From            float64
	For             float64
	DiscountPercent int
	FromFormatted   string
	ForFormatted    string
}

type intent struct {
	wantsReference bool
	wantsGeneric   bool
	wantsSimilar   bool
	wantsDrugstore bool
}

func detectIntent(query string) intent {
	text := strings.ToLower(query)
	return intent{
		wantsReference: referenceTerms.MatchString(text),
		wantsGeneric:   genericTerms.MatchString(text),
		wantsSimilar:   similarTerms.MatchString(text),
		wantsDrugstore: drugstoreTerms.MatchString(text),
	}
}

// formatCurrency renders a pt-BR BRL amount, or "" for no price.
func formatCurrency(v float64) string {
	if v <= 0 {
		return ""
	}
	return brl.Sprintf("%v", currency.Symbol(currency.BRL.Amount(v)))
}

// ExtractPrices picks the displayable price pair from the package pricing
// row, preferring offer prices over store prices over general prices.
func ExtractPrices(p catalog.Product) PriceQuote {
	var q PriceQuote
	if p.Prices == nil {
		return q
	}

	q.For = firstPositive(
		p.Prices.FinalSalePrice,
		p.Prices.PriceWithDiscount,
		p.Prices.StoreSalePrice,
		p.Prices.SalePrice,
	)
	q.From = firstPositive(
		p.Prices.PriceWithoutDiscount,
		p.Prices.SalePrice,
		p.Prices.ReferencePrice,
	)
	if q.From > 0 && q.For > 0 && q.From > q.For {
		q.DiscountPercent = int(math.Round((q.From - q.For) / q.From * 100))
	}
	q.FromFormatted = formatCurrency(q.From)
	q.ForFormatted = formatCurrency(q.For)
	return q
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Generate builds the attendant message for a resolved search. query is the
// customer's original text; products are the final ordered candidates.
func Generate(query string, products []catalog.Product) Message {
	if len(products) == 0 {
		return Message{
			ScenarioID: ScenarioNoResults,
			Text:       "Nao encontrei itens com estoque para essa busca agora. Posso verificar alternativas com o mesmo principio ativo?",
		}
	}

	switch pickScenario(query, products) {
	case ScenarioReference:
		return buildReference(products)
	case ScenarioSimilar:
		return buildSimilar(products)
	case ScenarioDrugstore:
		return buildDrugstore(query, products)
	default:
		return buildGeneric(query, products)
	}
}

func pickScenario(query string, products []catalog.Product) string {
	in := detectIntent(query)

	if isDrugstore(in, products) {
		return ScenarioDrugstore
	}

	hasReference := hasType(products, classify.TypeReference)
	hasSimilar := hasType(products, classify.TypeSimilar)

	if in.wantsSimilar && hasSimilar {
		return ScenarioSimilar
	}
	if in.wantsReference && hasReference {
		return ScenarioReference
	}
	return ScenarioGeneric
}

// isDrugstore: either the query names a drugstore category, or nothing in
// the result set carries a classification or an active ingredient.
func isDrugstore(in intent, products []catalog.Product) bool {
	if in.wantsDrugstore {
		return true
	}
	for _, p := range products {
		if p.Classification != "" || p.IngredientName != "" {
			return false
		}
	}
	return true
}

func hasType(products []catalog.Product, classification string) bool {
	for _, p := range products {
		if p.Classification == classification {
			return true
		}
	}
	return false
}

func firstOfType(products []catalog.Product, classification string) (catalog.Product, bool) {
	for _, p := range products {
		if p.Classification == classification {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func topOfType(products []catalog.Product, classification string, limit int) []catalog.Product {
	var out []catalog.Product
	for _, p := range products {
		if p.Classification == classification {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func buildReference(products []catalog.Product) Message {
	reference, ok := firstOfType(products, classify.TypeReference)
	if !ok {
		reference = products[0]
	}
	generics := topOfType(products, classify.TypeGeneric, 2)
	prices := ExtractPrices(reference)

	lines := []string{
		fmt.Sprintf("Ola! Verifiquei no sistema e temos o *%s (Referencia)* disponivel.", reference.Description),
	}
	if prices.ForFormatted != "" {
		from := prices.FromFormatted
		if from == "" {
			from = prices.ForFormatted
		}
		line := fmt.Sprintf("Preco especial: de ~~%s~~ por *%s*", from, prices.ForFormatted)
		if prices.DiscountPercent > 0 {
			line += fmt.Sprintf(" (%d%% de desconto)", prices.DiscountPercent)
		}
		lines = append(lines, line+".")
	}
	lines = append(lines, "Alem do referencia, voce gostaria de ver opcoes de Genericos ou Similares? Eles costumam ser mais economicos.")

	followYes := "Otimo! Posso te mostrar as opcoes de generico e similar disponiveis agora."
	if len(generics) > 0 {
		opts := make([]string, 0, len(generics)+1)
		opts = append(opts, "Otimo! Temos estas opcoes:")
		for _, g := range generics {
			opts = append(opts, priceLine(g))
		}
		followYes = strings.Join(opts, "\n")
	}

	return Message{
		ScenarioID:  ScenarioReference,
		Text:        strings.Join(lines, "\n"),
		FollowUpYes: followYes,
		FollowUpNo:  "Entendido! Mantemos o de referencia. Deseja fechar o pedido ou precisa de mais alguma coisa?",
	}
}

func buildGeneric(query string, products []catalog.Product) Message {
	reference, hasReference := firstOfType(products, classify.TypeReference)
	generics := topOfType(products, classify.TypeGeneric, 2)

	lines := []string{fmt.Sprintf("Temos sim! Localizei opcoes para *%s*:", query)}
	if hasReference {
		lines = append(lines,
			"Opcao de referencia:",
			fmt.Sprintf("*%s:* %s", reference.Description, orDash(ExtractPrices(reference).ForFormatted)),
		)
	} else {
		lines = append(lines, "Opcao de referencia: indisponivel no momento.")
	}
	lines = append(lines, "", "Opcoes genericas (mais economicas):")
	if len(generics) > 0 {
		for _, g := range generics {
			lines = append(lines, priceLine(g))
		}
	} else {
		lines = append(lines, "Nao localizei genericos com estoque no momento.")
	}
	lines = append(lines, "", "Qual opcao eu separo para voce?")

	return Message{ScenarioID: ScenarioGeneric, Text: strings.Join(lines, "\n")}
}

func buildSimilar(products []catalog.Product) Message {
	similar, ok := firstOfType(products, classify.TypeSimilar)
	if !ok {
		similar = products[0]
	}
	prices := ExtractPrices(similar)

	lines := []string{fmt.Sprintf("Verifiquei agora e temos o *%s* em estoque.", similar.Description)}
	if prices.FromFormatted != "" {
		lines = append(lines, fmt.Sprintf("De: %s", prices.FromFormatted))
	}
	if prices.ForFormatted != "" {
		lines = append(lines, fmt.Sprintf("Por: *%s*", prices.ForFormatted))
	}
	if prices.DiscountPercent > 0 {
		lines = append(lines, fmt.Sprintf("(Voce economiza %d%% hoje.)", prices.DiscountPercent))
	}
	lines = append(lines, "Posso adicionar este item ao seu pedido?")

	return Message{ScenarioID: ScenarioSimilar, Text: strings.Join(lines, "\n")}
}

func buildDrugstore(query string, products []catalog.Product) Message {
	main := products[0]
	others := products[1:]
	if len(others) > 2 {
		others = others[:2]
	}
	prices := ExtractPrices(main)

	name := main.Description
	if name == "" {
		name = query
	}
	lines := []string{fmt.Sprintf("Temos *%s* disponivel!", name)}
	if prices.ForFormatted != "" {
		from := prices.FromFormatted
		if from == "" {
			from = prices.ForFormatted
		}
		lines = append(lines, fmt.Sprintf("Sai de ~~%s~~ por *%s*.", from, prices.ForFormatted))
	}
	lines = append(lines, "Tambem separei outras opcoes dessa categoria:")
	for _, o := range others {
		lines = append(lines, fmt.Sprintf("*%s:* %s", o.Description, orDash(ExtractPrices(o).ForFormatted)))
	}
	lines = append(lines, "Algum destes te interessa?")

	return Message{ScenarioID: ScenarioDrugstore, Text: strings.Join(lines, "\n")}
}

func priceLine(p catalog.Product) string {
	prices := ExtractPrices(p)
	from := prices.FromFormatted
	if from == "" {
		from = prices.ForFormatted
	}
	return fmt.Sprintf("*%s:* de ~~%s~~ por *%s*", p.Description, orDash(from), orDash(prices.ForFormatted))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
