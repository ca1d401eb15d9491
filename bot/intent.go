package bot

import (
	"regexp"
	"strings"
)

type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentMenu
	IntentViewCart
	IntentAddToCart
)

// Intent is the classified goal of one inbound message. Product is only set
// for IntentAddToCart.
type Intent struct {
	Kind    IntentKind
	Product string
}

var menuWords = []string{"cardápio", "cardapio", "menu", "produtos", "hamburguer", "lanche", "o que tem"}

var cartWords = []string{"carrinho", "pedido", "meu pedido"}

var addPatterns = []*regexp.Regexp{
	regexp.MustCompile(`quero (?:o |um |uma )?(.+)`),
	regexp.MustCompile(`adiciona (?:o |um |uma )?(.+)`),
	regexp.MustCompile(`coloca (?:o |um |uma )?(.+)`),
	regexp.MustCompile(`vou querer (?:o |um |uma )?(.+)`),
}

var trailingFillerRe = regexp.MustCompile(`\s+(no carrinho|pra mim|por favor)\b.*$`)

// rules run in order; the first hit wins. The keyword checks must come before
// the add-to-cart patterns: "quero ver o cardápio" is a menu request, not a
// product named "ver o cardápio".
var rules = []struct {
	kind    IntentKind
	extract func(text string) (string, bool)
}{
	{IntentMenu, matchAny(menuWords)},
	{IntentViewCart, matchAny(cartWords)},
	{IntentAddToCart, matchProduct},
}

// Classify maps free text to an intent. Pure and stateless.
func Classify(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, r := range rules {
		if captured, ok := r.extract(lower); ok {
			return Intent{Kind: r.kind, Product: captured}
		}
	}
	return Intent{Kind: IntentNone}
}

func matchAny(words []string) func(string) (string, bool) {
	return func(text string) (string, bool) {
		for _, w := range words {
			if strings.Contains(text, w) {
				return "", true
			}
		}
		return "", false
	}
}

func matchProduct(text string) (string, bool) {
	for _, p := range addPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		product := strings.TrimSpace(trailingFillerRe.ReplaceAllString(m[1], ""))
		if product == "" {
			continue
		}
		return product, true
	}
	return "", false
}
