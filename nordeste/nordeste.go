// Package nordeste rewrites replies into the house's nordestino register.
// It is a cosmetic post-processing stage; nothing in the bot core depends on
// its output shape.
package nordeste

import (
	"math/rand"
	"regexp"
	"strings"
)

var closingPhrases = []string{
	"Oxente, visse?",
	"Eita, que coisa boa!",
	"Vixe Maria!",
	"Arretado de bom!",
	"Num se avexe não.",
	"Tamo junto, meu rei!",
	"Deus é mais!",
}

// whole-word substitutions, matched case-insensitively on letter runs
// (regexp \b is ASCII-only and misses words ending in accented letters)
var substitutions = map[string]string{
	"você":     "tu",
	"voce":     "tu",
	"vc":       "tu",
	"está":     "tá",
	"esta":     "tá",
	"para":     "pra",
	"com":      "cum",
	"obrigado": "valeu demais",
	"obrigada": "valeu demais",
	"muito":    "muuuito",
	"sim":      "oxente, sim",
	"não":      "num",
	"nao":      "num",
}

var wordRe = regexp.MustCompile(`\p{L}+`)

// Styler applies the substitution table and appends a closing phrase picked
// from its rand source, which is injectable for deterministic tests.
type Styler struct {
	rng     *rand.Rand
	addTail bool
}

func New(rng *rand.Rand) *Styler {
	return &Styler{rng: rng, addTail: true}
}

func NewWithoutTail(rng *rand.Rand) *Styler {
	return &Styler{rng: rng, addTail: false}
}

func (s *Styler) Style(text string) string {
	t := wordRe.ReplaceAllStringFunc(text, func(word string) string {
		if repl, ok := substitutions[strings.ToLower(word)]; ok {
			return repl
		}
		return word
	})
	t = strings.TrimSpace(t)
	if s.addTail {
		t += " " + closingPhrases[s.rng.Intn(len(closingPhrases))]
	}
	return t
}
