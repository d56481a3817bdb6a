package cnf

import (
	"strings"

	"github.com/nihei9/cky/grammar"
)

// isolateTerminals replaces every terminal occurring in a body of length two or more with an
// auxiliary non-terminal. One auxiliary non-terminal is shared by all occurrences of a terminal.
func (conv *conversion) isolateTerminals() {
	aux := map[grammar.Symbol]grammar.Symbol{}
	var auxRules []*grammar.Rule

	rules := grammar.NewRuleSet()
	for _, r := range conv.rules.Rules() {
		if len(r.Body) < 2 {
			rules.Append(r)
			continue
		}
		body := make([]grammar.Symbol, len(r.Body))
		replaced := false
		for i, sym := range r.Body {
			if !sym.IsTerminal() {
				body[i] = sym
				continue
			}
			a, ok := aux[sym]
			if !ok {
				a = grammar.N(conv.names.fresh(conv.config.auxiliaryPrefix + strings.ToUpper(sym.Name)))
				aux[sym] = a
				auxRules = append(auxRules, mustRule(a, sym))
			}
			body[i] = a
			replaced = true
		}
		if !replaced {
			rules.Append(r)
			continue
		}
		rules.Append(mustRule(r.Head, body...))
	}
	for _, r := range auxRules {
		rules.Append(r)
	}

	log.Debugf("auxiliary terminal symbols: %v", len(aux))
	conv.rules = rules
}
