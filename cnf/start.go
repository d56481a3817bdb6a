package cnf

import "github.com/nihei9/cky/grammar"

// isolateStart introduces a fresh start symbol when the current one occurs in some body, so the
// start symbol never appears on a right-hand side afterwards.
func (conv *conversion) isolateStart() {
	if !occursInBody(conv.rules, conv.start) {
		return
	}

	newStart := grammar.N(conv.names.fresh(conv.start.Name + conv.config.startSuffix))
	rules := grammar.NewRuleSet(mustRule(newStart, conv.start))
	for _, r := range conv.rules.Rules() {
		rules.Append(r)
	}
	log.Debugf("isolated the start symbol %v as %v", conv.start, newStart)
	conv.start = newStart
	conv.rules = rules
}

func occursInBody(rules *grammar.RuleSet, sym grammar.Symbol) bool {
	for _, r := range rules.Rules() {
		for _, s := range r.Body {
			if s == sym {
				return true
			}
		}
	}
	return false
}
