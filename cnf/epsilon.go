package cnf

import "github.com/nihei9/cky/grammar"

// eliminateEpsilon adds, for every rule, each variant obtained by dropping any combination of
// nullable body symbols, and then removes the empty rules. The only empty rule kept is
// `start -> ε`, and only when the start symbol is nullable.
func (conv *conversion) eliminateEpsilon() {
	ns := genNullableSet(conv.rules)
	keepEmptyStart := ns.contains(conv.start)

	rules := grammar.NewRuleSet()
	for _, r := range conv.rules.Rules() {
		if r.IsEmpty() {
			continue
		}
		for _, body := range dropVariants(r.Body, ns) {
			if len(body) == 0 {
				continue
			}
			rules.Append(mustRule(r.Head, body...))
		}
	}
	if keepEmptyStart {
		rules.Append(mustRule(conv.start))
	}

	log.Debugf("nullable symbols: %v, empty start rule kept: %v", len(ns.set), keepEmptyStart)
	conv.rules = rules
}

// dropVariants enumerates the power set over the positions of nullable symbols. The variant that
// drops nothing comes first.
func dropVariants(body []grammar.Symbol, ns *nullableSet) [][]grammar.Symbol {
	var positions []int
	for i, sym := range body {
		if sym.IsNonTerminal() && ns.contains(sym) {
			positions = append(positions, i)
		}
	}

	variants := make([][]grammar.Symbol, 0, 1<<len(positions))
	for mask := 0; mask < 1<<len(positions); mask++ {
		drop := map[int]struct{}{}
		for bit, pos := range positions {
			if mask&(1<<bit) != 0 {
				drop[pos] = struct{}{}
			}
		}
		variant := make([]grammar.Symbol, 0, len(body)-len(drop))
		for i, sym := range body {
			if _, ok := drop[i]; ok {
				continue
			}
			variant = append(variant, sym)
		}
		variants = append(variants, variant)
	}
	return variants
}
