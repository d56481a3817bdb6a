package cnf

import "github.com/nihei9/cky/grammar"

// binarize splits every body longer than two symbols into a chain of binary rules:
//
//	A -> a b c d
//
// becomes
//
//	A  -> a Y1
//	Y1 -> b Y2
//	Y2 -> c d
func (conv *conversion) binarize() {
	rules := grammar.NewRuleSet()
	for _, r := range conv.rules.Rules() {
		if len(r.Body) <= 2 {
			rules.Append(r)
			continue
		}
		head := r.Head
		for i := 0; i < len(r.Body)-2; i++ {
			next := grammar.N(conv.names.next(conv.config.chainPrefix))
			rules.Append(mustRule(head, r.Body[i], next))
			head = next
		}
		rules.Append(mustRule(head, r.Body[len(r.Body)-2:]...))
	}
	conv.rules = rules
}
