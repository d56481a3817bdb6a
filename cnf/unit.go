package cnf

import "github.com/nihei9/cky/grammar"

type unitPair struct {
	from grammar.Symbol
	to   grammar.Symbol
}

// eliminateUnits replaces unit rules `A -> B` with copies of the non-unit rules of every B
// reachable from A through unit rules. The closure is computed with a worklist and a set of
// processed pairs, so unit cycles terminate.
func (conv *conversion) eliminateUnits() {
	var queue []unitPair
	processed := map[unitPair]struct{}{}
	var pairs []unitPair
	push := func(p unitPair) {
		if p.from == p.to {
			return
		}
		if _, ok := processed[p]; ok {
			return
		}
		processed[p] = struct{}{}
		pairs = append(pairs, p)
		queue = append(queue, p)
	}

	for _, r := range conv.rules.Rules() {
		if r.IsUnit() {
			push(unitPair{from: r.Head, to: r.Body[0]})
		}
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		rules, _ := conv.rules.FindByHead(p.to)
		for _, r := range rules {
			if r.IsUnit() {
				push(unitPair{from: p.from, to: r.Body[0]})
			}
		}
	}

	nonUnit := conv.rules.Filter(func(r *grammar.Rule) bool {
		return !r.IsUnit()
	})
	rules := grammar.NewRuleSet(nonUnit.Rules()...)
	for _, p := range pairs {
		targets, _ := nonUnit.FindByHead(p.to)
		for _, r := range targets {
			rules.Append(mustRule(p.from, r.Body...))
		}
	}

	log.Debugf("unit pairs: %v", len(pairs))
	conv.rules = rules
}
