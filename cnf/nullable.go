package cnf

import "github.com/nihei9/cky/grammar"

// nullableSet holds the non-terminals that derive the empty string.
type nullableSet struct {
	set map[grammar.Symbol]struct{}
}

func (ns *nullableSet) add(sym grammar.Symbol) bool {
	if _, ok := ns.set[sym]; ok {
		return false
	}
	ns.set[sym] = struct{}{}
	return true
}

func (ns *nullableSet) contains(sym grammar.Symbol) bool {
	_, ok := ns.set[sym]
	return ok
}

// genNullableSet propagates nullability until nothing changes. A head is nullable when it has
// an empty rule or a rule whose every body symbol is nullable. Terminals are never nullable.
func genNullableSet(rules *grammar.RuleSet) *nullableSet {
	ns := &nullableSet{
		set: map[grammar.Symbol]struct{}{},
	}
	for {
		more := false
		for _, r := range rules.Rules() {
			if ns.contains(r.Head) {
				continue
			}
			if !allNullable(ns, r.Body) {
				continue
			}
			if ns.add(r.Head) {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return ns
}

func allNullable(ns *nullableSet, body []grammar.Symbol) bool {
	for _, sym := range body {
		if sym.IsTerminal() || !ns.contains(sym) {
			return false
		}
	}
	return true
}
