package grammar

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Grammar is a set of rules plus a designated start symbol. A Grammar is read-only once built;
// transformations always produce a new one.
type Grammar struct {
	Start Symbol
	Rules []*Rule
}

// NewGrammar builds a grammar from rules, dropping duplicates but keeping the order of first
// appearance.
func NewGrammar(start Symbol, rules []*Rule) (*Grammar, error) {
	if !start.IsNonTerminal() {
		return nil, fmt.Errorf("%w; start: %#v", semErrTerminalStart, start)
	}
	return &Grammar{
		Start: start,
		Rules: NewRuleSet(rules...).Rules(),
	}, nil
}

// RuleSet returns a fresh set holding the rules of the grammar.
func (g *Grammar) RuleSet() *RuleSet {
	return NewRuleSet(g.Rules...)
}

// HasEmptyStart reports whether the start symbol has an empty-body rule.
func (g *Grammar) HasEmptyStart() bool {
	for _, r := range g.Rules {
		if r.Head == g.Start && r.IsEmpty() {
			return true
		}
	}
	return false
}

// NonTerminals returns every non-terminal occurring in the grammar, the start symbol first and
// the rest sorted by name.
func (g *Grammar) NonTerminals() []Symbol {
	return collectSymbols(g.Start, g.Rules, func(sym Symbol) bool {
		return sym.IsNonTerminal()
	})
}

// Terminals returns every terminal occurring in the grammar, sorted by name.
func (g *Grammar) Terminals() []Symbol {
	return collectSymbols(Symbol{}, g.Rules, func(sym Symbol) bool {
		return sym.IsTerminal()
	})
}

func collectSymbols(first Symbol, rules []*Rule, want func(Symbol) bool) []Symbol {
	seen := map[Symbol]struct{}{}
	var syms []Symbol
	add := func(sym Symbol) {
		if sym == first || !want(sym) {
			return
		}
		if _, ok := seen[sym]; ok {
			return
		}
		seen[sym] = struct{}{}
		syms = append(syms, sym)
	}
	for _, r := range rules {
		add(r.Head)
		for _, sym := range r.Body {
			add(sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Name < syms[j].Name
	})
	if want(first) {
		return append([]Symbol{first}, syms...)
	}
	return syms
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.Rules {
		fmt.Fprintln(&b, r)
	}
	return b.String()
}

// ProbabilisticRule is a rule annotated with a probability in (0, 1].
type ProbabilisticRule struct {
	*Rule
	Probability float64
}

func NewProbabilisticRule(prob float64, head Symbol, body ...Symbol) (*ProbabilisticRule, error) {
	if !(prob > 0 && prob <= 1) {
		return nil, fmt.Errorf("%w; rule: %v %v, probability: %v", semErrInvalidProbability, head, body, prob)
	}
	r, err := NewRule(head, body...)
	if err != nil {
		return nil, err
	}
	return &ProbabilisticRule{
		Rule:        r,
		Probability: prob,
	}, nil
}

// MustProbabilisticRule is like NewProbabilisticRule but panics on an invalid rule.
func MustProbabilisticRule(prob float64, head Symbol, body ...Symbol) *ProbabilisticRule {
	r, err := NewProbabilisticRule(prob, head, body...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *ProbabilisticRule) String() string {
	return fmt.Sprintf("%v %v", r.Rule, r.Probability)
}

// ProbabilisticGrammar is a PCFG. The probabilities of the rules sharing a head are expected to
// sum to 1 but that is never enforced.
type ProbabilisticGrammar struct {
	Start Symbol
	Rules []*ProbabilisticRule
}

// NewProbabilisticGrammar validates the start symbol and every probability. Rules with the same
// head and body are all kept; the parsers use the most probable one.
func NewProbabilisticGrammar(start Symbol, rules []*ProbabilisticRule) (*ProbabilisticGrammar, error) {
	if !start.IsNonTerminal() {
		return nil, fmt.Errorf("%w; start: %#v", semErrTerminalStart, start)
	}
	for _, r := range rules {
		if !(r.Probability > 0 && r.Probability <= 1) {
			return nil, fmt.Errorf("%w; rule: %v, probability: %v", semErrInvalidProbability, r.Rule, r.Probability)
		}
	}
	return &ProbabilisticGrammar{
		Start: start,
		Rules: rules,
	}, nil
}

// Grammar drops the probabilities.
func (g *ProbabilisticGrammar) Grammar() *Grammar {
	rs := NewRuleSet()
	for _, r := range g.Rules {
		rs.Append(r.Rule)
	}
	return &Grammar{
		Start: g.Start,
		Rules: rs.Rules(),
	}
}

// CheckNormalized returns the heads whose probability mass differs from 1 by more than eps.
func (g *ProbabilisticGrammar) CheckNormalized(eps float64) []Symbol {
	mass := map[Symbol]float64{}
	var heads []Symbol
	for _, r := range g.Rules {
		if _, ok := mass[r.Head]; !ok {
			heads = append(heads, r.Head)
		}
		mass[r.Head] += r.Probability
	}
	var off []Symbol
	for _, h := range heads {
		if math.Abs(mass[h]-1) > eps {
			off = append(off, h)
		}
	}
	return off
}

func (g *ProbabilisticGrammar) String() string {
	var b strings.Builder
	for _, r := range g.Rules {
		fmt.Fprintln(&b, r)
	}
	return b.String()
}
