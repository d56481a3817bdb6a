// Package generator makes random grammars and random words of their languages. Every maker draws
// from the *rand.Rand it is given, so a seed reproduces the same output.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/nihei9/cky/grammar"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cky.generator")

const (
	minRules = 4
	maxRules = 8

	// maxAttempts bounds the search for new distinct rules.
	maxAttempts = 1000
)

var letters = func() []string {
	ls := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		ls = append(ls, string(c))
	}
	return ls
}()

type GrammarMaker struct {
	rand *rand.Rand
}

func NewGrammarMaker(r *rand.Rand) *GrammarMaker {
	return &GrammarMaker{
		rand: r,
	}
}

// grammarBuilder is the state of a single Make call.
type grammarBuilder struct {
	rand     *rand.Rand
	nonTerms []grammar.Symbol
	known    map[grammar.Symbol]struct{}
	rules    *grammar.RuleSet
}

func (b *grammarBuilder) addNonTerminal(sym grammar.Symbol) {
	if _, ok := b.known[sym]; ok {
		return
	}
	b.known[sym] = struct{}{}
	b.nonTerms = append(b.nonTerms, sym)
}

// freshNonTerminal returns the first of X1, X2, ... not used yet and registers it.
func (b *grammarBuilder) freshNonTerminal() grammar.Symbol {
	for i := 1; ; i++ {
		sym := grammar.N(fmt.Sprintf("X%v", i))
		if _, ok := b.known[sym]; !ok {
			b.addNonTerminal(sym)
			return sym
		}
	}
}

func (b *grammarBuilder) terminal() grammar.Symbol {
	return grammar.T(letters[b.rand.Intn(len(letters))])
}

func (b *grammarBuilder) nonTerminal() grammar.Symbol {
	return b.nonTerms[b.rand.Intn(len(b.nonTerms))]
}

func (b *grammarBuilder) othersThan(sym grammar.Symbol) []grammar.Symbol {
	var others []grammar.Symbol
	for _, nt := range b.nonTerms {
		if nt != sym {
			others = append(others, nt)
		}
	}
	return others
}

func (b *grammarBuilder) add(head grammar.Symbol, body ...grammar.Symbol) bool {
	return b.rules.Append(grammar.MustRule(head, body...))
}

// cnfRule makes a terminal rule or a binary rule, preferring non-terminals that already exist.
func (b *grammarBuilder) cnfRule(head grammar.Symbol) []grammar.Symbol {
	if b.rand.Float64() < 0.3 {
		return []grammar.Symbol{b.terminal()}
	}
	others := b.othersThan(head)
	if len(others) >= 1 && b.rand.Float64() < 0.8 {
		if len(others) >= 2 {
			perm := b.rand.Perm(len(others))
			return []grammar.Symbol{others[perm[0]], others[perm[1]]}
		}
		return []grammar.Symbol{others[0], b.freshNonTerminal()}
	}
	return []grammar.Symbol{b.freshNonTerminal(), b.freshNonTerminal()}
}

// cfgRule makes a body of two to four symbols mixing terminals and non-terminals, or sometimes
// a single terminal.
func (b *grammarBuilder) cfgRule(head grammar.Symbol) []grammar.Symbol {
	var options [][]grammar.Symbol
	if b.rand.Float64() < 0.2 {
		options = append(options, []grammar.Symbol{b.terminal()})
	}
	others := b.othersThan(head)
	n := 2 + b.rand.Intn(3)
	body := make([]grammar.Symbol, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case b.rand.Float64() < 0.4:
			body = append(body, b.terminal())
		case len(others) > 0 && b.rand.Float64() < 0.7:
			body = append(body, others[b.rand.Intn(len(others))])
		default:
			body = append(body, b.freshNonTerminal())
		}
	}
	options = append(options, body)
	return options[b.rand.Intn(len(options))]
}

func (b *grammarBuilder) hasTerminalRule(head grammar.Symbol) bool {
	rules, _ := b.rules.FindByHead(head)
	for _, r := range rules {
		if r.IsTerminal() {
			return true
		}
	}
	return false
}

// Make returns a random grammar with the start symbol S. When cnf is true the grammar is in
// Chomsky normal form. numRules is the number of rules made before every non-terminal gets a
// terminal rule and two more recursive rules are added; a non-positive numRules picks one
// between 4 and 8.
func (m *GrammarMaker) Make(cnf bool, numRules int) *grammar.Grammar {
	if numRules <= 0 {
		numRules = minRules + m.rand.Intn(maxRules-minRules+1)
	}

	start := grammar.N("S")
	b := &grammarBuilder{
		rand:  m.rand,
		known: map[grammar.Symbol]struct{}{},
		rules: grammar.NewRuleSet(),
	}
	b.addNonTerminal(start)

	if cnf {
		nt1 := b.freshNonTerminal()
		nt2 := b.freshNonTerminal()
		b.add(start, nt1, nt2)
		b.add(start, b.terminal())
	} else {
		b.add(start, b.terminal(), b.terminal())
		nt := b.freshNonTerminal()
		b.add(start, nt, b.terminal(), nt)
	}

	for i := 0; b.rules.Len() < numRules && i < maxAttempts; i++ {
		head := b.nonTerminal()
		var body []grammar.Symbol
		if cnf {
			body = b.cnfRule(head)
		} else {
			body = b.cfgRule(head)
		}
		b.add(head, body...)
	}

	for _, nt := range b.nonTerms {
		if !b.hasTerminalRule(nt) {
			b.add(nt, b.terminal())
		}
	}

	for i := 0; i < 2; i++ {
		head := b.nonTerminal()
		others := b.othersThan(head)
		other := others[m.rand.Intn(len(others))]
		if cnf {
			b.add(head, head, other)
		} else {
			b.add(head, head, b.terminal(), other)
		}
	}

	g := &grammar.Grammar{
		Start: start,
		Rules: b.rules.Rules(),
	}
	log.Debugf("made a grammar: cnf: %v, rules: %v", cnf, len(g.Rules))
	return g
}

// MakeProbabilistic is like Make but also assigns every rule a probability. The probabilities of
// the rules sharing a head are multiples of 0.01, each at least 0.01, summing to 1.
func (m *GrammarMaker) MakeProbabilistic(cnf bool, numRules int) *grammar.ProbabilisticGrammar {
	g := m.Make(cnf, numRules)
	return &grammar.ProbabilisticGrammar{
		Start: g.Start,
		Rules: m.assignProbabilities(g),
	}
}

func (m *GrammarMaker) assignProbabilities(g *grammar.Grammar) []*grammar.ProbabilisticRule {
	rs := g.RuleSet()
	var prules []*grammar.ProbabilisticRule
	for _, head := range rs.Heads() {
		rules, _ := rs.FindByHead(head)
		for i, pct := range m.percentages(len(rules)) {
			prules = append(prules, &grammar.ProbabilisticRule{
				Rule:        rules[i],
				Probability: float64(pct) / 100,
			})
		}
	}
	return prules
}

// percentages splits 100 into n random positive parts. n must be between 1 and 100.
func (m *GrammarMaker) percentages(n int) []int {
	weights := make([]float64, n)
	total := 0.0
	for i := range weights {
		weights[i] = m.rand.Float64()
		total += weights[i]
	}

	pcts := make([]int, n)
	rest := 100 - n
	used := 0
	for i := 0; i < n-1; i++ {
		extra := 0
		if total > 0 {
			extra = int(float64(rest) * weights[i] / total)
		}
		pcts[i] = 1 + extra
		used += extra
	}
	pcts[n-1] = 1 + rest - used
	return pcts
}
