package generator

import (
	"math/rand"

	"github.com/nihei9/cky/grammar"
)

const (
	defaultMaxDepth  = 15
	defaultMaxLength = 8
	defaultMinLength = 2
)

type wordConfig struct {
	maxDepth  int
	maxLength int
	minLength int
}

type WordOption func(c *wordConfig)

// MaxDepth bounds the depth of derivations.
func MaxDepth(depth int) WordOption {
	return func(c *wordConfig) {
		c.maxDepth = depth
	}
}

func MaxLength(length int) WordOption {
	return func(c *wordConfig) {
		c.maxLength = length
	}
}

func MinLength(length int) WordOption {
	return func(c *wordConfig) {
		c.minLength = length
	}
}

// WordMaker derives random words from a grammar.
type WordMaker struct {
	rand   *rand.Rand
	config *wordConfig
	start  grammar.Symbol
	rules  *grammar.RuleSet
}

func NewWordMaker(r *rand.Rand, g *grammar.Grammar, opts ...WordOption) *WordMaker {
	config := &wordConfig{
		maxDepth:  defaultMaxDepth,
		maxLength: defaultMaxLength,
		minLength: defaultMinLength,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &WordMaker{
		rand:   r,
		config: config,
		start:  g.Start,
		rules:  g.RuleSet(),
	}
}

func (m *WordMaker) acceptable(word []grammar.Symbol) bool {
	return len(word) >= m.config.minLength && len(word) <= m.config.maxLength
}

// Member returns a word derived from the start symbol. Derivations aiming at lengths 3, 4, 2 and
// 5 are tried first, then unguided ones. It returns false when no derivation of an acceptable
// length was found.
func (m *WordMaker) Member() ([]grammar.Symbol, bool) {
	for _, target := range []int{3, 4, 2, 5} {
		for i := 0; i < 50; i++ {
			word, ok := m.derive(m.start, 0, target)
			if ok && m.acceptable(word) {
				return word, true
			}
		}
	}
	for i := 0; i < 100; i++ {
		word, ok := m.derive(m.start, 0, 0)
		if ok && m.acceptable(word) {
			return word, true
		}
	}
	return nil, false
}

// NonMember returns a non-empty member with one letter replaced by another letter. It returns
// false when no such member was found. The result is only a candidate; it can still be a member
// of the language, so callers must check it with a parser.
func (m *WordMaker) NonMember() ([]grammar.Symbol, bool) {
	var base []grammar.Symbol
	found := false
	for i := 0; i < 100; i++ {
		word, ok := m.derive(m.start, 0, 0)
		// The empty word has no letter to replace.
		if ok && len(word) > 0 && m.acceptable(word) {
			base = word
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}
	return m.mutate(base), true
}

func (m *WordMaker) mutate(base []grammar.Symbol) []grammar.Symbol {
	if len(base) == 0 {
		return nil
	}
	word := make([]grammar.Symbol, len(base))
	copy(word, base)
	pos := m.rand.Intn(len(word))
	var candidates []string
	for _, l := range letters {
		if l != word[pos].Name {
			candidates = append(candidates, l)
		}
	}
	word[pos] = grammar.T(candidates[m.rand.Intn(len(candidates))])
	return word
}

// derive expands sym at depth. A positive target length steers the choice of rules: binary
// rules near the root when the target is long, terminal rules otherwise. A zero target only
// leans towards two-symbol bodies near the root.
func (m *WordMaker) derive(sym grammar.Symbol, depth int, target int) ([]grammar.Symbol, bool) {
	if depth > m.config.maxDepth {
		return nil, false
	}
	matches, ok := m.rules.FindByHead(sym)
	if !ok || len(matches) == 0 {
		return nil, false
	}

	switch {
	case target > 2 && depth < 3:
		matches = filterRules(matches, (*grammar.Rule).IsBinary)
	case target > 0:
		matches = filterRules(matches, (*grammar.Rule).IsTerminal)
	case depth < 2 && m.rand.Float64() < 0.6:
		matches = filterRules(matches, func(r *grammar.Rule) bool {
			return len(r.Body) == 2
		})
	}

	r := matches[m.rand.Intn(len(matches))]
	var word []grammar.Symbol
	for _, s := range r.Body {
		if s.IsTerminal() {
			word = append(word, s)
		} else {
			sub, ok := m.derive(s, depth+1, target)
			if !ok {
				return nil, false
			}
			word = append(word, sub...)
		}
		if len(word) > m.config.maxLength {
			return nil, false
		}
	}
	return word, true
}

// filterRules returns the rules satisfying keep, or all rules when none does.
func filterRules(rules []*grammar.Rule, keep func(*grammar.Rule) bool) []*grammar.Rule {
	var kept []*grammar.Rule
	for _, r := range rules {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return rules
	}
	return kept
}
