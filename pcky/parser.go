// Package pcky computes the probability of the most probable derivation of a word under a
// probabilistic grammar in Chomsky normal form.
package pcky

import (
	"fmt"
	"math"

	"github.com/nihei9/cky/cnf"
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/grammar/symbol"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cky.pcky")

// Result is the outcome of a parse. When Member is false the word has no derivation and
// Probability is 0.
type Result struct {
	Probability float64

	// LogProbability is the natural logarithm of Probability. In log space it stays finite for
	// words whose probability underflows a float64, so a long word can be a member while
	// Probability is 0. Read LogProbability in that mode.
	LogProbability float64

	Member bool
}

func (r Result) String() string {
	if !r.Member {
		return "not a member"
	}
	return fmt.Sprintf("%v", r.Probability)
}

type parserConfig struct {
	acceptEmpty bool
	logSpace    bool
}

type ParserOption func(c *parserConfig)

// AcceptEmpty makes the empty word a member when the start symbol has an empty rule. Its
// probability is the probability of that rule. Without this option the empty word is never a
// member.
func AcceptEmpty() ParserOption {
	return func(c *parserConfig) {
		c.acceptEmpty = true
	}
}

// LogSpace accumulates log-probabilities instead of products of probabilities.
func LogSpace() ParserOption {
	return func(c *parserConfig) {
		c.logSpace = true
	}
}

type weightedHead struct {
	head   symbol.Num
	weight float64
}

type binaryRule struct {
	head   symbol.Num
	left   symbol.Num
	right  symbol.Num
	weight float64
}

// Parser holds a probabilistic CNF grammar compiled into lookup tables. Weights are stored in
// the arithmetic the parser was configured with.
type Parser struct {
	config *parserConfig
	symTab *symbol.TableReader
	start  symbol.Num

	// probability of `start -> ε`; 0 when the rule is absent
	emptyProb float64

	terminalHeads map[grammar.Symbol][]weightedHead
	binaryRules   []binaryRule
}

func NewParser(g *grammar.ProbabilisticGrammar, opts ...ParserOption) (*Parser, error) {
	if err := cnf.Validate(g.Grammar()); err != nil {
		return nil, fmt.Errorf("cannot build a probabilistic CKY parser: %w", err)
	}

	config := &parserConfig{}
	for _, opt := range opts {
		opt(config)
	}

	symTab := symbol.NewTable()
	w := symTab.Writer()
	startID, err := w.RegisterStart(g.Start)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		config:        config,
		symTab:        symTab.Reader(),
		start:         startID.Num(),
		terminalHeads: map[grammar.Symbol][]weightedHead{},
	}
	for _, r := range g.Rules {
		if r.Probability <= 0 || r.Probability > 1 {
			return nil, fmt.Errorf("%w; rule: %v", grammar.ErrInvalidProbability, r)
		}
		headID, err := w.Register(r.Head)
		if err != nil {
			return nil, err
		}
		weight := p.weight(r.Probability)
		switch {
		case r.IsEmpty():
			p.emptyProb = math.Max(p.emptyProb, r.Probability)
		case r.IsTerminal():
			p.terminalHeads[r.Body[0]] = append(p.terminalHeads[r.Body[0]], weightedHead{
				head:   headID.Num(),
				weight: weight,
			})
		case r.IsBinary():
			leftID, err := w.Register(r.Body[0])
			if err != nil {
				return nil, err
			}
			rightID, err := w.Register(r.Body[1])
			if err != nil {
				return nil, err
			}
			p.binaryRules = append(p.binaryRules, binaryRule{
				head:   headID.Num(),
				left:   leftID.Num(),
				right:  rightID.Num(),
				weight: weight,
			})
		}
	}
	if heads := g.CheckNormalized(1e-6); len(heads) > 0 {
		log.Warningf("the probabilities of these heads do not sum to 1: %v", heads)
	}
	log.Debugf("compiled a probabilistic CKY parser: terminal rules: %v, binary rules: %v, log space: %v",
		len(p.terminalHeads), len(p.binaryRules), config.logSpace)

	return p, nil
}

// zero is the weight of an absent non-terminal.
func (p *Parser) zero() float64 {
	if p.config.logSpace {
		return math.Inf(-1)
	}
	return 0
}

func (p *Parser) weight(prob float64) float64 {
	if p.config.logSpace {
		return math.Log(prob)
	}
	return prob
}

func (p *Parser) combine(rule, left, right float64) float64 {
	if p.config.logSpace {
		return rule + left + right
	}
	return rule * left * right
}

func (p *Parser) present(weight float64) bool {
	if p.config.logSpace {
		return !math.IsInf(weight, -1)
	}
	return weight > 0
}

func (p *Parser) probability(weight float64) float64 {
	if p.config.logSpace {
		return math.Exp(weight)
	}
	return weight
}

func (p *Parser) logProbability(weight float64) float64 {
	if p.config.logSpace {
		return weight
	}
	return math.Log(weight)
}

// Parse returns the probability of the most probable derivation of word.
func (p *Parser) Parse(word []grammar.Symbol) Result {
	if len(word) == 0 {
		if p.config.acceptEmpty && p.emptyProb > 0 {
			return Result{
				Probability:    p.emptyProb,
				LogProbability: math.Log(p.emptyProb),
				Member:         true,
			}
		}
		return Result{}
	}

	tab := p.ParseTable(word)
	v := tab.weight(0, len(word), p.start)
	if !p.present(v) {
		return Result{}
	}
	return Result{
		Probability:    p.probability(v),
		LogProbability: p.logProbability(v),
		Member:         true,
	}
}

// ParseString parses s as a word having one terminal per rune.
func (p *Parser) ParseString(s string) Result {
	return p.Parse(grammar.Word(s))
}

// ParseTable fills and returns the Viterbi table of word.
func (p *Parser) ParseTable(word []grammar.Symbol) *Table {
	tab := newTable(p, len(word))
	for i, sym := range word {
		for _, h := range p.terminalHeads[sym] {
			tab.max(i, i+1, h.head, h.weight)
		}
	}
	for span := 2; span <= len(word); span++ {
		for i := 0; i+span <= len(word); i++ {
			j := i + span
			for k := i + 1; k < j; k++ {
				for _, r := range p.binaryRules {
					left := tab.weight(i, k, r.left)
					if !p.present(left) {
						continue
					}
					right := tab.weight(k, j, r.right)
					if !p.present(right) {
						continue
					}
					tab.max(i, j, r.head, p.combine(r.weight, left, right))
				}
			}
		}
	}
	return tab
}
