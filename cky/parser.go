// Package cky decides membership of a word in the language of a grammar in Chomsky normal form.
package cky

import (
	"fmt"

	"github.com/nihei9/cky/cnf"
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/grammar/symbol"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cky.cky")

type binaryRule struct {
	head  symbol.Num
	left  symbol.Num
	right symbol.Num
}

// Parser holds a CNF grammar compiled into lookup tables. A Parser is never modified after
// NewParser returns, so it can be shared between goroutines.
type Parser struct {
	symTab     *symbol.TableReader
	start      symbol.Num
	emptyStart bool

	// terminal symbol -> heads of `A -> a` rules
	terminalHeads map[grammar.Symbol][]symbol.Num

	binaryRules []binaryRule
}

// NewParser compiles g. g must be in Chomsky normal form.
func NewParser(g *grammar.Grammar) (*Parser, error) {
	if err := cnf.Validate(g); err != nil {
		return nil, fmt.Errorf("cannot build a CKY parser: %w", err)
	}

	symTab := symbol.NewTable()
	w := symTab.Writer()
	startID, err := w.RegisterStart(g.Start)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		symTab:        symTab.Reader(),
		start:         startID.Num(),
		terminalHeads: map[grammar.Symbol][]symbol.Num{},
	}
	for _, r := range g.Rules {
		headID, err := w.Register(r.Head)
		if err != nil {
			return nil, err
		}
		switch {
		case r.IsEmpty():
			p.emptyStart = true
		case r.IsTerminal():
			p.terminalHeads[r.Body[0]] = append(p.terminalHeads[r.Body[0]], headID.Num())
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
				head:  headID.Num(),
				left:  leftID.Num(),
				right: rightID.Num(),
			})
		}
	}
	log.Debugf("compiled a CKY parser: non-terminals: %v, terminal rules: %v, binary rules: %v",
		p.symTab.NonTerminalCount()-1, len(p.terminalHeads), len(p.binaryRules))

	return p, nil
}

// Parse reports whether the grammar derives word. The empty word is accepted only when the
// start symbol has an empty rule.
func (p *Parser) Parse(word []grammar.Symbol) bool {
	if len(word) == 0 {
		return p.emptyStart
	}
	return p.ParseTable(word).Accepted()
}

// ParseString parses s as a word having one terminal per rune.
func (p *Parser) ParseString(s string) bool {
	return p.Parse(grammar.Word(s))
}

// ParseTable fills and returns the recognition table of word.
func (p *Parser) ParseTable(word []grammar.Symbol) *Table {
	tab := newTable(p, len(word))
	for i, sym := range word {
		for _, head := range p.terminalHeads[sym] {
			tab.add(i, i+1, head)
		}
	}
	for span := 2; span <= len(word); span++ {
		for i := 0; i+span <= len(word); i++ {
			j := i + span
			for k := i + 1; k < j; k++ {
				for _, r := range p.binaryRules {
					if tab.has(i, k, r.left) && tab.has(k, j, r.right) {
						tab.add(i, j, r.head)
					}
				}
			}
		}
	}
	return tab
}
