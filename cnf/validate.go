package cnf

import (
	"errors"
	"fmt"

	"github.com/nihei9/cky/grammar"
)

var (
	ErrNotCNF        = errors.New("the grammar is not in Chomsky normal form")
	ErrEmptyNonStart = errors.New("only the start symbol may have an empty rule")
	ErrStartInBody   = errors.New("a start symbol having an empty rule must not appear in a body")
	ErrTerminalStart = errors.New("a start symbol must be a non-terminal symbol")
)

// Validate checks that every body of g is one terminal or two non-terminals, except for an
// empty start rule whose start symbol never occurs in a body.
func Validate(g *grammar.Grammar) error {
	if !g.Start.IsNonTerminal() {
		return fmt.Errorf("%w; start: %#v", ErrTerminalStart, g.Start)
	}
	for _, r := range g.Rules {
		switch {
		case r.IsTerminal(), r.IsBinary():
		case r.IsEmpty():
			if r.Head != g.Start {
				return fmt.Errorf("%w; rule: %v", ErrEmptyNonStart, r)
			}
		default:
			return fmt.Errorf("%w; rule: %v", ErrNotCNF, r)
		}
	}
	if g.HasEmptyStart() {
		for _, r := range g.Rules {
			for _, sym := range r.Body {
				if sym == g.Start {
					return fmt.Errorf("%w; rule: %v", ErrStartInBody, r)
				}
			}
		}
	}
	return nil
}

// IsCNF reports whether Validate accepts g.
func IsCNF(g *grammar.Grammar) bool {
	return Validate(g) == nil
}
