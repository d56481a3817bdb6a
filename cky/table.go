package cky

import (
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/grammar/symbol"
)

// Table is the recognition table of one word. Cell (i, j) holds the non-terminals deriving
// word[i:j].
type Table struct {
	parser *Parser
	n      int
	cells  [][]bool
}

func newTable(p *Parser, n int) *Table {
	cells := make([][]bool, n*n)
	for i := range cells {
		cells[i] = make([]bool, p.symTab.NonTerminalCount())
	}
	return &Table{
		parser: p,
		n:      n,
		cells:  cells,
	}
}

func (t *Table) cell(i, j int) []bool {
	return t.cells[i*t.n+(j-1)]
}

func (t *Table) add(i, j int, sym symbol.Num) {
	t.cell(i, j)[sym] = true
}

func (t *Table) has(i, j int, sym symbol.Num) bool {
	return t.cell(i, j)[sym]
}

// Len returns the length of the word the table was built for.
func (t *Table) Len() int {
	return t.n
}

// Cell returns the non-terminals deriving word[i:j], in the order of their registration.
// It returns nil when the span is out of range or empty.
func (t *Table) Cell(i, j int) []grammar.Symbol {
	if i < 0 || j > t.n || i >= j {
		return nil
	}
	var syms []grammar.Symbol
	for num, ok := range t.cell(i, j) {
		if !ok {
			continue
		}
		syms = append(syms, t.parser.symTab.NonTerminal(symbol.Num(num)))
	}
	return syms
}

// Accepted reports whether the start symbol derives the whole word.
func (t *Table) Accepted() bool {
	if t.n == 0 {
		return t.parser.emptyStart
	}
	return t.has(0, t.n, t.parser.start)
}
