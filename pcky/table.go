package pcky

import (
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/grammar/symbol"
)

// Table is the Viterbi table of one word. Cell (i, j) holds, for every non-terminal, the weight
// of its most probable derivation of word[i:j].
type Table struct {
	parser *Parser
	n      int
	cells  [][]float64
}

func newTable(p *Parser, n int) *Table {
	zero := p.zero()
	cells := make([][]float64, n*n)
	for i := range cells {
		c := make([]float64, p.symTab.NonTerminalCount())
		for k := range c {
			c[k] = zero
		}
		cells[i] = c
	}
	return &Table{
		parser: p,
		n:      n,
		cells:  cells,
	}
}

func (t *Table) cell(i, j int) []float64 {
	return t.cells[i*t.n+(j-1)]
}

func (t *Table) weight(i, j int, sym symbol.Num) float64 {
	return t.cell(i, j)[sym]
}

func (t *Table) max(i, j int, sym symbol.Num, w float64) {
	c := t.cell(i, j)
	if w > c[sym] {
		c[sym] = w
	}
}

func (t *Table) Len() int {
	return t.n
}

// Prob returns the probability of the most probable derivation of word[i:j] from sym, or 0 when
// sym derives nothing there.
func (t *Table) Prob(i, j int, sym grammar.Symbol) float64 {
	if i < 0 || j > t.n || i >= j {
		return 0
	}
	id, ok := t.parser.symTab.ToID(sym)
	if !ok || !id.IsNonTerminal() {
		return 0
	}
	w := t.weight(i, j, id.Num())
	if !t.parser.present(w) {
		return 0
	}
	return t.parser.probability(w)
}
