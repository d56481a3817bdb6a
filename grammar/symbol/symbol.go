// Package symbol interns grammar symbols into compact numeric IDs so that parse tables can be
// indexed by plain slices instead of maps.
package symbol

import (
	"fmt"

	"github.com/nihei9/cky/grammar"
)

type Num uint16

func (n Num) Int() int {
	return int(n)
}

type ID uint16

func (id ID) String() string {
	var prefix string
	switch {
	case id.IsNil():
		return "nil"
	case id.IsStart():
		prefix = "s"
	case id.IsNonTerminal():
		prefix = "n"
	default:
		prefix = "t"
	}
	return fmt.Sprintf("%v%v", prefix, id.Num())
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	maskStartPart = uint16(0x4000) // 0100 0000 0000 0000
	maskNonStart  = uint16(0x0000) // 0000 0000 0000 0000
	maskStart     = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNumStart = uint16(0x0001) // 0000 0000 0000 0001

	IDNil   = ID(0)                                           // 0000 0000 0000 0000
	IDStart = ID(maskNonTerminal | maskStart | symbolNumStart) // 0100 0000 0000 0001

	nonTerminalNumMin = Num(2) // The number 1 is used by the start symbol.
	terminalNumMin    = Num(1)
	numMax            = Num(0xffff) >> 2 // 0011 1111 1111 1111
)

func newID(kind grammar.Kind, isStart bool, num Num) (ID, error) {
	if num > numMax {
		return IDNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", numMax, num)
	}
	if kind == grammar.KindTerminal && isStart {
		return IDNil, fmt.Errorf("a start symbol must be a non-terminal symbol")
	}

	kindMask := maskNonTerminal
	if kind == grammar.KindTerminal {
		kindMask = maskTerminal
	}
	startMask := maskNonStart
	if isStart {
		startMask = maskStart
	}
	return ID(kindMask | startMask | uint16(num)), nil
}

// Num returns the number of the symbol. Numbers are dense per kind, so they can index slices
// sized by Reader.NonTerminalCount or Reader.TerminalCount.
func (id ID) Num() Num {
	return Num(uint16(id) & maskNumberPart)
}

func (id ID) IsNil() bool {
	return id.Num() == 0
}

func (id ID) IsStart() bool {
	return !id.IsNil() && uint16(id)&maskStartPart > 0
}

func (id ID) IsNonTerminal() bool {
	return !id.IsNil() && uint16(id)&maskKindPart == maskNonTerminal
}

func (id ID) IsTerminal() bool {
	return !id.IsNil() && !id.IsNonTerminal()
}

type Table struct {
	sym2ID     map[grammar.Symbol]ID
	id2Sym     map[ID]grammar.Symbol
	nonTerms   []grammar.Symbol
	terms      []grammar.Symbol
	nonTermNum Num
	termNum    Num
}

type TableWriter struct {
	*Table
}

type TableReader struct {
	*Table
}

func NewTable() *Table {
	return &Table{
		sym2ID: map[grammar.Symbol]ID{},
		id2Sym: map[ID]grammar.Symbol{},
		nonTerms: []grammar.Symbol{
			{}, // Nil
			{}, // Start Symbol
		},
		terms: []grammar.Symbol{
			{}, // Nil
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *Table) Writer() *TableWriter {
	return &TableWriter{
		Table: t,
	}
}

func (t *Table) Reader() *TableReader {
	return &TableReader{
		Table: t,
	}
}

func (w *TableWriter) RegisterStart(sym grammar.Symbol) (ID, error) {
	if !sym.IsNonTerminal() {
		return IDNil, fmt.Errorf("a start symbol must be a non-terminal symbol; symbol: %#v", sym)
	}
	if id, ok := w.sym2ID[sym]; ok && id != IDStart {
		return IDNil, fmt.Errorf("the start symbol must be registered first; symbol: %#v", sym)
	}
	w.sym2ID[sym] = IDStart
	w.id2Sym[IDStart] = sym
	w.nonTerms[IDStart.Num().Int()] = sym
	return IDStart, nil
}

// Register returns the ID of sym, allocating one when sym is new.
func (w *TableWriter) Register(sym grammar.Symbol) (ID, error) {
	if id, ok := w.sym2ID[sym]; ok {
		return id, nil
	}
	if sym.IsNil() {
		return IDNil, fmt.Errorf("a nil symbol cannot be registered")
	}

	var id ID
	var err error
	if sym.IsTerminal() {
		id, err = newID(grammar.KindTerminal, false, w.termNum)
		if err != nil {
			return IDNil, err
		}
		w.termNum++
		w.terms = append(w.terms, sym)
	} else {
		id, err = newID(grammar.KindNonTerminal, false, w.nonTermNum)
		if err != nil {
			return IDNil, err
		}
		w.nonTermNum++
		w.nonTerms = append(w.nonTerms, sym)
	}
	w.sym2ID[sym] = id
	w.id2Sym[id] = sym
	return id, nil
}

func (r *TableReader) ToID(sym grammar.Symbol) (ID, bool) {
	id, ok := r.sym2ID[sym]
	return id, ok
}

func (r *TableReader) ToSymbol(id ID) (grammar.Symbol, bool) {
	sym, ok := r.id2Sym[id]
	return sym, ok
}

// NonTerminalCount is one greater than the largest non-terminal number.
func (r *TableReader) NonTerminalCount() int {
	return r.nonTermNum.Int()
}

// TerminalCount is one greater than the largest terminal number.
func (r *TableReader) TerminalCount() int {
	return r.termNum.Int()
}

// NonTerminal returns the non-terminal having num.
func (r *TableReader) NonTerminal(num Num) grammar.Symbol {
	return r.nonTerms[num.Int()]
}
