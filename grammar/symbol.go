package grammar

import "fmt"

type Kind string

const (
	KindNonTerminal = Kind("non-terminal")
	KindTerminal    = Kind("terminal")
)

func (k Kind) String() string {
	return string(k)
}

// Symbol is an atomic grammar element. The kind is fixed when the symbol is constructed and is
// never inferred from the spelling of the name.
type Symbol struct {
	Kind Kind
	Name string
}

// T returns a terminal symbol.
func T(name string) Symbol {
	return Symbol{
		Kind: KindTerminal,
		Name: name,
	}
}

// N returns a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{
		Kind: KindNonTerminal,
		Name: name,
	}
}

// Word converts a string into a sequence of terminal symbols, one per rune.
func Word(s string) []Symbol {
	word := make([]Symbol, 0, len(s))
	for _, r := range s {
		word = append(word, T(string(r)))
	}
	return word
}

func (s Symbol) IsNil() bool {
	return s.Name == ""
}

func (s Symbol) IsTerminal() bool {
	return !s.IsNil() && s.Kind == KindTerminal
}

func (s Symbol) IsNonTerminal() bool {
	return !s.IsNil() && s.Kind == KindNonTerminal
}

func (s Symbol) String() string {
	return s.Name
}

// GoString distinguishes terminals from non-terminals that share a spelling.
func (s Symbol) GoString() string {
	if s.IsTerminal() {
		return fmt.Sprintf("T(%q)", s.Name)
	}
	return fmt.Sprintf("N(%q)", s.Name)
}

func (s Symbol) byte() []byte {
	k := byte('n')
	if s.Kind == KindTerminal {
		k = 't'
	}
	b := make([]byte, 0, len(s.Name)+2)
	b = append(b, k)
	b = append(b, s.Name...)
	return append(b, 0)
}

// WordString concatenates the names of the symbols of a word.
func WordString(word []Symbol) string {
	var s string
	for _, sym := range word {
		s += sym.Name
	}
	return s
}
