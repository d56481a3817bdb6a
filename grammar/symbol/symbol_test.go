package symbol

import (
	"testing"

	"github.com/nihei9/cky/grammar"
)

func TestTable(t *testing.T) {
	tab := NewTable()
	w := tab.Writer()
	_, _ = w.RegisterStart(grammar.N("S"))
	_, _ = w.Register(grammar.N("A"))
	_, _ = w.Register(grammar.N("B"))
	_, _ = w.Register(grammar.T("a"))
	_, _ = w.Register(grammar.T("b"))
	// Same spelling, different kind.
	_, _ = w.Register(grammar.T("A"))

	tests := []struct {
		sym           grammar.Symbol
		num           Num
		isStart       bool
		isNonTerminal bool
		isTerminal    bool
	}{
		{
			sym:           grammar.N("S"),
			num:           1,
			isStart:       true,
			isNonTerminal: true,
		},
		{
			sym:           grammar.N("A"),
			num:           2,
			isNonTerminal: true,
		},
		{
			sym:           grammar.N("B"),
			num:           3,
			isNonTerminal: true,
		},
		{
			sym:        grammar.T("a"),
			num:        1,
			isTerminal: true,
		},
		{
			sym:        grammar.T("b"),
			num:        2,
			isTerminal: true,
		},
		{
			sym:        grammar.T("A"),
			num:        3,
			isTerminal: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.sym.GoString(), func(t *testing.T) {
			r := tab.Reader()
			id, ok := r.ToID(tt.sym)
			if !ok {
				t.Fatalf("symbol was not found")
			}
			testIDProperty(t, id, false, tt.isStart, tt.isNonTerminal, tt.isTerminal)
			if id.Num() != tt.num {
				t.Fatalf("unexpected number; want: %v, got: %v", tt.num, id.Num())
			}
			sym, ok := r.ToSymbol(id)
			if !ok {
				t.Fatalf("symbol was not found by ID")
			}
			if sym != tt.sym {
				t.Fatalf("unexpected symbol; want: %#v, got: %#v", tt.sym, sym)
			}
		})
	}

	t.Run("Nil", func(t *testing.T) {
		testIDProperty(t, IDNil, true, false, false, false)
	})

	t.Run("counts", func(t *testing.T) {
		r := tab.Reader()
		if c := r.NonTerminalCount(); c != 4 {
			t.Fatalf("unexpected non-terminal count; want: 4, got: %v", c)
		}
		if c := r.TerminalCount(); c != 4 {
			t.Fatalf("unexpected terminal count; want: 4, got: %v", c)
		}
		if s := r.NonTerminal(3); s != grammar.N("B") {
			t.Fatalf("unexpected non-terminal; want: B, got: %#v", s)
		}
	})

	t.Run("registering twice returns the same ID", func(t *testing.T) {
		id1, err := w.Register(grammar.N("A"))
		if err != nil {
			t.Fatal(err)
		}
		id2, err := w.Register(grammar.N("A"))
		if err != nil {
			t.Fatal(err)
		}
		if id1 != id2 {
			t.Fatalf("IDs are mismatched; %v != %v", id1, id2)
		}
	})

	t.Run("a terminal cannot be the start symbol", func(t *testing.T) {
		_, err := NewTable().Writer().RegisterStart(grammar.T("a"))
		if err == nil {
			t.Fatal("an error was expected")
		}
	})

	t.Run("a nil symbol cannot be registered", func(t *testing.T) {
		_, err := NewTable().Writer().Register(grammar.Symbol{})
		if err == nil {
			t.Fatal("an error was expected")
		}
	})
}

func testIDProperty(t *testing.T, id ID, isNil, isStart, isNonTerminal, isTerminal bool) {
	t.Helper()

	if v := id.IsNil(); v != isNil {
		t.Fatalf("isNil property is mismatched; want: %v, got: %v", isNil, v)
	}
	if v := id.IsStart(); v != isStart {
		t.Fatalf("isStart property is mismatched; want: %v, got: %v", isStart, v)
	}
	if v := id.IsNonTerminal(); v != isNonTerminal {
		t.Fatalf("isNonTerminal property is mismatched; want: %v, got: %v", isNonTerminal, v)
	}
	if v := id.IsTerminal(); v != isTerminal {
		t.Fatalf("isTerminal property is mismatched; want: %v, got: %v", isTerminal, v)
	}
}
