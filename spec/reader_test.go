package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	verr "github.com/nihei9/cky/error"
	"github.com/nihei9/cky/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleTexts(rules []*grammar.Rule) []string {
	var texts []string
	for _, r := range rules {
		texts = append(texts, r.String())
	}
	return texts
}

func causes(errs verr.SpecErrors) []error {
	var cs []error
	for _, e := range errs {
		cs = append(cs, e.Cause)
	}
	return cs
}

func TestReadGrammar(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		opts    []ReadOption
		start   grammar.Symbol
		rules   []string
		errs    []error
	}{
		{
			caption: "alternatives, both arrows, comments and blank lines",
			src: `
# a comment
S -> A B | b
  # an indented comment
A → a | ε

B -> ''
`,
			start: grammar.N("S"),
			rules: []string{
				"S -> A B",
				"S -> b",
				"A -> a",
				"A -> ε",
				"B -> ε",
			},
		},
		{
			caption: "an empty alternative is ε",
			src:     "S -> a S |",
			start:   grammar.N("S"),
			rules: []string{
				"S -> a S",
				"S -> ε",
			},
		},
		{
			caption: "duplicate rules are read once",
			src:     "S -> a | a\nS -> a",
			start:   grammar.N("S"),
			rules: []string{
				"S -> a",
			},
		},
		{
			caption: "the start symbol can be overridden",
			src:     "A -> a\nS -> A A",
			opts:    []ReadOption{StartSymbol("S")},
			start:   grammar.N("S"),
			rules: []string{
				"A -> a",
				"S -> A A",
			},
		},
		{
			caption: "a start symbol without rules is kept",
			src:     "A -> a",
			opts:    []ReadOption{StartSymbol("S")},
			start:   grammar.N("S"),
			rules: []string{
				"A -> a",
			},
		},
		{
			caption: "malformed lines are skipped",
			src: `S -> A
S A
-> a
S T -> a
a -> b
A -> a ε
A -> a ! | a
A -> [ a ]
A -> a -> b
`,
			start: grammar.N("S"),
			rules: []string{
				"S -> A",
				"A -> a",
			},
			errs: []error{
				synErrNoArrow,
				synErrNoHead,
				synErrInvalidHead,
				synErrInvalidHead,
				synErrMixedEpsilon,
				synErrInvalidToken,
				synErrUnexpectedBracket,
				synErrUnexpectedArrow,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, errs, err := ReadGrammar(strings.NewReader(tt.src), tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.start, g.Start)
			assert.Equal(t, tt.rules, ruleTexts(g.Rules))
			assert.Equal(t, tt.errs, causes(errs))
		})
	}
}

func TestReadGrammar_Classification(t *testing.T) {
	g, errs, err := ReadGrammar(strings.NewReader("Expr -> Expr plus Term | x1 | T_A | Y1 | ab"))
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, g.Rules, 5)
	assert.Equal(t, []grammar.Symbol{grammar.N("Expr"), grammar.T("plus"), grammar.N("Term")}, g.Rules[0].Body)
	assert.Equal(t, []grammar.Symbol{grammar.T("x1")}, g.Rules[1].Body)
	assert.Equal(t, []grammar.Symbol{grammar.N("T_A")}, g.Rules[2].Body)
	assert.Equal(t, []grammar.Symbol{grammar.N("Y1")}, g.Rules[3].Body)
	assert.Equal(t, []grammar.Symbol{grammar.T("ab")}, g.Rules[4].Body)
}

func TestReadGrammar_NoRule(t *testing.T) {
	_, _, err := ReadGrammar(strings.NewReader("# nothing\n\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, synErrNoRule))
}

func TestReadGrammar_Diagnostics(t *testing.T) {
	_, errs, err := ReadGrammar(strings.NewReader("S -> a\nS a\n"), SourceName("test.txt"))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Row)
	assert.Equal(t, "test.txt", errs[0].SourceName)
	assert.Contains(t, errs.Error(), "test.txt: 2: error: syntax error")
}

func TestReadProbabilisticGrammar(t *testing.T) {
	src := `S -> A B 1.0
A -> a [1.0]
B -> b 0.6 | c [0.4]
B -> b
C -> 0.5
C -> c d
C -> c 1.5
C -> ε 0.3 | c 0.7
D -> d 1
`
	g, errs, err := ReadProbabilisticGrammar(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, grammar.N("S"), g.Start)

	var texts []string
	for _, r := range g.Rules {
		texts = append(texts, r.String())
	}
	assert.Equal(t, []string{
		"S -> A B 1",
		"A -> a 1",
		"B -> b 0.6",
		"B -> c 0.4",
		"C -> ε 0.3",
		"C -> c 0.7",
		"D -> d 1",
	}, texts)
	assert.Equal(t, []error{
		synErrTooFewTokens,
		synErrTooFewTokens,
		synErrNoProbability,
		synErrInvalidProbability,
	}, causes(errs))
}

func TestReadWord(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		word    string
	}{
		{
			caption: "surrounding white spaces are trimmed",
			src:     "  aab \n",
			word:    "aab",
		},
		{
			caption: "an empty source is the empty word",
			src:     "\n",
			word:    "",
		},
		{
			caption: "inner white spaces are symbols",
			src:     "a b",
			word:    "a b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			w, err := ReadWord(strings.NewReader(tt.src))
			require.NoError(t, err)
			assert.Equal(t, grammar.Word(tt.word), w)
		})
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	gPath := filepath.Join(dir, "g.txt")
	wPath := filepath.Join(dir, "w.txt")
	require.NoError(t, os.WriteFile(gPath, []byte("S -> A B\nA -> a\nB b\nB -> b\n"), 0644))
	require.NoError(t, os.WriteFile(wPath, []byte("ab\n"), 0644))

	g, errs, err := ReadGrammarFile(gPath)
	require.NoError(t, err)
	assert.Len(t, g.Rules, 3)
	require.Len(t, errs, 1)
	assert.Equal(t, gPath, errs[0].FilePath)
	assert.Contains(t, errs[0].Error(), "\n    B b")

	w, err := ReadWordFile(wPath)
	require.NoError(t, err)
	assert.Equal(t, "ab", grammar.WordString(w))

	_, _, err = ReadGrammarFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestWriteGrammar_RoundTrip(t *testing.T) {
	n := grammar.N
	term := grammar.T
	g, err := grammar.NewGrammar(n("S_START"), []*grammar.Rule{
		grammar.MustRule(n("T_A"), term("a")),
		grammar.MustRule(n("S_START"), n("T_A"), n("Y1")),
		grammar.MustRule(n("Y1"), n("S"), n("T_A")),
		grammar.MustRule(n("S"), term("b")),
		grammar.MustRule(n("S_START")),
	})
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, WriteGrammar(&b, g))
	assert.Equal(t, "S_START -> T_A Y1\nS_START -> ε\nT_A -> a\nY1 -> S T_A\nS -> b\n", b.String())

	rg, errs, err := ReadGrammar(&b)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, g.Start, rg.Start)
	assert.ElementsMatch(t, ruleTexts(g.Rules), ruleTexts(rg.Rules))
}

func TestWriteProbabilisticGrammar_RoundTrip(t *testing.T) {
	n := grammar.N
	term := grammar.T
	g, err := grammar.NewProbabilisticGrammar(n("S"), []*grammar.ProbabilisticRule{
		grammar.MustProbabilisticRule(1.0, n("S"), n("A"), n("B")),
		grammar.MustProbabilisticRule(1.0, n("A"), term("a")),
		grammar.MustProbabilisticRule(0.6, n("B"), term("b")),
		grammar.MustProbabilisticRule(0.4, n("B")),
	})
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, WriteProbabilisticGrammar(&b, g))
	assert.Equal(t, "S -> A B 1\nA -> a 1\nB -> b 0.6\nB -> ε 0.4\n", b.String())

	rg, errs, err := ReadProbabilisticGrammar(&b)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, g.String(), rg.String())
}

func TestMarshalGrammarJSON(t *testing.T) {
	g, err := grammar.NewGrammar(grammar.N("S"), []*grammar.Rule{
		grammar.MustRule(grammar.N("S"), grammar.N("A"), grammar.T("b")),
		grammar.MustRule(grammar.N("S")),
	})
	require.NoError(t, err)

	b, err := MarshalGrammarJSON(g)
	require.NoError(t, err)

	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &v))
	assert.Equal(t, "S", v["start"])
	rules := v["rules"].([]interface{})
	require.Len(t, rules, 2)
	first := rules[0].(map[string]interface{})
	assert.Equal(t, "S", first["head"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"kind": "non-terminal", "name": "A"},
		map[string]interface{}{"kind": "terminal", "name": "b"},
	}, first["body"])
	assert.NotContains(t, first, "probability")
	assert.Equal(t, []interface{}{}, rules[1].(map[string]interface{})["body"])
}
