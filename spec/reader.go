// Package spec reads and writes the text format of grammars and words.
//
// A grammar file has one or more rules per line:
//
//	S -> A B | a
//	A → a | ε
//
// Lines that are blank or start with # are ignored. In a probabilistic grammar every alternative
// ends with its probability, either bare or surrounded by brackets:
//
//	S -> A B 1.0
//	B -> b [0.6] | c [0.4]
//
// A symbol whose letters are all lowercase is a terminal; any other symbol is a non-terminal.
package spec

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	verr "github.com/nihei9/cky/error"
	"github.com/nihei9/cky/grammar"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cky.spec")

type readConfig struct {
	start      string
	sourceName string
	filePath   string
}

type ReadOption func(c *readConfig)

// StartSymbol overrides the start symbol, which is the head of the first rule by default. The
// symbol does not need to have a rule.
func StartSymbol(name string) ReadOption {
	return func(c *readConfig) {
		c.start = name
	}
}

// SourceName sets the name reported in diagnostics.
func SourceName(name string) ReadOption {
	return func(c *readConfig) {
		c.sourceName = name
	}
}

func isEpsilon(text string) bool {
	return text == grammar.Epsilon || text == "''"
}

// classify tags a token with its kind. A token having at least one letter, all of them
// lowercase, is a terminal.
func classify(text string) grammar.Symbol {
	hasLetter := false
	for _, c := range text {
		if !unicode.IsLetter(c) {
			continue
		}
		if !unicode.IsLower(c) {
			return grammar.N(text)
		}
		hasLetter = true
	}
	if hasLetter {
		return grammar.T(text)
	}
	return grammar.N(text)
}

func symbols(texts []string) []grammar.Symbol {
	syms := make([]grammar.Symbol, 0, len(texts))
	for _, text := range texts {
		syms = append(syms, classify(text))
	}
	return syms
}

func parseSource(src io.Reader, probabilistic bool, opts []ReadOption) (*RootNode, grammar.Symbol, verr.SpecErrors, error) {
	config := &readConfig{}
	for _, opt := range opts {
		opt(config)
	}

	root, errs, err := Parse(src, probabilistic)
	if err != nil {
		return nil, grammar.Symbol{}, nil, err
	}
	for _, e := range errs {
		e.SourceName = config.sourceName
		e.FilePath = config.filePath
		log.Warningf("skipped: %v", e)
	}

	var start grammar.Symbol
	switch {
	case config.start != "":
		start = grammar.N(config.start)
	case len(root.Rules) > 0:
		start = grammar.N(root.Rules[0].Head)
	default:
		return nil, grammar.Symbol{}, errs, &verr.SpecError{
			Cause:      synErrNoRule,
			FilePath:   config.filePath,
			SourceName: config.sourceName,
		}
	}
	return root, start, errs, nil
}

// ReadGrammar reads a context-free grammar. The returned SpecErrors lists the lines and
// alternatives that were skipped; they do not prevent the grammar from being built.
func ReadGrammar(src io.Reader, opts ...ReadOption) (*grammar.Grammar, verr.SpecErrors, error) {
	root, start, errs, err := parseSource(src, false, opts)
	if err != nil {
		return nil, errs, err
	}

	var rules []*grammar.Rule
	for _, rn := range root.Rules {
		head := grammar.N(rn.Head)
		for _, alt := range rn.Alternatives {
			r, err := grammar.NewRule(head, symbols(alt.Symbols)...)
			if err != nil {
				return nil, errs, err
			}
			rules = append(rules, r)
		}
	}
	g, err := grammar.NewGrammar(start, rules)
	if err != nil {
		return nil, errs, err
	}
	log.Debugf("read a grammar: start: %v, rules: %v, skipped: %v", g.Start, len(g.Rules), len(errs))
	return g, errs, nil
}

// ReadProbabilisticGrammar reads a grammar whose alternatives carry probabilities.
func ReadProbabilisticGrammar(src io.Reader, opts ...ReadOption) (*grammar.ProbabilisticGrammar, verr.SpecErrors, error) {
	root, start, errs, err := parseSource(src, true, opts)
	if err != nil {
		return nil, errs, err
	}

	var rules []*grammar.ProbabilisticRule
	for _, rn := range root.Rules {
		head := grammar.N(rn.Head)
		for _, alt := range rn.Alternatives {
			r, err := grammar.NewProbabilisticRule(alt.Probability, head, symbols(alt.Symbols)...)
			if err != nil {
				return nil, errs, err
			}
			rules = append(rules, r)
		}
	}
	g, err := grammar.NewProbabilisticGrammar(start, rules)
	if err != nil {
		return nil, errs, err
	}
	log.Debugf("read a probabilistic grammar: start: %v, rules: %v, skipped: %v", g.Start, len(g.Rules), len(errs))
	return g, errs, nil
}

func withFile(path string, opts []ReadOption) []ReadOption {
	return append([]ReadOption{
		SourceName(path),
		func(c *readConfig) {
			c.filePath = path
		},
	}, opts...)
}

func ReadGrammarFile(path string, opts ...ReadOption) (*grammar.Grammar, verr.SpecErrors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()
	return ReadGrammar(f, withFile(path, opts)...)
}

func ReadProbabilisticGrammarFile(path string, opts ...ReadOption) (*grammar.ProbabilisticGrammar, verr.SpecErrors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()
	return ReadProbabilisticGrammar(f, withFile(path, opts)...)
}

// ReadWord reads the whole of src, trims surrounding white spaces, and makes one terminal of
// every remaining rune.
func ReadWord(src io.Reader) ([]grammar.Symbol, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return grammar.Word(strings.TrimSpace(string(b))), nil
}

func ReadWordFile(path string) ([]grammar.Symbol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the word file %s: %w", path, err)
	}
	defer f.Close()
	return ReadWord(f)
}
