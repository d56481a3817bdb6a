// Package cnf rewrites context-free grammars into Chomsky normal form.
package cnf

import (
	"fmt"

	"github.com/nihei9/cky/grammar"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cky.cnf")

const (
	defaultStartSuffix     = "_START"
	defaultAuxiliaryPrefix = "T_"
	defaultChainPrefix     = "Y"
)

type converterConfig struct {
	startSuffix     string
	auxiliaryPrefix string
	chainPrefix     string
}

type ConverterOption func(c *converterConfig)

// StartSuffix sets the suffix appended to the start symbol to make the isolated start symbol.
func StartSuffix(suffix string) ConverterOption {
	return func(c *converterConfig) {
		c.startSuffix = suffix
	}
}

// AuxiliaryPrefix sets the prefix of the non-terminals standing in for terminals.
func AuxiliaryPrefix(prefix string) ConverterOption {
	return func(c *converterConfig) {
		c.auxiliaryPrefix = prefix
	}
}

// ChainPrefix sets the prefix of the non-terminals introduced by binarization.
func ChainPrefix(prefix string) ConverterOption {
	return func(c *converterConfig) {
		c.chainPrefix = prefix
	}
}

// Converter holds only configuration. Every call of Convert owns its own fresh-name generator,
// so one Converter can be used repeatedly and concurrently.
type Converter struct {
	config *converterConfig
}

func NewConverter(opts ...ConverterOption) *Converter {
	config := &converterConfig{
		startSuffix:     defaultStartSuffix,
		auxiliaryPrefix: defaultAuxiliaryPrefix,
		chainPrefix:     defaultChainPrefix,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &Converter{
		config: config,
	}
}

// Convert converts g with the default options.
func Convert(g *grammar.Grammar) (*grammar.Grammar, error) {
	return NewConverter().Convert(g)
}

// Convert returns a CNF grammar generating the same language as g. The input grammar is not
// modified.
func (c *Converter) Convert(g *grammar.Grammar) (*grammar.Grammar, error) {
	if !g.Start.IsNonTerminal() {
		return nil, fmt.Errorf("cannot convert a grammar: a start symbol must be a non-terminal symbol; start: %#v", g.Start)
	}
	for _, r := range g.Rules {
		if !r.Head.IsNonTerminal() {
			return nil, fmt.Errorf("cannot convert a grammar: invalid rule: %v", r)
		}
	}

	conv := &conversion{
		config: c.config,
		names:  newNameGenerator(g),
		start:  g.Start,
		rules:  g.RuleSet(),
	}

	stages := []struct {
		name string
		run  func()
	}{
		{"start isolation", conv.isolateStart},
		{"epsilon elimination", conv.eliminateEpsilon},
		{"unit elimination", conv.eliminateUnits},
		{"terminal isolation", conv.isolateTerminals},
		{"binarization", conv.binarize},
	}
	for _, s := range stages {
		s.run()
		log.Debugf("%v: %v rules", s.name, conv.rules.Len())
	}

	cg := &grammar.Grammar{
		Start: conv.start,
		Rules: conv.rules.Rules(),
	}
	if err := Validate(cg); err != nil {
		return nil, fmt.Errorf("conversion produced a non-CNF grammar: %w", err)
	}
	log.Infof("converted %v rules into %v CNF rules", len(g.Rules), len(cg.Rules))
	return cg, nil
}

// conversion is the working state of a single Convert call. Each stage replaces rules with a
// new, duplicate-free set; the de-duplication step of the pipeline is therefore implicit.
type conversion struct {
	config *converterConfig
	names  *nameGenerator
	start  grammar.Symbol
	rules  *grammar.RuleSet
}

func mustRule(head grammar.Symbol, body ...grammar.Symbol) *grammar.Rule {
	// Heads reaching this point are non-terminals checked by Convert or minted by the converter.
	return grammar.MustRule(head, body...)
}
