package spec

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/nihei9/cky/grammar"
)

// startFirst orders rules so that the rules of start come first. Reading the output back then
// yields the same start symbol.
func startFirst[R any](start grammar.Symbol, rules []R, head func(R) grammar.Symbol) []R {
	ordered := make([]R, 0, len(rules))
	for _, r := range rules {
		if head(r) == start {
			ordered = append(ordered, r)
		}
	}
	for _, r := range rules {
		if head(r) != start {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

func WriteGrammar(w io.Writer, g *grammar.Grammar) error {
	rules := startFirst(g.Start, g.Rules, func(r *grammar.Rule) grammar.Symbol {
		return r.Head
	})
	for _, r := range rules {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}

func WriteProbabilisticGrammar(w io.Writer, g *grammar.ProbabilisticGrammar) error {
	rules := startFirst(g.Start, g.Rules, func(r *grammar.ProbabilisticRule) grammar.Symbol {
		return r.Head
	})
	for _, r := range rules {
		_, err := fmt.Fprintf(w, "%v %v\n", r.Rule, strconv.FormatFloat(r.Probability, 'g', -1, 64))
		if err != nil {
			return err
		}
	}
	return nil
}

type symbolJSON struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type ruleJSON struct {
	Head        string        `json:"head"`
	Body        []*symbolJSON `json:"body"`
	Probability *float64      `json:"probability,omitempty"`
}

type grammarJSON struct {
	Start string      `json:"start"`
	Rules []*ruleJSON `json:"rules"`
}

func genRuleJSON(r *grammar.Rule) *ruleJSON {
	body := make([]*symbolJSON, 0, len(r.Body))
	for _, sym := range r.Body {
		body = append(body, &symbolJSON{
			Kind: sym.Kind.String(),
			Name: sym.Name,
		})
	}
	return &ruleJSON{
		Head: r.Head.Name,
		Body: body,
	}
}

// MarshalGrammarJSON encodes g as indented JSON. An empty body is an empty array.
func MarshalGrammarJSON(g *grammar.Grammar) ([]byte, error) {
	rules := make([]*ruleJSON, 0, len(g.Rules))
	for _, r := range g.Rules {
		rules = append(rules, genRuleJSON(r))
	}
	return json.MarshalIndent(&grammarJSON{
		Start: g.Start.Name,
		Rules: rules,
	}, "", "  ")
}

func MarshalProbabilisticGrammarJSON(g *grammar.ProbabilisticGrammar) ([]byte, error) {
	rules := make([]*ruleJSON, 0, len(g.Rules))
	for _, r := range g.Rules {
		rj := genRuleJSON(r.Rule)
		prob := r.Probability
		rj.Probability = &prob
		rules = append(rules, rj)
	}
	return json.MarshalIndent(&grammarJSON{
		Start: g.Start.Name,
		Rules: rules,
	}, "", "  ")
}
