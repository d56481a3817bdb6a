package spec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	verr "github.com/nihei9/cky/error"
)

type RootNode struct {
	Rules []*RuleNode
}

type RuleNode struct {
	Head         string
	Alternatives []*AlternativeNode
	Pos          Position
}

// AlternativeNode is one body of a rule. An empty Symbols denotes ε.
type AlternativeNode struct {
	Symbols     []string
	Probability float64
	Pos         Position
}

// Parse reads a grammar source line by line. A malformed line, or a malformed alternative of an
// otherwise well-formed line, is skipped and reported in the returned SpecErrors. The error
// result is reserved for failures of reading src itself.
func Parse(src io.Reader, probabilistic bool) (*RootNode, verr.SpecErrors, error) {
	p := &parser{
		probabilistic: probabilistic,
	}
	root, err := p.parse(src)
	if err != nil {
		return nil, nil, err
	}
	return root, p.errs, nil
}

type parser struct {
	probabilistic bool
	errs          verr.SpecErrors
}

func (p *parser) parse(src io.Reader) (*RootNode, error) {
	root := &RootNode{}
	s := bufio.NewScanner(src)
	row := 0
	for s.Scan() {
		row++
		line := s.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		toks, err := tokenize(line, row)
		if err != nil {
			return nil, err
		}
		rule := p.parseRule(toks, row)
		if rule == nil {
			continue
		}
		root.Rules = append(root.Rules, rule)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

func (p *parser) report(cause error, detail string, pos Position) {
	p.errs = append(p.errs, &verr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func (p *parser) parseRule(toks []*token, row int) *RuleNode {
	arrow := -1
	for i, tok := range toks {
		if tok.kind == tokenKindArrow {
			arrow = i
			break
		}
	}
	switch {
	case arrow < 0:
		p.report(synErrNoArrow, "", newPosition(row, 0))
		return nil
	case arrow == 0:
		p.report(synErrNoHead, "", toks[0].pos)
		return nil
	case arrow > 1:
		p.report(synErrInvalidHead, joinTokens(toks[:arrow]), toks[0].pos)
		return nil
	}
	head := toks[0]
	if head.kind != tokenKindSymbol && head.kind != tokenKindNumber {
		p.report(synErrInvalidHead, head.text, head.pos)
		return nil
	}
	if isEpsilon(head.text) || !classify(head.text).IsNonTerminal() {
		p.report(synErrInvalidHead, head.text, head.pos)
		return nil
	}

	rule := &RuleNode{
		Head: head.text,
		Pos:  head.pos,
	}
	groupPos := toks[arrow].pos
	var group []*token
	flush := func() {
		alt := p.parseAlternative(group, groupPos)
		if alt != nil {
			rule.Alternatives = append(rule.Alternatives, alt)
		}
		group = nil
	}
	for _, tok := range toks[arrow+1:] {
		if tok.kind == tokenKindOr {
			flush()
			groupPos = tok.pos
			continue
		}
		group = append(group, tok)
	}
	flush()
	if len(rule.Alternatives) == 0 {
		return nil
	}
	return rule
}

// parseAlternative parses the tokens between two separators. pos is the position of the
// separator preceding the alternative.
func (p *parser) parseAlternative(toks []*token, pos Position) *AlternativeNode {
	alt := &AlternativeNode{
		Pos: pos,
	}
	if len(toks) > 0 {
		alt.Pos = toks[0].pos
	}

	body := toks
	if p.probabilistic {
		var prob *token
		n := len(toks)
		switch {
		case n >= 1 && isNumber(toks[n-1]):
			prob = toks[n-1]
			body = toks[:n-1]
		case n >= 3 && toks[n-1].kind == tokenKindRBracket && isNumber(toks[n-2]) && toks[n-3].kind == tokenKindLBracket:
			prob = toks[n-2]
			body = toks[:n-3]
		}
		if prob == nil {
			if n < 2 {
				p.report(synErrTooFewTokens, joinTokens(toks), alt.Pos)
				return nil
			}
			p.report(synErrNoProbability, joinTokens(toks), alt.Pos)
			return nil
		}
		if len(body) == 0 {
			p.report(synErrTooFewTokens, joinTokens(toks), alt.Pos)
			return nil
		}
		v, err := strconv.ParseFloat(prob.text, 64)
		if err != nil || v <= 0 || v > 1 {
			p.report(synErrInvalidProbability, prob.text, prob.pos)
			return nil
		}
		alt.Probability = v
	}

	var syms []string
	for _, tok := range body {
		switch tok.kind {
		case tokenKindSymbol, tokenKindNumber:
			syms = append(syms, tok.text)
		case tokenKindLBracket, tokenKindRBracket:
			p.report(synErrUnexpectedBracket, "", tok.pos)
			return nil
		case tokenKindArrow:
			p.report(synErrUnexpectedArrow, "", tok.pos)
			return nil
		default:
			p.report(synErrInvalidToken, tok.text, tok.pos)
			return nil
		}
	}
	for _, sym := range syms {
		if !isEpsilon(sym) {
			continue
		}
		if len(syms) > 1 {
			p.report(synErrMixedEpsilon, joinTokens(body), alt.Pos)
			return nil
		}
		syms = nil
		break
	}
	alt.Symbols = syms
	return alt
}

// isNumber also accepts a digit-only symbol token.
func isNumber(tok *token) bool {
	switch tok.kind {
	case tokenKindNumber:
		return true
	case tokenKindSymbol:
		_, err := strconv.ParseFloat(tok.text, 64)
		return err == nil
	}
	return false
}

func joinTokens(toks []*token) string {
	texts := make([]string, 0, len(toks))
	for _, tok := range toks {
		texts = append(texts, tok.text)
	}
	return strings.Join(texts, " ")
}
