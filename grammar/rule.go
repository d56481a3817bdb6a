package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Epsilon is how the empty body is spelled when a rule is printed.
const Epsilon = "ε"

type RuleID [32]byte

func (id RuleID) String() string {
	return hex.EncodeToString(id[:])
}

func genRuleID(head Symbol, body []Symbol) RuleID {
	seq := head.byte()
	for _, sym := range body {
		seq = append(seq, sym.byte()...)
	}
	return RuleID(sha256.Sum256(seq))
}

// Rule rewrites Head into Body. An empty body denotes the empty string.
type Rule struct {
	id   RuleID
	Head Symbol
	Body []Symbol
}

func NewRule(head Symbol, body ...Symbol) (*Rule, error) {
	if head.IsNil() {
		return nil, fmt.Errorf("%w; head: %v, body: %v", semErrNilSymbol, head, body)
	}
	if !head.IsNonTerminal() {
		return nil, fmt.Errorf("%w; head: %v", semErrTerminalHead, head)
	}
	for _, sym := range body {
		if sym.IsNil() {
			return nil, fmt.Errorf("%w; head: %v, body: %v", semErrNilSymbol, head, body)
		}
	}

	b := make([]Symbol, len(body))
	copy(b, body)
	return &Rule{
		id:   genRuleID(head, b),
		Head: head,
		Body: b,
	}, nil
}

// MustRule is like NewRule but panics on an invalid rule. It is intended for grammars written
// as literals.
func MustRule(head Symbol, body ...Symbol) *Rule {
	r, err := NewRule(head, body...)
	if err != nil {
		panic(err)
	}
	return r
}

// ID identifies a rule by its head and body. Rules built as struct literals get their ID
// computed on demand.
func (r *Rule) ID() RuleID {
	if r.id == (RuleID{}) {
		return genRuleID(r.Head, r.Body)
	}
	return r.id
}

func (r *Rule) Equals(q *Rule) bool {
	return r.ID() == q.ID()
}

func (r *Rule) IsEmpty() bool {
	return len(r.Body) == 0
}

// IsUnit reports whether the body is exactly one non-terminal.
func (r *Rule) IsUnit() bool {
	return len(r.Body) == 1 && r.Body[0].IsNonTerminal()
}

// IsTerminal reports whether the body is exactly one terminal.
func (r *Rule) IsTerminal() bool {
	return len(r.Body) == 1 && r.Body[0].IsTerminal()
}

// IsBinary reports whether the body is exactly two non-terminals.
func (r *Rule) IsBinary() bool {
	return len(r.Body) == 2 && r.Body[0].IsNonTerminal() && r.Body[1].IsNonTerminal()
}

func (r *Rule) String() string {
	if r.IsEmpty() {
		return fmt.Sprintf("%v -> %v", r.Head, Epsilon)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", r.Head)
	for _, sym := range r.Body {
		fmt.Fprintf(&b, " %v", sym)
	}
	return b.String()
}

// RuleSet is a duplicate-free set of rules that remembers insertion order.
type RuleSet struct {
	rules     []*Rule
	id2Rule   map[RuleID]*Rule
	head2Rule map[Symbol][]*Rule
}

func NewRuleSet(rules ...*Rule) *RuleSet {
	rs := &RuleSet{
		id2Rule:   map[RuleID]*Rule{},
		head2Rule: map[Symbol][]*Rule{},
	}
	for _, r := range rules {
		rs.Append(r)
	}
	return rs
}

// Append adds a rule and reports whether it was not in the set yet.
func (rs *RuleSet) Append(r *Rule) bool {
	id := r.ID()
	if _, ok := rs.id2Rule[id]; ok {
		return false
	}
	rs.rules = append(rs.rules, r)
	rs.id2Rule[id] = r
	rs.head2Rule[r.Head] = append(rs.head2Rule[r.Head], r)
	return true
}

func (rs *RuleSet) Contains(r *Rule) bool {
	_, ok := rs.id2Rule[r.ID()]
	return ok
}

func (rs *RuleSet) FindByHead(head Symbol) ([]*Rule, bool) {
	rules, ok := rs.head2Rule[head]
	return rules, ok
}

// Rules returns the rules in insertion order. The caller must not modify the returned slice.
func (rs *RuleSet) Rules() []*Rule {
	return rs.rules
}

func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Heads returns the distinct heads in order of first appearance.
func (rs *RuleSet) Heads() []Symbol {
	var heads []Symbol
	seen := map[Symbol]struct{}{}
	for _, r := range rs.rules {
		if _, ok := seen[r.Head]; ok {
			continue
		}
		seen[r.Head] = struct{}{}
		heads = append(heads, r.Head)
	}
	return heads
}

// Filter returns a new set holding the rules for which keep returns true.
func (rs *RuleSet) Filter(keep func(r *Rule) bool) *RuleSet {
	filtered := NewRuleSet()
	for _, r := range rs.rules {
		if keep(r) {
			filtered.Append(r)
		}
	}
	return filtered
}
