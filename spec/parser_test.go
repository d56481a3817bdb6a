package spec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	alt := func(row, col int, prob float64, syms ...string) *AlternativeNode {
		return &AlternativeNode{
			Symbols:     syms,
			Probability: prob,
			Pos:         newPosition(row, col),
		}
	}
	rule := func(head string, row, col int, alts ...*AlternativeNode) *RuleNode {
		return &RuleNode{
			Head:         head,
			Alternatives: alts,
			Pos:          newPosition(row, col),
		}
	}

	tests := []struct {
		caption       string
		src           string
		probabilistic bool
		root          *RootNode
		causes        []error
	}{
		{
			caption: "alternatives keep their positions",
			src:     "S -> A B | b",
			root: &RootNode{
				Rules: []*RuleNode{
					rule("S", 1, 1,
						alt(1, 6, 0, "A", "B"),
						alt(1, 12, 0, "b"),
					),
				},
			},
		},
		{
			caption: "ε is an empty body",
			src:     "\n# comment\nA -> a | ε",
			root: &RootNode{
				Rules: []*RuleNode{
					rule("A", 3, 1,
						alt(3, 6, 0, "a"),
						alt(3, 10, 0),
					),
				},
			},
		},
		{
			caption:       "bare and bracketed probabilities",
			src:           "S -> A B 1.0\nB -> b [0.6] | c 0.4",
			probabilistic: true,
			root: &RootNode{
				Rules: []*RuleNode{
					rule("S", 1, 1,
						alt(1, 6, 1, "A", "B"),
					),
					rule("B", 2, 1,
						alt(2, 6, 0.6, "b"),
						alt(2, 16, 0.4, "c"),
					),
				},
			},
		},
		{
			caption:       "a malformed alternative is skipped and the rest of the rule is kept",
			src:           "B -> b c | c 1.5 | d 0.5",
			probabilistic: true,
			root: &RootNode{
				Rules: []*RuleNode{
					rule("B", 1, 1,
						alt(1, 20, 0.5, "d"),
					),
				},
			},
			causes: []error{
				synErrNoProbability,
				synErrInvalidProbability,
			},
		},
		{
			caption: "a rule whose alternatives are all malformed is skipped",
			src:     "S -> a ε\nS -> a -> b\nS -> a",
			root: &RootNode{
				Rules: []*RuleNode{
					rule("S", 3, 1,
						alt(3, 6, 0, "a"),
					),
				},
			},
			causes: []error{
				synErrMixedEpsilon,
				synErrUnexpectedArrow,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, errs, err := Parse(strings.NewReader(tt.src), tt.probabilistic)
			require.NoError(t, err)
			assert.Equal(t, tt.causes, causes(errs))
			assert.Equal(t, tt.root, root)
		})
	}
}

func TestParse_ErrorPositions(t *testing.T) {
	_, errs, err := Parse(strings.NewReader("S -> a\nA B -> b\n\n  -> c"), false)
	require.NoError(t, err)
	require.Len(t, errs, 2)

	assert.Equal(t, synErrInvalidHead, errs[0].Cause)
	assert.Equal(t, "A B", errs[0].Detail)
	assert.Equal(t, 2, errs[0].Row)
	assert.Equal(t, 1, errs[0].Col)

	assert.Equal(t, synErrNoHead, errs[1].Cause)
	assert.Equal(t, 4, errs[1].Row)
	assert.Equal(t, 3, errs[1].Col)
}
