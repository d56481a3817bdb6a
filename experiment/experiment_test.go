package experiment

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	batchID string
	run     *Run
}

type memoryRecorder struct {
	runs []recorded
	err  error
}

func (r *memoryRecorder) SaveRun(ctx context.Context, batchID string, run *Run) error {
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, recorded{batchID: batchID, run: run})
	return nil
}

func TestCombinations(t *testing.T) {
	assert.Equal(t, []Combination{
		{Probabilistic: false, CNF: false, WantMember: false},
		{Probabilistic: false, CNF: false, WantMember: true},
		{Probabilistic: false, CNF: true, WantMember: false},
		{Probabilistic: false, CNF: true, WantMember: true},
		{Probabilistic: true, CNF: true, WantMember: false},
		{Probabilistic: true, CNF: true, WantMember: true},
	}, Combinations())
}

func TestRunner_Run(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rec := &memoryRecorder{}
		runs, err := NewRunner(seed, RecordTo(rec, "batch")).Run(context.Background())
		require.NoError(t, err)
		require.Len(t, runs, 6)
		require.Len(t, rec.runs, 6)

		for i, run := range runs {
			assert.Equal(t, i+1, run.Number)
			assert.Equal(t, "batch", rec.runs[i].batchID)
			assert.Same(t, run, rec.runs[i].run)
			assert.NotEmpty(t, run.Grammar)
			if run.CNF {
				assert.Empty(t, run.Converted)
			} else {
				assert.NotEmpty(t, run.Converted)
			}
			if !run.WordFound {
				continue
			}
			assert.Equal(t, run.WantMember, run.Member, "seed: %v, run: %+v", seed, run)
			if run.Probabilistic && run.Member {
				assert.Greater(t, run.Probability, 0.0)
				assert.LessOrEqual(t, run.Probability, 1.0)
			}
			if !run.Member {
				assert.Zero(t, run.Probability)
			}
		}
	}
}

func TestRunner_Deterministic(t *testing.T) {
	runs1, err := NewRunner(1234).Run(context.Background())
	require.NoError(t, err)
	runs2, err := NewRunner(1234).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runs1, runs2)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runs, err := NewRunner(1).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, runs)
}

func TestRunner_RecorderError(t *testing.T) {
	cause := errors.New("disk full")
	runs, err := NewRunner(1, RecordTo(&memoryRecorder{err: cause}, "b")).Run(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, runs)
}

func TestReport(t *testing.T) {
	runs := []*Run{
		{
			Number:      1,
			Combination: Combination{CNF: false, WantMember: true},
			Grammar:     "S -> a S a\nS -> b\n",
			Converted:   "S -> T_A Y1\n",
			WordFound:   true,
			Word:        "aba",
			Member:      true,
		},
		{
			Number:      2,
			Combination: Combination{Probabilistic: true, CNF: true, WantMember: true},
			Grammar:     "S -> a 1\n",
			WordFound:   true,
			Word:        "a",
			Member:      true,
			Probability: 1,
		},
		{
			Number:      3,
			Combination: Combination{Probabilistic: true, CNF: true},
			Grammar:     "S -> a 1\n",
			WordFound:   true,
			Word:        "b",
		},
		{
			Number:      4,
			Combination: Combination{CNF: true},
			Grammar:     "S -> a\n",
		},
	}
	var b bytes.Buffer
	require.NoError(t, Report(&b, runs))
	out := b.String()

	for _, want := range []string{
		"EXPERIMENT 1:",
		"Converted grammar (CNF):\nS -> T_A Y1\n",
		"Word: aba\nThe word is a member of the language: true\n",
		"Generated probabilistic grammar (CNF):\nS -> a 1\n",
		"Probability of the word: 1\n",
		"The word is not a member of the language (probability = 0)",
		"No non-member word could be generated.",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 4, strings.Count(out, separator))
}
