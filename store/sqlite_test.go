package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nihei9/cky/experiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_SaveRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	r1 := &experiment.Run{
		Number:      1,
		Combination: experiment.Combination{CNF: false, WantMember: true},
		Grammar:     "S -> a S a\nS -> b\n",
		Converted:   "S -> b\n",
		WordFound:   true,
		Word:        "aba",
		Member:      true,
	}
	r2 := &experiment.Run{
		Number:      2,
		Combination: experiment.Combination{Probabilistic: true, CNF: true, WantMember: true},
		Grammar:     "S -> a 1\n",
		WordFound:   true,
		Word:        "a",
		Member:      true,
		Probability: 0.25,
	}
	require.NoError(t, store.SaveRun(ctx, "b1", r2))
	require.NoError(t, store.SaveRun(ctx, "b1", r1))
	require.NoError(t, store.SaveRun(ctx, "b2", r1))

	runs, err := store.ListRuns(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []*experiment.Run{r1, r2}, runs)

	// Saving the same number again replaces the run.
	r1b := *r1
	r1b.Member = false
	r1b.Word = "abb"
	require.NoError(t, store.SaveRun(ctx, "b1", &r1b))
	runs, err = store.ListRuns(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, &r1b, runs[0])

	runs, err = store.ListRuns(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, runs)

	ids, err := store.ListBatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, ids)
}

func TestSQLiteStore_Recorder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	runs, err := experiment.NewRunner(7, experiment.RecordTo(store, "seed-7")).Run(ctx)
	require.NoError(t, err)

	loaded, err := store.ListRuns(ctx, "seed-7")
	require.NoError(t, err)
	assert.Equal(t, runs, loaded)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(context.Background(), "b", &experiment.Run{Number: 1, Grammar: "S -> a\n"}))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.ListRuns(context.Background(), "b")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "S -> a\n", runs[0].Grammar)
}
