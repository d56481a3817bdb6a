package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cky.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.StartSymbol)
	assert.Equal(t, 8, cfg.Generator.MaxWordLength)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
start_symbol: E
log:
  verbosity: 2
  file: cky.log
generator:
  seed: 42
experiment:
  output: out.txt
  database: runs.db
parser:
  log_space: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "E", cfg.StartSymbol)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "cky.log", cfg.Log.File)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Equal(t, 8, cfg.Generator.MaxWordLength, "keys absent from the file keep their defaults")
	assert.Equal(t, "out.txt", cfg.Experiment.Output)
	assert.Equal(t, "runs.db", cfg.Experiment.Database)
	assert.True(t, cfg.Parser.LogSpace)
	assert.False(t, cfg.Parser.AcceptEmpty)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "start_symbol: E\ngenerator:\n  seed: 42\n")
	t.Setenv("CKY_START_SYMBOL", "X")
	t.Setenv("CKY_GENERATOR_SEED", "7")
	t.Setenv("CKY_PARSER_ACCEPT_EMPTY", "true")
	t.Setenv("CKY_EXPERIMENT_DATABASE", "env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "X", cfg.StartSymbol)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.True(t, cfg.Parser.AcceptEmpty)
	assert.Equal(t, "env.db", cfg.Experiment.Database)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("a malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log: [1, 2"))
		assert.Error(t, err)
	})

	t.Run("a malformed integer", func(t *testing.T) {
		t.Setenv("CKY_LOG_VERBOSITY", "loud")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("a malformed boolean", func(t *testing.T) {
		t.Setenv("CKY_PARSER_LOG_SPACE", "maybe")
		_, err := Load("")
		assert.Error(t, err)
	})
}
