package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// StartSymbol overrides the start symbol of grammar files. An empty value keeps the head of
	// the first rule.
	StartSymbol string `yaml:"start_symbol"`
	Log         struct {
		Verbosity int    `yaml:"verbosity"`
		File      string `yaml:"file"`
	} `yaml:"log"`
	Generator struct {
		Seed          int64 `yaml:"seed"`
		MaxWordLength int   `yaml:"max_word_length"`
	} `yaml:"generator"`
	Experiment struct {
		Output   string `yaml:"output"`
		Database string `yaml:"database"`
	} `yaml:"experiment"`
	Parser struct {
		LogSpace    bool `yaml:"log_space"`
		AcceptEmpty bool `yaml:"accept_empty"`
	} `yaml:"parser"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Generator.Seed = 1
	cfg.Generator.MaxWordLength = 8
	cfg.Experiment.Output = "results.txt"
	return cfg
}

// Load builds a configuration from the defaults, the YAML file at path, and CKY_* environment
// variables, in that order of precedence from lowest to highest. A .env file in the working
// directory is loaded into the environment first. A missing YAML file is not an error; an empty
// path skips the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("cannot parse the config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CKY_START_SYMBOL"); v != "" {
		cfg.StartSymbol = v
	}
	if v := os.Getenv("CKY_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("CKY_EXPERIMENT_OUTPUT"); v != "" {
		cfg.Experiment.Output = v
	}
	if v := os.Getenv("CKY_EXPERIMENT_DATABASE"); v != "" {
		cfg.Experiment.Database = v
	}

	ints := []struct {
		key string
		set func(int64)
	}{
		{"CKY_LOG_VERBOSITY", func(n int64) { cfg.Log.Verbosity = int(n) }},
		{"CKY_GENERATOR_SEED", func(n int64) { cfg.Generator.Seed = n }},
		{"CKY_GENERATOR_MAX_WORD_LENGTH", func(n int64) { cfg.Generator.MaxWordLength = int(n) }},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", e.key, err)
		}
		e.set(n)
	}

	bools := []struct {
		key string
		set func(bool)
	}{
		{"CKY_PARSER_LOG_SPACE", func(b bool) { cfg.Parser.LogSpace = b }},
		{"CKY_PARSER_ACCEPT_EMPTY", func(b bool) { cfg.Parser.AcceptEmpty = b }},
	}
	for _, e := range bools {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", e.key, err)
		}
		e.set(b)
	}
	return nil
}
