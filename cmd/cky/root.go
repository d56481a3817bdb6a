package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/nihei9/cky/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var rootFlags = struct {
	config    *string
	verbosity *int
}{}

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "cky",
	Short: "Convert context-free grammars to CNF and parse words with the CKY algorithm",
	Long: `cky provides the following features:
- Converts a context-free grammar into Chomsky normal form.
- Decides whether a word is a member of the language of a grammar.
- Computes the probability of the most likely parse of a word under a probabilistic grammar.
- Generates random grammars and words, and runs experiments over them.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().String("config", "cky.yaml", "config file path")
	rootFlags.verbosity = rootCmd.PersistentFlags().CountP("verbose", "v", "increase the log verbosity (can be repeated)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(*rootFlags.config)
	if err != nil {
		return fmt.Errorf("Cannot load the config: %w", err)
	}
	cfg = c

	verbosity := cfg.Log.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity = *rootFlags.verbosity
	}
	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(verbosity, path)
	return nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// recoverError turns a panic into the returned error of a RunE function.
func recoverError(retErr *error) {
	v := recover()
	if v == nil {
		return
	}
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("an unexpected error occurred: %v", v)
	}
	fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
	*retErr = err
}
