package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/nihei9/cky/experiment"
	"github.com/nihei9/cky/pcky"
	"github.com/nihei9/cky/store"
	"github.com/spf13/cobra"
)

var experimentFlags = struct {
	output *string
	db     *string
	seed   *int64
	batch  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "experiment",
		Short:   "Run the parsers over random grammars and words",
		Example: `  cky experiment -o results.txt --db runs.db`,
		Args:    cobra.NoArgs,
		RunE:    runExperiment,
	}
	experimentFlags.output = cmd.Flags().StringP("output", "o", "", "report file path (default from the config)")
	experimentFlags.db = cmd.Flags().String("db", "", "SQLite database the runs are saved to (default from the config)")
	experimentFlags.seed = cmd.Flags().Int64("seed", 0, "random seed (default from the config)")
	experimentFlags.batch = cmd.Flags().String("batch", "", "batch ID of the saved runs (default the start time)")
	rootCmd.AddCommand(cmd)
}

func runExperiment(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seed := cfg.Generator.Seed
	if cmd.Flags().Changed("seed") {
		seed = *experimentFlags.seed
	}
	opts := []experiment.RunnerOption{
		experiment.MaxWordLength(cfg.Generator.MaxWordLength),
	}
	var popts []pcky.ParserOption
	if cfg.Parser.LogSpace {
		popts = append(popts, pcky.LogSpace())
	}
	if cfg.Parser.AcceptEmpty {
		popts = append(popts, pcky.AcceptEmpty())
	}
	opts = append(opts, experiment.ProbabilisticParserOptions(popts...))

	dbPath := cfg.Experiment.Database
	if *experimentFlags.db != "" {
		dbPath = *experimentFlags.db
	}
	if dbPath != "" {
		s, err := store.NewSQLiteStore(dbPath)
		if err != nil {
			return fmt.Errorf("Cannot open the database %s: %w", dbPath, err)
		}
		defer s.Close()
		batchID := *experimentFlags.batch
		if batchID == "" {
			batchID = time.Now().UTC().Format(time.RFC3339)
		}
		opts = append(opts, experiment.RecordTo(s, batchID))
	}

	runs, err := experiment.NewRunner(seed, opts...).Run(ctx)
	if err != nil {
		return err
	}

	outPath := cfg.Experiment.Output
	if *experimentFlags.output != "" {
		outPath = *experimentFlags.output
	}
	err = writeOutput(outPath, func(w io.Writer) error {
		if err := experiment.Report(w, runs); err != nil {
			return fmt.Errorf("Cannot write the report: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stdout, "%v runs were written to %v\n", len(runs), outPath)
	}
	return nil
}
