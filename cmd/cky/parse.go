package main

import (
	"fmt"
	"os"

	"github.com/nihei9/cky/cky"
	"github.com/nihei9/cky/cnf"
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/pcky"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	word        *string
	source      *string
	cnf         *bool
	prob        *bool
	logSpace    *bool
	acceptEmpty *bool
	start       *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path>",
		Short: "Decide whether a word is a member of the language of a grammar",
		Example: `  cky parse grammar.txt --word abba
  cky parse --prob pgrammar.txt --word ab`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	parseFlags.word = cmd.Flags().StringP("word", "w", "", "word to parse")
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "word file path (default stdin)")
	parseFlags.cnf = cmd.Flags().Bool("cnf", false, "the grammar is already in CNF; it is validated instead of converted")
	parseFlags.prob = cmd.Flags().Bool("prob", false, "the grammar is probabilistic and in CNF")
	parseFlags.logSpace = cmd.Flags().Bool("log-space", false, "compute probabilities in log space")
	parseFlags.acceptEmpty = cmd.Flags().Bool("accept-empty", false, "let the empty word have the probability of S -> ε")
	parseFlags.start = cmd.Flags().String("start", "", "start symbol (default the head of the first rule)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	word, err := readWord(*parseFlags.word, *parseFlags.source)
	if err != nil {
		return fmt.Errorf("Cannot read a word: %w", err)
	}

	if *parseFlags.prob {
		return parseProbabilistic(cmd, args[0], word)
	}

	g, err := readGrammar(args[0], *parseFlags.start)
	if err != nil {
		return err
	}
	if !*parseFlags.cnf {
		g, err = cnf.Convert(g)
		if err != nil {
			return fmt.Errorf("Cannot convert the grammar: %w", err)
		}
	}
	p, err := cky.NewParser(g)
	if err != nil {
		return err
	}
	if p.Parse(word) {
		fmt.Fprintf(os.Stdout, "%q is a member of the language\n", grammar.WordString(word))
	} else {
		fmt.Fprintf(os.Stdout, "%q is not a member of the language\n", grammar.WordString(word))
	}
	return nil
}

func parseProbabilistic(cmd *cobra.Command, path string, word []grammar.Symbol) error {
	g, err := readProbabilisticGrammar(path, *parseFlags.start)
	if err != nil {
		return err
	}

	var opts []pcky.ParserOption
	if flagOrConfig(cmd, "log-space", *parseFlags.logSpace, cfg.Parser.LogSpace) {
		opts = append(opts, pcky.LogSpace())
	}
	if flagOrConfig(cmd, "accept-empty", *parseFlags.acceptEmpty, cfg.Parser.AcceptEmpty) {
		opts = append(opts, pcky.AcceptEmpty())
	}
	p, err := pcky.NewParser(g, opts...)
	if err != nil {
		return err
	}

	res := p.Parse(word)
	if !res.Member {
		fmt.Fprintf(os.Stdout, "%q is not a member of the language (probability = 0)\n", grammar.WordString(word))
		return nil
	}
	fmt.Fprintf(os.Stdout, "%q is a member of the language\n", grammar.WordString(word))
	fmt.Fprintf(os.Stdout, "probability: %v\n", res.Probability)
	fmt.Fprintf(os.Stdout, "log probability: %v\n", res.LogProbability)
	return nil
}

// flagOrConfig returns the flag value when the flag was given on the command line.
func flagOrConfig(cmd *cobra.Command, name string, flag, conf bool) bool {
	if cmd.Flags().Changed(name) {
		return flag
	}
	return conf
}
