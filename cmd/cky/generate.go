package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/nihei9/cky/cky"
	"github.com/nihei9/cky/cnf"
	"github.com/nihei9/cky/generator"
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/spec"
	"github.com/spf13/cobra"
)

var generateFlags = struct {
	cnf   *bool
	prob  *bool
	seed  *int64
	rules *int
	word  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random grammar and optionally a word",
		Example: `  cky generate --cnf --seed 42 --word member
  cky generate --prob --word nonmember`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	generateFlags.cnf = cmd.Flags().Bool("cnf", false, "generate a grammar in CNF")
	generateFlags.prob = cmd.Flags().Bool("prob", false, "generate a probabilistic grammar in CNF")
	generateFlags.seed = cmd.Flags().Int64("seed", 0, "random seed (default from the config)")
	generateFlags.rules = cmd.Flags().Int("rules", 0, "number of rules (default random)")
	generateFlags.word = cmd.Flags().String("word", "", "also generate a word: member or nonmember")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	var wantMember bool
	switch *generateFlags.word {
	case "":
	case "member":
		wantMember = true
	case "nonmember":
	default:
		return fmt.Errorf("--word must be member or nonmember: %v", *generateFlags.word)
	}

	seed := cfg.Generator.Seed
	if cmd.Flags().Changed("seed") {
		seed = *generateFlags.seed
	}
	r := rand.New(rand.NewSource(seed))
	gm := generator.NewGrammarMaker(r)

	// g is a CNF grammar words are generated from.
	var g *grammar.Grammar
	if *generateFlags.prob {
		pg := gm.MakeProbabilistic(true, *generateFlags.rules)
		if err := spec.WriteProbabilisticGrammar(os.Stdout, pg); err != nil {
			return err
		}
		g = pg.Grammar()
	} else {
		g = gm.Make(*generateFlags.cnf, *generateFlags.rules)
		if err := spec.WriteGrammar(os.Stdout, g); err != nil {
			return err
		}
		if !*generateFlags.cnf {
			var err error
			g, err = cnf.Convert(g)
			if err != nil {
				return err
			}
		}
	}

	if *generateFlags.word == "" {
		return nil
	}
	wm := generator.NewWordMaker(r, g, generator.MaxLength(cfg.Generator.MaxWordLength))
	if wantMember {
		word, ok := wm.Member()
		if !ok {
			return fmt.Errorf("No member word could be generated")
		}
		fmt.Fprintf(os.Stdout, "\nword: %v\n", grammar.WordString(word))
		return nil
	}

	p, err := cky.NewParser(g)
	if err != nil {
		return err
	}
	for i := 0; i < 20; i++ {
		word, ok := wm.NonMember()
		if !ok || p.Parse(word) {
			continue
		}
		fmt.Fprintf(os.Stdout, "\nword: %v\n", grammar.WordString(word))
		return nil
	}
	return fmt.Errorf("No non-member word could be generated")
}
