package main

import (
	"fmt"
	"io"

	"github.com/nihei9/cky/cnf"
	"github.com/nihei9/cky/spec"
	"github.com/spf13/cobra"
)

var convertFlags = struct {
	output *string
	json   *bool
	start  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "convert <grammar file path>",
		Short:   "Convert a context-free grammar into Chomsky normal form",
		Example: `  cky convert grammar.txt -o grammar.cnf.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runConvert,
	}
	convertFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	convertFlags.json = cmd.Flags().Bool("json", false, "write the grammar in JSON")
	convertFlags.start = cmd.Flags().String("start", "", "start symbol (default the head of the first rule)")
	rootCmd.AddCommand(cmd)
}

func runConvert(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	g, err := readGrammar(args[0], *convertFlags.start)
	if err != nil {
		return err
	}
	cg, err := cnf.Convert(g)
	if err != nil {
		return fmt.Errorf("Cannot convert the grammar: %w", err)
	}

	return writeOutput(*convertFlags.output, func(w io.Writer) error {
		if *convertFlags.json {
			b, err := spec.MarshalGrammarJSON(cg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%v\n", string(b))
			return err
		}
		return spec.WriteGrammar(w, cg)
	})
}
