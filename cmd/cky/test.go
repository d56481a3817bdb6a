package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/cky/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	prob  *bool
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  cky test grammar.txt test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.prob = cmd.Flags().Bool("prob", false, "the grammar is probabilistic and in CNF")
	testFlags.start = cmd.Flags().String("start", "", "start symbol (default the head of the first rule)")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	t := &tester.Tester{}
	if *testFlags.prob {
		g, err := readProbabilisticGrammar(args[0], *testFlags.start)
		if err != nil {
			return err
		}
		t.Probabilistic = g
	} else {
		g, err := readGrammar(args[0], *testFlags.start)
		if err != nil {
			return err
		}
		t.Grammar = g
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}
	t.Cases = cs

	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
