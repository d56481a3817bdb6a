package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	verr "github.com/nihei9/cky/error"
	"github.com/nihei9/cky/grammar"
	"github.com/nihei9/cky/spec"
)

func readOptions(start string) []spec.ReadOption {
	if start == "" {
		start = cfg.StartSymbol
	}
	if start == "" {
		return nil
	}
	return []spec.ReadOption{spec.StartSymbol(start)}
}

func readGrammar(path string, start string) (*grammar.Grammar, error) {
	g, errs, err := spec.ReadGrammarFile(path, readOptions(start)...)
	printSpecErrors(errs)
	if err != nil {
		return nil, fmt.Errorf("Cannot read a grammar: %w", err)
	}
	return g, nil
}

func readProbabilisticGrammar(path string, start string) (*grammar.ProbabilisticGrammar, error) {
	g, errs, err := spec.ReadProbabilisticGrammarFile(path, readOptions(start)...)
	printSpecErrors(errs)
	if err != nil {
		return nil, fmt.Errorf("Cannot read a probabilistic grammar: %w", err)
	}
	return g, nil
}

// printSpecErrors reports skipped lines. They do not stop a command.
func printSpecErrors(errs verr.SpecErrors) {
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "skipped: %v\n", err)
	}
}

// writeOutput calls write with a file created at path, or with stdout when path is empty.
func writeOutput(path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Cannot create the output file %s: %w", path, err)
	}
	return writeAndClose(f, path, write)
}

// writeAndClose closes w after write returns. A failed close is reported unless write already
// failed.
func writeAndClose(w io.WriteCloser, path string, write func(w io.Writer) error) (retErr error) {
	defer func() {
		err := w.Close()
		if err != nil && retErr == nil {
			retErr = fmt.Errorf("Cannot close the output file %s: %w", path, err)
		}
	}()
	return write(w)
}

func readWord(word, source string) ([]grammar.Symbol, error) {
	switch {
	case word != "" && source != "":
		return nil, fmt.Errorf("You cannot give --word and --source at the same time")
	case word != "":
		return grammar.Word(strings.TrimSpace(word)), nil
	case source != "":
		return spec.ReadWordFile(source)
	default:
		return spec.ReadWord(os.Stdin)
	}
}
