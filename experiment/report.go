package experiment

import (
	"fmt"
	"io"
	"strings"
)

var separator = strings.Repeat("=", 80)

// Report writes a readable account of runs.
func Report(w io.Writer, runs []*Run) error {
	for _, run := range runs {
		if err := writeRun(w, run); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n%v\n", separator); err != nil {
			return err
		}
	}
	return nil
}

func writeRun(w io.Writer, run *Run) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nEXPERIMENT %v:\n", run.Number)
	fmt.Fprintf(&b, "Probabilistic: %v\n", run.Probabilistic)
	fmt.Fprintf(&b, "CNF: %v\n", run.CNF)
	fmt.Fprintf(&b, "Word should be a member: %v\n", run.WantMember)

	if run.Probabilistic {
		fmt.Fprintf(&b, "\nGenerated probabilistic grammar (CNF):\n%v", run.Grammar)
	} else {
		fmt.Fprintf(&b, "\nGenerated grammar:\n%v", run.Grammar)
	}
	if run.Converted != "" {
		fmt.Fprintf(&b, "\nConverted grammar (CNF):\n%v", run.Converted)
	}

	switch {
	case !run.WordFound:
		if run.WantMember {
			fmt.Fprintf(&b, "\nNo member word could be generated.\n")
		} else {
			fmt.Fprintf(&b, "\nNo non-member word could be generated.\n")
		}
	case run.Probabilistic && run.Member:
		fmt.Fprintf(&b, "\nWord: %v\n", run.Word)
		fmt.Fprintf(&b, "Probability of the word: %v\n", run.Probability)
	case run.Probabilistic:
		fmt.Fprintf(&b, "\nWord: %v\n", run.Word)
		fmt.Fprintf(&b, "The word is not a member of the language (probability = 0)\n")
	default:
		fmt.Fprintf(&b, "\nWord: %v\n", run.Word)
		fmt.Fprintf(&b, "The word is a member of the language: %v\n", run.Member)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
