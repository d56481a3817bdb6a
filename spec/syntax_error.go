package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken = newSyntaxError("invalid token")

	// syntax errors
	synErrNoRule             = newSyntaxError("a grammar must have at least one rule")
	synErrNoArrow            = newSyntaxError("a head must be followed by -> or →")
	synErrNoHead             = newSyntaxError("a rule needs a head")
	synErrInvalidHead        = newSyntaxError("a head must be a single non-terminal symbol")
	synErrUnexpectedArrow    = newSyntaxError("a rule can contain only one arrow")
	synErrMixedEpsilon       = newSyntaxError("ε must be the only symbol of a body")
	synErrUnexpectedBracket  = newSyntaxError("a bracket can surround only a probability")
	synErrTooFewTokens       = newSyntaxError("a probabilistic alternative needs a body and a probability")
	synErrNoProbability      = newSyntaxError("a probabilistic alternative must end with a probability")
	synErrInvalidProbability = newSyntaxError("a probability must be greater than 0 and less than or equal to 1")
)
