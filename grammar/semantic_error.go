package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNilSymbol          = newSemanticError("a rule cannot contain a nil symbol")
	semErrTerminalHead       = newSemanticError("the head of a rule must be a non-terminal symbol")
	semErrTerminalStart      = newSemanticError("a start symbol must be a non-terminal symbol")
	semErrInvalidProbability = newSemanticError("a probability must be in (0, 1]")
)

// ErrTerminalHead and the other exported values allow callers to test causes with errors.Is.
var (
	ErrNilSymbol          error = semErrNilSymbol
	ErrTerminalHead       error = semErrTerminalHead
	ErrTerminalStart      error = semErrTerminalStart
	ErrInvalidProbability error = semErrInvalidProbability
)
