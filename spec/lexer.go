package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindArrow    = tokenKind("->")
	tokenKindOr       = tokenKind("|")
	tokenKindLBracket = tokenKind("[")
	tokenKindRBracket = tokenKind("]")
	tokenKindNumber   = tokenKind("number")
	tokenKindSymbol   = tokenKind("symbol")
	tokenKindEOF      = tokenKind("eof")
	tokenKindInvalid  = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

// lexEntries are tried in order when two patterns match lexemes of the same length, so a bare
// number is a number rather than a symbol.
var lexEntries = []struct {
	kind    string
	pattern string
}{
	{"white_space", `[\u{0009}\u{0020}]+`},
	{"arrow", `->|\u{2192}`},
	{"or", `\|`},
	{"l_bracket", `\[`},
	{"r_bracket", `\]`},
	{"number", `[0-9]+(\.[0-9]+)?|\.[0-9]+`},
	{"symbol", `[A-Za-z0-9_']+|\u{03B5}`},
}

// lexSpecName must be a valid identifier; maleeni rejects an unnamed spec.
const lexSpecName = "cky"

var (
	lexSpecOnce sync.Once
	lexSpec     *mlspec.CompiledLexSpec
	lexSpecErr  error
)

func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	lexSpecOnce.Do(func() {
		entries := make([]*mlspec.LexEntry, 0, len(lexEntries))
		for _, e := range lexEntries {
			entries = append(entries, &mlspec.LexEntry{
				Kind:    mlspec.LexKindName(e.kind),
				Pattern: mlspec.LexPattern(e.pattern),
			})
		}
		s, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    lexSpecName,
			Entries: entries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				lexSpecErr = fmt.Errorf("cannot compile the lexical specification: %v", b.String())
				return
			}
			lexSpecErr = err
			return
		}
		lexSpec = s
	})
	return lexSpec, lexSpecErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

// lexer tokenizes a single line. Rows of the produced tokens are the row passed to newLexer.
type lexer struct {
	kindNames []mlspec.LexKindName
	d         *mldriver.Lexer
	row       int
}

func newLexer(src io.Reader, row int) (*lexer, error) {
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		kindNames: s.KindNames,
		d:         d,
		row:       row,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newToken(tokenKindEOF, "", newPosition(l.row, tok.Col+1)), nil
		}
		if tok.Invalid {
			return newToken(tokenKindInvalid, string(tok.Lexeme), newPosition(l.row, tok.Col+1)), nil
		}
		if l.kindNames[tok.KindID].String() == "white_space" {
			continue
		}
		break
	}

	pos := newPosition(l.row, tok.Col+1)
	text := string(tok.Lexeme)
	switch l.kindNames[tok.KindID].String() {
	case "arrow":
		return newToken(tokenKindArrow, text, pos), nil
	case "or":
		return newToken(tokenKindOr, text, pos), nil
	case "l_bracket":
		return newToken(tokenKindLBracket, text, pos), nil
	case "r_bracket":
		return newToken(tokenKindRBracket, text, pos), nil
	case "number":
		return newToken(tokenKindNumber, text, pos), nil
	case "symbol":
		return newToken(tokenKindSymbol, text, pos), nil
	default:
		return newToken(tokenKindInvalid, text, pos), nil
	}
}

// tokenize splits a line into tokens, excluding the trailing EOF token.
func tokenize(line string, row int) ([]*token, error) {
	l, err := newLexer(strings.NewReader(line), row)
	if err != nil {
		return nil, err
	}
	var toks []*token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
