package kunjs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fabiokung/kunjs/internal/parser"
)

// SyntaxError reports where a program stopped parsing and what the grammar
// expected there.
type SyntaxError struct {
	Filename  string
	Line      int      // 1-based line of the failure
	Column    int      // 1-based column of the failure
	Offset    int      // byte offset of the failure
	Expected  []string // constructs the grammar would have accepted
	Found     string   // text found at the failure ("EOF" at the end)
	Remaining string   // unconsumed input from where parsing stopped
	Context   string   // source line with a column marker
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	sb.WriteString("syntax error at ")
	if e.Filename != "" {
		sb.WriteString(e.Filename + ":")
	}
	fmt.Fprintf(&sb, "%d:%d: expected %s", e.Line, e.Column, parser.Describe(e.Expected))
	if e.Found == "EOF" {
		sb.WriteString(", found EOF")
	} else {
		fmt.Fprintf(&sb, ", found %q", e.Found)
	}
	return sb.String()
}

func newSyntaxError(filename string, pe *parser.ParseError) *SyntaxError {
	return &SyntaxError{
		Filename:  filename,
		Line:      pe.Pos.Line,
		Column:    pe.Pos.Column,
		Offset:    pe.Pos.Offset,
		Expected:  pe.Expected,
		Found:     pe.Found,
		Remaining: pe.Remaining,
		Context:   pe.Context,
	}
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError and returns it.
func IsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
