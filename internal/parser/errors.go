// Package parser implements the kunjs grammar as an ordered-choice recursive
// descent parser.
package parser

import (
	"fmt"
	"strings"

	"github.com/fabiokung/kunjs/internal/token"
)

// ParseError reports the first position the grammar could not get past.
type ParseError struct {
	Pos       token.Position // Farthest position where an alternative failed
	Expected  []string       // What the grammar would have accepted at Pos
	Found     string         // Text found at Pos ("EOF" at the end)
	Remaining string         // Unconsumed input from where parsing stopped
	Context   string         // Source line of Pos with a column marker
	Message   string         // Human-readable error message
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Unwrap returns nil as ParseError doesn't wrap other errors.
func (e *ParseError) Unwrap() error {
	return nil
}

// Describe joins expectations as `"a", "b" or c`, or returns "valid input"
// when there are none.
func Describe(expected []string) string {
	switch len(expected) {
	case 0:
		return "valid input"
	case 1:
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

// found returns a short excerpt of src at offset for error messages.
func found(src []byte, offset int) string {
	if offset >= len(src) {
		return "EOF"
	}
	end := offset
	for end < len(src) && end-offset < 16 {
		c := src[end]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		end++
	}
	if end == offset {
		end++
	}
	return string(src[offset:end])
}
