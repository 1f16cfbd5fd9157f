package lexer

import (
	"testing"
	"unicode/utf8"

	"github.com/fabiokung/kunjs/internal/token"
)

func allPuncts() []token.Token {
	var ts []token.Token
	for t := token.Token(0); t < 255; t++ {
		if t.IsPunctuator() {
			ts = append(ts, t)
		}
	}
	return ts
}

// FuzzScanner drives every lexical rule over arbitrary input and checks that
// the cursor only moves forward and stays inside the source.
func FuzzScanner(f *testing.F) {
	seeds := []string{
		``,
		`var x = 1;`,
		`a >>>= b !== c`,
		`1 .5 5. 0x1F 1e10 2.5e-3 9223372036854775808`,
		`"hello" 'world' "esc\n\t\x41B"`,
		`"unterminated`,
		`/* comment */ // line`,
		`/* unterminated`,
		"a b c",
		`instanceof2 typeof in index`,
		"\"\u00e9\u65e5\u672c\"",
		"\xff\xfe",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
	puncts := allPuncts()

	f.Fuzz(func(t *testing.T, data []byte) {
		s := New("", data)
		defer s.Release()

		last := -1
		for !s.AtEOF() {
			off := s.Offset()
			if off <= last {
				t.Fatalf("cursor did not advance past %d", last)
			}
			last = off
			s.LineTerminatorAhead()
			if s.Offset() != off {
				t.Fatalf("LineTerminatorAhead moved the cursor")
			}

			if _, ok := s.Number(); ok {
				continue
			}
			if _, ok := s.StringLiteral(); ok {
				continue
			}
			if _, ok := s.IdentifierName(); ok {
				continue
			}
			if s.PunctIn(puncts...) != token.ILLEGAL {
				continue
			}
			if s.Offset() != off {
				t.Fatalf("failed rules moved the cursor from %d to %d", off, s.Offset())
			}
			_, n := utf8.DecodeRune(data[off:])
			s.Reset(off + n)
		}
		if s.Offset() > len(data) {
			t.Fatalf("offset %d past end %d", s.Offset(), len(data))
		}
	})
}
