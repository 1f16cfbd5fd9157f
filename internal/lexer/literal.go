package lexer

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"
)

// numberPattern recognises the spelling of a numeric literal: hexadecimal
// integer, decimal integer, or decimal with fraction and/or exponent.
var numberPattern = mustCompile(`^(?:0[xX][0-9a-fA-F]+|(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(err)
	}
	re.Longest()
	return re
}

// Number is a scanned numeric literal.
type Number struct {
	Raw   string  // spelling in the source
	Float bool    // spelled with a fraction or exponent, or too large for int64
	Int   int64   // value when !Float
	Value float64 // value when Float
}

// Number matches a numeric literal. A literal directly followed by an
// identifier character ("3in", "0x") is not a number.
func (s *Scanner) Number() (Number, bool) {
	pos := s.lex.Pos()
	s.skip()
	window := s.numberWindow()
	loc := numberPattern.FindStringIndex(window)
	if loc == nil || loc[0] != 0 {
		s.lex.Rewind(pos)
		return Number{}, false
	}
	raw := window[:loc[1]]
	s.lex.Move(len(raw))
	if r, n := s.peekRune(0); n > 0 && isIdentPart(r) {
		s.lex.Rewind(pos)
		return Number{}, false
	}
	num, ok := parseNumber(raw)
	if !ok {
		s.lex.Rewind(pos)
		return Number{}, false
	}
	return num, true
}

// numberWindow returns the bytes at the cursor that could belong to a numeric
// literal. Signs are only included directly after an exponent marker, so the
// window of "1+2" is "1".
func (s *Scanner) numberWindow() string {
	start := s.lex.Pos()
	end := start
	for end < len(s.src) {
		c := s.src[end]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '.', c == '_', c == '$':
		case (c == '+' || c == '-') && end > start && (s.src[end-1] == 'e' || s.src[end-1] == 'E'):
		default:
			return string(s.src[start:end])
		}
		end++
	}
	return string(s.src[start:end])
}

func parseNumber(raw string) (Number, bool) {
	num := Number{Raw: raw}
	if len(raw) > 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X') {
		if v, err := strconv.ParseInt(raw[2:], 16, 64); err == nil {
			num.Int = v
			return num, true
		}
		num.Float = true
		for _, c := range []byte(raw[2:]) {
			num.Value = num.Value*16 + float64(hexDigit(c))
		}
		return num, true
	}
	if !strings.ContainsAny(raw, ".eE") {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			num.Int = v
			return num, true
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && !math.IsInf(v, 0) {
		return Number{}, false
	}
	num.Float = true
	num.Value = v
	return num, true
}

func hexDigit(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}

// StringLiteral matches a single- or double-quoted string literal and returns its
// decoded value. A raw line terminator ends the match unsuccessfully.
func (s *Scanner) StringLiteral() (string, bool) {
	pos := s.lex.Pos()
	s.skip()
	quote := s.peek(0)
	if quote != '"' && quote != '\'' {
		s.lex.Rewind(pos)
		return "", false
	}
	s.lex.Move(1)
	var sb strings.Builder
	for {
		if s.lex.Pos() >= len(s.src) || s.atLineTerminator() {
			s.lex.Rewind(pos)
			return "", false
		}
		c := s.peek(0)
		if c == quote {
			s.lex.Move(1)
			return sb.String(), true
		}
		if c != '\\' {
			r, n := s.peekRune(0)
			if r == utf8.RuneError && n == 1 {
				sb.WriteByte(c)
			} else {
				sb.WriteRune(r)
			}
			s.lex.Move(n)
			continue
		}
		s.lex.Move(1)
		if !s.escape(&sb) {
			s.lex.Rewind(pos)
			return "", false
		}
	}
}

// escape decodes the escape sequence after a backslash.
func (s *Scanner) escape(sb *strings.Builder) bool {
	if s.lex.Pos() >= len(s.src) {
		return false
	}
	c := s.peek(0)
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		if d := s.peek(1); d >= '0' && d <= '9' {
			return false
		}
		sb.WriteByte(0)
	case 'x', 'u':
		n := 2
		if c == 'u' {
			n = 4
		}
		if s.lex.Pos()+n >= len(s.src) {
			return false
		}
		start := s.lex.Pos() + 1
		v, err := strconv.ParseUint(string(s.src[start:start+n]), 16, 32)
		if err != nil {
			return false
		}
		sb.WriteRune(rune(v))
		s.lex.Move(n + 1)
		return true
	case '\r':
		// line continuation
		if s.peek(1) == '\n' {
			s.lex.Move(1)
		}
	case '\n':
	default:
		if s.atLineTerminator() {
			// U+2028 or U+2029 continuation
			s.lex.Move(3)
			return true
		}
		r, n := s.peekRune(0)
		sb.WriteRune(r)
		s.lex.Move(n)
		return true
	}
	s.lex.Move(1)
	return true
}
