// Package lexer provides the lexical rules of the kunjs grammar.
//
// There is no token stream. A Scanner is a rewindable cursor over the source
// and each lexical rule (punctuator, keyword, identifier, literal) is a method
// that skips leading whitespace and comments, tries to match at the cursor and
// either advances past the match or leaves the cursor where it was. The parser
// composes these methods directly into its productions.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2/buffer"

	"github.com/fabiokung/kunjs/internal/token"
)

// Scanner is a cursor over one source buffer.
type Scanner struct {
	src  []byte
	lex  *buffer.Lexer
	file *token.File

	// Single-entry trivia cache: skipping from skipFrom lands on skipTo.
	skipFrom, skipTo int
	skipNL           bool
}

// New creates a Scanner for src. The name is only used for positions.
func New(name string, src []byte) *Scanner {
	return &Scanner{
		src:      src,
		lex:      buffer.NewLexerBytes(src),
		file:     token.NewFile(name, src),
		skipFrom: -1,
	}
}

// NewFromString creates a Scanner from a string.
func NewFromString(src string) *Scanner {
	return New("", []byte(src))
}

// Release restores the byte the underlying cursor borrowed past the end of
// the source slice. The Scanner must not be used afterwards.
func (s *Scanner) Release() {
	s.lex.Restore()
}

// Offset returns the byte offset of the cursor.
func (s *Scanner) Offset() int {
	return s.lex.Pos()
}

// Reset moves the cursor back (or forward) to offset.
func (s *Scanner) Reset(offset int) {
	s.lex.Rewind(offset)
}

// File returns the line table of the source.
func (s *Scanner) File() *token.File {
	return s.file
}

// Source returns the source buffer.
func (s *Scanner) Source() []byte {
	return s.src
}

// Position resolves a byte offset.
func (s *Scanner) Position(offset int) token.Position {
	return s.file.Position(offset)
}

// Remaining returns the unconsumed source starting at offset.
func (s *Scanner) Remaining(offset int) string {
	if offset >= len(s.src) {
		return ""
	}
	return string(s.src[offset:])
}

// peek returns the byte k positions past the cursor, or 0 past the end.
func (s *Scanner) peek(k int) byte {
	if s.lex.Pos()+k >= len(s.src) {
		return 0
	}
	return s.lex.Peek(k)
}

// peekRune decodes the rune k bytes past the cursor.
func (s *Scanner) peekRune(k int) (rune, int) {
	c := s.peek(k)
	if c < utf8.RuneSelf {
		if c == 0 && s.lex.Pos()+k >= len(s.src) {
			return utf8.RuneError, 0
		}
		return rune(c), 1
	}
	return utf8.DecodeRune(s.src[s.lex.Pos()+k:])
}

// Skip advances past whitespace and comments and returns the resulting offset.
func (s *Scanner) Skip() int {
	s.skip()
	return s.lex.Pos()
}

// AtEOF skips trivia and reports whether the whole source was consumed.
func (s *Scanner) AtEOF() bool {
	s.skip()
	return s.lex.Pos() >= len(s.src)
}

// LineTerminatorAhead reports whether a line terminator occurs between the
// cursor and the next token. The cursor does not move. It is the zero-width
// "no line terminator here" probe of the restricted productions.
func (s *Scanner) LineTerminatorAhead() bool {
	pos := s.lex.Pos()
	nl := s.skip()
	s.lex.Rewind(pos)
	return nl
}

// skip consumes trivia and reports whether it contained a line terminator.
func (s *Scanner) skip() bool {
	from := s.lex.Pos()
	if from == s.skipFrom {
		s.lex.Rewind(s.skipTo)
		return s.skipNL
	}
	nl := false
loop:
	for {
		switch c := s.peek(0); c {
		case ' ', '\t', '\v', '\f':
			s.lex.Move(1)
		case '\n', '\r':
			nl = true
			s.lex.Move(1)
		case '/':
			switch s.peek(1) {
			case '/':
				s.lex.Move(2)
				for !s.atLineTerminator() && s.lex.Pos() < len(s.src) {
					s.lex.Move(1)
				}
			case '*':
				start := s.lex.Pos()
				s.lex.Move(2)
				closed, sawNL := false, false
				for s.lex.Pos() < len(s.src) {
					if s.peek(0) == '*' && s.peek(1) == '/' {
						s.lex.Move(2)
						closed = true
						break
					}
					if s.atLineTerminator() {
						sawNL = true
					}
					s.lex.Move(1)
				}
				if !closed {
					s.lex.Rewind(start)
					break loop
				}
				nl = nl || sawNL
			default:
				break loop
			}
		default:
			if c < utf8.RuneSelf {
				break loop
			}
			r, n := s.peekRune(0)
			switch {
			case r == '\u2028' || r == '\u2029':
				nl = true
			case r == '\u00a0' || r == '\ufeff' || unicode.Is(unicode.Zs, r):
			default:
				break loop
			}
			s.lex.Move(n)
		}
	}
	s.skipFrom, s.skipTo, s.skipNL = from, s.lex.Pos(), nl
	return nl
}

func (s *Scanner) atLineTerminator() bool {
	switch s.peek(0) {
	case '\n', '\r':
		return true
	case 0xE2:
		return s.peek(1) == 0x80 && (s.peek(2) == 0xA8 || s.peek(2) == 0xA9)
	}
	return false
}

// Punct matches the punctuator t. Punctuators are matched by longest match,
// so asking for "=" fails on "==" and asking for "<" fails on "<<=".
func (s *Scanner) Punct(t token.Token) bool {
	pos := s.lex.Pos()
	s.skip()
	if tok, n := s.punct(); tok == t {
		s.lex.Move(n)
		return true
	}
	s.lex.Rewind(pos)
	return false
}

// PunctIn matches the first of ts that is the longest punctuator at the
// cursor. It returns ILLEGAL if none is.
func (s *Scanner) PunctIn(ts ...token.Token) token.Token {
	pos := s.lex.Pos()
	s.skip()
	tok, n := s.punct()
	for _, t := range ts {
		if t == tok {
			s.lex.Move(n)
			return t
		}
	}
	s.lex.Rewind(pos)
	return token.ILLEGAL
}

func (s *Scanner) punct() (token.Token, int) {
	pos := s.lex.Pos()
	end := pos + 4
	if end > len(s.src) {
		end = len(s.src)
	}
	return token.LookupPunct(s.src[pos:end])
}

// Keyword matches the reserved word t as a whole token: "in" does not match
// the start of "instanceof" or "index".
func (s *Scanner) Keyword(t token.Token) bool {
	pos := s.lex.Pos()
	s.skip()
	word := t.String()
	start := s.lex.Pos()
	if start+len(word) <= len(s.src) && string(s.src[start:start+len(word)]) == word {
		s.lex.Move(len(word))
		if r, _ := s.peekRune(0); !isIdentPart(r) {
			return true
		}
	}
	s.lex.Rewind(pos)
	return false
}

// KeywordIn matches the first of ts present at the cursor.
func (s *Scanner) KeywordIn(ts ...token.Token) token.Token {
	for _, t := range ts {
		if s.Keyword(t) {
			return t
		}
	}
	return token.ILLEGAL
}

// IdentifierName matches the longest run of identifier characters, reserved
// words included.
func (s *Scanner) IdentifierName() (string, bool) {
	pos := s.lex.Pos()
	s.skip()
	start := s.lex.Pos()
	r, n := s.peekRune(0)
	if n == 0 || !isIdentStart(r) {
		s.lex.Rewind(pos)
		return "", false
	}
	s.lex.Move(n)
	for {
		r, n = s.peekRune(0)
		if n == 0 || !isIdentPart(r) {
			break
		}
		s.lex.Move(n)
	}
	return string(s.src[start:s.lex.Pos()]), true
}

// Identifier matches an identifier name that is not a reserved word. The
// check applies to the whole name, so "instanceof2" is an identifier.
func (s *Scanner) Identifier() (string, bool) {
	pos := s.lex.Pos()
	name, ok := s.IdentifierName()
	if !ok {
		return "", false
	}
	if token.IsReservedWord(name) {
		s.lex.Rewind(pos)
		return "", false
	}
	return name, true
}

func isIdentStart(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '$', r == '_':
		return true
	case r < utf8.RuneSelf:
		return false
	}
	return unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	if r >= '0' && r <= '9' || isIdentStart(r) {
		return true
	}
	return r >= utf8.RuneSelf && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc))
}

// IsIdentifierName reports whether s is spelled as an identifier name.
func IsIdentifierName(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentStart(r) || !isIdentPart(r) {
			return false
		}
	}
	return s != ""
}
