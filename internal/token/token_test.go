package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		word     string
		expected Token
	}{
		{"break", BREAK},
		{"instanceof", INSTANCEOF},
		{"typeof", TYPEOF},
		{"class", CLASS},
		{"yield", YIELD},
		{"null", NULL},
		{"true", TRUE},
		{"false", FALSE},
		{"instanceof2", ILLEGAL},
		{"Break", ILLEGAL},
		{"foo", ILLEGAL},
		{"undefined", ILLEGAL},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Lookup(tt.word); got != tt.expected {
				t.Errorf("Lookup(%q) = %v, want %v", tt.word, got, tt.expected)
			}
			if got := IsReservedWord(tt.word); got != (tt.expected != ILLEGAL) {
				t.Errorf("IsReservedWord(%q) = %v", tt.word, got)
			}
		})
	}
}

func TestLookupPunct(t *testing.T) {
	tests := []struct {
		input    string
		expected Token
		length   int
	}{
		{"+", ADD, 1},
		{"++x", INC, 2},
		{"+=1", ADD_ASSIGN, 2},
		{"<", LT, 1},
		{"<<", SHL, 2},
		{"<<=", SHL_ASSIGN, 3},
		{">>>", SHR, 3},
		{">>>=", SHR_ASSIGN, 4},
		{"===", STRICT_EQ, 3},
		{"!==", STRICT_NE, 3},
		{"!=", NE, 2},
		{"!x", NOT, 1},
		{"&&", LAND, 2},
		{"&=", AND_ASSIGN, 2},
		{"a", ILLEGAL, 0},
		{"", ILLEGAL, 0},
		{"#", ILLEGAL, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, n := LookupPunct([]byte(tt.input))
			if tok != tt.expected || n != tt.length {
				t.Errorf("LookupPunct(%q) = %v, %d; want %v, %d", tt.input, tok, n, tt.expected, tt.length)
			}
		})
	}
}

func TestTokenClasses(t *testing.T) {
	tests := []struct {
		tok        Token
		punct      bool
		keyword    bool
		future     bool
		reserved   bool
		assignment bool
	}{
		{LBRACE, true, false, false, false, false},
		{XOR_ASSIGN, true, false, false, false, true},
		{ASSIGN, true, false, false, false, true},
		{EQ, true, false, false, false, false},
		{IF, false, true, false, true, false},
		{WITH, false, true, false, true, false},
		{ENUM, false, false, true, true, false},
		{NULL, false, false, false, true, false},
		{EOF, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			if got := tt.tok.IsPunctuator(); got != tt.punct {
				t.Errorf("IsPunctuator() = %v", got)
			}
			if got := tt.tok.IsKeyword(); got != tt.keyword {
				t.Errorf("IsKeyword() = %v", got)
			}
			if got := tt.tok.IsFutureReserved(); got != tt.future {
				t.Errorf("IsFutureReserved() = %v", got)
			}
			if got := tt.tok.IsReserved(); got != tt.reserved {
				t.Errorf("IsReserved() = %v", got)
			}
			if got := tt.tok.IsAssignment(); got != tt.assignment {
				t.Errorf("IsAssignment() = %v", got)
			}
		})
	}
}

func TestWords(t *testing.T) {
	words := Words()
	if len(words) != len(reserved) {
		t.Fatalf("Words() returned %d words, want %d", len(words), len(reserved))
	}
	for _, w := range words {
		if !IsReservedWord(w) {
			t.Errorf("%q is not reserved", w)
		}
	}
	if words[0] != "break" || words[len(words)-1] != "false" {
		t.Errorf("unexpected order: first %q, last %q", words[0], words[len(words)-1])
	}
}

func TestFilePosition(t *testing.T) {
	src := []byte("a\nbc\r\nd\re\u2028f")
	f := NewFile("test.js", src)

	if got := f.LineCount(); got != 5 {
		t.Fatalf("LineCount() = %d, want 5", got)
	}

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 2, 1},
		{3, 2, 2},
		{6, 3, 1},
		{8, 4, 1},
		{12, 5, 1},
		{100, 5, 2},
		{-5, 1, 1},
	}

	for _, tt := range tests {
		pos := f.Position(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("got %q", got)
	}
	if got := (Position{Filename: "x.js", Line: 1, Column: 2}).String(); got != "x.js:1:2" {
		t.Errorf("got %q", got)
	}
	if NoPos.IsValid() {
		t.Error("NoPos should not be valid")
	}
}
