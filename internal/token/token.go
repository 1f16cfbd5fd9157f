// Package token defines the punctuators, keywords and reserved words of the
// JavaScript subset accepted by kunjs.
package token

// Token identifies a punctuator or reserved word.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Punctuators
	punctStart
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	DOT       // .
	SEMICOLON // ;
	COMMA     // ,
	QUESTION  // ?
	COLON     // :

	LT         // <
	GT         // >
	LE         // <=
	GE         // >=
	EQ         // ==
	NE         // !=
	STRICT_EQ  // ===
	STRICT_NE  // !==
	ADD        // +
	SUB        // -
	MUL        // *
	DIV        // /
	MOD        // %
	INC        // ++
	DEC        // --
	SHL        // <<
	SAR        // >>
	SHR        // >>>
	AND        // &
	OR         // |
	XOR        // ^
	NOT        // !
	BITNOT     // ~
	LAND       // &&
	LOR        // ||
	ASSIGN     // =
	ADD_ASSIGN // +=
	SUB_ASSIGN // -=
	MUL_ASSIGN // *=
	DIV_ASSIGN // /=
	MOD_ASSIGN // %=
	SHL_ASSIGN // <<=
	SAR_ASSIGN // >>=
	SHR_ASSIGN // >>>=
	AND_ASSIGN // &=
	OR_ASSIGN  // |=
	XOR_ASSIGN // ^=
	punctEnd

	// Keywords
	keywordStart
	BREAK      // break
	CASE       // case
	CATCH      // catch
	CONTINUE   // continue
	DEBUGGER   // debugger
	DEFAULT    // default
	DELETE     // delete
	DO         // do
	ELSE       // else
	FINALLY    // finally
	FOR        // for
	FUNCTION   // function
	IF         // if
	IN         // in
	INSTANCEOF // instanceof
	NEW        // new
	RETURN     // return
	SWITCH     // switch
	THIS       // this
	THROW      // throw
	TRY        // try
	TYPEOF     // typeof
	VAR        // var
	VOID       // void
	WHILE      // while
	WITH       // with
	keywordEnd

	// Future reserved words
	futureStart
	CLASS      // class
	CONST      // const
	ENUM       // enum
	EXPORT     // export
	EXTENDS    // extends
	IMPLEMENTS // implements
	IMPORT     // import
	INTERFACE  // interface
	LET        // let
	PACKAGE    // package
	PRIVATE    // private
	PROTECTED  // protected
	PUBLIC     // public
	STATIC     // static
	SUPER      // super
	YIELD      // yield
	futureEnd

	// Literal words
	NULL  // null
	TRUE  // true
	FALSE // false
)

var tokens = [...]string{
	ILLEGAL: "<illegal>",
	EOF:     "EOF",

	LBRACE:    "{",
	RBRACE:    "}",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	DOT:       ".",
	SEMICOLON: ";",
	COMMA:     ",",
	QUESTION:  "?",
	COLON:     ":",

	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	EQ:         "==",
	NE:         "!=",
	STRICT_EQ:  "===",
	STRICT_NE:  "!==",
	ADD:        "+",
	SUB:        "-",
	MUL:        "*",
	DIV:        "/",
	MOD:        "%",
	INC:        "++",
	DEC:        "--",
	SHL:        "<<",
	SAR:        ">>",
	SHR:        ">>>",
	AND:        "&",
	OR:         "|",
	XOR:        "^",
	NOT:        "!",
	BITNOT:     "~",
	LAND:       "&&",
	LOR:        "||",
	ASSIGN:     "=",
	ADD_ASSIGN: "+=",
	SUB_ASSIGN: "-=",
	MUL_ASSIGN: "*=",
	DIV_ASSIGN: "/=",
	MOD_ASSIGN: "%=",
	SHL_ASSIGN: "<<=",
	SAR_ASSIGN: ">>=",
	SHR_ASSIGN: ">>>=",
	AND_ASSIGN: "&=",
	OR_ASSIGN:  "|=",
	XOR_ASSIGN: "^=",

	BREAK:      "break",
	CASE:       "case",
	CATCH:      "catch",
	CONTINUE:   "continue",
	DEBUGGER:   "debugger",
	DEFAULT:    "default",
	DELETE:     "delete",
	DO:         "do",
	ELSE:       "else",
	FINALLY:    "finally",
	FOR:        "for",
	FUNCTION:   "function",
	IF:         "if",
	IN:         "in",
	INSTANCEOF: "instanceof",
	NEW:        "new",
	RETURN:     "return",
	SWITCH:     "switch",
	THIS:       "this",
	THROW:      "throw",
	TRY:        "try",
	TYPEOF:     "typeof",
	VAR:        "var",
	VOID:       "void",
	WHILE:      "while",
	WITH:       "with",

	CLASS:      "class",
	CONST:      "const",
	ENUM:       "enum",
	EXPORT:     "export",
	EXTENDS:    "extends",
	IMPLEMENTS: "implements",
	IMPORT:     "import",
	INTERFACE:  "interface",
	LET:        "let",
	PACKAGE:    "package",
	PRIVATE:    "private",
	PROTECTED:  "protected",
	PUBLIC:     "public",
	STATIC:     "static",
	SUPER:      "super",
	YIELD:      "yield",

	NULL:  "null",
	TRUE:  "true",
	FALSE: "false",
}

// String returns the source spelling of the token.
func (t Token) String() string {
	if int(t) < len(tokens) && tokens[t] != "" {
		return tokens[t]
	}
	return "<illegal>"
}

// IsPunctuator returns true if the token is a punctuator.
func (t Token) IsPunctuator() bool {
	return t > punctStart && t < punctEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsFutureReserved returns true for words reserved for future use.
func (t Token) IsFutureReserved() bool {
	return t > futureStart && t < futureEnd
}

// IsReserved returns true if the token may not be used as an identifier.
func (t Token) IsReserved() bool {
	return t.IsKeyword() || t.IsFutureReserved() || t == NULL || t == TRUE || t == FALSE
}

// IsAssignment returns true for = and the compound assignment operators.
func (t Token) IsAssignment() bool {
	return t >= ASSIGN && t <= XOR_ASSIGN
}

// reserved maps reserved words to their tokens.
var reserved = make(map[string]Token, int(FALSE-keywordStart))

// puncts holds punctuator spellings grouped by length, longest first.
var puncts [4][]Token

func init() {
	for t := keywordStart + 1; t <= FALSE; t++ {
		if t.IsReserved() {
			reserved[tokens[t]] = t
		}
	}
	for t := punctStart + 1; t < punctEnd; t++ {
		n := len(tokens[t])
		puncts[4-n] = append(puncts[4-n], t)
	}
}

// Lookup returns the reserved-word token for word, or ILLEGAL if word is an
// ordinary identifier name.
func Lookup(word string) Token {
	if tok, ok := reserved[word]; ok {
		return tok
	}
	return ILLEGAL
}

// IsReservedWord reports whether word is reserved.
func IsReservedWord(word string) bool {
	_, ok := reserved[word]
	return ok
}

// LookupPunct returns the longest punctuator that prefixes b together with
// its length. It returns ILLEGAL and 0 if b does not start with one.
func LookupPunct(b []byte) (Token, int) {
	for i, group := range puncts {
		n := 4 - i
		if len(b) < n {
			continue
		}
		for _, t := range group {
			if string(b[:n]) == tokens[t] {
				return t, n
			}
		}
	}
	return ILLEGAL, 0
}

// Words returns every reserved word in declaration order.
func Words() []string {
	words := make([]string, 0, len(reserved))
	for t := keywordStart + 1; t <= FALSE; t++ {
		if t.IsReserved() {
			words = append(words, tokens[t])
		}
	}
	return words
}
