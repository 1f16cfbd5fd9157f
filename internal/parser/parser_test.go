package parser_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/fabiokung/kunjs/internal/ast"
	"github.com/fabiokung/kunjs/internal/parser"
)

// diff renders the character-level difference between two dumps.
func diff(want, got string) string {
	dmp := diffmatchpatch.New()
	return dmp.DiffPrettyText(dmp.DiffMain(want, got, false))
}

func checkDump(t *testing.T, src, want string) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	want = strings.TrimLeft(want, "\n")
	if got := ast.Dump(prog); got != want {
		t.Errorf("Parse(%q) tree mismatch:\n%s", src, diff(want, got))
	}
}

// TestParseEmpty tests parsing programs with nothing but trivia.
func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "  \n\t", "// comment", "/* block */"} {
		prog, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		if len(prog.Elements) != 0 {
			t.Errorf("Parse(%q) elements = %d, want 0", src, len(prog.Elements))
		}
	}
}

// TestParseExpr tests the tree built for each expression level.
func TestParseExpr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "additive",
			src:  "1 + 2;",
			want: `
(Program
  (ExprStmt
    (Additive
      (Number Int 1)
      + (Number Int 2))))
`,
		},
		{
			name: "precedence",
			src:  "1 + 2 * 3;",
			want: `
(Program
  (ExprStmt
    (Additive
      (Number Int 1)
      + (Multiplicative
        (Number Int 2)
        * (Number Int 3)))))
`,
		},
		{
			name: "left associative",
			src:  "1 - 2 - 3;",
			want: `
(Program
  (ExprStmt
    (Additive
      (Number Int 1)
      - (Number Int 2)
      - (Number Int 3))))
`,
		},
		{
			name: "chained assignment",
			src:  "a = b += 3;",
			want: `
(Program
  (ExprStmt
    (Assign
      (Ident a)
      = (Ident b)
      += (Number Int 3))))
`,
		},
		{
			name: "conditional",
			src:  "x ? 1 : 2.5;",
			want: `
(Program
  (ExprStmt
    (Cond
      (Ident x)
      ? (Number Int 1)
      : (Number Float 2.5))))
`,
		},
		{
			name: "sequence",
			src:  "a, b;",
			want: `
(Program
  (ExprStmt
    (Sequence
      (Ident a)
      (Ident b))))
`,
		},
		{
			name: "unary operators",
			src:  "- ! x;",
			want: `
(Program
  (ExprStmt
    (Unary - !
      (Ident x))))
`,
		},
		{
			name: "typeof",
			src:  "typeof null;",
			want: `
(Program
  (ExprStmt
    (Unary typeof
      (Null))))
`,
		},
		{
			name: "postfix",
			src:  "x++;",
			want: `
(Program
  (ExprStmt
    (Postfix ++
      (Ident x))))
`,
		},
		{
			name: "equality over relational",
			src:  "1 < 2 == true;",
			want: `
(Program
  (ExprStmt
    (Equality
      (Relational
        (Number Int 1)
        < (Number Int 2))
      == (Bool true))))
`,
		},
		{
			name: "instanceof",
			src:  "instanceof2 instanceof x;",
			want: `
(Program
  (ExprStmt
    (Relational
      (Ident instanceof2)
      instanceof (Ident x))))
`,
		},
		{
			name: "shift",
			src:  "a >>> 2 << 1;",
			want: `
(Program
  (ExprStmt
    (Shift
      (Ident a)
      >>> (Number Int 2)
      << (Number Int 1))))
`,
		},
		{
			name: "logical",
			src:  "a || b && c;",
			want: `
(Program
  (ExprStmt
    (LogicalOr
      (Ident a)
      || (LogicalAnd
        (Ident b)
        && (Ident c)))))
`,
		},
		{
			name: "bitwise",
			src:  "a | b ^ c & d;",
			want: `
(Program
  (ExprStmt
    (BitOr
      (Ident a)
      | (BitXor
        (Ident b)
        ^ (BitAnd
          (Ident c)
          & (Ident d))))))
`,
		},
		{
			name: "call chain",
			src:  "a.b[0](1).c;",
			want: `
(Program
  (ExprStmt
    (Call
      (Member
        (Ident a)
        (Property b)
        (Index
          (Number Int 0)))
      (Args
        (Number Int 1))
      (Property c))))
`,
		},
		{
			name: "reserved property name",
			src:  "a.if;",
			want: `
(Program
  (ExprStmt
    (Member
      (Ident a)
      (Property if))))
`,
		},
		{
			name: "new without arguments",
			src:  "new Foo;",
			want: `
(Program
  (ExprStmt
    (New 1
      (Ident Foo))))
`,
		},
		{
			name: "new new",
			src:  "new new Foo();",
			want: `
(Program
  (ExprStmt
    (New 1
      (Instantiation
        (Ident Foo)
        (Args)))))
`,
		},
		{
			name: "instantiation called",
			src:  "new new Foo()();",
			want: `
(Program
  (ExprStmt
    (Instantiation
      (Instantiation
        (Ident Foo)
        (Args))
      (Args))))
`,
		},
		{
			name: "instantiation member",
			src:  "new Foo().bar;",
			want: `
(Program
  (ExprStmt
    (Member
      (Instantiation
        (Ident Foo)
        (Args))
      (Property bar))))
`,
		},
		{
			name: "array with elisions",
			src:  "[1, , 2,];",
			want: `
(Program
  (ExprStmt
    (Array
      (Number Int 1)
      (Number Int 2))))
`,
		},
		{
			name: "strings",
			src:  `"s" + 'q\n';`,
			want: `
(Program
  (ExprStmt
    (Additive
      (String "s")
      + (String "q\n"))))
`,
		},
		{
			name: "parenthesized",
			src:  "(1);",
			want: `
(Program
  (ExprStmt
    (Paren
      (Number Int 1))))
`,
		},
		{
			name: "function expression",
			src:  "f = function (a, b) { return a; };",
			want: `
(Program
  (ExprStmt
    (Assign
      (Ident f)
      = (Function (a b)
        (Return
          (Ident a))))))
`,
		},
		{
			name: "this",
			src:  "this.x;",
			want: `
(Program
  (ExprStmt
    (Member
      (This)
      (Property x))))
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkDump(t, tt.src, tt.want)
		})
	}
}

// TestParseStmt tests the tree built for each statement form.
func TestParseStmt(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "var",
			src:  "var a = 1, b;",
			want: `
(Program
  (Var
    (VarDecl a
      (Number Int 1))
    (VarDecl b)))
`,
		},
		{
			name: "if else",
			src:  "if (a) b; else c;",
			want: `
(Program
  (If
    (Ident a)
    (ExprStmt
      (Ident b))
    else (ExprStmt
      (Ident c))))
`,
		},
		{
			name: "do while",
			src:  "do x++; while (x < 3);",
			want: `
(Program
  (DoWhile
    (ExprStmt
      (Postfix ++
        (Ident x)))
    while (Relational
      (Ident x)
      < (Number Int 3))))
`,
		},
		{
			name: "for",
			src:  "for (i = 0; i < 3; i++) ;",
			want: `
(Program
  (For
    init (Assign
      (Ident i)
      = (Number Int 0))
    cond (Relational
      (Ident i)
      < (Number Int 3))
    post (Postfix ++
      (Ident i))
    (Empty)))
`,
		},
		{
			name: "for without clauses",
			src:  "for (;;) {}",
			want: `
(Program
  (For
    (Block)))
`,
		},
		{
			name: "for var",
			src:  "for (var i = 0, j; ; ) ;",
			want: `
(Program
  (ForVar
    (VarDecl i
      (Number Int 0))
    (VarDecl j)
    (Empty)))
`,
		},
		{
			name: "for in",
			src:  "for (x in o) {}",
			want: `
(Program
  (ForIn
    (Ident x)
    in (Ident o)
    (Block)))
`,
		},
		{
			name: "for var in",
			src:  "for (var k in o) ;",
			want: `
(Program
  (ForInVar
    (VarDecl k)
    in (Ident o)
    (Empty)))
`,
		},
		{
			name: "for var in with initializer",
			src:  "for (var k = 1 in o) ;",
			want: `
(Program
  (ForInVar
    (VarDecl k
      (Number Int 1))
    in (Ident o)
    (Empty)))
`,
		},
		{
			name: "for with parenthesized in",
			src:  "for ((a in b); ;) ;",
			want: `
(Program
  (For
    init (Paren
      (Relational
        (Ident a)
        in (Ident b)))
    (Empty)))
`,
		},
		{
			name: "labeled loop",
			src:  "lbl: while (1) { break lbl; continue; }",
			want: `
(Program
  (Labeled lbl
    (While
      (Number Int 1)
      (Block
        (Break lbl)
        (Continue)))))
`,
		},
		{
			name: "switch",
			src:  "switch (x) { case 1: a; default: b; case 2: }",
			want: `
(Program
  (Switch
    (Ident x)
    (Case
      (Number Int 1)
      (ExprStmt
        (Ident a)))
    (Default
      (ExprStmt
        (Ident b)))
    (Case
      (Number Int 2))))
`,
		},
		{
			name: "try catch finally",
			src:  "try { a(); } catch (e) { } finally { }",
			want: `
(Program
  (Try
    (Block
      (ExprStmt
        (Call
          (Ident a)
          (Args))))
    (Catch e
      (Block))
    finally (Block)))
`,
		},
		{
			name: "try finally",
			src:  "try {} finally {}",
			want: `
(Program
  (Try
    (Block)
    finally (Block)))
`,
		},
		{
			name: "return without value",
			src:  "return\n;",
			want: `
(Program
  (Return))
`,
		},
		{
			name: "misc",
			src:  "with (o) ; throw e; debugger; ;",
			want: `
(Program
  (With
    (Ident o)
    (Empty))
  (Throw
    (Ident e))
  (Debugger)
  (Empty))
`,
		},
		{
			name: "function declaration",
			src:  "function f(a, b) { return a + b; }",
			want: `
(Program
  (FuncDecl f (a b)
    (Return
      (Additive
        (Ident a)
        + (Ident b)))))
`,
		},
		{
			name: "nested function declaration",
			src:  "function f() { function g() {} }",
			want: `
(Program
  (FuncDecl f ()
    (FuncDecl g ())))
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkDump(t, tt.src, tt.want)
		})
	}
}

// TestRestrictedProductions tests that line terminators are significant
// where the grammar forbids them. There is no semicolon insertion.
func TestRestrictedProductions(t *testing.T) {
	tests := []struct {
		src string
		ok  bool
	}{
		{"x++;", true},
		{"x\n++;", false},
		{"a\n++b;", false},
		{"x /* c */ ++;", true},
		{"x /* \n */ ++;", false},
		{"return x;", true},
		{"return\nx;", false},
		{"break lbl;", true},
		{"break\nlbl;", false},
		{"continue\n;", true},
		{"throw e;", true},
		{"throw\ne;", false},
		{"x = 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			if (err == nil) != tt.ok {
				t.Errorf("Parse(%q) error = %v, want ok %v", tt.src, err, tt.ok)
			}
		})
	}
}

// TestParseErrors tests the farthest-failure error report.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		src       string
		line      int
		column    int
		expected  []string
		found     string
		remaining string
		message   string
	}{
		{
			src:       "try { a(); } ",
			line:      1,
			column:    14,
			expected:  []string{`"catch"`, `"finally"`},
			found:     "EOF",
			remaining: "try { a(); } ",
			message:   `1:14: expected "catch" or "finally", found EOF`,
		},
		{
			src:       "var 1;",
			line:      1,
			column:    5,
			expected:  []string{"identifier"},
			found:     "1;",
			remaining: "var 1;",
			message:   `1:5: expected identifier, found "1;"`,
		},
		{
			src:       "1 +;",
			line:      1,
			column:    4,
			expected:  []string{"expression"},
			found:     ";",
			remaining: "1 +;",
			message:   `1:4: expected expression, found ";"`,
		},
		{
			src:       "a;\nthrow\ne;",
			line:      3,
			column:    1,
			expected:  []string{"expression"},
			found:     "e;",
			remaining: "throw\ne;",
			message:   `3:1: expected expression, found "e;"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.src, err)
			}
			if perr.Pos.Line != tt.line || perr.Pos.Column != tt.column {
				t.Errorf("position = %v, want %d:%d", perr.Pos, tt.line, tt.column)
			}
			if d := pretty.Diff(perr.Expected, tt.expected); len(d) > 0 {
				t.Errorf("expected mismatch: %v", d)
			}
			if perr.Found != tt.found {
				t.Errorf("found = %q, want %q", perr.Found, tt.found)
			}
			if perr.Remaining != tt.remaining {
				t.Errorf("remaining = %q, want %q", perr.Remaining, tt.remaining)
			}
			if perr.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", perr.Error(), tt.message)
			}
			if perr.Context == "" {
				t.Error("context is empty")
			}
		})
	}
}

func TestParseFileName(t *testing.T) {
	_, err := parser.ParseFile("bad.js", []byte("if"))
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v", err)
	}
	if !strings.HasPrefix(perr.Error(), "bad.js:1:3: ") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestParsePrefix(t *testing.T) {
	tests := []struct {
		src       string
		elements  int
		remaining string
		ok        bool
	}{
		{"a; b;", 2, "", true},
		{"a; b; ", 2, "", true},
		{"a; b; if", 2, "if", false},
		{"1 + 2; )", 1, ")", false},
		{"try { a(); } ", 0, "try { a(); } ", false},
		{"", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, rest, ok := parser.ParsePrefix(tt.src)
			if ok != tt.ok || rest != tt.remaining {
				t.Errorf("ParsePrefix(%q) = %q, %v; want %q, %v", tt.src, rest, ok, tt.remaining, tt.ok)
			}
			if len(prog.Elements) != tt.elements {
				t.Errorf("elements = %d, want %d", len(prog.Elements), tt.elements)
			}
		})
	}
}

func TestParseExprEntry(t *testing.T) {
	x, err := parser.ParseExpr("1, 2")
	if err != nil {
		t.Fatalf("ParseExpr error = %v", err)
	}
	if len(x.List) != 2 {
		t.Errorf("list = %d, want 2", len(x.List))
	}

	_, err = parser.ParseExpr("1 2")
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v", err)
	}
	if d := pretty.Diff(perr.Expected, []string{"end of input"}); len(d) > 0 {
		t.Errorf("expected mismatch: %v", d)
	}
}

func TestPositions(t *testing.T) {
	prog, err := parser.Parse("a;\n  b + c;")
	if err != nil {
		t.Fatal(err)
	}
	stmt := prog.Elements[1].(*ast.ExprStmt)
	if pos := stmt.Pos(); pos.Line != 2 || pos.Column != 3 {
		t.Errorf("Pos() = %v, want 2:3", pos)
	}
	if end := stmt.End(); end.Line != 2 || end.Column != 9 {
		t.Errorf("End() = %v, want 2:9", end)
	}
	if end := prog.End(); end.Offset != 11 {
		t.Errorf("program End() = %v, want offset 11", end)
	}

	var add *ast.AdditiveExpr
	ast.Walk(stmt, func(n ast.Node) bool {
		if a, ok := n.(*ast.AdditiveExpr); ok && len(a.Ops) > 0 {
			add = a
		}
		return true
	})
	if add == nil {
		t.Fatal("no additive expression")
	}
	if pos := add.Ops[0].OpPos; pos.Column != 5 {
		t.Errorf("OpPos = %v, want column 5", pos)
	}
}

func TestNumberKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.NumberKind
	}{
		{"5;", ast.Int},
		{"5.0;", ast.Float},
		{"5e0;", ast.Float},
		{"0x10;", ast.Int},
		{"99999999999999999999;", ast.Float},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := parser.Parse(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			var lit *ast.NumberLit
			ast.Walk(prog, func(n ast.Node) bool {
				if l, ok := n.(*ast.NumberLit); ok {
					lit = l
				}
				return true
			})
			if lit == nil || lit.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", lit, tt.kind)
			}
		})
	}
}

// TestDeepNesting checks that nesting costs linear time: every construct
// below used to be parsed again on each level when an alternative failed.
func TestDeepNesting(t *testing.T) {
	const depth = 60
	nest := func(open, inner, close string) string {
		return strings.Repeat(open, depth) + inner + strings.Repeat(close, depth)
	}
	tests := []struct {
		name string
		src  string
	}{
		{"parentheses", nest("(", "1", ")") + ";"},
		{"new parenthesized", nest("new (", "x", ")") + ";"},
		{"new function", nest("new function () { ", "x;", " };")},
		{"new member", nest("new (new ", "x", ".y)") + ";"},
		{"for in function", nest("for (x in function () { ", "x;", " }) ;")},
		{"for var in function", nest("for (var k in function () { ", "x;", " }) ;")},
		{"for function init", nest("for (function () { ", "x;", " }(); ;) ;")},
		{"blocks", nest("{ if (1) ", "x;", " }")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			begin := time.Now()
			if _, err := parser.Parse(tt.src); err != nil {
				t.Fatalf("Parse error = %v", err)
			}
			if d := time.Since(begin); d > 2*time.Second {
				t.Errorf("Parse took %v at depth %d", d, depth)
			}
		})
	}
}
