package ast

import (
	"strings"
	"unicode/utf8"

	"github.com/fabiokung/kunjs/internal/token"
)

// Format renders node as source text. Parsing the result yields a tree with
// the same structure as node; only positions and layout differ.
func Format(node Node) string {
	f := &formatter{}
	f.node(node)
	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

func (f *formatter) write(parts ...string) {
	for _, s := range parts {
		f.sb.WriteString(s)
	}
}

func (f *formatter) newline() {
	f.sb.WriteByte('\n')
	for i := 0; i < f.indent; i++ {
		f.sb.WriteString("    ")
	}
}

func (f *formatter) node(node Node) {
	switch n := node.(type) {
	case *Program:
		f.elements(n.Elements, false)
		if len(n.Elements) > 0 {
			f.sb.WriteByte('\n')
		}
	case *FuncDecl:
		f.function(n.Name, n.Params, n.Body)
	case Stmt:
		f.stmt(n)
	case Expr:
		f.expr(n)
	case *VarDecl:
		f.varDecl(n)
	case Modifier:
		f.modifier(n)
	}
}

// elements writes source elements one per line. When nested is set each
// element starts on a fresh indented line.
func (f *formatter) elements(list []SourceElement, nested bool) {
	for i, e := range list {
		if nested || i > 0 {
			f.newline()
		}
		if fd, ok := e.(*FuncDecl); ok {
			f.function(fd.Name, fd.Params, fd.Body)
			continue
		}
		f.stmt(e.(Stmt))
	}
}

func (f *formatter) function(name string, params []string, body []SourceElement) {
	f.write("function")
	if name != "" {
		f.write(" ", name)
	}
	f.write("(", strings.Join(params, ", "), ") {")
	f.indent++
	f.elements(body, true)
	f.indent--
	if len(body) > 0 {
		f.newline()
	}
	f.write("}")
}

func (f *formatter) stmts(list []Stmt) {
	f.indent++
	for _, s := range list {
		f.newline()
		f.stmt(s)
	}
	f.indent--
}

func (f *formatter) stmt(stmt Stmt) {
	switch n := stmt.(type) {
	case *BlockStmt:
		f.write("{")
		f.stmts(n.List)
		if len(n.List) > 0 {
			f.newline()
		}
		f.write("}")

	case *VarStmt:
		f.write("var ")
		f.varDecls(n.List)
		f.write(";")

	case *EmptyStmt:
		f.write(";")

	case *ExprStmt:
		f.expr(n.X)
		f.write(";")

	case *IfStmt:
		f.write("if (")
		f.expr(n.Cond)
		f.write(") ")
		f.stmt(n.Then)
		if n.Else != nil {
			f.write(" else ")
			f.stmt(n.Else)
		}

	case *DoWhileStmt:
		f.write("do ")
		f.stmt(n.Body)
		f.write(" while (")
		f.expr(n.Cond)
		f.write(");")

	case *WhileStmt:
		f.write("while (")
		f.expr(n.Cond)
		f.write(") ")
		f.stmt(n.Body)

	case *ForStmt:
		f.write("for (")
		f.optExpr(n.Init)
		f.write(";")
		f.clauses(n.Cond, n.Post)
		f.write(") ")
		f.stmt(n.Body)

	case *ForVarStmt:
		f.write("for (var ")
		f.varDecls(n.Decls)
		f.write(";")
		f.clauses(n.Cond, n.Post)
		f.write(") ")
		f.stmt(n.Body)

	case *ForInStmt:
		f.write("for (")
		f.expr(n.Target)
		f.write(" in ")
		f.expr(n.Object)
		f.write(") ")
		f.stmt(n.Body)

	case *ForInVarStmt:
		f.write("for (var ")
		f.varDecl(n.Decl)
		f.write(" in ")
		f.expr(n.Object)
		f.write(") ")
		f.stmt(n.Body)

	case *ContinueStmt:
		f.jump("continue", n.Label)
	case *BreakStmt:
		f.jump("break", n.Label)

	case *ReturnStmt:
		f.write("return")
		if n.Value != nil {
			f.write(" ")
			f.expr(n.Value)
		}
		f.write(";")

	case *WithStmt:
		f.write("with (")
		f.expr(n.Object)
		f.write(") ")
		f.stmt(n.Body)

	case *LabeledStmt:
		f.write(n.Label, ": ")
		f.stmt(n.Body)

	case *SwitchStmt:
		f.write("switch (")
		f.expr(n.Tag)
		f.write(") {")
		f.indent++
		f.cases(n.Cases)
		if n.Default != nil {
			f.newline()
			f.write("default:")
			f.stmts(n.Default.Body)
		}
		f.cases(n.Trailing)
		f.indent--
		f.newline()
		f.write("}")

	case *ThrowStmt:
		f.write("throw ")
		f.expr(n.X)
		f.write(";")

	case *TryStmt:
		f.write("try ")
		f.stmt(n.Body)
		if n.Catch != nil {
			f.write(" catch (", n.Catch.Param, ") ")
			f.stmt(n.Catch.Body)
		}
		if n.Finally != nil {
			f.write(" finally ")
			f.stmt(n.Finally)
		}

	case *DebuggerStmt:
		f.write("debugger;")
	}
}

func (f *formatter) cases(list []*CaseClause) {
	for _, c := range list {
		f.newline()
		f.write("case ")
		f.expr(c.Match)
		f.write(":")
		f.stmts(c.Body)
	}
}

func (f *formatter) jump(keyword, label string) {
	f.write(keyword)
	if label != "" {
		f.write(" ", label)
	}
	f.write(";")
}

func (f *formatter) clauses(cond, post *SequenceExpr) {
	if cond != nil {
		f.write(" ")
		f.expr(cond)
	}
	f.write(";")
	if post != nil {
		f.write(" ")
		f.expr(post)
	}
}

func (f *formatter) optExpr(x *SequenceExpr) {
	if x != nil {
		f.expr(x)
	}
}

func (f *formatter) varDecls(list []*VarDecl) {
	for i, d := range list {
		if i > 0 {
			f.write(", ")
		}
		f.varDecl(d)
	}
}

func (f *formatter) varDecl(d *VarDecl) {
	f.write(d.Name)
	if d.Init != nil {
		f.write(" = ")
		f.expr(d.Init)
	}
}

func (f *formatter) expr(expr Expr) {
	switch n := expr.(type) {
	case *SequenceExpr:
		for i, x := range n.List {
			if i > 0 {
				f.write(", ")
			}
			f.expr(x)
		}

	case *AssignExpr:
		for _, t := range n.Targets {
			f.expr(t.Target)
			f.write(" ", t.Op.String(), " ")
		}
		f.expr(n.Value)

	case *CondExpr:
		f.expr(n.Test)
		if n.Then != nil {
			f.write(" ? ")
			f.expr(n.Then)
			f.write(" : ")
			f.expr(n.Else)
		}

	case *LogicalOrExpr:
		formatLevel(f, n.Head, n.Ops)
	case *LogicalAndExpr:
		formatLevel(f, n.Head, n.Ops)
	case *BitOrExpr:
		formatLevel(f, n.Head, n.Ops)
	case *BitXorExpr:
		formatLevel(f, n.Head, n.Ops)
	case *BitAndExpr:
		formatLevel(f, n.Head, n.Ops)
	case *EqualityExpr:
		formatLevel(f, n.Head, n.Ops)
	case *RelationalExpr:
		formatLevel(f, n.Head, n.Ops)
	case *ShiftExpr:
		formatLevel(f, n.Head, n.Ops)
	case *AdditiveExpr:
		formatLevel(f, n.Head, n.Ops)
	case *MultiplicativeExpr:
		formatLevel(f, n.Head, n.Ops)

	case *UnaryExpr:
		for i, op := range n.Ops {
			f.write(op.String())
			if separateUnary(op, n.Ops[i+1:]) {
				f.write(" ")
			}
		}
		f.expr(n.Operand)

	case *PostfixExpr:
		f.expr(n.Operand)
		if n.Op != token.ILLEGAL {
			f.write(n.Op.String())
		}

	case *CallExpr:
		f.expr(n.Callee)
		f.modifier(n.Args)
		for _, m := range n.Modifiers {
			f.modifier(m)
		}

	case *NewExpr:
		for i := 0; i < n.News; i++ {
			f.write("new ")
		}
		f.expr(n.Target)

	case *MemberAccess:
		f.expr(n.Target)
		for i, m := range n.Modifiers {
			if i == 0 && needsSpaceBeforeDot(n.Target, m) {
				f.write(" ")
			}
			f.modifier(m)
		}

	case *Instantiation:
		f.write("new ")
		f.expr(n.Target)
		f.modifier(n.Args)

	case *ThisExpr:
		f.write("this")
	case *Ident:
		f.write(n.Name)
	case *NullLit:
		f.write("null")
	case *BoolLit:
		if n.Value {
			f.write("true")
		} else {
			f.write("false")
		}
	case *NumberLit:
		f.write(n.Raw)
	case *StringLit:
		f.write(Quote(n.Value))

	case *ArrayLit:
		f.write("[")
		for i, x := range n.Elements {
			if i > 0 {
				f.write(", ")
			}
			f.expr(x)
		}
		f.write("]")

	case *ParenExpr:
		f.write("(")
		f.expr(n.X)
		f.write(")")

	case *FunctionExpr:
		f.function(n.Name, n.Params, n.Body)
	}
}

func formatLevel[T Expr](f *formatter, head T, ops []Operation[T]) {
	f.expr(head)
	for _, op := range ops {
		f.write(" ", op.Op.String(), " ")
		f.expr(op.Operand)
	}
}

func (f *formatter) modifier(m Modifier) {
	switch n := m.(type) {
	case *Arguments:
		f.write("(")
		for i, x := range n.List {
			if i > 0 {
				f.write(", ")
			}
			f.expr(x)
		}
		f.write(")")
	case *Index:
		f.write("[")
		f.expr(n.Index)
		f.write("]")
	case *Property:
		f.write(".", n.Name)
	}
}

// separateUnary reports whether a space must follow op so that it does not
// merge with the next operator: "- -x" is not "--x" and typeof needs a
// space before its operand.
func separateUnary(op token.Token, rest []token.Token) bool {
	switch op {
	case token.DELETE, token.VOID, token.TYPEOF:
		return true
	}
	if len(rest) == 0 {
		return false
	}
	s, next := op.String(), rest[0].String()
	last := s[len(s)-1]
	return (last == '+' || last == '-') && next[0] == last || rest[0].IsKeyword()
}

// needsSpaceBeforeDot reports whether a property access directly after an
// integer literal would be read as a fraction ("1 .x", not "1.x").
func needsSpaceBeforeDot(target MemberTarget, m Modifier) bool {
	num, ok := target.(*NumberLit)
	if !ok {
		return false
	}
	if _, ok := m.(*Property); !ok {
		return false
	}
	return !strings.ContainsAny(num.Raw, ".eExX")
}

// Quote returns s as a double-quoted string literal that the lexer decodes
// back to s.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		i += n
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\x`)
				sb.WriteByte("0123456789abcdef"[r>>4])
				sb.WriteByte("0123456789abcdef"[r&0xf])
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
