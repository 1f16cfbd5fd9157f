package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fabiokung/kunjs/internal/token"
)

// Printer renders nodes as an indented S-expression tree, one line per
// node. Levels that contribute nothing of their own (a binary level without
// operations, a unary expression without operators, a one-element comma
// expression and so on) are printed as the node they wrap.
//
//	(Program
//	  (ExprStmt
//	    (Additive
//	      (Number Int 1)
//	      + (Number Int 2))))
type Printer struct {
	w      io.Writer
	base   string
	indent int
	err    error
}

// NewPrinter creates a Printer that writes to w, prefixing every line with
// baseIndent spaces.
func NewPrinter(w io.Writer, baseIndent int) *Printer {
	if baseIndent < 0 {
		baseIndent = 0
	}
	return &Printer{w: w, base: strings.Repeat(" ", baseIndent)}
}

// Print writes node followed by a newline.
func (p *Printer) Print(node Node) error {
	p.printf("%s", p.base)
	p.node(node)
	p.printf("\n")
	return p.err
}

// Dump returns the S-expression rendering of node.
func Dump(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb, 0).Print(node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) open(name string, attrs ...string) {
	p.printf("(%s", name)
	for _, a := range attrs {
		p.printf(" %s", a)
	}
}

func (p *Printer) close() {
	p.printf(")")
}

// child starts a new line one level deeper, writes prefix and prints n.
func (p *Printer) child(prefix string, n Node) {
	p.indent++
	p.printf("\n%s%s%s", p.base, strings.Repeat("  ", p.indent), prefix)
	p.node(n)
	p.indent--
}

func (p *Printer) node(node Node) {
	switch n := node.(type) {
	case nil:
		p.printf("<nil>")

	case *Program:
		p.open("Program")
		for _, e := range n.Elements {
			p.child("", e)
		}
		p.close()

	case *FuncDecl:
		p.open("FuncDecl", n.Name, params(n.Params))
		for _, e := range n.Body {
			p.child("", e)
		}
		p.close()

	case Expr:
		p.expr(n)

	case Stmt:
		p.stmt(n)

	case *VarDecl:
		p.open("VarDecl", n.Name)
		if n.Init != nil {
			p.child("", n.Init)
		}
		p.close()

	case *CaseClause:
		p.open("Case")
		p.child("", n.Match)
		for _, s := range n.Body {
			p.child("", s)
		}
		p.close()

	case *DefaultClause:
		p.open("Default")
		for _, s := range n.Body {
			p.child("", s)
		}
		p.close()

	case *CatchClause:
		p.open("Catch", n.Param)
		p.child("", n.Body)
		p.close()

	case *Arguments:
		p.open("Args")
		for _, x := range n.List {
			p.child("", x)
		}
		p.close()

	case *Index:
		p.open("Index")
		p.child("", n.Index)
		p.close()

	case *Property:
		p.open("Property", n.Name)
		p.close()

	default:
		p.printf("<%T>", node)
	}
}

func (p *Printer) expr(expr Expr) {
	switch n := expr.(type) {
	case *SequenceExpr:
		if len(n.List) == 1 {
			p.node(n.List[0])
			return
		}
		p.open("Sequence")
		for _, x := range n.List {
			p.child("", x)
		}
		p.close()

	case *AssignExpr:
		if len(n.Targets) == 0 {
			p.node(n.Value)
			return
		}
		p.open("Assign")
		prefix := ""
		for _, t := range n.Targets {
			p.child(prefix, t.Target)
			prefix = t.Op.String() + " "
		}
		p.child(prefix, n.Value)
		p.close()

	case *CondExpr:
		if n.Then == nil {
			p.node(n.Test)
			return
		}
		p.open("Cond")
		p.child("", n.Test)
		p.child("? ", n.Then)
		p.child(": ", n.Else)
		p.close()

	case *LogicalOrExpr:
		printLevel(p, "LogicalOr", n.Head, n.Ops)
	case *LogicalAndExpr:
		printLevel(p, "LogicalAnd", n.Head, n.Ops)
	case *BitOrExpr:
		printLevel(p, "BitOr", n.Head, n.Ops)
	case *BitXorExpr:
		printLevel(p, "BitXor", n.Head, n.Ops)
	case *BitAndExpr:
		printLevel(p, "BitAnd", n.Head, n.Ops)
	case *EqualityExpr:
		printLevel(p, "Equality", n.Head, n.Ops)
	case *RelationalExpr:
		printLevel(p, "Relational", n.Head, n.Ops)
	case *ShiftExpr:
		printLevel(p, "Shift", n.Head, n.Ops)
	case *AdditiveExpr:
		printLevel(p, "Additive", n.Head, n.Ops)
	case *MultiplicativeExpr:
		printLevel(p, "Multiplicative", n.Head, n.Ops)

	case *UnaryExpr:
		if len(n.Ops) == 0 {
			p.node(n.Operand)
			return
		}
		ops := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = op.String()
		}
		p.open("Unary", ops...)
		p.child("", n.Operand)
		p.close()

	case *PostfixExpr:
		if n.Op == token.ILLEGAL {
			p.node(n.Operand)
			return
		}
		p.open("Postfix", n.Op.String())
		p.child("", n.Operand)
		p.close()

	case *CallExpr:
		p.open("Call")
		p.child("", n.Callee)
		p.child("", n.Args)
		for _, m := range n.Modifiers {
			p.child("", m)
		}
		p.close()

	case *NewExpr:
		if n.News == 0 {
			p.node(n.Target)
			return
		}
		p.open("New", strconv.Itoa(n.News))
		p.child("", n.Target)
		p.close()

	case *MemberAccess:
		if len(n.Modifiers) == 0 {
			p.node(n.Target)
			return
		}
		p.open("Member")
		p.child("", n.Target)
		for _, m := range n.Modifiers {
			p.child("", m)
		}
		p.close()

	case *Instantiation:
		p.open("Instantiation")
		p.child("", n.Target)
		p.child("", n.Args)
		p.close()

	case *ThisExpr:
		p.open("This")
		p.close()
	case *Ident:
		p.open("Ident", n.Name)
		p.close()
	case *NullLit:
		p.open("Null")
		p.close()
	case *BoolLit:
		p.open("Bool", strconv.FormatBool(n.Value))
		p.close()
	case *NumberLit:
		p.open("Number", n.Kind.String(), n.Raw)
		p.close()
	case *StringLit:
		p.open("String", strconv.Quote(n.Value))
		p.close()

	case *ArrayLit:
		p.open("Array")
		for _, x := range n.Elements {
			p.child("", x)
		}
		p.close()

	case *ParenExpr:
		p.open("Paren")
		p.child("", n.X)
		p.close()

	case *FunctionExpr:
		if n.Name != "" {
			p.open("Function", n.Name, params(n.Params))
		} else {
			p.open("Function", params(n.Params))
		}
		for _, e := range n.Body {
			p.child("", e)
		}
		p.close()

	default:
		p.printf("<%T>", expr)
	}
}

// printLevel prints one binary precedence level, or just its head when it
// has no operations.
func printLevel[T Expr](p *Printer, name string, head T, ops []Operation[T]) {
	if len(ops) == 0 {
		p.node(head)
		return
	}
	p.open(name)
	p.child("", head)
	for _, op := range ops {
		p.child(op.Op.String()+" ", op.Operand)
	}
	p.close()
}

func (p *Printer) stmt(stmt Stmt) {
	switch n := stmt.(type) {
	case *BlockStmt:
		p.open("Block")
		for _, s := range n.List {
			p.child("", s)
		}
		p.close()

	case *VarStmt:
		p.open("Var")
		for _, d := range n.List {
			p.child("", d)
		}
		p.close()

	case *EmptyStmt:
		p.open("Empty")
		p.close()

	case *ExprStmt:
		p.open("ExprStmt")
		p.child("", n.X)
		p.close()

	case *IfStmt:
		p.open("If")
		p.child("", n.Cond)
		p.child("", n.Then)
		if n.Else != nil {
			p.child("else ", n.Else)
		}
		p.close()

	case *DoWhileStmt:
		p.open("DoWhile")
		p.child("", n.Body)
		p.child("while ", n.Cond)
		p.close()

	case *WhileStmt:
		p.open("While")
		p.child("", n.Cond)
		p.child("", n.Body)
		p.close()

	case *ForStmt:
		p.open("For")
		p.forClauses(n.Init, n.Cond, n.Post)
		p.child("", n.Body)
		p.close()

	case *ForVarStmt:
		p.open("ForVar")
		for _, d := range n.Decls {
			p.child("", d)
		}
		p.forClauses(nil, n.Cond, n.Post)
		p.child("", n.Body)
		p.close()

	case *ForInStmt:
		p.open("ForIn")
		p.child("", n.Target)
		p.child("in ", n.Object)
		p.child("", n.Body)
		p.close()

	case *ForInVarStmt:
		p.open("ForInVar")
		p.child("", n.Decl)
		p.child("in ", n.Object)
		p.child("", n.Body)
		p.close()

	case *ContinueStmt:
		p.jump("Continue", n.Label)
	case *BreakStmt:
		p.jump("Break", n.Label)

	case *ReturnStmt:
		p.open("Return")
		if n.Value != nil {
			p.child("", n.Value)
		}
		p.close()

	case *WithStmt:
		p.open("With")
		p.child("", n.Object)
		p.child("", n.Body)
		p.close()

	case *LabeledStmt:
		p.open("Labeled", n.Label)
		p.child("", n.Body)
		p.close()

	case *SwitchStmt:
		p.open("Switch")
		p.child("", n.Tag)
		for _, c := range n.Cases {
			p.child("", c)
		}
		if n.Default != nil {
			p.child("", n.Default)
		}
		for _, c := range n.Trailing {
			p.child("", c)
		}
		p.close()

	case *ThrowStmt:
		p.open("Throw")
		p.child("", n.X)
		p.close()

	case *TryStmt:
		p.open("Try")
		p.child("", n.Body)
		if n.Catch != nil {
			p.child("", n.Catch)
		}
		if n.Finally != nil {
			p.child("finally ", n.Finally)
		}
		p.close()

	case *DebuggerStmt:
		p.open("Debugger")
		p.close()

	default:
		p.printf("<%T>", stmt)
	}
}

func (p *Printer) forClauses(init, cond, post *SequenceExpr) {
	if init != nil {
		p.child("init ", init)
	}
	if cond != nil {
		p.child("cond ", cond)
	}
	if post != nil {
		p.child("post ", post)
	}
}

func (p *Printer) jump(name, label string) {
	if label != "" {
		p.open(name, label)
	} else {
		p.open(name)
	}
	p.close()
}

func params(names []string) string {
	return "(" + strings.Join(names, " ") + ")"
}
