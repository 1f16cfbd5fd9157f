// Package compiler lowers a kunjs AST to IR constants.
//
// Lowering is total: every node produces an ir.Value. Constructs without a
// lowering rule produce ir.Unsupported and control-flow statements produce
// ir.ControlFlow after their parts have been lowered, so the rest of a
// program still lowers around them.
package compiler

import (
	"go.uber.org/zap"

	"github.com/fabiokung/kunjs/internal/ast"
	"github.com/fabiokung/kunjs/internal/ir"
)

// Compiler walks an AST and emits operations through an ir.Builder. It is
// not safe for concurrent use.
type Compiler struct {
	b   *ir.Builder
	log *zap.Logger
}

// New creates a Compiler emitting through b. A nil logger disables logging.
func New(b *ir.Builder, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{b: b, log: log}
}

// Compile lowers prog with a fresh builder and returns the value of its last
// source element together with the operations performed.
func Compile(prog *ast.Program, log *zap.Logger) (ir.Value, ir.Trace) {
	c := New(ir.NewBuilder(), log)
	v := c.Program(prog)
	return v, c.b.Trace()
}

// Builder returns the builder the Compiler emits through.
func (c *Compiler) Builder() *ir.Builder {
	return c.b
}

// Program lowers every source element in order and returns the value of the
// last one, or Void for an empty program.
func (c *Compiler) Program(prog *ast.Program) ir.Value {
	v := ir.Void()
	for _, el := range prog.Elements {
		v = c.SourceElement(el)
	}
	c.log.Debug("compiled program",
		zap.String("file", prog.Filename),
		zap.Int("elements", len(prog.Elements)),
		zap.Stringer("value", v),
		zap.Int("ops", len(c.b.Trace())),
	)
	return v
}

// SourceElement lowers a statement or function declaration. A function
// declaration only reserves its name.
func (c *Compiler) SourceElement(el ast.SourceElement) ir.Value {
	switch n := el.(type) {
	case *ast.FuncDecl:
		c.log.Debug("function declaration not lowered",
			zap.String("name", n.Name),
			zap.Stringer("pos", n.Pos()),
		)
		return ir.Function(n.Name)
	case ast.Stmt:
		return c.Stmt(n)
	}
	return c.unsupported("source element", el)
}

// Stmt lowers a statement. Statements in a list are lowered in document
// order; var declarations are not hoisted.
func (c *Compiler) Stmt(stmt ast.Stmt) ir.Value {
	switch n := stmt.(type) {
	case *ast.BlockStmt:
		return c.stmts(n.List)

	case *ast.VarStmt:
		return c.varDecls(n.List)

	case *ast.EmptyStmt, *ast.DebuggerStmt:
		return ir.Void()

	case *ast.ExprStmt:
		return c.Expr(n.X)

	case *ast.IfStmt:
		c.Expr(n.Cond)
		c.Stmt(n.Then)
		if n.Else != nil {
			c.Stmt(n.Else)
		}
		return c.controlFlow("if", n)

	case *ast.DoWhileStmt:
		c.Stmt(n.Body)
		c.Expr(n.Cond)
		return c.controlFlow("do-while", n)

	case *ast.WhileStmt:
		c.Expr(n.Cond)
		c.Stmt(n.Body)
		return c.controlFlow("while", n)

	case *ast.ForStmt:
		c.optExpr(n.Init)
		c.optExpr(n.Cond)
		c.optExpr(n.Post)
		c.Stmt(n.Body)
		return c.controlFlow("for", n)

	case *ast.ForVarStmt:
		c.varDecls(n.Decls)
		c.optExpr(n.Cond)
		c.optExpr(n.Post)
		c.Stmt(n.Body)
		return c.controlFlow("for", n)

	case *ast.ForInStmt:
		c.Expr(n.Object)
		c.Stmt(n.Body)
		return c.controlFlow("for-in", n)

	case *ast.ForInVarStmt:
		c.varDecls([]*ast.VarDecl{n.Decl})
		c.Expr(n.Object)
		c.Stmt(n.Body)
		return c.controlFlow("for-in", n)

	case *ast.ContinueStmt:
		return c.controlFlow("continue", n)
	case *ast.BreakStmt:
		return c.controlFlow("break", n)

	case *ast.ReturnStmt:
		c.optExpr(n.Value)
		return c.controlFlow("return", n)

	case *ast.WithStmt:
		c.Expr(n.Object)
		c.Stmt(n.Body)
		return c.controlFlow("with", n)

	case *ast.LabeledStmt:
		return c.Stmt(n.Body)

	case *ast.SwitchStmt:
		c.Expr(n.Tag)
		c.cases(n.Cases)
		if n.Default != nil {
			c.stmts(n.Default.Body)
		}
		c.cases(n.Trailing)
		return c.controlFlow("switch", n)

	case *ast.ThrowStmt:
		c.Expr(n.X)
		return c.controlFlow("throw", n)

	case *ast.TryStmt:
		c.Stmt(n.Body)
		if n.Catch != nil {
			c.Stmt(n.Catch.Body)
		}
		if n.Finally != nil {
			c.Stmt(n.Finally)
		}
		return c.controlFlow("try", n)
	}
	return c.unsupported("statement", stmt)
}

func (c *Compiler) stmts(list []ast.Stmt) ir.Value {
	v := ir.Void()
	for _, s := range list {
		v = c.Stmt(s)
	}
	return v
}

// varDecls lowers each initializer in place and returns the last value.
func (c *Compiler) varDecls(list []*ast.VarDecl) ir.Value {
	v := ir.Void()
	for _, d := range list {
		if d.Init != nil {
			v = c.Expr(d.Init)
		}
	}
	return v
}

func (c *Compiler) cases(list []*ast.CaseClause) {
	for _, cc := range list {
		c.Expr(cc.Match)
		c.stmts(cc.Body)
	}
}

func (c *Compiler) optExpr(x *ast.SequenceExpr) {
	if x != nil {
		c.Expr(x)
	}
}

// controlFlow returns the placeholder for a statement that needs basic
// blocks to be lowered.
func (c *Compiler) controlFlow(construct string, n ast.Node) ir.Value {
	c.log.Debug("control flow not lowered",
		zap.String("construct", construct),
		zap.Stringer("pos", n.Pos()),
	)
	return ir.ControlFlow(construct)
}

func (c *Compiler) unsupported(construct string, n ast.Node) ir.Value {
	c.log.Debug("unsupported construct",
		zap.String("construct", construct),
		zap.Stringer("pos", n.Pos()),
	)
	return ir.Unsupported(construct)
}
