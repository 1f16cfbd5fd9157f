// Package ast defines the abstract syntax tree of the kunjs JavaScript subset.
//
// The tree mirrors the grammar one node type per production:
//   - Every binary precedence level is a head plus an ordered list of
//     (operator, operand) operations. An empty list means the level adds
//     nothing and the node stands for its head.
//   - Unary expressions carry their prefix operators as an ordered list.
//   - Recursive slots (parenthesized expressions, nested statements,
//     function bodies) are pointers, so nesting depth is bounded only by
//     memory.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface)
//	│   ├── SequenceExpr, AssignExpr, CondExpr - comma, assignment, ?:
//	│   ├── LogicalOrExpr ... MultiplicativeExpr - binary levels
//	│   ├── UnaryExpr, PostfixExpr
//	│   ├── CallExpr, NewExpr - LHSExpr
//	│   ├── MemberAccess, Instantiation - MemberExpr
//	│   ├── ThisExpr, Ident, ArrayLit, ParenExpr - PrimaryExpr
//	│   ├── NullLit, BoolLit, NumberLit, StringLit - Literal
//	│   └── FunctionExpr
//	├── Stmt (interface) - one type per statement form
//	├── Arguments, Index, Property - Modifier
//	└── Program, FuncDecl, VarDecl, CaseClause, DefaultClause, CatchClause
//
// Nodes are built once by the parser and never mutated afterwards.
package ast

import "github.com/fabiokung/kunjs/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	SourceElement
	stmtNode()
}

// SourceElement is a top-level item of a program or function body: a
// statement or a function declaration.
type SourceElement interface {
	Node
	sourceElementNode()
}

// Span holds the source range of a node.
type Span struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (s *Span) Pos() token.Position { return s.StartPos }
func (s *Span) End() token.Position { return s.EndPos }

// BaseExpr is embedded in expression nodes.
type BaseExpr struct{ Span }

func (*BaseExpr) exprNode() {}

// BaseStmt is embedded in statement nodes.
type BaseStmt struct{ Span }

func (*BaseStmt) stmtNode()          {}
func (*BaseStmt) sourceElementNode() {}

// MakeSpan creates a Span from start and end positions.
func MakeSpan(start, end token.Position) Span {
	return Span{StartPos: start, EndPos: end}
}
