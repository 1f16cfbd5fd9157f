package ast

import "github.com/fabiokung/kunjs/internal/token"

// Operation is one (operator, operand) step of a binary precedence level.
// Folding Head with each operation in order reproduces the left-associative
// reading of the source.
type Operation[T Expr] struct {
	Op      token.Token
	OpPos   token.Position
	Operand T
}

// SequenceExpr is the comma expression: a, b, c. It always holds at least
// one element; its value is that of the last one.
type SequenceExpr struct {
	BaseExpr
	List []*AssignExpr
}

// AssignTarget is a pending assignment "target op" in an AssignExpr.
type AssignTarget struct {
	Target LHSExpr
	Op     token.Token // ASSIGN or a compound assignment operator
}

// AssignExpr represents a = b = c as Targets [a =, b =] applied right to
// left to Value c. A plain conditional has no targets.
type AssignExpr struct {
	BaseExpr
	Targets []AssignTarget
	Value   *CondExpr
}

// CondExpr is Test ? Then : Else. Then and Else are nil when the ternary
// part is absent.
type CondExpr struct {
	BaseExpr
	Test *LogicalOrExpr
	Then *AssignExpr
	Else *AssignExpr
}

// LogicalOrExpr is the || level.
type LogicalOrExpr struct {
	BaseExpr
	Head *LogicalAndExpr
	Ops  []Operation[*LogicalAndExpr]
}

// LogicalAndExpr is the && level.
type LogicalAndExpr struct {
	BaseExpr
	Head *BitOrExpr
	Ops  []Operation[*BitOrExpr]
}

// BitOrExpr is the | level.
type BitOrExpr struct {
	BaseExpr
	Head *BitXorExpr
	Ops  []Operation[*BitXorExpr]
}

// BitXorExpr is the ^ level.
type BitXorExpr struct {
	BaseExpr
	Head *BitAndExpr
	Ops  []Operation[*BitAndExpr]
}

// BitAndExpr is the & level.
type BitAndExpr struct {
	BaseExpr
	Head *EqualityExpr
	Ops  []Operation[*EqualityExpr]
}

// EqualityExpr is the == != === !== level.
type EqualityExpr struct {
	BaseExpr
	Head *RelationalExpr
	Ops  []Operation[*RelationalExpr]
}

// RelationalExpr is the < > <= >= instanceof in level.
type RelationalExpr struct {
	BaseExpr
	Head *ShiftExpr
	Ops  []Operation[*ShiftExpr]
}

// ShiftExpr is the << >> >>> level.
type ShiftExpr struct {
	BaseExpr
	Head *AdditiveExpr
	Ops  []Operation[*AdditiveExpr]
}

// AdditiveExpr is the + - level.
type AdditiveExpr struct {
	BaseExpr
	Head *MultiplicativeExpr
	Ops  []Operation[*MultiplicativeExpr]
}

// MultiplicativeExpr is the * / % level.
type MultiplicativeExpr struct {
	BaseExpr
	Head *UnaryExpr
	Ops  []Operation[*UnaryExpr]
}

// UnaryExpr applies Ops to Operand from right to left: for - ! x, Ops is
// [SUB, NOT] and ! binds first.
type UnaryExpr struct {
	BaseExpr
	Ops     []token.Token
	Operand *PostfixExpr
}

// PostfixExpr is an LHS expression with an optional ++ or --. Op is
// token.ILLEGAL when there is no postfix operator.
type PostfixExpr struct {
	BaseExpr
	Operand LHSExpr
	Op      token.Token
}

// LHSExpr is a CallExpr or a NewExpr.
type LHSExpr interface {
	Expr
	lhsNode()
}

// CallExpr is Callee(Args) followed by further calls, indexes and property
// accesses, which attach in order.
type CallExpr struct {
	BaseExpr
	Callee    MemberExpr
	Args      *Arguments
	Modifiers []Modifier
}

// NewExpr is zero or more "new" operators before a member expression. With
// News == 0 it is just the member expression.
type NewExpr struct {
	BaseExpr
	News   int
	Target MemberExpr
}

func (*CallExpr) lhsNode() {}
func (*NewExpr) lhsNode()  {}

// MemberExpr is a MemberAccess or an Instantiation.
type MemberExpr interface {
	Expr
	memberNode()
}

// MemberAccess is a primary expression, function expression or
// instantiation followed by index and property accesses.
type MemberAccess struct {
	BaseExpr
	Target    MemberTarget
	Modifiers []Modifier // *Index or *Property
}

// Instantiation is new Target(Args).
type Instantiation struct {
	BaseExpr
	Target MemberExpr
	Args   *Arguments
}

func (*MemberAccess) memberNode()  {}
func (*Instantiation) memberNode() {}

// Modifier is a trailing call, index or property access.
type Modifier interface {
	Node
	modifierNode()
}

// Arguments is a parenthesized argument list.
type Arguments struct {
	Span
	List []*AssignExpr
}

// Index is [Index].
type Index struct {
	Span
	Index *SequenceExpr
}

// Property is .Name. Name may be a reserved word.
type Property struct {
	Span
	Name string
}

func (*Arguments) modifierNode() {}
func (*Index) modifierNode()     {}
func (*Property) modifierNode()  {}

// MemberTarget is what a MemberAccess starts from: a primary expression, a
// function expression or an instantiation.
type MemberTarget interface {
	Expr
	memberTargetNode()
}

// PrimaryExpr is this, an identifier, a literal, an array literal or a
// parenthesized expression.
type PrimaryExpr interface {
	MemberTarget
	primaryNode()
}

// ThisExpr is the this keyword.
type ThisExpr struct {
	BaseExpr
}

// Ident is an identifier reference.
type Ident struct {
	BaseExpr
	Name string
}

// ArrayLit is [a, b]. Elisions are not represented.
type ArrayLit struct {
	BaseExpr
	Elements []*AssignExpr
}

// ParenExpr is (X).
type ParenExpr struct {
	BaseExpr
	X *SequenceExpr
}

// Literal is null, a boolean, a number or a string.
type Literal interface {
	PrimaryExpr
	literalNode()
}

// NullLit is null.
type NullLit struct {
	BaseExpr
}

// BoolLit is true or false.
type BoolLit struct {
	BaseExpr
	Value bool
}

// NumberKind distinguishes integer from floating literals.
type NumberKind uint8

const (
	Int   NumberKind = iota // spelled without fraction or exponent
	Float                   // spelled with a fraction or exponent
)

func (k NumberKind) String() string {
	if k == Float {
		return "Float"
	}
	return "Int"
}

// NumberLit is a numeric literal. The kind comes from the spelling: 5 is
// Int, 5.0 and 5e0 are Float.
type NumberLit struct {
	BaseExpr
	Kind  NumberKind
	Raw   string
	Int   int64   // valid when Kind == Int
	Float float64 // valid when Kind == Float
}

// StringLit is a string literal with escapes decoded.
type StringLit struct {
	BaseExpr
	Value string
}

func (*ThisExpr) memberTargetNode()  {}
func (*Ident) memberTargetNode()     {}
func (*ArrayLit) memberTargetNode()  {}
func (*ParenExpr) memberTargetNode() {}
func (*NullLit) memberTargetNode()   {}
func (*BoolLit) memberTargetNode()   {}
func (*NumberLit) memberTargetNode() {}
func (*StringLit) memberTargetNode() {}

func (*ThisExpr) primaryNode()  {}
func (*Ident) primaryNode()     {}
func (*ArrayLit) primaryNode()  {}
func (*ParenExpr) primaryNode() {}
func (*NullLit) primaryNode()   {}
func (*BoolLit) primaryNode()   {}
func (*NumberLit) primaryNode() {}
func (*StringLit) primaryNode() {}

func (*NullLit) literalNode()   {}
func (*BoolLit) literalNode()   {}
func (*NumberLit) literalNode() {}
func (*StringLit) literalNode() {}

// FunctionExpr is function Name(Params) { Body }. Name may be empty.
type FunctionExpr struct {
	BaseExpr
	Name   string
	Params []string
	Body   []SourceElement
}

func (*FunctionExpr) memberTargetNode()  {}
func (*Instantiation) memberTargetNode() {}

// Compile-time interface checks.
var (
	_ Expr = (*SequenceExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*CondExpr)(nil)
	_ Expr = (*LogicalOrExpr)(nil)
	_ Expr = (*LogicalAndExpr)(nil)
	_ Expr = (*BitOrExpr)(nil)
	_ Expr = (*BitXorExpr)(nil)
	_ Expr = (*BitAndExpr)(nil)
	_ Expr = (*EqualityExpr)(nil)
	_ Expr = (*RelationalExpr)(nil)
	_ Expr = (*ShiftExpr)(nil)
	_ Expr = (*AdditiveExpr)(nil)
	_ Expr = (*MultiplicativeExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*PostfixExpr)(nil)

	_ LHSExpr      = (*CallExpr)(nil)
	_ LHSExpr      = (*NewExpr)(nil)
	_ MemberExpr   = (*MemberAccess)(nil)
	_ MemberExpr   = (*Instantiation)(nil)
	_ Modifier     = (*Arguments)(nil)
	_ Modifier     = (*Index)(nil)
	_ Modifier     = (*Property)(nil)
	_ MemberTarget = (*FunctionExpr)(nil)
	_ MemberTarget = (*Instantiation)(nil)

	_ PrimaryExpr = (*ThisExpr)(nil)
	_ PrimaryExpr = (*Ident)(nil)
	_ PrimaryExpr = (*ArrayLit)(nil)
	_ PrimaryExpr = (*ParenExpr)(nil)
	_ Literal     = (*NullLit)(nil)
	_ Literal     = (*BoolLit)(nil)
	_ Literal     = (*NumberLit)(nil)
	_ Literal     = (*StringLit)(nil)
)
