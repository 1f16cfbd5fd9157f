package ast

// BlockStmt is { List }.
type BlockStmt struct {
	BaseStmt
	List []Stmt
}

// VarStmt is var a = 1, b;.
type VarStmt struct {
	BaseStmt
	List []*VarDecl
}

// VarDecl is one declared name with an optional initializer.
type VarDecl struct {
	Span
	Name string
	Init *AssignExpr // nil if absent
}

// EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	BaseStmt
}

// ExprStmt is an expression followed by a semicolon.
type ExprStmt struct {
	BaseStmt
	X *SequenceExpr
}

// IfStmt is if (Cond) Then else Else. Else is nil if absent.
type IfStmt struct {
	BaseStmt
	Cond *SequenceExpr
	Then Stmt
	Else Stmt
}

// DoWhileStmt is do Body while (Cond);.
type DoWhileStmt struct {
	BaseStmt
	Body Stmt
	Cond *SequenceExpr
}

// WhileStmt is while (Cond) Body.
type WhileStmt struct {
	BaseStmt
	Cond *SequenceExpr
	Body Stmt
}

// ForStmt is for (Init; Cond; Post) Body. Each clause may be nil.
type ForStmt struct {
	BaseStmt
	Init *SequenceExpr
	Cond *SequenceExpr
	Post *SequenceExpr
	Body Stmt
}

// ForVarStmt is for (var Decls; Cond; Post) Body.
type ForVarStmt struct {
	BaseStmt
	Decls []*VarDecl
	Cond  *SequenceExpr
	Post  *SequenceExpr
	Body  Stmt
}

// ForInStmt is for (Target in Object) Body.
type ForInStmt struct {
	BaseStmt
	Target LHSExpr
	Object *SequenceExpr
	Body   Stmt
}

// ForInVarStmt is for (var Decl in Object) Body.
type ForInVarStmt struct {
	BaseStmt
	Decl   *VarDecl
	Object *SequenceExpr
	Body   Stmt
}

// ContinueStmt is continue Label;. Label may be empty.
type ContinueStmt struct {
	BaseStmt
	Label string
}

// BreakStmt is break Label;. Label may be empty.
type BreakStmt struct {
	BaseStmt
	Label string
}

// ReturnStmt is return Value;. Value is nil if absent.
type ReturnStmt struct {
	BaseStmt
	Value *SequenceExpr
}

// WithStmt is with (Object) Body.
type WithStmt struct {
	BaseStmt
	Object *SequenceExpr
	Body   Stmt
}

// LabeledStmt is Label: Body.
type LabeledStmt struct {
	BaseStmt
	Label string
	Body  Stmt
}

// SwitchStmt is switch (Tag) { Cases Default Trailing }. The default
// clause need not be last, so the cases after it are kept apart.
type SwitchStmt struct {
	BaseStmt
	Tag      *SequenceExpr
	Cases    []*CaseClause
	Default  *DefaultClause // nil if absent
	Trailing []*CaseClause
}

// CaseClause is case Match: Body.
type CaseClause struct {
	Span
	Match *SequenceExpr
	Body  []Stmt
}

// DefaultClause is default: Body.
type DefaultClause struct {
	Span
	Body []Stmt
}

// ThrowStmt is throw X;.
type ThrowStmt struct {
	BaseStmt
	X *SequenceExpr
}

// TryStmt is try Body catch (Param) {...} finally {...}. At least one of
// Catch and Finally is present.
type TryStmt struct {
	BaseStmt
	Body    *BlockStmt
	Catch   *CatchClause
	Finally *BlockStmt
}

// CatchClause is catch (Param) Body.
type CatchClause struct {
	Span
	Param string
	Body  *BlockStmt
}

// DebuggerStmt is debugger;.
type DebuggerStmt struct {
	BaseStmt
}

var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*VarStmt)(nil)
	_ Stmt = (*EmptyStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*DoWhileStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*ForVarStmt)(nil)
	_ Stmt = (*ForInStmt)(nil)
	_ Stmt = (*ForInVarStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*WithStmt)(nil)
	_ Stmt = (*LabeledStmt)(nil)
	_ Stmt = (*SwitchStmt)(nil)
	_ Stmt = (*ThrowStmt)(nil)
	_ Stmt = (*TryStmt)(nil)
	_ Stmt = (*DebuggerStmt)(nil)

	_ Node = (*VarDecl)(nil)
	_ Node = (*CaseClause)(nil)
	_ Node = (*DefaultClause)(nil)
	_ Node = (*CatchClause)(nil)
)
