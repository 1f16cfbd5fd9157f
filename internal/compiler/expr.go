package compiler

import (
	"github.com/fabiokung/kunjs/internal/ast"
	"github.com/fabiokung/kunjs/internal/ir"
	"github.com/fabiokung/kunjs/internal/token"
)

// Expr lowers an expression. Levels without operators lower to the value
// of the node they wrap.
func (c *Compiler) Expr(expr ast.Expr) ir.Value {
	switch n := expr.(type) {
	case *ast.SequenceExpr:
		v := ir.Void()
		for _, x := range n.List {
			v = c.Expr(x)
		}
		return v

	case *ast.AssignExpr:
		v := c.Expr(n.Value)
		if len(n.Targets) == 0 {
			return v
		}
		return c.unsupported("assignment", n)

	case *ast.CondExpr:
		test := c.Expr(n.Test)
		if n.Then == nil {
			return test
		}
		then, els := c.Expr(n.Then), c.Expr(n.Else)
		truth, ok := test.Truthy()
		switch {
		case !ok:
			return c.propagate("conditional", n, test)
		case truth:
			return then
		default:
			return els
		}

	case *ast.LogicalOrExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.LogicalAndExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.BitOrExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.BitXorExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.BitAndExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.EqualityExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.RelationalExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.ShiftExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.AdditiveExpr:
		return lowerLevel(c, n.Head, n.Ops)
	case *ast.MultiplicativeExpr:
		return lowerLevel(c, n.Head, n.Ops)

	case *ast.UnaryExpr:
		v := c.Expr(n.Operand)
		for i := len(n.Ops) - 1; i >= 0; i-- {
			v = c.unary(n, n.Ops[i], v)
		}
		return v

	case *ast.PostfixExpr:
		v := c.Expr(n.Operand)
		if n.Op == token.ILLEGAL {
			return v
		}
		return c.propagate("postfix "+n.Op.String(), n, v)

	case *ast.NewExpr:
		if n.News == 0 {
			return c.Expr(n.Target)
		}
		return c.unsupported("new", n)

	case *ast.MemberAccess:
		if len(n.Modifiers) == 0 {
			return c.Expr(n.Target)
		}
		return c.unsupported("member access", n)

	case *ast.ParenExpr:
		return c.Expr(n.X)

	case *ast.NullLit:
		return ir.Null()
	case *ast.BoolLit:
		return ir.ConstBool(n.Value)
	case *ast.NumberLit:
		if n.Kind == ast.Float {
			return ir.ConstFloat(n.Float)
		}
		return ir.ConstInt(n.Int)
	case *ast.StringLit:
		return ir.ConstString(n.Value)

	case *ast.CallExpr:
		return c.unsupported("call", n)
	case *ast.Instantiation:
		return c.unsupported("new", n)
	case *ast.ThisExpr:
		return c.unsupported("this", n)
	case *ast.Ident:
		return c.unsupported("identifier", n)
	case *ast.ArrayLit:
		return c.unsupported("array literal", n)
	case *ast.FunctionExpr:
		return c.unsupported("function expression", n)
	}
	return c.unsupported("expression", expr)
}

// lowerLevel folds one binary level from left to right.
func lowerLevel[T ast.Expr](c *Compiler, head T, ops []ast.Operation[T]) ir.Value {
	v := c.Expr(head)
	for _, op := range ops {
		v = c.binary(op.Op, op.Operand, v, c.Expr(op.Operand))
	}
	return v
}

// binary applies op to two lowered operands. n is the right operand, used
// for positions in log output.
func (c *Compiler) binary(op token.Token, n ast.Node, x, y ir.Value) ir.Value {
	switch op {
	case token.ADD, token.SUB, token.MUL, token.DIV, token.MOD:
		return c.arith(op, n, x, y)
	case token.SHL, token.SAR, token.SHR:
		return c.shift(op, n, x, y)
	case token.AND, token.OR, token.XOR:
		return c.bitwise(op, n, x, y)
	case token.LT, token.GT, token.LE, token.GE:
		return c.relational(op, n, x, y)
	case token.EQ, token.NE, token.STRICT_EQ, token.STRICT_NE:
		return c.equality(op, n, x, y)
	case token.LAND, token.LOR:
		return c.logical(op, n, x, y)
	}
	return c.unsupported(op.String(), n)
}

// propagate returns the first Unsupported operand unchanged, so the
// construct that stopped lowering stays visible, or a new Unsupported for op.
func (c *Compiler) propagate(op string, n ast.Node, operands ...ir.Value) ir.Value {
	for _, v := range operands {
		if v.IsUnsupported() {
			return v
		}
	}
	return c.unsupported(op, n)
}

// logical selects an operand by the truthiness of x. The result is the
// operand itself, not a boolean.
func (c *Compiler) logical(op token.Token, n ast.Node, x, y ir.Value) ir.Value {
	truth, ok := x.Truthy()
	if !ok || !y.IsConst() {
		return c.propagate(op.String(), n, x, y)
	}
	if truth == (op == token.LOR) {
		return x
	}
	return y
}

func (c *Compiler) unary(n *ast.UnaryExpr, op token.Token, v ir.Value) ir.Value {
	switch op {
	case token.ADD:
		if v.IsNumeric() {
			return v
		}
	case token.SUB:
		switch v.Kind() {
		case ir.KindInt:
			return c.b.CreateNeg(v)
		case ir.KindFloat:
			return c.b.CreateFNeg(v)
		}
	case token.NOT:
		if truth, ok := v.Truthy(); ok {
			return c.b.CreateNot(ir.ConstBool(truth))
		}
	case token.BITNOT:
		if v.IsNumeric() {
			return c.b.CreateXor(c.b.CreateToInt32(v), ir.ConstInt(-1))
		}
	case token.TYPEOF:
		if s, ok := v.TypeOf(); ok {
			return ir.ConstString(s)
		}
	}
	return c.propagate(op.String(), n, v)
}
