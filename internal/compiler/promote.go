package compiler

import (
	"github.com/fabiokung/kunjs/internal/ast"
	"github.com/fabiokung/kunjs/internal/ir"
	"github.com/fabiokung/kunjs/internal/token"
)

// Numeric promotion: when either operand of an arithmetic or comparison
// operator is a double, both are converted to double (integers through
// sitofp) and the floating form of the operation is emitted. Two integers
// use the integer form.
//
//	1 + 2       add i64 1, i64 2
//	1 + 2.5     sitofp i64 1; fadd double 1.0, double 2.5
//	5.0 / 2     sitofp i64 2; fdiv double 5.0, double 2.0

// promote reports whether x and y need the floating form and converts them
// if so. Both must be numeric.
func (c *Compiler) promote(x, y ir.Value) (ir.Value, ir.Value, bool) {
	if x.Kind() != ir.KindFloat && y.Kind() != ir.KindFloat {
		return x, y, false
	}
	return c.toFloat(x), c.toFloat(y), true
}

func (c *Compiler) toFloat(v ir.Value) ir.Value {
	if v.Kind() == ir.KindInt {
		return c.b.CreateSIToFP(v)
	}
	return v
}

// arithOps holds the integer and floating builder for each arithmetic
// operator.
var arithOps = map[token.Token]struct {
	integer, floating func(*ir.Builder, ir.Value, ir.Value) ir.Value
}{
	token.ADD: {(*ir.Builder).CreateAdd, (*ir.Builder).CreateFAdd},
	token.SUB: {(*ir.Builder).CreateSub, (*ir.Builder).CreateFSub},
	token.MUL: {(*ir.Builder).CreateMul, (*ir.Builder).CreateFMul},
	token.DIV: {(*ir.Builder).CreateSDiv, (*ir.Builder).CreateFDiv},
	token.MOD: {(*ir.Builder).CreateSRem, (*ir.Builder).CreateFRem},
}

func (c *Compiler) arith(op token.Token, n ast.Node, x, y ir.Value) ir.Value {
	if !x.IsNumeric() || !y.IsNumeric() {
		return c.propagate(op.String(), n, x, y)
	}
	create := arithOps[op]
	x, y, float := c.promote(x, y)
	var v ir.Value
	if float {
		v = create.floating(c.b, x, y)
	} else {
		v = create.integer(c.b, x, y)
	}
	if v.IsUnsupported() {
		return c.unsupported(v.Construct(), n)
	}
	return v
}

// shift converts both operands to 32-bit integers first. The count is
// masked to five bits by the builder.
func (c *Compiler) shift(op token.Token, n ast.Node, x, y ir.Value) ir.Value {
	if !x.IsNumeric() || !y.IsNumeric() {
		return c.propagate(op.String(), n, x, y)
	}
	x, y = c.b.CreateToInt32(x), c.b.CreateToInt32(y)
	switch op {
	case token.SHL:
		return c.b.CreateShl(x, y)
	case token.SAR:
		return c.b.CreateAShr(x, y)
	default:
		return c.b.CreateLShr(x, y)
	}
}

func (c *Compiler) bitwise(op token.Token, n ast.Node, x, y ir.Value) ir.Value {
	if !x.IsNumeric() || !y.IsNumeric() {
		return c.propagate(op.String(), n, x, y)
	}
	x, y = c.b.CreateToInt32(x), c.b.CreateToInt32(y)
	switch op {
	case token.AND:
		return c.b.CreateAnd(x, y)
	case token.OR:
		return c.b.CreateOr(x, y)
	default:
		return c.b.CreateXor(x, y)
	}
}

var predicates = map[token.Token]ir.Pred{
	token.LT:        ir.LT,
	token.GT:        ir.GT,
	token.LE:        ir.LE,
	token.GE:        ir.GE,
	token.EQ:        ir.EQ,
	token.STRICT_EQ: ir.EQ,
	token.NE:        ir.NE,
	token.STRICT_NE: ir.NE,
}

// compare emits icmp or fcmp on two numeric operands after promotion.
func (c *Compiler) compare(op token.Token, x, y ir.Value) ir.Value {
	x, y, float := c.promote(x, y)
	if float {
		return c.b.CreateFCmp(predicates[op], x, y)
	}
	return c.b.CreateICmp(predicates[op], x, y)
}

func (c *Compiler) relational(op token.Token, n ast.Node, x, y ir.Value) ir.Value {
	if !x.IsNumeric() || !y.IsNumeric() {
		return c.propagate(op.String(), n, x, y)
	}
	return c.compare(op, x, y)
}

// equality compares numbers after promotion and strings, booleans and nulls
// by value. Strict equality between different kinds is false; loose
// equality between them would need coercion and is not lowered.
func (c *Compiler) equality(op token.Token, n ast.Node, x, y ir.Value) ir.Value {
	if !x.IsConst() || !y.IsConst() {
		return c.propagate(op.String(), n, x, y)
	}
	negate := op == token.NE || op == token.STRICT_NE
	switch {
	case x.IsNumeric() && y.IsNumeric():
		return c.compare(op, x, y)
	case x.Kind() == ir.KindBool && y.Kind() == ir.KindBool:
		return c.b.CreateICmp(predicates[op], x, y)
	case x.Kind() != y.Kind():
		if op == token.STRICT_EQ || op == token.STRICT_NE {
			return ir.ConstBool(negate)
		}
		return c.unsupported("coercing "+op.String(), n)
	}
	// Two strings or two nulls.
	return ir.ConstBool((x.Str() == y.Str()) != negate)
}
