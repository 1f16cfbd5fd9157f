package parser

import (
	"github.com/fabiokung/kunjs/internal/ast"
	"github.com/fabiokung/kunjs/internal/token"
)

var assignOps = []token.Token{
	token.ASSIGN, token.ADD_ASSIGN, token.SUB_ASSIGN, token.MUL_ASSIGN,
	token.DIV_ASSIGN, token.MOD_ASSIGN, token.SHL_ASSIGN, token.SAR_ASSIGN,
	token.SHR_ASSIGN, token.AND_ASSIGN, token.OR_ASSIGN, token.XOR_ASSIGN,
}

func (p *Parser) baseExpr(start token.Position) ast.BaseExpr {
	return ast.BaseExpr{Span: p.span(start)}
}

// expression = assignmentExpression {"," assignmentExpression}
func (p *Parser) expression() (*ast.SequenceExpr, bool) {
	start := p.start()
	var list []*ast.AssignExpr
	for {
		x, ok := p.assignExpr()
		if !ok {
			return nil, false
		}
		list = append(list, x)
		m := p.mark()
		if !p.s.Punct(token.COMMA) {
			p.reset(m)
			break
		}
	}
	return &ast.SequenceExpr{BaseExpr: p.baseExpr(start), List: list}, true
}

// assignmentExpression = {lhsExpression assignOp} conditionalExpression
//
// The conditional is parsed first. When it turns out to be a bare LHS
// expression followed by an assignment operator it becomes a target and
// parsing continues, so no input is ever parsed twice.
func (p *Parser) assignExpr() (*ast.AssignExpr, bool) {
	start := p.start()
	var targets []ast.AssignTarget
	for {
		c, ok := p.condExpr()
		if !ok {
			return nil, false
		}
		if lhs := bareLHS(c); lhs != nil {
			if op := p.s.PunctIn(assignOps...); op != token.ILLEGAL {
				targets = append(targets, ast.AssignTarget{Target: lhs, Op: op})
				continue
			}
		}
		return &ast.AssignExpr{BaseExpr: p.baseExpr(start), Targets: targets, Value: c}, true
	}
}

// bareLHS returns the LHS expression c consists of, or nil if any level
// above it carries an operator.
func bareLHS(c *ast.CondExpr) ast.LHSExpr {
	if c.Then != nil {
		return nil
	}
	or := c.Test
	if len(or.Ops) > 0 {
		return nil
	}
	and := or.Head
	if len(and.Ops) > 0 {
		return nil
	}
	bor := and.Head
	if len(bor.Ops) > 0 {
		return nil
	}
	xor := bor.Head
	if len(xor.Ops) > 0 {
		return nil
	}
	band := xor.Head
	if len(band.Ops) > 0 {
		return nil
	}
	eq := band.Head
	if len(eq.Ops) > 0 {
		return nil
	}
	rel := eq.Head
	if len(rel.Ops) > 0 {
		return nil
	}
	shift := rel.Head
	if len(shift.Ops) > 0 {
		return nil
	}
	add := shift.Head
	if len(add.Ops) > 0 {
		return nil
	}
	mul := add.Head
	if len(mul.Ops) > 0 {
		return nil
	}
	un := mul.Head
	if len(un.Ops) > 0 || un.Operand.Op != token.ILLEGAL {
		return nil
	}
	return un.Operand.Operand
}

// conditionalExpression = logicalOrExpression ["?" assignmentExpression ":" assignmentExpression]
func (p *Parser) condExpr() (*ast.CondExpr, bool) {
	start := p.start()
	test, ok := p.logicalOr()
	if !ok {
		return nil, false
	}
	c := &ast.CondExpr{Test: test}
	if p.s.Punct(token.QUESTION) {
		restore := p.withIn(true)
		c.Then, ok = p.assignExpr()
		restore()
		if !ok {
			return nil, false
		}
		if !p.punct(token.COLON) {
			return nil, false
		}
		if c.Else, ok = p.assignExpr(); !ok {
			return nil, false
		}
	}
	c.BaseExpr = p.baseExpr(start)
	return c, true
}

// binary parses operand {op operand} for one left-associative level. An
// operator whose right operand does not parse is left unconsumed.
func binary[T ast.Expr](p *Parser, operand func() (T, bool), op func() token.Token) (T, []ast.Operation[T], bool) {
	head, ok := operand()
	if !ok {
		return head, nil, false
	}
	var ops []ast.Operation[T]
	for {
		m := p.mark()
		pos := p.start()
		t := op()
		if t == token.ILLEGAL {
			p.reset(m)
			return head, ops, true
		}
		rhs, ok := operand()
		if !ok {
			p.reset(m)
			return head, ops, true
		}
		ops = append(ops, ast.Operation[T]{Op: t, OpPos: pos, Operand: rhs})
	}
}

func (p *Parser) puncts(ts ...token.Token) func() token.Token {
	return func() token.Token { return p.s.PunctIn(ts...) }
}

func (p *Parser) logicalOr() (*ast.LogicalOrExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.logicalAnd, p.puncts(token.LOR))
	if !ok {
		return nil, false
	}
	return &ast.LogicalOrExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) logicalAnd() (*ast.LogicalAndExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.bitOr, p.puncts(token.LAND))
	if !ok {
		return nil, false
	}
	return &ast.LogicalAndExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) bitOr() (*ast.BitOrExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.bitXor, p.puncts(token.OR))
	if !ok {
		return nil, false
	}
	return &ast.BitOrExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) bitXor() (*ast.BitXorExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.bitAnd, p.puncts(token.XOR))
	if !ok {
		return nil, false
	}
	return &ast.BitXorExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) bitAnd() (*ast.BitAndExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.equality, p.puncts(token.AND))
	if !ok {
		return nil, false
	}
	return &ast.BitAndExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) equality() (*ast.EqualityExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.relational, p.puncts(token.STRICT_EQ, token.STRICT_NE, token.EQ, token.NE))
	if !ok {
		return nil, false
	}
	return &ast.EqualityExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) relationalOp() token.Token {
	if t := p.s.PunctIn(token.LE, token.GE, token.LT, token.GT); t != token.ILLEGAL {
		return t
	}
	if p.noIn {
		return p.s.KeywordIn(token.INSTANCEOF)
	}
	return p.s.KeywordIn(token.INSTANCEOF, token.IN)
}

func (p *Parser) relational() (*ast.RelationalExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.shift, p.relationalOp)
	if !ok {
		return nil, false
	}
	return &ast.RelationalExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) shift() (*ast.ShiftExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.additive, p.puncts(token.SHR, token.SAR, token.SHL))
	if !ok {
		return nil, false
	}
	return &ast.ShiftExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) additive() (*ast.AdditiveExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.multiplicative, p.puncts(token.ADD, token.SUB))
	if !ok {
		return nil, false
	}
	return &ast.AdditiveExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

func (p *Parser) multiplicative() (*ast.MultiplicativeExpr, bool) {
	start := p.start()
	head, ops, ok := binary(p, p.unary, p.puncts(token.MUL, token.DIV, token.MOD))
	if !ok {
		return nil, false
	}
	return &ast.MultiplicativeExpr{BaseExpr: p.baseExpr(start), Head: head, Ops: ops}, true
}

// unaryExpression = {unaryOp} postfixExpression
func (p *Parser) unary() (*ast.UnaryExpr, bool) {
	start := p.start()
	var ops []token.Token
	for {
		op := p.s.KeywordIn(token.DELETE, token.VOID, token.TYPEOF)
		if op == token.ILLEGAL {
			op = p.s.PunctIn(token.INC, token.DEC, token.ADD, token.SUB, token.BITNOT, token.NOT)
		}
		if op == token.ILLEGAL {
			break
		}
		ops = append(ops, op)
	}
	operand, ok := p.postfix()
	if !ok {
		return nil, false
	}
	return &ast.UnaryExpr{BaseExpr: p.baseExpr(start), Ops: ops, Operand: operand}, true
}

// postfixExpression = lhsExpression [no LineTerminator here] ["++" | "--"]
func (p *Parser) postfix() (*ast.PostfixExpr, bool) {
	start := p.start()
	operand, ok := p.lhs()
	if !ok {
		return nil, false
	}
	x := &ast.PostfixExpr{Operand: operand, Op: token.ILLEGAL}
	if !p.s.LineTerminatorAhead() {
		x.Op = p.s.PunctIn(token.INC, token.DEC)
	}
	x.BaseExpr = p.baseExpr(start)
	return x, true
}

// lhsExpression = callExpression | newExpression
// callExpression = memberExpression arguments {arguments | index | property}
// newExpression = {"new"} memberExpression
//
// The leading "new"s are consumed once, then one member expression. Argument
// lists that follow pair up with the "new"s innermost first, each making an
// Instantiation. "new"s left without arguments make a NewExpr; an argument
// list left once every "new" is paired starts a call.
func (p *Parser) lhs() (ast.LHSExpr, bool) {
	start := p.start()
	var news []token.Position
	for {
		pos := p.start()
		if !p.s.Keyword(token.NEW) {
			break
		}
		news = append(news, pos)
	}
	base, ok := p.member()
	if !ok {
		return nil, false
	}
	var target ast.MemberExpr = base
	for len(news) > 0 {
		args, ok := p.optArguments()
		if !ok {
			break
		}
		from := news[len(news)-1]
		news = news[:len(news)-1]
		inst := &ast.Instantiation{BaseExpr: p.baseExpr(from), Target: target, Args: args}
		target = inst
		if mods := p.modifiers(false); len(mods) > 0 {
			target = &ast.MemberAccess{BaseExpr: p.baseExpr(from), Target: inst, Modifiers: mods}
		}
	}
	if len(news) == 0 {
		if args, ok := p.optArguments(); ok {
			call := &ast.CallExpr{Callee: target, Args: args}
			call.Modifiers = p.modifiers(true)
			call.BaseExpr = p.baseExpr(start)
			return call, true
		}
	}
	return &ast.NewExpr{BaseExpr: p.baseExpr(start), News: len(news), Target: target}, true
}

// memberExpression = (primaryExpression | functionExpression) {index | property}
//
// "new" memberExpression arguments is built by lhs.
func (p *Parser) member() (*ast.MemberAccess, bool) {
	start := p.start()
	var target ast.MemberTarget
	m := p.mark()
	if fn, ok := p.functionExpr(); ok {
		target = fn
	} else {
		p.reset(m)
		prim, ok := p.primary()
		if !ok {
			return nil, false
		}
		target = prim
	}
	mods := p.modifiers(false)
	return &ast.MemberAccess{BaseExpr: p.baseExpr(start), Target: target, Modifiers: mods}, true
}

// modifiers parses trailing index and property accesses, and calls when
// calls is set. It stops before the first one that does not parse.
func (p *Parser) modifiers(calls bool) []ast.Modifier {
	var mods []ast.Modifier
	for {
		m := p.mark()
		if calls {
			if args, ok := p.arguments(); ok {
				mods = append(mods, args)
				continue
			}
			p.reset(m)
		}
		if idx, ok := p.index(); ok {
			mods = append(mods, idx)
			continue
		}
		p.reset(m)
		if prop, ok := p.property(); ok {
			mods = append(mods, prop)
			continue
		}
		p.reset(m)
		return mods
	}
}

// arguments = "(" [assignmentExpression {"," assignmentExpression}] ")"
func (p *Parser) arguments() (*ast.Arguments, bool) {
	start := p.start()
	m := p.mark()
	if !p.s.Punct(token.LPAREN) {
		p.reset(m)
		return nil, false
	}
	defer p.withIn(true)()
	args := &ast.Arguments{}
	if !p.s.Punct(token.RPAREN) {
		for {
			x, ok := p.assignExpr()
			if !ok {
				return nil, false
			}
			args.List = append(args.List, x)
			if p.s.Punct(token.COMMA) {
				continue
			}
			if !p.punct(token.RPAREN) {
				return nil, false
			}
			break
		}
	}
	args.Span = p.span(start)
	return args, true
}

// optArguments parses an argument list if one follows and leaves the cursor
// in place otherwise.
func (p *Parser) optArguments() (*ast.Arguments, bool) {
	m := p.mark()
	args, ok := p.arguments()
	if !ok {
		p.reset(m)
	}
	return args, ok
}

// index = "[" expression "]"
func (p *Parser) index() (*ast.Index, bool) {
	start := p.start()
	if !p.s.Punct(token.LBRACKET) {
		return nil, false
	}
	defer p.withIn(true)()
	x, ok := p.expression()
	if !ok || !p.punct(token.RBRACKET) {
		return nil, false
	}
	return &ast.Index{Span: p.span(start), Index: x}, true
}

// property = "." identifierName
func (p *Parser) property() (*ast.Property, bool) {
	start := p.start()
	if !p.s.Punct(token.DOT) {
		return nil, false
	}
	name, ok := p.s.IdentifierName()
	if !ok {
		p.fail("property name")
		return nil, false
	}
	return &ast.Property{Span: p.span(start), Name: name}, true
}

// functionExpression = "function" [identifier] params functionBody
func (p *Parser) functionExpr() (*ast.FunctionExpr, bool) {
	start := p.start()
	if !p.s.Keyword(token.FUNCTION) {
		return nil, false
	}
	fn := &ast.FunctionExpr{}
	fn.Name, _ = p.s.Identifier()
	var ok bool
	if fn.Params, ok = p.params(); !ok {
		return nil, false
	}
	if fn.Body, ok = p.functionBody(); !ok {
		return nil, false
	}
	fn.BaseExpr = p.baseExpr(start)
	return fn, true
}

// primaryExpression = "this" | identifier | literal | arrayLiteral | "(" expression ")"
func (p *Parser) primary() (ast.PrimaryExpr, bool) {
	start := p.start()
	if p.s.Keyword(token.THIS) {
		return &ast.ThisExpr{BaseExpr: p.baseExpr(start)}, true
	}
	if name, ok := p.s.Identifier(); ok {
		return &ast.Ident{BaseExpr: p.baseExpr(start), Name: name}, true
	}
	if lit, ok := p.literal(); ok {
		return lit, true
	}
	m := p.mark()
	if arr, ok := p.arrayLit(); ok {
		return arr, true
	}
	p.reset(m)
	if p.s.Punct(token.LPAREN) {
		restore := p.withIn(true)
		x, ok := p.expression()
		restore()
		if !ok || !p.punct(token.RPAREN) {
			return nil, false
		}
		return &ast.ParenExpr{BaseExpr: p.baseExpr(start), X: x}, true
	}
	p.fail("expression")
	return nil, false
}

// literal = "null" | "true" | "false" | numericLiteral | stringLiteral
func (p *Parser) literal() (ast.Literal, bool) {
	start := p.start()
	switch p.s.KeywordIn(token.NULL, token.TRUE, token.FALSE) {
	case token.NULL:
		return &ast.NullLit{BaseExpr: p.baseExpr(start)}, true
	case token.TRUE:
		return &ast.BoolLit{BaseExpr: p.baseExpr(start), Value: true}, true
	case token.FALSE:
		return &ast.BoolLit{BaseExpr: p.baseExpr(start), Value: false}, true
	}
	if num, ok := p.s.Number(); ok {
		lit := &ast.NumberLit{BaseExpr: p.baseExpr(start), Raw: num.Raw}
		if num.Float {
			lit.Kind = ast.Float
			lit.Float = num.Value
		} else {
			lit.Kind = ast.Int
			lit.Int = num.Int
		}
		return lit, true
	}
	if s, ok := p.s.StringLiteral(); ok {
		return &ast.StringLit{BaseExpr: p.baseExpr(start), Value: s}, true
	}
	return nil, false
}

// arrayLiteral = "[" {elision | assignmentExpression ("," | "]")} "]"
func (p *Parser) arrayLit() (*ast.ArrayLit, bool) {
	start := p.start()
	if !p.s.Punct(token.LBRACKET) {
		return nil, false
	}
	defer p.withIn(true)()
	arr := &ast.ArrayLit{}
	for {
		if p.s.Punct(token.RBRACKET) {
			break
		}
		if p.s.Punct(token.COMMA) {
			continue
		}
		x, ok := p.assignExpr()
		if !ok {
			return nil, false
		}
		arr.Elements = append(arr.Elements, x)
		if p.s.Punct(token.COMMA) {
			continue
		}
		if !p.punct(token.RBRACKET) {
			return nil, false
		}
		break
	}
	arr.BaseExpr = p.baseExpr(start)
	return arr, true
}
