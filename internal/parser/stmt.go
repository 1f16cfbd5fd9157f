package parser

import (
	"github.com/fabiokung/kunjs/internal/ast"
	"github.com/fabiokung/kunjs/internal/token"
)

// statement tries every statement form in order.
func (p *Parser) statement() (ast.Stmt, bool) {
	m := p.mark()
	for _, alt := range p.statements {
		if stmt, ok := alt(); ok {
			return stmt, true
		}
		p.reset(m)
	}
	return nil, false
}

// exprStmt = expression ";", not starting with "function"
func (p *Parser) exprStmt() (ast.Stmt, bool) {
	start := p.start()
	m := p.mark()
	if p.s.Keyword(token.FUNCTION) {
		p.reset(m)
		return nil, false
	}
	x, ok := p.expression()
	if !ok || !p.punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.ExprStmt{BaseStmt: p.baseStmt(start), X: x}, true
}

func (p *Parser) baseStmt(start token.Position) ast.BaseStmt {
	return ast.BaseStmt{Span: p.span(start)}
}

// varStmt = "var" varDeclList ";"
func (p *Parser) varStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.VAR) {
		return nil, false
	}
	list, ok := p.varDeclList()
	if !ok || !p.punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.VarStmt{BaseStmt: p.baseStmt(start), List: list}, true
}

func (p *Parser) varDeclList() ([]*ast.VarDecl, bool) {
	var list []*ast.VarDecl
	for {
		d, ok := p.varDecl()
		if !ok {
			return nil, false
		}
		list = append(list, d)
		if !p.s.Punct(token.COMMA) {
			return list, true
		}
	}
}

// varDecl = identifier ["=" assignmentExpression]
func (p *Parser) varDecl() (*ast.VarDecl, bool) {
	start := p.start()
	name, ok := p.ident()
	if !ok {
		return nil, false
	}
	d := &ast.VarDecl{Name: name}
	if p.s.Punct(token.ASSIGN) {
		if d.Init, ok = p.assignExpr(); !ok {
			return nil, false
		}
	}
	d.Span = p.span(start)
	return d, true
}

func (p *Parser) emptyStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.EmptyStmt{BaseStmt: p.baseStmt(start)}, true
}

// parenExpr = "(" expression ")"
func (p *Parser) parenExpr() (*ast.SequenceExpr, bool) {
	if !p.punct(token.LPAREN) {
		return nil, false
	}
	x, ok := p.expression()
	if !ok || !p.punct(token.RPAREN) {
		return nil, false
	}
	return x, true
}

// ifStmt = "if" "(" expression ")" statement ["else" statement]
func (p *Parser) ifStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.IF) {
		return nil, false
	}
	cond, ok := p.parenExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.statement()
	if !ok {
		return nil, false
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	m := p.mark()
	if p.s.Keyword(token.ELSE) {
		if stmt.Else, ok = p.statement(); !ok {
			p.reset(m)
		}
	}
	stmt.BaseStmt = p.baseStmt(start)
	return stmt, true
}

// doWhileStmt = "do" statement "while" "(" expression ")" ";"
func (p *Parser) doWhileStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.DO) {
		return nil, false
	}
	body, ok := p.statement()
	if !ok || !p.keyword(token.WHILE) {
		return nil, false
	}
	cond, ok := p.parenExpr()
	if !ok || !p.punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.DoWhileStmt{BaseStmt: p.baseStmt(start), Body: body, Cond: cond}, true
}

// whileStmt = "while" "(" expression ")" statement
func (p *Parser) whileStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.WHILE) {
		return nil, false
	}
	cond, ok := p.parenExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.statement()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{BaseStmt: p.baseStmt(start), Cond: cond, Body: body}, true
}

// optExpr parses an optional expression. ok is false only when an
// expression started but could not be completed.
func (p *Parser) optExpr(end token.Token) (*ast.SequenceExpr, bool) {
	m := p.mark()
	if p.s.Punct(end) {
		p.reset(m)
		return nil, true
	}
	return p.expression()
}

// loopClauses = [expression] ";" [expression] ")" statement, shared by
// both C-style loop forms after their initialization.
func (p *Parser) loopClauses() (cond, post *ast.SequenceExpr, body ast.Stmt, ok bool) {
	if cond, ok = p.optExpr(token.SEMICOLON); !ok || !p.punct(token.SEMICOLON) {
		return nil, nil, nil, false
	}
	if post, ok = p.optExpr(token.RPAREN); !ok || !p.punct(token.RPAREN) {
		return nil, nil, nil, false
	}
	if body, ok = p.statement(); !ok {
		return nil, nil, nil, false
	}
	return cond, post, body, true
}

// forStmt parses the four for loops:
//
//	"for" "(" [expressionNoIn] ";" [expression] ";" [expression] ")" statement
//	"for" "(" lhsExpression "in" expression ")" statement
//	"for" "(" "var" varDeclListNoIn ";" [expression] ";" [expression] ")" statement
//	"for" "(" "var" varDeclNoIn "in" expression ")" statement
//
// The initialization is parsed once with the in operator disabled. The token
// after it selects the form.
func (p *Parser) forStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.FOR) || !p.punct(token.LPAREN) {
		return nil, false
	}
	if p.s.Keyword(token.VAR) {
		return p.forVarStmt(start)
	}
	restore := p.withIn(false)
	init, ok := p.optExpr(token.SEMICOLON)
	restore()
	if !ok {
		return nil, false
	}
	target := forInTarget(init)
	if target != nil && p.s.Keyword(token.IN) {
		object, body, ok := p.forInRest()
		if !ok {
			return nil, false
		}
		return &ast.ForInStmt{BaseStmt: p.baseStmt(start), Target: target, Object: object, Body: body}, true
	}
	if !p.punct(token.SEMICOLON) {
		if target != nil {
			p.keyword(token.IN) // records the expectation
		}
		return nil, false
	}
	cond, post, body, ok := p.loopClauses()
	if !ok {
		return nil, false
	}
	return &ast.ForStmt{BaseStmt: p.baseStmt(start), Init: init, Cond: cond, Post: post, Body: body}, true
}

// forVarStmt continues forStmt after "for" "(" "var".
func (p *Parser) forVarStmt(start token.Position) (ast.Stmt, bool) {
	restore := p.withIn(false)
	decls, ok := p.varDeclList()
	restore()
	if !ok {
		return nil, false
	}
	if len(decls) == 1 && p.s.Keyword(token.IN) {
		object, body, ok := p.forInRest()
		if !ok {
			return nil, false
		}
		return &ast.ForInVarStmt{BaseStmt: p.baseStmt(start), Decl: decls[0], Object: object, Body: body}, true
	}
	if !p.punct(token.SEMICOLON) {
		if len(decls) == 1 {
			p.keyword(token.IN)
		}
		return nil, false
	}
	cond, post, body, ok := p.loopClauses()
	if !ok {
		return nil, false
	}
	return &ast.ForVarStmt{BaseStmt: p.baseStmt(start), Decls: decls, Cond: cond, Post: post, Body: body}, true
}

// forInRest = expression ")" statement, after the "in" of a for-in loop.
func (p *Parser) forInRest() (*ast.SequenceExpr, ast.Stmt, bool) {
	object, ok := p.expression()
	if !ok || !p.punct(token.RPAREN) {
		return nil, nil, false
	}
	body, ok := p.statement()
	if !ok {
		return nil, nil, false
	}
	return object, body, true
}

// forInTarget returns the LHS expression init consists of, or nil if init
// cannot be the target of a for-in loop.
func forInTarget(init *ast.SequenceExpr) ast.LHSExpr {
	if init == nil || len(init.List) != 1 || len(init.List[0].Targets) > 0 {
		return nil
	}
	return bareLHS(init.List[0].Value)
}

// label parses the optional identifier of continue and break. No line
// terminator may precede it.
func (p *Parser) label() string {
	if p.s.LineTerminatorAhead() {
		return ""
	}
	name, _ := p.s.Identifier()
	return name
}

// continueStmt = "continue" [no LineTerminator here] [identifier] ";"
func (p *Parser) continueStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.CONTINUE) {
		return nil, false
	}
	label := p.label()
	if !p.punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.ContinueStmt{BaseStmt: p.baseStmt(start), Label: label}, true
}

// breakStmt = "break" [no LineTerminator here] [identifier] ";"
func (p *Parser) breakStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.BREAK) {
		return nil, false
	}
	label := p.label()
	if !p.punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.BreakStmt{BaseStmt: p.baseStmt(start), Label: label}, true
}

// returnStmt = "return" [no LineTerminator here] [expression] ";"
func (p *Parser) returnStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.RETURN) {
		return nil, false
	}
	stmt := &ast.ReturnStmt{}
	if !p.s.LineTerminatorAhead() {
		m := p.mark()
		var ok bool
		if stmt.Value, ok = p.expression(); !ok {
			stmt.Value = nil
			p.reset(m)
		}
	}
	if !p.punct(token.SEMICOLON) {
		return nil, false
	}
	stmt.BaseStmt = p.baseStmt(start)
	return stmt, true
}

// withStmt = "with" "(" expression ")" statement
func (p *Parser) withStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.WITH) {
		return nil, false
	}
	object, ok := p.parenExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.statement()
	if !ok {
		return nil, false
	}
	return &ast.WithStmt{BaseStmt: p.baseStmt(start), Object: object, Body: body}, true
}

// labeledStmt = identifier ":" statement
func (p *Parser) labeledStmt() (ast.Stmt, bool) {
	start := p.start()
	label, ok := p.s.Identifier()
	if !ok || !p.punct(token.COLON) {
		return nil, false
	}
	body, ok := p.statement()
	if !ok {
		return nil, false
	}
	return &ast.LabeledStmt{BaseStmt: p.baseStmt(start), Label: label, Body: body}, true
}

// switchStmt = "switch" "(" expression ")" "{" {caseClause} [defaultClause] {caseClause} "}"
func (p *Parser) switchStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.SWITCH) {
		return nil, false
	}
	tag, ok := p.parenExpr()
	if !ok || !p.punct(token.LBRACE) {
		return nil, false
	}
	stmt := &ast.SwitchStmt{Tag: tag}
	if stmt.Cases, ok = p.caseClauses(); !ok {
		return nil, false
	}
	m := p.mark()
	if d, ok := p.defaultClause(); ok {
		stmt.Default = d
		if stmt.Trailing, ok = p.caseClauses(); !ok {
			return nil, false
		}
	} else {
		p.reset(m)
	}
	if !p.punct(token.RBRACE) {
		return nil, false
	}
	stmt.BaseStmt = p.baseStmt(start)
	return stmt, true
}

func (p *Parser) caseClauses() ([]*ast.CaseClause, bool) {
	var list []*ast.CaseClause
	for {
		start := p.start()
		if !p.s.Keyword(token.CASE) {
			return list, true
		}
		match, ok := p.expression()
		if !ok || !p.punct(token.COLON) {
			return nil, false
		}
		c := &ast.CaseClause{Match: match, Body: p.statementList()}
		c.Span = p.span(start)
		list = append(list, c)
	}
}

func (p *Parser) defaultClause() (*ast.DefaultClause, bool) {
	start := p.start()
	if !p.s.Keyword(token.DEFAULT) || !p.punct(token.COLON) {
		return nil, false
	}
	d := &ast.DefaultClause{Body: p.statementList()}
	d.Span = p.span(start)
	return d, true
}

// statementList parses statements until one does not match.
func (p *Parser) statementList() []ast.Stmt {
	var list []ast.Stmt
	for {
		m := p.mark()
		stmt, ok := p.statement()
		if !ok {
			p.reset(m)
			return list
		}
		list = append(list, stmt)
	}
}

// throwStmt = "throw" [no LineTerminator here] expression ";"
func (p *Parser) throwStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.THROW) {
		return nil, false
	}
	if p.s.LineTerminatorAhead() {
		p.fail("expression")
		return nil, false
	}
	x, ok := p.expression()
	if !ok || !p.punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.ThrowStmt{BaseStmt: p.baseStmt(start), X: x}, true
}

// tryStmt = "try" block (catch [finally] | finally)
// catch   = "catch" "(" identifier ")" block
// finally = "finally" block
func (p *Parser) tryStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.TRY) {
		return nil, false
	}
	body, ok := p.block()
	if !ok {
		return nil, false
	}
	stmt := &ast.TryStmt{Body: body}
	m := p.mark()
	cstart := p.start()
	if p.keyword(token.CATCH) {
		param, ok := p.catchParam()
		if !ok {
			return nil, false
		}
		cbody, ok := p.block()
		if !ok {
			return nil, false
		}
		stmt.Catch = &ast.CatchClause{Span: p.span(cstart), Param: param, Body: cbody}
	} else {
		p.reset(m)
	}
	m = p.mark()
	if p.keyword(token.FINALLY) {
		if stmt.Finally, ok = p.block(); !ok {
			return nil, false
		}
	} else {
		p.reset(m)
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		return nil, false
	}
	stmt.BaseStmt = p.baseStmt(start)
	return stmt, true
}

func (p *Parser) catchParam() (string, bool) {
	if !p.punct(token.LPAREN) {
		return "", false
	}
	name, ok := p.ident()
	if !ok || !p.punct(token.RPAREN) {
		return "", false
	}
	return name, true
}

// debuggerStmt = "debugger" ";"
func (p *Parser) debuggerStmt() (ast.Stmt, bool) {
	start := p.start()
	if !p.s.Keyword(token.DEBUGGER) || !p.punct(token.SEMICOLON) {
		return nil, false
	}
	return &ast.DebuggerStmt{BaseStmt: p.baseStmt(start)}, true
}

func (p *Parser) blockStmt() (ast.Stmt, bool) {
	m := p.mark()
	if !p.s.Punct(token.LBRACE) {
		return nil, false
	}
	p.reset(m)
	return p.block()
}

// block = "{" {statement} "}"
func (p *Parser) block() (*ast.BlockStmt, bool) {
	start := p.start()
	if !p.punct(token.LBRACE) {
		return nil, false
	}
	list := p.statementList()
	if !p.punct(token.RBRACE) {
		return nil, false
	}
	return &ast.BlockStmt{BaseStmt: p.baseStmt(start), List: list}, true
}
