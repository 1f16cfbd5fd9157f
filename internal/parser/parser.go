package parser

import (
	"fmt"
	"strconv"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/buffer"

	"github.com/fabiokung/kunjs/internal/ast"
	"github.com/fabiokung/kunjs/internal/lexer"
	"github.com/fabiokung/kunjs/internal/token"
)

// Parser holds the state of one parse. It is not safe for concurrent use;
// every Parse call builds its own.
//
// Productions return ok == false when they do not match. A failing
// production may leave the cursor anywhere: whoever tries alternatives (or
// an optional part) saves the cursor with mark and restores it with reset.
// Every mandatory token that is missing is recorded with fail, and the
// farthest such offset becomes the error position.
type Parser struct {
	s    *lexer.Scanner
	src  []byte
	file *token.File

	failOff  int
	expected []string

	// noIn disables the in operator in the initialization of a for loop.
	noIn bool

	statements []func() (ast.Stmt, bool)
}

// Parse parses a complete program.
func Parse(src string) (*ast.Program, error) {
	return ParseFile("", []byte(src))
}

// ParseFile parses a complete program. The filename is used in positions.
// The whole input must be consumed; trailing input that no production
// accepts is an error.
func ParseFile(filename string, src []byte) (*ast.Program, error) {
	p := newParser(filename, src)
	defer p.s.Release()

	prog := &ast.Program{Filename: filename}
	start := p.start()
	for !p.s.AtEOF() {
		stop := p.s.Offset()
		el, ok := p.sourceElement()
		if !ok {
			return nil, p.error(stop)
		}
		prog.Elements = append(prog.Elements, el)
	}
	prog.Span = ast.MakeSpan(start, p.end())
	return prog, nil
}

// ParsePrefix parses source elements for as long as they match and returns
// the program built so far together with the unparsed rest of src. ok is
// true only when nothing but trivia remains.
func ParsePrefix(src string) (prog *ast.Program, remaining string, ok bool) {
	p := newParser("", []byte(src))
	defer p.s.Release()

	prog = &ast.Program{}
	start := p.start()
	for !p.s.AtEOF() {
		stop := p.s.Offset()
		el, ok := p.sourceElement()
		if !ok {
			p.reset(stop)
			prog.Span = ast.MakeSpan(start, p.end())
			return prog, p.s.Remaining(stop), false
		}
		prog.Elements = append(prog.Elements, el)
	}
	prog.Span = ast.MakeSpan(start, p.end())
	return prog, "", true
}

// ParseExpr parses a single comma expression that spans the whole input.
func ParseExpr(src string) (*ast.SequenceExpr, error) {
	p := newParser("", []byte(src))
	defer p.s.Release()

	x, ok := p.expression()
	if !ok {
		return nil, p.error(0)
	}
	if !p.s.AtEOF() {
		stop := p.s.Offset()
		p.fail("end of input")
		return nil, p.error(stop)
	}
	return x, nil
}

func newParser(filename string, src []byte) *Parser {
	s := lexer.New(filename, src)
	p := &Parser{
		s:       s,
		src:     src,
		file:    s.File(),
		failOff: -1,
	}
	// Ordered: the first alternative that matches wins.
	p.statements = []func() (ast.Stmt, bool){
		p.exprStmt,
		p.varStmt,
		p.emptyStmt,
		p.ifStmt,
		p.doWhileStmt,
		p.whileStmt,
		p.forStmt,
		p.continueStmt,
		p.breakStmt,
		p.returnStmt,
		p.withStmt,
		p.labeledStmt,
		p.switchStmt,
		p.throwStmt,
		p.tryStmt,
		p.debuggerStmt,
		p.blockStmt,
	}
	return p
}

// withIn sets whether the in operator is allowed and returns a func that
// restores the previous setting.
func (p *Parser) withIn(allowed bool) func() {
	saved := p.noIn
	p.noIn = !allowed
	return func() { p.noIn = saved }
}

func (p *Parser) mark() int {
	return p.s.Offset()
}

func (p *Parser) reset(m int) {
	p.s.Reset(m)
}

// start skips trivia and returns the position of the next token.
func (p *Parser) start() token.Position {
	return p.file.Position(p.s.Skip())
}

// end returns the position right after the last consumed token.
func (p *Parser) end() token.Position {
	return p.file.Position(p.s.Offset())
}

func (p *Parser) span(start token.Position) ast.Span {
	return ast.MakeSpan(start, p.end())
}

// fail records that what was expected at the next token.
func (p *Parser) fail(what string) {
	m := p.mark()
	off := p.s.Skip()
	p.reset(m)
	switch {
	case off > p.failOff:
		p.failOff = off
		p.expected = append(p.expected[:0], what)
	case off == p.failOff:
		for _, e := range p.expected {
			if e == what {
				return
			}
		}
		p.expected = append(p.expected, what)
	}
}

// punct matches a mandatory punctuator.
func (p *Parser) punct(t token.Token) bool {
	if p.s.Punct(t) {
		return true
	}
	p.fail(strconv.Quote(t.String()))
	return false
}

// keyword matches a mandatory keyword.
func (p *Parser) keyword(t token.Token) bool {
	if p.s.Keyword(t) {
		return true
	}
	p.fail(strconv.Quote(t.String()))
	return false
}

// ident matches a mandatory identifier.
func (p *Parser) ident() (string, bool) {
	if name, ok := p.s.Identifier(); ok {
		return name, true
	}
	p.fail("identifier")
	return "", false
}

func (p *Parser) error(stop int) *ParseError {
	off := p.failOff
	if off < 0 {
		off = stop
	}
	expected := append([]string(nil), p.expected...)
	got := found(p.src, off)
	msg := fmt.Sprintf("expected %s, found %q", Describe(expected), got)
	if got == "EOF" {
		msg = fmt.Sprintf("expected %s, found EOF", Describe(expected))
	}
	perr := parse.NewError(buffer.NewReader(p.src), off, "%s", msg)
	return &ParseError{
		Pos:       p.file.Position(off),
		Expected:  expected,
		Found:     got,
		Remaining: p.s.Remaining(stop),
		Context:   perr.Context,
		Message:   msg,
	}
}

// sourceElement = functionDeclaration | statement
func (p *Parser) sourceElement() (ast.SourceElement, bool) {
	m := p.mark()
	if fn, ok := p.functionDecl(); ok {
		return fn, true
	}
	p.reset(m)
	return p.statement()
}

func (p *Parser) functionDecl() (*ast.FuncDecl, bool) {
	start := p.start()
	if !p.s.Keyword(token.FUNCTION) {
		return nil, false
	}
	name, ok := p.ident()
	if !ok {
		return nil, false
	}
	params, ok := p.params()
	if !ok {
		return nil, false
	}
	body, ok := p.functionBody()
	if !ok {
		return nil, false
	}
	return &ast.FuncDecl{Span: p.span(start), Name: name, Params: params, Body: body}, true
}

// params = "(" [identifier {"," identifier}] ")"
func (p *Parser) params() ([]string, bool) {
	if !p.punct(token.LPAREN) {
		return nil, false
	}
	var names []string
	if p.s.Punct(token.RPAREN) {
		return names, true
	}
	for {
		name, ok := p.ident()
		if !ok {
			return nil, false
		}
		names = append(names, name)
		if p.s.Punct(token.COMMA) {
			continue
		}
		if !p.punct(token.RPAREN) {
			return nil, false
		}
		return names, true
	}
}

// functionBody = "{" {sourceElement} "}"
func (p *Parser) functionBody() ([]ast.SourceElement, bool) {
	defer p.withIn(true)()
	if !p.punct(token.LBRACE) {
		return nil, false
	}
	var body []ast.SourceElement
	for {
		if p.punct(token.RBRACE) {
			return body, true
		}
		el, ok := p.sourceElement()
		if !ok {
			return nil, false
		}
		body = append(body, el)
	}
}
