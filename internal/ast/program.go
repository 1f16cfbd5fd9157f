package ast

// Program is a parsed source text: an ordered list of source elements.
type Program struct {
	Span

	// Source file name, if any.
	Filename string

	Elements []SourceElement
}

// FuncDecl is function Name(Params) { Body }.
type FuncDecl struct {
	Span
	Name   string
	Params []string
	Body   []SourceElement
}

func (*FuncDecl) sourceElementNode() {}

var (
	_ Node          = (*Program)(nil)
	_ SourceElement = (*FuncDecl)(nil)
)
