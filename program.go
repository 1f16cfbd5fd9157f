package kunjs

import (
	"io"
	"sort"
	"strings"

	"github.com/fabiokung/kunjs/internal/ast"
)

// Program is a parsed program. It is immutable; compiling it does not
// change it and it may be compiled any number of times, also concurrently.
type Program struct {
	tree   *ast.Program
	source string
	config *Config
}

// Compile lowers the program and returns the value of its last source
// element.
func (p *Program) Compile() Value {
	v, _ := CompileProgram(p)
	return v
}

// Dump returns the program as an indented S-expression tree with every line
// prefixed by indent spaces.
func (p *Program) Dump(indent int) string {
	if indent == 0 {
		return ast.Dump(p.tree)
	}
	var sb strings.Builder
	_ = p.Print(&sb, indent)
	return sb.String()
}

// Print writes the S-expression tree of the program to w.
func (p *Program) Print(w io.Writer, indent int) error {
	return ast.NewPrinter(w, indent).Print(p.tree)
}

// Format returns the program as normalized source text. Parsing the result
// gives a program with the same tree.
func (p *Program) Format() string {
	return ast.Format(p.tree)
}

// Len returns the number of top-level source elements.
func (p *Program) Len() int {
	return len(p.tree.Elements)
}

// Source returns the source text the program was parsed from.
func (p *Program) Source() string {
	return p.source
}

// Identifiers returns the sorted, deduplicated names the program declares or
// references: identifiers, variables, functions, parameters and labels.
func (p *Program) Identifiers() []string {
	seen := make(map[string]bool)
	add := func(names ...string) {
		for _, n := range names {
			if n != "" {
				seen[n] = true
			}
		}
	}
	ast.Walk(p.tree, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			add(n.Name)
		case *ast.VarDecl:
			add(n.Name)
		case *ast.FuncDecl:
			add(n.Name)
			add(n.Params...)
		case *ast.FunctionExpr:
			add(n.Name)
			add(n.Params...)
		case *ast.CatchClause:
			add(n.Param)
		case *ast.LabeledStmt:
			add(n.Label)
		case *ast.Property:
			add(n.Name)
		}
		return true
	})
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
