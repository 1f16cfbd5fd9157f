package kunjs

import (
	"errors"

	"go.uber.org/zap"

	"github.com/fabiokung/kunjs/internal/compiler"
	"github.com/fabiokung/kunjs/internal/ir"
	"github.com/fabiokung/kunjs/internal/parser"
)

// Version is the kunjs version string.
const Version = "0.1.0"

// Value is the result of lowering: an i64, double, i1, null or string
// constant, or one of the sentinels Void, Unsupported, ControlFlow and
// Function.
type Value = ir.Value

// Kind identifies what a Value holds.
type Kind = ir.Kind

// Value kinds.
const (
	KindVoid        = ir.KindVoid
	KindInt         = ir.KindInt
	KindFloat       = ir.KindFloat
	KindBool        = ir.KindBool
	KindNull        = ir.KindNull
	KindString      = ir.KindString
	KindUnsupported = ir.KindUnsupported
	KindControlFlow = ir.KindControlFlow
	KindFunction    = ir.KindFunction
)

// Trace lists the IR operations one compilation performed.
type Trace = ir.Trace

// Parse parses a program. The whole source must be consumed.
//
// Example:
//
//	prog, err := kunjs.Parse("1 + 2;", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Dump(0))
func Parse(src string, config *Config) (*Program, error) {
	cfg := config.clone()
	tree, err := parser.ParseFile(cfg.Filename, []byte(src))
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return nil, newSyntaxError(cfg.Filename, pe)
		}
		return nil, err
	}
	return &Program{tree: tree, source: src, config: cfg}, nil
}

// ParsePrefix parses source elements for as long as they match. It returns
// the program parsed so far, the unparsed rest of src, and whether src was
// consumed completely. Only ok together with an empty remainder means the
// whole input is a program.
func ParsePrefix(src string) (prog *Program, remaining string, ok bool) {
	tree, remaining, ok := parser.ParsePrefix(src)
	return &Program{tree: tree, source: src, config: (*Config)(nil).clone()}, remaining, ok
}

// Compile parses src and lowers it, returning the value of its last source
// element. Syntax errors are returned as *SyntaxError; constructs that
// cannot be lowered produce sentinel values, not errors.
//
// Example:
//
//	v, err := kunjs.Compile("10 % 3 + 7 * 3 / 4.0;", nil)
//	// v.Float() == 6.25
func Compile(src string, config *Config) (Value, error) {
	prog, err := Parse(src, config)
	if err != nil {
		return ir.Void(), err
	}
	return prog.Compile(), nil
}

// CompileProgram lowers an already parsed program and returns its value
// together with the operations performed.
func CompileProgram(prog *Program) (Value, Trace) {
	v, trace := compiler.Compile(prog.tree, prog.config.Logger)
	if prog.config.Trace {
		for i, in := range trace {
			prog.config.Logger.Debug("ir",
				zap.Int("index", i),
				zap.Stringer("instr", in),
			)
		}
	}
	return v, trace
}

// MustCompile is like Compile but panics if src does not parse.
func MustCompile(src string) Value {
	v, err := Compile(src, nil)
	if err != nil {
		panic(err)
	}
	return v
}
