// Package kunjs parses a subset of JavaScript and lowers it to IR constants.
//
// The front end is a recursive descent parser with one production per
// precedence level and per statement form; it produces an AST in which every
// binary level is a head followed by a list of (operator, operand) pairs.
// The lowering pass walks that tree and folds arithmetic into typed
// constants: integer literals stay i64, any double operand promotes the
// whole operation to double.
//
// # Quick Start
//
//	v, err := kunjs.Compile("1 + 2;", nil)
//	// v.Kind() == kunjs.KindInt, v.Int() == 3
//
//	v, _ = kunjs.Compile("5.0 / 2;", nil)
//	// v.Kind() == kunjs.KindFloat, v.Float() == 2.5
//
// # Parsed Programs
//
// [Parse] returns a [Program] that can be printed as an S-expression tree,
// formatted back to source, or compiled:
//
//	prog, err := kunjs.Parse("if (n < 100) { result = 'big'; }", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Dump(2))
//	v := prog.Compile() // a ControlFlow sentinel
//
// # Sentinels
//
// Lowering never fails. Constructs it recognises but does not translate
// (calls, member access, identifiers, assignment, ...) produce a value of
// kind [KindUnsupported]; control-flow statements produce [KindControlFlow]
// after their conditions and bodies have been lowered; function declarations
// produce [KindFunction]. Callers check the kind explicitly.
//
// # Error Handling
//
// A program that does not parse yields a [*SyntaxError] describing what was
// expected, where, and the input that was left unconsumed.
//
// # Thread Safety
//
// Parse and Compile keep no shared state and may be called concurrently.
// A [Program] is immutable.
package kunjs
