// Package ir defines the constants produced by lowering and the Builder that
// creates them.
//
// Every value lowering can produce is a compile-time constant: an integer, a
// double, a boolean, the null pointer or a string. Constructs the lowering
// does not translate yet produce a sentinel instead, so that the result of
// lowering is always a Value and never an error.
package ir

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies what a Value holds.
type Kind uint8

const (
	KindVoid        Kind = iota // No value (empty statement, var without initializer)
	KindInt                     // i64 constant
	KindFloat                   // double constant
	KindBool                    // i1 constant
	KindNull                    // null pointer constant
	KindString                  // string constant
	KindUnsupported             // construct recognised but not lowered
	KindControlFlow             // control-flow statement placeholder
	KindFunction                // function declaration placeholder
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindUnsupported:
		return "unsupported"
	case KindControlFlow:
		return "controlflow"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Type is the IR type of a constant.
type Type uint8

const (
	NoType Type = iota // sentinels and void
	I1
	I64
	Double
	Ptr
	Str
)

func (t Type) String() string {
	switch t {
	case I1:
		return "i1"
	case I64:
		return "i64"
	case Double:
		return "double"
	case Ptr:
		return "ptr"
	case Str:
		return "str"
	default:
		return "none"
	}
}

// Value is a lowered constant or a sentinel. The zero Value is Void.
// Values are compared with ==.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string // string constant, or the construct/name of a sentinel
}

// Constructors

// ConstInt creates an i64 constant.
func ConstInt(n int64) Value {
	return Value{kind: KindInt, i: n}
}

// ConstFloat creates a double constant.
func ConstFloat(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// ConstBool creates an i1 constant.
func ConstBool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.i = 1
	}
	return v
}

// Null returns the null pointer constant.
func Null() Value {
	return Value{kind: KindNull}
}

// ConstString creates a string constant.
func ConstString(s string) Value {
	return Value{kind: KindString, s: s}
}

// Void returns the value of a statement that produces none.
func Void() Value {
	return Value{}
}

// Unsupported marks a construct that is recognised but not lowered.
// construct names it, for example "call" or "identifier".
func Unsupported(construct string) Value {
	return Value{kind: KindUnsupported, s: construct}
}

// ControlFlow marks a control-flow statement. Lowering it needs basic
// blocks, which the builder does not have.
func ControlFlow(construct string) Value {
	return Value{kind: KindControlFlow, s: construct}
}

// Function marks a function declaration.
func Function(name string) Value {
	return Value{kind: KindFunction, s: name}
}

// Accessors

// Kind returns what v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Type returns the IR type of v, or NoType for sentinels and Void.
func (v Value) Type() Type {
	switch v.kind {
	case KindInt:
		return I64
	case KindFloat:
		return Double
	case KindBool:
		return I1
	case KindNull:
		return Ptr
	case KindString:
		return Str
	default:
		return NoType
	}
}

// IsConst reports whether v is a real constant rather than a sentinel.
func (v Value) IsConst() bool {
	return v.Type() != NoType
}

// IsNumeric reports whether v is an i64 or double constant.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// IsSentinel reports whether v is Void or one of the placeholders.
func (v Value) IsSentinel() bool {
	return !v.IsConst()
}

func (v Value) IsVoid() bool        { return v.kind == KindVoid }
func (v Value) IsNull() bool        { return v.kind == KindNull }
func (v Value) IsUnsupported() bool { return v.kind == KindUnsupported }
func (v Value) IsControlFlow() bool { return v.kind == KindControlFlow }
func (v Value) IsFunction() bool    { return v.kind == KindFunction }

// Int returns the value of an i64 constant.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the value of a double constant.
func (v Value) Float() float64 {
	return v.f
}

// Bool returns the value of an i1 constant.
func (v Value) Bool() bool {
	return v.i != 0
}

// Str returns the value of a string constant.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Construct returns the construct of an Unsupported or ControlFlow sentinel
// or the name of a Function sentinel.
func (v Value) Construct() string {
	switch v.kind {
	case KindUnsupported, KindControlFlow, KindFunction:
		return v.s
	}
	return ""
}

// Conversions

// AsFloat returns a numeric constant as a float64.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Truthy returns the boolean meaning of a constant under JavaScript rules:
// 0, NaN, false, null and "" are false. ok is false for sentinels.
func (v Value) Truthy() (truth, ok bool) {
	switch v.kind {
	case KindInt:
		return v.i != 0, true
	case KindFloat:
		return v.f != 0 && !math.IsNaN(v.f), true
	case KindBool:
		return v.i != 0, true
	case KindNull:
		return false, true
	case KindString:
		return v.s != "", true
	}
	return false, false
}

// TypeOf returns the result of the typeof operator for a constant.
func (v Value) TypeOf() (string, bool) {
	switch v.kind {
	case KindInt, KindFloat:
		return "number", true
	case KindBool:
		return "boolean", true
	case KindString:
		return "string", true
	case KindNull:
		return "object", true
	}
	return "", false
}

// String returns the value in IR notation, e.g. "i64 3" or "double 2.5".
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return "i64 " + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "double " + FormatFloat(v.f)
	case KindBool:
		return "i1 " + strconv.FormatBool(v.i != 0)
	case KindNull:
		return "ptr null"
	case KindString:
		return "str " + strconv.Quote(v.s)
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("%s(%s)", v.kind, v.s)
	}
}

// FormatFloat formats a double with the fewest digits that read back to the
// same value.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' {
			return s
		}
	}
	return s + ".0"
}
