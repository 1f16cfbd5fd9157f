package ir

import "math"

// Builder creates IR operations on constants. Operands are folded right
// away, so every Create method returns a constant, or Unsupported when the
// operands do not have the types the operation needs or the folded
// operation would trap.
//
// Every successful operation is appended to the builder's trace.
type Builder struct {
	trace Trace
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Trace returns the operations performed since the last Reset.
func (b *Builder) Trace() Trace {
	return b.trace
}

// Reset clears the trace.
func (b *Builder) Reset() {
	b.trace = nil
}

func (b *Builder) emit(op Op, result Value, args ...Value) Value {
	b.trace = append(b.trace, Instr{Op: op, Args: args, Result: result})
	return result
}

func bothInt(x, y Value) bool   { return x.kind == KindInt && y.kind == KindInt }
func bothFloat(x, y Value) bool { return x.kind == KindFloat && y.kind == KindFloat }

// Integer arithmetic wraps around like two's complement hardware.

func (b *Builder) CreateAdd(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("add operands")
	}
	return b.emit(Add, ConstInt(x.i+y.i), x, y)
}

func (b *Builder) CreateSub(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("sub operands")
	}
	return b.emit(Sub, ConstInt(x.i-y.i), x, y)
}

func (b *Builder) CreateMul(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("mul operands")
	}
	return b.emit(Mul, ConstInt(x.i*y.i), x, y)
}

// CreateSDiv divides truncating toward zero. Division by zero and
// MinInt64 / -1 are not folded.
func (b *Builder) CreateSDiv(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("sdiv operands")
	}
	if y.i == 0 {
		return Unsupported("integer division by zero")
	}
	if x.i == math.MinInt64 && y.i == -1 {
		return Unsupported("integer division overflow")
	}
	return b.emit(SDiv, ConstInt(x.i/y.i), x, y)
}

// CreateSRem returns the remainder with the sign of the dividend.
func (b *Builder) CreateSRem(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("srem operands")
	}
	if y.i == 0 {
		return Unsupported("integer division by zero")
	}
	if x.i == math.MinInt64 && y.i == -1 {
		return Unsupported("integer division overflow")
	}
	return b.emit(SRem, ConstInt(x.i%y.i), x, y)
}

// Floating-point arithmetic follows IEEE 754.

func (b *Builder) CreateFAdd(x, y Value) Value {
	if !bothFloat(x, y) {
		return Unsupported("fadd operands")
	}
	return b.emit(FAdd, ConstFloat(x.f+y.f), x, y)
}

func (b *Builder) CreateFSub(x, y Value) Value {
	if !bothFloat(x, y) {
		return Unsupported("fsub operands")
	}
	return b.emit(FSub, ConstFloat(x.f-y.f), x, y)
}

func (b *Builder) CreateFMul(x, y Value) Value {
	if !bothFloat(x, y) {
		return Unsupported("fmul operands")
	}
	return b.emit(FMul, ConstFloat(x.f*y.f), x, y)
}

func (b *Builder) CreateFDiv(x, y Value) Value {
	if !bothFloat(x, y) {
		return Unsupported("fdiv operands")
	}
	return b.emit(FDiv, ConstFloat(x.f/y.f), x, y)
}

// CreateFRem returns the remainder with the sign of the dividend, as fmod.
func (b *Builder) CreateFRem(x, y Value) Value {
	if !bothFloat(x, y) {
		return Unsupported("frem operands")
	}
	return b.emit(FRem, ConstFloat(math.Mod(x.f, y.f)), x, y)
}

// CreateSIToFP converts an i64 constant to double.
func (b *Builder) CreateSIToFP(x Value) Value {
	if x.kind != KindInt {
		return Unsupported("sitofp operand")
	}
	return b.emit(SIToFP, ConstFloat(float64(x.i)), x)
}

// CreateToInt32 converts a numeric constant to the 32-bit integer the
// shift and bitwise operators work on, returned as i64.
func (b *Builder) CreateToInt32(x Value) Value {
	switch x.kind {
	case KindInt:
		return b.emit(Trunc32, ConstInt(int64(int32(x.i))), x)
	case KindFloat:
		return b.emit(FPToI32, ConstInt(int64(ToInt32(x.f))), x)
	}
	return Unsupported("toint32 operand")
}

// CreateShl shifts the low 32 bits of x left by the low five bits of y.
func (b *Builder) CreateShl(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("shl operands")
	}
	r := int32(x.i) << (uint32(y.i) & 31)
	return b.emit(Shl, ConstInt(int64(r)), x, y)
}

// CreateAShr shifts the low 32 bits of x right, keeping the sign.
func (b *Builder) CreateAShr(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("ashr operands")
	}
	r := int32(x.i) >> (uint32(y.i) & 31)
	return b.emit(AShr, ConstInt(int64(r)), x, y)
}

// CreateLShr shifts the low 32 bits of x right as an unsigned number.
func (b *Builder) CreateLShr(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("lshr operands")
	}
	r := uint32(x.i) >> (uint32(y.i) & 31)
	return b.emit(LShr, ConstInt(int64(r)), x, y)
}

func (b *Builder) CreateAnd(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("and operands")
	}
	return b.emit(And, ConstInt(x.i&y.i), x, y)
}

func (b *Builder) CreateOr(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("or operands")
	}
	return b.emit(Or, ConstInt(x.i|y.i), x, y)
}

func (b *Builder) CreateXor(x, y Value) Value {
	if !bothInt(x, y) {
		return Unsupported("xor operands")
	}
	return b.emit(Xor, ConstInt(x.i^y.i), x, y)
}

// CreateICmp compares two i64 (or two i1) constants as signed integers.
func (b *Builder) CreateICmp(p Pred, x, y Value) Value {
	if x.kind != y.kind || (x.kind != KindInt && x.kind != KindBool) {
		return Unsupported("icmp operands")
	}
	var r bool
	switch p {
	case EQ:
		r = x.i == y.i
	case NE:
		r = x.i != y.i
	case LT:
		r = x.i < y.i
	case LE:
		r = x.i <= y.i
	case GT:
		r = x.i > y.i
	case GE:
		r = x.i >= y.i
	}
	res := ConstBool(r)
	b.trace = append(b.trace, Instr{Op: ICmp, Pred: p, Args: []Value{x, y}, Result: res})
	return res
}

// CreateFCmp compares two doubles. Every predicate is false when an operand
// is NaN, except NE which is true.
func (b *Builder) CreateFCmp(p Pred, x, y Value) Value {
	if !bothFloat(x, y) {
		return Unsupported("fcmp operands")
	}
	var r bool
	switch p {
	case EQ:
		r = x.f == y.f
	case NE:
		r = x.f != y.f
	case LT:
		r = x.f < y.f
	case LE:
		r = x.f <= y.f
	case GT:
		r = x.f > y.f
	case GE:
		r = x.f >= y.f
	}
	res := ConstBool(r)
	b.trace = append(b.trace, Instr{Op: FCmp, Pred: p, Args: []Value{x, y}, Result: res})
	return res
}

func (b *Builder) CreateNeg(x Value) Value {
	if x.kind != KindInt {
		return Unsupported("neg operand")
	}
	return b.emit(Neg, ConstInt(-x.i), x)
}

func (b *Builder) CreateFNeg(x Value) Value {
	if x.kind != KindFloat {
		return Unsupported("fneg operand")
	}
	return b.emit(FNeg, ConstFloat(-x.f), x)
}

// CreateNot negates an i1 constant.
func (b *Builder) CreateNot(x Value) Value {
	if x.kind != KindBool {
		return Unsupported("not operand")
	}
	return b.emit(Not, ConstBool(x.i == 0), x)
}

// ToInt32 converts f to a 32-bit integer the way JavaScript does: truncate
// toward zero and wrap modulo 2^32. NaN and the infinities become 0.
func ToInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	f = math.Mod(f, 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return int32(uint32(f))
}
