package ir

import (
	"fmt"
	"strings"
)

// Op is an IR instruction performed by the Builder.
type Op uint8

const (
	// Integer arithmetic
	Add  Op = iota // add i64
	Sub            // sub i64
	Mul            // mul i64
	SDiv           // sdiv i64
	SRem           // srem i64

	// Floating-point arithmetic
	FAdd // fadd double
	FSub // fsub double
	FMul // fmul double
	FDiv // fdiv double
	FRem // frem double

	// Conversions
	SIToFP  // sitofp i64 to double
	FPToI32 // double to i64 with 32-bit wraparound (ToInt32)
	Trunc32 // i64 to i64 with 32-bit wraparound (ToInt32)

	// 32-bit shifts and bitwise operations
	Shl  // shl i32, sign-extended
	AShr // ashr i32, sign-extended
	LShr // lshr i32, zero-extended
	And  // and
	Or   // or
	Xor  // xor

	// Comparisons
	ICmp // icmp (signed)
	FCmp // fcmp

	// Unary
	Neg  // integer negation
	FNeg // fneg double
	Not  // i1 negation
)

func (op Op) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case SDiv:
		return "sdiv"
	case SRem:
		return "srem"
	case FAdd:
		return "fadd"
	case FSub:
		return "fsub"
	case FMul:
		return "fmul"
	case FDiv:
		return "fdiv"
	case FRem:
		return "frem"
	case SIToFP:
		return "sitofp"
	case FPToI32:
		return "fptoi32"
	case Trunc32:
		return "trunc32"
	case Shl:
		return "shl"
	case AShr:
		return "ashr"
	case LShr:
		return "lshr"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case ICmp:
		return "icmp"
	case FCmp:
		return "fcmp"
	case Neg:
		return "neg"
	case FNeg:
		return "fneg"
	case Not:
		return "not"
	default:
		return fmt.Sprintf("op(%d)", op)
	}
}

// Pred is a comparison predicate of ICmp and FCmp.
type Pred uint8

const (
	EQ Pred = iota
	NE
	LT
	LE
	GT
	GE
)

// String returns the predicate as spelled after icmp (signed) or fcmp
// (ordered, except NE which is unordered so that NaN != NaN holds).
func (p Pred) String() string {
	return [...]string{"eq", "ne", "lt", "le", "gt", "ge"}[p]
}

func (p Pred) fcmp() string {
	if p == NE {
		return "une"
	}
	return "o" + p.String()
}

func (p Pred) icmp() string {
	switch p {
	case EQ, NE:
		return p.String()
	}
	return "s" + p.String()
}

// Instr is one operation recorded by the Builder.
type Instr struct {
	Op     Op
	Pred   Pred // ICmp and FCmp only
	Args   []Value
	Result Value
}

func (in Instr) String() string {
	var sb strings.Builder
	sb.WriteString(in.Op.String())
	switch in.Op {
	case ICmp:
		sb.WriteString(" " + in.Pred.icmp())
	case FCmp:
		sb.WriteString(" " + in.Pred.fcmp())
	}
	for i, a := range in.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(" " + a.String())
	}
	sb.WriteString(" => " + in.Result.String())
	return sb.String()
}

// Trace is the sequence of operations a Builder performed.
type Trace []Instr

// Ops returns just the operations of the trace.
func (t Trace) Ops() []Op {
	ops := make([]Op, len(t))
	for i, in := range t {
		ops[i] = in.Op
	}
	return ops
}

// Disassemble returns one numbered line per instruction.
func (t Trace) Disassemble() string {
	var sb strings.Builder
	for i, in := range t {
		fmt.Fprintf(&sb, "%04d: %s\n", i, in)
	}
	return sb.String()
}
