package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerArithmetic(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		name   string
		create func(x, y Value) Value
		x, y   int64
		want   Value
	}{
		{"add", b.CreateAdd, 1, 2, ConstInt(3)},
		{"add wraps", b.CreateAdd, math.MaxInt64, 1, ConstInt(math.MinInt64)},
		{"sub", b.CreateSub, 1, 2, ConstInt(-1)},
		{"mul", b.CreateMul, 5, 9, ConstInt(45)},
		{"sdiv truncates", b.CreateSDiv, 1, 2, ConstInt(0)},
		{"sdiv negative", b.CreateSDiv, -7, 2, ConstInt(-3)},
		{"srem", b.CreateSRem, 10, 3, ConstInt(1)},
		{"srem sign of dividend", b.CreateSRem, -10, 3, ConstInt(-1)},
		{"sdiv by zero", b.CreateSDiv, 1, 0, Unsupported("integer division by zero")},
		{"srem by zero", b.CreateSRem, 1, 0, Unsupported("integer division by zero")},
		{"sdiv overflow", b.CreateSDiv, math.MinInt64, -1, Unsupported("integer division overflow")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.create(ConstInt(tt.x), ConstInt(tt.y)))
		})
	}
}

func TestFloatArithmetic(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, ConstFloat(9.865), b.CreateFAdd(ConstFloat(2.72), ConstFloat(7.145)))
	assert.Equal(t, ConstFloat(-1.5), b.CreateFSub(ConstFloat(1), ConstFloat(2.5)))
	assert.Equal(t, ConstFloat(5), b.CreateFMul(ConstFloat(2), ConstFloat(2.5)))
	assert.Equal(t, ConstFloat(2.5), b.CreateFDiv(ConstFloat(5), ConstFloat(2)))
	assert.Equal(t, ConstFloat(-1), b.CreateFRem(ConstFloat(-7), ConstFloat(2)))
	assert.Equal(t, ConstFloat(math.Inf(1)), b.CreateFDiv(ConstFloat(1), ConstFloat(0)))

	nan := b.CreateFRem(ConstFloat(1), ConstFloat(0))
	require.Equal(t, KindFloat, nan.Kind())
	assert.True(t, math.IsNaN(nan.Float()))
}

func TestOperandTypes(t *testing.T) {
	b := NewBuilder()
	assert.True(t, b.CreateAdd(ConstInt(1), ConstFloat(2)).IsUnsupported())
	assert.True(t, b.CreateFAdd(ConstInt(1), ConstFloat(2)).IsUnsupported())
	assert.True(t, b.CreateSIToFP(ConstFloat(1)).IsUnsupported())
	assert.True(t, b.CreateNot(ConstInt(1)).IsUnsupported())
	assert.True(t, b.CreateICmp(EQ, ConstInt(1), ConstBool(true)).IsUnsupported())
	assert.True(t, b.CreateToInt32(Null()).IsUnsupported())
	assert.Empty(t, b.Trace(), "rejected operations are not traced")
}

func TestConversions(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, ConstFloat(2), b.CreateSIToFP(ConstInt(2)))
	assert.Equal(t, ConstInt(-1), b.CreateToInt32(ConstInt(0xFFFFFFFF)))
	assert.Equal(t, ConstInt(-3), b.CreateToInt32(ConstFloat(-3.9)))
	assert.Equal(t, []Op{SIToFP, Trunc32, FPToI32}, b.Trace().Ops())
}

func TestToInt32(t *testing.T) {
	tests := []struct {
		f    float64
		want int32
	}{
		{0, 0},
		{1.9, 1},
		{-1.9, -1},
		{2147483647, 2147483647},
		{2147483648, -2147483648},
		{4294967296, 0},
		{4294967297, 1},
		{-4294967297, -1},
		{1e20, 1661992960},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToInt32(tt.f), "ToInt32(%v)", tt.f)
	}
}

func TestShifts(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		name   string
		create func(x, y Value) Value
		x, y   int64
		want   int64
	}{
		{"shl", b.CreateShl, 1, 4, 16},
		{"shl overflows 32 bits", b.CreateShl, 1, 31, math.MinInt32},
		{"shl count masked", b.CreateShl, 1, 33, 2},
		{"ashr keeps sign", b.CreateAShr, -16, 2, -4},
		{"lshr is unsigned", b.CreateLShr, -1, 0, 4294967295},
		{"lshr", b.CreateLShr, -16, 28, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ConstInt(tt.want), tt.create(ConstInt(tt.x), ConstInt(tt.y)))
		})
	}
}

func TestBitwise(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, ConstInt(4), b.CreateAnd(ConstInt(6), ConstInt(12)))
	assert.Equal(t, ConstInt(14), b.CreateOr(ConstInt(6), ConstInt(12)))
	assert.Equal(t, ConstInt(10), b.CreateXor(ConstInt(6), ConstInt(12)))
}

func TestComparisons(t *testing.T) {
	b := NewBuilder()
	nan := ConstFloat(math.NaN())
	tests := []struct {
		name string
		got  Value
		want bool
	}{
		{"icmp slt", b.CreateICmp(LT, ConstInt(-1), ConstInt(1)), true},
		{"icmp sge", b.CreateICmp(GE, ConstInt(1), ConstInt(1)), true},
		{"icmp ne", b.CreateICmp(NE, ConstInt(1), ConstInt(1)), false},
		{"icmp bools", b.CreateICmp(EQ, ConstBool(true), ConstBool(true)), true},
		{"fcmp olt", b.CreateFCmp(LT, ConstFloat(1), ConstFloat(1.5)), true},
		{"fcmp oeq nan", b.CreateFCmp(EQ, nan, nan), false},
		{"fcmp olt nan", b.CreateFCmp(LT, nan, ConstFloat(1)), false},
		{"fcmp une nan", b.CreateFCmp(NE, nan, nan), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ConstBool(tt.want), tt.got)
		})
	}
}

func TestUnary(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, ConstInt(-3), b.CreateNeg(ConstInt(3)))
	assert.Equal(t, ConstFloat(-2.5), b.CreateFNeg(ConstFloat(2.5)))
	assert.Equal(t, ConstBool(false), b.CreateNot(ConstBool(true)))
}

func TestTrace(t *testing.T) {
	b := NewBuilder()
	x := b.CreateSIToFP(ConstInt(2))
	b.CreateFAdd(ConstFloat(2.5), x)
	b.CreateICmp(LT, ConstInt(1), ConstInt(2))
	b.CreateFCmp(NE, ConstFloat(1), ConstFloat(2))

	trace := b.Trace()
	require.Len(t, trace, 4)
	assert.Equal(t, []Op{SIToFP, FAdd, ICmp, FCmp}, trace.Ops())
	assert.Equal(t, "fadd double 2.5, double 2.0 => double 4.5", trace[1].String())
	assert.Equal(t, "icmp slt i64 1, i64 2 => i1 true", trace[2].String())
	assert.Equal(t, "fcmp une double 1.0, double 2.0 => i1 true", trace[3].String())

	want := "0000: sitofp i64 2 => double 2.0\n" +
		"0001: fadd double 2.5, double 2.0 => double 4.5\n" +
		"0002: icmp slt i64 1, i64 2 => i1 true\n" +
		"0003: fcmp une double 1.0, double 2.0 => i1 true\n"
	assert.Equal(t, want, trace.Disassemble())

	b.Reset()
	assert.Empty(t, b.Trace())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "add", Add.String())
	assert.Equal(t, "sitofp", SIToFP.String())
	assert.Equal(t, "not", Not.String())
	assert.Equal(t, "op(200)", Op(200).String())
	assert.Equal(t, "ge", GE.String())
}
