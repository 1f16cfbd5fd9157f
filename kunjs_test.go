package kunjs_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fabiokung/kunjs"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind kunjs.Kind
		want string
	}{
		{"integer", "1 + 2;", kunjs.KindInt, "i64 3"},
		{"float", "10 % 3 + 7 * 3 / 4.0;", kunjs.KindFloat, "double 6.25"},
		{"boolean", "1 < 2;", kunjs.KindBool, "i1 true"},
		{"string", "typeof null;", kunjs.KindString, `str "object"`},
		{"last element", "1; 2; 3;", kunjs.KindInt, "i64 3"},
		{"empty", "", kunjs.KindVoid, "void"},
		{"control flow", "while (0) ;", kunjs.KindControlFlow, "controlflow(while)"},
		{"function", "function f() {}", kunjs.KindFunction, "function(f)"},
		{"unsupported", "x;", kunjs.KindUnsupported, "unsupported(identifier)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := kunjs.Compile(tt.src, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestCompileSyntaxError(t *testing.T) {
	v, err := kunjs.Compile("try { a(); } ", &kunjs.Config{Filename: "t.js"})
	require.Error(t, err)
	assert.Equal(t, kunjs.KindVoid, v.Kind())

	se, ok := kunjs.IsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, "t.js", se.Filename)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 14, se.Column)
	assert.Equal(t, 13, se.Offset)
	assert.Equal(t, []string{`"catch"`, `"finally"`}, se.Expected)
	assert.Equal(t, "EOF", se.Found)
	assert.Equal(t, "try { a(); } ", se.Remaining)
	assert.NotEmpty(t, se.Context)
	assert.Equal(t, `syntax error at t.js:1:14: expected "catch" or "finally", found EOF`, se.Error())
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := kunjs.Parse("var 1;", nil)
	require.Error(t, err)
	assert.Equal(t, `syntax error at 1:5: expected identifier, found "1;"`, err.Error())
}

func TestSyntaxErrorExpectations(t *testing.T) {
	tests := []struct {
		name string
		err  *kunjs.SyntaxError
		want string
	}{
		{
			name: "none",
			err:  &kunjs.SyntaxError{Line: 1, Column: 1, Found: "EOF"},
			want: "syntax error at 1:1: expected valid input, found EOF",
		},
		{
			name: "several",
			err:  &kunjs.SyntaxError{Line: 2, Column: 3, Expected: []string{"a", "b", "c"}, Found: "x"},
			want: `syntax error at 2:3: expected a, b or c, found "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsSyntaxError(t *testing.T) {
	_, err := kunjs.Parse("1 +;", nil)
	wrapped := fmt.Errorf("loading: %w", err)

	se, ok := kunjs.IsSyntaxError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ";", se.Found)

	_, ok = kunjs.IsSyntaxError(fmt.Errorf("other"))
	assert.False(t, ok)
	_, ok = kunjs.IsSyntaxError(nil)
	assert.False(t, ok)
}

func TestMustCompile(t *testing.T) {
	assert.Equal(t, int64(7), kunjs.MustCompile("3 + 4;").Int())
	assert.Panics(t, func() { kunjs.MustCompile("3 +") })
}

func TestParsePrefix(t *testing.T) {
	prog, rest, ok := kunjs.ParsePrefix("a; b; if")
	assert.False(t, ok)
	assert.Equal(t, "if", rest)
	assert.Equal(t, 2, prog.Len())

	prog, rest, ok = kunjs.ParsePrefix("1 + 2;")
	assert.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, int64(3), prog.Compile().Int())
}

func TestProgram(t *testing.T) {
	src := "var a=1;function f(p){return p;}\nlbl: try {} catch (e) {} o = this.k;"
	prog, err := kunjs.Parse(src, nil)
	require.NoError(t, err)

	assert.Equal(t, src, prog.Source())
	assert.Equal(t, 4, prog.Len())
	assert.Equal(t, []string{"a", "e", "f", "k", "lbl", "o", "p"}, prog.Identifiers())

	formatted := prog.Format()
	again, err := kunjs.Parse(formatted, nil)
	require.NoError(t, err)
	assert.Equal(t, prog.Dump(0), again.Dump(0))
	assert.Equal(t, formatted, again.Format())
}

func TestProgramDump(t *testing.T) {
	prog, err := kunjs.Parse("1;", nil)
	require.NoError(t, err)

	assert.Equal(t, "(Program\n  (ExprStmt\n    (Number Int 1)))\n", prog.Dump(0))
	assert.Equal(t, "  (Program\n    (ExprStmt\n      (Number Int 1)))\n", prog.Dump(2))

	var sb strings.Builder
	require.NoError(t, prog.Print(&sb, 0))
	assert.Equal(t, prog.Dump(0), sb.String())
}

func TestCompileProgram(t *testing.T) {
	prog, err := kunjs.Parse("1 + 2.5;", nil)
	require.NoError(t, err)

	v, trace := kunjs.CompileProgram(prog)
	assert.Equal(t, 3.5, v.Float())
	require.Len(t, trace, 2)
	assert.Equal(t, "sitofp i64 1 => double 1.0", trace[0].String())
	assert.Equal(t, "fadd double 1.0, double 2.5 => double 3.5", trace[1].String())
}

func TestConfigTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &kunjs.Config{Logger: zap.New(core), Trace: true, Filename: "calc.js"}

	v, err := kunjs.Compile("(1 + 2) * 3;", cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(9), v.Int())

	assert.Equal(t, 2, logs.FilterMessage("ir").Len())
	compiled := logs.FilterMessage("compiled program").All()
	require.Len(t, compiled, 1)
	assert.Equal(t, "calc.js", compiled[0].ContextMap()["file"])

	// Without Trace only the compiler's own entries are logged.
	core, logs = observer.New(zapcore.DebugLevel)
	cfg = &kunjs.Config{Logger: zap.New(core)}
	_, err = kunjs.Compile("(1 + 2) * 3;", cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, logs.FilterMessage("ir").Len())
	assert.Equal(t, 1, logs.FilterMessage("compiled program").Len())
}

func TestProgramConcurrentCompile(t *testing.T) {
	prog, err := kunjs.Parse("1 << 4 | 3;", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]int64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = prog.Compile().Int()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, int64(19), r)
	}
}
