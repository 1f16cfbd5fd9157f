package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/coregx/coregex"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/fabiokung/kunjs"
	"github.com/fabiokung/kunjs/internal/token"
)

const continuationPrompt = "...... "

// identPrefix matches the identifier being typed at the end of a line.
var identPrefix = mustCompile(`[A-Za-z_$][A-Za-z0-9_$]*$`)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

var replCommands = []string{".ast", ".exit", ".fmt", ".help", ".trace"}

type repl struct {
	out    io.Writer
	cfg    *fileConfig
	logger *zap.Logger

	showAST   bool
	showFmt   bool
	showTrace bool

	// Names declared or used in earlier inputs, offered for completion.
	names map[string]bool
}

func newREPL(out io.Writer, cfg *fileConfig, logger *zap.Logger) *repl {
	return &repl{
		out:       out,
		cfg:       cfg,
		logger:    logger,
		showTrace: cfg.Trace,
		names:     make(map[string]bool),
	}
}

func (r *repl) run() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(r.complete)

	history := r.cfg.REPL.HistoryFile
	if f, err := os.Open(history); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(r.out, "kunjs %s\nType .help for commands, Ctrl+D to quit\n", kunjs.Version)

	var buf strings.Builder
	for {
		prompt := r.cfg.REPL.Prompt
		if buf.Len() > 0 {
			prompt = continuationPrompt
		}
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			buf.Reset()
			fmt.Fprintln(r.out, "^C")
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 && strings.HasPrefix(trimmed, ".") {
			if !r.command(trimmed) {
				return nil
			}
			continue
		}
		if buf.Len() == 0 && trimmed == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(input)
		src := buf.String()
		if needsMoreInput(src) {
			continue
		}
		buf.Reset()
		line.AppendHistory(src)
		r.eval(src)
	}
}

// command runs a dot command. It returns false when the REPL should exit.
func (r *repl) command(cmd string) bool {
	switch cmd {
	case ".exit":
		return false
	case ".ast":
		r.showAST = !r.showAST
		fmt.Fprintf(r.out, "ast %s\n", onOff(r.showAST))
	case ".fmt":
		r.showFmt = !r.showFmt
		fmt.Fprintf(r.out, "fmt %s\n", onOff(r.showFmt))
	case ".trace":
		r.showTrace = !r.showTrace
		fmt.Fprintf(r.out, "trace %s\n", onOff(r.showTrace))
	case ".help":
		fmt.Fprintln(r.out, ".ast    toggle printing the syntax tree")
		fmt.Fprintln(r.out, ".fmt    toggle printing normalized source")
		fmt.Fprintln(r.out, ".trace  toggle printing IR operations")
		fmt.Fprintln(r.out, ".exit   quit")
	default:
		fmt.Fprintf(r.out, "unknown command %s\n", cmd)
	}
	return true
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (r *repl) eval(src string) {
	prog, err := kunjs.Parse(src, &kunjs.Config{Logger: r.logger})
	if err != nil {
		fmt.Fprintln(r.out, err)
		if se, ok := kunjs.IsSyntaxError(err); ok && se.Context != "" {
			fmt.Fprintln(r.out, se.Context)
		}
		return
	}
	for _, n := range prog.Identifiers() {
		r.names[n] = true
	}
	if r.showAST {
		fmt.Fprint(r.out, prog.Dump(2))
	}
	if r.showFmt {
		fmt.Fprint(r.out, prog.Format())
	}
	v, trace := kunjs.CompileProgram(prog)
	if r.showTrace {
		fmt.Fprint(r.out, trace.Disassemble())
	}
	fmt.Fprintln(r.out, v)
}

// complete offers reserved words, earlier names and dot commands that
// extend the word at the end of line.
func (r *repl) complete(line string) []string {
	if strings.HasPrefix(line, ".") {
		return withPrefix("", line, replCommands)
	}
	loc := identPrefix.FindStringIndex(line)
	if loc == nil {
		return nil
	}
	words := token.Words()
	for n := range r.names {
		words = append(words, n)
	}
	sort.Strings(words)
	return withPrefix(line[:loc[0]], line[loc[0]:], words)
}

func withPrefix(head, prefix string, words []string) []string {
	var out []string
	var last string
	for _, w := range words {
		if w != last && strings.HasPrefix(w, prefix) {
			out = append(out, head+w)
		}
		last = w
	}
	return out
}

// needsMoreInput reports whether src has unclosed brackets outside string
// literals and comments.
func needsMoreInput(src string) bool {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '"', '\'':
			for i++; i < len(src) && src[i] != c && src[i] != '\n'; i++ {
				if src[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
			} else if i+1 < len(src) && src[i+1] == '*' {
				end := strings.Index(src[i+2:], "*/")
				if end < 0 {
					return true
				}
				i += end + 3
			}
		}
	}
	return depth > 0
}
