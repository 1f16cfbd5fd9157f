// kunjs - JavaScript subset front end
//
// Parses a subset of JavaScript, prints its syntax tree or normalized source,
// and lowers it to IR constants.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fabiokung/kunjs"
)

// version is set at build time via -ldflags.
var version = "dev"

// Exit codes.
const (
	exitError  = 1
	exitSyntax = 2
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errorExit(err)
	}
}

// options are the settings shared by all subcommands, merged from the
// config file and the command line.
type options struct {
	configPath string
	logLevel   string
	cfg        *fileConfig
}

func rootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "kunjs",
		Short:         "parse and compile a JavaScript subset",
		Version:       fmt.Sprintf("%s (library %s)", version, kunjs.Version),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default $HOME/.kunjs.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn",
		"log level: debug, info, warn or error")

	root.AddCommand(parseCmd(opts), fmtCmd(opts), compileCmd(opts), replCmd(opts))
	return root
}

func parseCmd(opts *options) *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "print the syntax tree as an S-expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("indent") {
				indent = opts.cfg.Indent
			}
			prog, err := parseInput(opts, args)
			if err != nil {
				return err
			}
			return errors.Wrap(prog.Print(cmd.OutOrStdout(), indent), "writing tree")
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 0, "base indentation of every line")
	return cmd
}

func fmtCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file]",
		Short: "print the program as normalized source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := parseInput(opts, args)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), prog.Format())
			return errors.Wrap(err, "writing source")
		},
	}
}

func compileCmd(opts *options) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "lower the program and print the value of its last statement",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("trace") {
				trace = opts.cfg.Trace
			}
			prog, err := parseInput(opts, args)
			if err != nil {
				return err
			}
			v, ops := kunjs.CompileProgram(prog)
			out := cmd.OutOrStdout()
			if trace {
				fmt.Fprint(out, ops.Disassemble())
			}
			fmt.Fprintln(out, v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print the IR operations performed")
	return cmd
}

func replCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "compile statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			r := newREPL(cmd.OutOrStdout(), opts.cfg, logger)
			return r.run()
		},
	}
}

// parseInput reads the file named by args, or stdin, and parses it.
func parseInput(opts *options, args []string) (*kunjs.Program, error) {
	name, src, err := readSource(args)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(opts.cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return kunjs.Parse(string(src), &kunjs.Config{
		Filename: name,
		Logger:   logger,
		Trace:    opts.cfg.Trace,
	})
}

func readSource(args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(os.Stdin)
		return "<stdin>", src, errors.Wrap(err, "reading stdin")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, errors.Wrapf(err, "reading %s", args[0])
	}
	return args[0], src, nil
}

// errorExit prints err and exits, with exitSyntax for syntax errors.
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "kunjs: %v\n", err)
	if se, ok := kunjs.IsSyntaxError(errors.Cause(err)); ok {
		if se.Context != "" {
			fmt.Fprintln(os.Stderr, se.Context)
		}
		os.Exit(exitSyntax)
	}
	os.Exit(exitError)
}
