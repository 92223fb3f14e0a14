package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"minijson/internal/diagfmt"
	"minijson/internal/version"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("diagnostics reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.finish(stderr)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "minijson: %v\n", err)
		}
		return 1
	}
	return 0
}

// newRootCmd builds the command tree. The root command itself keeps the
// classic behaviour: print the token stream, then the tree.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "minijson [flags] <file>",
		Short: "Minimal JSON lexer, parser and pretty-printer",
		Long: `minijson reads a document made of objects, strings and integers,
prints its token stream and the tab-indented tree rebuilt from it`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runDefault,
	}
	root.Version = version.Version

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("config", "", "path to minijson.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "write a trace to PATH ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("cpu-profile", "", "write a CPU profile to PATH")
	pf.String("mem-profile", "", "write a heap profile to PATH on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to PATH")
	pf.Bool("decode-text", false, "strip a byte order mark, decode UTF-16 and fold CRLF before lexing")

	root.Flags().Bool("no-tokens", false, "do not print the token stream")

	root.AddCommand(newTokenizeCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newFmtCmd(a))
	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newCacheCmd(a))
	return root
}

func (a *app) runDefault(cmd *cobra.Command, args []string) error {
	noTokens, err := cmd.Flags().GetBool("no-tokens")
	if err != nil {
		return fmt.Errorf("failed to get no-tokens flag: %w", err)
	}

	// токены нужны для листинга, поэтому кэш здесь не используется
	opts := a.driverOptions()
	opts.Cache = nil
	res, err := a.parseFile(cmd, args[0], opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.cfg.Output.Tokens && !noTokens {
		if err := diagfmt.FormatTokensListing(out, res.Tokens); err != nil {
			return err
		}
	}
	return diagfmt.FormatTreePretty(out, res.Root)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) || isatty.IsCygwinTerminal(f.Fd())
}
