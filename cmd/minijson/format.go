package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"minijson/internal/diag"
	"minijson/internal/diagfmt"
	"minijson/internal/driver"
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <file>",
		Short: "Rewrite a document in canonical tab-indented form",
		Long: `fmt parses a document and renders it canonically. Without flags the
result is printed to stdout; --write replaces the file, --check only
reports whether it would change, --diff shows the change`,
		Args: cobra.ExactArgs(1),
		RunE: a.runFmt,
	}
	cmd.Flags().Bool("check", false, "exit with status 1 if the file is not canonical")
	cmd.Flags().Bool("diff", false, "print a diff instead of the formatted document")
	cmd.Flags().BoolP("write", "w", false, "write the result back to the file")
	return cmd
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return fmt.Errorf("failed to get diff flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	if check && write {
		return fmt.Errorf("--check and --write are mutually exclusive")
	}

	res, err := driver.Format(cmd.Context(), args[0], a.driverOptions())
	if res == nil {
		return a.reportError(cmd, err)
	}
	a.report(cmd, res.Bag, res.FileSet)
	if err != nil {
		return errReported
	}

	out := cmd.OutOrStdout()
	if showDiff {
		if _, err := diagfmt.FormatDiff(out, args[0], res.Original, res.Formatted, a.useColor(os.Stdout)); err != nil {
			return err
		}
	}

	switch {
	case check:
		if !res.Changed {
			return nil
		}
		bag := diag.NewBag(1)
		bag.Add(res.NotCanonical())
		a.report(cmd, bag, res.FileSet)
		return errReported
	case write:
		if !res.Changed {
			return nil
		}
		if err := driver.WriteFormatted(cmd.Context(), res); err != nil {
			bag := diag.NewBag(1)
			bag.Add(diag.Unlocated(diag.SevError, diag.IOWriteError, err.Error()))
			a.report(cmd, bag, res.FileSet)
			return errReported
		}
		if !a.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "formatted %s\n", args[0])
		}
		return nil
	case showDiff:
		return nil
	default:
		_, err := io.WriteString(out, res.Formatted)
		return err
	}
}
