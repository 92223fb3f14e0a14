package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minijson/internal/diagfmt"
	"minijson/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file>",
		Short: "Print the token stream of a document",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], a.driverOptions())
	if result == nil {
		return a.reportError(cmd, err)
	}
	a.report(cmd, result.Bag, result.FileSet)
	if err != nil {
		return errReported
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}
