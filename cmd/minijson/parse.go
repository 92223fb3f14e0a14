package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"minijson/internal/diag"
	"minijson/internal/diagfmt"
	"minijson/internal/driver"
	"minijson/internal/source"
	"minijson/internal/ui"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file|directory>",
		Short: "Parse a document or every *.json file in a directory and print the tree",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|tree)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse parsed trees from the on-disk cache")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	formatStr := a.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		formatStr, _ = cmd.Flags().GetString("format")
	}
	format, err := diagfmt.ParseTreeFormat(formatStr)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	useCache := a.cfg.Cache.Enabled
	if cmd.Flags().Changed("cache") {
		useCache, _ = cmd.Flags().GetBool("cache")
	}

	opts := a.driverOptions()
	opts.Jobs = jobs
	if useCache {
		opts.Cache = a.openCache(cmd)
	}

	// Проверяем, файл это или директория
	st, err := os.Stat(path)
	if err != nil {
		return a.reportError(cmd, fmt.Errorf("failed to stat path: %w", err))
	}
	if !st.IsDir() {
		res, err := a.parseFile(cmd, path, opts)
		if err != nil {
			return err
		}
		return diagfmt.FormatTree(cmd.OutOrStdout(), res.Root, format)
	}
	return a.parseDir(cmd, path, format, mode, opts)
}

func (a *app) parseDir(cmd *cobra.Command, dir string, format diagfmt.TreeFormat, mode uiMode, opts driver.Options) error {
	ctx := cmd.Context()
	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	if shouldUseTUI(mode, a.quiet) {
		files, listErr := driver.ListFiles(dir)
		if listErr != nil {
			return a.reportError(cmd, listErr)
		}
		fs, results, err = ui.RunParseDir(ctx, cmd.ErrOrStderr(), dir, files, opts)
	} else {
		fs, results, err = driver.ParseDir(ctx, dir, opts)
	}
	if err != nil {
		return a.reportError(cmd, err)
	}

	out := cmd.OutOrStdout()
	merged := diag.NewBag(a.maxDiag)
	for i := range results {
		r := &results[i]
		merged.Merge(r.Bag)
		if r.Root == nil {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s:\n", r.Path); err != nil {
			return err
		}
		if err := diagfmt.FormatTree(out, r.Root, format); err != nil {
			return err
		}
	}
	a.report(cmd, merged, fs)

	summary := driver.Summarize(results)
	stage(ctx, "summary", fmt.Sprintf("%d files, %d failed", summary.Files, summary.Failed))
	if !a.quiet {
		workers := opts.Jobs
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "parsed %d files (%d failed, %d cached, %d values) with %d jobs\n",
			summary.Files, summary.Failed, summary.Cached, summary.Values, workers)
	}
	if summary.Failed > 0 {
		return errReported
	}
	return nil
}
