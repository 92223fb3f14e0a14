package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"minijson/internal/cache"
	"minijson/internal/config"
	"minijson/internal/diag"
	"minijson/internal/diagfmt"
	"minijson/internal/driver"
	"minijson/internal/observ"
	"minijson/internal/prof"
	"minijson/internal/source"
	"minijson/internal/trace"
)

// app holds the settings resolved from flags and minijson.toml.
type app struct {
	cfg         config.Config
	colorMode   string
	quiet       bool
	maxDiag     int
	timer       *observ.Timer
	stopTracing func()
	profiler    *prof.Session
}

// setup runs before every command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Discover(".", configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg

	a.colorMode = cfg.Output.Color
	if flags.Changed("color") {
		if a.colorMode, err = flags.GetString("color"); err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	switch a.colorMode {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", a.colorMode)
	}

	if flags.Changed("decode-text") {
		if a.cfg.Parse.DecodeText, err = flags.GetBool("decode-text"); err != nil {
			return fmt.Errorf("failed to get decode-text flag: %w", err)
		}
	}

	if a.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if a.maxDiag, err = flags.GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		a.timer = observ.NewTimer()
	}

	var pc prof.Config
	if pc.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if pc.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if pc.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if pc.Enabled() {
		if a.profiler, err = prof.Start(pc); err != nil {
			return err
		}
	}

	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	a.stopTracing, err = setupTracing(cmd)
	return err
}

// finish flushes tracing and prints timings; it runs even when the command failed.
func (a *app) finish(stderr io.Writer) {
	if a.stopTracing != nil {
		a.stopTracing()
	}
	if err := a.profiler.Stop(); err != nil {
		fmt.Fprintf(stderr, "profile: %v\n", err)
	}
	if a.timer != nil && len(a.timer.Phases()) > 0 {
		_ = a.timer.WriteSummary(stderr)
	}
}

// useColor resolves --color for the given stream.
func (a *app) useColor(f *os.File) bool {
	switch a.colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func (a *app) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: a.maxDiag,
		MaxDepth:       a.cfg.Parse.MaxDepth,
		DecodeText:     a.cfg.Parse.DecodeText,
		Timer:          a.timer,
	}
}

// openCache opens the configured cache directory. A cache that cannot be
// opened only produces a warning.
func (a *app) openCache(cmd *cobra.Command) *cache.Cache {
	c, err := cache.Open(a.cfg.Cache.Dir)
	if err != nil {
		bag := diag.NewBag(1)
		bag.Add(diag.Unlocated(diag.SevWarning, diag.IOCacheError, "cache disabled: "+err.Error()))
		a.report(cmd, bag, nil)
		return nil
	}
	return c
}

// report prints bag to stderr. Warnings are dropped in quiet mode.
func (a *app) report(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if a.quiet && !bag.HasErrors() {
		return
	}
	bag.Sort()
	bag.Dedup()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     a.useColor(os.Stderr),
		Context:   1,
		ShowNotes: true,
		Max:       a.maxDiag,
	})
}

// reportError prints a driver error that came without a result.
func (a *app) reportError(cmd *cobra.Command, err error) error {
	bag := diag.NewBag(1)
	diag.ReportError(diag.BagReporter{Bag: bag}, err)
	a.report(cmd, bag, nil)
	return errReported
}

// parseFile runs driver.Parse and prints its diagnostics.
func (a *app) parseFile(cmd *cobra.Command, path string, opts driver.Options) (*driver.ParseResult, error) {
	res, err := driver.Parse(cmd.Context(), path, opts)
	if res == nil {
		return nil, a.reportError(cmd, err)
	}
	a.report(cmd, res.Bag, res.FileSet)
	if err != nil {
		return nil, errReported
	}
	return res, nil
}

// stage forwards a trace point for CLI-level milestones.
func stage(ctx context.Context, name, detail string) {
	trace.Point(ctx, trace.ScopeDriver, name, detail)
}
