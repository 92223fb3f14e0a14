package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"minijson/internal/driver"
	"minijson/internal/source"
)

type parseDirOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

type parseDirFunc func(context.Context, string, driver.Options) (*source.FileSet, []driver.ParseDirResult, error)

// RunParseDir runs driver.ParseDir while a progress view renders to out.
// The view closes once the driver returns; closing the view first (ctrl+c)
// cancels the driver.
func RunParseDir(ctx context.Context, out io.Writer, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.ParseDirResult, error) {
	return runParseDir(ctx, out, nil, dir, files, opts, driver.ParseDir)
}

func runParseDir(ctx context.Context, out io.Writer, in io.Reader, dir string, files []string, opts driver.Options, parse parseDirFunc) (*source.FileSet, []driver.ParseDirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := parse(ctx, dir, opts)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	teaOpts := []tea.ProgramOption{tea.WithOutput(out), tea.WithContext(ctx)}
	if in != nil {
		teaOpts = append(teaOpts, tea.WithInput(in))
	}
	model := NewProgressModel("parsing "+dir, files, events)
	_, uiErr := tea.NewProgram(model, teaOpts...).Run()

	var outcome parseDirOutcome
	select {
	case outcome = <-outcomeCh:
	default:
		// вид закрылся раньше драйвера: останавливаем разбор и дренируем канал,
		// чтобы воркеры не заблокировались на отправке событий
		cancel()
		go func() {
			for range events {
			}
		}()
		outcome = <-outcomeCh
	}
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
