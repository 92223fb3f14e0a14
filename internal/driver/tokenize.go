package driver

import (
	"context"
	"fmt"

	"minijson/internal/diag"
	"minijson/internal/lexer"
	"minijson/internal/source"
	"minijson/internal/token"
	"minijson/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and scans it. Load failures return a nil result.
// A lex error is recorded in Bag and returned together with the result.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize")
	span.WithExtra("path", path)

	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	file, err := load(ctx, fs, path, &opts)
	if err != nil {
		fail(ctx, "tokenize", err)
		span.EndErr(err)
		return nil, err
	}

	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	res.Tokens, err = lex(ctx, file, &opts)
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: res.Bag}, err)
		fail(ctx, "tokenize", err)
	}
	span.EndErr(err)
	return res, err
}

// load reads one file into fs.
func load(ctx context.Context, fs *source.FileSet, path string, opts *Options) (*source.File, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "load")
	idx := opts.Timer.Begin("load")
	id, err := opts.loadInto(fs, path)
	if err != nil {
		opts.Timer.End(idx, "error")
		span.EndErr(err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)
	opts.Timer.End(idx, fmt.Sprintf("%d bytes", len(file.Content)))
	span.WithExtra("bytes", fmt.Sprint(len(file.Content))).End("")
	return file, nil
}

func lex(ctx context.Context, file *source.File, opts *Options) ([]token.Token, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "lex")
	idx := opts.Timer.Begin("lex")
	toks, err := lexer.Scan(file)
	if err != nil {
		opts.Timer.End(idx, "error")
		span.EndErr(err)
		return toks, fmt.Errorf("lex %s: %w", file.Path, err)
	}
	opts.Timer.End(idx, fmt.Sprintf("%d tokens", len(toks)))
	span.WithExtra("tokens", fmt.Sprint(len(toks))).End("")
	return toks, nil
}
