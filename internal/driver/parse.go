package driver

import (
	"context"
	"fmt"

	"minijson/internal/cache"
	"minijson/internal/diag"
	"minijson/internal/parser"
	"minijson/internal/source"
	"minijson/internal/token"
	"minijson/internal/trace"
	"minijson/internal/value"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // nil when Root came from the cache
	Root    *value.Group
	Bag     *diag.Bag
	Cached  bool
}

// Parse loads, lexes and parses one file. Load failures return a nil
// result; lex and parse errors are recorded in Bag and returned alongside it.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse")
	span.WithExtra("path", path)

	fs := source.NewFileSet()
	file, err := load(ctx, fs, path, &opts)
	if err != nil {
		fail(ctx, "parse", err)
		span.EndErr(err)
		return nil, err
	}

	res := &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	err = parseFile(ctx, res, &opts)
	if err != nil {
		fail(ctx, "parse", err)
	}
	span.EndErr(err)
	return res, err
}

// parseFile fills res from res.File, consulting the cache first.
func parseFile(ctx context.Context, res *ParseResult, opts *Options) error {
	key := cache.KeyFor(res.File.Hash, opts.MaxDepth)
	if root, ok := cacheGet(ctx, key, res, opts); ok {
		res.Root, res.Cached = root, true
		return nil
	}

	toks, err := lex(ctx, res.File, opts)
	res.Tokens = toks
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: res.Bag}, err)
		return err
	}

	_, span := trace.Start(ctx, trace.ScopePass, "parse")
	idx := opts.Timer.Begin("parse")
	root, err := parser.Parse(toks, opts.parserOptions()...)
	if err != nil {
		opts.Timer.End(idx, "error")
		span.EndErr(err)
		err = fmt.Errorf("parse %s: %w", res.File.Path, err)
		diag.ReportError(diag.BagReporter{Bag: res.Bag}, err)
		return err
	}
	opts.Timer.End(idx, fmt.Sprintf("%d values", value.Count(root)-1))
	span.WithExtra("depth", fmt.Sprint(value.Depth(root))).End("")
	res.Root = root

	cachePut(ctx, key, res, opts)
	return nil
}

// cacheGet never fails the run: a broken entry is reported as a warning
// and treated as a miss.
func cacheGet(ctx context.Context, key cache.Digest, res *ParseResult, opts *Options) (*value.Group, bool) {
	if opts.Cache == nil {
		return nil, false
	}
	_, span := trace.Start(ctx, trace.ScopePass, "cache")
	root, ok, err := opts.Cache.Get(key)
	if err != nil {
		res.Bag.Add(diag.Unlocated(diag.SevWarning, diag.IOCacheError, "cache read failed: "+err.Error()))
		span.EndErr(err)
		return nil, false
	}
	if ok {
		span.WithExtra("result", "hit").End("")
	} else {
		span.WithExtra("result", "miss").End("")
	}
	return root, ok
}

func cachePut(ctx context.Context, key cache.Digest, res *ParseResult, opts *Options) {
	if opts.Cache == nil {
		return
	}
	_, span := trace.Start(ctx, trace.ScopePass, "cache")
	if err := opts.Cache.Put(key, res.Root); err != nil {
		res.Bag.Add(diag.Unlocated(diag.SevWarning, diag.IOCacheError, "cache write failed: "+err.Error()))
		span.EndErr(err)
		return
	}
	span.WithExtra("result", "stored").End("")
}

func fail(ctx context.Context, name string, err error) {
	trace.Fail(ctx, trace.ScopeDriver, name, err)
}
