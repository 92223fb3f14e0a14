package driver

import (
	"minijson/internal/cache"
	"minijson/internal/observ"
	"minijson/internal/parser"
	"minijson/internal/source"
)

// Options configures a driver run. The zero value parses without limits,
// cache, timings or progress reporting.
type Options struct {
	MaxDiagnostics int
	MaxDepth       int
	Jobs           int // ParseDir workers; <= 0 means GOMAXPROCS

	// DecodeText strips a byte order mark, transcodes UTF-16 and folds CRLF
	// before lexing. Off by default: the lexer sees the file bytes as stored.
	DecodeText bool

	Cache    *cache.Cache
	Timer    *observ.Timer
	Progress ProgressSink
}

func (o *Options) parserOptions() []parser.Option {
	if o.MaxDepth > 0 {
		return []parser.Option{parser.WithMaxDepth(o.MaxDepth)}
	}
	return nil
}

func (o *Options) loadInto(fs *source.FileSet, path string) (source.FileID, error) {
	if o.DecodeText {
		return fs.LoadDecoded(path)
	}
	return fs.Load(path)
}

func (o *Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
