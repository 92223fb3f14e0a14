package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"minijson/internal/diag"
	"minijson/internal/source"
	"minijson/internal/trace"
	"minijson/internal/value"
)

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в FileSet; не задан при ошибке загрузки
	Root   *value.Group  // nil при ошибке
	Bag    *diag.Bag     // диагностики файла
	Cached bool
	Err    error
}

// ListFiles returns the sorted *.json files under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.json file under dir in parallel. Per-file
// failures are reported in the matching result; the returned error is
// non-nil only when the walk fails or ctx is cancelled.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse-dir")
	span.WithExtra("dir", dir)

	files, err := ListFiles(dir)
	if err != nil {
		span.EndErr(err)
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}
	// пути из WalkDir уже содержат dir, поэтому база остаётся рабочим каталогом
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		span.End("no files")
		return fileSet, nil, nil
	}
	for _, path := range files {
		opts.emit(Event{File: path, Status: StatusQueued})
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	loadIdx := opts.Timer.Begin("load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusWorking})
		fileIDs[i], loadErrors[i] = opts.loadInto(fileSet, path)
	}
	opts.Timer.End(loadIdx, fmt.Sprintf("%d files", len(files)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Per-file phases would flood the timer; record the whole pass instead.
	fileOpts := opts
	fileOpts.Timer = nil

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]ParseDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	parseIdx := opts.Timer.Begin("parse")
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseOne(gctx, fileSet, path, fileIDs[i], loadErrors[i], &fileOpts)
			return nil
		})
	}
	err = g.Wait()
	opts.Timer.End(parseIdx, fmt.Sprintf("%d files, %d jobs", len(files), jobs))
	if err != nil {
		span.EndErr(err)
		return fileSet, results, err
	}
	span.WithExtra("files", fmt.Sprint(len(files))).End("")
	return fileSet, results, nil
}

func parseOne(ctx context.Context, fileSet *source.FileSet, path string, id source.FileID, loadErr error, opts *Options) ParseDirResult {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)
	out := ParseDirResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}

	if loadErr != nil {
		out.Err = fmt.Errorf("load %s: %w", path, loadErr)
		out.Bag.Add(diag.Unlocated(diag.SevError, diag.IOLoadFileError, "failed to load file: "+loadErr.Error()))
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: out.Err})
		span.EndErr(out.Err)
		return out
	}

	opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
	res := &ParseResult{FileSet: fileSet, File: fileSet.Get(id), Bag: out.Bag}
	err := parseFile(ctx, res, opts)
	out.FileID, out.Root, out.Cached, out.Err = id, res.Root, res.Cached, err

	switch {
	case err != nil:
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
	case res.Cached:
		opts.emit(Event{File: path, Stage: StageCache, Status: StatusCached})
	default:
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusDone})
	}
	span.EndErr(err)
	return out
}

// Summary aggregates ParseDir results for reporting.
type Summary struct {
	Files  int
	Failed int
	Cached int
	Values int
}

func Summarize(results []ParseDirResult) Summary {
	s := Summary{Files: len(results)}
	for i := range results {
		r := &results[i]
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Root != nil:
			s.Values += value.Count(r.Root) - 1
			if r.Cached {
				s.Cached++
			}
		}
	}
	return s
}
