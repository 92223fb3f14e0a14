package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"

	"minijson/internal/diag"
	"minijson/internal/source"
	"minijson/internal/trace"
	"minijson/internal/value"
)

// FormatResult pairs the loaded file with its canonical rendering.
type FormatResult struct {
	*ParseResult
	Original  string
	Formatted string
	Changed   bool
}

// Canonical returns the on-disk canonical form of root: the rendered tree
// followed by a single newline.
func Canonical(root *value.Group) string {
	return value.Render(root) + "\n"
}

// Format parses path and renders it canonically. Nothing is written.
// On a lex or parse failure the partial result is returned with the error.
func Format(ctx context.Context, path string, opts Options) (*FormatResult, error) {
	pr, err := Parse(ctx, path, opts)
	if pr == nil {
		return nil, err
	}
	res := &FormatResult{ParseResult: pr, Original: string(pr.File.Content)}
	if err != nil {
		return res, err
	}

	_, span := trace.Start(ctx, trace.ScopePass, "render")
	idx := opts.Timer.Begin("render")
	res.Formatted = Canonical(pr.Root)
	opts.Timer.End(idx, "")
	span.End("")

	const rewritten = source.FileHadBOM | source.FileNormalizedCRLF | source.FileTranscoded
	res.Changed = res.Formatted != res.Original || pr.File.Flags&rewritten != 0
	return res, nil
}

// NotCanonical builds the diagnostic reported by `fmt --check`, pointing at
// the first byte that differs from the canonical form.
func (r *FormatResult) NotCanonical() diag.Diagnostic {
	const msg = "file is not in canonical form"
	off := firstDiff(r.Original, r.Formatted)
	size := len(r.File.Content)
	if size == 0 {
		return diag.Unlocated(diag.SevError, diag.FmtNotCanonical, msg)
	}
	if off >= size {
		off = size - 1
	}
	start, err := safecast.Conv[uint32](off)
	if err != nil {
		return diag.Unlocated(diag.SevError, diag.FmtNotCanonical, msg)
	}
	sp := source.Span{File: r.File.ID, Start: start, End: start + 1}
	return diag.NewError(diag.FmtNotCanonical, sp, msg)
}

func firstDiff(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// WriteFormatted replaces the file with its canonical form atomically.
func WriteFormatted(ctx context.Context, r *FormatResult) (err error) {
	_, span := trace.Start(ctx, trace.ScopePass, "write")
	defer func() { span.EndErr(err) }()

	path := r.File.Path
	mode := os.FileMode(0o644)
	if st, statErr := os.Stat(path); statErr == nil {
		mode = st.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".minijson-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.WriteString(r.Formatted); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Chmod(mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// Атомарная замена
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
