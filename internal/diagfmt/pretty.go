package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"minijson/internal/diag"
	"minijson/internal/source"
)

type palette struct {
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	code   *color.Color
	path   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan),
		code:   mk(color.Bold),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return p.err.Sprint(s.String())
	case diag.SevWarning:
		return p.warn.Sprint(s.String())
	default:
		return p.info.Sprint(s.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста и подчёркивание ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, &items[i], fs, opts, p)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	header := fmt.Sprintf("%s %s: %s", p.severity(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
	if !d.Located || !inFileSet(fs, d.Primary) {
		fmt.Fprintln(w, header)
		return
	}

	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s\n", p.path.Sprint(f.FormatPath(opts.PathMode.mode(), fs.BaseDir())), start.Line, start.Col, header)
	writeSnippet(w, f, start, end, opts.Context, p)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		if !inFileSet(fs, note.Span) {
			fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), note.Msg)
			continue
		}
		nf := fs.Get(note.Span.File)
		ns, ne := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", p.note.Sprint("note"), nf.FormatPath(opts.PathMode.mode(), fs.BaseDir()), ns.Line, ns.Col, note.Msg)
		writeSnippet(w, nf, ns, ne, 0, p)
	}
}

// writeSnippet печатает строку с ошибкой (и ctx строк до неё) и каретку под span.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, ctx int, p palette) {
	first := start.Line
	for ctx > 0 && first > 1 {
		first--
		ctx--
	}
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf(" %*d |", gutter, ln), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	underline := "^" + strings.Repeat("~", underlineWidth(line, start, end)-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf(" %*s |", gutter, ""), caretPrefix(line, start.Col), p.caret.Sprint(underline))
}

// caretPrefix повторяет отступ строки до колонки col: табы сохраняются,
// остальные руны заменяются пробелами по их ширине на экране.
func caretPrefix(line string, col uint32) string {
	n := min(int(col)-1, len(line))
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range line[:n] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// underlineWidth is the display width of the span on its first line, at
// least one cell.
func underlineWidth(line string, start, end source.LineCol) int {
	from := min(int(start.Col)-1, len(line))
	if from < 0 {
		from = 0
	}
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	if to <= from {
		return 1
	}
	return max(runewidth.StringWidth(line[from:to]), 1)
}

func inFileSet(fs *source.FileSet, sp source.Span) bool {
	return fs != nil && int(sp.File) < fs.Len()
}
