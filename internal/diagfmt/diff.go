package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff is one line of a line-level diff.
type LineDiff struct {
	Op   diffpatch.Operation
	Text string
}

// DiffLines compares before and after line by line.
func DiffLines(before, after string) []LineDiff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []LineDiff
	for _, d := range diffs {
		for _, line := range splitKeepEmpty(d.Text) {
			out = append(out, LineDiff{Op: d.Type, Text: line})
		}
	}
	return out
}

// splitKeepEmpty splits text into lines without their terminators. A
// trailing newline does not produce an extra empty line.
func splitKeepEmpty(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// FormatDiff prints a diff between the file on disk and its canonical form
// with ---/+++ headers and -, + and space prefixed lines. It prints nothing
// and returns false when the texts are equal.
func FormatDiff(w io.Writer, path, before, after string, useColor bool) (bool, error) {
	if before == after {
		return false, nil
	}
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if useColor {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s (formatted)\n", path, path)
	for _, d := range DiffLines(before, after) {
		switch d.Op {
		case diffpatch.DiffDelete:
			b.WriteString(del.Sprint("-" + d.Text))
		case diffpatch.DiffInsert:
			b.WriteString(ins.Sprint("+" + d.Text))
		default:
			b.WriteString(" " + d.Text)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return true, err
}
