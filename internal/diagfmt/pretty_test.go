package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"minijson/internal/diag"
	"minijson/internal/parser"
	"minijson/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("{\"a\": \"unterminated\n")
	fileID := fs.AddVirtual("/home/user/project/data/test.json", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 6, End: 20},
		"unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/data/test.json:1:7"},
		{"Relative path", PathModeRelative, "data/test.json:1:7"},
		{"Basename only", PathModeBasename, "test.json:1:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.HasPrefix(output, tt.contains) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyCaretUnderSpan(t *testing.T) {
	fs := source.NewFileSetWithBase("/w")
	src := "{\n\t\"a\" 1}\n"
	id := fs.Add("/w/x.json", []byte(src), 0)

	_, err := parser.ParseString(src)
	if err == nil {
		t.Fatal("expected parse error")
	}
	d := diag.FromError(err)
	// ParseString uses its own virtual file; rebind the span to ours.
	d.Primary.File = id

	bag := diag.NewBag(0)
	bag.Add(d)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeRelative, Context: 1})

	want := "x.json:2:6: ERROR SYN2003: expected ':' after key \"a\", got number 1\n" +
		" 1 | {\n" +
		" 2 | \t\"a\" 1}\n" +
		"   | \t    ^\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "{\"ключ界\": 1 #}"
	id := fs.AddVirtual("w.json", []byte(src))
	start := uint32(strings.Index(src, "#"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: start, End: start + 1}, "unknown character '#'"))
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	// `{"ключ界": 1 ` занимает 13 колонок: 界 двойной ширины
	if want := "   | " + strings.Repeat(" ", 13) + "^"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyUnlocatedAndMax(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.Unlocated(diag.SevError, diag.IOLoadFileError, "open a.json: no such file or directory"))
	bag.Add(diag.Unlocated(diag.SevWarning, diag.FmtNotCanonical, "b.json is not formatted"))

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{Max: 1})
	if got := buf.String(); got != "ERROR IO4001: open a.json: no such file or directory\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.json", []byte(`{"a": 1} {"b": 2}`))
	d := diag.NewError(diag.SynDuplicateNaming, source.Span{File: id, Start: 9, End: 17}, "double naming: second top-level object").
		WithNote(source.Span{File: id, Start: 0, End: 8}, "first object here")
	bag := diag.NewBag(0)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()
	if !strings.Contains(out, "  note: n.json:1:1: first object here\n") {
		t.Fatalf("note missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~~~\n") {
		t.Fatalf("expected an 8-cell underline:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.Unlocated(diag.SevError, diag.IOLoadFileError, "boom"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, nil, PrettyOpts{})
	Pretty(&colored, bag, nil, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
