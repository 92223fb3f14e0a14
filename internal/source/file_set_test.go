package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("doc.json", []byte(`{"a": 1}`), 0)
	if id1 != 0 {
		t.Fatalf("expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("doc.json", []byte(`{"a": 2}`), 0)
	if id2 != 1 {
		t.Fatalf("expected second FileID to be 1, got %d", id2)
	}

	if got := string(fs.Get(id1).Content); got != `{"a": 1}` {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.json", []byte("{\n}\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.json", []byte("{\n\t\"a\": 1\n}"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}}, // the newline belongs to line 1
		{2, LineCol{Line: 2, Col: 1}},
		{3, LineCol{Line: 2, Col: 2}},
		{11, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.json", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}

	t.Run("raw bytes", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, "{\r\n\"a\": \"x\r\ny\"\r\n}"...)
		fs := NewFileSet()
		id, err := fs.Load(write("raw.json", data))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		f := fs.Get(id)
		if string(f.Content) != string(data) {
			t.Errorf("content = %q, want %q", f.Content, data)
		}
		if f.Flags != 0 {
			t.Errorf("flags = %v, want none", f.Flags)
		}
	})

	t.Run("decoded crlf", func(t *testing.T) {
		fs := NewFileSet()
		id, err := fs.LoadDecoded(write("crlf.json", []byte("{\r\n\"a\": 1\r\n}")))
		if err != nil {
			t.Fatalf("LoadDecoded: %v", err)
		}
		f := fs.Get(id)
		if string(f.Content) != "{\n\"a\": 1\n}" {
			t.Errorf("content = %q", f.Content)
		}
		if f.Flags&FileNormalizedCRLF == 0 {
			t.Error("expected FileNormalizedCRLF")
		}
	})

	t.Run("decoded utf8 bom", func(t *testing.T) {
		fs := NewFileSet()
		id, err := fs.LoadDecoded(write("bom.json", append([]byte{0xEF, 0xBB, 0xBF}, `{}`...)))
		if err != nil {
			t.Fatalf("LoadDecoded: %v", err)
		}
		f := fs.Get(id)
		if string(f.Content) != "{}" {
			t.Errorf("content = %q", f.Content)
		}
		if f.Flags&FileHadBOM == 0 {
			t.Error("expected FileHadBOM")
		}
	})

	t.Run("decoded utf16 little endian", func(t *testing.T) {
		fs := NewFileSet()
		data := []byte{0xFF, 0xFE, '{', 0, '}', 0}
		id, err := fs.LoadDecoded(write("u16.json", data))
		if err != nil {
			t.Fatalf("LoadDecoded: %v", err)
		}
		f := fs.Get(id)
		if string(f.Content) != "{}" {
			t.Errorf("content = %q", f.Content)
		}
		if f.Flags&FileTranscoded == 0 {
			t.Error("expected FileTranscoded")
		}
	})

	t.Run("relative to base dir", func(t *testing.T) {
		write("rel.json", []byte(`{}`))
		fs := NewFileSetWithBase(dir)
		id, err := fs.Load("./rel.json")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := fs.Get(id).Path; got != normalizePath(filepath.Join(dir, "rel.json")) {
			t.Errorf("path = %q", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		fs := NewFileSet()
		if _, err := fs.Load(filepath.Join(dir, "nope.json")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")

	got, err := RelativePath(filepath.Join(base, "nested", "x.json"), base)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if got != "nested/x.json" {
		t.Errorf("inside base: got %q", got)
	}

	outside := filepath.Join(tmp, "other", "x.json")
	got, err = RelativePath(outside, base)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if got != normalizePath(outside) {
		t.Errorf("outside base: got %q, want %q", got, normalizePath(outside))
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("cross-file Cover = %v, want %v", got, a)
	}
}
