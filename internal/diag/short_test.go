package diag

import (
	"testing"

	"minijson/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/testdata/sample.json", []byte("{\n\"a\" 1}\n"), 0)

	diags := []Diagnostic{
		NewError(SynMissingColon, source.Span{File: file, Start: 6, End: 7}, "expected ':' after key \"a\",\ngot number 1").
			WithNote(source.Span{File: file, Start: 2, End: 5}, "key here"),
		Unlocated(SevError, IOLoadFileError, "open missing.json: no such file"),
		New(SevWarning, FmtNotCanonical, source.Span{File: file, Start: 0, End: 1}, "not canonical"),
	}

	expected := "error IO4001 open missing.json: no such file\n" +
		"warning FMT5001 testdata/sample.json:1:1 not canonical\n" +
		"note SYN2003 testdata/sample.json:2:1 key here\n" +
		"error SYN2003 testdata/sample.json:2:5 expected ':' after key \"a\", got number 1"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }

	if !bag.Add(NewError(SynUnexpectedToken, sp(5), "b")) {
		t.Fatal("first Add rejected")
	}
	bag.Add(NewError(LexUnknownChar, sp(1), "a"))
	bag.Add(NewError(LexUnknownChar, sp(1), "a"))
	if bag.Add(NewError(SynTooDeep, sp(9), "c")) {
		t.Fatal("Add beyond limit accepted")
	}

	bag.Dedup()
	bag.Sort()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Code != LexUnknownChar || items[1].Code != SynUnexpectedToken {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
	if !bag.HasErrors() || bag.Len() != 2 {
		t.Fatalf("HasErrors=%v Len=%d", bag.HasErrors(), bag.Len())
	}

	other := NewBag(0)
	other.Add(New(SevWarning, FmtNotCanonical, sp(0), "w"))
	bag.Merge(other)
	if bag.Len() != 3 {
		t.Fatalf("Merge: len = %d", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynUnbalancedBraces: "SYN2002",
		IOLoadFileError:     "IO4001",
		FmtNotCanonical:     "FMT5001",
		UnknownCode:         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", uint16(code), got, want)
		}
	}
	if got := SynMissingColon.String(); got != "[SYN2003]: Missing ':' after key" {
		t.Errorf("String() = %q", got)
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown code title = %q", Code(9999).Title())
	}
}
