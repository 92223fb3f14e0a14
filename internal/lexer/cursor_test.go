package lexer

import (
	"testing"

	"minijson/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.json", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("Peek/Bump past EOF must return 0")
	}
}

func TestCursorMarkAndSpan(t *testing.T) {
	cursor := NewCursor(createFile(`"abc"`))
	m := cursor.Mark()
	if !cursor.Eat('"') {
		t.Fatal("Eat('\"') = false")
	}
	if cursor.Eat('x') {
		t.Fatal("Eat('x') = true")
	}
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v, want 0-2", sp)
	}
}
