package testkit

import (
	"strings"
	"testing"

	"minijson/internal/lexer"
	"minijson/internal/source"
	"minijson/internal/token"
	"minijson/internal/value"
)

func scan(t *testing.T, text string) ([]token.Token, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.json", []byte(text)))
	toks, err := lexer.Scan(sf)
	if err != nil {
		t.Fatalf("scan %q: %v", text, err)
	}
	return toks, sf
}

func TestCheckTokenSpans(t *testing.T) {
	toks, sf := scan(t, "{ \"a\" :\t12 ,\n\"b\": \"x y\" }\n")
	if err := CheckTokenSpans(toks, sf); err != nil {
		t.Fatal(err)
	}

	broken := append([]token.Token(nil), toks...)
	broken[1].Text = "z"
	if err := CheckTokenSpans(broken, sf); err == nil || !strings.Contains(err.Error(), "text") {
		t.Fatalf("text mismatch not detected: %v", err)
	}

	broken = append([]token.Token(nil), toks...)
	broken[2].Span.Start = broken[1].Span.Start
	if err := CheckTokenSpans(broken, sf); err == nil {
		t.Fatal("overlap not detected")
	}

	if err := CheckTokenSpans(toks[:len(toks)-1], sf); err == nil {
		t.Fatal("dropped trailing token not detected")
	}
}

func TestCheckRoundTrip(t *testing.T) {
	root := value.NewRoot(
		value.NewString("k", "line\nbreak"),
		value.NewGroup("g", value.NewInt("n", 0)),
	)
	if err := CheckRoundTrip(root); err != nil {
		t.Fatal(err)
	}
	if err := CheckRoundTrip(value.NewRoot(value.NewInt("neg", -1))); err == nil {
		t.Fatal("invalid tree accepted")
	}
}
