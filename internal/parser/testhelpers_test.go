package parser_test

import (
	"errors"
	"testing"

	"minijson/internal/lexer"
	"minijson/internal/parser"
	"minijson/internal/value"
)

// parseSource прогоняет лексер и парсер; ошибка лексера валит тест.
func parseSource(t *testing.T, input string, opts ...parser.Option) (*value.Group, error) {
	t.Helper()
	tokens, err := lexer.ScanString(input)
	if err != nil {
		t.Fatalf("scan %q: %v", input, err)
	}
	return parser.Parse(tokens, opts...)
}

func mustParse(t *testing.T, input string, opts ...parser.Option) *value.Group {
	t.Helper()
	root, err := parseSource(t, input, opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	if root == nil {
		t.Fatalf("parse %q returned nil root without error", input)
	}
	return root
}

// expectParseError проверяет вид ошибки и отсутствие дерева.
func expectParseError(t *testing.T, input string, kind parser.ErrorKind) *parser.Error {
	t.Helper()
	root, err := parseSource(t, input)
	if err == nil {
		t.Fatalf("parse %q succeeded:\n%s", input, value.Render(root))
	}
	if root != nil {
		t.Fatalf("parse %q returned a partial tree with error %v", input, err)
	}
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a *parser.Error", err)
	}
	if perr.Kind != kind {
		t.Fatalf("parse %q: kind = %v, want %v (%v)", input, perr.Kind, kind, err)
	}
	return perr
}
