package token_test

import (
	"testing"

	"minijson/internal/source"
	"minijson/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsScalar(t *testing.T) {
	for _, k := range []token.Kind{token.LeftBrace, token.RightBrace, token.Colon, token.Comma} {
		if tok(k).IsScalar() {
			t.Fatalf("%v must NOT be scalar", k)
		}
	}
	for _, k := range []token.Kind{token.String, token.Number} {
		if !tok(k).IsScalar() {
			t.Fatalf("%v should be scalar", k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.LeftBrace:  "LeftBrace",
		token.RightBrace: "RightBrace",
		token.Colon:      "Colon",
		token.Comma:      "Comma",
		token.String:     "String",
		token.Number:     "Number",
		token.Kind(0):    "Kind(0)",
		token.Kind(99):   "Kind(99)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(k), got, want)
		}
	}
	if got := token.LeftBrace.Describe(); got != "'{'" {
		t.Errorf("Describe = %q", got)
	}
}
