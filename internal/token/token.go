package token

import (
	"minijson/internal/source"
)

// Token is a single classified lexeme with its location.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

// IsScalar reports whether the token can stand as a field value on its own.
func (t Token) IsScalar() bool {
	return t.Kind == String || t.Kind == Number
}
