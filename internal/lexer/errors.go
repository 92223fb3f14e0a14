package lexer

import (
	"errors"
	"fmt"

	"minijson/internal/source"
)

// ErrorKind classifies lexical failures.
type ErrorKind uint8

const (
	// UnterminatedNumber: the input ended inside a digit run.
	UnterminatedNumber ErrorKind = iota + 1
	// UnterminatedString: no closing quote before the end of input.
	UnterminatedString
	// UnknownCharacter: a byte outside the recognised vocabulary.
	UnknownCharacter
)

var (
	ErrUnterminatedNumber = errors.New("document ended with a number, not with '}'")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrUnknownCharacter   = errors.New("unknown character")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnterminatedNumber:
		return ErrUnterminatedNumber
	case UnterminatedString:
		return ErrUnterminatedString
	case UnknownCharacter:
		return ErrUnknownCharacter
	default:
		return errors.New("lexical error")
	}
}

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedNumber:
		return "UnterminatedNumber"
	case UnterminatedString:
		return "UnterminatedString"
	case UnknownCharacter:
		return "UnknownCharacter"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Error is the only error type returned by Scan.
// Span covers the offending fragment: the partial number or string up to
// EOF, or the single unknown character.
type Error struct {
	Kind ErrorKind
	Char rune // set for UnknownCharacter
	Span source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message(), e.Span.Start)
}

// Message is the error text without the position.
func (e *Error) Message() string {
	if e.Kind == UnknownCharacter {
		return fmt.Sprintf("%v %q", e.Kind.sentinel(), e.Char)
	}
	return e.Kind.sentinel().Error()
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}
