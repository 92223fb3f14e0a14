package parser

import (
	"errors"
	"fmt"

	"minijson/internal/source"
)

// ErrorKind classifies parse failures.
type ErrorKind uint8

const (
	// UnexpectedToken: a token that the grammar does not allow at this point.
	UnexpectedToken ErrorKind = iota + 1
	// UnbalancedBraces: a '{' is never closed or a '}' has no opener.
	UnbalancedBraces
	// MissingColon: a key is not followed by ':'.
	MissingColon
	// DuplicateNaming: a group would carry the anonymous root name in a
	// position that requires a real key.
	DuplicateNaming
	// NumberRange: an integer literal does not fit into int64.
	NumberRange
	// TooDeep: nesting exceeds the configured limit.
	TooDeep
)

var (
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrUnbalancedBraces = errors.New("unbalanced braces")
	ErrMissingColon     = errors.New("expected ':' after key")
	ErrDuplicateNaming  = errors.New("double naming")
	ErrNumberRange      = errors.New("integer out of range")
	ErrTooDeep          = errors.New("nesting too deep")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case UnbalancedBraces:
		return ErrUnbalancedBraces
	case MissingColon:
		return ErrMissingColon
	case DuplicateNaming:
		return ErrDuplicateNaming
	case NumberRange:
		return ErrNumberRange
	case TooDeep:
		return ErrTooDeep
	default:
		return errors.New("parse error")
	}
}

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnbalancedBraces:
		return "UnbalancedBraces"
	case MissingColon:
		return "MissingColon"
	case DuplicateNaming:
		return "DuplicateNaming"
	case NumberRange:
		return "NumberRange"
	case TooDeep:
		return "TooDeep"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Error is the only error type returned by Parse.
type Error struct {
	Kind ErrorKind
	// Span points at the offending token, or at the key/brace the
	// problem is attributed to.
	Span source.Span
	// Got describes what was found ("number", "'}'", "end of input").
	Got string
	// Want describes what the grammar expected; empty when not applicable.
	Want string
	// Key is the member name involved, if any.
	Key string
	// Related points at an earlier construct the error refers to; it is
	// meaningful only when Note is set.
	Related source.Span
	Note    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message(), e.Span.Start)
}

// Message is the error text without the position.
func (e *Error) Message() string {
	var detail string
	switch e.Kind {
	case MissingColon:
		detail = fmt.Sprintf(" %q, got %s", e.Key, e.Got)
	case DuplicateNaming:
		if e.Key != "" {
			detail = fmt.Sprintf(": group %q is already named", e.Key)
		} else {
			detail = ": " + e.Got
		}
	case NumberRange:
		detail = fmt.Sprintf(": %s for key %q", e.Got, e.Key)
	default:
		switch {
		case e.Want != "" && e.Got != "":
			detail = fmt.Sprintf(": expected %s, got %s", e.Want, e.Got)
		case e.Got != "":
			detail = ": " + e.Got
		}
	}
	return e.Kind.sentinel().Error() + detail
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}
