package diag

import (
	"errors"

	"minijson/internal/lexer"
	"minijson/internal/parser"
)

// FromError maps a lexer or parser error onto a located diagnostic. Any
// other error becomes an unlocated IOLoadFileError.
func FromError(err error) Diagnostic {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return NewError(lexCode(lexErr.Kind), lexErr.Span, lexErr.Message())
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		d := NewError(synCode(parseErr.Kind), parseErr.Span, parseErr.Message())
		if parseErr.Note != "" {
			d = d.WithNote(parseErr.Related, parseErr.Note)
		}
		return d
	}
	return Unlocated(SevError, IOLoadFileError, err.Error())
}

func lexCode(k lexer.ErrorKind) Code {
	switch k {
	case lexer.UnknownCharacter:
		return LexUnknownChar
	case lexer.UnterminatedString:
		return LexUnterminatedString
	case lexer.UnterminatedNumber:
		return LexUnterminatedNumber
	default:
		return LexInfo
	}
}

func synCode(k parser.ErrorKind) Code {
	switch k {
	case parser.UnexpectedToken:
		return SynUnexpectedToken
	case parser.UnbalancedBraces:
		return SynUnbalancedBraces
	case parser.MissingColon:
		return SynMissingColon
	case parser.DuplicateNaming:
		return SynDuplicateNaming
	case parser.NumberRange:
		return SynNumberRange
	case parser.TooDeep:
		return SynTooDeep
	default:
		return SynInfo
	}
}
