package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedNumber Code = 1003

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnbalancedBraces Code = 2002
	SynMissingColon     Code = 2003
	SynDuplicateNaming  Code = 2004
	SynNumberRange      Code = 2005
	SynTooDeep          Code = 2006

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002
	IOCacheError    Code = 4003

	// Форматирование
	FmtNotCanonical Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexUnterminatedNumber: "Document ends inside a number",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnbalancedBraces:   "Unbalanced braces",
	SynMissingColon:       "Missing ':' after key",
	SynDuplicateNaming:    "Group named twice",
	SynNumberRange:        "Integer out of range",
	SynTooDeep:            "Nesting too deep",
	IOLoadFileError:       "I/O load file error",
	IOWriteError:          "I/O write error",
	IOCacheError:          "Cache error",
	FmtNotCanonical:       "File is not in canonical form",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FMT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
