package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// LeftBrace opens an object.
	LeftBrace Kind = iota + 1 // {
	// RightBrace closes an object.
	RightBrace // }
	// Colon separates a key from its value.
	Colon // :
	// Comma separates object members.
	Comma // ,
	// String is a quoted string literal, used both for keys and values.
	String
	// Number is a run of decimal digits.
	Number
)

var kindNames = [...]string{
	LeftBrace:  "LeftBrace",
	RightBrace: "RightBrace",
	Colon:      "Colon",
	Comma:      "Comma",
	String:     "String",
	Number:     "Number",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Describe returns the form used in parse error messages, e.g. "'{'" or "string".
func (k Kind) Describe() string {
	switch k {
	case LeftBrace:
		return "'{'"
	case RightBrace:
		return "'}'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case String:
		return "string"
	case Number:
		return "number"
	default:
		return k.String()
	}
}
