package value

import "fmt"

// RootName is the name carried by the anonymous document root.
// User keys are never empty, so it cannot collide with a real field.
const RootName = ""

// Kind identifies the concrete node type behind a Value.
type Kind uint8

const (
	KindGroup Kind = iota + 1
	KindString
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is implemented only by *Group, *String and *Int.
type Value interface {
	Kind() Kind
	key() string
}

// Group is an object: an ordered list of named fields.
type Group struct {
	Name   string
	Fields []Value
}

// String is a named string field. Value holds the text between the quotes.
type String struct {
	Name  string
	Value string
}

// Int is a named integer field.
type Int struct {
	Name  string
	Value int64
}

func (*Group) Kind() Kind  { return KindGroup }
func (*String) Kind() Kind { return KindString }
func (*Int) Kind() Kind    { return KindInt }

func (g *Group) key() string  { return g.Name }
func (s *String) key() string { return s.Name }
func (i *Int) key() string    { return i.Name }

// NameOf returns the field name of v; empty for the root and for nil.
func NameOf(v Value) string {
	if v == nil {
		return ""
	}
	return v.key()
}

// NewRoot builds an anonymous document root.
func NewRoot(fields ...Value) *Group {
	return &Group{Name: RootName, Fields: fields}
}

func NewGroup(name string, fields ...Value) *Group {
	return &Group{Name: name, Fields: fields}
}

func NewString(name, v string) *String {
	return &String{Name: name, Value: v}
}

func NewInt(name string, v int64) *Int {
	return &Int{Name: name, Value: v}
}

// IsRoot reports whether g carries the root sentinel name.
func (g *Group) IsRoot() bool {
	return g != nil && g.Name == RootName
}

// Rename returns a group with the same fields under a new name.
// The receiver is left untouched; the field slice is shared.
func (g *Group) Rename(name string) *Group {
	return &Group{Name: name, Fields: g.Fields}
}
