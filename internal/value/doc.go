// Package value holds the parsed document tree.
//
// A document is a root *Group with an empty name. Its fields are named
// *Group, *String and *Int nodes in source order. Nodes are built once by
// the parser (or by hand through the constructors) and never mutated.
package value
