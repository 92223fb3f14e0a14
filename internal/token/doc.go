// Package token defines the lexical vocabulary of minijson documents.
// Invariants:
//   - Token.Text for punctuation is the literal character.
//   - Token.Text for strings excludes the surrounding quotes; Token.Span includes them.
//   - Token.Text for numbers is exactly the decimal digit run.
//   - The lexer never emits an EOF token; the stream ends with the slice.
package token
