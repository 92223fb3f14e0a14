// Package diagfmt is the presentation layer: it prints token streams,
// document trees and diagnostics. The lexer, parser and value packages
// never write output themselves.
package diagfmt
