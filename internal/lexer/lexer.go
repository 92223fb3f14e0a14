package lexer

import (
	"minijson/internal/source"
	"minijson/internal/token"
)

// Lexer scans one file left to right without backtracking.
type Lexer struct {
	file   *source.File
	cursor Cursor
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Scan tokenizes the whole file. On the first lexical error it returns no
// tokens and a *Error.
func Scan(file *source.File) ([]token.Token, error) {
	lx := New(file)
	tokens := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok, ok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// ScanString tokenizes text held in memory.
func ScanString(text string) ([]token.Token, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(text))
	return Scan(fs.Get(id))
}

// Next returns the next token. ok is false once the input is exhausted.
func (lx *Lexer) Next() (tok token.Token, ok bool, err error) {
	lx.skipWhitespace()
	if lx.cursor.EOF() {
		return token.Token{}, false, nil
	}

	ch := lx.cursor.Peek()
	switch {
	case isPunct(ch):
		tok = lx.scanPunct()
	case isDec(ch):
		tok, err = lx.scanNumber()
	case ch == '"':
		tok, err = lx.scanString()
	default:
		err = lx.unknownChar()
	}
	if err != nil {
		return token.Token{}, false, err
	}
	return tok, true, nil
}

func (lx *Lexer) skipWhitespace() {
	for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
