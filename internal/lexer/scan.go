package lexer

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"minijson/internal/token"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isPunct(b byte) bool {
	return b == '{' || b == '}' || b == ':' || b == ','
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	var kind token.Kind
	// односимвольные
	switch lx.cursor.Bump() {
	case '{':
		kind = token.LeftBrace
	case '}':
		kind = token.RightBrace
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Text: lx.text(sp), Span: sp}
}

// scanNumber consumes the maximal run of decimal digits. A run that reaches
// the end of input is an error: a well-formed document ends with '}'.
func (lx *Lexer) scanNumber() (token.Token, error) {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if lx.cursor.EOF() {
		return token.Token{}, &Error{Kind: UnterminatedNumber, Span: sp}
	}
	return token.Token{Kind: token.Number, Text: lx.text(sp), Span: sp}, nil
}

// scanString copies bytes verbatim up to the next '"'. There are no escapes.
func (lx *Lexer) scanString() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		if lx.cursor.Eat('"') {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{
				Kind: token.String,
				Text: string(lx.file.Content[sp.Start+1 : sp.End-1]),
				Span: sp,
			}, nil
		}
		lx.cursor.Bump()
	}
	return token.Token{}, &Error{Kind: UnterminatedString, Span: lx.cursor.SpanFrom(start)}
}

// unknownChar съедает одну руну целиком, чтобы span не резал UTF-8.
func (lx *Lexer) unknownChar() error {
	start := lx.cursor.Mark()
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	n, err := safecast.Conv[uint32](size)
	if err != nil || n == 0 {
		n = 1
	}
	lx.cursor.Off += n
	return &Error{Kind: UnknownCharacter, Char: r, Span: lx.cursor.SpanFrom(start)}
}
