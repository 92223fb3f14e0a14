package parser

import (
	"errors"
	"fmt"
	"strconv"

	"minijson/internal/lexer"
	"minijson/internal/source"
	"minijson/internal/token"
	"minijson/internal/value"
)

// parser walks an immutable token slice. Nested objects are parsed from
// sub-slices located by brace matching; nothing is copied or erased.
type parser struct {
	opts options
}

// Parse builds the document tree from tokens.
//
// The document is a single object. Its members are `"key": value` pairs
// separated by commas, where a value is a number, a string or another
// object. An empty token slice yields an empty root. On failure the tree is
// nil and the error is a *Error.
func Parse(tokens []token.Token, opts ...Option) (*value.Group, error) {
	p := parser{}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p.document(tokens)
}

// ParseString scans and parses text held in memory.
func ParseString(text string, opts ...Option) (*value.Group, error) {
	tokens, err := lexer.ScanString(text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, opts...)
}

// document разбирает верхний уровень: ровно один голый объект.
func (p *parser) document(toks []token.Token) (*value.Group, error) {
	var (
		root     *value.Group
		rootSpan source.Span
	)
	for i := 0; i < len(toks); {
		tok := toks[i]
		switch tok.Kind {
		case token.LeftBrace:
			end, err := matchBrace(toks, i)
			if err != nil {
				return nil, err
			}
			group, err := p.object(toks[i+1:end], toks[end], 1)
			if err != nil {
				return nil, err
			}
			if root != nil {
				// второй анонимный объект получил бы то же имя, что и корень
				return nil, &Error{
					Kind:    DuplicateNaming,
					Span:    tok.Span.Cover(toks[end].Span),
					Got:     "second top-level object",
					Related: rootSpan,
					Note:    "first top-level object is here",
				}
			}
			root, rootSpan = group, tok.Span.Cover(toks[end].Span)
			i = end + 1
		case token.RightBrace:
			return nil, &Error{Kind: UnbalancedBraces, Span: tok.Span, Got: "'}' without matching '{'"}
		default:
			return nil, unexpected(tok, "'{'")
		}
	}
	if root == nil {
		return value.NewRoot(), nil
	}
	// единственная обёртка схлопывается: сам объект и есть корень
	return root, nil
}

// object parses the members between a '{' and its matching '}'.
// closer is the '}' token, used to report a member cut short by the end of
// the object.
func (p *parser) object(toks []token.Token, closer token.Token, depth int) (*value.Group, error) {
	if p.opts.maxDepth > 0 && depth > p.opts.maxDepth {
		return nil, &Error{
			Kind: TooDeep,
			Span: closer.Span,
			Got:  fmt.Sprintf("depth %d exceeds limit %d", depth, p.opts.maxDepth),
		}
	}

	// peek returns the token at i, or the closer once the slice is exhausted.
	peek := func(i int) token.Token {
		if i < len(toks) {
			return toks[i]
		}
		return closer
	}

	fields := make([]value.Value, 0, len(toks)/4)
	for i := 0; i < len(toks); {
		if len(fields) > 0 {
			if toks[i].Kind != token.Comma {
				return nil, unexpected(toks[i], "',' or '}'")
			}
			i++
		}

		key := peek(i)
		if key.Kind != token.String {
			return nil, unexpected(key, "string key")
		}
		if key.Text == value.RootName {
			return nil, &Error{Kind: DuplicateNaming, Span: key.Span, Got: "empty key is reserved for the document root"}
		}
		i++

		if colon := peek(i); colon.Kind != token.Colon {
			return nil, &Error{Kind: MissingColon, Span: colon.Span, Got: describe(colon), Want: "':'", Key: key.Text}
		}
		i++

		val := peek(i)
		switch {
		case val.IsScalar():
			v, err := scalar(key, val)
			if err != nil {
				return nil, err
			}
			fields = append(fields, v)
			i++
		case val.Kind == token.LeftBrace:
			end, err := matchBrace(toks, i)
			if err != nil {
				return nil, err
			}
			inner, err := p.object(toks[i+1:end], toks[end], depth+1)
			if err != nil {
				return nil, err
			}
			// рекурсия обязана вернуть анонимную группу; переименовываем её в ключ
			if !inner.IsRoot() {
				return nil, &Error{Kind: DuplicateNaming, Span: val.Span, Key: inner.Name}
			}
			fields = append(fields, inner.Rename(key.Text))
			i = end + 1
		default:
			return nil, unexpected(val, "value")
		}
	}
	if len(fields) == 0 {
		return value.NewRoot(), nil
	}
	return value.NewRoot(fields...), nil
}

// scalar converts a String or Number token into the field named by key.
func scalar(key, val token.Token) (value.Value, error) {
	if val.Kind == token.String {
		return value.NewString(key.Text, val.Text), nil
	}
	n, err := strconv.ParseInt(val.Text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, &Error{Kind: NumberRange, Span: val.Span, Got: val.Text, Key: key.Text}
		}
		return nil, unexpected(val, "integer")
	}
	return value.NewInt(key.Text, n), nil
}

// matchBrace returns the index of the '}' matching the '{' at open.
// Depth counting only; the tokens in between are validated by the caller.
func matchBrace(toks []token.Token, open int) (int, error) {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.LeftBrace:
			depth++
		case token.RightBrace:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &Error{Kind: UnbalancedBraces, Span: toks[open].Span, Got: "'{' is never closed"}
}

func unexpected(tok token.Token, want string) *Error {
	return &Error{Kind: UnexpectedToken, Span: tok.Span, Got: describe(tok), Want: want}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.String:
		return fmt.Sprintf("string %q", tok.Text)
	case token.Number:
		return "number " + tok.Text
	default:
		return tok.Kind.Describe()
	}
}
