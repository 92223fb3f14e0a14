package diagfmt

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"minijson/internal/source"
	"minijson/internal/token"
)

type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line,omitzero"`
	Col   uint32 `json:"col,omitzero"`
}

// FormatTokensListing печатает поток токенов построчно: `Kind: text`.
func FormatTokensListing(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%s: %s\n", tok.Kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensPretty выводит токены в человекочитаемом формате с позициями.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		_, err := fmt.Fprintf(w, "%3d: %-10s %q at %d:%d-%d:%d\n",
			i+1, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате. fs may be nil, in which
// case line/col are omitted.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
		if inFileSet(fs, tok.Span) {
			pos, _ := fs.Resolve(tok.Span)
			out.Line, out.Col = pos.Line, pos.Col
		}
		output = append(output, out)
	}
	enc := jsontext.NewEncoder(w, jsontext.WithIndent("  "))
	return json.MarshalEncode(enc, output)
}
