// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"minijson/internal/parser"
	"minijson/internal/source"
	"minijson/internal/token"
	"minijson/internal/value"
)

// CheckTokenSpans verifies a token stream against the file it came from:
// 1) every span is non-empty, belongs to sf and lies within its content
// 2) spans are strictly increasing and do not overlap
// 3) only whitespace separates consecutive tokens
// 4) Text matches the source slice (without quotes for strings)
func CheckTokenSpans(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d: empty span %v", i, sp)
		}
		if sp.End > size {
			return fmt.Errorf("token %d: span %v beyond content (%d bytes)", i, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		for off := prevEnd; off < sp.Start; off++ {
			switch sf.Content[off] {
			case ' ', '\t', '\r', '\n':
			default:
				return fmt.Errorf("token %d: non-space byte %q at offset %d before token", i, sf.Content[off], off)
			}
		}
		raw := string(sf.Content[sp.Start:sp.End])
		want := raw
		if tok.Kind == token.String {
			if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
				return fmt.Errorf("token %d: string span %v does not cover its quotes: %q", i, sp, raw)
			}
			want = raw[1 : len(raw)-1]
		}
		if tok.Text != want {
			return fmt.Errorf("token %d: text %q, source has %q", i, tok.Text, want)
		}
		prevEnd = sp.End
	}
	for off := prevEnd; off < size; off++ {
		switch sf.Content[off] {
		case ' ', '\t', '\r', '\n':
		default:
			return fmt.Errorf("unscanned byte %q at offset %d", sf.Content[off], off)
		}
	}
	return nil
}

// CheckRoundTrip renders root, parses the text back and compares the trees.
func CheckRoundTrip(root *value.Group) error {
	if err := value.Validate(root); err != nil {
		return err
	}
	text := value.Render(root)
	back, err := parser.ParseString(text)
	if err != nil {
		return fmt.Errorf("reparse of %q: %w", text, err)
	}
	if !value.Equal(root, back) {
		return fmt.Errorf("reparse of %q produced a different tree", text)
	}
	if again := value.Render(back); again != text {
		return fmt.Errorf("second render differs:\n%s\n---\n%s", text, again)
	}
	return nil
}
