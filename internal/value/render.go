package value

import (
	"io"
	"strconv"
	"strings"
)

// Render pretty-prints v with one tab per nesting level.
//
// A group is `"name": {`, its fields joined by ",\n", then the closing brace
// on its own line at the group's indent. The root omits the name prefix.
// An empty group renders as "{\n}". The result has no trailing newline.
func Render(v Value) string {
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

// RenderTo writes Render(v) to w.
func RenderTo(w io.Writer, v Value) error {
	_, err := io.WriteString(w, Render(v))
	return err
}

func writeValue(b *strings.Builder, v Value, indent int) {
	writeIndent(b, indent)
	switch n := v.(type) {
	case *Group:
		if !n.IsRoot() {
			writeName(b, n.Name)
		}
		b.WriteString("{\n")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(",\n")
			}
			writeValue(b, f, indent+1)
		}
		if len(n.Fields) > 0 {
			b.WriteByte('\n')
		}
		writeIndent(b, indent)
		b.WriteByte('}')
	case *String:
		writeName(b, n.Name)
		b.WriteByte('"')
		b.WriteString(n.Value)
		b.WriteByte('"')
	case *Int:
		writeName(b, n.Name)
		b.WriteString(strconv.FormatInt(n.Value, 10))
	}
}

func writeName(b *strings.Builder, name string) {
	b.WriteByte('"')
	b.WriteString(name)
	b.WriteString(`": `)
}

func writeIndent(b *strings.Builder, n int) {
	for range n {
		b.WriteByte('\t')
	}
}
