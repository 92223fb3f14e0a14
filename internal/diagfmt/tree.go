package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-yaml"

	"minijson/internal/value"
)

// FormatTree prints root in the requested format, followed by a newline.
func FormatTree(w io.Writer, root *value.Group, format TreeFormat) error {
	switch format {
	case TreeJSON:
		return FormatTreeJSON(w, root)
	case TreeYAML:
		return FormatTreeYAML(w, root)
	case TreeOutline:
		return FormatTreeOutline(w, root)
	default:
		return FormatTreePretty(w, root)
	}
}

// FormatTreePretty writes the canonical rendering.
func FormatTreePretty(w io.Writer, root *value.Group) error {
	if err := value.RenderTo(w, root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// FormatTreeJSON writes the tree as strict JSON. Field order and duplicate
// keys are kept; string contents are escaped.
func FormatTreeJSON(w io.Writer, root *value.Group) error {
	enc := jsontext.NewEncoder(w,
		jsontext.WithIndent("  "),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)
	return encodeGroup(enc, root)
}

func encodeGroup(enc *jsontext.Encoder, g *value.Group) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, f := range g.Fields {
		if err := enc.WriteToken(jsontext.String(value.NameOf(f))); err != nil {
			return err
		}
		var err error
		switch n := f.(type) {
		case *value.Group:
			err = encodeGroup(enc, n)
		case *value.String:
			err = enc.WriteToken(jsontext.String(n.Value))
		case *value.Int:
			err = enc.WriteToken(jsontext.Int(n.Value))
		}
		if err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// FormatTreeYAML writes the tree as a YAML mapping in field order.
func FormatTreeYAML(w io.Writer, root *value.Group) error {
	out, err := yaml.Marshal(toMapSlice(root))
	if err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func toMapSlice(g *value.Group) yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, len(g.Fields))
	for _, f := range g.Fields {
		item := yaml.MapItem{Key: value.NameOf(f)}
		switch n := f.(type) {
		case *value.Group:
			item.Value = toMapSlice(n)
		case *value.String:
			item.Value = n.Value
		case *value.Int:
			item.Value = n.Value
		}
		ms = append(ms, item)
	}
	return ms
}

// FormatTreeOutline draws the tree with box-drawing connectors:
//
//	Group <root> (2 fields)
//	├── Int "a" = 1
//	└── String "b" = "x"
func FormatTreeOutline(w io.Writer, root *value.Group) error {
	var b strings.Builder
	b.WriteString(nodeLabel(root))
	b.WriteByte('\n')
	writeOutlineChildren(&b, root, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeOutlineChildren(b *strings.Builder, g *value.Group, prefix string) {
	for i, f := range g.Fields {
		last := i == len(g.Fields)-1
		connector, next := "├── ", "│   "
		if last {
			connector, next = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(nodeLabel(f))
		b.WriteByte('\n')
		if child, ok := f.(*value.Group); ok {
			writeOutlineChildren(b, child, prefix+next)
		}
	}
}

func nodeLabel(v value.Value) string {
	switch n := v.(type) {
	case *value.Group:
		name := "<root>"
		if !n.IsRoot() {
			name = fmt.Sprintf("%q", n.Name)
		}
		noun := "fields"
		if len(n.Fields) == 1 {
			noun = "field"
		}
		return fmt.Sprintf("Group %s (%d %s)", name, len(n.Fields), noun)
	case *value.String:
		return fmt.Sprintf("String %q = %q", n.Name, n.Value)
	case *value.Int:
		return fmt.Sprintf("Int %q = %d", n.Name, n.Value)
	default:
		return "<nil>"
	}
}
