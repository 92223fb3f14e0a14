package diagfmt

import "fmt"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) mode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int // строк контекста до строки с ошибкой
	PathMode  PathMode
	ShowNotes bool
	// Max limits the number of printed diagnostics; 0 prints all.
	Max int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// TreeFormat selects how a document tree is printed.
type TreeFormat uint8

const (
	// TreePretty is the canonical tab-indented rendering.
	TreePretty TreeFormat = iota
	// TreeJSON is strict JSON with escaped strings.
	TreeJSON
	TreeYAML
	// TreeOutline is a box-drawing outline with node kinds.
	TreeOutline
)

// ParseTreeFormat maps a --format value onto a TreeFormat.
func ParseTreeFormat(s string) (TreeFormat, error) {
	switch s {
	case "", "pretty":
		return TreePretty, nil
	case "json":
		return TreeJSON, nil
	case "yaml":
		return TreeYAML, nil
	case "tree":
		return TreeOutline, nil
	default:
		return TreePretty, fmt.Errorf("unknown tree format %q (want pretty|json|yaml|tree)", s)
	}
}

func (f TreeFormat) String() string {
	switch f {
	case TreeJSON:
		return "json"
	case TreeYAML:
		return "yaml"
	case TreeOutline:
		return "tree"
	default:
		return "pretty"
	}
}
