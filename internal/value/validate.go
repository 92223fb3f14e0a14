package value

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTree is wrapped by every error returned from Validate.
var ErrInvalidTree = errors.New("invalid tree")

// Validate checks that a hand-built tree is something the parser could
// have produced, so that rendering it and parsing the text back yields an
// equal tree.
func Validate(root *Group) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInvalidTree)
	}
	if !root.IsRoot() {
		return fmt.Errorf("%w: root is named %q", ErrInvalidTree, root.Name)
	}
	return validateFields(root, "$")
}

func validateFields(g *Group, path string) error {
	for i, f := range g.Fields {
		at := fmt.Sprintf("%s[%d]", path, i)
		if f == nil {
			return fmt.Errorf("%w: %s: nil field", ErrInvalidTree, at)
		}
		name := f.key()
		if name == RootName {
			return fmt.Errorf("%w: %s: empty name", ErrInvalidTree, at)
		}
		if strings.ContainsRune(name, '"') {
			return fmt.Errorf("%w: %s: name %q contains a quote", ErrInvalidTree, at, name)
		}
		at = path + "." + name
		switch n := f.(type) {
		case *Group:
			if err := validateFields(n, at); err != nil {
				return err
			}
		case *String:
			if strings.ContainsRune(n.Value, '"') {
				return fmt.Errorf("%w: %s: value %q contains a quote", ErrInvalidTree, at, n.Value)
			}
		case *Int:
			if n.Value < 0 {
				return fmt.Errorf("%w: %s: negative integer %d", ErrInvalidTree, at, n.Value)
			}
		}
	}
	return nil
}
