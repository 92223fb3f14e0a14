package cache

import (
	"fmt"

	"fortio.org/safecast"

	"minijson/internal/value"
)

// Node kinds as stored on disk.
const (
	nodeGroup uint8 = iota + 1
	nodeString
	nodeInt
)

// Node is one value of a tree in pre-order. Groups record how many of the
// following nodes (at the next level) are their direct fields.
type Node struct {
	Kind     uint8  `msgpack:"k"`
	Name     string `msgpack:"n,omitempty"`
	Str      string `msgpack:"s,omitempty"`
	Int      int64  `msgpack:"i,omitempty"`
	Children uint32 `msgpack:"c,omitempty"`
}

// Payload is the on-disk form of one cached tree.
type Payload struct {
	Schema uint16 `msgpack:"schema"`
	Nodes  []Node `msgpack:"nodes"`
}

func encodeTree(root *value.Group) (*Payload, error) {
	if err := value.Validate(root); err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, value.Count(root))
	nodes, err := flatten(root, nodes)
	if err != nil {
		return nil, err
	}
	return &Payload{Schema: schemaVersion, Nodes: nodes}, nil
}

func flatten(v value.Value, out []Node) ([]Node, error) {
	switch t := v.(type) {
	case *value.Group:
		n, err := safecast.Conv[uint32](len(t.Fields))
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", t.Name, err)
		}
		out = append(out, Node{Kind: nodeGroup, Name: t.Name, Children: n})
		for _, f := range t.Fields {
			if out, err = flatten(f, out); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *value.String:
		return append(out, Node{Kind: nodeString, Name: t.Name, Str: t.Value}), nil
	case *value.Int:
		return append(out, Node{Kind: nodeInt, Name: t.Name, Int: t.Value}), nil
	default:
		return nil, fmt.Errorf("unexpected value %T", v)
	}
}

func decodeTree(p *Payload) (*value.Group, error) {
	if len(p.Nodes) == 0 || p.Nodes[0].Kind != nodeGroup {
		return nil, fmt.Errorf("%w: missing root group", ErrCorrupt)
	}
	v, next, err := unflatten(p.Nodes, 0)
	if err != nil {
		return nil, err
	}
	if next != len(p.Nodes) {
		return nil, fmt.Errorf("%w: %d trailing nodes", ErrCorrupt, len(p.Nodes)-next)
	}
	root, _ := v.(*value.Group)
	if err := value.Validate(root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return root, nil
}

// unflatten rebuilds the value at nodes[i] and returns the index after it.
func unflatten(nodes []Node, i int) (value.Value, int, error) {
	if i >= len(nodes) {
		return nil, i, fmt.Errorf("%w: truncated node list", ErrCorrupt)
	}
	n := nodes[i]
	switch n.Kind {
	case nodeString:
		return value.NewString(n.Name, n.Str), i + 1, nil
	case nodeInt:
		return value.NewInt(n.Name, n.Int), i + 1, nil
	case nodeGroup:
		if int(n.Children) > len(nodes)-i-1 {
			return nil, i, fmt.Errorf("%w: group %q claims %d fields", ErrCorrupt, n.Name, n.Children)
		}
		var fields []value.Value
		if n.Children > 0 {
			fields = make([]value.Value, 0, n.Children)
		}
		next := i + 1
		for range n.Children {
			var (
				f   value.Value
				err error
			)
			f, next, err = unflatten(nodes, next)
			if err != nil {
				return nil, next, err
			}
			fields = append(fields, f)
		}
		return value.NewGroup(n.Name, fields...), next, nil
	default:
		return nil, i, fmt.Errorf("%w: unknown node kind %d", ErrCorrupt, n.Kind)
	}
}
