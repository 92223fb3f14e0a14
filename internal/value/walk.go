package value

// Equal reports whether a and b are structurally identical, field order
// included.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Group:
		y, ok := b.(*Group)
		if !ok || x.Name != y.Name || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !Equal(x.Fields[i], y.Fields[i]) {
				return false
			}
		}
		return true
	case *String:
		y, ok := b.(*String)
		return ok && *x == *y
	case *Int:
		y, ok := b.(*Int)
		return ok && *x == *y
	}
	return false
}

// Depth counts group levels: scalars are 0, a group with no nested groups
// is 1, and every enclosing group adds one.
func Depth(v Value) int {
	g, ok := v.(*Group)
	if !ok {
		return 0
	}
	deepest := 0
	for _, f := range g.Fields {
		if d := Depth(f); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Walk visits v and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(v Value, fn func(v Value, depth int) bool) {
	walk(v, 0, fn)
}

func walk(v Value, depth int, fn func(Value, int) bool) {
	if v == nil || !fn(v, depth) {
		return
	}
	if g, ok := v.(*Group); ok {
		for _, f := range g.Fields {
			walk(f, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the tree rooted at v.
func Count(v Value) int {
	n := 0
	Walk(v, func(Value, int) bool {
		n++
		return true
	})
	return n
}
