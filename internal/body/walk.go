package body

// Walk traverses a tree depth-first, pre-order. The selector yields a node's
// children; visit returning false stops the whole traversal. Walk reports
// whether the traversal ran to completion. The tree is externally owned and
// only read.
func Walk[T any](root T, children func(T) []T, visit func(T) bool) bool {
	if !visit(root) {
		return false
	}
	for _, child := range children(root) {
		if !Walk(child, children, visit) {
			return false
		}
	}
	return true
}

// Find returns the first body in depth-first order matching the predicate,
// or nil.
func (b *Body) Find(pred func(*Body) bool) *Body {
	var found *Body
	Walk(b, func(n *Body) []*Body { return n.Children }, func(n *Body) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByName returns the named body, or nil.
func (b *Body) FindByName(name string) *Body {
	return b.Find(func(n *Body) bool { return n.Name == name })
}

// FindHome returns the body flagged as home world, or nil.
func (b *Body) FindHome() *Body {
	return b.Find(func(n *Body) bool { return n.HomeWorld })
}

// All returns every body in the tree in depth-first order.
func (b *Body) All() []*Body {
	var out []*Body
	Walk(b, func(n *Body) []*Body { return n.Children }, func(n *Body) bool {
		out = append(out, n)
		return true
	})
	return out
}
