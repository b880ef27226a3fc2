package vdom

// Range maps items to nodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Keyed is Range with a reconciliation key taken from each item. Nodes
// that already carry a key keep it.
func Keyed[T any](items []T, key func(item T) string, fn func(item T, index int) *VNode) []*VNode {
	return Range(items, func(item T, i int) *VNode {
		n := fn(item, i)
		if n != nil && n.Key == "" {
			n.Key = key(item)
		}
		return n
	})
}
