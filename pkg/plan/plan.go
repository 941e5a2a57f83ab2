// Package plan defines the physical query-plan tree consumed by the diagram
// generator, the text parser that produces it from EXPLAIN-style output, and
// the dialect layer that extracts structured values (columns, sort keys,
// partitioning specs) from operator property strings.
//
// The tree is plain data: the generator in [pkg/render] treats it as
// read-only input and never mutates it.
package plan

// Node is a single stage of a physical query plan.
//
// Properties hold the raw key/value pairs from the plan text; their semantics
// vary per operator (e.g. "partitioning" on a repartition stage, "gby"/"aggr"
// on an aggregate). Children are ordered and exclusively owned: the tree has
// no sharing and no cycles.
type Node struct {
	Operator   string            `json:"operator"`
	Properties map[string]string `json:"properties,omitempty"`
	Children   []*Node           `json:"children,omitempty"`
	Level      int               `json:"level,omitempty"`
}

// Property returns the named property value and whether it was present.
// Safe to call on nodes without a properties map.
func (n *Node) Property(key string) (string, bool) {
	if n.Properties == nil {
		return "", false
	}
	v, ok := n.Properties[key]
	return v, ok
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// LeafCount returns the number of leaves in the subtree rooted at n.
// A node without children counts as one leaf.
func (n *Node) LeafCount() int {
	if n == nil {
		return 0
	}
	if len(n.Children) == 0 {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.LeafCount()
	}
	return total
}

// Depth returns the height of the subtree rooted at n (a leaf has depth 1).
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Walk visits n and every descendant in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
