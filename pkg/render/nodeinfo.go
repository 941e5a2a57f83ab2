package render

// NodeInfo is the per-node contract returned bottom-up by every generator.
// It tells the parent where the node's rectangle landed, how many arrows to
// draw from this node, where those arrows should start, and what schema the
// node's output exposes.
type NodeInfo struct {
	// Rectangle geometry and identity.
	X, Y          float64
	Width, Height float64
	RectID        string

	// InputArrowCount is the number of arrows a parent should draw from
	// this node — the node's logical output stream count. Condensation
	// never changes it.
	InputArrowCount int

	// InputArrowPositions are the x-coordinates on this node's top edge
	// where those arrows start. Either empty, exactly InputArrowCount
	// long, or the condensed 2+2 representative set when the count
	// exceeds the condensation threshold. Callers fall back to an even
	// distribution when the slice isn't usable.
	InputArrowPositions []float64

	// OutputColumns is the ordered column list this node's output exposes.
	OutputColumns []string

	// OutputSortOrder is the subset of OutputColumns the output is
	// currently sorted by, in sort priority order.
	OutputSortOrder []string
}

// TopY returns the y-coordinate of the node rectangle's top edge, where
// outbound arrows start.
func (n NodeInfo) TopY() float64 { return n.Y }

// CenterX returns the horizontal center of the node's rectangle.
func (n NodeInfo) CenterX() float64 { return n.X + n.Width/2 }

// shift moves the recorded geometry, used when an n-ary parent recenters an
// already-generated subtree.
func (n *NodeInfo) shift(dx float64) {
	n.X += dx
	for i := range n.InputArrowPositions {
		n.InputArrowPositions[i] += dx
	}
}
