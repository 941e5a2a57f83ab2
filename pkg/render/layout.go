package render

import (
	"github.com/planviz/planviz/pkg/excalidraw"
	"github.com/planviz/planviz/pkg/plan"
)

// Subtree centering and vertical stacking math shared by the generators.

// childRowY returns the y-coordinate for a node's children, one level below
// the rectangle at y.
func (c Config) childRowY(y float64) float64 {
	return y + c.NodeHeight + c.VSpacing
}

// subtreeWidth estimates the horizontal span of a subtree: its widest row
// is the leaf row, one node-width plus spacing per leaf.
func (c Config) subtreeWidth(n *plan.Node) float64 {
	leaves := n.LeafCount()
	if leaves < 1 {
		leaves = 1
	}
	return float64(leaves)*c.NodeWidth + float64(leaves-1)*c.HSpacing
}

// shiftElements applies a horizontal shift to already-generated elements.
// Used once per n-ary node to center children after their true widths are
// known; arrow points are origin-relative so shifting origins is enough.
func shiftElements(els []*excalidraw.Element, dx float64) {
	for _, el := range els {
		el.Shift(dx, 0)
	}
}

// elementsCenterX returns the horizontal center of the bounding box of els.
// ok is false for an empty slice.
func elementsCenterX(els []*excalidraw.Element) (float64, bool) {
	if len(els) == 0 {
		return 0, false
	}
	minX, _, maxX, _ := els[0].Bounds()
	for _, el := range els[1:] {
		lo, _, hi, _ := el.Bounds()
		if lo < minX {
			minX = lo
		}
		if hi > maxX {
			maxX = hi
		}
	}
	return (minX + maxX) / 2, true
}
