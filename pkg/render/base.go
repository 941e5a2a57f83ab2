package render

import (
	"github.com/planviz/planviz/pkg/excalidraw"
	"github.com/planviz/planviz/pkg/geom"
	"github.com/planviz/planviz/pkg/plan"
)

// base supplies the child-processing and arrow-binding logic shared by all
// generator strategies. Strategies embed it and keep only their
// operator-specific arrow counts, schema rules, and detail text.
type base struct{}

// processChildren generates every child subtree below the parent rectangle
// at (x, y) and draws the arrows from each child into the parent's bottom
// edge. Children of n-ary nodes are laid out left to right and recentered
// under the parent once their true widths are known.
func (b base) processChildren(ctx *Context, node *plan.Node, rect *excalidraw.Element, x, y float64) ([]NodeInfo, error) {
	infos, err := b.layoutChildren(ctx, node, x, y)
	if err != nil {
		return nil, err
	}

	n := len(infos)
	parentCX := x + ctx.Config.NodeWidth/2
	for i := range infos {
		rx, rw := b.bottomRegion(ctx.Config, x, i, n)
		leftAlign := n > 1 && infos[i].CenterX() < parentCX
		b.connectChild(ctx, infos[i], rect, y+ctx.Config.NodeHeight, rx, rw, leftAlign)
	}
	return infos, nil
}

// layoutChildren generates the child subtrees below the rectangle at (x, y)
// without drawing any arrows, for strategies that route flows somewhere
// other than the parent's bottom edge.
func (b base) layoutChildren(ctx *Context, node *plan.Node, x, y float64) ([]NodeInfo, error) {
	n := len(node.Children)
	if n == 0 {
		return nil, nil
	}

	cfg := ctx.Config
	childY := cfg.childRowY(y)
	parentCX := x + cfg.NodeWidth/2

	infos := make([]NodeInfo, 0, n)
	if n == 1 {
		info, err := ctx.Generate(node.Children[0], x, childY, false)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	} else {
		var total float64
		widths := make([]float64, n)
		for i, c := range node.Children {
			widths[i] = cfg.subtreeWidth(c)
			total += widths[i]
		}
		total += float64(n-1) * cfg.HSpacing

		mark := ctx.mark()
		cursor := parentCX - total/2
		for i, c := range node.Children {
			childX := cursor + widths[i]/2 - cfg.NodeWidth/2
			info, err := ctx.Generate(c, childX, childY, false)
			if err != nil {
				return nil, err
			}
			infos = append(infos, info)
			cursor += widths[i] + cfg.HSpacing
		}

		// One-time shift: estimated subtree widths rarely match the real
		// extents, so recenter the generated elements under the parent.
		if actualCX, ok := elementsCenterX(ctx.elementsSince(mark)); ok {
			dx := parentCX - actualCX
			shiftElements(ctx.elementsSince(mark), dx)
			for i := range infos {
				infos[i].shift(dx)
			}
		}
	}
	return infos, nil
}

// bottomRegion splits the parent's bottom edge into n contiguous spans, one
// per child, so fan-ins from siblings don't interleave.
func (base) bottomRegion(cfg Config, x float64, i, n int) (rx, rw float64) {
	span := cfg.NodeWidth / float64(n)
	return x + span*float64(i), span
}

// connectChild draws the arrows from one generated child into the region
// [rx, rx+rw) of the parent's bottom edge, plus the ellipsis marker for
// condensed fan-outs and the child's column label along the flow.
func (b base) connectChild(ctx *Context, child NodeInfo, rect *excalidraw.Element, parentBottomY, rx, rw float64, leftAlign bool) {
	positions, condensed := b.drawPositions(ctx, child)
	if len(positions) == 0 {
		return
	}

	childRect := ctx.elementByID(child.RectID)
	endpoints := ctx.Arrows.EndpointPositions(len(positions), rx, rw)
	for i, px := range positions {
		ctx.Add(ctx.Factory.Arrow(px, child.TopY(), endpoints[i], parentBottomY, childRect, rect))
	}

	midY := (child.TopY() + parentBottomY) / 2
	if condensed {
		b.drawEllipsisMarker(ctx, positions, midY)
	}

	anchor := positions[len(positions)-1]
	if leftAlign {
		anchor = positions[0]
	}
	ctx.drawColumnLabel(child.OutputColumns, child.OutputSortOrder,
		anchor, midY-ctx.Config.FontSize*excalidraw.DefaultLineHeight/2, leftAlign)
}

// drawEllipsisMarker renders the "…" that stands in for the arrows elided
// by condensation, centered between the two half-region pairs.
func (base) drawEllipsisMarker(ctx *Context, positions []float64, midY float64) {
	if len(positions) != condensedShown {
		return
	}
	mid := geom.Midpoint(
		geom.Point{X: positions[1], Y: midY},
		geom.Point{X: positions[2], Y: midY},
	)
	fs := ctx.Config.FontSize
	w := excalidraw.MeasureText("…", fs)
	ctx.Add(ctx.Factory.Text(mid.X-w/2, midY-fs*excalidraw.DefaultLineHeight/2, "…", fs, UnsortedColor))
}

// drawPositions resolves a child's reported arrow positions into the set
// actually drawn. Unusable position slices fall back to an even
// distribution across the child's width; a zero arrow count is floored to a
// single drawn arrow so leaf and pass-through stages still show their flow.
func (base) drawPositions(ctx *Context, child NodeInfo) ([]float64, bool) {
	count := child.InputArrowCount
	pos := child.InputArrowPositions
	condensed := count > CondenseThreshold && len(pos) == condensedShown

	if condensed || (count > 0 && len(pos) == count) {
		return pos, condensed
	}

	n := count
	if n < 1 {
		n = 1
	}
	lay := ctx.Arrows.OutputPositions(n, child.X, child.Width)
	return lay.Positions, lay.Condensed
}

// finish assembles the NodeInfo for a generated node: rectangle geometry,
// the node's output arrow layout, and the propagated schema.
func (base) finish(ctx *Context, rect *excalidraw.Element, x, y float64, count int, cols, sortOrder []string) NodeInfo {
	cfg := ctx.Config
	lay := ctx.Arrows.OutputPositions(count, x, cfg.NodeWidth)
	return NodeInfo{
		X:                   x,
		Y:                   y,
		Width:               cfg.NodeWidth,
		Height:              cfg.NodeHeight,
		RectID:              rect.ID,
		InputArrowCount:     lay.FullCount,
		InputArrowPositions: lay.Positions,
		OutputColumns:       cols,
		OutputSortOrder:     sortOrder,
	}
}

// sumCounts totals the resolved output arrow counts of the children.
func sumCounts(infos []NodeInfo) int {
	total := 0
	for _, info := range infos {
		total += info.InputArrowCount
	}
	return total
}

// inheritedSchema passes through the first child's columns and sort order.
func inheritedSchema(infos []NodeInfo) (cols, sortOrder []string) {
	if len(infos) == 0 {
		return nil, nil
	}
	return infos[0].OutputColumns, infos[0].OutputSortOrder
}

// mergeColumns unions two column lists, left side first, dropping right-side
// names already present on the left. Join keys shared by both sides appear
// once.
func mergeColumns(left, right []string) []string {
	out := make([]string, 0, len(left)+len(right))
	seen := make(map[string]bool, len(left)+len(right))
	for _, c := range left {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range right {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
