package render

import (
	"fmt"
	"strings"

	"github.com/planviz/planviz/pkg/errors"
	"github.com/planviz/planviz/pkg/excalidraw"
	"github.com/planviz/planviz/pkg/geom"
	"github.com/planviz/planviz/pkg/plan"
)

// Hash-build ellipse sizing relative to the configured node box.
const (
	hashEllipseWidthFrac  = 0.55
	hashEllipseHeightFrac = 0.55
)

// hashJoinGen renders hash joins. The first child is the build side: its
// streams flow into a hash-table ellipse beside the join rectangle rather
// than into the rectangle itself. The second child is the probe side and
// determines the join's output stream count.
type hashJoinGen struct{ base }

func (g hashJoinGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	if len(node.Children) != 2 {
		return NodeInfo{}, errors.New(errors.ErrCodePlanCardinality,
			"%s expects exactly 2 children, got %d", node.Operator, len(node.Children))
	}

	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: joinDetail(ctx, node)}, x, y)

	cfg := ctx.Config
	ew := cfg.NodeWidth * hashEllipseWidthFrac
	eh := cfg.NodeHeight * hashEllipseHeightFrac
	ex := x - cfg.HSpacing/2 - ew
	ey := y + (cfg.NodeHeight-eh)/2
	ellipse := ctx.Factory.Ellipse(ex, ey, ew, eh)
	ctx.Add(ellipse)
	hw := excalidraw.MeasureText("hash", cfg.DetailFontSize)
	hh := cfg.DetailFontSize * excalidraw.DefaultLineHeight
	ctx.Add(ctx.Factory.Text(ex+(ew-hw)/2, ey+(eh-hh)/2, "hash", cfg.DetailFontSize, DetailColor))

	infos, err := g.layoutChildren(ctx, node, x, y)
	if err != nil {
		return NodeInfo{}, err
	}
	build, probe := infos[0], infos[1]

	g.connectBuildSide(ctx, build, ellipse)
	g.connectChild(ctx, probe, rect, y+cfg.NodeHeight, x, cfg.NodeWidth, false)

	// The join's own projection wins; otherwise the probe side flows through
	// unchanged, ordering included (the build side is consumed by the hash
	// table, not emitted).
	cols := probe.OutputColumns
	if proj, ok := node.Property("projection"); ok {
		cols = ctx.Dialect.Columns(proj)
	}

	return g.finish(ctx, rect, x, y, probe.InputArrowCount, cols, probe.OutputSortOrder), nil
}

// connectBuildSide routes the build child's streams into the hash ellipse,
// anchoring each arrow on the ellipse boundary toward its source.
func (g hashJoinGen) connectBuildSide(ctx *Context, build NodeInfo, ellipse *excalidraw.Element) {
	positions, condensed := g.drawPositions(ctx, build)
	if len(positions) == 0 {
		return
	}

	center := geom.Point{
		X: ellipse.X + ellipse.Width/2,
		Y: ellipse.Y + ellipse.Height/2,
	}
	childRect := ctx.elementByID(build.RectID)
	for _, px := range positions {
		from := geom.Point{X: px, Y: build.TopY()}
		to := geom.EllipseEdgePoint(from, center, ellipse.Width, ellipse.Height)
		ctx.Add(ctx.Factory.Arrow(from.X, from.Y, to.X, to.Y, childRect, ellipse))
	}

	midY := (build.TopY() + center.Y) / 2
	if condensed {
		g.drawEllipsisMarker(ctx, positions, midY)
	}
	ctx.drawColumnLabel(build.OutputColumns, build.OutputSortOrder,
		positions[0], midY-ctx.Config.FontSize*excalidraw.DefaultLineHeight/2, true)
}

// joinDetail assembles the shared detail lines of the join stages: join
// type, simplified equi-join keys, and partition mode.
func joinDetail(ctx *Context, node *plan.Node) []string {
	var detail []string
	if jt, ok := node.Property("join_type"); ok {
		detail = append(detail, "join_type: "+jt)
	}
	if on, ok := node.Property("on"); ok {
		if pairs := ctx.Dialect.JoinKeys(on); len(pairs) > 0 {
			parts := make([]string, 0, len(pairs))
			for _, p := range pairs {
				parts = append(parts, fmt.Sprintf("(%s, %s)", p[0], p[1]))
			}
			detail = append(detail, "on: ["+strings.Join(parts, ", ")+"]")
		} else {
			detail = append(detail, "on: "+on)
		}
	}
	if mode, ok := node.Property("mode"); ok {
		detail = append(detail, "mode: "+mode)
	}
	return detail
}
