package render

import "github.com/planviz/planviz/pkg/plan"

// aggregateGen renders aggregation stages. Output columns are the group-by
// names followed by the aggregate expression names, falling back to the
// input columns when the stage names neither. The input sort order carries
// through, and a group-by expression that time-bins an already-sorted
// column is promoted into the order right after its source column.
type aggregateGen struct{ base }

func (g aggregateGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	var detail []string
	if mode, ok := node.Property("mode"); ok {
		detail = append(detail, "mode: "+mode)
	}
	gby, hasGby := node.Property("gby")
	if hasGby {
		detail = append(detail, "gby: "+gby)
	}
	aggr, hasAggr := node.Property("aggr")
	if hasAggr {
		detail = append(detail, "aggr: "+aggr)
	}
	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}
	inCols, inSort := inheritedSchema(infos)

	var cols []string
	if hasGby {
		cols = ctx.Dialect.ProjectionAliases(gby)
	}
	if hasAggr {
		cols = append(cols, ctx.Dialect.ProjectionAliases(aggr)...)
	}
	if !hasGby && !hasAggr {
		cols = inCols
	}
	return g.finish(ctx, rect, x, y, sumCounts(infos), cols, g.promoteBinned(ctx, gby, inSort)), nil
}

// promoteBinned returns the inherited sort order with each time-binned
// group-by alias inserted directly after its source column, when that
// source column is part of the order.
func (aggregateGen) promoteBinned(ctx *Context, gby string, inSort []string) []string {
	out := append([]string(nil), inSort...)

	inner := plan.StripBrackets(gby)
	if inner == "" {
		return out
	}
	for _, expr := range plan.SplitTop(inner, ',') {
		src, ok := ctx.Dialect.BinningSource(expr)
		if !ok {
			continue
		}
		names := ctx.Dialect.ProjectionAliases("[" + expr + "]")
		if len(names) != 1 {
			continue
		}
		for i, c := range out {
			if c == src {
				out = append(out[:i+1], append([]string{names[0]}, out[i+1:]...)...)
				break
			}
		}
	}
	return out
}
