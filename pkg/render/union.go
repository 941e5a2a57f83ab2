package render

import "github.com/planviz/planviz/pkg/plan"

// unionGen renders n-ary union/interleave stages. The output stream count is
// the sum over all inputs; schema and ordering follow the first input, the
// branches being assumed uniform.
type unionGen struct{ base }

func (g unionGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	rect := ctx.drawNode(nodeLabel{Name: node.Operator}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	cols, sortOrder := inheritedSchema(infos)
	return g.finish(ctx, rect, x, y, sumCounts(infos), cols, sortOrder), nil
}
