package render

import "github.com/planviz/planviz/pkg/plan"

// projectionGen renders projection stages. The output columns come from the
// projection expression list (honoring aliases); the inherited sort order is
// narrowed to the columns that survive the projection.
type projectionGen struct{ base }

func (g projectionGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	expr, _ := node.Property("expr")

	var detail []string
	if expr != "" {
		detail = append(detail, expr)
	}
	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	cols, sortOrder := inheritedSchema(infos)
	if expr != "" {
		cols = ctx.Dialect.ProjectionAliases(expr)
		sortOrder = intersect(sortOrder, cols)
	}
	return g.finish(ctx, rect, x, y, sumCounts(infos), cols, sortOrder), nil
}
