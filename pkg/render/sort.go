package render

import "github.com/planviz/planviz/pkg/plan"

// sortGen renders sort stages. Stream count and columns pass through; the
// output sort order is the stage's own sort expression.
type sortGen struct{ base }

func (g sortGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	expr, _ := node.Property("expr")

	var detail []string
	if expr != "" {
		detail = append(detail, expr)
	}
	if pp, ok := node.Property("preserve_partitioning"); ok {
		detail = append(detail, "preserve_partitioning: "+pp)
	}
	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	cols, _ := inheritedSchema(infos)
	var sortOrder []string
	for _, k := range ctx.Dialect.SortOrder(expr) {
		sortOrder = append(sortOrder, k.Column)
	}
	return g.finish(ctx, rect, x, y, sumCounts(infos), cols, sortOrder), nil
}
