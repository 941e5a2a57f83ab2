package render

import "github.com/planviz/planviz/pkg/plan"

// sortPreservingMergeGen renders k-way merge stages: every sorted input
// stream merges into one output stream that keeps the ordering.
type sortPreservingMergeGen struct{ base }

func (g sortPreservingMergeGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	expr, _ := node.Property("expr")

	var detail []string
	if expr != "" {
		detail = append(detail, expr)
	}
	if fetch, ok := node.Property("fetch"); ok {
		detail = append(detail, "fetch: "+fetch)
	}
	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	cols, sortOrder := inheritedSchema(infos)
	if keys := ctx.Dialect.SortOrder(expr); len(keys) > 0 {
		sortOrder = nil
		for _, k := range keys {
			sortOrder = append(sortOrder, k.Column)
		}
	}
	return g.finish(ctx, rect, x, y, 1, cols, sortOrder), nil
}
