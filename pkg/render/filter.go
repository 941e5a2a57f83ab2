package render

import "github.com/planviz/planviz/pkg/plan"

// filterGen renders filter stages. A filter is a pass-through for stream
// count and schema, except when it carries an embedded projection.
type filterGen struct{ base }

func (g filterGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	var detail []string
	if pred, ok := node.Property("expr"); ok {
		detail = append(detail, pred)
	} else if pred, ok := node.Property("predicate"); ok {
		detail = append(detail, pred)
	}

	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)
	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	cols, sortOrder := inheritedSchema(infos)
	if proj, ok := node.Property("projection"); ok {
		cols = ctx.Dialect.Columns(proj)
		sortOrder = intersect(sortOrder, cols)
	}
	return g.finish(ctx, rect, x, y, sumCounts(infos), cols, sortOrder), nil
}

// intersect keeps the entries of order that survive in cols, preserving
// order's sequence.
func intersect(order, cols []string) []string {
	if len(order) == 0 {
		return nil
	}
	keep := make(map[string]bool, len(cols))
	for _, c := range cols {
		keep[c] = true
	}
	var out []string
	for _, c := range order {
		if keep[c] {
			out = append(out, c)
		}
	}
	return out
}
