package render

import "github.com/planviz/planviz/pkg/plan"

// coalesceBatchesGen renders batch-coalescing stages: a pure pass-through
// for stream count and schema.
type coalesceBatchesGen struct{ base }

func (g coalesceBatchesGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	var detail []string
	if tbs, ok := node.Property("target_batch_size"); ok {
		detail = append(detail, "target_batch_size: "+tbs)
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
	return g.finish(ctx, rect, x, y, sumCounts(infos), cols, sortOrder), nil
}

// coalescePartitionsGen renders partition-collapsing stages: all input
// streams merge into a single output stream, schema and ordering passing
// through unchanged.
type coalescePartitionsGen struct{ base }

func (g coalescePartitionsGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	rect := ctx.drawNode(nodeLabel{Name: node.Operator}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	cols, sortOrder := inheritedSchema(infos)
	return g.finish(ctx, rect, x, y, 1, cols, sortOrder), nil
}
