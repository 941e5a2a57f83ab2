package render

import (
	"github.com/planviz/planviz/pkg/errors"
	"github.com/planviz/planviz/pkg/plan"
)

// localLimitGen renders per-stream limit stages: a pass-through that caps
// each stream independently.
type localLimitGen struct{ base }

func (g localLimitGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	var detail []string
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

// globalLimitGen renders whole-result limit stages. A global limit is only
// well-formed over exactly one child with exactly one input stream; planners
// place a merge or coalesce below it, so anything else means the plan is
// inconsistent.
type globalLimitGen struct{ base }

func (g globalLimitGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	if len(node.Children) != 1 {
		return NodeInfo{}, errors.New(errors.ErrCodePlanCardinality,
			"%s expects exactly 1 child, got %d", node.Operator, len(node.Children))
	}

	var detail []string
	if skip, ok := node.Property("skip"); ok {
		detail = append(detail, "skip: "+skip)
	}
	if fetch, ok := node.Property("fetch"); ok {
		detail = append(detail, "fetch: "+fetch)
	}
	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}
	if n := sumCounts(infos); n != 1 {
		return NodeInfo{}, errors.New(errors.ErrCodePlanArrowMismatch,
			"%s expects a single input stream, got %d", node.Operator, n)
	}

	cols, sortOrder := inheritedSchema(infos)
	return g.finish(ctx, rect, x, y, 1, cols, sortOrder), nil
}
