package render

import (
	"github.com/planviz/planviz/pkg/errors"
	"github.com/planviz/planviz/pkg/plan"
)

// crossJoinGen renders cross joins. The left side is buffered and replayed
// against every right-side stream, so the output count is the larger of the
// two sides; no ordering survives the product.
type crossJoinGen struct{ base }

func (g crossJoinGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	if len(node.Children) != 2 {
		return NodeInfo{}, errors.New(errors.ErrCodePlanCardinality,
			"%s expects exactly 2 children, got %d", node.Operator, len(node.Children))
	}

	rect := ctx.drawNode(nodeLabel{Name: node.Operator}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}
	left, right := infos[0], infos[1]

	count := left.InputArrowCount
	if right.InputArrowCount > count {
		count = right.InputArrowCount
	}

	cols := mergeColumns(left.OutputColumns, right.OutputColumns)
	return g.finish(ctx, rect, x, y, count, cols, nil), nil
}
