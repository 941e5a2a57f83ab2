package render

import (
	"github.com/planviz/planviz/pkg/errors"
	"github.com/planviz/planviz/pkg/plan"
)

// sortMergeJoinGen renders sort-merge joins. Both sides are merged stream
// by stream, so their stream counts must match; the output keeps that count
// and is sorted by the left-side join keys.
type sortMergeJoinGen struct{ base }

func (g sortMergeJoinGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	if len(node.Children) != 2 {
		return NodeInfo{}, errors.New(errors.ErrCodePlanCardinality,
			"%s expects exactly 2 children, got %d", node.Operator, len(node.Children))
	}

	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: joinDetail(ctx, node)}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}
	left, right := infos[0], infos[1]
	if left.InputArrowCount != right.InputArrowCount {
		return NodeInfo{}, errors.New(errors.ErrCodePlanArrowMismatch,
			"%s sides disagree on stream count: %d vs %d",
			node.Operator, left.InputArrowCount, right.InputArrowCount)
	}

	cols := mergeColumns(left.OutputColumns, right.OutputColumns)

	var sortOrder []string
	if on, ok := node.Property("on"); ok {
		for _, p := range ctx.Dialect.JoinKeys(on) {
			sortOrder = append(sortOrder, p[0])
		}
	}
	return g.finish(ctx, rect, x, y, left.InputArrowCount, cols, sortOrder), nil
}
