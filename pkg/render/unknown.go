package render

import "github.com/planviz/planviz/pkg/plan"

// unknownGen is the fallback for operator tags without a dedicated strategy.
// The stage is drawn in the attention color and treated as a pass-through so
// one exotic operator never aborts a whole diagram.
type unknownGen struct{ base }

func (g unknownGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	rect := ctx.drawNode(nodeLabel{
		Name:      node.Operator,
		NameColor: AttentionColor,
		Detail:    []string{"unimplemented"},
	}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	count := sumCounts(infos)
	if len(infos) == 0 {
		count = 1
	}
	cols, sortOrder := inheritedSchema(infos)
	return g.finish(ctx, rect, x, y, count, cols, sortOrder), nil
}
