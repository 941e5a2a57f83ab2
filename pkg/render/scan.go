package render

import (
	"fmt"

	"github.com/planviz/planviz/pkg/plan"
)

// scanGen renders data-source leaves. The output stream count comes from the
// scan's file-group layout, one stream per group.
type scanGen struct{ base }

func (g scanGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	count := 1
	var detail []string

	if spec, ok := node.Property("file_groups"); ok {
		if n := ctx.Dialect.FileGroupCount(spec); n > 0 {
			count = n
			noun := "file groups"
			if n == 1 {
				noun = "file group"
			}
			detail = append(detail, fmt.Sprintf("%d %s", n, noun))
		}
	}
	if ff, ok := node.Property("file_format"); ok {
		detail = append(detail, ff)
	}

	var cols []string
	if proj, ok := node.Property("projection"); ok {
		cols = ctx.Dialect.Columns(proj)
	}

	var sortOrder []string
	if ord, ok := node.Property("output_ordering"); ok {
		for _, k := range ctx.Dialect.SortOrder(ord) {
			sortOrder = append(sortOrder, k.Column)
		}
	}

	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)
	return g.finish(ctx, rect, x, y, count, cols, sortOrder), nil
}
