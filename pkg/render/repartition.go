package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/planviz/planviz/pkg/plan"
)

// repartitionGen renders repartition stages. The output stream count is the
// partition count from the partitioning spec — except for a repartition at
// the plan root, which has no consumer and therefore fans out to nothing.
type repartitionGen struct{ base }

func (g repartitionGen) Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	spec, _ := node.Property("partitioning")
	part, parsed := ctx.Dialect.Partitioning(spec)

	var detail []string
	if parsed {
		detail = append(detail, simplifyPartitioning(part))
	} else if spec != "" {
		detail = append(detail, spec)
	}
	if in, ok := node.Property("input_partitions"); ok {
		detail = append(detail, "input_partitions: "+in)
	}
	rect := ctx.drawNode(nodeLabel{Name: node.Operator, Detail: detail}, x, y)

	infos, err := g.processChildren(ctx, node, rect, x, y)
	if err != nil {
		return NodeInfo{}, err
	}

	count := sumCounts(infos)
	if parsed {
		count = part.Count
	}
	if isRoot {
		count = 0
	}

	cols, sortOrder := inheritedSchema(infos)
	if !orderPreserved(node, part, parsed) {
		sortOrder = nil
	}
	return g.finish(ctx, rect, x, y, count, cols, sortOrder), nil
}

// orderPreserved decides whether the input ordering survives the
// redistribution. Hash and round-robin interleave batches across streams,
// which breaks the ordering unless the stage explicitly preserves it or
// there was only one input partition to begin with. Other partitioning
// kinds leave each stream intact.
func orderPreserved(node *plan.Node, part plan.Partitioning, parsed bool) bool {
	if parsed && part.Kind != plan.PartitionHash && part.Kind != plan.PartitionRoundRobin {
		return true
	}
	if po, ok := node.Property("preserve_order"); ok && strings.EqualFold(strings.TrimSpace(po), "true") {
		return true
	}
	in, ok := node.Property("input_partitions")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(in))
	return err == nil && n == 1
}

// simplifyPartitioning renders a parsed partitioning spec without positional
// qualifiers: "Hash([a, b], 4)", "RoundRobinBatch(8)".
func simplifyPartitioning(p plan.Partitioning) string {
	if len(p.Columns) > 0 {
		return fmt.Sprintf("%s([%s], %d)", p.Kind, strings.Join(p.Columns, ", "), p.Count)
	}
	return fmt.Sprintf("%s(%d)", p.Kind, p.Count)
}
