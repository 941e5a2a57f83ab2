package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/planviz/planviz/pkg/cache"
	"github.com/planviz/planviz/pkg/observability"
	"github.com/planviz/planviz/pkg/plan"
)

// Parse produces the plan tree for a run: the pre-built tree when one was
// supplied, the parsed plan text otherwise.
func Parse(ctx context.Context, opts Options) (*plan.Node, error) {
	if opts.Tree != nil {
		return opts.Tree, nil
	}

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.Dialect)
	tree, err := plan.ParseText(opts.PlanText)
	count := 0
	if tree != nil {
		count = tree.Count()
	}
	observability.Pipeline().OnParseComplete(ctx, opts.Dialect, count, time.Since(start), err)
	return tree, err
}

// planHash computes the content hash of a tree's canonical JSON form, so
// text plans and imported JSON plans describing the same tree share cache
// entries.
func planHash(tree *plan.Node) string {
	data, _ := json.Marshal(tree)
	return cache.Hash(data)
}
