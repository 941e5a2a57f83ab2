package render

import (
	"github.com/planviz/planviz/pkg/excalidraw"
	"github.com/planviz/planviz/pkg/plan"
)

// diagramMargin is the blank border around the generated diagram.
const diagramMargin = 40.0

// Generator is the per-operator strategy contract. A generator draws its
// own rectangle, labels and detail text, recurses into children through
// [Context.Generate], draws the arrows from each child into itself, and
// returns its NodeInfo — most critically the output arrow count/positions
// and the propagated schema.
type Generator interface {
	Generate(ctx *Context, node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error)
}

// Context bundles the shared services of one diagram build: the resolved
// configuration, the dialect, the deterministic ID source, the element
// factory, the arrow calculator, and the append-only output element list.
// Exactly one context exists per build and is passed by pointer through the
// whole recursion, since all shapes must land in one shared list.
type Context struct {
	Config  Config
	Dialect plan.Dialect
	IDs     *excalidraw.IDGenerator
	Factory *excalidraw.Factory
	Arrows  ArrowCalculator

	elements []*excalidraw.Element
	byID     map[string]*excalidraw.Element
	registry map[string]Generator
	fallback Generator
}

// Option customizes a diagram build.
type Option func(*Context)

// WithDialect overrides the plan-text dialect (default: plan.DataFusion).
func WithDialect(d plan.Dialect) Option {
	return func(ctx *Context) { ctx.Dialect = d }
}

// newContext builds the per-build context with a fresh ID generator.
func newContext(cfg Config, opts ...Option) *Context {
	cfg.ApplyDefaults()
	ids := excalidraw.NewIDGenerator()
	ctx := &Context{
		Config:  cfg,
		Dialect: plan.DataFusion{},
		IDs:     ids,
		Factory: excalidraw.NewFactory(ids, excalidraw.Style{
			NodeStroke:  cfg.NodeStroke,
			ArrowStroke: cfg.ArrowStroke,
		}),
		registry: newRegistry(),
		fallback: unknownGen{},
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Add appends elements to the build's output list.
func (ctx *Context) Add(els ...*excalidraw.Element) {
	if ctx.byID == nil {
		ctx.byID = make(map[string]*excalidraw.Element)
	}
	for _, el := range els {
		ctx.byID[el.ID] = el
	}
	ctx.elements = append(ctx.elements, els...)
}

// elementByID looks up an already-added element, used to bind arrows to the
// rectangles recorded in NodeInfo. Nil for unknown IDs.
func (ctx *Context) elementByID(id string) *excalidraw.Element {
	return ctx.byID[id]
}

// mark returns the current element count, for later recentering of a
// freshly generated subtree via elementsSince.
func (ctx *Context) mark() int { return len(ctx.elements) }

func (ctx *Context) elementsSince(mark int) []*excalidraw.Element {
	return ctx.elements[mark:]
}

// Generate dispatches a node to its operator strategy. Unknown operator
// tags fall back to the generic renderer and are never an error.
func (ctx *Context) Generate(node *plan.Node, x, y float64, isRoot bool) (NodeInfo, error) {
	gen, ok := ctx.registry[node.Operator]
	if !ok {
		gen = ctx.fallback
	}
	return gen.Generate(ctx, node, x, y, isRoot)
}

// newRegistry maps operator tags to their layout strategies. The
// table is flat on purpose: one strategy per tag, no inheritance depth.
func newRegistry() map[string]Generator {
	scan := scanGen{}
	return map[string]Generator{
		"DataSourceExec": scan,
		"ParquetExec":    scan,
		"CsvExec":        scan,
		"ArrowExec":      scan,
		"MemoryExec":     scan,

		"FilterExec":     filterGen{},
		"ProjectionExec": projectionGen{},
		"SortExec":       sortGen{},
		"AggregateExec":  aggregateGen{},

		"CoalesceBatchesExec":    coalesceBatchesGen{},
		"CoalescePartitionsExec": coalescePartitionsGen{},
		"LocalLimitExec":         localLimitGen{},
		"GlobalLimitExec":        globalLimitGen{},

		"RepartitionExec":         repartitionGen{},
		"SortPreservingMergeExec": sortPreservingMergeGen{},

		"UnionExec":         unionGen{},
		"InterleaveExec":    unionGen{},
		"HashJoinExec":      hashJoinGen{},
		"SortMergeJoinExec": sortMergeJoinGen{},
		"CrossJoinExec":     crossJoinGen{},
	}
}

// Generate walks the plan tree and produces the positioned diagram
// document. Each call builds a fresh context (and ID generator), so
// identical trees produce byte-identical documents.
func Generate(tree *plan.Node, cfg Config, opts ...Option) (*excalidraw.Document, error) {
	ctx := newContext(cfg, opts...)

	total := ctx.Config.subtreeWidth(tree)
	rootX := diagramMargin + total/2 - ctx.Config.NodeWidth/2
	if _, err := ctx.Generate(tree, rootX, diagramMargin, true); err != nil {
		return nil, err
	}

	doc := excalidraw.NewDocument()
	doc.Elements = append(doc.Elements, ctx.elements...)
	return doc, nil
}
