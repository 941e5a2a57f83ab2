package pipeline

import (
	"context"

	"github.com/planviz/planviz/pkg/nodelink"
	"github.com/planviz/planviz/pkg/plan"
)

// renderArtifacts produces the requested formats. The excalidraw format is
// the already-serialized document; the remaining formats go through the
// DOT/Graphviz path on the plan tree.
func renderArtifacts(ctx context.Context, tree *plan.Node, docJSON []byte, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))

	var dot string
	if opts.needsGraphviz() {
		dot = nodelink.ToDOT(tree, nodelink.Options{Detailed: opts.Detailed})
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatExcalidraw:
			out[format] = docJSON
		case FormatDOT:
			out[format] = []byte(dot)
		case FormatSVG:
			svg, err := nodelink.RenderSVG(ctx, dot)
			if err != nil {
				return nil, err
			}
			out[format] = svg
		case FormatPNG:
			png, err := nodelink.RenderPNG(ctx, dot)
			if err != nil {
				return nil, err
			}
			out[format] = png
		}
	}
	return out, nil
}
