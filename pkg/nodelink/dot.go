// Package nodelink exports plan trees as Graphviz node-link diagrams: a
// quick structural view for terminals and docs, complementing the editable
// diagram documents produced by [pkg/render].
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/planviz/planviz/pkg/plan"
)

// Options configures node-link rendering.
type Options struct {
	// Detailed includes operator properties in node labels. When false,
	// only the operator tag is shown.
	Detailed bool
}

// ToDOT converts a plan tree to Graphviz DOT. Edges point from child to
// parent with leaves ranked at the bottom, matching the upward data flow of
// the generated diagrams. Render the result with [RenderSVG] or [RenderPNG].
func ToDOT(tree *plan.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := map[*plan.Node]string{}
	next := 0
	tree.Walk(func(n *plan.Node) {
		ids[n] = fmt.Sprintf("n%d", next)
		next++
		fmt.Fprintf(&buf, "  %s [label=%q];\n", ids[n], fmtLabel(n, opts.Detailed))
	})

	buf.WriteString("\n")
	tree.Walk(func(n *plan.Node) {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %s -> %s;\n", ids[c], ids[n])
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *plan.Node, detailed bool) string {
	if !detailed || len(n.Properties) == 0 {
		return n.Operator
	}
	parts := make([]string, 0, len(n.Properties))
	for _, k := range slices.Sorted(maps.Keys(n.Properties)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, n.Properties[k]))
	}
	return n.Operator + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders DOT to SVG via Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG, true)
}

// RenderPNG renders DOT to PNG via Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG, false)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format, normalize bool) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if normalize {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root SVG tag so the viewBox starts at the
// origin and explicit pixel dimensions are present, which embeds cleanly in
// browsers and docs.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
