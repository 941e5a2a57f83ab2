package render

import (
	"strings"

	"github.com/planviz/planviz/pkg/excalidraw"
)

// Engine colors that are not user-configurable: the classification palette
// for column labels, detail text, and the unknown-operator attention color.
const (
	SortedColor    = "#2f9e44"
	UnsortedColor  = "#868e96"
	DetailColor    = "#495057"
	AttentionColor = "#e03131"
)

// labelPad is the horizontal gap between an arrow and its column label.
const labelPad = 8.0

// Run is a merged sequence of consecutive columns sharing the same color
// classification, pre-joined with comma separators. Merging keeps the
// number of emitted text shapes down and visually groups sorted runs.
type Run struct {
	Text   string
	Sorted bool
}

// ColumnRuns groups an ordered column list into color runs. A column is
// classified as sorted when it appears in sortOrder.
func ColumnRuns(cols, sortOrder []string) []Run {
	if len(cols) == 0 {
		return nil
	}

	sorted := make(map[string]bool, len(sortOrder))
	for _, c := range sortOrder {
		sorted[c] = true
	}

	var runs []Run
	for _, col := range cols {
		cls := sorted[col]
		if len(runs) > 0 && runs[len(runs)-1].Sorted == cls {
			runs[len(runs)-1].Text += ", " + col
			continue
		}
		runs = append(runs, Run{Text: col, Sorted: cls})
	}

	// Comma separators between runs attach to the preceding run so the
	// rendered label reads as one list.
	for i := 0; i < len(runs)-1; i++ {
		runs[i].Text += ", "
	}
	return runs
}

// drawColumnLabel renders the column list of a data flow as adjacent text
// runs. When leftAlign is false the label extends rightward from anchorX;
// otherwise it ends at anchorX and extends leftward, for flows approaching
// the parent from the left.
func (ctx *Context) drawColumnLabel(cols, sortOrder []string, anchorX, y float64, leftAlign bool) {
	runs := ColumnRuns(cols, sortOrder)
	if len(runs) == 0 {
		return
	}

	fs := ctx.Config.FontSize
	x := anchorX + labelPad
	if leftAlign {
		var total float64
		for _, r := range runs {
			total += excalidraw.MeasureText(r.Text, fs)
		}
		x = anchorX - labelPad - total
	}

	for _, r := range runs {
		color := UnsortedColor
		if r.Sorted {
			color = SortedColor
		}
		el := ctx.Factory.Text(x, y, r.Text, fs, color)
		ctx.Add(el)
		x += el.Width
	}
}

// drawNode emits a stage's rectangle, operator-name label, and detail
// lines, all sharing one group ID so the editor moves them together.
// Returns the rectangle element for arrow binding.
func (ctx *Context) drawNode(node nodeLabel, x, y float64) *excalidraw.Element {
	cfg := ctx.Config
	group := ctx.IDs.NextGroupID()

	rect := ctx.Factory.Rectangle(x, y, cfg.NodeWidth, cfg.NodeHeight)
	rect.GroupIDs = []string{group}
	ctx.Add(rect)

	nameColor := node.NameColor
	if nameColor == "" {
		nameColor = cfg.NodeStroke
	}
	nameW := excalidraw.MeasureText(node.Name, cfg.LabelFontSize)
	name := ctx.Factory.Text(x+(cfg.NodeWidth-nameW)/2, y+6, node.Name, cfg.LabelFontSize, nameColor)
	name.GroupIDs = []string{group}
	ctx.Add(name)

	lineY := y + 6 + cfg.LabelFontSize*excalidraw.DefaultLineHeight + 2
	for _, line := range node.Detail {
		line = truncateLine(line, cfg)
		w := excalidraw.MeasureText(line, cfg.DetailFontSize)
		el := ctx.Factory.Text(x+(cfg.NodeWidth-w)/2, lineY, line, cfg.DetailFontSize, DetailColor)
		el.GroupIDs = []string{group}
		ctx.Add(el)
		lineY += cfg.DetailFontSize * excalidraw.DefaultLineHeight
	}

	return rect
}

// nodeLabel bundles what drawNode needs to render a stage.
type nodeLabel struct {
	Name      string
	NameColor string   // empty means the configured node stroke
	Detail    []string // property lines rendered under the name
}

// truncateLine shortens a detail line that would overflow the rectangle.
func truncateLine(line string, cfg Config) string {
	maxW := cfg.NodeWidth - 12
	if excalidraw.MeasureText(line, cfg.DetailFontSize) <= maxW {
		return line
	}
	for len(line) > 4 {
		line = strings.TrimSpace(line[:len(line)-1])
		if excalidraw.MeasureText(line+"…", cfg.DetailFontSize) <= maxW {
			break
		}
	}
	return line + "…"
}
