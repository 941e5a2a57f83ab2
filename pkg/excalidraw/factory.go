package excalidraw

// Style holds the stroke colors the factory applies to shapes. Text color
// is chosen per call since labels are color-coded by the layout engine.
type Style struct {
	NodeStroke  string // rectangles and ellipses
	ArrowStroke string // arrows
}

// DefaultStyle is used when a Style field is left empty.
var DefaultStyle = Style{
	NodeStroke:  "#1e1e1e",
	ArrowStroke: "#1e1e1e",
}

// Factory builds the four primitive shapes with consistent default styling
// and deterministic identity fields. One factory (with its IDGenerator) is
// scoped to one diagram build.
type Factory struct {
	ids   *IDGenerator
	style Style
}

// NewFactory creates a factory drawing identity fields from ids. Empty
// style fields fall back to DefaultStyle.
func NewFactory(ids *IDGenerator, style Style) *Factory {
	if style.NodeStroke == "" {
		style.NodeStroke = DefaultStyle.NodeStroke
	}
	if style.ArrowStroke == "" {
		style.ArrowStroke = DefaultStyle.ArrowStroke
	}
	return &Factory{ids: ids, style: style}
}

// newElement fills the identity and schema-required fields shared by every
// shape type.
func (f *Factory) newElement(typ string) *Element {
	return &Element{
		ID:              f.ids.NextElementID(typ),
		Type:            typ,
		Angle:           0,
		StrokeColor:     f.style.NodeStroke,
		BackgroundColor: "transparent",
		FillStyle:       "solid",
		StrokeWidth:     1,
		StrokeStyle:     "solid",
		Roughness:       1,
		Opacity:         100,
		GroupIDs:        []string{},
		Index:           f.ids.NextIndex(),
		Seed:            f.ids.NextSeed(),
		Version:         1,
		VersionNonce:    f.ids.NextVersionNonce(),
		BoundElements:   []*BoundElement{},
		Updated:         f.ids.Now(),
	}
}

// Rectangle builds a stage rectangle with rounded corners.
func (f *Factory) Rectangle(x, y, w, h float64) *Element {
	el := f.newElement(TypeRectangle)
	el.X, el.Y, el.Width, el.Height = x, y, w, h
	el.Roundness = &Roundness{Type: 3}
	return el
}

// Ellipse builds an auxiliary ellipse (e.g. a hash-build structure).
func (f *Factory) Ellipse(x, y, w, h float64) *Element {
	el := f.newElement(TypeEllipse)
	el.X, el.Y, el.Width, el.Height = x, y, w, h
	return el
}

// Text builds a free-standing text label. Width and height are estimated
// from the text so the editor doesn't re-wrap the label.
func (f *Factory) Text(x, y float64, text string, fontSize float64, color string) *Element {
	el := f.newElement(TypeText)
	el.X, el.Y = x, y
	el.Width = MeasureText(text, fontSize)
	el.Height = fontSize * DefaultLineHeight
	el.StrokeColor = color
	el.Text = text
	el.OriginalText = text
	el.FontSize = fontSize
	el.FontFamily = 1
	el.TextAlign = "left"
	el.VerticalAlign = "top"
	el.LineHeight = DefaultLineHeight
	autoResize := true
	el.AutoResize = &autoResize
	return el
}

// Arrow builds an arrow from (x1, y1) to (x2, y2) bound to the given start
// and end elements. Bindings are registered on both bound elements so the
// editor keeps the arrow attached when shapes move; pass nil to leave an
// endpoint unbound (used for ellipsis-condensed decorative arrows).
func (f *Factory) Arrow(x1, y1, x2, y2 float64, start, end *Element) *Element {
	el := f.newElement(TypeArrow)
	el.StrokeColor = f.style.ArrowStroke
	el.Roughness = 0
	el.Roundness = &Roundness{Type: 2}
	el.X, el.Y = x1, y1
	dx, dy := x2-x1, y2-y1
	el.Width, el.Height = abs(dx), abs(dy)
	el.Points = [][]float64{{0, 0}, {dx, dy}}
	head := "arrow"
	el.EndArrowhead = &head

	if start != nil {
		el.StartBinding = &Binding{ElementID: start.ID, Focus: 0, Gap: 1}
		start.BoundElements = append(start.BoundElements, &BoundElement{ID: el.ID, Type: TypeArrow})
	}
	if end != nil {
		el.EndBinding = &Binding{ElementID: end.ID, Focus: 0, Gap: 1}
		end.BoundElements = append(end.BoundElements, &BoundElement{ID: el.ID, Type: TypeArrow})
	}
	return el
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
