// Package excalidraw models the diagram-file schema consumed by the
// Excalidraw editor, and provides the primitives the layout engine emits:
// a deterministic ID generator, an element factory for the four shape types
// (rectangle, text, arrow, ellipse), and approximate text measurement.
//
// The schema is load-bearing: the editor rejects files with missing fields,
// so required-but-unused fields (locked, isDeleted, frameId, ...) are always
// serialized, never omitted.
package excalidraw

// Element types emitted by the generator.
const (
	TypeRectangle = "rectangle"
	TypeText      = "text"
	TypeArrow     = "arrow"
	TypeEllipse   = "ellipse"
)

// Binding attaches an arrow endpoint to another element so the editor keeps
// the arrow connected when the element is moved.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

// BoundElement is the back-reference an element keeps to arrows (or
// container text) bound to it.
type BoundElement struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Roundness controls corner rounding on rectangles and arrows.
type Roundness struct {
	Type int `json:"type"`
}

// Element is one shape in the elements array. A single struct covers all
// four types; type-specific fields are pointers or omitempty so rectangles
// don't carry arrow baggage, while schema-required fields serialize
// unconditionally.
type Element struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	X               float64         `json:"x"`
	Y               float64         `json:"y"`
	Width           float64         `json:"width"`
	Height          float64         `json:"height"`
	Angle           float64         `json:"angle"`
	StrokeColor     string          `json:"strokeColor"`
	BackgroundColor string          `json:"backgroundColor"`
	FillStyle       string          `json:"fillStyle"`
	StrokeWidth     int             `json:"strokeWidth"`
	StrokeStyle     string          `json:"strokeStyle"`
	Roughness       int             `json:"roughness"`
	Opacity         int             `json:"opacity"`
	GroupIDs        []string        `json:"groupIds"`
	FrameID         *string         `json:"frameId"`
	Index           string          `json:"index"`
	Roundness       *Roundness      `json:"roundness"`
	Seed            int64           `json:"seed"`
	Version         int             `json:"version"`
	VersionNonce    int64           `json:"versionNonce"`
	IsDeleted       bool            `json:"isDeleted"`
	BoundElements   []*BoundElement `json:"boundElements"`
	Updated         int64           `json:"updated"`
	Link            *string         `json:"link"`
	Locked          bool            `json:"locked"`

	// Text fields
	Text          string  `json:"text,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
	FontFamily    int     `json:"fontFamily,omitempty"`
	TextAlign     string  `json:"textAlign,omitempty"`
	VerticalAlign string  `json:"verticalAlign,omitempty"`
	ContainerID   *string `json:"containerId,omitempty"`
	OriginalText  string  `json:"originalText,omitempty"`
	AutoResize    *bool   `json:"autoResize,omitempty"`
	LineHeight    float64 `json:"lineHeight,omitempty"`

	// Arrow fields
	Points             [][]float64 `json:"points,omitempty"`
	LastCommittedPoint *[]float64  `json:"lastCommittedPoint,omitempty"`
	StartBinding       *Binding    `json:"startBinding,omitempty"`
	EndBinding         *Binding    `json:"endBinding,omitempty"`
	StartArrowhead     *string     `json:"startArrowhead,omitempty"`
	EndArrowhead       *string     `json:"endArrowhead,omitempty"`
	Elbowed            *bool       `json:"elbowed,omitempty"`
}

// Bounds returns the axis-aligned bounding box of the element.
func (e *Element) Bounds() (minX, minY, maxX, maxY float64) {
	return e.X, e.Y, e.X + e.Width, e.Y + e.Height
}

// Shift moves the element (and its arrow points' implicit origin) by dx, dy.
// Arrow points are relative to x/y, so shifting the origin is sufficient.
func (e *Element) Shift(dx, dy float64) {
	e.X += dx
	e.Y += dy
}
