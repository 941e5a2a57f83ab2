package excalidraw

import (
	"encoding/json"

	"github.com/planviz/planviz/pkg/errors"
)

// Schema constants for the document envelope.
const (
	DocumentType    = "excalidraw"
	DocumentVersion = 2
	DocumentSource  = "https://github.com/planviz/planviz"
)

// AppState is the default view state embedded in every document.
// GridSize must serialize as an explicit null.
type AppState struct {
	GridSize            *int   `json:"gridSize"`
	ViewBackgroundColor string `json:"viewBackgroundColor"`
}

// Document is the root of a diagram file.
type Document struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Source   string         `json:"source"`
	Elements []*Element     `json:"elements"`
	AppState AppState       `json:"appState"`
	Files    map[string]any `json:"files"`
}

// NewDocument returns an empty document with the schema envelope filled in.
// Elements and Files are non-nil so they serialize as [] and {}.
func NewDocument() *Document {
	return &Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Source:   DocumentSource,
		Elements: []*Element{},
		AppState: AppState{ViewBackgroundColor: "#ffffff"},
		Files:    map[string]any{},
	}
}

// Marshal serializes the document with two-space indentation, the format
// the editor itself writes.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal diagram document")
	}
	return data, nil
}
