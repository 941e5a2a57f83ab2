package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/planviz/planviz/pkg/plan"
)

// WriteJSON encodes a plan tree as indented JSON and writes it to w. The
// output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(tree *plan.Node, w io.Writer) error {
	if tree == nil {
		return fmt.Errorf("encode: nil plan tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a plan tree to a JSON file at path.
func ExportJSON(tree *plan.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(tree, f)
}
