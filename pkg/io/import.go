package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/planviz/planviz/pkg/plan"
)

// ReadJSON decodes a plan tree from r and validates its structure: every
// node must carry a non-empty operator tag. ReadJSON does not close r; the
// returned tree is independent of it.
func ReadJSON(r io.Reader) (*plan.Node, error) {
	var tree plan.Node
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&tree, "root"); err != nil {
		return nil, err
	}
	return &tree, nil
}

// ImportJSON reads a plan tree from the JSON file at path.
func ImportJSON(path string) (*plan.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func validate(n *plan.Node, at string) error {
	if n.Operator == "" {
		return fmt.Errorf("%s: missing operator tag", at)
	}
	for i, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%s: child %d is null", at, i)
		}
		if err := validate(c, fmt.Sprintf("%s/%s[%d]", at, n.Operator, i)); err != nil {
			return err
		}
	}
	return nil
}
