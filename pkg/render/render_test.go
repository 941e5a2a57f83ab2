package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planviz/planviz/pkg/excalidraw"
	"github.com/planviz/planviz/pkg/plan"
)

func countByType(doc *excalidraw.Document, typ string) int {
	n := 0
	for _, el := range doc.Elements {
		if el.Type == typ {
			n++
		}
	}
	return n
}

func TestGenerateElementCensus(t *testing.T) {
	tree := node("SortPreservingMergeExec", map[string]string{"expr": "[a@0 ASC]"},
		node("SortExec", map[string]string{"expr": "[a@0 ASC]"},
			scanNode("{3 groups: [[f1], [f2], [f3]]}")))

	doc, err := Generate(tree, Config{})
	require.NoError(t, err)

	if got := countByType(doc, excalidraw.TypeRectangle); got != 3 {
		t.Errorf("rectangles = %d, want one per plan node (3)", got)
	}
	// scan -> sort carries 3 streams, sort -> merge carries 3; the root has
	// no consumer and so no outbound arrows.
	if got := countByType(doc, excalidraw.TypeArrow); got != 6 {
		t.Errorf("arrows = %d, want 6", got)
	}
}

func TestGenerateArrowsAreBound(t *testing.T) {
	tree := node("FilterExec", map[string]string{"expr": "b@1 > 0"},
		scanNode("{2 groups: [[f1], [f2]]}"))

	doc, err := Generate(tree, Config{})
	require.NoError(t, err)

	for _, el := range doc.Elements {
		if el.Type != excalidraw.TypeArrow {
			continue
		}
		if el.StartBinding == nil || el.EndBinding == nil {
			t.Errorf("arrow %s missing bindings", el.ID)
		}
	}
}

func TestGenerateCondensesLargeFanOut(t *testing.T) {
	tree := node("FilterExec", map[string]string{"expr": "a@0 > 0"},
		node("DataSourceExec", map[string]string{
			"file_groups": "{12 groups: [[f]]}",
			"projection":  "[a@0]",
		}))

	doc, err := Generate(tree, Config{})
	require.NoError(t, err)

	if got := countByType(doc, excalidraw.TypeArrow); got != 4 {
		t.Errorf("arrows = %d, want 4 condensed representatives", got)
	}
	found := false
	for _, el := range doc.Elements {
		if el.Type == excalidraw.TypeText && el.Text == "…" {
			found = true
		}
	}
	if !found {
		t.Error("missing ellipsis marker for condensed fan-out")
	}
}

func TestGenerateHashJoinDrawsEllipse(t *testing.T) {
	tree := node("HashJoinExec", map[string]string{"join_type": "Inner", "on": "[(a@0, x@0)]"},
		scanNode("{2 groups: [[f1], [f2]]}"),
		node("DataSourceExec", map[string]string{
			"file_groups": "{3 groups: [[g1], [g2], [g3]]}",
			"projection":  "[x@0]",
		}))

	doc, err := Generate(tree, Config{})
	require.NoError(t, err)

	if got := countByType(doc, excalidraw.TypeEllipse); got != 1 {
		t.Fatalf("ellipses = %d, want 1", got)
	}
	// 2 build-side arrows into the ellipse, 3 probe-side into the join.
	if got := countByType(doc, excalidraw.TypeArrow); got != 5 {
		t.Errorf("arrows = %d, want 5", got)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	text := `SortPreservingMergeExec: [ts@0 ASC]
  SortExec: expr=[ts@0 ASC], preserve_partitioning=[true]
    AggregateExec: mode=FinalPartitioned, gby=[host@0 as host], aggr=[count(v@1)]
      RepartitionExec: partitioning=Hash([host@0], 4), input_partitions=3
        AggregateExec: mode=Partial, gby=[host@0 as host], aggr=[count(v@1)]
          DataSourceExec: file_groups={3 groups: [[a], [b], [c]]}, projection=[host@0, v@1]`

	tree, err := plan.ParseText(text)
	require.NoError(t, err)

	first, err := Generate(tree, Config{})
	require.NoError(t, err)
	second, err := Generate(tree, Config{})
	require.NoError(t, err)

	a, err := first.Marshal()
	require.NoError(t, err)
	b, err := second.Marshal()
	require.NoError(t, err)

	if !bytes.Equal(a, b) {
		t.Fatal("two builds of the same plan produced different documents")
	}
}
