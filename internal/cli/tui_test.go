package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planviz/planviz/pkg/plan"
)

func inspectTree() *plan.Node {
	return &plan.Node{
		Operator:   "SortExec",
		Properties: map[string]string{"expr": "[a@0 ASC]"},
		Children: []*plan.Node{
			{
				Operator:   "DataSourceExec",
				Properties: map[string]string{"file_groups": "{2 groups: [[x], [y]]}", "projection": "[a@0]"},
			},
		},
	}
}

func TestNewPlanTreeModelFlattens(t *testing.T) {
	m := NewPlanTreeModel(inspectTree())

	if len(m.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.Rows))
	}
	if m.Rows[0].operator != "SortExec" || m.Rows[0].depth != 0 {
		t.Errorf("row 0 = %+v", m.Rows[0])
	}
	if m.Rows[1].operator != "DataSourceExec" || m.Rows[1].depth != 1 {
		t.Errorf("row 1 = %+v", m.Rows[1])
	}
	// Properties sorted by key.
	if m.Rows[1].props[0] != "file_groups={2 groups: [[x], [y]]}" {
		t.Errorf("props = %v", m.Rows[1].props)
	}
}

func TestPlanTreeModelNavigation(t *testing.T) {
	m := NewPlanTreeModel(inspectTree())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(PlanTreeModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	// Cursor clamps at the last row.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(PlanTreeModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(PlanTreeModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
}

func TestPlanTreeModelToggleProperties(t *testing.T) {
	m := NewPlanTreeModel(inspectTree())

	if strings.Contains(m.View(), "expr=[a@0 ASC]") {
		t.Error("properties should be collapsed initially")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PlanTreeModel)
	if !strings.Contains(m.View(), "expr=[a@0 ASC]") {
		t.Error("enter should reveal the selected operator's properties")
	}
}

func TestPlanTreeModelQuit(t *testing.T) {
	m := NewPlanTreeModel(inspectTree())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
}
