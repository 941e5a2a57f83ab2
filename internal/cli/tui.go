package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planviz/planviz/pkg/plan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// planRow is one operator line in the inspector, flattened from the tree in
// depth-first pre-order.
type planRow struct {
	depth    int
	operator string
	props    []string // "key=value" lines, sorted by key
	expanded bool
}

// PlanTreeModel is the bubbletea model for the interactive plan inspector.
// Up/down moves between operators, enter toggles the property view for the
// selected operator, and q quits.
type PlanTreeModel struct {
	Rows   []planRow
	Cursor int
	Height int
	Offset int
}

// NewPlanTreeModel flattens the plan tree into inspector rows.
func NewPlanTreeModel(tree *plan.Node) PlanTreeModel {
	m := PlanTreeModel{Height: 20}
	m.flatten(tree, 0)
	return m
}

func (m *PlanTreeModel) flatten(n *plan.Node, depth int) {
	if n == nil {
		return
	}
	row := planRow{depth: depth, operator: n.Operator}
	keys := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		row.props = append(row.props, fmt.Sprintf("%s=%s", k, n.Properties[k]))
	}
	m.Rows = append(m.Rows, row)
	for _, c := range n.Children {
		m.flatten(c, depth+1)
	}
}

// Init implements tea.Model.
func (m PlanTreeModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m PlanTreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 4
		if m.Height < 5 {
			m.Height = 5
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
			}
		case "enter", " ":
			if len(m.Rows) > 0 {
				m.Rows[m.Cursor].expanded = !m.Rows[m.Cursor].expanded
			}
		case "e":
			expand := !m.allExpanded()
			for i := range m.Rows {
				m.Rows[i].expanded = expand
			}
		case "g", "home":
			m.Cursor = 0
		case "G", "end":
			m.Cursor = len(m.Rows) - 1
		}
	}
	m.scroll()
	return m, nil
}

func (m PlanTreeModel) allExpanded() bool {
	for _, r := range m.Rows {
		if !r.expanded {
			return false
		}
	}
	return len(m.Rows) > 0
}

// scroll keeps the cursor inside the visible window.
func (m *PlanTreeModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// View implements tea.Model.
func (m PlanTreeModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Plan inspector"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d operators", len(m.Rows))))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}
	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]
		indent := strings.Repeat("  ", row.depth)

		line := listNormalStyle.Render(row.operator)
		prefix := "  "
		if i == m.Cursor {
			line = listSelectedStyle.Render(row.operator)
			prefix = listSelectedStyle.Render("> ")
		}
		marker := ""
		if len(row.props) > 0 && !row.expanded {
			marker = listDimStyle.Render(fmt.Sprintf("  [%d props]", len(row.props)))
		}
		b.WriteString(prefix + indent + line + marker + "\n")

		if row.expanded {
			for _, p := range row.props {
				b.WriteString("  " + indent + "  " + listDimStyle.Render(p) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move · enter properties · e expand all · q quit"))
	return b.String()
}
