package cli

import (
	"bytes"
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pkgio "github.com/planviz/planviz/pkg/io"
	"github.com/planviz/planviz/pkg/pipeline"
	"github.com/planviz/planviz/pkg/plan"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	dialect  string // plan-text dialect
	fromTree bool   // input is plan-tree JSON instead of plan text
}

// newInspectCmd creates the inspect command, an interactive terminal
// browser for plan trees.
func newInspectCmd() *cobra.Command {
	opts := inspectOpts{dialect: pipeline.DefaultDialect}

	cmd := &cobra.Command{
		Use:   "inspect <plan-file>",
		Short: "Browse a plan tree interactively",
		Long: `Browse a plan tree interactively in the terminal.

Operators are shown in tree order with their nesting depth; selecting one
reveals its raw properties. Useful for checking what the parser extracted
before rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dialect, "dialect", opts.dialect, "plan text dialect")
	cmd.Flags().BoolVar(&opts.fromTree, "tree", false, "input is plan-tree JSON instead of plan text")

	return cmd
}

// runInspect loads the plan and runs the inspector program.
func runInspect(ctx context.Context, input string, opts *inspectOpts) error {
	tree, err := loadPlan(ctx, input, opts.dialect, opts.fromTree)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewPlanTreeModel(tree), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// loadPlan reads a plan from a file or stdin, parsing text or decoding a
// tree JSON document.
func loadPlan(ctx context.Context, input, dialect string, fromTree bool) (*plan.Node, error) {
	data, err := readInput(input)
	if err != nil {
		return nil, err
	}
	if fromTree {
		return pkgio.ReadJSON(bytes.NewReader(data))
	}
	if _, err := pipeline.DialectByName(dialect); err != nil {
		return nil, err
	}
	return pipeline.Parse(ctx, pipeline.Options{PlanText: string(data), Dialect: dialect})
}
