package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/planviz/planviz/pkg/io"
	"github.com/planviz/planviz/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	dialect string // plan-text dialect
	output  string // output file path (stdout if empty)
}

// newParseCmd creates the parse command. It turns EXPLAIN-style plan text
// into a plan-tree JSON document that "planviz render --tree" and external
// tools can consume.
func newParseCmd() *cobra.Command {
	opts := parseOpts{dialect: pipeline.DefaultDialect}

	cmd := &cobra.Command{
		Use:   "parse [plan-file]",
		Short: "Parse plan text into a plan-tree JSON document",
		Long: `Parse EXPLAIN-style plan text into a plan-tree JSON document.

The tree mirrors the plan structure: one object per operator with its raw
properties and ordered children. Round-trips are lossless, so a captured
tree renders identically to the original text.

Examples:
  planviz parse plan.txt -o plan.json
  psql -c 'EXPLAIN ...' | planviz parse`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runParse(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.dialect, "dialect", opts.dialect, "plan text dialect")

	return cmd
}

// runParse reads plan text, parses it, and writes the tree as JSON to
// opts.output (or stdout).
func runParse(ctx context.Context, input string, opts *parseOpts) error {
	logger := loggerFromContext(ctx)

	if _, err := pipeline.DialectByName(opts.dialect); err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	tree, err := pipeline.Parse(ctx, pipeline.Options{PlanText: string(data), Dialect: opts.dialect})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d operators across %d levels", tree.Count(), tree.Depth()))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pkgio.WriteJSON(tree, out); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		logger.Infof("Wrote plan tree to %s", opts.output)
	}
	return nil
}
