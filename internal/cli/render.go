package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/planviz/planviz/pkg/cache"
	pkgio "github.com/planviz/planviz/pkg/io"
	"github.com/planviz/planviz/pkg/pipeline"
	"github.com/planviz/planviz/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "excalidraw", "dot", "svg", "png"
	dialect  string   // plan-text dialect
	config   string   // TOML diagram config file path
	detailed bool     // property detail in DOT labels
	fromTree bool     // input is plan-tree JSON instead of plan text
	noCache  bool     // disable the local render cache
	refresh  bool     // bypass cache reads (results are still written back)
}

// formatExts is the set of recognized output extensions, used by basePath
// to strip format suffixes from the --output flag.
var formatExts = map[string]bool{
	pipeline.FormatExcalidraw: true,
	pipeline.FormatDOT:        true,
	pipeline.FormatSVG:        true,
	pipeline.FormatPNG:        true,
}

// newRenderCmd creates the render command for generating diagrams.
// It reads plan text (or a plan-tree JSON file with --tree), runs the
// parse → generate → render pipeline, and writes one file per format.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{dialect: pipeline.DefaultDialect}

	cmd := &cobra.Command{
		Use:   "render [plan-file]",
		Short: "Render a query plan as a diagram",
		Long: `Render a query plan as a positioned diagram.

The input is EXPLAIN-style plan text read from a file or stdin. Pass --tree
to read a plan-tree JSON file produced by "planviz parse" instead.

Examples:
  planviz render plan.txt                          # plan.excalidraw
  planviz render plan.txt -f svg,png               # plan.svg + plan.png
  planviz render plan.json --tree -f dot -o out.dot
  cat plan.txt | planviz render -f excalidraw      # diagram JSON on stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): excalidraw (default), dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.dialect, "dialect", opts.dialect, "plan text dialect")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML diagram config file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show operator properties in DOT output")
	cmd.Flags().BoolVar(&opts.fromTree, "tree", false, "input is plan-tree JSON instead of plan text")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the local render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache reads")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["excalidraw"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatExcalidraw}
	}
	return strings.Split(s, ",")
}

// runRender reads the plan input, executes the pipeline, and writes the
// requested artifacts.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Dialect:  opts.dialect,
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   logger,
	}
	if opts.fromTree {
		tree, err := pkgio.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return err
		}
		popts.Tree = tree
	} else {
		popts.PlanText = string(data)
	}
	if opts.config != "" {
		cfg, err := render.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		popts.Config = cfg
	}

	runner := pipeline.NewRunner(openCache(ctx, opts.noCache), nil, logger)
	defer runner.Close()

	result, err := executeRender(ctx, runner, popts)
	if err != nil {
		return err
	}

	// Single format to stdout: emit the artifact bytes and nothing else.
	if len(opts.formats) == 1 && toStdout(opts.output, input) {
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	paths, err := writeArtifacts(ctx, result.Artifacts, input, opts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d-operator plan", result.Stats.NodeCount)
	printStats(result.Stats.NodeCount, result.Stats.ElementCount, result.CacheInfo.DiagramHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// executeRender runs the pipeline, showing a spinner at the default log
// level. With --verbose the pipeline's stage logs replace the spinner.
func executeRender(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	if logger.GetLevel() <= charmlog.DebugLevel {
		return runner.Execute(ctx, popts)
	}

	popts.Logger = charmlog.NewWithOptions(io.Discard, charmlog.Options{})
	sp := newSpinnerWithContext(ctx, "rendering "+strings.Join(popts.Formats, ", "))
	sp.Start()
	result, err := runner.Execute(ctx, popts)
	sp.Stop()
	if sp.Cancelled() {
		return nil, ctx.Err()
	}
	return result, err
}

// openCache opens the file-backed render cache. Cache failures degrade to
// no caching rather than failing the render.
func openCache(ctx context.Context, disabled bool) cache.Cache {
	if disabled {
		return nil
	}
	logger := loggerFromContext(ctx)
	dir, err := cacheDir()
	if err != nil {
		logger.Warnf("Render cache disabled: %v", err)
		return nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warnf("Render cache disabled: %v", err)
		return nil
	}
	return c
}

// toStdout reports whether the artifact should go to stdout: an explicit
// "-" output, or stdin input with no output path to derive a name from.
func toStdout(output, input string) bool {
	if output == "-" {
		return true
	}
	return output == "" && (input == "" || input == "-")
}

// writeArtifacts writes each rendered format to its own file, concurrently,
// and returns the sorted list of written paths.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, input string, opts *renderOpts) ([]string, error) {
	if toStdout(opts.output, input) {
		return nil, fmt.Errorf("multiple formats require --output")
	}

	// Single format with an explicit output file keeps the name as given.
	targets := make(map[string]string, len(artifacts))
	if len(opts.formats) == 1 && opts.output != "" {
		targets[opts.formats[0]] = opts.output
	} else {
		base := basePath(opts.output, input)
		for format := range artifacts {
			targets[format] = base + "." + format
		}
	}

	g, _ := errgroup.WithContext(ctx)
	for format, path := range targets {
		g.Go(func() error {
			out, err := openOutput(path)
			if err != nil {
				return err
			}
			defer out.Close()
			if _, err := out.Write(artifacts[format]); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(targets))
	for _, p := range targets {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
