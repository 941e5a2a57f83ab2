// Package pipeline provides the parse → generate → render pipeline shared
// by the CLI and the server.
//
// The pipeline has three stages:
//
//  1. Parse: turn EXPLAIN-style plan text (or an imported JSON tree) into a
//     [plan.Node] tree
//  2. Generate: lay out the tree into a positioned diagram document
//  3. Render: produce the requested artifacts (diagram JSON, DOT, SVG, PNG)
//
// Generation and rendering are cached by content hash; parsing is cheap
// enough to always run. Create a Runner and execute:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    PlanText: text,
//	    Formats:  []string{pipeline.FormatExcalidraw, pipeline.FormatSVG},
//	})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planviz/planviz/pkg/excalidraw"
	"github.com/planviz/planviz/pkg/plan"
	"github.com/planviz/planviz/pkg/render"
)

// Output formats.
const (
	FormatExcalidraw = "excalidraw"
	FormatDOT        = "dot"
	FormatSVG        = "svg"
	FormatPNG        = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatExcalidraw: true,
	FormatDOT:        true,
	FormatSVG:        true,
	FormatPNG:        true,
}

// DefaultDialect is the plan-text dialect assumed when none is given.
const DefaultDialect = "datafusion"

// Cache TTLs per stage.
const (
	TTLDiagram  = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// dialects maps dialect names to implementations. Registered statically;
// there is exactly one today.
var dialects = map[string]plan.Dialect{
	DefaultDialect: plan.DataFusion{},
}

// DialectByName resolves a dialect name. Unknown names are an error rather
// than a silent fallback.
func DialectByName(name string) (plan.Dialect, error) {
	if name == "" {
		name = DefaultDialect
	}
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("unknown dialect: %q (must be one of: datafusion)", name)
	}
	return d, nil
}

// Options contains all configuration for a pipeline run. The struct
// supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of PlanText or Tree must be set; Tree
	// skips the text parser (used by the JSON import path).
	PlanText string     `json:"plan_text,omitempty"`
	Tree     *plan.Node `json:"tree,omitempty"`
	Dialect  string     `json:"dialect,omitempty"`

	// Generate options.
	Config render.Config `json:"config,omitempty"`

	// Render options.
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // property detail in DOT labels

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed plan.
	Tree *plan.Node

	// PlanHash is the content hash of the canonical plan JSON, used as the
	// diagram cache key and exposed by the API.
	PlanHash string

	// Document is the generated diagram. Nil when it came from cache and
	// only DocumentJSON was materialized.
	Document *excalidraw.Document

	// DocumentJSON is the serialized diagram document.
	DocumentJSON []byte

	// Artifacts holds the rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	ElementCount int
	ParseTime    time.Duration
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	DiagramHit bool
	RenderHit  bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: excalidraw, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent: repeated calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.PlanText == "" && o.Tree == nil {
		return fmt.Errorf("plan_text or tree is required")
	}
	if _, err := DialectByName(o.Dialect); err != nil {
		return err
	}
	if o.Dialect == "" {
		o.Dialect = DefaultDialect
	}

	o.Config.ApplyDefaults()

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatExcalidraw}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// needsGraphviz reports whether any requested format goes through the
// DOT/Graphviz path.
func (o *Options) needsGraphviz() bool {
	for _, f := range o.Formats {
		if f == FormatDOT || f == FormatSVG || f == FormatPNG {
			return true
		}
	}
	return false
}
