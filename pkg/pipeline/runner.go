package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planviz/planviz/pkg/cache"
	"github.com/planviz/planviz/pkg/observability"
	"github.com/planviz/planviz/pkg/plan"
	"github.com/planviz/planviz/pkg/render"
)

// Runner executes the pipeline with caching. It is stateless apart from the
// cache and logger, so one Runner can serve concurrent requests with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// uses the default keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	parseStart := time.Now()
	tree, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Tree = tree
	result.PlanHash = planHash(tree)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = tree.Count()

	opts.Logger.Info("parsed plan",
		"nodes", result.Stats.NodeCount,
		"depth", tree.Depth(),
		"duration", result.Stats.ParseTime)

	genStart := time.Now()
	docJSON, hit, err := r.generateWithCache(ctx, result.PlanHash, opts, func() ([]byte, error) {
		observability.Pipeline().OnGenerateStart(ctx, result.Stats.NodeCount)
		doc, err := render.Generate(tree, opts.Config, render.WithDialect(mustDialect(opts.Dialect)))
		if err != nil {
			observability.Pipeline().OnGenerateComplete(ctx, 0, time.Since(genStart), err)
			return nil, err
		}
		result.Document = doc
		result.Stats.ElementCount = len(doc.Elements)
		observability.Pipeline().OnGenerateComplete(ctx, len(doc.Elements), time.Since(genStart), nil)
		return doc.Marshal()
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.DocumentJSON = docJSON
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.DiagramHit = hit

	opts.Logger.Info("generated diagram",
		"elements", result.Stats.ElementCount,
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.renderWithCache(ctx, result, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// generateWithCache returns the serialized diagram document, from cache
// when possible.
func (r *Runner) generateWithCache(ctx context.Context, planHash string, opts Options, generate func() ([]byte, error)) ([]byte, bool, error) {
	key := r.Keyer.DiagramKey(planHash, cache.DiagramKeyOpts{
		Dialect:    opts.Dialect,
		ConfigHash: configHash(opts.Config),
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "diagram")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "diagram")
	}

	data, err := generate()
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, TTLDiagram); err == nil {
		observability.Cache().OnCacheSet(ctx, "diagram", len(data))
	}
	return data, false, nil
}

// renderWithCache returns all requested artifacts, entirely from cache when
// every format is present, rendering and writing back otherwise.
func (r *Runner) renderWithCache(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	docHash := cache.Hash(result.DocumentJSON)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: format})
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
		if allCached {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := renderArtifacts(ctx, result.Tree, result.DocumentJSON, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: format})
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// mustDialect resolves a dialect name already checked by
// ValidateAndSetDefaults.
func mustDialect(name string) plan.Dialect {
	d, _ := DialectByName(name)
	return d
}

func configHash(cfg render.Config) string {
	data, _ := json.Marshal(cfg)
	return cache.Hash(data)
}
