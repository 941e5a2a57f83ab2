// Package cache provides the caching layer used by the pipeline and the
// server: generated diagram documents keyed by plan-text hash, and rendered
// artifacts keyed by document hash. Backends exist for local files (CLI),
// Redis (server), and a null cache for tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache is the backend contract. Get reports a miss with hit=false and a
// nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys for the two cacheable stages of the pipeline.
type Keyer interface {
	// DiagramKey keys a generated diagram document by the hash of its plan
	// text plus everything else that shapes the output.
	DiagramKey(planHash string, opts DiagramKeyOpts) string

	// ArtifactKey keys a rendered artifact (SVG, PNG) by the hash of the
	// diagram document it was rendered from.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts are the inputs, besides the plan text itself, that change
// the generated document.
type DiagramKeyOpts struct {
	Dialect    string
	ConfigHash string
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
}

// DefaultKeyer hashes the option structs into the key so any option change
// is a miss rather than a stale hit.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey implements Keyer.
func (*DefaultKeyer) DiagramKey(planHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", planHash, opts)
}

// ArtifactKey implements Keyer.
func (*DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
