package excalidraw

import "fmt"

// Deterministic bases for the generated pseudo-values. The editor only
// requires seeds and timestamps to be present, not meaningful, so fixed
// bases keep identical inputs producing byte-identical documents.
const (
	seedBase  = 1_000_003
	seedStep  = 7919
	nonceBase = 2_000_033
	nonceStep = 104_729
	clockBase = 1_700_000_000_000 // ms
	clockStep = 7
)

// IDGenerator produces element IDs, z-order indices, seeds, version nonces,
// and timestamps from plain counters. No randomness: two generators fed the
// same call sequence produce the same values, which is what makes diagram
// output reproducible.
//
// A generator is scoped to one diagram build. Long-lived hosts must create a
// fresh instance (or call Reset) per build; sharing one across builds leaks
// counter state between documents.
type IDGenerator struct {
	elements int
	groups   int
	seeds    int
	nonces   int
	indices  int
	clock    int
}

// NewIDGenerator returns a generator with all counters at zero.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Reset returns all counters to zero, making the instance equivalent to a
// fresh one.
func (g *IDGenerator) Reset() {
	*g = IDGenerator{}
}

// NextElementID returns a unique element ID. IDs are monotonic in creation
// order, which also keeps them stable across identical runs.
func (g *IDGenerator) NextElementID(kind string) string {
	g.elements++
	return fmt.Sprintf("%s-%06d", kind, g.elements)
}

// NextGroupID returns a unique grouping ID, used to group a node's
// rectangle with its labels.
func (g *IDGenerator) NextGroupID() string {
	g.groups++
	return fmt.Sprintf("group-%06d", g.groups)
}

// NextIndex returns the next fractional z-order index. Indices are
// zero-padded so lexicographic order matches creation order.
func (g *IDGenerator) NextIndex() string {
	g.indices++
	return fmt.Sprintf("a%06d", g.indices)
}

// NextSeed returns the next deterministic rendering seed.
func (g *IDGenerator) NextSeed() int64 {
	g.seeds++
	return seedBase + int64(g.seeds)*seedStep
}

// NextVersionNonce returns the next deterministic version nonce.
func (g *IDGenerator) NextVersionNonce() int64 {
	g.nonces++
	return nonceBase + int64(g.nonces)*nonceStep
}

// Now returns the next deterministic "updated" timestamp in milliseconds.
func (g *IDGenerator) Now() int64 {
	g.clock++
	return clockBase + int64(g.clock)*clockStep
}
