package render

import "github.com/planviz/planviz/pkg/geom"

// Arrow distribution constants. Small fan-outs stay inside a centered
// sub-region so the drawing looks balanced; large fan-outs use the full
// rectangle width; very large ones are condensed to representatives.
const (
	// CenteredFraction is the width fraction of the centered sub-region.
	CenteredFraction = 0.6

	// RegionThreshold is the largest arrow count distributed inside the
	// centered sub-region; larger counts spread over the full width.
	RegionThreshold = 4

	// CondenseThreshold is the largest arrow count rendered in full.
	// Beyond it only the first two and last two arrows are drawn, with an
	// ellipsis marker replacing the middle.
	CondenseThreshold = 8

	// condensedShown is the number of representative arrows drawn for a
	// condensed fan-out: two before and two after the ellipsis.
	condensedShown = 4

	// minArrowSpacing is the preferred gap between the two arrows of a
	// condensed half-region.
	minArrowSpacing = 14.0
)

// ArrowLayout is the result of distributing a node's output arrows across
// its top edge. FullCount always reports the logical stream count, even
// when Positions holds only the condensed representatives.
type ArrowLayout struct {
	Positions []float64
	FullCount int
	Condensed bool
}

// ArrowCalculator computes arrow endpoint distributions. It is stateless;
// the zero value is ready to use.
type ArrowCalculator struct{}

// OutputPositions distributes n output arrows across the top edge of a
// rectangle spanning [x, x+w).
//
// n <= RegionThreshold: evenly inside the centered sub-region.
// n <= CondenseThreshold: evenly across the full width.
// Otherwise: condensed to 2+2 representatives in the first and second half
// of the centered zone, with minArrowSpacing between the pair of each half;
// if the halves are too narrow for that spacing, the four representatives
// fall back to an even spread across the zone.
func (ArrowCalculator) OutputPositions(n int, x, w float64) ArrowLayout {
	if n <= 0 {
		return ArrowLayout{FullCount: n}
	}

	if n <= CondenseThreshold {
		start, width := x, w
		if n <= RegionThreshold {
			start, width = geom.CenteredRegion(x, w, CenteredFraction)
		}
		return ArrowLayout{
			Positions: geom.SpreadPositions(n, start, width),
			FullCount: n,
		}
	}

	zoneStart, zoneWidth := geom.CenteredRegion(x, w, CenteredFraction)
	half := zoneWidth / 2

	positions := make([]float64, 0, condensedShown)
	if minArrowSpacing <= half {
		for i := 0; i < 2; i++ {
			center := zoneStart + half*(float64(i)+0.5)
			positions = append(positions, center-minArrowSpacing/2, center+minArrowSpacing/2)
		}
	} else {
		positions = geom.SpreadPositions(condensedShown, zoneStart, zoneWidth)
	}

	return ArrowLayout{Positions: positions, FullCount: n, Condensed: true}
}

// EndpointPositions distributes n arrow endpoints across the bottom edge
// region [x, x+w) of a receiving rectangle. The centered-region rule
// matches OutputPositions but endpoints are never condensed: the count here
// is the number of arrows actually drawn.
func (ArrowCalculator) EndpointPositions(n int, x, w float64) []float64 {
	if n <= 0 {
		return nil
	}
	start, width := x, w
	if n <= RegionThreshold {
		start, width = geom.CenteredRegion(x, w, CenteredFraction)
	}
	return geom.SpreadPositions(n, start, width)
}
