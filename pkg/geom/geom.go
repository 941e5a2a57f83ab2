// Package geom provides the small amount of 2-D math the diagram layout
// needs: ellipse-boundary intersection for arrow anchoring, centered-region
// computation for arrow endpoint distribution, and midpoints.
package geom

import "math"

// Point is a position in diagram coordinates (y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// EllipseEdgePoint returns the point where the ray from the ellipse's center
// through p crosses the ellipse boundary. The ellipse is axis-aligned,
// centered at center, with the given total width and height.
//
// Solving the ellipse equation along the direction vector d = p - center
// gives the scale s = 1 / sqrt((dx/a)² + (dy/b)²) with a, b the semi-axes.
// When p coincides with the center, or the ellipse-normalized length of d is
// zero (degenerate axes), the center is returned unchanged.
func EllipseEdgePoint(p, center Point, width, height float64) Point {
	dx := p.X - center.X
	dy := p.Y - center.Y
	if dx == 0 && dy == 0 {
		return center
	}

	a := width / 2
	b := height / 2
	var norm float64
	if a != 0 {
		norm += (dx / a) * (dx / a)
	}
	if b != 0 {
		norm += (dy / b) * (dy / b)
	}
	if norm == 0 {
		return center
	}

	s := 1 / math.Sqrt(norm)
	return Point{X: center.X + dx*s, Y: center.Y + dy*s}
}

// CenteredRegion returns the start and width of a sub-region of the given
// fraction, centered inside the span [x, x+width].
func CenteredRegion(x, width, fraction float64) (start, regionWidth float64) {
	regionWidth = width * fraction
	start = x + (width-regionWidth)/2
	return start, regionWidth
}

// SpreadPositions distributes n x-coordinates evenly across [start,
// start+width], leaving a half-step margin at both ends. n <= 0 yields nil.
func SpreadPositions(n int, start, width float64) []float64 {
	if n <= 0 {
		return nil
	}
	step := width / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*(float64(i)+0.5)
	}
	return out
}
