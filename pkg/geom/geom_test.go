package geom

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestEllipseEdgePoint(t *testing.T) {
	center := Point{X: 100, Y: 50}

	tests := []struct {
		name string
		p    Point
		w, h float64
		want Point
	}{
		{
			name: "probe at center returns center",
			p:    center,
			w:    40, h: 20,
			want: center,
		},
		{
			name: "horizontal ray hits semi-major axis",
			p:    Point{X: 200, Y: 50},
			w:    40, h: 20,
			want: Point{X: 120, Y: 50},
		},
		{
			name: "vertical ray hits semi-minor axis",
			p:    Point{X: 100, Y: 200},
			w:    40, h: 20,
			want: Point{X: 100, Y: 60},
		},
		{
			name: "vertical ray upward",
			p:    Point{X: 100, Y: -80},
			w:    40, h: 20,
			want: Point{X: 100, Y: 40},
		},
		{
			name: "degenerate axes return center",
			p:    Point{X: 150, Y: 90},
			w:    0, h: 0,
			want: center,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EllipseEdgePoint(tt.p, center, tt.w, tt.h)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("EllipseEdgePoint() = (%g, %g), want (%g, %g)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestEllipseEdgePointDiagonalOnBoundary(t *testing.T) {
	center := Point{X: 0, Y: 0}
	got := EllipseEdgePoint(Point{X: 30, Y: 40}, center, 60, 40)

	// The result must satisfy the ellipse equation (x/a)² + (y/b)² = 1.
	a, b := 30.0, 20.0
	v := (got.X/a)*(got.X/a) + (got.Y/b)*(got.Y/b)
	if !almostEqual(v, 1) {
		t.Errorf("edge point (%g, %g) not on boundary: %g", got.X, got.Y, v)
	}
	// And must lie along the original direction.
	if got.X <= 0 || got.Y <= 0 || !almostEqual(got.Y/got.X, 40.0/30.0) {
		t.Errorf("edge point (%g, %g) off the original ray", got.X, got.Y)
	}
}

func TestCenteredRegion(t *testing.T) {
	start, width := CenteredRegion(100, 200, 0.6)
	if !almostEqual(start, 140) || !almostEqual(width, 120) {
		t.Errorf("CenteredRegion() = (%g, %g), want (140, 120)", start, width)
	}

	start, width = CenteredRegion(0, 100, 1.0)
	if !almostEqual(start, 0) || !almostEqual(width, 100) {
		t.Errorf("full fraction = (%g, %g), want (0, 100)", start, width)
	}
}

func TestSpreadPositions(t *testing.T) {
	got := SpreadPositions(4, 0, 100)
	want := []float64{12.5, 37.5, 62.5, 87.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("pos[%d] = %g, want %g", i, got[i], want[i])
		}
	}

	if got := SpreadPositions(1, 40, 20); !almostEqual(got[0], 50) {
		t.Errorf("single position = %g, want 50", got[0])
	}
	if got := SpreadPositions(0, 0, 100); got != nil {
		t.Errorf("zero positions = %v, want nil", got)
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(Point{X: 0, Y: 10}, Point{X: 10, Y: 30})
	if !almostEqual(got.X, 5) || !almostEqual(got.Y, 20) {
		t.Errorf("Midpoint() = %+v, want (5, 20)", got)
	}
}
