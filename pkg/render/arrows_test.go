package render

import (
	"math"
	"testing"
)

func TestOutputPositionsSmallCountsUseCenteredRegion(t *testing.T) {
	var calc ArrowCalculator

	for n := 1; n <= RegionThreshold; n++ {
		lay := calc.OutputPositions(n, 100, 180)
		if len(lay.Positions) != n {
			t.Fatalf("n=%d: got %d positions", n, len(lay.Positions))
		}
		if lay.Condensed {
			t.Fatalf("n=%d: unexpectedly condensed", n)
		}
		if lay.FullCount != n {
			t.Fatalf("n=%d: FullCount = %d", n, lay.FullCount)
		}

		// 60% centered region of [100, 280) is [136, 244).
		for _, p := range lay.Positions {
			if p < 136 || p > 244 {
				t.Errorf("n=%d: position %.2f outside centered region", n, p)
			}
		}
	}
}

func TestOutputPositionsMediumCountsUseFullWidth(t *testing.T) {
	var calc ArrowCalculator

	lay := calc.OutputPositions(8, 0, 160)
	if len(lay.Positions) != 8 || lay.Condensed {
		t.Fatalf("got %d positions, condensed=%v", len(lay.Positions), lay.Condensed)
	}
	// Even spread with half-step margins: step 20, first at 10.
	for i, p := range lay.Positions {
		want := 10 + 20*float64(i)
		if math.Abs(p-want) > 1e-9 {
			t.Errorf("position[%d] = %.2f, want %.2f", i, p, want)
		}
	}
}

func TestOutputPositionsLargeCountsCondense(t *testing.T) {
	var calc ArrowCalculator

	lay := calc.OutputPositions(12, 0, 180)
	if !lay.Condensed {
		t.Fatal("expected condensed layout")
	}
	if len(lay.Positions) != 4 {
		t.Fatalf("got %d representative positions, want 4", len(lay.Positions))
	}
	if lay.FullCount != 12 {
		t.Fatalf("FullCount = %d, want 12 (condensation must not change it)", lay.FullCount)
	}

	// Zone is [36, 144); representatives pair up around the half centers
	// with the minimum spacing between each pair.
	if got := lay.Positions[1] - lay.Positions[0]; math.Abs(got-minArrowSpacing) > 1e-9 {
		t.Errorf("first pair spacing = %.2f, want %.2f", got, minArrowSpacing)
	}
	if got := lay.Positions[3] - lay.Positions[2]; math.Abs(got-minArrowSpacing) > 1e-9 {
		t.Errorf("second pair spacing = %.2f, want %.2f", got, minArrowSpacing)
	}
	for i := 1; i < len(lay.Positions); i++ {
		if lay.Positions[i] <= lay.Positions[i-1] {
			t.Fatalf("positions not strictly increasing: %v", lay.Positions)
		}
	}
}

func TestOutputPositionsNarrowNodeFallsBackToSpread(t *testing.T) {
	var calc ArrowCalculator

	// Zone width 0.6*40 = 24, halves of 12 < minArrowSpacing.
	lay := calc.OutputPositions(20, 0, 40)
	if !lay.Condensed || len(lay.Positions) != 4 {
		t.Fatalf("got condensed=%v, %d positions", lay.Condensed, len(lay.Positions))
	}
	for i := 1; i < len(lay.Positions); i++ {
		if lay.Positions[i] <= lay.Positions[i-1] {
			t.Fatalf("positions not strictly increasing: %v", lay.Positions)
		}
	}
}

func TestOutputPositionsZeroCount(t *testing.T) {
	var calc ArrowCalculator
	lay := calc.OutputPositions(0, 0, 180)
	if len(lay.Positions) != 0 || lay.Condensed || lay.FullCount != 0 {
		t.Fatalf("unexpected layout for zero count: %+v", lay)
	}
}

func TestEndpointPositionsNeverCondense(t *testing.T) {
	var calc ArrowCalculator

	for _, n := range []int{1, 4, 8, 12} {
		got := calc.EndpointPositions(n, 0, 180)
		if len(got) != n {
			t.Errorf("n=%d: got %d endpoints", n, len(got))
		}
	}
	if got := calc.EndpointPositions(0, 0, 180); got != nil {
		t.Errorf("n=0: got %v, want nil", got)
	}
}
