package excalidraw

import "testing"

func TestIDGeneratorUniqueMonotonic(t *testing.T) {
	g := NewIDGenerator()

	seenIDs := make(map[string]bool)
	var lastSeed, lastNonce, lastClock int64
	var lastIndex string

	for i := 0; i < 100; i++ {
		id := g.NextElementID("rectangle")
		if seenIDs[id] {
			t.Fatalf("duplicate element ID %q", id)
		}
		seenIDs[id] = true

		if seed := g.NextSeed(); seed <= lastSeed {
			t.Fatalf("seed %d not increasing after %d", seed, lastSeed)
		} else {
			lastSeed = seed
		}
		if nonce := g.NextVersionNonce(); nonce <= lastNonce {
			t.Fatalf("nonce %d not increasing after %d", nonce, lastNonce)
		} else {
			lastNonce = nonce
		}
		if ts := g.Now(); ts <= lastClock {
			t.Fatalf("timestamp %d not increasing after %d", ts, lastClock)
		} else {
			lastClock = ts
		}
		if idx := g.NextIndex(); idx <= lastIndex {
			t.Fatalf("index %q not increasing after %q", idx, lastIndex)
		} else {
			lastIndex = idx
		}
	}
}

func TestIDGeneratorDeterministic(t *testing.T) {
	run := func() []any {
		g := NewIDGenerator()
		var out []any
		for i := 0; i < 20; i++ {
			out = append(out, g.NextElementID("text"), g.NextSeed(), g.NextIndex(), g.Now(), g.NextGroupID())
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("run divergence at %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestIDGeneratorReset(t *testing.T) {
	g := NewIDGenerator()
	first := g.NextElementID("arrow")
	g.NextSeed()
	g.Reset()
	if got := g.NextElementID("arrow"); got != first {
		t.Errorf("after Reset NextElementID = %q, want %q", got, first)
	}
}
