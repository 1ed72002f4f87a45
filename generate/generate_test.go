package generate

import (
	"math/rand"
	"testing"

	"github.com/mclaeysb/simplepolygon/geom"
)

func TestRegularStarPolygonIsSingleClosedCycle(t *testing.T) {
	star := RegularStarPolygon(geom.XY{}, 10, 7, 3)
	ring := star.Rings[0]

	if !ring.Closed() {
		t.Fatal("star ring is not closed")
	}
	if got := ring.NumEdges(); got != 7 {
		t.Fatalf("NumEdges() = %d, want 7", got)
	}

	seen := make(map[geom.XY]bool)
	for _, v := range ring[:len(ring)-1] {
		if seen[v] {
			t.Fatalf("vertex %v repeated: skip does not cover every point exactly once", v)
		}
		seen[v] = true
	}
}

func TestRegularStarPolygonRejectsInvalidSkip(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range skip")
		}
	}()
	RegularStarPolygon(geom.XY{}, 10, 5, 1)
}

func TestJitterPolygonKeepsRingsClosed(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	star := RegularStarPolygon(geom.XY{}, 10, 7, 3)
	jittered := jitterPolygon(star, 0.5, rnd)

	ring := jittered.Rings[0]
	if !ring.Closed() {
		t.Fatal("jittered ring is not closed")
	}
	if len(ring) != len(star.Rings[0]) {
		t.Fatalf("jittered ring has %d points, want %d", len(ring), len(star.Rings[0]))
	}
}

func TestRandomSelfIntersectingPolygonIsDeterministic(t *testing.T) {
	a := RandomSelfIntersectingPolygon(rand.New(rand.NewSource(123)), 7)
	b := RandomSelfIntersectingPolygon(rand.New(rand.NewSource(123)), 7)

	ra, rb := a.Rings[0], b.Rings[0]
	if len(ra) != len(rb) {
		t.Fatalf("got different ring lengths %d vs %d for the same seed", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("vertex %d differs (%v vs %v) for the same seed", i, ra[i], rb[i])
		}
	}
}

func TestRandomNestedFigureEightAndSquareHasTwoRings(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	poly := RandomNestedFigureEightAndSquare(rnd)
	if len(poly.Rings) != 2 {
		t.Fatalf("got %d rings, want 2 (outer square + inner star)", len(poly.Rings))
	}
}
