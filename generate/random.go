package generate

import (
	"math/rand"

	"github.com/mclaeysb/simplepolygon/geom"
)

// RandomSelfIntersectingPolygon generates a single-ring, deterministically
// seeded polygon whose edges self-intersect: a {sides/skip} star polygon
// (see RegularStarPolygon) jittered by Perlin noise, adapted from the
// teacher's cmd/gen regular-polygon-plus-Perlin-jitter recipe for
// generating irregular line strings. It is used by decompose's property
// tests to exercise the walker on a variety of self-intersecting shapes
// without hand-authoring fixtures for each one.
//
// sides must be at least 5 for a star construction to be possible. Not
// every vertex count admits a single-cycle star polygon (e.g. a hexagon's
// only divisors, 2 and 3, both share a factor with 6), so sides too small
// to have a coprime skip are bumped upward until one does.
//
// skip is chosen uniformly from the values 2..sides/2 (integer division)
// that are coprime with sides.
func RandomSelfIntersectingPolygon(rnd *rand.Rand, sides int) geom.Polygon {
	if sides < 5 {
		panic(sides)
	}
	sides, skip := pickCoprimeSkip(rnd, sides)
	radius := 10 + rnd.Float64()*10
	star := RegularStarPolygon(geom.XY{}, radius, sides, skip)
	amplitude := radius * (0.02 + rnd.Float64()*0.05)
	return jitterPolygon(star, amplitude, rnd)
}

// pickCoprimeSkip finds a skip in 2..sides/2 coprime with sides, bumping
// sides upward (at most a few times) if the requested vertex count admits
// no such skip at all. It returns the (possibly adjusted) sides alongside
// the chosen skip.
func pickCoprimeSkip(rnd *rand.Rand, sides int) (int, int) {
	for {
		var candidates []int
		for k := 2; k < sides/2+1; k++ {
			if gcd(k, sides) == 1 {
				candidates = append(candidates, k)
			}
		}
		if len(candidates) > 0 {
			return sides, candidates[rnd.Intn(len(candidates))]
		}
		sides++
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// RandomNestedFigureEightAndSquare builds a multi-ring fixture pairing a
// large outer square with a smaller, randomly seeded self-intersecting star
// nested inside it — the "nested figure-eight inside square" scenario
// described by the decomposition spec's testable properties, but with a
// randomized inner lobe count and jitter instead of a single fixed shape.
func RandomNestedFigureEightAndSquare(rnd *rand.Rand) geom.Polygon {
	outer := geom.Ring{
		{X: -20, Y: -20}, {X: 20, Y: -20}, {X: 20, Y: 20}, {X: -20, Y: 20}, {X: -20, Y: -20},
	}
	sides := 5 + rnd.Intn(4)
	inner := RandomSelfIntersectingPolygon(rnd, sides)
	const shrink = 0.3 // keeps the inner star well inside the +/-20 outer square
	shrunk := make(geom.Ring, len(inner.Rings[0]))
	for i, v := range inner.Rings[0] {
		shrunk[i] = v.Scale(shrink)
	}
	return geom.Polygon{Rings: []geom.Ring{outer, shrunk}}
}
