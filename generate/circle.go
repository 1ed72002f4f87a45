// Package generate produces deterministic, seeded fuzz polygons for the
// decompose package's property tests: regular and perturbed star shapes
// whose edges self-intersect by construction, adapted from the teacher's
// circle/perlin-based geometry generators.
package generate

import (
	"math"

	"github.com/mclaeysb/simplepolygon/geom"
)

// RegularStarPolygon computes the self-intersecting "star polygon" ring
// traced by placing sides points evenly around a circle of the given
// radius and center, then connecting every point to the one skip steps
// further around (rather than the next one), the classic {sides/skip}
// star-polygon construction. A skip outside 1 < skip < sides panics. When
// gcd(sides, skip) == 1 the ring visits every point exactly once; otherwise
// it repeats points, and Decompose rejects it for its duplicate vertices.
//
// Grounded on the teacher's generate.RegularPolygon (circle.go), which
// places sides points around a circle and closes them in circular order;
// here they are closed in skip order instead, which is what turns a
// convex regular polygon into a self-intersecting star.
func RegularStarPolygon(center geom.XY, radius float64, sides, skip int) geom.Polygon {
	if sides <= 2 {
		panic(sides)
	}
	if skip <= 1 || skip >= sides {
		panic(skip)
	}

	points := make([]geom.XY, sides)
	for i := 0; i < sides; i++ {
		angle := math.Pi/2 + float64(i)/float64(sides)*2*math.Pi
		points[i] = geom.XY{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		}
	}

	ring := make(geom.Ring, 0, sides+1)
	idx := 0
	for i := 0; i < sides; i++ {
		ring = append(ring, points[idx])
		idx = (idx + skip) % sides
	}
	ring = append(ring, ring[0])

	return geom.Polygon{Rings: []geom.Ring{ring}}
}
