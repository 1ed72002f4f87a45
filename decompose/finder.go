package decompose

import "github.com/mclaeysb/simplepolygon/geom"

// IntersectionRecord is the result of the segment-intersection engine
// collaborator described by the decomposition specification: for a single
// pair of edges crossing strictly in their interiors, it carries the
// crossing point, the fractional parameter of the crossing point on each
// edge, and a uniqueness flag set on exactly one of the pair of records
// produced for that crossing (one record per incoming-edge viewpoint).
type IntersectionRecord struct {
	Point geom.XY

	Ring0, Edge0 int
	Frac0        float64

	Ring1, Edge1 int
	Frac1        float64

	Unique bool
}

// findIntersections is the intersection finder adapter (§4.2 of the
// decomposition spec). No third-party segment-intersection library in the
// retrieval pack exposes this exact two-record-per-crossing, fractional-
// parameter contract, so it is implemented directly here; see DESIGN.md for
// why this single predicate is kept on the standard library rather than an
// imported geometry package. Input vertices are assumed pairwise distinct
// (enforced by geom.Normalize), so every crossing found is a strict
// interior crossing: no endpoint coincidences are possible.
func findIntersections(p geom.Polygon) []IntersectionRecord {
	type edgeRef struct {
		ring, edge int
		a, b       geom.XY
	}
	var edges []edgeRef
	for r, ring := range p.Rings {
		for e := 0; e < ring.NumEdges(); e++ {
			edges = append(edges, edgeRef{
				ring: r,
				edge: e,
				a:    ring[e],
				b:    ring.Vertex(e),
			})
		}
	}

	var records []IntersectionRecord
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			ei, ej := edges[i], edges[j]
			t, u, pt, ok := segmentIntersection(ei.a, ei.b, ej.a, ej.b)
			if !ok {
				continue
			}
			records = append(records,
				IntersectionRecord{
					Point:  pt,
					Ring0:  ei.ring, Edge0: ei.edge, Frac0: t,
					Ring1: ej.ring, Edge1: ej.edge, Frac1: u,
					Unique: true,
				},
				IntersectionRecord{
					Point:  pt,
					Ring0:  ej.ring, Edge0: ej.edge, Frac0: u,
					Ring1: ei.ring, Edge1: ei.edge, Frac1: t,
					Unique: false,
				},
			)
		}
	}
	return records
}

// segmentIntersection finds the strict-interior crossing of segment a0->a1
// with segment b0->b1, returning the fractional parameter of the crossing
// on each segment and the crossing point. ok is false if the segments are
// parallel, collinear, or cross only at or beyond an endpoint.
func segmentIntersection(a0, a1, b0, b1 geom.XY) (t, u float64, pt geom.XY, ok bool) {
	rX, rY := a1.X-a0.X, a1.Y-a0.Y
	sX, sY := b1.X-b0.X, b1.Y-b0.Y

	denom := rX*sY - rY*sX
	if denom == 0 {
		return 0, 0, geom.XY{}, false
	}

	qpX, qpY := b0.X-a0.X, b0.Y-a0.Y
	t = (qpX*sY - qpY*sX) / denom
	u = (qpX*rY - qpY*rX) / denom

	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return 0, 0, geom.XY{}, false
	}

	pt = geom.XY{X: a0.X + t*rX, Y: a0.Y + t*rY}
	return t, u, pt, true
}
