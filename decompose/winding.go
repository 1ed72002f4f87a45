package decompose

import (
	"sort"

	"github.com/mclaeysb/simplepolygon/geom"
)

// convexityTolerance bounds the orientation predicate used at extremal
// vertices (seeding and the fast path), where near-collinear triples would
// otherwise be vulnerable to catastrophic cancellation. It is never used
// during walking, where the walker's orientation test uses zero tolerance.
const convexityTolerance = 1e-9

// queueEntry is one entry of the walker's work queue (§4.5): an
// intersection to start or resume a walk from, the predicted parent of the
// output ring that walk will produce, and its predicted winding.
type queueEntry struct {
	isect   int
	parent  int
	winding int
}

// windingFromOrientation maps the sign of a signed triangle area at an
// extremal vertex to a winding number: a left turn (positive area) seeds
// +1, a right turn (negative area) seeds -1. A collinear extremal triple
// (area within tolerance of zero) is a degenerate input that the spec
// leaves undefined; it is treated as +1.
func windingFromOrientation(o geom.Orientation) int {
	if o == geom.Clockwise {
		return -1
	}
	return +1
}

// ringVertexRange returns the contiguous range of g.Isects occupied by the
// ring-vertex intersections of ring r (see buildGraph step 1: these are
// laid down ring by ring, vertex by vertex, before any crossing ISECTs).
func ringVertexRange(g *Graph, r int) (start, end int) {
	for i := 0; i < r; i++ {
		start += len(g.PVList[i])
	}
	end = start + len(g.PVList[r])
	return
}

// leftmostRingVertexIsect returns the index (into g.Isects) of the
// ring-vertex intersection of ring r with the smallest x-coordinate,
// breaking ties by smallest y.
func leftmostRingVertexIsect(g *Graph, r int) int {
	start, end := ringVertexRange(g, r)
	best := start
	for i := start + 1; i < end; i++ {
		c, bc := g.Isects[i].Coord, g.Isects[best].Coord
		if c.X < bc.X || (c.X == bc.X && c.Y < bc.Y) {
			best = i
		}
	}
	return best
}

// findPredecessorIsect finds the intersection whose walk (along either
// edge 1 or edge 2) arrives at target, by the linear scan prescribed by
// §4.4. Ring-vertex intersections always have exactly one predecessor among
// the graph's other intersections, since every edge has a unique
// departure point. Ring-vertex intersections (index < g.N) only have
// NextIsectAlongRingAndEdge2 resolved, so only that slot is compared.
func findPredecessorIsect(g *Graph, target int) (int, bool) {
	for i, isect := range g.Isects {
		if (i >= g.N && isect.NextIsectAlongRingAndEdge1 == target) || isect.NextIsectAlongRingAndEdge2 == target {
			return i, true
		}
	}
	return 0, false
}

// seedWindings is the winding seeder (§4.4): for each input ring, it finds
// the leftmost ring-vertex intersection, determines the ring's initial
// winding via the convexity of the triple (predecessor, chosen, successor),
// and returns one queue entry per ring with parent -1.
//
// The returned slice is sorted so that the entry whose leftmost ISECT has
// the largest x-coordinate is last — i.e. first to be popped from a LIFO
// stack. This ordering, not the reverse, is what makes the walker's parent
// and winding predictions in §4.5 sound: reversing it produces incorrect
// parent assignments for rings nested inside rings.
func seedWindings(g *Graph) ([]queueEntry, error) {
	entries := make([]queueEntry, len(g.Polygon.Rings))
	for r := range g.Polygon.Rings {
		chosen := leftmostRingVertexIsect(g, r)
		pred, ok := findPredecessorIsect(g, chosen)
		if !ok {
			return nil, ErrGraphInconsistency
		}
		succ := g.Isects[chosen].NextIsectAlongRingAndEdge2

		orientation := geom.OrientationOf(
			g.Isects[pred].Coord,
			g.Isects[chosen].Coord,
			g.Isects[succ].Coord,
			convexityTolerance,
		)
		entries[r] = queueEntry{
			isect:   chosen,
			parent:  -1,
			winding: windingFromOrientation(orientation),
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return g.Isects[entries[i].isect].Coord.X < g.Isects[entries[j].isect].Coord.X
	})
	return entries, nil
}

// ringWinding determines a single simple ring's winding by the same
// extremal-vertex convexity test used by the seeder, for use by the fast
// path (§7) when the intersection finder returns no crossings at all.
func ringWinding(ring geom.Ring) int {
	n := ring.NumEdges()
	best := 0
	for i := 1; i < n; i++ {
		c, bc := ring[i], ring[best]
		if c.X < bc.X || (c.X == bc.X && c.Y < bc.Y) {
			best = i
		}
	}
	pred := ring[geom.FloorMod(best-1, n)]
	succ := ring.Vertex(best)
	orientation := geom.OrientationOf(pred, ring[best], succ, convexityTolerance)
	return windingFromOrientation(orientation)
}
