package decompose

import (
	"testing"

	"github.com/mclaeysb/simplepolygon/geom"
)

// TestBuildGraphRingVertexIsectsOccupyFirstN checks §8 invariant 1: the
// first N intersections correspond one-to-one with input ring vertices,
// with ringAndEdge1/2 referring to the previous/current edge within the
// same ring.
func TestBuildGraphRingVertexIsectsOccupyFirstN(t *testing.T) {
	fig8 := geom.Ring{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 0, Y: 0}}
	p, n, err := geom.Normalize(geom.Polygon{Rings: []geom.Ring{fig8}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	records := findIntersections(p)
	if len(records) == 0 {
		t.Fatal("expected the figure-eight ring to self-intersect")
	}

	g, err := buildGraph(p, n, records)
	if err != nil {
		t.Fatalf("buildGraph: %v", err)
	}

	if len(g.Isects) <= n {
		t.Fatalf("expected more than %d intersections (ring vertices plus crossings), got %d", n, len(g.Isects))
	}

	for i := 0; i < n; i++ {
		isect := g.Isects[i]
		if isect.RingAndEdge1.Ring != isect.RingAndEdge2.Ring {
			t.Errorf("isect %d: edge1 ring %d != edge2 ring %d", i, isect.RingAndEdge1.Ring, isect.RingAndEdge2.Ring)
		}
		ring := p.Rings[isect.RingAndEdge2.Ring]
		wantEdge1 := geom.FloorMod(isect.RingAndEdge2.Edge-1, len(ring)-1)
		if isect.RingAndEdge1.Edge != wantEdge1 {
			t.Errorf("isect %d: edge1 = %d, want %d (edge2 %d minus one)", i, isect.RingAndEdge1.Edge, wantEdge1, isect.RingAndEdge2.Edge)
		}
		// The coordinate stored on the ISECT must actually be the vertex
		// shared by edge1 (incoming) and edge2 (outgoing), not some other
		// vertex of the ring.
		wantCoord := ring.Vertex(wantEdge1)
		if isect.Coord != wantCoord {
			t.Errorf("isect %d: coord = %v, want %v (the vertex shared by edge1 %d and edge2 %d)", i, isect.Coord, wantCoord, isect.RingAndEdge1.Edge, isect.RingAndEdge2.Edge)
		}
		if isect.Coord != ring.Vertex(isect.RingAndEdge1.Edge) {
			t.Errorf("isect %d: coord = %v is not the terminal vertex of edge1 %d", i, isect.Coord, isect.RingAndEdge1.Edge)
		}
		if isect.RingAndEdge1Walkable {
			t.Errorf("isect %d: edge1 (incoming) should start non-walkable", i)
		}
		if !isect.RingAndEdge2Walkable {
			t.Errorf("isect %d: edge2 (outgoing) should start walkable", i)
		}
	}

	for i := n; i < len(g.Isects); i++ {
		isect := g.Isects[i]
		if !isect.RingAndEdge1Walkable || !isect.RingAndEdge2Walkable {
			t.Errorf("crossing isect %d: both sides should start walkable", i)
		}
	}

	// Ring-vertex isect 1 sits at vertex (2,0), the start of edge 1
	// (v1 -> v2), which is crossed by edge 3 (v3 -> v0) at the
	// figure-eight's pinch point (1,1). Its NextIsectAlongRingAndEdge2
	// must resolve to that crossing isect, not the zero value: per
	// spec.md's step 6 override, ring-vertex isects only ever have their
	// outgoing-edge slot (RingAndEdge2) filled, never RingAndEdge1.
	pinchIdx := -1
	for i := n; i < len(g.Isects); i++ {
		if g.Isects[i].Coord == (geom.XY{X: 1, Y: 1}) {
			pinchIdx = i
		}
	}
	if pinchIdx == -1 {
		t.Fatal("expected a crossing isect at the figure-eight's pinch point (1,1)")
	}
	if got := g.Isects[1].NextIsectAlongRingAndEdge2; got != pinchIdx {
		t.Errorf("isect 1 (vertex (2,0)) NextIsectAlongRingAndEdge2 = %d, want %d (the pinch-point crossing isect)", got, pinchIdx)
	}
}

// TestGraphLookupIsectMissingCoordinate exercises the lookupIsect error
// path directly: a coordinate with no matching intersection in the R-tree
// must surface ErrGraphInconsistency.
func TestGraphLookupIsectMissingCoordinate(t *testing.T) {
	square := geom.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	p, n, err := geom.Normalize(geom.Polygon{Rings: []geom.Ring{square}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	g, err := buildGraph(p, n, nil)
	if err != nil {
		t.Fatalf("buildGraph: %v", err)
	}
	if _, err := g.lookupIsect(geom.XY{X: 99, Y: 99}); err == nil {
		t.Fatal("expected an error for a coordinate with no intersection")
	}
}
