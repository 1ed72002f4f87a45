package decompose

import (
	"fmt"
	"sort"

	"github.com/mclaeysb/simplepolygon/geom"
	"github.com/mclaeysb/simplepolygon/rtree"
)

// Graph is the pseudo-vertex / intersection graph built by buildGraph: a
// bidirected cyclic graph over arena indices, per the decomposition
// spec's design notes. It is immutable except for the walkable flags on
// Isects (mutated by the walker) and the resolved next-intersection
// indices (filled in once by buildGraph itself).
type Graph struct {
	Polygon geom.Polygon

	// N is the number of unique ring vertices across the polygon. The
	// first N entries of Isects are the ring-vertex intersections, one per
	// input vertex, in ring-then-vertex order.
	N int

	// PVList[r][e] is the pseudo-vertex list for edge e of ring r, sorted
	// by Param ascending. It always ends with the ring PV (Param == 1) of
	// that edge's terminal vertex.
	PVList [][][]PseudoVertex

	Isects []Intersection

	index *rtree.RTree
}

// buildGraph constructs the pseudo-vertex and intersection graph from a
// normalized polygon and its intersection records, per §4.3 of the
// decomposition spec.
func buildGraph(p geom.Polygon, n int, records []IntersectionRecord) (*Graph, error) {
	g := &Graph{
		Polygon: p,
		N:       n,
		PVList:  make([][][]PseudoVertex, len(p.Rings)),
	}

	// Step 1: seed PVs and ISECTs for ring vertices.
	for r, ring := range p.Rings {
		l := ring.NumEdges()
		g.PVList[r] = make([][]PseudoVertex, l)
		for j := 0; j < l; j++ {
			coord := ring.Vertex(j)
			g.PVList[r][j] = append(g.PVList[r][j], PseudoVertex{
				Coord:   coord,
				Param:   1,
				EdgeIn:  RingAndEdge{r, j},
				EdgeOut: RingAndEdge{r, geom.FloorMod(j+1, l)},
			})
			g.Isects = append(g.Isects, Intersection{
				Coord:                ring.Vertex(geom.FloorMod(j-1, l)),
				RingAndEdge1:         RingAndEdge{r, geom.FloorMod(j-1, l)},
				RingAndEdge2:         RingAndEdge{r, j},
				RingAndEdge1Walkable: false,
				RingAndEdge2Walkable: true,
			})
		}
	}

	// Step 2: for each intersection record, push an intersection PV, and
	// (for the unique record of each crossing) push its ISECT.
	for _, rec := range records {
		g.PVList[rec.Ring0][rec.Edge0] = append(g.PVList[rec.Ring0][rec.Edge0], PseudoVertex{
			Coord:   rec.Point,
			Param:   rec.Frac0,
			EdgeIn:  RingAndEdge{rec.Ring0, rec.Edge0},
			EdgeOut: RingAndEdge{rec.Ring1, rec.Edge1},
		})
		if rec.Unique {
			g.Isects = append(g.Isects, Intersection{
				Coord:                rec.Point,
				RingAndEdge1:         RingAndEdge{rec.Ring0, rec.Edge0},
				RingAndEdge2:         RingAndEdge{rec.Ring1, rec.Edge1},
				RingAndEdge1Walkable: true,
				RingAndEdge2Walkable: true,
			})
		}
	}

	// Step 3: sort each PV list by param ascending. The ring PV (param=1)
	// always sorts last, since crossing fractions are strictly in (0, 1).
	for r := range g.PVList {
		for e := range g.PVList[r] {
			list := g.PVList[r][e]
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].Param < list[j].Param
			})
		}
	}

	// Step 4: load every ISECT into the R-tree keyed by a degenerate point
	// box. The full set of boxes is known upfront, so this uses BulkLoad
	// rather than inserting one at a time.
	items := make([]rtree.BulkItem, len(g.Isects))
	for idx, isect := range g.Isects {
		items[idx] = rtree.BulkItem{Box: rtree.NewPointBox(isect.Coord.X, isect.Coord.Y), RecordID: idx}
	}
	g.index = rtree.BulkLoad(items)

	// Step 5: resolve each PV's NextIsectAlongEdgeIn.
	for r := range g.PVList {
		l := len(g.PVList[r])
		for e := range g.PVList[r] {
			list := g.PVList[r][e]
			for k := range list {
				var next geom.XY
				if k+1 < len(list) {
					next = list[k+1].Coord
				} else {
					nextEdge := geom.FloorMod(e+1, l)
					next = g.PVList[r][nextEdge][0].Coord
				}
				idx, err := g.lookupIsect(next)
				if err != nil {
					return nil, err
				}
				list[k].NextIsectAlongEdgeIn = idx
			}
		}
	}

	// Step 6: resolve each ISECT's NextIsectAlongRingAndEdge1/2 by walking
	// every PV and copying its resolved next-index into the matching slot
	// of the ISECT that sits at the PV's own coordinate. Ring-vertex
	// ISECTs (index < N) are seeded in step 1 with edge1 = the incoming
	// ring edge and edge2 = the outgoing one, but the only PV ever placed
	// at a ring-vertex ISECT's coordinate is the ring PV from step 1,
	// whose EdgeIn always equals that ISECT's edge1 by construction — so
	// for these, the resolved value is always forced into
	// NextIsectAlongRingAndEdge2 regardless of which edge matched.
	for r := range g.PVList {
		for e := range g.PVList[r] {
			for _, pv := range g.PVList[r][e] {
				isectIdx, err := g.lookupIsect(pv.Coord)
				if err != nil {
					return nil, err
				}
				isect := &g.Isects[isectIdx]
				if isectIdx < g.N {
					isect.NextIsectAlongRingAndEdge2 = pv.NextIsectAlongEdgeIn
				} else if isect.RingAndEdge1 == pv.EdgeIn {
					isect.NextIsectAlongRingAndEdge1 = pv.NextIsectAlongEdgeIn
				} else {
					isect.NextIsectAlongRingAndEdge2 = pv.NextIsectAlongEdgeIn
				}
			}
		}
	}

	return g, nil
}

// lookupIsect finds the index of the intersection at the given coordinate
// via the R-tree. Intersection coordinates are unique within the graph, so
// the first match found is sufficient.
func (g *Graph) lookupIsect(coord geom.XY) (int, error) {
	found := -1
	box := rtree.NewPointBox(coord.X, coord.Y)
	err := g.index.RangeSearch(box, func(recordID int) error {
		found = recordID
		return rtree.Stop
	})
	if err != nil {
		return 0, fmt.Errorf("%w: range search failed: %v", ErrGraphInconsistency, err)
	}
	if found == -1 {
		return 0, fmt.Errorf("%w: no intersection found at (%g, %g)", ErrGraphInconsistency, coord.X, coord.Y)
	}
	return found, nil
}
