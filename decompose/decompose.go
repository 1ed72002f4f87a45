package decompose

import (
	"fmt"

	"github.com/mclaeysb/simplepolygon/geom"
	"github.com/mclaeysb/simplepolygon/rtree"
)

// Decompose implements §6's single operation: it decomposes a complex,
// possibly multi-ring, possibly self-intersecting planar polygon into a
// collection of simple one-ring polygons, each annotated with its winding
// number, net winding number, and containment parent.
func Decompose(p geom.Polygon) (Result, error) {
	normalized, n, err := geom.Normalize(p)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	records := findIntersections(normalized)

	if len(records) == 0 {
		return decomposeFastPath(normalized)
	}

	g, err := buildGraph(normalized, n, records)
	if err != nil {
		return Result{}, err
	}

	seeds, err := seedWindings(g)
	if err != nil {
		return Result{}, err
	}

	rings, err := walk(g, seeds)
	if err != nil {
		return Result{}, err
	}

	assignParentsAndNetWindings(rings)
	return Result{Rings: rings}, nil
}

// decomposeFastPath is the §7 fast path: when the intersection finder
// finds no crossings at all, every input ring is already simple, so
// graph construction is skipped entirely. One output ring is emitted per
// input ring, its winding computed by the same extremal-vertex convexity
// test the seeder uses, and the usual parent / net-winding post-processor
// runs unchanged.
func decomposeFastPath(p geom.Polygon) (Result, error) {
	rings := make([]OutputRing, len(p.Rings))
	for i, ring := range p.Rings {
		rings[i] = OutputRing{
			Coords:  append([]geom.XY(nil), ring...),
			Parent:  -1,
			Winding: ringWinding(ring),
		}
	}
	assignParentsAndNetWindings(rings)
	return Result{Rings: rings}, nil
}

// NearestInputVertex finds the input ring vertex nearest to query, using
// its own R-tree over the input vertices (the same rtree package the graph
// builder uses for coordinate-to-intersection lookups). It returns false if
// the polygon fails normalization. It is a diagnostic helper: useful,
// for instance, for reporting which part of the input a
// GraphInconsistency was detected near.
func NearestInputVertex(p geom.Polygon, query geom.XY) (geom.XY, bool) {
	normalized, _, err := geom.Normalize(p)
	if err != nil {
		return geom.XY{}, false
	}

	index := new(rtree.RTree)
	var coords []geom.XY
	for _, ring := range normalized.Rings {
		for i := 0; i < ring.NumEdges(); i++ {
			v := ring[i]
			index.Insert(rtree.NewPointBox(v.X, v.Y), len(coords))
			coords = append(coords, v)
		}
	}

	var nearest geom.XY
	found := false
	queryBox := rtree.NewPointBox(query.X, query.Y)
	index.PrioritySearch(queryBox, func(recordID int) error {
		nearest = coords[recordID]
		found = true
		return rtree.Stop
	})
	return nearest, found
}
