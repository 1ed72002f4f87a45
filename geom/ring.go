package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel error surfaced for malformed polygon
// input: empty geometry, a ring too short to be a polygon, or duplicate
// non-closing vertices across the polygon's rings.
var ErrInvalidInput = errors.New("invalid input")

// Ring is a single ordered sequence of points. A normalized Ring is closed
// (its first and last points are equal).
type Ring []XY

// Closed reports whether the ring's first and last point coincide.
func (r Ring) Closed() bool {
	return len(r) > 0 && r[0].Equals(r[len(r)-1])
}

// Close returns a copy of r with its first point appended to the end, if
// it is not already closed.
func (r Ring) Close() Ring {
	if r.Closed() {
		return r
	}
	out := make(Ring, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}

// NumEdges returns the number of edges in a closed ring: one fewer than the
// number of points, since the last point duplicates the first.
func (r Ring) NumEdges() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Vertex returns the vertex at the end of edge e (i.e. vertex e+1, modulo
// the ring's edge count), matching the (ring, edge) -> vertex convention
// used throughout the decomposition graph builder.
func (r Ring) Vertex(e int) XY {
	n := r.NumEdges()
	return r[FloorMod(e+1, n)]
}

// Polygon is an ordered sequence of rings. Ring 0 is conventionally the
// outer ring, but the decomposition engine does not require this.
type Polygon struct {
	Rings []Ring
}

// Normalize closes every ring that isn't already closed and validates that
// all non-closing vertices across all rings are pairwise distinct. It
// returns the normalized polygon and the total count of non-closing
// vertices (N in the decomposition spec).
func Normalize(p Polygon) (Polygon, int, error) {
	if len(p.Rings) == 0 {
		return Polygon{}, 0, fmt.Errorf("%w: polygon has no rings", ErrInvalidInput)
	}

	out := Polygon{Rings: make([]Ring, len(p.Rings))}
	var allVerts []XY
	for i, ring := range p.Rings {
		if len(ring) < 3 {
			return Polygon{}, 0, fmt.Errorf("%w: ring %d has fewer than 3 vertices", ErrInvalidInput, i)
		}
		closed := ring.Close()
		out.Rings[i] = closed
		allVerts = append(allVerts, closed[:len(closed)-1]...)
	}

	if dup, ok := UniqueCoords(allVerts); !ok {
		return Polygon{}, 0, fmt.Errorf("%w: duplicate vertex at (%g, %g)", ErrInvalidInput, dup.X, dup.Y)
	}

	return out, len(allVerts), nil
}
