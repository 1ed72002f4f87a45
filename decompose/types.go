// Package decompose implements the core of the simplepolygon algorithm: it
// takes a possibly self-intersecting, possibly multi-ring planar polygon
// and decomposes it into a collection of simple, non-self-intersecting
// one-ring polygons that partition the input's traced interior, each
// annotated with its winding number, net winding number, and containment
// parent.
package decompose

import (
	"errors"

	"github.com/mclaeysb/simplepolygon/geom"
)

// ErrInvalidInput is returned when the input polygon fails validation:
// fewer than one ring, a ring too short to be a polygon, or a duplicate
// non-closing vertex across the polygon's rings.
var ErrInvalidInput = errors.New("invalid input")

// ErrGraphInconsistency is returned when an invariant of the pseudo-vertex
// / intersection graph is violated after construction: specifically, when
// a next-intersection reference cannot be resolved. It indicates a bug in
// the intersection finder or the graph wiring, not a problem with the
// input polygon.
var ErrGraphInconsistency = errors.New("graph inconsistency")

// RingAndEdge identifies a single directed edge of the input polygon: the
// segment from vertex Edge to vertex Edge+1 (mod the ring's edge count) of
// ring Ring.
type RingAndEdge struct {
	Ring int
	Edge int
}

// PseudoVertex is a point on a specific incoming edge, as described by the
// decomposition specification. A ring PV sits at the ring vertex that
// terminates its incoming edge (Param == 1); an intersection PV sits at a
// self- or cross-intersection partway along its incoming edge.
type PseudoVertex struct {
	Coord geom.XY
	Param float64

	EdgeIn  RingAndEdge
	EdgeOut RingAndEdge

	// NextIsectAlongEdgeIn is the index (into Graph.Isects) of the next
	// pseudo-vertex's intersection along EdgeIn — or, if this is the last
	// PV on EdgeIn, the intersection of the first PV on the next edge of
	// the same ring. It is resolved once, after every pseudo-vertex has
	// been created, by the graph builder.
	NextIsectAlongEdgeIn int
}

// Intersection is a point where either a ring vertex sits, or two edges
// cross, as described by the decomposition specification.
type Intersection struct {
	Coord geom.XY

	// RingAndEdge1 and RingAndEdge2 are the two edges incident to this
	// intersection. For a ring-vertex intersection, Edge1 is the incoming
	// ring edge and Edge2 is the outgoing ring edge.
	RingAndEdge1 RingAndEdge
	RingAndEdge2 RingAndEdge

	// NextIsectAlongRingAndEdge{1,2} are the indices (into Graph.Isects) of
	// the next intersection reached by walking forward from this
	// intersection along edge 1 or edge 2 respectively. They are resolved
	// by the graph builder; for a ring-vertex intersection only
	// NextIsectAlongRingAndEdge2 is resolved, and NextIsectAlongRingAndEdge1
	// stays 0.
	NextIsectAlongRingAndEdge1 int
	NextIsectAlongRingAndEdge2 int

	// RingAndEdge{1,2}Walkable record whether a new output-ring walk may
	// still depart from this intersection along edge 1 or edge 2
	// respectively. They start out per the spec's seeding rule and are
	// mutated in place by the walker.
	RingAndEdge1Walkable bool
	RingAndEdge2Walkable bool
}

// OutputRing is one simple, non-self-intersecting ring produced by the
// decomposition, annotated with its containment and winding information.
type OutputRing struct {
	Coords []geom.XY

	// Parent is the index into the result's Rings of the smallest-area
	// output ring that strictly contains this one, or -1 if there is none.
	Parent int

	// Winding is +1 for a right-hand-oriented ring, -1 for a left-hand one,
	// as determined at its extremal (left-most) vertex.
	Winding int

	// NetWinding is this ring's Winding plus the NetWinding of its Parent
	// (0 if Parent is -1).
	NetWinding int
}

// Result is the output of Decompose.
type Result struct {
	Rings []OutputRing
}
