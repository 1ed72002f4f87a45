package decompose

import "github.com/mclaeysb/simplepolygon/geom"

// walk is the walker / ring extractor (§4.5). It drains the LIFO work
// queue seeded by seedWindings, walking from intersection to intersection
// along incident edges, closing each output ring as it returns to its
// starting point, and discovering further rings to walk as it consumes
// "walkable" sides of the intersections it passes through.
func walk(g *Graph, seeds []queueEntry) ([]OutputRing, error) {
	stack := append([]queueEntry(nil), seeds...)
	var results []OutputRing

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		startIsect := entry.isect
		currentParent := entry.parent
		currentWinding := entry.winding
		currentRingIndex := len(results)

		coords := []geom.XY{g.Isects[startIsect].Coord}

		currentIsect := startIsect
		walkingEdge, nxtIsect, err := departureEdge(g, currentIsect)
		if err != nil {
			return nil, err
		}

		for !g.Isects[nxtIsect].Coord.Equals(g.Isects[startIsect].Coord) {
			coords = append(coords, g.Isects[nxtIsect].Coord)
			stack = removeQueueEntry(stack, nxtIsect)

			arrived := &g.Isects[nxtIsect]
			arrivedOnEdge1, err := arrivalSide(arrived, walkingEdge)
			if err != nil {
				return nil, err
			}

			var bEdge RingAndEdge
			var nextAlongB int
			var oppositeWalkable bool
			if arrivedOnEdge1 {
				arrived.RingAndEdge2Walkable = false
				oppositeWalkable = arrived.RingAndEdge1Walkable
				bEdge, nextAlongB = arrived.RingAndEdge2, arrived.NextIsectAlongRingAndEdge2
			} else {
				arrived.RingAndEdge1Walkable = false
				oppositeWalkable = arrived.RingAndEdge2Walkable
				bEdge, nextAlongB = arrived.RingAndEdge1, arrived.NextIsectAlongRingAndEdge1
			}

			if oppositeWalkable {
				wantCCW := currentWinding == +1
				orientation := geom.OrientationOf(
					g.Isects[currentIsect].Coord,
					arrived.Coord,
					g.Isects[nextAlongB].Coord,
					0, // identity by index during walking, no tolerance
				)
				if (orientation == geom.CounterClockwise) == wantCCW {
					// The next ring hugs the outside of this one.
					stack = append(stack, queueEntry{isect: nxtIsect, parent: currentParent, winding: -currentWinding})
				} else {
					// The next ring is nested inside this one.
					stack = append(stack, queueEntry{isect: nxtIsect, parent: currentRingIndex, winding: currentWinding})
				}
			}

			currentIsect = nxtIsect
			walkingEdge = bEdge
			nxtIsect = nextAlongB
		}

		coords = append(coords, g.Isects[nxtIsect].Coord)
		results = append(results, OutputRing{
			Coords:  coords,
			Parent:  currentParent,
			Winding: currentWinding,
		})
	}

	return results, nil
}

// departureEdge picks which of an intersection's two edges a fresh walk
// departs along: edge 1 if it is walkable, otherwise edge 2.
func departureEdge(g *Graph, isect int) (RingAndEdge, int, error) {
	i := g.Isects[isect]
	if i.RingAndEdge1Walkable {
		return i.RingAndEdge1, i.NextIsectAlongRingAndEdge1, nil
	}
	if i.RingAndEdge2Walkable {
		return i.RingAndEdge2, i.NextIsectAlongRingAndEdge2, nil
	}
	return RingAndEdge{}, 0, ErrGraphInconsistency
}

// arrivalSide reports whether the walk arrived at isect along its edge 1
// (true) or edge 2 (false), by comparing the edge just walked against the
// two edges recorded at the intersection.
func arrivalSide(isect *Intersection, walkingEdge RingAndEdge) (bool, error) {
	switch walkingEdge {
	case isect.RingAndEdge1:
		return true, nil
	case isect.RingAndEdge2:
		return false, nil
	default:
		return false, ErrGraphInconsistency
	}
}

// removeQueueEntry removes the first queue entry (if any) referring to the
// given intersection index: per §4.5, once a walk passes through an
// intersection it will visit it regardless, so any pending queue entry for
// it is redundant.
func removeQueueEntry(stack []queueEntry, isect int) []queueEntry {
	for i, e := range stack {
		if e.isect == isect {
			return append(stack[:i], stack[i+1:]...)
		}
	}
	return stack
}
