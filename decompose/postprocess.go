package decompose

import (
	"math"

	"github.com/mclaeysb/simplepolygon/geom"
)

// assignParentsAndNetWindings is the parent / net-winding post-processor
// (§4.6). It is run after the walker (for the general case) or directly
// after seeding (for the fast path, §7) — in both cases, every ring
// produced so far has been tentatively assigned a parent by whatever
// produced it, but rings that were never visited while walking (because
// they came from an input ring lying wholly inside another output ring)
// are left with parent -1 and still need a containing ring found for them.
func assignParentsAndNetWindings(rings []OutputRing) {
	resolveUnparentedRoots(rings)
	propagateNetWindings(rings)
}

// resolveUnparentedRoots looks at every ring with Parent == -1 and, if more
// than one such ring exists, finds the smallest-area ring that strictly
// contains it (using one of its own vertices as a representative interior
// point) and reassigns its Parent accordingly. A ring with no containing
// ring keeps Parent == -1.
func resolveUnparentedRoots(rings []OutputRing) {
	var roots []int
	for i, r := range rings {
		if r.Parent == -1 {
			roots = append(roots, i)
		}
	}
	if len(roots) <= 1 {
		return
	}

	for _, ci := range roots {
		candidate := rings[ci].Coords[0]
		best := -1
		bestArea := math.Inf(+1)
		for j, r := range rings {
			if j == ci {
				continue
			}
			if !geom.PointInRing(candidate, r.Coords) {
				continue
			}
			a := geom.RingArea(r.Coords)
			if a < bestArea {
				bestArea = a
				best = j
			}
		}
		rings[ci].Parent = best
	}
}

// propagateNetWindings computes NetWinding by a top-down traversal of the
// parent tree: roots get NetWinding == Winding, and every other ring gets
// its parent's NetWinding plus its own Winding.
func propagateNetWindings(rings []OutputRing) {
	children := make([][]int, len(rings))
	var roots []int
	for i, r := range rings {
		if r.Parent == -1 {
			roots = append(roots, i)
		} else {
			children[r.Parent] = append(children[r.Parent], i)
		}
	}

	var assign func(i, netWinding int)
	assign = func(i, netWinding int) {
		rings[i].NetWinding = netWinding
		for _, c := range children[i] {
			assign(c, netWinding+rings[c].Winding)
		}
	}
	for _, root := range roots {
		assign(root, rings[root].Winding)
	}
}
