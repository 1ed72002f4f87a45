package generate

import (
	"math"
	"math/rand"

	"github.com/mclaeysb/simplepolygon/geom"
)

// perlinGenerator samples 2-D Perlin noise over a bounded grid of random
// unit gradients, adapted from the teacher's generate.PerlinGenerator. It
// is used here to jitter the vertices of a regular or star polygon so that
// repeated fuzz runs produce irregular (but still deterministically
// reproducible, given the same *rand.Rand) self-intersecting shapes rather
// than always the exact same regular star.
type perlinGenerator struct {
	gradients      [][]geom.XY
	originX        int
	originY        int
	minX, minY     float64
}

// newPerlinGenerator builds a generator whose grid covers [minX,maxX] x
// [minY,maxY] with one extra cell of padding on every side, the same
// rounding the teacher's constructor applies via geom.Envelope.
func newPerlinGenerator(minX, minY, maxX, maxY float64, rnd *rand.Rand) perlinGenerator {
	loX := math.Floor(minX) - 1
	loY := math.Floor(minY) - 1
	hiX := math.Ceil(maxX) + 1
	hiY := math.Ceil(maxY) + 1

	gridw := int(hiX) - int(loX) + 1
	gridh := int(hiY) - int(loY) + 1

	gradients := make([][]geom.XY, gridw)
	for i := range gradients {
		gradients[i] = make([]geom.XY, gridh)
		for j := range gradients[i] {
			angle := rnd.Float64() * math.Pi * 2
			gradients[i][j] = geom.XY{X: math.Sin(angle), Y: math.Cos(angle)}
		}
	}
	return perlinGenerator{
		gradients: gradients,
		originX:   int(loX),
		originY:   int(loY),
		minX:      loX,
		minY:      loY,
	}
}

// sample evaluates the noise field at pt.
func (p perlinGenerator) sample(pt geom.XY) float64 {
	x0 := int(pt.X - p.minX)
	x1 := x0 + 1
	y0 := int(pt.Y - p.minY)
	y1 := y0 + 1

	n0 := p.dotGridGradient(x0, y0, pt)
	n1 := p.dotGridGradient(x1, y0, pt)
	n2 := p.dotGridGradient(x0, y1, pt)
	n3 := p.dotGridGradient(x1, y1, pt)

	sx := pt.X - float64(x0+p.originX)
	sy := pt.Y - float64(y0+p.originY)

	lerp := func(a, b, w float64) float64 {
		return (1-w)*a + w*b
	}
	return lerp(lerp(n0, n1, sx), lerp(n2, n3, sx), sy)
}

func (p perlinGenerator) dotGridGradient(x, y int, pt geom.XY) float64 {
	distance := geom.XY{
		X: pt.X - float64(x+p.originX),
		Y: pt.Y - float64(y+p.originY),
	}
	return distance.Dot(p.gradients[x][y])
}

// jitterPolygon perturbs every vertex of p by Perlin noise scaled by
// amplitude, independently in X and Y, using two perlinGenerators seeded
// from rnd. The closing vertex of each ring is re-derived from the jittered
// first vertex so every ring stays closed.
func jitterPolygon(p geom.Polygon, amplitude float64, rnd *rand.Rand) geom.Polygon {
	minX, minY := math.Inf(+1), math.Inf(+1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, ring := range p.Rings {
		for _, v := range ring {
			minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
			minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
		}
	}

	perlinX := newPerlinGenerator(minX, minY, maxX, maxY, rnd)
	perlinY := newPerlinGenerator(minX, minY, maxX, maxY, rnd)

	out := geom.Polygon{Rings: make([]geom.Ring, len(p.Rings))}
	for i, ring := range p.Rings {
		jittered := make(geom.Ring, len(ring))
		for j, v := range ring[:len(ring)-1] {
			offset := geom.XY{X: perlinX.sample(v), Y: perlinY.sample(v)}.Scale(amplitude)
			jittered[j] = v.Add(offset)
		}
		jittered[len(ring)-1] = jittered[0]
		out.Rings[i] = jittered
	}
	return out
}
