package advanced

import (
	"math"

	"github.com/golang/geo/r2"
)

// Target spacing between samples when an edge has to be subdivided.
const SampleSpacing = 20

type offsetLine struct {
	origin    r2.Point
	direction r2.Point
}

// Offset every edge of the polygon outward by clearance and intersect
// consecutive offset lines. The i-th returned vertex is the offset of the
// polygon's i-th vertex. Works for either winding.
func OffsetPolygon(points []Point, clearance float64) []Point {
	n := len(points)
	if n < 3 {
		return nil
	}
	ccw := IsCCW(points)

	lines := make([]offsetLine, n)
	for i := 0; i < n; i++ {
		p1 := r2.Point{X: points[i].X, Y: points[i].Y}
		p2 := r2.Point{X: points[(i+1)%n].X, Y: points[(i+1)%n].Y}
		edge := p2.Sub(p1)
		if edge.Norm() == 0 {
			lines[i] = offsetLine{origin: p1, direction: r2.Point{X: 1}}
			continue
		}
		dir := edge.Normalize()
		// Outward is to the right of travel for CCW rings, to the left for CW
		var normal r2.Point
		if ccw {
			normal = r2.Point{X: dir.Y, Y: -dir.X}
		} else {
			normal = dir.Ortho()
		}
		lines[i] = offsetLine{origin: p1.Add(normal.Mul(clearance)), direction: dir}
	}

	vertices := make([]Point, n)
	for i := 0; i < n; i++ {
		prev := lines[CircularIndex(i-1, n)]
		curr := lines[i]
		if p, ok := intersectLines(prev, curr); ok {
			vertices[i] = Point{p.X, p.Y}
		} else {
			vertices[i] = Point{curr.origin.X, curr.origin.Y}
		}
	}
	return vertices
}

func intersectLines(a, b offsetLine) (r2.Point, bool) {
	denom := a.direction.Cross(b.direction)
	if math.Abs(denom) < DegenerateEpsilon {
		return r2.Point{}, false
	}
	t := b.origin.Sub(a.origin).Cross(b.direction) / denom
	return a.origin.Add(a.direction.Mul(t)), true
}

// Offset the polygon, then sample each offset edge at SampleSpacing, with at
// least two samples per edge. The first sample of each edge is its start
// vertex.
func SampleOffsetPolygon(points []Point, clearance float64) []Point {
	vertices := OffsetPolygon(points, clearance)
	n := len(vertices)
	result := []Point{}
	for i := 0; i < n; i++ {
		v1, v2 := vertices[i], vertices[(i+1)%n]
		segments := int(math.Max(2, math.Ceil(v1.Dist(v2)/SampleSpacing)))
		for j := 0; j < segments; j++ {
			result = append(result, v1.Lerp(v2, float64(j)/float64(segments)))
		}
	}
	return result
}
