package advanced

import "math"

// Tolerances used by the geometric predicates. Each stage picks the one that
// matches the scale of the quantity it compares.
const (
	Tolerance         = 1e-6
	CrossTolerance    = 1e-8
	DegenerateEpsilon = 1e-10
)

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Cross product of (a - o) and (b - o). Positive when o, a, b turn
// counterclockwise.
func Cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Distance from p to the segment ab.
func PtSegDist(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 < DegenerateEpsilon {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// Signed shoelace area. Positive for counterclockwise rings.
func SignedArea(ring []Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func Area(ring []Point) float64 {
	return math.Abs(SignedArea(ring))
}

// Signed area of a ring given as indices into points.
func SignedCellArea(cell []int, points []Point) float64 {
	n := len(cell)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a, b := points[cell[i]], points[cell[(i+1)%n]]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func CellArea(cell []int, points []Point) float64 {
	return math.Abs(SignedCellArea(cell, points))
}

func IsCCW(ring []Point) bool {
	return SignedArea(ring) > 0
}

func Reverse[T any](s []T) []T {
	result := make([]T, len(s))
	for i, v := range s {
		result[len(s)-1-i] = v
	}
	return result
}

// Find where segments ab and cd cross. The returned parameters t and u locate
// the crossing along ab and cd respectively. ok is false for parallel
// segments.
func SegmentIntersection(a, b, c, d Point) (p Point, t, u float64, ok bool) {
	rx, ry := b.X-a.X, b.Y-a.Y
	sx, sy := d.X-c.X, d.Y-c.Y
	denom := rx*sy - ry*sx
	if math.Abs(denom) < DegenerateEpsilon {
		return Point{}, 0, 0, false
	}
	qx, qy := c.X-a.X, c.Y-a.Y
	t = (qx*sy - qy*sx) / denom
	u = (qx*ry - qy*rx) / denom
	return Point{a.X + t*rx, a.Y + t*ry}, t, u, true
}

// Whether ab and cd properly cross, i.e. at parameters strictly inside
// (lo, hi) on both segments.
func SegmentsCrossWithin(a, b, c, d Point, lo, hi float64) bool {
	_, t, u, ok := SegmentIntersection(a, b, c, d)
	return ok && t > lo && t < hi && u > lo && u < hi
}
