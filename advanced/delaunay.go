package advanced

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

const (
	// How far the super triangle reaches beyond the bounding box, in multiples
	// of the box's larger dimension
	superTriangleScale = 30

	// Radius reported for triangles too flat to have a usable circumcircle
	degenerateCircumradius2 = 1e18

	// Points closer than this on both axes are the same mesh vertex
	duplicateResolution = 1e9
)

// Unordered pair of point indices.
type edgeKey struct {
	lo, hi int
}

func undirected(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type meshTriangle struct {
	v          [3]int
	cx, cy, r2 float64
	dead       bool
}

func (t *meshTriangle) has(i int) bool {
	return t.v[0] == i || t.v[1] == i || t.v[2] == i
}

// Rotate the triangle's vertices so that i comes first, preserving winding.
func (t *meshTriangle) from(i int) (a, b, c int) {
	switch i {
	case t.v[1]:
		return t.v[1], t.v[2], t.v[0]
	case t.v[2]:
		return t.v[2], t.v[0], t.v[1]
	}
	return t.v[0], t.v[1], t.v[2]
}

func (t *meshTriangle) third(a, b int) int {
	for _, v := range t.v {
		if v != a && v != b {
			return v
		}
	}
	return -1
}

// A triangle mesh under construction. The point slice holds the input points
// followed by the three super triangle vertices.
type mesh struct {
	points     []Point
	inputCount int
	tris       []meshTriangle
	// Every input index maps to the first index sharing its position
	alias []int
	// Directed edge to the live triangle that contains it
	edgeTri map[Edge]int
}

func circumcircle(a, b, c Point) (cx, cy, r2 float64) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < DegenerateEpsilon {
		return 0, 0, degenerateCircumradius2
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	cx = (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d
	cy = (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d
	return cx, cy, (a.X-cx)*(a.X-cx) + (a.Y-cy)*(a.Y-cy)
}

func newMesh(points []Point) *mesh {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	dimension := math.Max(maxX-minX, maxY-minY)
	if dimension == 0 {
		dimension = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	m := &mesh{
		points:     make([]Point, len(points), len(points)+3),
		inputCount: len(points),
		alias:      make([]int, len(points)),
	}
	copy(m.points, points)
	m.points = append(m.points,
		Point{midX - superTriangleScale*dimension, midY - dimension},
		Point{midX + superTriangleScale*dimension, midY - dimension},
		Point{midX, midY + superTriangleScale*dimension},
	)
	n := len(points)
	m.addTriangle(n, n+1, n+2)

	seen := map[[2]int64]int{}
	for i, p := range points {
		key := [2]int64{
			int64(math.Round(p.X * duplicateResolution)),
			int64(math.Round(p.Y * duplicateResolution)),
		}
		if first, ok := seen[key]; ok {
			m.alias[i] = first
			continue
		}
		seen[key] = i
		m.alias[i] = i
	}
	return m
}

func (m *mesh) isSuper(i int) bool {
	return i >= m.inputCount
}

func (m *mesh) addTriangle(a, b, c int) int {
	if Cross(m.points[a], m.points[b], m.points[c]) < 0 {
		b, c = c, b
	}
	cx, cy, r2 := circumcircle(m.points[a], m.points[b], m.points[c])
	m.tris = append(m.tris, meshTriangle{v: [3]int{a, b, c}, cx: cx, cy: cy, r2: r2})
	index := len(m.tris) - 1
	if m.edgeTri != nil {
		m.indexTriangle(index)
	}
	return index
}

func (m *mesh) indexTriangle(index int) {
	v := m.tris[index].v
	for k := 0; k < 3; k++ {
		m.edgeTri[Edge{v[k], v[(k+1)%3]}] = index
	}
}

func (m *mesh) kill(index int) {
	t := &m.tris[index]
	t.dead = true
	if m.edgeTri == nil {
		return
	}
	for k := 0; k < 3; k++ {
		e := Edge{t.v[k], t.v[(k+1)%3]}
		if m.edgeTri[e] == index {
			delete(m.edgeTri, e)
		}
	}
}

// Insert every distinct input point with Bowyer-Watson.
func (m *mesh) triangulate() {
	for i := 0; i < m.inputCount; i++ {
		if m.alias[i] != i {
			continue
		}
		m.insertPoint(i)
	}
	m.compact()
}

func (m *mesh) insertPoint(i int) {
	p := m.points[i]
	bad := []int{}
	edgeCount := map[edgeKey]int{}
	for t := range m.tris {
		tri := &m.tris[t]
		if tri.dead {
			continue
		}
		dx, dy := p.X-tri.cx, p.Y-tri.cy
		if dx*dx+dy*dy < tri.r2+Tolerance {
			bad = append(bad, t)
			for k := 0; k < 3; k++ {
				edgeCount[undirected(tri.v[k], tri.v[(k+1)%3])]++
			}
		}
	}

	for _, t := range bad {
		m.tris[t].dead = true
	}
	for _, t := range bad {
		v := m.tris[t].v
		for k := 0; k < 3; k++ {
			a, b := v[k], v[(k+1)%3]
			if edgeCount[undirected(a, b)] == 1 {
				m.addTriangle(a, b, i)
			}
		}
	}

	// Dead triangles pile up quickly; sweep them once they dominate
	if len(bad) > 0 && len(m.tris) > 64 && countDead(m.tris)*2 > len(m.tris) {
		m.compact()
	}
}

func countDead(tris []meshTriangle) int {
	n := 0
	for i := range tris {
		if tris[i].dead {
			n++
		}
	}
	return n
}

func (m *mesh) compact() {
	live := m.tris[:0]
	for _, t := range m.tris {
		if !t.dead {
			live = append(live, t)
		}
	}
	m.tris = live
	if m.edgeTri != nil {
		m.buildEdgeIndex()
	}
}

func (m *mesh) buildEdgeIndex() {
	m.edgeTri = make(map[Edge]int, len(m.tris)*3)
	for i := range m.tris {
		if !m.tris[i].dead {
			m.indexTriangle(i)
		}
	}
}

// Live triangles that don't touch the super triangle.
func (m *mesh) inputTriangles(keep func(index int) bool) []Triangle {
	result := []Triangle{}
	for i := range m.tris {
		t := &m.tris[i]
		if t.dead || m.isSuper(t.v[0]) || m.isSuper(t.v[1]) || m.isSuper(t.v[2]) {
			continue
		}
		if keep != nil && !keep(i) {
			continue
		}
		result = append(result, Triangle(t.v))
	}
	return result
}

// Delaunay triangulation of the points by incremental Bowyer-Watson
// insertion. Triangles are counterclockwise and reference the input indices.
// Duplicate points are only used once.
func Delaunay(points []Point) []Triangle {
	if len(points) < 3 {
		return nil
	}
	m := newMesh(points)
	m.triangulate()
	result := m.inputTriangles(nil)
	logs.WithTag("points", len(points)).
		WithTag("triangles", len(result)).
		Debug("delaunay triangulation done")
	return result
}
