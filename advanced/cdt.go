package advanced

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
)

// Distance under which a vertex is treated as lying on a constraint
const onConstraintDistance = 1e-9

// Positive when d lies inside the circumcircle of the counterclockwise
// triangle abc.
func inCircle(a, b, c, d Point) float64 {
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y
	return mgl64.Mat3{
		ax, bx, cx,
		ay, by, cy,
		ax*ax + ay*ay, bx*bx + by*by, cx*cx + cy*cy,
	}.Det()
}

// Whether p sits on the open segment ab, closer to a than b is.
func (m *mesh) onSegment(a, b, p int) bool {
	pa, pb, pp := m.points[a], m.points[b], m.points[p]
	length := pa.Dist(pb)
	if length == 0 {
		return false
	}
	if math.Abs(Cross(pa, pb, pp))/length > onConstraintDistance {
		return false
	}
	along := ((pp.X-pa.X)*(pb.X-pa.X) + (pp.Y-pa.Y)*(pb.Y-pa.Y)) / length
	return along > 0 && along < length
}

// Find the triangle around a through which the segment a→b leaves a. The
// triangle is returned as (a, p, q) counterclockwise with b strictly between
// p and q. If a vertex lies on the segment it is returned as via instead.
func (m *mesh) findStart(a, b int) (t, p, q, via int) {
	pa, pb := m.points[a], m.points[b]
	for i := range m.tris {
		tri := &m.tris[i]
		if tri.dead || !tri.has(a) {
			continue
		}
		_, p, q := tri.from(a)
		if m.onSegment(a, b, p) {
			return -1, -1, -1, p
		}
		if m.onSegment(a, b, q) {
			return -1, -1, -1, q
		}
		if Cross(pa, m.points[p], pb) > 0 && Cross(pa, m.points[q], pb) < 0 {
			return i, p, q, -1
		}
	}
	return -1, -1, -1, -1
}

func (m *mesh) hasEdge(a, b int) bool {
	if _, ok := m.edgeTri[Edge{a, b}]; ok {
		return true
	}
	_, ok := m.edgeTri[Edge{b, a}]
	return ok
}

// Force the edge ab into the mesh. Triangles crossed by the segment are
// removed and the two pseudo-polygons on either side are retriangulated.
func (m *mesh) insertConstraint(a, b int, fixed map[edgeKey]bool, depth int) error {
	if a == b {
		return nil
	}
	if m.hasEdge(a, b) {
		fixed[undirected(a, b)] = true
		return nil
	}
	if depth > m.inputCount {
		return errors.Newf("constraint %d-%d splits too many times", a, b)
	}

	start, p, q, via := m.findStart(a, b)
	if via >= 0 {
		if err := m.insertConstraint(a, via, fixed, depth+1); err != nil {
			return err
		}
		return m.insertConstraint(via, b, fixed, depth+1)
	}
	if start < 0 {
		return errors.Newf("no triangle around %d faces %d", a, b)
	}

	pa, pb := m.points[a], m.points[b]
	crossed := []int{start}
	left := []int{q}
	right := []int{p}
	for {
		if len(crossed) > len(m.tris) {
			return errors.Newf("walk from %d to %d does not terminate", a, b)
		}
		t, ok := m.edgeTri[Edge{q, p}]
		if !ok {
			return errors.Newf("walk from %d to %d left the mesh", a, b)
		}
		crossed = append(crossed, t)
		r := m.tris[t].third(p, q)
		if r == b {
			break
		}
		if m.onSegment(a, b, r) {
			if err := m.insertConstraint(a, r, fixed, depth+1); err != nil {
				return err
			}
			return m.insertConstraint(r, b, fixed, depth+1)
		}
		if Cross(pa, pb, m.points[r]) > 0 {
			left = append(left, r)
			q = r
		} else {
			right = append(right, r)
			p = r
		}
	}

	for _, t := range crossed {
		m.kill(t)
	}
	m.fillPseudoPolygon(a, b, left)
	m.fillPseudoPolygon(b, a, Reverse(right))
	fixed[undirected(a, b)] = true
	return nil
}

// Triangulate the polygon bounded by the edge u→v and the chain of vertices
// to its left, ordered from u to v.
func (m *mesh) fillPseudoPolygon(u, v int, chain []int) {
	if len(chain) == 0 {
		return
	}
	pu, pv := m.points[u], m.points[v]
	c := 0
	for i := 1; i < len(chain); i++ {
		if inCircle(pu, pv, m.points[chain[c]], m.points[chain[i]]) > 0 {
			c = i
		}
	}
	m.fillPseudoPolygon(u, chain[c], chain[:c])
	m.fillPseudoPolygon(chain[c], v, chain[c+1:])
	m.addTriangle(u, v, chain[c])
}

// Label live triangles with the number of constraint edges crossed on the way
// in from the super triangle.
func (m *mesh) nestingDepths(fixed map[edgeKey]bool) []int {
	depth := make([]int, len(m.tris))
	for i := range depth {
		depth[i] = -1
	}
	frontier := []int{}
	for i := range m.tris {
		t := &m.tris[i]
		if !t.dead && (m.isSuper(t.v[0]) || m.isSuper(t.v[1]) || m.isSuper(t.v[2])) {
			frontier = append(frontier, i)
		}
	}

	for level := 0; len(frontier) > 0; level++ {
		stack := []int{}
		for _, t := range frontier {
			if depth[t] == -1 {
				depth[t] = level
				stack = append(stack, t)
			}
		}
		next := []int{}
		for len(stack) > 0 {
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v := m.tris[t].v
			for k := 0; k < 3; k++ {
				a, b := v[k], v[(k+1)%3]
				n, ok := m.edgeTri[Edge{b, a}]
				if !ok || depth[n] != -1 {
					continue
				}
				if fixed[undirected(a, b)] {
					next = append(next, n)
					continue
				}
				depth[n] = level
				stack = append(stack, n)
			}
		}
		frontier = next
	}
	return depth
}

// Constrained Delaunay triangulation. Every constraint edge appears as a mesh
// edge, and only triangles enclosed by an odd number of constraint rings are
// returned, so the area outside the outermost ring and inside obstacle rings
// is carved away.
func ConstrainedDelaunay(points []Point, edges []Edge) []Triangle {
	for i, edge := range edges {
		for _, p := range edge {
			if p < 0 || p >= len(points) {
				fatalf("constraint edge %d references point %d outside %d points", i, p, len(points))
			}
		}
	}
	if len(points) < 3 {
		return nil
	}

	m := newMesh(points)
	m.triangulate()
	m.buildEdgeIndex()

	fixed := map[edgeKey]bool{}
	skipped := 0
	for _, edge := range edges {
		a, b := m.alias[edge[0]], m.alias[edge[1]]
		if err := m.insertConstraint(a, b, fixed, 0); err != nil {
			skipped++
			logs.Warn(errors.New("skipping constraint edge").
				WithTag("from", edge[0]).
				WithTag("to", edge[1]).
				Wrap(err))
		}
	}

	depth := m.nestingDepths(fixed)
	result := m.inputTriangles(func(i int) bool {
		return depth[i]%2 == 1
	})
	logs.WithTag("points", len(points)).
		WithTag("constraints", len(edges)).
		WithTag("skipped_constraints", skipped).
		WithTag("triangles", len(result)).
		Debug("constrained delaunay triangulation done")
	return result
}
