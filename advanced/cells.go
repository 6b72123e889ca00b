package advanced

import (
	"fmt"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/freespace/dbg"
)

// CellMerger combines adjacent triangles into larger cells. Cells are
// counterclockwise rings of point indices, and depths[i] is the concavity
// depth of cells[i].
type CellMerger interface {
	Merge(triangles []Triangle, points []Point) (cells [][]int, depths []float64)
}

// Working state shared by the merge strategies. Absorbed cells are left as
// nil until the merge finishes.
type cellSet struct {
	points []Point
	cells  [][]int
	// neighbors[c][k] is the cell across the edge from cells[c][k] to
	// cells[c][k+1], or -1 on the boundary
	neighbors [][]int
}

func newCellSet(triangles []Triangle, points []Point) *cellSet {
	s := &cellSet{points: points, cells: make([][]int, len(triangles))}
	for i, t := range triangles {
		for _, v := range t {
			if v < 0 || v >= len(points) {
				fatalf("triangle %d references point %d outside %d points", i, v, len(points))
			}
		}
		cell := []int{t[0], t[1], t[2]}
		if SignedCellArea(cell, points) < 0 {
			cell[1], cell[2] = cell[2], cell[1]
		}
		s.cells[i] = cell
	}
	return s
}

// Recompute neighbors from scratch by hashing every undirected edge.
func (s *cellSet) rebuildAdjacency() {
	owners := map[edgeKey][]int{}
	for c, cell := range s.cells {
		for k := range cell {
			key := undirected(cell[k], cell[(k+1)%len(cell)])
			owners[key] = append(owners[key], c)
			if len(owners[key]) > 2 {
				fatalf("edge %d-%d is shared by more than two cells", key.lo, key.hi)
			}
		}
	}

	s.neighbors = make([][]int, len(s.cells))
	for c, cell := range s.cells {
		if cell == nil {
			continue
		}
		adj := make([]int, len(cell))
		for k := range cell {
			adj[k] = -1
			for _, other := range owners[undirected(cell[k], cell[(k+1)%len(cell)])] {
				if other != c {
					adj[k] = other
				}
			}
		}
		s.neighbors[c] = adj
	}
}

// Distinct live neighbors of c in ascending order.
func (s *cellSet) neighborsOf(c int) []int {
	result := []int{}
	seen := map[int]bool{}
	for _, n := range s.neighbors[c] {
		if n < 0 || seen[n] || s.cells[n] == nil {
			continue
		}
		seen[n] = true
		result = append(result, n)
	}
	sort.Ints(result)
	return result
}

// The run of x's edges shared with y, as the position of its first edge and
// its length. Cells that share more than one run (which would enclose a hole
// if merged) or share every edge report ok=false.
func (s *cellSet) sharedRun(x, y int) (first, count int, ok bool) {
	adj := s.neighbors[x]
	n := len(adj)
	total := 0
	first = -1
	for k, other := range adj {
		if other == y {
			total++
			if first < 0 {
				first = k
			}
		}
	}
	if total == 0 || total == n {
		return 0, 0, false
	}
	for adj[CircularIndex(first-1, n)] == y {
		first = CircularIndex(first-1, n)
	}
	for adj[(first+count)%n] == y {
		count++
	}
	return first, count, count == total
}

// A merged ring together with its two junction vertices and their
// neighbors in the ring.
type splice struct {
	ring         []int
	a, b         int
	prevA, nextA int
	prevB, nextB int
}

// Splice y into x across their shared run. The result runs from the first
// junction vertex A through y's unshared vertices to the second junction B,
// then through x's unshared vertices back to A.
func (s *cellSet) splice(x, y int) (splice, bool) {
	first, count, ok := s.sharedRun(x, y)
	if !ok {
		return splice{}, false
	}
	xs, ys := s.cells[x], s.cells[y]
	n, m := len(xs), len(ys)
	lastK := (first + count - 1) % n
	a := xs[first]
	b := xs[(lastK+1)%n]

	mA := -1
	for j, v := range ys {
		if v == a {
			mA = j
			break
		}
	}
	if mA < 0 {
		return splice{}, false
	}
	mB := CircularIndex(mA-count, m)
	if ys[mB] != b {
		return splice{}, false
	}

	ring := make([]int, 0, n+m-2*count)
	ring = append(ring, a)
	for j := 1; j <= m-count-1; j++ {
		ring = append(ring, ys[(mA+j)%m])
	}
	ring = append(ring, b)
	for j := 2; j <= n-count; j++ {
		ring = append(ring, xs[(lastK+j)%n])
	}
	if len(ring) < 3 {
		return splice{}, false
	}
	seen := make(map[int]bool, len(ring))
	for _, v := range ring {
		if seen[v] {
			return splice{}, false
		}
		seen[v] = true
	}

	return splice{
		ring:  ring,
		a:     a,
		b:     b,
		prevA: xs[CircularIndex(first-1, n)],
		nextA: ys[(mA+1)%m],
		prevB: ys[CircularIndex(mB-1, m)],
		nextB: xs[(lastK+2)%n],
	}, true
}

// Whether the splice keeps both junction vertices convex.
func (s *cellSet) convexJunctions(sp splice) bool {
	p := s.points
	return Cross(p[sp.prevA], p[sp.a], p[sp.nextA]) >= -CrossTolerance &&
		Cross(p[sp.prevB], p[sp.b], p[sp.nextB]) >= -CrossTolerance
}

// Live cells, in order.
func (s *cellSet) live() [][]int {
	result := [][]int{}
	for _, cell := range s.cells {
		if cell != nil {
			result = append(result, cell)
		}
	}
	return result
}

func (s *cellSet) String() string {
	var sb strings.Builder
	for c, cell := range s.cells {
		if cell == nil {
			continue
		}
		name := dbg.Name(c)
		depth := ConcavityDepth(cell, s.points)
		var label aurora.Value
		if depth == 0 {
			label = aurora.Green(name)
		} else {
			label = aurora.Yellow(name)
		}
		fmt.Fprintf(&sb, "%s%v area=%.3f depth=%.3f\n", label, cell, CellArea(cell, s.points), depth)
	}
	return sb.String()
}
