package advanced

import (
	"container/heap"
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// ConvexMerger merges triangles into strictly convex cells in two phases.
// First every dead-end cell is folded into its only neighbor, then the
// remaining adjacent pairs are merged largest combined area first.
type ConvexMerger struct{}

type mergeCandidate struct {
	x, y int
	area float64
}

// Max-heap of merge candidates by combined area. Entries may go stale as
// cells merge; they are checked when popped.
type candidateHeap []mergeCandidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].area > h[j].area }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(mergeCandidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Splice y into x if the result stays convex.
func (s *cellSet) convexSplice(x, y int) (splice, bool) {
	if s.cells[x] == nil || s.cells[y] == nil {
		return splice{}, false
	}
	sp, ok := s.splice(x, y)
	if !ok || !s.convexJunctions(sp) {
		return splice{}, false
	}
	return sp, true
}

func (s *cellSet) absorb(x, y int, sp splice) {
	s.cells[x] = sp.ring
	s.cells[y] = nil
	s.rebuildAdjacency()
}

// Phase 1. Returns the number of merges made.
func (s *cellSet) foldDeadEnds() int {
	merges := 0
	for changed := true; changed; {
		changed = false
		s.rebuildAdjacency()
		for x, cell := range s.cells {
			if cell == nil {
				continue
			}
			neighbors := s.neighborsOf(x)
			if len(neighbors) != 1 {
				continue
			}
			if sp, ok := s.convexSplice(x, neighbors[0]); ok {
				s.absorb(x, neighbors[0], sp)
				merges++
				changed = true
			}
		}
	}
	return merges
}

// Phase 2. Returns the number of merges made.
func (s *cellSet) mergeByArea() int {
	areas := make([]float64, len(s.cells))
	for c, cell := range s.cells {
		if cell != nil {
			areas[c] = CellArea(cell, s.points)
		}
	}

	h := &candidateHeap{}
	pushPairs := func(x int) {
		for _, y := range s.neighborsOf(x) {
			if _, ok := s.convexSplice(x, y); ok {
				heap.Push(h, mergeCandidate{x, y, areas[x] + areas[y]})
			}
		}
	}
	for x, cell := range s.cells {
		if cell == nil {
			continue
		}
		for _, y := range s.neighborsOf(x) {
			if y <= x {
				continue
			}
			if _, ok := s.convexSplice(x, y); ok {
				heap.Push(h, mergeCandidate{x, y, areas[x] + areas[y]})
			}
		}
	}

	merges := 0
	for h.Len() > 0 {
		c := heap.Pop(h).(mergeCandidate)
		if s.cells[c.x] == nil || s.cells[c.y] == nil {
			continue
		}
		current := areas[c.x] + areas[c.y]
		if math.Abs(current-c.area) > DegenerateEpsilon {
			if _, ok := s.convexSplice(c.x, c.y); ok {
				heap.Push(h, mergeCandidate{c.x, c.y, current})
			}
			continue
		}
		sp, ok := s.convexSplice(c.x, c.y)
		if !ok {
			continue
		}
		s.absorb(c.x, c.y, sp)
		areas[c.x] = CellArea(sp.ring, s.points)
		areas[c.y] = 0
		merges++
		pushPairs(c.x)
	}
	return merges
}

func (ConvexMerger) Merge(triangles []Triangle, points []Point) ([][]int, []float64) {
	s := newCellSet(triangles, points)
	deadEnds := s.foldDeadEnds()
	s.rebuildAdjacency()
	byArea := s.mergeByArea()

	cells := s.live()
	logs.WithTag("triangles", len(triangles)).
		WithTag("cells", len(cells)).
		WithTag("dead_end_merges", deadEnds).
		WithTag("area_merges", byArea).
		Debug("strict convex merge done")
	return cells, make([]float64, len(cells))
}
