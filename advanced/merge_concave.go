package advanced

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Upper bound on the number of merges Strategy A performs
const MaxConcaveMergeIterations = 800

// ConcaveMerger greedily merges the adjacent pair whose union has the lowest
// concavity depth, as long as that depth stays within Tolerance.
type ConcaveMerger struct {
	Tolerance float64
}

func (cm ConcaveMerger) Merge(triangles []Triangle, points []Point) ([][]int, []float64) {
	s := newCellSet(triangles, points)
	iterations := 0
	for ; iterations < MaxConcaveMergeIterations; iterations++ {
		s.rebuildAdjacency()

		bestX, bestY := -1, -1
		var bestRing []int
		bestDepth := math.Inf(1)
		for x, cell := range s.cells {
			if cell == nil {
				continue
			}
			for _, y := range s.neighborsOf(x) {
				if y <= x {
					continue
				}
				sp, ok := s.splice(x, y)
				if !ok {
					continue
				}
				depth := ConcavityDepth(sp.ring, points)
				if depth <= cm.Tolerance+Tolerance && depth < bestDepth {
					bestX, bestY = x, y
					bestRing = sp.ring
					bestDepth = depth
				}
			}
		}
		if bestX < 0 {
			break
		}
		s.cells[bestX] = bestRing
		s.cells[bestY] = nil
	}

	cells := s.live()
	depths := make([]float64, len(cells))
	for i, cell := range cells {
		depths[i] = ConcavityDepth(cell, points)
	}
	logs.WithTag("triangles", len(triangles)).
		WithTag("cells", len(cells)).
		WithTag("iterations", iterations).
		Debug("bounded concavity merge done")
	return cells, depths
}
