package advanced

import (
	"math"
	"sort"
)

// Convex hull of the given point indices by monotone chain. The hull is
// returned counterclockwise, without collinear points.
func HullIndices(indices []int, points []Point) []int {
	sorted := make([]int, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(points) || seen[i] {
			continue
		}
		seen[i] = true
		sorted = append(sorted, i)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := points[sorted[i]], points[sorted[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	if len(sorted) < 3 {
		return sorted
	}

	chain := func(order []int) []int {
		result := []int{}
		for _, i := range order {
			for len(result) >= 2 &&
				Cross(points[result[len(result)-2]], points[result[len(result)-1]], points[i]) <= DegenerateEpsilon {
				result = result[:len(result)-1]
			}
			result = append(result, i)
		}
		return result
	}

	lower := chain(sorted)
	upper := chain(Reverse(sorted))
	// The last point of each chain is the first point of the other
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// Hull of a ring of points, materialized.
func Hull(ring []Point) []Point {
	indices := make([]int, len(ring))
	for i := range ring {
		indices[i] = i
	}
	return Gather(HullIndices(indices, ring), ring)
}

// Concavity depth is the greatest distance from a vertex that is not on the
// hull to the hull boundary. Triangles and convex rings have depth 0.
func ConcavityDepth(cell []int, points []Point) float64 {
	if len(cell) <= 3 {
		return 0
	}
	hull := HullIndices(cell, points)
	onHull := make(map[int]bool, len(hull))
	for _, i := range hull {
		onHull[i] = true
	}

	var depth float64
	for _, i := range cell {
		if onHull[i] {
			continue
		}
		p := points[i]
		nearest := math.Inf(1)
		for k := range hull {
			a, b := points[hull[k]], points[hull[(k+1)%len(hull)]]
			nearest = math.Min(nearest, PtSegDist(p, a, b))
		}
		if !math.IsInf(nearest, 1) {
			depth = math.Max(depth, nearest)
		}
	}
	return depth
}

func RingConcavityDepth(ring []Point) float64 {
	indices := make([]int, len(ring))
	for i := range ring {
		indices[i] = i
	}
	return ConcavityDepth(indices, ring)
}
