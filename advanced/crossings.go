package advanced

import (
	"math"
	"sort"

	"github.com/peterstace/simplefeatures/rtree"
)

type edgeSplit struct {
	t     float64
	point int
}

// Check that every ring start and every edge endpoint refers to something
// that exists.
func validateRings(points []Point, edges []Edge, ringStarts []int) {
	for k, start := range ringStarts {
		if start < 0 || start > len(edges) {
			fatalf("ring %d starts at edge %d, outside %d edges", k, start, len(edges))
		}
		if k > 0 && start < ringStarts[k-1] {
			fatalf("ring %d starts at edge %d, before ring %d", k, start, k-1)
		}
	}
	for i, edge := range edges {
		for _, p := range edge {
			if p < 0 || p >= len(points) {
				fatalf("constraint edge %d references point %d outside %d points", i, p, len(points))
			}
		}
	}
}

func edgeRings(edgeCount int, ringStarts []int) []int {
	rings := make([]int, edgeCount)
	ring := -1
	next := 0
	for i := range rings {
		for next < len(ringStarts) && ringStarts[next] <= i {
			ring = next
			next++
		}
		rings[i] = ring
	}
	return rings
}

func edgeBox(a, b Point) rtree.Box {
	return rtree.Box{
		MinX: math.Min(a.X, b.X) - Tolerance,
		MinY: math.Min(a.Y, b.Y) - Tolerance,
		MaxX: math.Max(a.X, b.X) + Tolerance,
		MaxY: math.Max(a.Y, b.Y) + Tolerance,
	}
}

// Split every pair of constraint edges from different rings that cross in
// their interiors. The crossing point is appended to the point set and both
// edges are replaced by their pieces, so ring grouping is preserved.
func ResolveConstraintCrossings(sample BoundarySample) BoundarySample {
	points := append([]Point(nil), sample.Points...)
	edges := sample.ConstraintEdges
	validateRings(points, edges, sample.RingStarts)
	rings := edgeRings(len(edges), sample.RingStarts)

	items := make([]rtree.BulkItem, len(edges))
	for i, edge := range edges {
		items[i] = rtree.BulkItem{Box: edgeBox(points[edge[0]], points[edge[1]]), RecordID: i}
	}
	tree := rtree.BulkLoad(items)

	splits := map[int][]edgeSplit{}
	hadCrossings := false
	for i, edge := range edges {
		a, b := points[edge[0]], points[edge[1]]
		candidates := []int{}
		// The callback never fails, so neither does the search
		_ = tree.RangeSearch(edgeBox(a, b), func(j int) error {
			if j > i && rings[j] != rings[i] {
				candidates = append(candidates, j)
			}
			return nil
		})
		sort.Ints(candidates)

		for _, j := range candidates {
			c, d := points[edges[j][0]], points[edges[j][1]]
			p, t, u, ok := SegmentIntersection(a, b, c, d)
			if !ok || t <= Tolerance || t >= 1-Tolerance || u <= Tolerance || u >= 1-Tolerance {
				continue
			}
			index := len(points)
			points = append(points, p)
			splits[i] = append(splits[i], edgeSplit{t, index})
			splits[j] = append(splits[j], edgeSplit{u, index})
			hadCrossings = true
		}
	}

	if !hadCrossings {
		return BoundarySample{
			Points:          points,
			ConstraintEdges: edges,
			RingStarts:      sample.RingStarts,
		}
	}

	result := BoundarySample{Points: points, HadCrossings: true}
	ring := -1
	for i, edge := range edges {
		// Empty rings share the start offset of the next ring
		for ring < rings[i] {
			result.RingStarts = append(result.RingStarts, len(result.ConstraintEdges))
			ring++
		}
		edgeSplits := splits[i]
		if len(edgeSplits) == 0 {
			result.ConstraintEdges = append(result.ConstraintEdges, edge)
			continue
		}
		sort.Slice(edgeSplits, func(x, y int) bool { return edgeSplits[x].t < edgeSplits[y].t })
		from := edge[0]
		for _, split := range edgeSplits {
			result.ConstraintEdges = append(result.ConstraintEdges, Edge{from, split.point})
			from = split.point
		}
		result.ConstraintEdges = append(result.ConstraintEdges, Edge{from, edge[1]})
	}
	for len(result.RingStarts) < len(sample.RingStarts) {
		result.RingStarts = append(result.RingStarts, len(result.ConstraintEdges))
	}
	return result
}
