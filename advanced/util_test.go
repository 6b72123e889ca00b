package advanced

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircularIndex(t *testing.T) {
	assert.Equal(t, 0, CircularIndex(0, 4))
	assert.Equal(t, 3, CircularIndex(-1, 4))
	assert.Equal(t, 1, CircularIndex(9, 4))
	assert.Equal(t, 2, CircularIndex(-6, 4))
}

func TestCross(t *testing.T) {
	o := Point{0, 0}
	assert.Greater(t, Cross(o, Point{1, 0}, Point{0, 1}), 0.0)
	assert.Less(t, Cross(o, Point{0, 1}, Point{1, 0}), 0.0)
	assert.Equal(t, 0.0, Cross(o, Point{1, 1}, Point{2, 2}))
}

func TestPtSegDist(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	assert.InDelta(t, 3, PtSegDist(Point{5, 3}, a, b), 1e-12)
	// Past the end, distance is to the endpoint
	assert.InDelta(t, 5, PtSegDist(Point{13, 4}, a, b), 1e-12)
	// Degenerate segment
	assert.InDelta(t, 5, PtSegDist(Point{3, 4}, a, a), 1e-12)
}

func TestArea(t *testing.T) {
	square := []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	assert.Equal(t, 4.0, SignedArea(square))
	assert.True(t, IsCCW(square))

	reversed := Reverse(square)
	assert.Equal(t, -4.0, SignedArea(reversed))
	assert.Equal(t, 4.0, Area(reversed))
	assert.False(t, IsCCW(reversed))
	assert.Equal(t, Point{0, 0}, square[0], "Reverse must not modify its input")

	assert.Equal(t, 0.0, SignedArea(square[:2]))
	assert.Equal(t, 4.0, CellArea([]int{3, 2, 1, 0}, square))
}

func TestSegmentIntersection(t *testing.T) {
	p, tt, u, ok := SegmentIntersection(Point{0, 0}, Point{4, 0}, Point{1, -1}, Point{1, 3})
	assert.True(t, ok)
	assert.InDelta(t, 1, p.X, 1e-12)
	assert.InDelta(t, 0, p.Y, 1e-12)
	assert.InDelta(t, 0.25, tt, 1e-12)
	assert.InDelta(t, 0.25, u, 1e-12)

	_, _, _, ok = SegmentIntersection(Point{0, 0}, Point{4, 0}, Point{0, 1}, Point{4, 1})
	assert.False(t, ok)

	assert.True(t, SegmentsCrossWithin(Point{0, 0}, Point{2, 2}, Point{0, 2}, Point{2, 0}, 0, 1))
	// Touching at an endpoint is not a proper crossing
	assert.False(t, SegmentsCrossWithin(Point{0, 0}, Point{2, 2}, Point{2, 2}, Point{4, 0}, 0.01, 0.99))
}

func TestHull(t *testing.T) {
	t.Run("drops interior and collinear points", func(t *testing.T) {
		points := []Point{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {1, 1}, {0, 2}}
		hull := Hull(points)
		assert.ElementsMatch(t, []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, hull)
		assert.True(t, IsCCW(hull))
	})

	t.Run("ignores duplicate and invalid indices", func(t *testing.T) {
		points := []Point{{0, 0}, {1, 0}, {0, 1}}
		hull := HullIndices([]int{0, 1, 1, 2, 7, -1}, points)
		assert.Len(t, hull, 3)
	})

	t.Run("fewer than three points", func(t *testing.T) {
		points := []Point{{0, 0}, {1, 0}}
		assert.Len(t, HullIndices([]int{0, 1}, points), 2)
	})
}

func TestConcavityDepth(t *testing.T) {
	t.Run("triangle", func(t *testing.T) {
		points := []Point{{0, 0}, {1, 0}, {0, 1}}
		assert.Equal(t, 0.0, ConcavityDepth([]int{0, 1, 2}, points))
	})

	t.Run("convex", func(t *testing.T) {
		square := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
		assert.Equal(t, 0.0, RingConcavityDepth(square))
	})

	t.Run("notch", func(t *testing.T) {
		// A square with a notch cut 3 units deep into its top side
		ring := []Point{{0, 0}, {10, 0}, {10, 10}, {5, 7}, {0, 10}}
		assert.InDelta(t, 3, RingConcavityDepth(ring), 1e-12)
	})

	t.Run("scales linearly", func(t *testing.T) {
		ring := []Point{{0, 0}, {10, 0}, {10, 10}, {5, 7}, {0, 10}}
		scaled := make([]Point, len(ring))
		for i, p := range ring {
			scaled[i] = Point{p.X * 100, p.Y * 100}
		}
		assert.InDelta(t, 100*RingConcavityDepth(ring), RingConcavityDepth(scaled), 1e-9)
	})
}

func TestRect(t *testing.T) {
	r := Rect{Center: Point{10, 20}, Width: 4, Height: 2, CCWRotation: math.Pi / 2}
	p := r.ToWorld(1, 0)
	assert.InDelta(t, 10, p.X, 1e-12)
	assert.InDelta(t, 21, p.Y, 1e-12)

	lx, ly := r.ToLocal(p)
	assert.InDelta(t, 1, lx, 1e-12)
	assert.InDelta(t, 0, ly, 1e-12)

	corners := r.Corners(1)
	assert.Len(t, corners, 4)
	assert.True(t, IsCCW(corners))
	// (4+2) x (2+2)
	assert.InDelta(t, 24, Area(corners), 1e-9)
}

func TestOffsetPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	expected := []Point{{-2, -2}, {12, -2}, {12, 12}, {-2, 12}}

	for name, ring := range map[string][]Point{"ccw": square, "cw": Reverse(square)} {
		t.Run(name, func(t *testing.T) {
			offset := OffsetPolygon(ring, 2)
			assert.Len(t, offset, 4)
			for _, p := range offset {
				found := false
				for _, e := range expected {
					if p.Dist(e) < 1e-9 {
						found = true
					}
				}
				assert.True(t, found, "unexpected offset vertex %v", p)
			}
		})
	}

	t.Run("sampling", func(t *testing.T) {
		samples := SampleOffsetPolygon(square, 2)
		// Every 14 unit edge gets ceil(14/20) = 1, raised to 2 samples
		assert.Len(t, samples, 8)
	})

	t.Run("too few points", func(t *testing.T) {
		assert.Nil(t, OffsetPolygon(square[:2], 2))
	})
}
