package advanced

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// The number of splits each input region may receive when the config leaves
// MaxRecursiveSplits at zero. A negative MaxRecursiveSplits allows none.
const DefaultMaxRecursiveSplits = 12

// ChokePointConfig controls splitting regions at narrow necks. A chord
// qualifies when both lobes hold at least MinLobeAreaRatio of the region's
// area and the chord is at most MaxNarrowWidthRatio times the square root of
// that area.
type ChokePointConfig struct {
	Enabled             bool    `json:"enabled"`
	MaxNarrowWidthRatio float64 `json:"maxNarrowWidthRatio"`
	MinLobeAreaRatio    float64 `json:"minLobeAreaRatio"`
	MaxRecursiveSplits  int     `json:"maxRecursiveSplits,omitempty"`
}

func DefaultChokePointConfig() ChokePointConfig {
	return ChokePointConfig{
		Enabled:             true,
		MaxNarrowWidthRatio: 0.25,
		MinLobeAreaRatio:    0.2,
		MaxRecursiveSplits:  DefaultMaxRecursiveSplits,
	}
}

type SplitResult struct {
	Regions [][]Point
	Hulls   [][]Point
	Depths  []float64
}

type chokeCandidate struct {
	i, j       int
	widthRatio float64
	balance    float64
}

func withinBox(a, b, p Point) bool {
	return math.Min(a.X, b.X)-DegenerateEpsilon <= p.X && p.X <= math.Max(a.X, b.X)+DegenerateEpsilon &&
		math.Min(a.Y, b.Y)-DegenerateEpsilon <= p.Y && p.Y <= math.Max(a.Y, b.Y)+DegenerateEpsilon
}

// Closed segment intersection test, counting touching and collinear overlap.
func SegmentsIntersect(a, b, c, d Point) bool {
	o1 := Cross(a, b, c)
	o2 := Cross(a, b, d)
	o3 := Cross(c, d, a)
	o4 := Cross(c, d, b)

	if math.Abs(o1) < DegenerateEpsilon && withinBox(a, b, c) {
		return true
	}
	if math.Abs(o2) < DegenerateEpsilon && withinBox(a, b, d) {
		return true
	}
	if math.Abs(o3) < DegenerateEpsilon && withinBox(c, d, a) {
		return true
	}
	if math.Abs(o4) < DegenerateEpsilon && withinBox(c, d, b) {
		return true
	}
	return (o1 > 0) != (o2 > 0) && (o3 > 0) != (o4 > 0)
}

// Even-odd point in polygon test by ray casting.
func PointInRing(p Point, ring []Point) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		xAtY := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y+DegenerateEpsilon) + a.X
		if p.X < xAtY {
			inside = !inside
		}
	}
	return inside
}

// Cut the ring along the chord between vertices i and j. Both pieces include
// the chord's endpoints.
func splitByChord(ring []Point, i, j int) ([]Point, []Point, bool) {
	if len(ring) < 4 || i == j {
		return nil, nil, false
	}
	walk := func(from, to int) []Point {
		out := []Point{}
		for cursor := from; ; cursor = (cursor + 1) % len(ring) {
			out = append(out, ring[cursor])
			if cursor == to {
				return out
			}
		}
	}
	left, right := walk(i, j), walk(j, i)
	if len(left) < 3 || len(right) < 3 {
		return nil, nil, false
	}
	return left, right, true
}

// Whether the chord between vertices i and j stays inside the ring.
func chordInside(ring []Point, i, j int) bool {
	n := len(ring)
	a, b := ring[i], ring[j]
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		if k == i || next == i || k == j || next == j {
			continue
		}
		if SegmentsIntersect(a, b, ring[k], ring[next]) {
			return false
		}
	}
	return PointInRing(Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}, ring)
}

func findChokePoint(ring []Point, config ChokePointConfig) (chokeCandidate, bool) {
	n := len(ring)
	if n < 4 {
		return chokeCandidate{}, false
	}
	scale := math.Sqrt(math.Max(Area(ring), DegenerateEpsilon))

	var best chokeCandidate
	found := false
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if !chordInside(ring, i, j) {
				continue
			}
			left, right, ok := splitByChord(ring, i, j)
			if !ok {
				continue
			}
			leftArea, rightArea := Area(left), Area(right)
			if leftArea <= DegenerateEpsilon || rightArea <= DegenerateEpsilon {
				continue
			}
			balance := math.Min(leftArea, rightArea) / (leftArea + rightArea)
			if balance < config.MinLobeAreaRatio {
				continue
			}
			widthRatio := ring[i].Dist(ring[j]) / scale
			if widthRatio > config.MaxNarrowWidthRatio {
				continue
			}
			if !found ||
				widthRatio < best.widthRatio ||
				(math.Abs(widthRatio-best.widthRatio) < DegenerateEpsilon && balance > best.balance) {
				best = chokeCandidate{i, j, widthRatio, balance}
				found = true
			}
		}
	}
	return best, found
}

// Split regions that are two wide areas joined by a narrow neck. With a nil or
// disabled config the regions and depths pass through and only hulls are
// computed.
func SplitChokePoints(regions [][]Point, depths []float64, config *ChokePointConfig) SplitResult {
	if config == nil || !config.Enabled {
		hulls := make([][]Point, len(regions))
		for i, region := range regions {
			hulls[i] = Hull(region)
		}
		return SplitResult{Regions: regions, Hulls: hulls, Depths: depths}
	}

	normalized := *config
	if normalized.MaxRecursiveSplits == 0 {
		normalized.MaxRecursiveSplits = DefaultMaxRecursiveSplits
	}

	output := [][]Point{}
	for _, region := range regions {
		queue := [][]Point{region}
		splitsLeft := normalized.MaxRecursiveSplits
		for len(queue) > 0 {
			current := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			if splitsLeft <= 0 {
				output = append(output, current)
				continue
			}
			candidate, ok := findChokePoint(current, normalized)
			if !ok {
				output = append(output, current)
				continue
			}
			left, right, ok := splitByChord(current, candidate.i, candidate.j)
			if !ok {
				output = append(output, current)
				continue
			}
			splitsLeft--
			queue = append(queue, left, right)
		}
	}

	result := SplitResult{
		Regions: output,
		Hulls:   make([][]Point, len(output)),
		Depths:  make([]float64, len(output)),
	}
	for i, region := range output {
		result.Hulls[i] = Hull(region)
		result.Depths[i] = RingConcavityDepth(region)
	}
	logs.WithTag("regions_in", len(regions)).
		WithTag("regions_out", len(output)).
		Debug("choke point split done")
	return result
}
