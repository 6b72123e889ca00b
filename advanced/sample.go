package advanced

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

const (
	// Points per side of the bounds ring
	BoundsEdgeSegments = 10

	// Sides of a via ring when the caller doesn't override them. Constraint
	// edges pin the boundary exactly, so the constrained path needs fewer.
	DefaultConstrainedViaSegments   = 8
	DefaultUnconstrainedViaSegments = 24
)

// BoundarySample is the output of boundary sampling for the constrained path.
// ConstraintEdges are grouped into rings, and RingStarts[k] is the index of the
// first edge of ring k. The bounds ring is always ring 0.
type BoundarySample struct {
	Points          []Point `json:"points"`
	ConstraintEdges []Edge  `json:"constraintEdges"`
	RingStarts      []int   `json:"ringStarts"`
	HadCrossings    bool    `json:"hadCrossings"`
}

// Edges of ring k.
func (s *BoundarySample) Ring(k int) []Edge {
	end := len(s.ConstraintEdges)
	if k+1 < len(s.RingStarts) {
		end = s.RingStarts[k+1]
	}
	return s.ConstraintEdges[s.RingStarts[k]:end]
}

func viaRing(via Via, clearance float64, segments int) []Point {
	radius := via.Diameter/2 + clearance
	ring := make([]Point, segments)
	for i := range ring {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = Point{
			via.Center.X + radius*math.Cos(angle),
			via.Center.Y + radius*math.Sin(angle),
		}
	}
	return ring
}

func viaSegments(scene *Scene, fallback int) int {
	if scene.ViaSegments > 0 {
		return scene.ViaSegments
	}
	return fallback
}

// Nudge each point by a tiny index-dependent offset so that the triangulator
// never sees exactly collinear or cocircular input.
func jitter(points []Point) []Point {
	result := make([]Point, len(points))
	for i, p := range points {
		result[i] = Point{
			p.X + float64(i%7-3)*Tolerance,
			p.Y + float64(i%5-2)*Tolerance,
		}
	}
	return result
}

// Sample obstacle boundaries densely for unconstrained triangulation, where
// the samples alone have to carry the obstacle outlines.
func GenerateBoundaryPoints(scene *Scene) []Point {
	b := scene.Bounds
	points := []Point{
		{b.MinX, b.MinY},
		{b.MaxX, b.MinY},
		{b.MaxX, b.MaxY},
		{b.MinX, b.MaxY},
	}
	for i := 1; i < BoundsEdgeSegments; i++ {
		t := float64(i) / BoundsEdgeSegments
		points = append(points,
			Point{b.MinX + t*(b.MaxX-b.MinX), b.MinY},
			Point{b.MaxX, b.MinY + t*(b.MaxY-b.MinY)},
			Point{b.MaxX - t*(b.MaxX-b.MinX), b.MaxY},
			Point{b.MinX, b.MaxY - t*(b.MaxY-b.MinY)},
		)
	}

	segments := viaSegments(scene, DefaultUnconstrainedViaSegments)
	for _, via := range scene.Vias {
		points = append(points, viaRing(via, scene.Clearance, segments)...)
	}

	for _, rect := range scene.Rects {
		hw, hh := rect.InflatedHalfExtents(scene.Clearance)
		steps := int(math.Max(2, math.Ceil(math.Max(2*hw, 2*hh)/SampleSpacing)))
		for i := 0; i < steps; i++ {
			t := float64(i) / float64(steps)
			points = append(points,
				rect.ToWorld(-hw+2*t*hw, -hh),
				rect.ToWorld(hw, -hh+2*t*hh),
				rect.ToWorld(hw-2*t*hw, hh),
				rect.ToWorld(-hw, hh-2*t*hh),
			)
		}
	}

	for _, polygon := range scene.Polygons {
		if len(polygon.Points) < 3 {
			continue
		}
		points = append(points, SampleOffsetPolygon(polygon.Points, scene.Clearance)...)
	}

	logs.WithTag("points", len(points)).
		WithTag("vias", len(scene.Vias)).
		WithTag("rects", len(scene.Rects)).
		WithTag("polygons", len(scene.Polygons)).
		Debug("sampled unconstrained boundary points")
	return jitter(points)
}

// The bounds ring for the constrained path, counterclockwise from the
// minimum corner.
func boundsRing(b Bounds) []Point {
	ring := make([]Point, 0, 4*BoundsEdgeSegments)
	side := func(from, to Point) {
		for i := 0; i < BoundsEdgeSegments; i++ {
			ring = append(ring, from.Lerp(to, float64(i)/BoundsEdgeSegments))
		}
	}
	side(Point{b.MinX, b.MinY}, Point{b.MaxX, b.MinY})
	side(Point{b.MaxX, b.MinY}, Point{b.MaxX, b.MaxY})
	side(Point{b.MaxX, b.MaxY}, Point{b.MinX, b.MaxY})
	side(Point{b.MinX, b.MaxY}, Point{b.MinX, b.MinY})
	return ring
}

// Obstacle rings for the constrained path, before any union.
func ObstacleRings(scene *Scene) [][]Point {
	rings := [][]Point{}
	segments := viaSegments(scene, DefaultConstrainedViaSegments)
	for _, via := range scene.Vias {
		rings = append(rings, viaRing(via, scene.Clearance, segments))
	}
	for _, rect := range scene.Rects {
		rings = append(rings, rect.Corners(scene.Clearance))
	}
	for _, polygon := range scene.Polygons {
		if len(polygon.Points) < 3 {
			continue
		}
		rings = append(rings, OffsetPolygon(polygon.Points, scene.Clearance))
	}
	return rings
}

func (s *BoundarySample) addRing(ring []Point) {
	start := len(s.Points)
	s.RingStarts = append(s.RingStarts, len(s.ConstraintEdges))
	s.Points = append(s.Points, ring...)
	n := len(ring)
	for i := 0; i < n; i++ {
		s.ConstraintEdges = append(s.ConstraintEdges, Edge{start + i, start + (i+1)%n})
	}
}

// Sample boundaries as rings of constraint edges. Overlapping obstacle rings
// are unioned first, and any crossings that survive the union are split.
func GenerateBoundaryPointsWithEdges(scene *Scene, engine UnionEngine) BoundarySample {
	sample := BoundarySample{}
	sample.addRing(boundsRing(scene.Bounds))

	obstacles := ObstacleRings(scene)
	merged := UnionObstacleRings(obstacles, engine)
	for _, ring := range merged {
		sample.addRing(ring)
	}

	sample = ResolveConstraintCrossings(sample)
	sample.Points = jitter(sample.Points)

	logs.WithTag("points", len(sample.Points)).
		WithTag("edges", len(sample.ConstraintEdges)).
		WithTag("obstacle_rings", len(obstacles)).
		WithTag("merged_rings", len(merged)).
		WithTag("had_crossings", sample.HadCrossings).
		Debug("sampled constrained boundary rings")
	return sample
}
