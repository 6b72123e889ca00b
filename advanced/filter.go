package advanced

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Slack applied to every free-space test, so that triangles whose centroid
// sits right on an inflated boundary are kept.
const freeSpaceSlack = 0.1

// Obstacle polygons converted once for the point-in-polygon and distance
// tests.
type obstacleIndex struct {
	scene    *Scene
	polygons []orb.Ring
}

func newObstacleIndex(scene *Scene) *obstacleIndex {
	index := &obstacleIndex{scene: scene}
	for _, polygon := range scene.Polygons {
		if len(polygon.Points) < 3 {
			continue
		}
		ring := make(orb.Ring, len(polygon.Points))
		for i, p := range polygon.Points {
			ring[i] = orb.Point{p.X, p.Y}
		}
		index.polygons = append(index.polygons, ring)
	}
	return index
}

func (o *obstacleIndex) free(p Point) bool {
	s := o.scene
	b := s.Bounds
	if p.X < b.MinX-freeSpaceSlack || p.X > b.MaxX+freeSpaceSlack ||
		p.Y < b.MinY-freeSpaceSlack || p.Y > b.MaxY+freeSpaceSlack {
		return false
	}

	for _, via := range s.Vias {
		radius := via.Diameter/2 + s.Clearance
		if p.Dist2(via.Center) < radius*radius-freeSpaceSlack {
			return false
		}
	}

	for _, rect := range s.Rects {
		hw, hh := rect.InflatedHalfExtents(s.Clearance)
		lx, ly := rect.ToLocal(p)
		if math.Abs(lx) < hw-freeSpaceSlack && math.Abs(ly) < hh-freeSpaceSlack {
			return false
		}
	}

	point := orb.Point{p.X, p.Y}
	for _, ring := range o.polygons {
		if planar.RingContains(ring, point) {
			return false
		}
		for i := range ring {
			if planar.DistanceFromSegment(ring[i], ring[(i+1)%len(ring)], point) < s.Clearance-freeSpaceSlack {
				return false
			}
		}
	}
	return true
}

// Whether p is inside the bounds and clear of every obstacle's clearance zone.
func InFreeSpace(p Point, scene *Scene) bool {
	return newObstacleIndex(scene).free(p)
}

func Centroid(t Triangle, points []Point) Point {
	a, b, c := points[t[0]], points[t[1]], points[t[2]]
	return Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
}

// Keep the triangles whose centroid lies in free space.
func FilterTriangles(triangles []Triangle, points []Point, scene *Scene) []Triangle {
	index := newObstacleIndex(scene)
	result := make([]Triangle, 0, len(triangles))
	for _, t := range triangles {
		if index.free(Centroid(t, points)) {
			result = append(result, t)
		}
	}
	logs.WithTag("before", len(triangles)).
		WithTag("after", len(result)).
		Debug("filtered triangles to free space")
	return result
}
