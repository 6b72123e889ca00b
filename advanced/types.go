package advanced

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Via struct {
	Center   Point   `json:"center"`
	Diameter float64 `json:"diameter"`
}

// Rect is an obstacle rectangle rotated counterclockwise (in radians) about its
// center.
type Rect struct {
	Center      Point   `json:"center"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	CCWRotation float64 `json:"ccwRotation"`
}

type Polygon struct {
	Points []Point `json:"points"`
}

type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// Triangle holds three indices into a point set.
type Triangle [3]int

// Edge holds two indices into a point set.
type Edge [2]int

// Scene is the obstacle description shared by the sampling and filtering
// stages. ViaSegments overrides the number of sides used for via rings when
// positive.
type Scene struct {
	Bounds      Bounds    `json:"bounds"`
	Vias        []Via     `json:"vias,omitempty"`
	Rects       []Rect    `json:"rects,omitempty"`
	Polygons    []Polygon `json:"polygons,omitempty"`
	Clearance   float64   `json:"clearance"`
	ViaSegments int       `json:"viaSegments,omitempty"`
}

func (s *Scene) HasObstacles() bool {
	return len(s.Vias) > 0 || len(s.Rects) > 0 || len(s.Polygons) > 0
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

func (p Point) Dist2(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

func (p Point) Dist(q Point) float64 {
	return math.Sqrt(p.Dist2(q))
}

// Materialize the points referenced by a list of indices.
func Gather(indices []int, points []Point) []Point {
	result := make([]Point, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(points) {
			result = append(result, points[i])
		}
	}
	return result
}
