package advanced

import (
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/paulmach/orb"
	"github.com/peterstace/simplefeatures/geom"
)

// A ShapePolygon is an exterior ring plus any holes. Rings are open (the first
// point is not repeated at the end).
type ShapePolygon struct {
	Exterior []Point
	Holes    [][]Point
}

// A Shape is the union of its polygons.
type Shape []ShapePolygon

func ShapeFromRing(ring []Point) Shape {
	return Shape{{Exterior: ring}}
}

// All rings of the shape, exteriors and holes alike.
func (s Shape) Rings() [][]Point {
	result := [][]Point{}
	for _, polygon := range s {
		result = append(result, polygon.Exterior)
		result = append(result, polygon.Holes...)
	}
	return result
}

func (s Shape) Bound() orb.Bound {
	var bound orb.Bound
	first := true
	for _, polygon := range s {
		ring := make(orb.Ring, len(polygon.Exterior))
		for i, p := range polygon.Exterior {
			ring[i] = orb.Point{p.X, p.Y}
		}
		if len(ring) == 0 {
			continue
		}
		if first {
			bound = ring.Bound()
			first = false
		} else {
			bound = bound.Union(ring.Bound())
		}
	}
	return bound
}

// UnionEngine merges two shapes into one. An engine may return an empty shape
// to decline the merge; the inputs are then kept separate.
type UnionEngine interface {
	Union(a, b Shape) (Shape, error)
}

// SimpleFeaturesUnion unions shapes with the simplefeatures overlay engine.
type SimpleFeaturesUnion struct{}

func (SimpleFeaturesUnion) Union(a, b Shape) (Shape, error) {
	ga, err := geom.UnmarshalWKT(a.wkt())
	if err != nil {
		return nil, errors.New("invalid first operand").Wrap(err)
	}
	gb, err := geom.UnmarshalWKT(b.wkt())
	if err != nil {
		return nil, errors.New("invalid second operand").Wrap(err)
	}
	unioned, err := geom.Union(ga, gb)
	if err != nil {
		return nil, err
	}
	return shapeFromGeometry(unioned), nil
}

// NoUnion never merges anything.
type NoUnion struct{}

func (NoUnion) Union(a, b Shape) (Shape, error) {
	return nil, nil
}

func (s Shape) wkt() string {
	if len(s) == 0 {
		return "MULTIPOLYGON EMPTY"
	}
	var sb strings.Builder
	sb.WriteString("MULTIPOLYGON(")
	for i, polygon := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		writeWKTRing(&sb, polygon.Exterior)
		for _, hole := range polygon.Holes {
			sb.WriteByte(',')
			writeWKTRing(&sb, hole)
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

func writeWKTRing(sb *strings.Builder, ring []Point) {
	sb.WriteByte('(')
	for i := 0; i <= len(ring); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		p := ring[i%len(ring)]
		sb.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	sb.WriteByte(')')
}

func shapeFromGeometry(g geom.Geometry) Shape {
	switch g.Type() {
	case geom.TypePolygon:
		return Shape{shapePolygon(g.MustAsPolygon())}
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		result := make(Shape, 0, mp.NumPolygons())
		for i := 0; i < mp.NumPolygons(); i++ {
			result = append(result, shapePolygon(mp.PolygonN(i)))
		}
		return result
	case geom.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		result := Shape{}
		for i := 0; i < gc.NumGeometries(); i++ {
			result = append(result, shapeFromGeometry(gc.GeometryN(i))...)
		}
		return result
	}
	return nil
}

func shapePolygon(polygon geom.Polygon) ShapePolygon {
	result := ShapePolygon{Exterior: openRing(polygon.ExteriorRing())}
	for i := 0; i < polygon.NumInteriorRings(); i++ {
		result.Holes = append(result.Holes, openRing(polygon.InteriorRingN(i)))
	}
	return result
}

func openRing(ls geom.LineString) []Point {
	seq := ls.Coordinates()
	n := seq.Length()
	ring := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		ring = append(ring, Point{xy.X, xy.Y})
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

type unionGroup struct {
	shape  Shape
	bound  orb.Bound
	merged bool
}

// Union overlapping obstacle rings so that overlapping or nested obstacles
// contribute one boundary. Two passes pick up transitive overlaps. Rings that
// never merged are returned untouched; a failed union keeps both operands.
func UnionObstacleRings(rings [][]Point, engine UnionEngine) [][]Point {
	if len(rings) <= 1 {
		return rings
	}
	if engine == nil {
		engine = SimpleFeaturesUnion{}
	}

	groups := make([]unionGroup, len(rings))
	for i, ring := range rings {
		shape := ShapeFromRing(ring)
		groups[i] = unionGroup{shape: shape, bound: shape.Bound()}
	}

	for pass := 0; pass < 2; pass++ {
		merged := make([]unionGroup, 0, len(groups))
		used := make([]bool, len(groups))
		for i := range groups {
			if used[i] {
				continue
			}
			current := groups[i]
			for j := i + 1; j < len(groups); j++ {
				if used[j] || !current.bound.Pad(Tolerance).Intersects(groups[j].bound) {
					continue
				}
				unioned, err := engine.Union(current.shape, groups[j].shape)
				if err != nil {
					logs.Warn(errors.New("union of obstacle boundaries failed").
						WithTag("first", i).
						WithTag("second", j).
						Wrap(err))
					continue
				}
				if len(unioned) == 0 {
					continue
				}
				current = unionGroup{shape: unioned, bound: unioned.Bound(), merged: true}
				used[j] = true
			}
			merged = append(merged, current)
			used[i] = true
		}
		groups = merged
	}

	result := [][]Point{}
	for _, group := range groups {
		if !group.merged {
			result = append(result, group.shape[0].Exterior)
			continue
		}
		for _, ring := range group.shape.Rings() {
			if len(ring) >= 3 {
				result = append(result, ring)
			}
		}
	}
	if len(result) == 0 {
		return rings
	}
	return result
}
