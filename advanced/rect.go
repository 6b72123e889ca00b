package advanced

import "github.com/go-gl/mathgl/mgl64"

// Map a point in the rect's local frame (origin at the center, axes along the
// rect's sides) into the plane.
func (r Rect) ToWorld(localX, localY float64) Point {
	v := mgl64.Rotate2D(r.CCWRotation).Mul2x1(mgl64.Vec2{localX, localY})
	return Point{r.Center.X + v.X(), r.Center.Y + v.Y()}
}

// Inverse of ToWorld.
func (r Rect) ToLocal(p Point) (localX, localY float64) {
	v := mgl64.Rotate2D(-r.CCWRotation).Mul2x1(mgl64.Vec2{p.X - r.Center.X, p.Y - r.Center.Y})
	return v.X(), v.Y()
}

// Half extents once the clearance margin is added on every side.
func (r Rect) InflatedHalfExtents(clearance float64) (halfWidth, halfHeight float64) {
	return r.Width/2 + clearance, r.Height/2 + clearance
}

// Corners of the clearance-inflated rect, counterclockwise.
func (r Rect) Corners(clearance float64) []Point {
	hw, hh := r.InflatedHalfExtents(clearance)
	return []Point{
		r.ToWorld(-hw, -hh),
		r.ToWorld(hw, -hh),
		r.ToWorld(hw, hh),
		r.ToWorld(-hw, hh),
	}
}
