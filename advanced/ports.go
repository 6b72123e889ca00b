package advanced

import "math"

const (
	// Edges whose midpoint is this close to a bounds side lie on the bounds
	portBoundsMargin = 1
	// Extra reach around a via's clearance circle for an edge to count as
	// touching it
	portViaMargin = 2
	// One port per this much edge length, and at least one
	portSpacing = 40
)

// RegionPort is a point on a region's edge where a route may pass into a
// neighboring region.
type RegionPort struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Region int     `json:"region"`
}

// Place ports along every region edge that can lead somewhere. Edges lying on
// the bounds get no ports unless they also run past a via.
func ComputeRegionPorts(regions [][]Point, bounds Bounds, vias []Via, clearance float64) []RegionPort {
	result := []RegionPort{}
	for r, region := range regions {
		for i := range region {
			a, b := region[i], region[(i+1)%len(region)]
			mid := a.Lerp(b, 0.5)
			onBoundary := math.Abs(mid.X-bounds.MinX) < portBoundsMargin ||
				math.Abs(mid.X-bounds.MaxX) < portBoundsMargin ||
				math.Abs(mid.Y-bounds.MinY) < portBoundsMargin ||
				math.Abs(mid.Y-bounds.MaxY) < portBoundsMargin

			nearVia := false
			for _, via := range vias {
				reach := via.Diameter/2 + clearance + portViaMargin
				if via.Center.Dist2(mid) < reach*reach {
					nearVia = true
					break
				}
			}

			if onBoundary && !nearVia {
				continue
			}
			count := int(math.Max(1, math.Floor(a.Dist(b)/portSpacing)))
			for k := 0; k < count; k++ {
				p := a.Lerp(b, float64(k+1)/float64(count+1))
				result = append(result, RegionPort{X: p.X, Y: p.Y, Region: r})
			}
		}
	}
	return result
}
