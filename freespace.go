// Free-space decomposition for routing around obstacles.
//
// This package takes a rectangular board, punches out circular vias,
// rotated rectangles, and arbitrary polygons (each grown by a clearance
// margin), and divides what is left into a small set of simple,
// non-overlapping regions. By default the regions are convex, which makes
// them convenient nodes for a path-planning graph.
//
// The individual stages (boundary sampling, triangulation, filtering,
// merging, and choke point splitting) are available in the advanced package.
package freespace

import "github.com/osuushi/freespace/advanced"

type Point = advanced.Point
type Via = advanced.Via
type Rect = advanced.Rect
type Polygon = advanced.Polygon
type Bounds = advanced.Bounds
type Triangle = advanced.Triangle
type Input = advanced.Input
type Result = advanced.Result
type ChokePointConfig = advanced.ChokePointConfig
type RegionPort = advanced.RegionPort

const (
	ConstrainedTriangulation   = advanced.ConstrainedTriangulation
	UnconstrainedTriangulation = advanced.UnconstrainedTriangulation
	ConvexMerge                = advanced.ConvexMerge
	ConcaveMerge               = advanced.ConcaveMerge
)

// Decompose the free space of the input into regions.
//
// Degenerate geometry never fails: malformed polygons are skipped and
// obstacles that can't be unioned are kept separate. An error is only
// returned when the pipeline's internal bookkeeping is inconsistent, such as
// a constraint referring to a point that doesn't exist or a mesh edge shared
// by more than two triangles.
func Decompose(input Input) (result *Result, err error) {
	defer func() {
		recoveredErr := advanced.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return advanced.Compute(&input), nil
}

// Place route entry points along the edges of the result's regions.
func Ports(input Input, result *Result) []RegionPort {
	return advanced.ComputeRegionPorts(result.Regions, input.Bounds, input.Vias, input.Clearance)
}
