package advanced

import "github.com/aukilabs/go-tooling/pkg/logs"

type TriangulationMode int

const (
	// Obstacle and bounds rings are enforced as mesh edges
	ConstrainedTriangulation TriangulationMode = iota
	// Plain Delaunay over densely sampled boundaries
	UnconstrainedTriangulation
)

func (m TriangulationMode) String() string {
	if m == UnconstrainedTriangulation {
		return "unconstrained"
	}
	return "constrained"
}

type MergeStrategy int

const (
	ConvexMerge MergeStrategy = iota
	ConcaveMerge
)

func (s MergeStrategy) String() string {
	if s == ConcaveMerge {
		return "concave"
	}
	return "convex"
}

// Input describes one decomposition. The zero values of Triangulation and
// Merge select constrained triangulation and strict convex merging. A nil
// Union uses SimpleFeaturesUnion, and a nil ChokePoints disables choke point
// splitting.
type Input struct {
	Scene
	ConcavityTolerance float64           `json:"concavityTolerance"`
	Triangulation      TriangulationMode `json:"triangulation"`
	Merge              MergeStrategy     `json:"merge"`
	ChokePoints        *ChokePointConfig `json:"chokePoints,omitempty"`
	Union              UnionEngine       `json:"-"`
}

func (in *Input) Merger() CellMerger {
	if in.Merge == ConcaveMerge {
		return ConcaveMerger{Tolerance: in.ConcavityTolerance}
	}
	return ConvexMerger{}
}

type Result struct {
	Points    []Point    `json:"points"`
	Triangles []Triangle `json:"triangles"`
	Regions   [][]Point  `json:"regions"`
	Hulls     [][]Point  `json:"hulls"`
	Depths    []float64  `json:"depths"`
}

// Stages holds the output of every pipeline stage, for callers that want to
// inspect intermediate geometry.
type Stages struct {
	Sample     BoundarySample
	Triangles  []Triangle
	Cells      [][]int
	CellDepths []float64
	Result     *Result
}

func SamplePoints(in *Input) BoundarySample {
	if in.Triangulation == UnconstrainedTriangulation {
		return BoundarySample{Points: GenerateBoundaryPoints(&in.Scene)}
	}
	return GenerateBoundaryPointsWithEdges(&in.Scene, in.Union)
}

// Triangulate the sample and drop triangles outside free space.
func TriangulateSample(in *Input, sample BoundarySample) []Triangle {
	if in.Triangulation == UnconstrainedTriangulation {
		return FilterTriangles(Delaunay(sample.Points), sample.Points, &in.Scene)
	}
	triangles := ConstrainedDelaunay(sample.Points, sample.ConstraintEdges)
	// Constraints alone miss triangles inside union seams and nested obstacles
	if in.HasObstacles() {
		triangles = FilterTriangles(triangles, sample.Points, &in.Scene)
	}
	return triangles
}

func BuildRegions(in *Input, points []Point, triangles []Triangle, cells [][]int, depths []float64) *Result {
	regions := make([][]Point, len(cells))
	for i, cell := range cells {
		regions[i] = Gather(cell, points)
	}
	split := SplitChokePoints(regions, depths, in.ChokePoints)
	return &Result{
		Points:    points,
		Triangles: triangles,
		Regions:   split.Regions,
		Hulls:     split.Hulls,
		Depths:    split.Depths,
	}
}

func RunStages(in *Input) *Stages {
	stages := &Stages{}
	stages.Sample = SamplePoints(in)
	stages.Triangles = TriangulateSample(in, stages.Sample)
	stages.Cells, stages.CellDepths = in.Merger().Merge(stages.Triangles, stages.Sample.Points)
	stages.Result = BuildRegions(in, stages.Sample.Points, stages.Triangles, stages.Cells, stages.CellDepths)

	logs.WithTag("triangulation", in.Triangulation).
		WithTag("merge", in.Merge).
		WithTag("points", len(stages.Sample.Points)).
		WithTag("triangles", len(stages.Triangles)).
		WithTag("cells", len(stages.Cells)).
		WithTag("regions", len(stages.Result.Regions)).
		Debug("decomposition done")
	return stages
}

// Run every stage and return only the final result.
func Compute(in *Input) *Result {
	return RunStages(in).Result
}
