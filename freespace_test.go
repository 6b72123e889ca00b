package freespace

import (
	"os"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logs.SetLevel(logs.WarningLevel)
	os.Exit(m.Run())
}

// Smoke test. The internals are already tested.
func TestDecompose(t *testing.T) {
	input := Input{}
	input.Bounds = Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}
	input.Vias = []Via{{Center: Point{X: 50, Y: 50}, Diameter: 10}}
	input.Clearance = 2

	result, err := Decompose(input)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Triangles)
	assert.NotEmpty(t, result.Regions)
	assert.Len(t, result.Hulls, len(result.Regions))
	assert.Len(t, result.Depths, len(result.Regions))
	for _, depth := range result.Depths {
		assert.Equal(t, 0.0, depth)
	}

	ports := Ports(input, result)
	assert.NotEmpty(t, ports)
}

func TestDecompose_Empty(t *testing.T) {
	input := Input{}
	input.Bounds = Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}

	result, err := Decompose(input)
	require.NoError(t, err)
	require.NotEmpty(t, result.Regions)
	var total float64
	for _, region := range result.Regions {
		total += areaOf(region)
	}
	assert.InDelta(t, 100, total, 1e-3)
}

func areaOf(ring []Point) float64 {
	var sum float64
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		sum += a.X*b.Y - b.X*a.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}
