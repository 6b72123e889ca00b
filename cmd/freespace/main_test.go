package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osuushi/freespace"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = `{
	"bounds": {"minX": 0, "maxX": 100, "minY": 0, "maxY": 100},
	"vias": [{"center": {"x": 50, "y": 50}, "diameter": 10}],
	"rects": [{"center": {"x": 20, "y": 70}, "width": 10, "height": 6, "ccwRotation": 0.3}],
	"clearance": 2
}`

func TestRun(t *testing.T) {
	t.Run("with ports", func(t *testing.T) {
		_, err := app.Parse([]string{"--ports"})
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, run(strings.NewReader(scene), &out))

		var o output
		require.NoError(t, json.Unmarshal(out.Bytes(), &o))
		require.NotNil(t, o.Result)
		assert.NotEmpty(t, o.Result.Regions)
		assert.NotEmpty(t, o.Ports)
	})

	t.Run("concave unconstrained with drawing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "regions.png")
		_, err := app.Parse([]string{"--unconstrained", "--concave", "--tolerance", "2", "--draw", path})
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, run(strings.NewReader(scene), &out))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := app.Parse([]string{})
		require.NoError(t, err)

		var out bytes.Buffer
		err = run(strings.NewReader("{"), &out)
		assert.ErrorContains(t, err, "decoding scene failed")
	})
}

func TestApplyFlags(t *testing.T) {
	t.Run("zero max splits disables splitting", func(t *testing.T) {
		_, err := app.Parse([]string{"--choke-points", "--max-splits", "0"})
		require.NoError(t, err)

		var input freespace.Input
		applyFlags(&input)
		require.NotNil(t, input.ChokePoints)
		assert.True(t, input.ChokePoints.Enabled)
		assert.Equal(t, -1, input.ChokePoints.MaxRecursiveSplits)
	})

	t.Run("explicit max splits", func(t *testing.T) {
		_, err := app.Parse([]string{"--choke-points", "--max-splits", "3"})
		require.NoError(t, err)

		var input freespace.Input
		applyFlags(&input)
		require.NotNil(t, input.ChokePoints)
		assert.Equal(t, 3, input.ChokePoints.MaxRecursiveSplits)
	})
}
