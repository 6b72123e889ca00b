package advanced

import (
	"io"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// This is for debugging purposes only

const drawPadding = 10

// Render the decomposition to a PNG: obstacles in red, triangles as thin
// grey lines, regions filled and outlined.
func DrawResult(path string, result *Result, scene *Scene, scale float64) error {
	b := scene.Bounds
	width := int(scale*(b.MaxX-b.MinX)) + drawPadding*2
	height := int(scale*(b.MaxY-b.MinY)) + drawPadding*2
	if width <= 0 || height <= 0 || math.IsNaN(scale) {
		return errors.Newf("cannot draw %gx%g bounds at scale %g", b.MaxX-b.MinX, b.MaxY-b.MinY, scale)
	}

	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-b.MinX, -b.MinY)

	tracePath := func(ring []Point) {
		if len(ring) == 0 {
			return
		}
		c.MoveTo(ring[0].X, ring[0].Y)
		for _, p := range ring[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
	}

	c.SetLineWidth(1 / scale)
	for _, region := range result.Regions {
		tracePath(region)
		c.SetRGBA(0, 0.5, 0, 0.6)
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}

	c.SetRGBA(1, 1, 1, 0.25)
	for _, t := range result.Triangles {
		tracePath(Gather(t[:], result.Points))
		c.Stroke()
	}

	c.SetRGB(1, 0.2, 0.2)
	for _, via := range scene.Vias {
		c.DrawCircle(via.Center.X, via.Center.Y, via.Diameter/2)
		c.Fill()
	}
	for _, rect := range scene.Rects {
		tracePath(rect.Corners(0))
		c.Fill()
	}
	for _, polygon := range scene.Polygons {
		tracePath(polygon.Points)
		c.Fill()
	}

	return c.SavePNG(path)
}

// Print a PNG inline on terminals that support it.
func CatImage(path string, w io.Writer) error {
	return imgcat.CatFile(path, w)
}
