package advanced

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures into scenes. This is not a full (or even
// correct) svg parser. The root element's width and height give the bounds
// and its data-clearance attribute the clearance. Every <circle> is a via,
// every <rect> an unrotated rect, and every <polygon> a polygon obstacle. If
// anything goes wrong, it dies.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) *Input {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, false)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	attr := func(el *svgparser.Element, key string) float64 {
		value, err := strconv.ParseFloat(el.Attributes[key], 64)
		if err != nil {
			log.Fatalf("Invalid %s value %q in fixture %q: %v", key, el.Attributes[key], name, err)
		}
		return value
	}

	input := &Input{}
	input.Bounds = Bounds{MaxX: attr(rootEl, "width"), MaxY: attr(rootEl, "height")}
	input.Clearance = attr(rootEl, "data-clearance")

	for _, el := range rootEl.FindAll("circle") {
		input.Vias = append(input.Vias, Via{
			Center:   Point{attr(el, "cx"), attr(el, "cy")},
			Diameter: 2 * attr(el, "r"),
		})
	}

	for _, el := range rootEl.FindAll("rect") {
		width, height := attr(el, "width"), attr(el, "height")
		input.Rects = append(input.Rects, Rect{
			Center: Point{attr(el, "x") + width/2, attr(el, "y") + height/2},
			Width:  width,
			Height: height,
		})
	}

	for _, el := range rootEl.FindAll("polygon") {
		pointStrings := strings.Split(el.Attributes["points"], " ")
		points := make([]Point, 0, len(pointStrings))
		for _, pointString := range pointStrings {
			if pointString == "" {
				continue
			}

			xy := strings.Split(pointString, ",")
			if len(xy) != 2 {
				log.Fatalf("Invalid point string %q", pointString)
			}
			x, err := strconv.ParseFloat(xy[0], 64)
			if err != nil {
				log.Fatalf("Invalid x value %q: %v", xy[0], err)
			}
			y, err := strconv.ParseFloat(xy[1], 64)
			if err != nil {
				log.Fatalf("Invalid y value %q: %v", xy[1], err)
			}
			points = append(points, Point{x, y})
		}
		input.Polygons = append(input.Polygons, Polygon{Points: points})
	}
	return input
}

// Mirror the whole scene across the vertical line through the center of its
// bounds. Polygon winding flips, which the pipeline must not care about.
func reflectX(input *Input) {
	axis := input.Bounds.MinX + input.Bounds.MaxX
	flip := func(p Point) Point { return Point{axis - p.X, p.Y} }
	for i := range input.Vias {
		input.Vias[i].Center = flip(input.Vias[i].Center)
	}
	for i := range input.Rects {
		input.Rects[i].Center = flip(input.Rects[i].Center)
		input.Rects[i].CCWRotation = -input.Rects[i].CCWRotation
	}
	for _, polygon := range input.Polygons {
		for i := range polygon.Points {
			polygon.Points[i] = flip(polygon.Points[i])
		}
	}
}

// Mirror across the horizontal line through the center of the bounds.
func reflectY(input *Input) {
	axis := input.Bounds.MinY + input.Bounds.MaxY
	flip := func(p Point) Point { return Point{p.X, axis - p.Y} }
	for i := range input.Vias {
		input.Vias[i].Center = flip(input.Vias[i].Center)
	}
	for i := range input.Rects {
		input.Rects[i].Center = flip(input.Rects[i].Center)
		input.Rects[i].CCWRotation = -input.Rects[i].CCWRotation
	}
	for _, polygon := range input.Polygons {
		for i := range polygon.Points {
			polygon.Points[i] = flip(polygon.Points[i])
		}
	}
}
