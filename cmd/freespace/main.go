package main

import (
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/osuushi/freespace"
	"github.com/osuushi/freespace/advanced"
	"github.com/segmentio/encoding/json"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Demo of free-space decomposition. Input on stdin is a JSON scene:
//
//	{"bounds": {"minX": 0, "maxX": 100, "minY": 0, "maxY": 100},
//	 "vias": [{"center": {"x": 50, "y": 50}, "diameter": 10}],
//	 "clearance": 2}
//
// The result (points, triangles, regions, hulls, depths) is written to stdout
// as JSON, optionally with region ports.

var (
	app           = kingpin.New("freespace", "Decompose the free space around obstacles into regions.")
	unconstrained = app.Flag("unconstrained", "Use plain Delaunay triangulation instead of enforcing obstacle edges.").Bool()
	concave       = app.Flag("concave", "Merge cells up to a concavity tolerance instead of keeping them convex.").Bool()
	tolerance     = app.Flag("tolerance", "Concavity tolerance for --concave.").Default("0").Float64()
	viaSegments   = app.Flag("via-segments", "Sides per via ring. 0 uses the mode's default.").Default("0").Int()
	chokePoints   = app.Flag("choke-points", "Split regions at narrow necks.").Bool()
	narrowWidth   = app.Flag("narrow-width", "Maximum chord width relative to sqrt(region area) for a choke point.").Default("0.25").Float64()
	minLobe       = app.Flag("min-lobe", "Minimum share of region area each side of a choke point must keep.").Default("0.2").Float64()
	maxSplits     = app.Flag("max-splits", "Maximum choke point splits per region. 0 disables splitting.").Default("12").Int()
	union         = app.Flag("union", "Obstacle union engine.").Default("simplefeatures").Enum("simplefeatures", "none")
	withPorts     = app.Flag("ports", "Include region ports in the output.").Bool()
	drawPath      = app.Flag("draw", "Save a PNG of the result to this path.").String()
	drawScale     = app.Flag("draw-scale", "Pixels per unit for --draw.").Default("2").Float64()
	imgcat        = app.Flag("imgcat", "Print the --draw image inline in the terminal.").Bool()
	logLevel      = app.Flag("log-level", "Log level.").Default(logs.InfoLevel.String()).String()
	indent        = app.Flag("indent", "Indent the JSON output.").Bool()
)

type output struct {
	Result *freespace.Result      `json:"result"`
	Ports  []freespace.RegionPort `json:"ports,omitempty"`
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	logs.SetInlineEncoder()
	errors.Encoder = json.Marshal
	logs.SetLevel(logs.ParseLevel(*logLevel))

	if err := run(os.Stdin, os.Stdout); err != nil {
		logs.Fatal(err)
	}
}

func run(in io.Reader, out io.Writer) error {
	input, err := readInput(in)
	if err != nil {
		return err
	}
	applyFlags(&input)

	result, err := freespace.Decompose(input)
	if err != nil {
		return errors.New("decomposition failed").Wrap(err)
	}
	logs.WithTag("regions", len(result.Regions)).
		WithTag("triangles", len(result.Triangles)).
		Info("decomposed free space")

	o := output{Result: result}
	if *withPorts {
		o.Ports = freespace.Ports(input, result)
	}

	if *drawPath != "" {
		if err := advanced.DrawResult(*drawPath, result, &input.Scene, *drawScale); err != nil {
			return errors.New("drawing result failed").Wrap(err)
		}
		if *imgcat {
			if err := advanced.CatImage(*drawPath, os.Stderr); err != nil {
				logs.Warn(errors.New("printing image failed").Wrap(err))
			}
		}
	}

	encoder := json.NewEncoder(out)
	if *indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(o); err != nil {
		return errors.New("writing result failed").Wrap(err)
	}
	return nil
}

func readInput(in io.Reader) (freespace.Input, error) {
	var input freespace.Input
	data, err := io.ReadAll(in)
	if err != nil {
		return input, errors.New("reading scene failed").Wrap(err)
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, errors.New("decoding scene failed").Wrap(err)
	}
	return input, nil
}

func applyFlags(input *freespace.Input) {
	if *unconstrained {
		input.Triangulation = freespace.UnconstrainedTriangulation
	}
	if *concave {
		input.Merge = freespace.ConcaveMerge
		input.ConcavityTolerance = *tolerance
	}
	if *viaSegments > 0 {
		input.ViaSegments = *viaSegments
	}
	if *chokePoints {
		input.ChokePoints = &freespace.ChokePointConfig{
			Enabled:             true,
			MaxNarrowWidthRatio: *narrowWidth,
			MinLobeAreaRatio:    *minLobe,
			MaxRecursiveSplits:  *maxSplits,
		}
		if *maxSplits <= 0 {
			input.ChokePoints.MaxRecursiveSplits = -1
		}
	}
	if *union == "none" {
		input.Union = advanced.NoUnion{}
	}
}
