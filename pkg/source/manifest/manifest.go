// Package manifest loads drawing scenes from TOML files.
//
// A scene manifest declares everything one drawing needs: sheet metadata,
// sketch tuning, the ideal geometry (lines, circles, arcs), and the
// annotation layer (dimensions, callouts, hatching, centerlines, labels).
// Loading is pure deserialization plus validation; perturbation and
// rendering happen downstream in the pipeline.
package manifest

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/timcondit/kintsugi/pkg/drawing"
	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/geom"
	"github.com/timcondit/kintsugi/pkg/sketch"
	"github.com/timcondit/kintsugi/pkg/text"
)

// Scene is a fully validated drawing scene.
type Scene struct {
	Name   string
	Title  string
	Width  float64
	Height float64

	Sketch geom.Sketch
	Config sketch.Config
	Text   text.Config

	Dimensions  []drawing.Dimension
	Callouts    []drawing.Callout
	Hatches     []drawing.HatchRegion
	CenterLines []drawing.CenterLine
	Labels      []drawing.Label

	// Raw holds the manifest bytes the scene was parsed from.
	// The pipeline hashes it for cache keys.
	Raw []byte
}

// Load reads and parses a scene manifest from disk.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene manifest %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to read scene manifest %s", path)
	}
	return Parse(data)
}

// Parse parses a scene manifest from raw TOML bytes.
func Parse(data []byte) (*Scene, error) {
	file := sceneFile{
		Sketch: sketch.DefaultConfig(),
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "failed to parse scene manifest")
	}

	if file.Scene.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene name is required")
	}

	s := &Scene{
		Name:   file.Scene.Name,
		Title:  file.Scene.Title,
		Width:  file.Scene.Width,
		Height: file.Scene.Height,
		Config: file.Sketch,
		Raw:    data,
	}
	if s.Width == 0 {
		s.Width = drawing.DefaultWidth
	}
	if s.Height == 0 {
		s.Height = drawing.DefaultHeight
	}
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}

	textCfg, err := file.Text.toConfig()
	if err != nil {
		return nil, err
	}
	s.Text = textCfg

	if err := s.buildGeometry(file); err != nil {
		return nil, err
	}
	if err := s.buildAnnotations(file); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) buildGeometry(file sceneFile) error {
	for i, e := range file.Lines {
		start, err := e.Start.point("line", i, "start")
		if err != nil {
			return err
		}
		end, err := e.End.point("line", i, "end")
		if err != nil {
			return err
		}
		s.Sketch.Lines = append(s.Sketch.Lines, geom.Line{Start: start, End: end})
	}

	for i, e := range file.Circles {
		center, err := e.Center.point("circle", i, "center")
		if err != nil {
			return err
		}
		c := geom.Circle{Center: center, Radius: e.Radius}
		if err := c.Validate(); err != nil {
			return err
		}
		s.Sketch.Circles = append(s.Sketch.Circles, c)
	}

	for i, e := range file.Arcs {
		start, err := e.Start.point("arc", i, "start")
		if err != nil {
			return err
		}
		end, err := e.End.point("arc", i, "end")
		if err != nil {
			return err
		}
		center, err := e.Center.point("arc", i, "center")
		if err != nil {
			return err
		}
		a := geom.Arc{Start: start, End: end, Center: center, Radius: e.Radius}
		if err := a.Validate(); err != nil {
			return err
		}
		s.Sketch.Arcs = append(s.Sketch.Arcs, a)
	}
	return nil
}

func (s *Scene) buildAnnotations(file sceneFile) error {
	for i, e := range file.Dimensions {
		from, err := e.From.point("dimension", i, "from")
		if err != nil {
			return err
		}
		to, err := e.To.point("dimension", i, "to")
		if err != nil {
			return err
		}
		side, err := parseSide(e.Side)
		if err != nil {
			return err
		}
		d := drawing.Dimension{
			X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y,
			Label:  e.Label,
			Offset: e.Offset,
			Side:   side,
		}
		if d.Offset == 0 {
			d.Offset = drawing.DefaultDimensionOffset
		}
		s.Dimensions = append(s.Dimensions, d)
	}

	for i, e := range file.Callouts {
		at, err := e.At.point("callout", i, "at")
		if err != nil {
			return err
		}
		c := drawing.Callout{X: at.X, Y: at.Y, Number: e.Number, Radius: e.Radius}
		if c.Radius == 0 {
			c.Radius = drawing.DefaultCalloutRadius
		}
		s.Callouts = append(s.Callouts, c)
	}

	for i, e := range file.Hatches {
		origin, err := e.Origin.point("hatch", i, "origin")
		if err != nil {
			return err
		}
		size, err := e.Size.point("hatch", i, "size")
		if err != nil {
			return err
		}
		h := drawing.HatchRegion{
			X: origin.X, Y: origin.Y,
			Width: size.X, Height: size.Y,
			AngleDeg: e.Angle,
			Spacing:  e.Spacing,
		}
		if h.AngleDeg == 0 {
			h.AngleDeg = drawing.DefaultHatchAngle
		}
		if h.Spacing == 0 {
			h.Spacing = drawing.DefaultHatchSpacing
		}
		s.Hatches = append(s.Hatches, h)
	}

	for i, e := range file.CenterLines {
		from, err := e.From.point("centerline", i, "from")
		if err != nil {
			return err
		}
		to, err := e.To.point("centerline", i, "to")
		if err != nil {
			return err
		}
		s.CenterLines = append(s.CenterLines, drawing.CenterLine{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y})
	}

	for i, e := range file.Labels {
		at, err := e.At.point("label", i, "at")
		if err != nil {
			return err
		}
		style := e.Style
		if style == "" {
			style = "note"
		}
		s.Labels = append(s.Labels, drawing.Label{Text: e.Text, X: at.X, Y: at.Y, Style: style})
	}
	return nil
}

func parseSide(s string) (drawing.Side, error) {
	switch drawing.Side(s) {
	case "":
		return drawing.SideAbove, nil
	case drawing.SideLeft, drawing.SideRight, drawing.SideAbove, drawing.SideBelow:
		return drawing.Side(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidScene, "unknown dimension side %q (must be left, right, above, or below)", s)
	}
}

// sceneFile mirrors the TOML layout of a scene manifest.
type sceneFile struct {
	Scene struct {
		Name   string  `toml:"name"`
		Title  string  `toml:"title"`
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"scene"`

	Sketch sketch.Config `toml:"sketch"`
	Text   textSection   `toml:"text"`

	Lines       []lineEntry       `toml:"line"`
	Circles     []circleEntry     `toml:"circle"`
	Arcs        []arcEntry        `toml:"arc"`
	Dimensions  []dimensionEntry  `toml:"dimension"`
	Callouts    []calloutEntry    `toml:"callout"`
	Hatches     []hatchEntry      `toml:"hatch"`
	CenterLines []centerlineEntry `toml:"centerline"`
	Labels      []labelEntry      `toml:"label"`
}

type textSection struct {
	Font   string  `toml:"font"`
	Size   float64 `toml:"size"`
	Wobble float64 `toml:"wobble"`
}

func (t textSection) toConfig() (text.Config, error) {
	cfg := text.DefaultConfig()
	if t.Font != "" {
		cfg.Font = text.Font(t.Font)
	}
	if t.Size != 0 {
		cfg.Size = t.Size
	}
	if t.Wobble != 0 {
		cfg.Wobble = t.Wobble
	}
	if err := cfg.Validate(); err != nil {
		return text.Config{}, err
	}
	return cfg, nil
}

// xy is a TOML coordinate pair, written as [x, y].
type xy []float64

func (p xy) point(section string, index int, field string) (geom.Point, error) {
	if len(p) != 2 {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidScene,
			"%s %d: %s must be a coordinate pair [x, y], got %d values", section, index, field, len(p))
	}
	return geom.Point{X: p[0], Y: p[1]}, nil
}

type lineEntry struct {
	Start xy `toml:"start"`
	End   xy `toml:"end"`
}

type circleEntry struct {
	Center xy      `toml:"center"`
	Radius float64 `toml:"radius"`
}

type arcEntry struct {
	Start  xy      `toml:"start"`
	End    xy      `toml:"end"`
	Center xy      `toml:"center"`
	Radius float64 `toml:"radius"`
}

type dimensionEntry struct {
	From   xy      `toml:"from"`
	To     xy      `toml:"to"`
	Label  string  `toml:"label"`
	Offset float64 `toml:"offset"`
	Side   string  `toml:"side"`
}

type calloutEntry struct {
	At     xy      `toml:"at"`
	Number int     `toml:"number"`
	Radius float64 `toml:"radius"`
}

type hatchEntry struct {
	Origin  xy      `toml:"origin"`
	Size    xy      `toml:"size"`
	Angle   float64 `toml:"angle"`
	Spacing float64 `toml:"spacing"`
}

type centerlineEntry struct {
	From xy `toml:"from"`
	To   xy `toml:"to"`
}

type labelEntry struct {
	Text  string `toml:"text"`
	At    xy     `toml:"at"`
	Style string `toml:"style"`
}
