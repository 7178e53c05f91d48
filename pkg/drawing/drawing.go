// Package drawing composes 2D engineering drawings.
//
// A Drawing collects everything one sheet carries: perturbed sketch strokes,
// hand-lettered text paths, and the exact annotation layer (dimensions,
// callouts, hatching, centerlines, labels). Composition is pure bookkeeping;
// geometry perturbation lives in pkg/sketch and serialization in
// pkg/render/svg.
package drawing

import "github.com/timcondit/kintsugi/pkg/geom"

// Palette is the warm wood-shop color scheme shared by all renderers.
// Keys: ink, brown, amber, tan, cream, parchment, linen, hatch.
var Palette = map[string]string{
	"ink":       "#3a2a1a",
	"brown":     "#6b3a1f",
	"amber":     "#b5651d",
	"tan":       "#c8934a",
	"cream":     "#f5f0e8",
	"parchment": "#ede5d4",
	"linen":     "#e8dcc8",
	"hatch":     "#8b5a2b",
}

// Stroke weights in drawing units.
const (
	StrokeHeavy  = "1.8"
	StrokeMedium = "1.2"
	StrokeLight  = "0.75"
)

// Default sheet dimensions.
const (
	DefaultWidth  = 500.0
	DefaultHeight = 380.0
)

// Default annotation parameters.
const (
	DefaultDimensionOffset = 12.0
	DefaultCalloutRadius   = 10.0
	DefaultHatchAngle      = 45.0
	DefaultHatchSpacing    = 6.0
)

// Side selects which side of a measured span a dimension line sits on.
type Side string

// Dimension line placements.
const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideAbove Side = "above"
	SideBelow Side = "below"
)

// Dimension is a linear dimension with extension lines, arrows, and a label.
type Dimension struct {
	X1, Y1, X2, Y2 float64
	Label          string
	Offset         float64
	Side           Side
}

// Callout is a numbered callout bubble.
type Callout struct {
	X, Y   float64
	Number int
	Radius float64
}

// HatchRegion is a rectangular diagonal-hatching region.
type HatchRegion struct {
	X, Y          float64
	Width, Height float64
	AngleDeg      float64
	Spacing       float64
}

// CenterLine is a dash-dot center line.
type CenterLine struct {
	X1, Y1, X2, Y2 float64
}

// Label is a positioned text annotation. Style selects the rendered color
// ("dimension" or "note").
type Label struct {
	Text  string
	X, Y  float64
	Style string
}

// Drawing is a complete 2D drawing composition.
type Drawing struct {
	Width      float64
	Height     float64
	Background string

	Dimensions  []Dimension
	Callouts    []Callout
	Hatches     []HatchRegion
	CenterLines []CenterLine

	SketchPaths []geom.Polyline
	TextPaths   []geom.Polyline
	Labels      []Label
}

// New creates a Drawing with the given sheet size and the default
// background.
func New(width, height float64) *Drawing {
	return &Drawing{
		Width:      width,
		Height:     height,
		Background: Palette["cream"],
	}
}

// AddDimension adds a dimension line with default offset and placement.
func (d *Drawing) AddDimension(x1, y1, x2, y2 float64, label string) *Drawing {
	d.Dimensions = append(d.Dimensions, Dimension{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		Label:  label,
		Offset: DefaultDimensionOffset,
		Side:   SideAbove,
	})
	return d
}

// AddCallout adds a numbered callout bubble.
func (d *Drawing) AddCallout(x, y float64, number int) *Drawing {
	d.Callouts = append(d.Callouts, Callout{X: x, Y: y, Number: number, Radius: DefaultCalloutRadius})
	return d
}

// AddHatch adds a 45° hatch region with default spacing.
func (d *Drawing) AddHatch(x, y, width, height float64) *Drawing {
	d.Hatches = append(d.Hatches, HatchRegion{
		X: x, Y: y, Width: width, Height: height,
		AngleDeg: DefaultHatchAngle,
		Spacing:  DefaultHatchSpacing,
	})
	return d
}

// AddCenterLine adds a dash-dot center line.
func (d *Drawing) AddCenterLine(x1, y1, x2, y2 float64) *Drawing {
	d.CenterLines = append(d.CenterLines, CenterLine{X1: x1, Y1: y1, X2: x2, Y2: y2})
	return d
}

// AddSketchPath adds a perturbed sketch stroke.
func (d *Drawing) AddSketchPath(path geom.Polyline) *Drawing {
	d.SketchPaths = append(d.SketchPaths, path)
	return d
}

// AddTextPath adds a hand-lettered stroke path.
func (d *Drawing) AddTextPath(path geom.Polyline) *Drawing {
	d.TextPaths = append(d.TextPaths, path)
	return d
}

// AddLabel adds a text label in the given style.
func (d *Drawing) AddLabel(text string, x, y float64, style string) *Drawing {
	d.Labels = append(d.Labels, Label{Text: text, X: x, Y: y, Style: style})
	return d
}
