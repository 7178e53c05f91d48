package sketch

import (
	"math"

	"github.com/timcondit/kintsugi/pkg/geom"
)

// Sampling densities. Point counts scale with geometric size so longer lines
// and larger radii get proportionally more wobble detail, never dropping
// below a floor that keeps short strokes from collapsing to straight lines.
const (
	// minLineLength is the degenerate-line threshold: below it the segment
	// is returned unperturbed, avoiding division by zero when normalizing
	// the perpendicular direction.
	minLineLength = 0.001

	linePointsPerUnit = 20
	minLineIntervals  = 3

	arcPointsPerRadius = 5
	minArcIntervals    = 10

	// DefaultCirclePoints is the angular sample count for a full circle.
	DefaultCirclePoints = 60
)

// Sketcher applies wabi-sabi perturbation to geometric primitives. It is
// immutable after construction and safe for concurrent use.
type Sketcher struct {
	config Config
	noise  Source
}

// Option customizes a Sketcher.
type Option func(*Sketcher)

// WithSource replaces the default hash noise source. The replacement must be
// pure; a smooth noise field changes visual output but the engine contract
// (bounded offsets, deterministic polylines) is preserved.
func WithSource(src Source) Option {
	return func(s *Sketcher) { s.noise = src }
}

// New creates a Sketcher for the given configuration.
// It returns an INVALID_CONFIG error if the configuration is rejected.
func New(cfg Config, opts ...Option) (*Sketcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sketcher{
		config: cfg,
		noise:  NewHashSource(cfg.Seed),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the sketcher's configuration.
func (s *Sketcher) Config() Config {
	return s.config
}

// Line perturbs a line segment into a polyline.
//
// Segments shorter than 0.001 are returned as their two endpoints,
// unmodified. Otherwise the segment is sampled at max(3, ⌊length·20⌋)+1
// evenly spaced points and each sample is offset along the segment's fixed
// perpendicular by noise·amplitude. The noise query shifts the x input by
// the parametric position t; without that shift, axis-aligned segments at
// the same scaled coordinate would sample identical noise at every point.
func (s *Sketcher) Line(l geom.Line) geom.Polyline {
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	length := math.Hypot(dx, dy)

	if length < minLineLength {
		return geom.Polyline{l.Start, l.End}
	}

	// Perpendicular unit vector, fixed for the whole segment so the stroke
	// wobbles as one coherent gesture.
	nx := -dy / length
	ny := dx / length

	intervals := max(minLineIntervals, int(length*linePointsPerUnit))

	points := make(geom.Polyline, 0, intervals+1)
	for i := 0; i <= intervals; i++ {
		t := float64(i) / float64(intervals)
		baseX := l.Start.X + dx*t
		baseY := l.Start.Y + dy*t

		noise := s.noise.Sample(
			baseX*s.config.NoiseScale+t,
			baseY*s.config.NoiseScale,
		)
		offset := noise * s.config.NoiseAmplitude

		points = append(points, geom.Point{
			X: baseX + nx*offset,
			Y: baseY + ny*offset,
		})
	}
	return points
}

// Circle perturbs a full circle with the default angular sample count.
// It returns an INVALID_PRIMITIVE error for non-positive radii.
func (s *Sketcher) Circle(c geom.Circle) (geom.Polyline, error) {
	return s.CircleN(c, DefaultCirclePoints)
}

// CircleN perturbs a full circle sampled at numPoints equal angular steps
// over [0, 2π). The final step back to angle 0 is NOT emitted; the loop is
// closed by the downstream renderer, not by duplicating the start point.
//
// Noise is sampled on a unit circle around the scaled center rather than at
// the perturbed point itself. Because cos/sin wrap continuously, the noise
// input at the last sample sits adjacent to the first, which is what keeps
// the closed stroke free of a visible seam.
func (s *Sketcher) CircleN(c geom.Circle, numPoints int) (geom.Polyline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if numPoints < 1 {
		numPoints = DefaultCirclePoints
	}

	points := make(geom.Polyline, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		angle := float64(i) / float64(numPoints) * 2 * math.Pi
		points = append(points, s.radialPoint(c.Center, c.Radius, angle))
	}
	return points, nil
}

// Arc perturbs a circular arc between its endpoints.
//
// The sweep interpolates linearly from the start angle to the end angle as
// returned by atan2, with no shortest-path correction: when the two angles
// straddle the ±π cut, the arc sweeps the long way around. This matches the
// reference renderer's output and is kept deliberately.
//
// It returns an INVALID_PRIMITIVE error for non-positive radii or endpoints
// coincident with the center.
func (s *Sketcher) Arc(a geom.Arc) (geom.Polyline, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	startAngle := a.StartAngle()
	endAngle := a.EndAngle()

	intervals := max(minArcIntervals, int(a.Radius*arcPointsPerRadius))

	points := make(geom.Polyline, 0, intervals+1)
	for i := 0; i <= intervals; i++ {
		t := float64(i) / float64(intervals)
		angle := startAngle + (endAngle-startAngle)*t
		points = append(points, s.radialPoint(a.Center, a.Radius, angle))
	}
	return points, nil
}

// radialPoint emits one perturbed point at the given angle around center,
// using the shared circle/arc noise-query technique.
func (s *Sketcher) radialPoint(center geom.Point, radius, angle float64) geom.Point {
	cos := math.Cos(angle)
	sin := math.Sin(angle)

	noise := s.noise.Sample(
		center.X*s.config.NoiseScale+cos,
		center.Y*s.config.NoiseScale+sin,
	)
	r := radius + noise*s.config.NoiseAmplitude

	return geom.Point{
		X: center.X + r*cos,
		Y: center.Y + r*sin,
	}
}

// Sketch perturbs every primitive in a projected sketch, returning one
// polyline per primitive in input order (lines, then circles, then arcs).
func (s *Sketcher) Sketch(sk geom.Sketch) ([]geom.Polyline, error) {
	strokes := make([]geom.Polyline, 0, sk.PrimitiveCount())
	for _, l := range sk.Lines {
		strokes = append(strokes, s.Line(l))
	}
	for _, c := range sk.Circles {
		stroke, err := s.Circle(c)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, stroke)
	}
	for _, a := range sk.Arcs {
		stroke, err := s.Arc(a)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, stroke)
	}
	return strokes, nil
}

// PerturbLine is a convenience wrapper constructing a one-shot Sketcher.
func PerturbLine(l geom.Line, cfg Config) (geom.Polyline, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return s.Line(l), nil
}

// PerturbCircle is a convenience wrapper constructing a one-shot Sketcher.
func PerturbCircle(c geom.Circle, cfg Config) (geom.Polyline, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return s.Circle(c)
}

// PerturbArc is a convenience wrapper constructing a one-shot Sketcher.
func PerturbArc(a geom.Arc, cfg Config) (geom.Polyline, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return s.Arc(a)
}
