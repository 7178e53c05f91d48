// Package geom defines the 2D primitives consumed by the sketch engine.
//
// Primitives are exact, value-typed descriptions of geometry: a Line, a
// Circle, or an Arc. They carry no identity beyond their coordinates and are
// immutable by convention (copy, never mutate). A Sketch aggregates the
// primitives extracted from one projection of a part, the form in which a
// CAD backend hands geometry to the drawing pipeline.
package geom

import (
	"math"

	"github.com/timcondit/kintsugi/pkg/errors"
)

// Point is a 2D coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is an ordered point sequence approximating a curve.
type Polyline []Point

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Line is a straight segment between two endpoints.
type Line struct {
	Start, End Point
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.Start.Dist(l.End)
}

// Validate always succeeds: degenerate (near-zero length) lines are legal
// input and handled by the sketch engine rather than rejected here.
func (l Line) Validate() error {
	return nil
}

// Circle is a full circle defined by center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// Validate rejects non-positive radii.
func (c Circle) Validate() error {
	if c.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidPrimitive, "circle radius must be positive, got %g", c.Radius)
	}
	return nil
}

// Arc is a circular arc from Start to End around Center. The swept angle is
// derived from the endpoints via atan2; Radius is carried explicitly because
// projected endpoints may sit slightly off the true circle.
type Arc struct {
	Start, End Point
	Center     Point
	Radius     float64
}

// StartAngle returns the angle of Start around Center, in (-π, π].
func (a Arc) StartAngle() float64 {
	return math.Atan2(a.Start.Y-a.Center.Y, a.Start.X-a.Center.X)
}

// EndAngle returns the angle of End around Center, in (-π, π].
func (a Arc) EndAngle() float64 {
	return math.Atan2(a.End.Y-a.Center.Y, a.End.X-a.Center.X)
}

// Validate rejects non-positive radii and arcs whose endpoints coincide with
// the center, which would leave the sweep direction undefined.
func (a Arc) Validate() error {
	if a.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidPrimitive, "arc radius must be positive, got %g", a.Radius)
	}
	if a.Start == a.Center || a.End == a.Center {
		return errors.New(errors.ErrCodeInvalidPrimitive, "arc endpoint coincides with center, sweep direction undefined")
	}
	return nil
}

// Sketch is the 2D geometry of one projected view: the raw primitive lists a
// CAD backend produces, before any perturbation is applied.
type Sketch struct {
	Lines   []Line
	Circles []Circle
	Arcs    []Arc
}

// Empty returns a Sketch with no primitives.
func Empty() Sketch {
	return Sketch{}
}

// PrimitiveCount returns the total number of primitives in the sketch.
func (s Sketch) PrimitiveCount() int {
	return len(s.Lines) + len(s.Circles) + len(s.Arcs)
}

// Validate checks every primitive and returns the first validation failure.
func (s Sketch) Validate() error {
	for _, c := range s.Circles {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, a := range s.Arcs {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}
