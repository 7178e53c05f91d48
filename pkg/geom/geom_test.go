package geom

import (
	"math"
	"testing"

	"github.com/timcondit/kintsugi/pkg/errors"
)

func TestPointDist(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want float64
	}{
		{"same point", Point{X: 3, Y: 4}, Point{X: 3, Y: 4}, 0},
		{"3-4-5", Point{}, Point{X: 3, Y: 4}, 5},
		{"negative coords", Point{X: -1, Y: -1}, Point{X: 2, Y: 3}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Dist(tt.q); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Dist = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestLineLength(t *testing.T) {
	l := Line{Start: Point{X: 1, Y: 1}, End: Point{X: 4, Y: 5}}
	if got := l.Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Length = %g, want 5", got)
	}
}

func TestCircleValidate(t *testing.T) {
	if err := (Circle{Radius: 1}).Validate(); err != nil {
		t.Errorf("positive radius: %v", err)
	}
	for _, r := range []float64{0, -1} {
		err := (Circle{Radius: r}).Validate()
		if !errors.Is(err, errors.ErrCodeInvalidPrimitive) {
			t.Errorf("radius %g: code = %q, want INVALID_PRIMITIVE", r, errors.GetCode(err))
		}
	}
}

func TestArcValidate(t *testing.T) {
	valid := Arc{Start: Point{X: 1}, End: Point{Y: 1}, Center: Point{}, Radius: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid arc: %v", err)
	}

	tests := []struct {
		name string
		arc  Arc
	}{
		{"zero radius", Arc{Start: Point{X: 1}, End: Point{Y: 1}, Radius: 0}},
		{"start at center", Arc{Start: Point{}, End: Point{Y: 1}, Center: Point{}, Radius: 1}},
		{"end at center", Arc{Start: Point{X: 1}, End: Point{}, Center: Point{}, Radius: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.arc.Validate(); !errors.Is(err, errors.ErrCodeInvalidPrimitive) {
				t.Errorf("code = %q, want INVALID_PRIMITIVE", errors.GetCode(err))
			}
		})
	}
}

func TestArcAngles(t *testing.T) {
	a := Arc{
		Start:  Point{X: 10, Y: 0},
		End:    Point{X: 0, Y: 10},
		Center: Point{},
		Radius: 10,
	}
	if got := a.StartAngle(); math.Abs(got) > 1e-12 {
		t.Errorf("StartAngle = %g, want 0", got)
	}
	if got := a.EndAngle(); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("EndAngle = %g, want π/2", got)
	}
}

func TestSketchValidateAndCount(t *testing.T) {
	s := Sketch{
		Lines:   []Line{{Start: Point{}, End: Point{X: 1}}},
		Circles: []Circle{{Center: Point{}, Radius: 2}},
		Arcs:    []Arc{{Start: Point{X: 1}, End: Point{Y: 1}, Radius: 1}},
	}
	if got := s.PrimitiveCount(); got != 3 {
		t.Errorf("PrimitiveCount = %d, want 3", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	s.Circles = append(s.Circles, Circle{Radius: -1})
	if err := s.Validate(); err == nil {
		t.Error("expected validation failure for bad circle")
	}

	if Empty().PrimitiveCount() != 0 {
		t.Error("Empty sketch should have no primitives")
	}
}
