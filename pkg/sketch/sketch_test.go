package sketch

import (
	"math"
	"math/rand"
	"testing"

	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/geom"
)

func newSketcher(t *testing.T, cfg Config) *Sketcher {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%+v): %v", cfg, err)
	}
	return s
}

func TestNew_RejectsNegativeScale(t *testing.T) {
	_, err := New(Config{NoiseScale: -0.01, NoiseAmplitude: 1.5})
	if err == nil {
		t.Fatal("expected error for negative noise scale")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestNew_ZeroScaleAndAmplitudeValid(t *testing.T) {
	if _, err := New(Config{}); err != nil {
		t.Errorf("zero config should be valid, got %v", err)
	}
}

func TestLine_PointCount(t *testing.T) {
	tests := []struct {
		name       string
		start, end geom.Point
		want       int
	}{
		{"unit line", geom.Point{}, geom.Point{X: 1}, max(3, 20) + 1},
		{"hundred units", geom.Point{}, geom.Point{X: 100}, 2001},
		{"short line floor", geom.Point{}, geom.Point{X: 0.05}, 3 + 1},
		{"diagonal", geom.Point{}, geom.Point{X: 3, Y: 4}, max(3, int(5.0*20)) + 1},
	}

	s := newSketcher(t, DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Line(geom.Line{Start: tt.start, End: tt.end})
			if len(got) != tt.want {
				t.Errorf("point count = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestLine_DegenerateReturnsEndpoints(t *testing.T) {
	s := newSketcher(t, DefaultConfig())
	l := geom.Line{Start: geom.Point{}, End: geom.Point{X: 0.0005}}

	got := s.Line(l)
	if len(got) != 2 {
		t.Fatalf("degenerate line: %d points, want 2", len(got))
	}
	if got[0] != l.Start || got[1] != l.End {
		t.Errorf("degenerate line must pass endpoints through unmodified, got %v", got)
	}
}

func TestLine_EndpointsNearIdeal(t *testing.T) {
	cfg := Config{NoiseScale: 0.02, NoiseAmplitude: 1.5}
	s := newSketcher(t, cfg)

	l := geom.Line{Start: geom.Point{}, End: geom.Point{X: 100}}
	got := s.Line(l)

	if len(got) != 2001 {
		t.Fatalf("point count = %d, want 2001", len(got))
	}
	if d := got[0].Dist(l.Start); d > cfg.NoiseAmplitude {
		t.Errorf("first point %.4g from start, want <= %g", d, cfg.NoiseAmplitude)
	}
	if d := got[len(got)-1].Dist(l.End); d > cfg.NoiseAmplitude {
		t.Errorf("last point %.4g from end, want <= %g", d, cfg.NoiseAmplitude)
	}
}

func TestLine_OffsetBound(t *testing.T) {
	// Every perturbed sample must sit within amplitude of its ideal point,
	// across randomized segments. Randomness only picks the geometry; the
	// perturbation itself is deterministic.
	cfg := Config{NoiseScale: 0.05, NoiseAmplitude: 2.0}
	s := newSketcher(t, cfg)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		l := geom.Line{
			Start: geom.Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100},
			End:   geom.Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100},
		}
		if l.Length() < minLineLength {
			continue
		}

		got := s.Line(l)
		dx := l.End.X - l.Start.X
		dy := l.End.Y - l.Start.Y
		intervals := len(got) - 1
		for j, p := range got {
			tt := float64(j) / float64(intervals)
			ideal := geom.Point{X: l.Start.X + dx*tt, Y: l.Start.Y + dy*tt}
			if d := p.Dist(ideal); d > cfg.NoiseAmplitude {
				t.Fatalf("line %d sample %d: offset %.6g exceeds amplitude %g", i, j, d, cfg.NoiseAmplitude)
			}
		}
	}
}

func TestLine_ZeroAmplitudeIsIdealCurve(t *testing.T) {
	s := newSketcher(t, Config{NoiseScale: 0.02})
	l := geom.Line{Start: geom.Point{X: 3, Y: -2}, End: geom.Point{X: 10, Y: 5}}

	got := s.Line(l)
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	intervals := len(got) - 1
	for i, p := range got {
		tt := float64(i) / float64(intervals)
		ideal := geom.Point{X: l.Start.X + dx*tt, Y: l.Start.Y + dy*tt}
		if math.Abs(p.X-ideal.X) > 1e-12 || math.Abs(p.Y-ideal.Y) > 1e-12 {
			t.Fatalf("sample %d = %v, want ideal %v", i, p, ideal)
		}
	}
}

func TestLine_Deterministic(t *testing.T) {
	s := newSketcher(t, DefaultConfig())
	l := geom.Line{Start: geom.Point{X: 1, Y: 2}, End: geom.Point{X: 80, Y: 40}}

	a := s.Line(l)
	b := s.Line(l)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCircle_PointCountAndStep(t *testing.T) {
	cfg := Config{NoiseScale: 0.02, NoiseAmplitude: 1.5}
	s := newSketcher(t, cfg)
	c := geom.Circle{Center: geom.Point{X: 50, Y: 50}, Radius: 25}

	got, err := s.Circle(c)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	if len(got) != DefaultCirclePoints {
		t.Fatalf("point count = %d, want %d", len(got), DefaultCirclePoints)
	}

	// Radial offsets never change a sample's angle, so consecutive samples
	// must be exactly one angular step apart.
	step := 2 * math.Pi / float64(DefaultCirclePoints)
	for i := 1; i < len(got); i++ {
		a1 := math.Atan2(got[i-1].Y-c.Center.Y, got[i-1].X-c.Center.X)
		a2 := math.Atan2(got[i].Y-c.Center.Y, got[i].X-c.Center.X)
		delta := math.Mod(a2-a1+2*math.Pi, 2*math.Pi)
		if math.Abs(delta-step) > 1e-9 {
			t.Fatalf("angular step %d = %.12g, want %.12g", i, delta, step)
		}
	}
}

func TestCircle_RadialBound(t *testing.T) {
	cfg := Config{NoiseScale: 0.02, NoiseAmplitude: 1.5}
	s := newSketcher(t, cfg)
	c := geom.Circle{Center: geom.Point{X: 50, Y: 50}, Radius: 25}

	got, err := s.Circle(c)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	for i, p := range got {
		d := p.Dist(c.Center)
		if d < c.Radius-cfg.NoiseAmplitude || d > c.Radius+cfg.NoiseAmplitude {
			t.Errorf("sample %d: radius %.4g outside [%.4g, %.4g]", i, d, c.Radius-cfg.NoiseAmplitude, c.Radius+cfg.NoiseAmplitude)
		}
	}
}

func TestCircle_SeamContinuity(t *testing.T) {
	// The last sample sits one angular step before the start; the renderer
	// closes the loop. First and last must land close together.
	s := newSketcher(t, DefaultConfig())
	c := geom.Circle{Center: geom.Point{X: 50, Y: 50}, Radius: 25}

	got, err := s.Circle(c)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	gap := got[0].Dist(got[len(got)-1])
	// One angular step of arc length plus worst-case opposing offsets.
	maxGap := 2*math.Pi*(c.Radius+1.5)/DefaultCirclePoints + 2*1.5
	if gap > maxGap {
		t.Errorf("closing gap %.4g, want <= %.4g", gap, maxGap)
	}
}

func TestCircle_ZeroAmplitudeExact(t *testing.T) {
	s := newSketcher(t, Config{NoiseScale: 0.02})
	c := geom.Circle{Center: geom.Point{X: 10, Y: -4}, Radius: 7}

	got, err := s.Circle(c)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	for i, p := range got {
		angle := float64(i) / float64(len(got)) * 2 * math.Pi
		ideal := geom.Point{
			X: c.Center.X + c.Radius*math.Cos(angle),
			Y: c.Center.Y + c.Radius*math.Sin(angle),
		}
		if math.Abs(p.X-ideal.X) > 1e-12 || math.Abs(p.Y-ideal.Y) > 1e-12 {
			t.Fatalf("sample %d = %v, want ideal %v", i, p, ideal)
		}
	}
}

func TestCircle_InvalidRadius(t *testing.T) {
	s := newSketcher(t, DefaultConfig())
	for _, r := range []float64{0, -5} {
		_, err := s.Circle(geom.Circle{Center: geom.Point{}, Radius: r})
		if !errors.Is(err, errors.ErrCodeInvalidPrimitive) {
			t.Errorf("radius %g: error code = %q, want INVALID_PRIMITIVE", r, errors.GetCode(err))
		}
	}
}

func TestArc_PointCount(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   int
	}{
		{"small radius floor", 1, 10 + 1},
		{"radius 25", 25, 125 + 1},
		{"radius 10", 10, 50 + 1},
	}

	s := newSketcher(t, DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := geom.Arc{
				Start:  geom.Point{X: tt.radius},
				End:    geom.Point{Y: tt.radius},
				Center: geom.Point{},
				Radius: tt.radius,
			}
			got, err := s.Arc(a)
			if err != nil {
				t.Fatalf("Arc: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("point count = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestArc_LongWaySweep(t *testing.T) {
	// Endpoints at 170° and -170° straddle the ±π cut. Linear angle
	// interpolation without wraparound correction sweeps the long way
	// through angle 0, so the midpoint lands on the positive x side.
	const r = 10.0
	start := geom.Point{X: r * math.Cos(170*math.Pi/180), Y: r * math.Sin(170*math.Pi/180)}
	end := geom.Point{X: r * math.Cos(-170*math.Pi/180), Y: r * math.Sin(-170*math.Pi/180)}

	s := newSketcher(t, DefaultConfig())
	got, err := s.Arc(geom.Arc{Start: start, End: end, Center: geom.Point{}, Radius: r})
	if err != nil {
		t.Fatalf("Arc: %v", err)
	}

	mid := got[len(got)/2]
	if mid.X <= 0 {
		t.Errorf("midpoint %v on negative x side; long-way sweep through angle 0 expected", mid)
	}
}

func TestArc_RadialBound(t *testing.T) {
	cfg := Config{NoiseScale: 0.02, NoiseAmplitude: 1.5}
	s := newSketcher(t, cfg)
	a := geom.Arc{
		Start:  geom.Point{X: 30, Y: 50},
		End:    geom.Point{X: 50, Y: 70},
		Center: geom.Point{X: 50, Y: 50},
		Radius: 20,
	}

	got, err := s.Arc(a)
	if err != nil {
		t.Fatalf("Arc: %v", err)
	}
	for i, p := range got {
		d := p.Dist(a.Center)
		if d < a.Radius-cfg.NoiseAmplitude || d > a.Radius+cfg.NoiseAmplitude {
			t.Errorf("sample %d: radius %.4g outside amplitude band", i, d)
		}
	}
}

func TestArc_Invalid(t *testing.T) {
	s := newSketcher(t, DefaultConfig())
	tests := []struct {
		name string
		arc  geom.Arc
	}{
		{"zero radius", geom.Arc{Start: geom.Point{X: 1}, End: geom.Point{Y: 1}, Radius: 0}},
		{"negative radius", geom.Arc{Start: geom.Point{X: 1}, End: geom.Point{Y: 1}, Radius: -2}},
		{"start at center", geom.Arc{Start: geom.Point{}, End: geom.Point{Y: 1}, Center: geom.Point{}, Radius: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Arc(tt.arc); !errors.Is(err, errors.ErrCodeInvalidPrimitive) {
				t.Errorf("error code = %q, want INVALID_PRIMITIVE", errors.GetCode(err))
			}
		})
	}
}

func TestSketch_AllPrimitives(t *testing.T) {
	s := newSketcher(t, DefaultConfig())
	sk := geom.Sketch{
		Lines:   []geom.Line{{Start: geom.Point{}, End: geom.Point{X: 10}}},
		Circles: []geom.Circle{{Center: geom.Point{X: 5, Y: 5}, Radius: 3}},
		Arcs:    []geom.Arc{{Start: geom.Point{X: 2}, End: geom.Point{Y: 2}, Center: geom.Point{}, Radius: 2}},
	}

	strokes, err := s.Sketch(sk)
	if err != nil {
		t.Fatalf("Sketch: %v", err)
	}
	if len(strokes) != 3 {
		t.Fatalf("stroke count = %d, want 3", len(strokes))
	}
	for i, stroke := range strokes {
		if len(stroke) < 2 {
			t.Errorf("stroke %d has %d points", i, len(stroke))
		}
	}
}

func TestSeed_ChangesOutputReproducibly(t *testing.T) {
	l := geom.Line{Start: geom.Point{}, End: geom.Point{X: 50}}

	base := newSketcher(t, Config{NoiseScale: 0.02, NoiseAmplitude: 1.5})
	seeded := newSketcher(t, Config{NoiseScale: 0.02, NoiseAmplitude: 1.5, Seed: 99})
	seeded2 := newSketcher(t, Config{NoiseScale: 0.02, NoiseAmplitude: 1.5, Seed: 99})

	a := base.Line(l)
	b := seeded.Line(l)
	c := seeded2.Line(l)

	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
		if b[i] != c[i] {
			t.Fatalf("same seed diverged at sample %d", i)
		}
	}
	if same == len(a) {
		t.Error("seeded output identical to unseeded output")
	}
}

func TestWithSource_CustomNoise(t *testing.T) {
	// A constant-valued source shifts every sample by exactly
	// value*amplitude, proving the engine is noise-function-agnostic.
	s, err := New(Config{NoiseScale: 0.02, NoiseAmplitude: 2}, WithSource(constSource(0.5)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := s.Line(geom.Line{Start: geom.Point{}, End: geom.Point{X: 10}})
	for i, p := range got {
		if math.Abs(p.Y-1.0) > 1e-12 {
			t.Fatalf("sample %d: y = %g, want 1.0 (constant offset)", i, p.Y)
		}
	}
}

type constSource float64

func (c constSource) Sample(x, y float64) float64 { return float64(c) }
