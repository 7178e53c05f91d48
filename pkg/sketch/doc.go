// Package sketch implements the wabi-sabi perturbation engine.
//
// The engine turns exact geometric primitives (lines, circles, arcs) into
// organic, noise-perturbed polylines that read as hand-drawn while the
// underlying dimensions stay exact. Sample points are taken along the ideal
// curve, a pseudo-random hash is queried at a position derived from each
// point, and the resulting value scaled by the configured amplitude is
// applied perpendicular to the curve (lines) or radially (circles, arcs).
//
// # Determinism
//
// The noise source is a pure function of its inputs: no state persists
// between calls, so perturbing the same primitive with the same Config twice
// yields bit-identical polylines. Seeding changes the hash phase, giving
// reproducible-but-distinct drawings per seed.
//
// # Usage
//
//	s, err := sketch.New(sketch.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	stroke := s.Line(geom.Line{Start: geom.Point{X: 0, Y: 0}, End: geom.Point{X: 100, Y: 0}})
//	loop, err := s.Circle(geom.Circle{Center: geom.Point{X: 50, Y: 50}, Radius: 25})
//
// All operations are safe for concurrent use: a Sketcher is immutable after
// construction and may be shared across goroutines.
package sketch
