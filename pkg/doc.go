// Package pkg provides the core libraries for Kintsugi hand-drawn
// engineering drawings.
//
// # Overview
//
// Kintsugi turns exact 2D geometry into drawings that look sketched by hand:
// every line, circle, and arc is perturbed with deterministic hash noise, so
// the output carries a wabi-sabi roughness while remaining byte-for-byte
// reproducible. The pkg directory is organized into these areas:
//
//  1. [geom] - Exact primitives (Point, Line, Circle, Arc, Sketch)
//  2. [sketch] - The perturbation engine (noise field + samplers)
//  3. [text] - Hand-lettered stroke fonts with per-character wobble
//  4. [drawing] - Drawing composition (paths + annotation layer)
//  5. [render/svg] - SVG serialization
//  6. [source/manifest] - TOML scene loading
//  7. [pipeline] - Orchestration (load → sketch → compose → render)
//  8. [cache], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through Kintsugi:
//
//	Scene manifest (TOML)
//	         ↓
//	    [source/manifest] (parse + validate)
//	         ↓
//	    [sketch] (perturb primitives into polylines)
//	         ↓
//	    [drawing] (compose paths, lettering, annotations)
//	         ↓
//	    [render/svg] (serialize)
//	         ↓
//	    SVG/JSON output
//
// # Quick Start
//
// Perturb a line and render it:
//
//	import (
//	    "github.com/timcondit/kintsugi/pkg/drawing"
//	    "github.com/timcondit/kintsugi/pkg/geom"
//	    "github.com/timcondit/kintsugi/pkg/render/svg"
//	    "github.com/timcondit/kintsugi/pkg/sketch"
//	)
//
//	// 1. Create a sketcher with the default noise settings
//	s, _ := sketch.New(sketch.DefaultConfig())
//
//	// 2. Perturb the ideal geometry
//	path := s.Line(geom.Line{
//	    Start: geom.Point{X: 10, Y: 20},
//	    End:   geom.Point{X: 200, Y: 20},
//	})
//
//	// 3. Compose and render
//	d := drawing.New(drawing.DefaultWidth, drawing.DefaultHeight)
//	d.AddSketchPath(path)
//	out := svg.Render(d)
//
// Or run the whole pipeline from a scene manifest:
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    ScenePath: "scenes/dovetail.toml",
//	})
//	out := result.Artifacts["svg"]
//
// # Determinism
//
// Everything downstream of a scene is a pure function of the scene and its
// sketch configuration. Noise comes from a stateless hash, lettering wobble
// from explicitly seeded generators; no package reads process-global
// randomness. Rendering the same scene twice, on any machine, produces
// identical bytes, which is what makes artifact caching by content hash
// safe.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/sketch/...   # Specific package
//
// [geom]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/geom
// [sketch]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/sketch
// [text]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/text
// [drawing]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/drawing
// [render/svg]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/render/svg
// [source/manifest]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/source/manifest
// [pipeline]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/cache
// [observability]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/observability
// [errors]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/timcondit/kintsugi/pkg/buildinfo
package pkg
