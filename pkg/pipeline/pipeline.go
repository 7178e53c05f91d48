// Package pipeline provides the core drawing pipeline for Kintsugi.
//
// This package implements the complete load → sketch → compose → render
// pipeline that is shared by the CLI, the preview server, and the interactive
// tuner. Centralizing it here keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Parse a scene manifest into geometry and configuration
//  2. Sketch: Perturb the ideal geometry into hand-drawn polylines
//  3. Compose: Assemble polylines, lettering, and annotations into a Drawing
//  4. Render: Serialize the Drawing into output formats (SVG, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    ScenePath: "scenes/dovetail.toml",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/timcondit/kintsugi/pkg/drawing"
	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/source/manifest"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// TTLArtifact is how long rendered artifacts stay cached. Rendering is
// deterministic, so entries only go stale when the cache needs pruning.
const TTLArtifact = 7 * 24 * time.Hour

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for the preview server.
type Options struct {
	// ScenePath names the manifest file to load. Ignored when Scene is set.
	ScenePath string `json:"scene_path,omitempty"`

	// Scene is a pre-loaded scene, used by callers that build or edit
	// scenes in memory. Runs with an in-memory scene bypass the cache
	// unless the scene carries its manifest bytes.
	Scene *manifest.Scene `json:"-"`

	// Sketch overrides. Zero values keep what the scene manifest says.
	Seed           int64   `json:"seed,omitempty"`
	NoiseScale     float64 `json:"noise_scale,omitempty"`
	NoiseAmplitude float64 `json:"noise_amplitude,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh skips cache reads and re-renders everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and server responses.
	ID uuid.UUID

	// Scene is the loaded scene.
	Scene *manifest.Scene

	// SceneHash is the content hash of the scene manifest, empty for
	// in-memory scenes without manifest bytes.
	SceneHash string

	// Drawing is the composed drawing, nil when every requested artifact
	// came from the cache.
	Drawing *drawing.Drawing

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PrimitiveCount int
	PathCount      int
	LoadTime       time.Duration
	SketchTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for the run.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ScenePath == "" && o.Scene == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "scene path or scene is required")
	}
	if o.NoiseScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "noise scale must not be negative, got %g", o.NoiseScale)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// applyOverrides folds command-line overrides into the scene's sketch
// configuration. Zero values leave the manifest's settings alone.
func (o *Options) applyOverrides(s *manifest.Scene) {
	if o.Seed != 0 {
		s.Config.Seed = o.Seed
	}
	if o.NoiseScale != 0 {
		s.Config.NoiseScale = o.NoiseScale
	}
	if o.NoiseAmplitude != 0 {
		s.Config.NoiseAmplitude = o.NoiseAmplitude
	}
}
