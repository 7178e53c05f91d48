package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/timcondit/kintsugi/pkg/cache"
	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/observability"
	"github.com/timcondit/kintsugi/pkg/sketch"
	"github.com/timcondit/kintsugi/pkg/source/manifest"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both the CLI and the preview server use this to avoid duplicating
// caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → sketch → compose → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	result := &Result{
		ID:        uuid.New(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	scene, err := r.load(ctx, opts, hooks)
	if err != nil {
		return nil, err
	}
	opts.applyOverrides(scene)
	result.Scene = scene
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PrimitiveCount = scene.Sketch.PrimitiveCount()
	if len(scene.Raw) > 0 {
		result.SceneHash = cache.Hash(scene.Raw)
	}

	opts.Logger.Info("loaded scene",
		"scene", scene.Name,
		"primitives", result.Stats.PrimitiveCount,
		"duration", result.Stats.LoadTime)

	// All artifacts cached? Skip the sketch and render stages entirely.
	if !opts.Refresh && result.SceneHash != "" {
		if cached, ok := r.lookupArtifacts(ctx, result.SceneHash, scene, opts); ok {
			result.Artifacts = cached
			result.CacheInfo.RenderHit = true
			opts.Logger.Debug("all artifacts cached", "scene", scene.Name)
			return result, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Sketch
	sketchStart := time.Now()
	hooks.OnSketchStart(ctx, scene.Name, result.Stats.PrimitiveCount)
	sketcher, err := sketch.New(scene.Config)
	if err != nil {
		hooks.OnSketchComplete(ctx, scene.Name, 0, time.Since(sketchStart), err)
		return nil, err
	}
	paths, err := sketcher.Sketch(scene.Sketch)
	result.Stats.SketchTime = time.Since(sketchStart)
	hooks.OnSketchComplete(ctx, scene.Name, len(paths), result.Stats.SketchTime, err)
	if err != nil {
		return nil, err
	}
	result.Stats.PathCount = len(paths)

	opts.Logger.Info("sketched geometry",
		"scene", scene.Name,
		"paths", len(paths),
		"duration", result.Stats.SketchTime)

	// Stage 3: Compose
	d, err := Compose(scene, paths)
	if err != nil {
		return nil, err
	}
	result.Drawing = d

	// Stage 4: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := renderArtifacts(scene.Name, d, opts.Formats)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	if result.SceneHash != "" {
		for format, data := range artifacts {
			key := r.artifactKey(result.SceneHash, format, scene)
			_ = r.Cache.Set(ctx, key, data, TTLArtifact)
		}
	}

	opts.Logger.Info("rendered outputs",
		"scene", scene.Name,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// load resolves the scene from either the pre-loaded value or the manifest
// path, firing load hooks around the manifest read.
func (r *Runner) load(ctx context.Context, opts Options, hooks observability.PipelineHooks) (*manifest.Scene, error) {
	if opts.Scene != nil {
		return opts.Scene, nil
	}

	start := time.Now()
	hooks.OnLoadStart(ctx, opts.ScenePath)
	scene, err := manifest.Load(opts.ScenePath)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.ScenePath, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.GetCode(err), err, "failed to load scene %s", opts.ScenePath)
	}
	hooks.OnLoadComplete(ctx, scene.Name, scene.Sketch.PrimitiveCount(), time.Since(start), nil)
	return scene, nil
}

// lookupArtifacts tries to serve every requested format from the cache.
// A single miss means a full re-render: partial hits are not worth the
// bookkeeping when rendering is this cheap.
func (r *Runner) lookupArtifacts(ctx context.Context, sceneHash string, scene *manifest.Scene, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.artifactKey(sceneHash, format, scene)
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

// artifactKey derives the cache key for one rendered format. Overrides are
// already folded into the scene config, so the key covers everything that
// shapes the output.
func (r *Runner) artifactKey(sceneHash, format string, scene *manifest.Scene) string {
	return cache.ArtifactKey(sceneHash, format,
		scene.Config.NoiseScale,
		scene.Config.NoiseAmplitude,
		scene.Config.Seed,
		scene.Width,
		scene.Height,
	)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
