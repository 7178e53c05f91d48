package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/timcondit/kintsugi/pkg/cache"
	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/geom"
	"github.com/timcondit/kintsugi/pkg/source/manifest"
)

const testScene = `
[scene]
name = "teststand"
title = "TEST STAND"

[sketch]
seed = 11

[[line]]
start = [40.0, 60.0]
end = [220.0, 60.0]

[[circle]]
center = [120.0, 150.0]
radius = 25.0

[[dimension]]
from = [40.0, 60.0]
to = [220.0, 60.0]
label = "9\""

[[label]]
text = "BASE"
at = [100.0, 200.0]
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, log.New(io.Discard))
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "missing scene",
			opts: Options{},
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "bad format",
			opts: Options{ScenePath: "x.toml", Formats: []string{"png"}},
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "negative noise scale",
			opts: Options{ScenePath: "x.toml", NoiseScale: -1},
			code: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{ScenePath: "x.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("logger should default")
	}
}

func TestExecute(t *testing.T) {
	runner := quietRunner(nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		ScenePath: writeScene(t, testScene),
		Formats:   []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.PrimitiveCount != 2 {
		t.Errorf("primitive count = %d, want 2", result.Stats.PrimitiveCount)
	}
	if result.Stats.PathCount != 2 {
		t.Errorf("path count = %d, want 2", result.Stats.PathCount)
	}
	if result.SceneHash == "" {
		t.Error("scene hash should be set for manifest-loaded scenes")
	}

	svgData, ok := result.Artifacts[FormatSVG]
	if !ok || !bytes.HasPrefix(svgData, []byte("<svg")) {
		t.Errorf("svg artifact missing or malformed: %.40s", svgData)
	}

	jsonData, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("json artifact missing")
	}
	var doc struct {
		Scene       string          `json:"scene"`
		Width       float64         `json:"width"`
		SketchPaths []geom.Polyline `json:"sketch_paths"`
		TextPaths   []geom.Polyline `json:"text_paths"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		t.Fatalf("json artifact does not parse: %v", err)
	}
	if doc.Scene != "teststand" {
		t.Errorf("json scene = %q", doc.Scene)
	}
	if len(doc.SketchPaths) != 2 {
		t.Errorf("json sketch paths = %d, want 2", len(doc.SketchPaths))
	}
	if len(doc.TextPaths) == 0 {
		t.Error("title should produce text paths")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	path := writeScene(t, testScene)
	runner := quietRunner(nil)
	defer runner.Close()

	r1, err := runner.Execute(context.Background(), Options{ScenePath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	r2, err := runner.Execute(context.Background(), Options{ScenePath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Equal(r1.Artifacts[FormatSVG], r2.Artifacts[FormatSVG]) {
		t.Error("same scene should render byte-identical SVG")
	}
}

func TestExecuteSeedOverride(t *testing.T) {
	path := writeScene(t, testScene)
	runner := quietRunner(nil)
	defer runner.Close()

	base, err := runner.Execute(context.Background(), Options{ScenePath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	reseeded, err := runner.Execute(context.Background(), Options{ScenePath: path, Seed: 99})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if bytes.Equal(base.Artifacts[FormatSVG], reseeded.Artifacts[FormatSVG]) {
		t.Error("seed override should change the rendered output")
	}
	if reseeded.Scene.Config.Seed != 99 {
		t.Errorf("override not applied, seed = %d", reseeded.Scene.Config.Seed)
	}
}

func TestExecuteCaching(t *testing.T) {
	path := writeScene(t, testScene)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := quietRunner(fc)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), Options{ScenePath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), Options{ScenePath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the original")
	}
	if second.Drawing != nil {
		t.Error("cache hit should skip composition")
	}

	// Refresh bypasses the cache read
	third, err := runner.Execute(context.Background(), Options{ScenePath: path, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should skip cache reads")
	}
}

func TestExecuteInMemoryScene(t *testing.T) {
	scene, err := manifest.Parse([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}

	runner := quietRunner(nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Scene: scene})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts[FormatSVG]) == 0 {
		t.Error("in-memory scene should render")
	}
}

func TestExecuteMissingScene(t *testing.T) {
	runner := quietRunner(nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		ScenePath: filepath.Join(t.TempDir(), "missing.toml"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestCompose(t *testing.T) {
	scene, err := manifest.Parse([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}

	d, err := Compose(scene, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(d.Dimensions) != 1 || len(d.Labels) != 1 {
		t.Errorf("annotations = %d dims / %d labels", len(d.Dimensions), len(d.Labels))
	}
	if len(d.TextPaths) == 0 {
		t.Error("title lettering missing")
	}
	if d.Width != scene.Width || d.Height != scene.Height {
		t.Errorf("sheet size = %gx%g", d.Width, d.Height)
	}
}
