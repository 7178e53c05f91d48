package pipeline

import (
	"github.com/timcondit/kintsugi/pkg/drawing"
	"github.com/timcondit/kintsugi/pkg/geom"
	"github.com/timcondit/kintsugi/pkg/source/manifest"
	"github.com/timcondit/kintsugi/pkg/text"
)

// Title placement on the sheet, in drawing units from the top-left corner.
const (
	titleMarginX = 24.0
	titleMarginY = 18.0
)

// Compose assembles perturbed sketch paths and the scene's annotation layer
// into a Drawing. The scene title, when present, is hand-lettered with the
// scene's text configuration; plain labels stay as text annotations and are
// typeset by the renderer instead.
func Compose(scene *manifest.Scene, paths []geom.Polyline) (*drawing.Drawing, error) {
	d := drawing.New(scene.Width, scene.Height)

	for _, p := range paths {
		d.AddSketchPath(p)
	}

	if scene.Title != "" {
		renderer, err := text.NewRenderer(scene.Text)
		if err != nil {
			return nil, err
		}
		for _, p := range renderer.Text(scene.Title, titleMarginX, titleMarginY) {
			d.AddTextPath(p)
		}
	}

	d.Dimensions = append(d.Dimensions, scene.Dimensions...)
	d.Callouts = append(d.Callouts, scene.Callouts...)
	d.Hatches = append(d.Hatches, scene.Hatches...)
	d.CenterLines = append(d.CenterLines, scene.CenterLines...)
	d.Labels = append(d.Labels, scene.Labels...)

	return d, nil
}
