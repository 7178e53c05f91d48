package pipeline

import (
	"encoding/json"

	"github.com/timcondit/kintsugi/pkg/drawing"
	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/geom"
	"github.com/timcondit/kintsugi/pkg/render/svg"
)

// renderArtifacts serializes a composed drawing into every requested format.
func renderArtifacts(sceneName string, d *drawing.Drawing, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		switch format {
		case FormatSVG:
			artifacts[format] = svg.Render(d)
		case FormatJSON:
			data, err := renderJSON(sceneName, d)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %q", format)
		}
	}
	return artifacts, nil
}

// jsonDocument is the machine-readable artifact: the perturbed paths with
// just enough sheet metadata to redraw them.
type jsonDocument struct {
	Scene       string          `json:"scene"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	SketchPaths []geom.Polyline `json:"sketch_paths"`
	TextPaths   []geom.Polyline `json:"text_paths,omitempty"`
}

func renderJSON(sceneName string, d *drawing.Drawing) ([]byte, error) {
	doc := jsonDocument{
		Scene:       sceneName,
		Width:       d.Width,
		Height:      d.Height,
		SketchPaths: d.SketchPaths,
		TextPaths:   d.TextPaths,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize drawing")
	}
	return data, nil
}
