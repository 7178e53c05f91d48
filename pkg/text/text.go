// Package text renders hand-drawn lettering as stroke paths.
//
// Glyphs come from single-stroke tables in the tradition of the Hershey
// plotter fonts: each character is a small set of polylines in a unit box,
// scaled and placed along a baseline. A small random wobble is applied per
// point so lettering matches the wabi-sabi sketch strokes around it.
//
// Wobble randomness comes from an explicit generator seeded per character,
// never from process-global state, so rendering the same string twice (or
// concurrently) produces identical paths.
package text

import (
	"math/rand"

	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/geom"
)

// Font identifies a lettering style.
type Font string

// Font variants. Roman is the working font; the script variants are
// registered for forward compatibility with additional stroke tables.
const (
	FontRoman         Font = "roman"
	FontScriptSimplex Font = "scriptsx"
	FontScriptComplex Font = "scriptc"
)

// FontInfo describes a registered font.
type FontInfo struct {
	Name        string
	Description string
}

// Fonts is the registry of known lettering fonts.
var Fonts = map[Font]FontInfo{
	FontRoman:         {Name: "Roman", Description: "Classic architectural lettering"},
	FontScriptSimplex: {Name: "Script Simplex", Description: "Casual hand-written style"},
	FontScriptComplex: {Name: "Script Complex", Description: "More elaborate script"},
}

// Default lettering parameters.
const (
	DefaultSize          = 12.0
	DefaultLetterSpacing = 1.0
	DefaultWordSpacing   = 2.0
	DefaultWobble        = 0.3
)

// Config controls hand-drawn text rendering.
type Config struct {
	Font           Font
	Size           float64
	LetterSpacing  float64
	WordSpacing    float64
	BaselineOffset float64
	Wobble         float64
}

// DefaultConfig returns the standard lettering configuration.
func DefaultConfig() Config {
	return Config{
		Font:          FontRoman,
		Size:          DefaultSize,
		LetterSpacing: DefaultLetterSpacing,
		WordSpacing:   DefaultWordSpacing,
		Wobble:        DefaultWobble,
	}
}

// Validate rejects unknown fonts and non-positive sizes.
func (c Config) Validate() error {
	if _, ok := Fonts[c.Font]; !ok {
		return errors.New(errors.ErrCodeInvalidFont, "unknown font %q", string(c.Font))
	}
	if c.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "text size must be positive, got %g", c.Size)
	}
	return nil
}

// Renderer renders text with a hand-drawn aesthetic.
type Renderer struct {
	config Config
}

// NewRenderer creates a Renderer for the given configuration.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{config: cfg}, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Character renders a single character at (x, y) as stroke paths. Unknown
// characters render as nothing. The seed selects the wobble; the same seed
// always reproduces the same strokes.
func (r *Renderer) Character(ch rune, x, y float64, seed int64) []geom.Polyline {
	strokes, ok := glyph(ch)
	if !ok {
		return nil
	}

	scale := r.config.Size / DefaultSize
	rng := rand.New(rand.NewSource(seed))

	rendered := make([]geom.Polyline, 0, len(strokes))
	for _, stroke := range strokes {
		path := make(geom.Polyline, 0, len(stroke))
		for _, p := range stroke {
			sx := x + p.X*scale
			sy := y - p.Y*scale + scale + r.config.BaselineOffset
			path = append(path, r.wobble(sx, sy, rng))
		}
		rendered = append(rendered, path)
	}
	return rendered
}

// Text renders a string at (x, y) as stroke paths. Characters advance left
// to right; spaces advance without emitting strokes. Each character wobbles
// with its own seed derived from its index, so edits to one part of a label
// do not reshuffle the rest.
func (r *Renderer) Text(s string, x, y float64) []geom.Polyline {
	scale := r.config.Size / DefaultSize
	spacing := scale * r.config.LetterSpacing

	var all []geom.Polyline
	currentX := x
	var charSeed int64

	for _, ch := range s {
		if ch == ' ' {
			currentX += spacing * r.config.WordSpacing
			continue
		}

		all = append(all, r.Character(ch, currentX, y, charSeed)...)
		currentX += spacing * 1.5
		charSeed++
	}
	return all
}

// wobble shifts a point by up to ±Wobble/2 in each axis.
func (r *Renderer) wobble(x, y float64, rng *rand.Rand) geom.Point {
	dx := (rng.Float64() - 0.5) * r.config.Wobble
	dy := (rng.Float64() - 0.5) * r.config.Wobble
	return geom.Point{X: x + dx, Y: y + dy}
}
