package text

import (
	"unicode"

	"github.com/timcondit/kintsugi/pkg/geom"
)

// romanStrokes holds the Roman stroke table. Each glyph is a set of
// polylines in a unit box with y pointing up; the renderer flips and scales
// into drawing coordinates. Covers uppercase letters, digits, and the
// punctuation that appears in shop dimensions.
var romanStrokes = map[rune][]geom.Polyline{
	'A': {
		{{X: 0, Y: 0}, {X: 0.5, Y: 1}, {X: 1, Y: 0}},
		{{X: 0.2, Y: 0.4}, {X: 0.8, Y: 0.4}},
	},
	'B': {
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0.6, Y: 0}, {X: 0.8, Y: 0.2}, {X: 0.6, Y: 0.4}, {X: 0, Y: 0.4}, {X: 0.7, Y: 0.4}, {X: 0.9, Y: 0.6}, {X: 0.7, Y: 1}, {X: 0, Y: 1}},
	},
	'C': {
		{{X: 0.9, Y: 0.2}, {X: 0.7, Y: 0}, {X: 0.3, Y: 0}, {X: 0, Y: 0.5}, {X: 0.3, Y: 1}, {X: 0.7, Y: 1}, {X: 0.9, Y: 0.8}},
	},
	'D': {
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.9, Y: 0.5}, {X: 0.5, Y: 1}, {X: 0, Y: 1}},
	},
	'E': {
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0.8, Y: 0}},
		{{X: 0, Y: 0.5}, {X: 0.6, Y: 0.5}},
		{{X: 0, Y: 1}, {X: 0.8, Y: 1}},
	},
	'F': {
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0.8, Y: 0}},
		{{X: 0, Y: 0.5}, {X: 0.6, Y: 0.5}},
	},
	'G': {
		{{X: 0.9, Y: 0.2}, {X: 0.7, Y: 0}, {X: 0.3, Y: 0}, {X: 0, Y: 0.5}, {X: 0.3, Y: 1}, {X: 0.7, Y: 1}, {X: 0.9, Y: 0.8}, {X: 0.9, Y: 0.5}, {X: 0.5, Y: 0.5}},
	},
	'H': {
		{{X: 0, Y: 1}, {X: 0, Y: 0}},
		{{X: 1, Y: 1}, {X: 1, Y: 0}},
		{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}},
	},
	'I': {
		{{X: 0.2, Y: 1}, {X: 0.8, Y: 1}},
		{{X: 0.5, Y: 1}, {X: 0.5, Y: 0}},
		{{X: 0.2, Y: 0}, {X: 0.8, Y: 0}},
	},
	'J': {
		{{X: 0.2, Y: 1}, {X: 0.8, Y: 1}},
		{{X: 0.5, Y: 1}, {X: 0.5, Y: 0.2}, {X: 0.3, Y: 0}, {X: 0, Y: 0.2}},
	},
	'K': {
		{{X: 0, Y: 1}, {X: 0, Y: 0}},
		{{X: 0.8, Y: 1}, {X: 0, Y: 0.5}, {X: 0.8, Y: 0}},
	},
	'L': {
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0.8, Y: 0}},
	},
	'M': {
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0.5, Y: 0.5}, {X: 1, Y: 1}, {X: 1, Y: 0}},
	},
	'N': {
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}},
	},
	'O': {
		{{X: 0.2, Y: 0}, {X: 0, Y: 0.5}, {X: 0.2, Y: 1}, {X: 0.8, Y: 1}, {X: 1, Y: 0.5}, {X: 0.8, Y: 0}, {X: 0.2, Y: 0}},
	},
	'P': {
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0.7, Y: 1}, {X: 0.9, Y: 0.8}, {X: 0.7, Y: 0.5}, {X: 0, Y: 0.5}},
	},
	'Q': {
		{{X: 0.2, Y: 0}, {X: 0, Y: 0.5}, {X: 0.2, Y: 1}, {X: 0.8, Y: 1}, {X: 1, Y: 0.5}, {X: 0.8, Y: 0}, {X: 0.2, Y: 0}},
		{{X: 0.6, Y: 0.5}, {X: 1, Y: 0}},
	},
	'R': {
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0.7, Y: 1}, {X: 0.9, Y: 0.8}, {X: 0.7, Y: 0.5}, {X: 0, Y: 0.5}, {X: 0.8, Y: 0.5}, {X: 1, Y: 0}},
	},
	'S': {
		{{X: 0.9, Y: 0.2}, {X: 0.7, Y: 0}, {X: 0.3, Y: 0}, {X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.5}, {X: 0.7, Y: 0.5}, {X: 0.9, Y: 0.8}, {X: 0.7, Y: 1}, {X: 0.3, Y: 1}, {X: 0.1, Y: 0.8}},
	},
	'T': {
		{{X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0.5, Y: 1}, {X: 0.5, Y: 0}},
	},
	'U': {
		{{X: 0, Y: 1}, {X: 0, Y: 0.2}, {X: 0.3, Y: 0}, {X: 0.7, Y: 0}, {X: 1, Y: 0.2}, {X: 1, Y: 1}},
	},
	'V': {
		{{X: 0, Y: 1}, {X: 0.5, Y: 0}, {X: 1, Y: 1}},
	},
	'W': {
		{{X: 0, Y: 1}, {X: 0.25, Y: 0}, {X: 0.5, Y: 0.6}, {X: 0.75, Y: 0}, {X: 1, Y: 1}},
	},
	'X': {
		{{X: 0, Y: 1}, {X: 1, Y: 0}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
	},
	'Y': {
		{{X: 0, Y: 1}, {X: 0.5, Y: 0.5}},
		{{X: 1, Y: 1}, {X: 0.5, Y: 0.5}},
		{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0}},
	},
	'Z': {
		{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	},
	'0': {
		{{X: 0.2, Y: 0}, {X: 0, Y: 0.5}, {X: 0.2, Y: 1}, {X: 0.8, Y: 1}, {X: 1, Y: 0.5}, {X: 0.8, Y: 0}, {X: 0.2, Y: 0}},
	},
	'1': {
		{{X: 0.3, Y: 0.2}, {X: 0.5, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 1}},
	},
	'2': {
		{{X: 0, Y: 0.2}, {X: 0.3, Y: 0}, {X: 0.7, Y: 0}, {X: 1, Y: 0.3}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	},
	'3': {
		{{X: 0, Y: 0.8}, {X: 0.4, Y: 0.6}, {X: 0.8, Y: 0.6}, {X: 0.6, Y: 0.5}, {X: 0.8, Y: 0.4}, {X: 0.4, Y: 0.4}, {X: 0.6, Y: 0.4}, {X: 0.9, Y: 0.2}, {X: 0.7, Y: 0}, {X: 0.3, Y: 0}, {X: 0, Y: 0.2}},
	},
	'4': {
		{{X: 0.7, Y: 1}, {X: 0.7, Y: 0}, {X: 0, Y: 0.7}, {X: 1, Y: 0.7}},
	},
	'5': {
		{{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0.5}, {X: 0.7, Y: 0.5}, {X: 0.9, Y: 0.3}, {X: 0.7, Y: 0}, {X: 0.3, Y: 0}, {X: 0.1, Y: 0.2}},
	},
	'6': {
		{{X: 0.8, Y: 0.2}, {X: 0.6, Y: 0}, {X: 0.2, Y: 0}, {X: 0, Y: 0.5}, {X: 0.2, Y: 1}, {X: 0.8, Y: 1}, {X: 1, Y: 0.5}, {X: 0.8, Y: 0.5}, {X: 0.2, Y: 0.5}},
	},
	'7': {
		{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0.3, Y: 0}},
	},
	'8': {
		{{X: 0.3, Y: 0}, {X: 0, Y: 0.5}, {X: 0.3, Y: 1}, {X: 0.7, Y: 1}, {X: 1, Y: 0.5}, {X: 0.7, Y: 0}, {X: 0.3, Y: 0}},
		{{X: 0.7, Y: 0}, {X: 0.9, Y: 0.5}, {X: 0.7, Y: 1}},
	},
	'9': {
		{{X: 0.2, Y: 1}, {X: 0.4, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0.5}, {X: 0.8, Y: 0}, {X: 0.2, Y: 0}, {X: 0.3, Y: 0.5}},
	},
	'-': {
		{{X: 0.2, Y: 0.5}, {X: 0.8, Y: 0.5}},
	},
	'/': {
		{{X: 0.2, Y: 1}, {X: 0.8, Y: 0}},
	},
	'"': {
		{{X: 0.2, Y: 0.9}, {X: 0.2, Y: 0.7}},
		{{X: 0.8, Y: 0.9}, {X: 0.8, Y: 0.7}},
	},
	'\'': {
		{{X: 0.5, Y: 1}, {X: 0.5, Y: 0.7}},
	},
}

// glyph returns the stroke set for a character, case-folded to the
// uppercase table.
func glyph(ch rune) ([]geom.Polyline, bool) {
	strokes, ok := romanStrokes[unicode.ToUpper(ch)]
	return strokes, ok
}
