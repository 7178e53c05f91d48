package sketch

import "math"

// Hash constants, shared with shader-style dithering hashes. Changing any of
// them changes every rendered stroke, so they are pinned by parity tests.
const (
	noiseFreqX = 12.9898
	noiseFreqY = 78.233
	noiseGain  = 43758.5453
)

// Source is a deterministic pseudo-random scalar field over 2D coordinates.
// Implementations must be pure: the same (x, y) always yields the same value,
// with no hidden state between calls.
//
// The engine only relies on |Sample(x, y)| < 1; it does not require
// continuity. Plugging in a smooth value-noise field here changes visual
// output and breaks bit-parity with the hash source.
type Source interface {
	Sample(x, y float64) float64
}

// hashNoise2D is the reference pseudo-random hash. It is deliberately NOT a
// continuous noise field: nearby inputs produce unrelated outputs, which is
// what gives strokes their dry, dithered wobble.
//
// math.Mod keeps the sign of the sine product, so results lie in (-1, 1)
// rather than [0, 1). Callers must only assume the magnitude bound.
func hashNoise2D(x, y, phase float64) float64 {
	return math.Mod(math.Sin(x*noiseFreqX+y*noiseFreqY+phase)*noiseGain, 1)
}

// HashSource is the default Source: the hash above with an optional seed
// mixed in as an additive phase. Seed 0 reproduces the unseeded reference
// formula exactly.
type HashSource struct {
	phase float64
}

// NewHashSource creates a hash noise source for the given seed.
func NewHashSource(seed int64) HashSource {
	return HashSource{phase: float64(seed)}
}

// Sample returns the hash value at (x, y), in (-1, 1).
func (s HashSource) Sample(x, y float64) float64 {
	return hashNoise2D(x, y, s.phase)
}
