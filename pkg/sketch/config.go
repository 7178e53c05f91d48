package sketch

import "github.com/timcondit/kintsugi/pkg/errors"

// Default sketch parameters, matching the values used across the example
// drawings.
const (
	DefaultNoiseScale     = 0.02
	DefaultNoiseAmplitude = 1.5
)

// Config controls the wabi-sabi sketch effect. It is treated as immutable:
// one Config is shared by reference across all perturbation calls in a
// drawing pass and never mutated mid-render.
type Config struct {
	// NoiseScale is the spatial frequency multiplier applied to coordinates
	// before noise lookup. Zero is valid and yields constant noise input
	// per stroke.
	NoiseScale float64 `toml:"noise_scale"`

	// NoiseAmplitude is the maximum offset magnitude in drawing units.
	// Zero is valid and yields the unperturbed sampled curve.
	NoiseAmplitude float64 `toml:"noise_amplitude"`

	// Seed selects the noise phase. Zero keeps the unseeded reference hash.
	Seed int64 `toml:"seed"`
}

// DefaultConfig returns the standard sketch configuration.
func DefaultConfig() Config {
	return Config{
		NoiseScale:     DefaultNoiseScale,
		NoiseAmplitude: DefaultNoiseAmplitude,
	}
}

// Validate rejects configurations the engine cannot honor. A negative scale
// is refused because downstream consumers use the scale as a divisor when
// mapping stroke density; zero scale and zero amplitude are both legal.
func (c Config) Validate() error {
	if c.NoiseScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "noise scale must not be negative, got %g", c.NoiseScale)
	}
	return nil
}
