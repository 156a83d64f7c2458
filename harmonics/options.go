// SPDX-License-Identifier: MIT

// Package harmonics: configuration shared by cache builders, dense
// projection and kernel-regenerating reconstruction.
//
// Defaults live here as the single source of truth; WithX constructors
// panic only on nonsensical values (programmer error). A Config literal
// built by hand is validated by every entry point that consumes it.
package harmonics

import (
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxharm/volume"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultRadius is the shell radius in physical units.
	DefaultRadius = 5.0

	// DefaultFWHM is the Gaussian shell width; values ≤ 1 are clamped to 1.
	DefaultFWHM = 1.0

	// DefaultBand is the largest degree l in a cache.
	DefaultBand = 4

	// DefaultRealData stores only m ≥ 0 for radial caches when true.
	DefaultRealData = false

	// DefaultWorkers = 0 means runtime.GOMAXPROCS(0).
	DefaultWorkers = 0
)

// ---------- Internal panic messages ----------

const (
	panicRadiusInvalid  = "harmonics: WithRadius: radius must be finite and >= 0"
	panicFWHMInvalid    = "harmonics: WithFWHM: fwhm must be finite"
	panicBandInvalid    = "harmonics: WithBand: band must be >= 0"
	panicSpacingInvalid = "harmonics: WithSpacing: spacing must be finite and > 0"
	panicWorkersInvalid = "harmonics: WithWorkers: n must be >= 0"
)

// Config holds the expansion parameters. Build it with NewConfig.
type Config struct {
	Radius   float64        // shell radius, physical units
	FWHM     float64        // Gaussian full width at half maximum of the shell
	Band     int            // maximum degree l (radial: also maximum n)
	Spacing  volume.Spacing // voxel size (z, y, x)
	RealData bool           // radial caches keep m ∈ [0, l] only
	Workers  int            // parallelism bound, 0 = GOMAXPROCS
	Logger   *zap.Logger    // diagnostics sink, nil = no-op
}

// Option mutates a Config.
type Option func(*Config)

// NewConfig returns the defaults with opts applied in order.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		Radius:   DefaultRadius,
		FWHM:     DefaultFWHM,
		Band:     DefaultBand,
		Spacing:  volume.Isotropic,
		RealData: DefaultRealData,
		Workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRadius sets the shell radius. Panics on negative or non-finite values.
func WithRadius(r float64) Option {
	if !finite(r) || r < 0 {
		panic(panicRadiusInvalid)
	}

	return func(c *Config) { c.Radius = r }
}

// WithFWHM sets the shell smoothing width. Panics on non-finite values.
func WithFWHM(w float64) Option {
	if !finite(w) {
		panic(panicFWHMInvalid)
	}

	return func(c *Config) { c.FWHM = w }
}

// WithBand sets the maximum degree. Panics on band < 0.
func WithBand(b int) Option {
	if b < 0 {
		panic(panicBandInvalid)
	}

	return func(c *Config) { c.Band = b }
}

// WithSpacing sets the voxel spacing (z, y, x). Panics on invalid spacing.
func WithSpacing(s volume.Spacing) Option {
	if !s.Valid() {
		panic(panicSpacingInvalid)
	}

	return func(c *Config) { c.Spacing = s }
}

// WithRealData toggles the conjugate-symmetric radial layout.
func WithRealData(on bool) Option {
	return func(c *Config) { c.RealData = on }
}

// WithWorkers bounds internal parallelism; 0 selects GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(c *Config) { c.Workers = n }
}

// WithLogger routes diagnostics to l; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Validate reports the first invalid field, wrapped around its sentinel.
func (c Config) Validate() error {
	switch {
	case !finite(c.Radius) || c.Radius < 0:
		return fmt.Errorf("Config.Radius=%g: %w", c.Radius, ErrInvalidRadius)
	case !finite(c.FWHM):
		return fmt.Errorf("Config.FWHM=%g: %w", c.FWHM, ErrInvalidWidth)
	case c.Band < 0:
		return fmt.Errorf("Config.Band=%d: %w", c.Band, ErrInvalidBand)
	case !c.Spacing.Valid():
		return fmt.Errorf("Config.Spacing=%v: %w", c.Spacing, ErrInvalidSpacing)
	case c.Workers < 0:
		return fmt.Errorf("Config.Workers=%d: %w", c.Workers, ErrInvalidWorkers)
	}

	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}

	return c.Logger
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return runtime.GOMAXPROCS(0)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
