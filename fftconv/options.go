// SPDX-License-Identifier: MIT

package fftconv

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultNormalize leaves kernels untouched.
	DefaultNormalize = false

	// DefaultWorkers = 0 means runtime.GOMAXPROCS(0).
	DefaultWorkers = 0

	// normalizeEps is the magnitude below which a kernel sum counts as zero.
	normalizeEps = 1e-12
)

const panicWorkersNegative = "fftconv: WithWorkers: n must be >= 0"

// Option configures ConvolveMany.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	// Normalize scales each kernel to unit sum before correlating (skipped when the sum is ~0).
	Normalize bool
	// Workers bounds the number of kernels processed concurrently.
	Workers int
}

func defaultOptions() Options {
	return Options{Normalize: DefaultNormalize, Workers: DefaultWorkers}
}

// WithNormalize toggles unit-sum kernel normalisation.
func WithNormalize(on bool) Option {
	return func(o *Options) { o.Normalize = on }
}

// WithWorkers bounds concurrency; 0 selects GOMAXPROCS. Panics on n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersNegative)
	}

	return func(o *Options) { o.Workers = n }
}
