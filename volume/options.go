// SPDX-License-Identifier: MIT

// Package volume: functional options for field construction.
//
// Defaults live here as the single source of truth; WithX constructors
// panic only on nonsensical values (programmer error).
package volume

import "math"

// Isotropic is the default voxel spacing (unit spacing on every axis).
var Isotropic = Spacing{1, 1, 1}

const panicSpacingInvalid = "volume: WithSpacing: spacing must be finite and > 0 on every axis"

// Option configures a Field at construction time.
type Option func(*options)

type options struct {
	spacing Spacing
}

func defaultOptions() options {
	return options{spacing: Isotropic}
}

// WithSpacing sets the physical voxel size ordered (z, y, x).
// Panics when any entry is non-positive, NaN or Inf.
func WithSpacing(s Spacing) Option {
	if !s.Valid() {
		panic(panicSpacingInvalid)
	}

	return func(o *options) { o.spacing = s }
}

// Valid reports whether every axis spacing is finite and strictly positive.
func (s Spacing) Valid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}

	return true
}
