// SPDX-License-Identifier: MIT
// Package harmonics: sentinel error set.
// Callers match with errors.Is; context is added with fmt.Errorf("Op: %w").
// Bessel-zero range errors surface as specfn.ErrBesselZeroUnsupported.

package harmonics

import "errors"

var (
	// ErrInvalidDegree indicates l < 0, |m| > l, or k outside {−1, 0, 1}.
	ErrInvalidDegree = errors.New("harmonics: invalid degree/order")

	// ErrInvalidRadius indicates a negative or non-finite shell radius
	// (radial kernels additionally require radius > 0).
	ErrInvalidRadius = errors.New("harmonics: invalid radius")

	// ErrInvalidWidth indicates a non-finite smoothing width.
	ErrInvalidWidth = errors.New("harmonics: invalid smoothing width")

	// ErrInvalidSpacing indicates a non-positive or non-finite voxel spacing.
	ErrInvalidSpacing = errors.New("harmonics: invalid voxel spacing")

	// ErrInvalidBand indicates band < 0, or band < 1 for radial families.
	ErrInvalidBand = errors.New("harmonics: invalid band")

	// ErrInvalidWorkers indicates a negative worker bound.
	ErrInvalidWorkers = errors.New("harmonics: invalid worker count")

	// ErrInvalidPosition indicates a probe position with a NaN or Inf coordinate.
	ErrInvalidPosition = errors.New("harmonics: invalid probe position")

	// ErrNilCache indicates a nil cache argument.
	ErrNilCache = errors.New("harmonics: nil cache")

	// ErrNilField indicates a nil field argument.
	ErrNilField = errors.New("harmonics: nil field")

	// ErrNilCoefficients indicates a nil coefficient set.
	ErrNilCoefficients = errors.New("harmonics: nil coefficients")

	// ErrLayoutMismatch indicates that a cache and a coefficient set (or a
	// value slice) do not describe the same index layout.
	ErrLayoutMismatch = errors.New("harmonics: layout mismatch")

	// ErrFamilyMismatch indicates an operation applied to the wrong kernel family.
	ErrFamilyMismatch = errors.New("harmonics: family mismatch")
)
