// SPDX-License-Identifier: MIT

package harmonics

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/voxharm/volume"
)

// ReconstructScalar sums Re(K_idx(x)·conj(c_idx)) over a scalar cache.
// The output has the kernel shape and the cache spacing.
//
// Errors: ErrNilCache, ErrNilCoefficients, ErrFamilyMismatch, ErrLayoutMismatch.
func ReconstructScalar(cache *Cache[complex128], coeffs *Coefficients) (*volume.Field[float64], error) {
	return reconstructComplex("ReconstructScalar", Scalar, cache, coeffs)
}

// ReconstructRadial is ReconstructScalar for a radial cache. In real-data
// mode every m > 0 term is counted twice, standing in for its conjugate
// partner −m (Re of the pair is identical).
func ReconstructRadial(cache *Cache[complex128], coeffs *Coefficients) (*volume.Field[float64], error) {
	return reconstructComplex("ReconstructRadial", Radial, cache, coeffs)
}

// ReconstructVector regenerates every vector kernel from cfg, accumulates
// K_idx(x)·conj(c_idx) per spin slot and maps the sum to Cartesian (X, Y, Z).
//
// Errors: ErrNilCoefficients, ErrFamilyMismatch, Config.Validate errors and
// kernel generator errors.
func ReconstructVector(cfg Config, coeffs *Coefficients) (*volume.Field[[3]float64], error) {
	const op = "ReconstructVector"
	spin, err := reconstructSpinRegen(op, Vector, cfg, coeffs,
		shapeOf(kernelHalf(cfg.Radius, clampFWHM(cfg.FWHM), cfg.Spacing)),
		func(idx Index) (*volume.Field[[3]complex128], error) {
			return BuildVectorHarmonic(cfg.Radius, cfg.FWHM, idx.L, idx.K, idx.M, cfg.Spacing)
		})
	if err != nil {
		return nil, err
	}

	return FromSpherical(spin), nil
}

// ReconstructVectorRadial is ReconstructVector for vector radial coefficients.
func ReconstructVectorRadial(cfg Config, coeffs *Coefficients) (*volume.Field[[3]float64], error) {
	const op = "ReconstructVectorRadial"
	spin, err := reconstructSpinRegen(op, VectorRadial, cfg, coeffs,
		shapeOf(kernelHalf(cfg.Radius, radialAngularFWHM, cfg.Spacing)),
		func(idx Index) (*volume.Field[[3]complex128], error) {
			return BuildVectorRadialHarmonic(cfg.Radius, idx.N, idx.L, idx.K, idx.M, cfg.Spacing)
		})
	if err != nil {
		return nil, err
	}

	return FromSpherical(spin), nil
}

// ReconstructVectorFromCache is ReconstructVector reusing the kernels of a
// vector or vector-radial cache.
func ReconstructVectorFromCache(cache *Cache[[3]complex128], coeffs *Coefficients) (*volume.Field[[3]float64], error) {
	spin, err := ReconstructSpherical(cache, coeffs)
	if err != nil {
		return nil, err
	}

	return FromSpherical(spin), nil
}

// ReconstructVectorRadialFromCache is ReconstructVectorFromCache restricted
// to vector radial caches.
func ReconstructVectorRadialFromCache(cache *Cache[[3]complex128], coeffs *Coefficients) (*volume.Field[[3]float64], error) {
	if cache != nil && cache.layout.Family() != VectorRadial {
		return nil, opError("ReconstructVectorRadialFromCache", ErrFamilyMismatch)
	}

	return ReconstructVectorFromCache(cache, coeffs)
}

// ReconstructSpherical returns the spin-component sum Σ K_idx(x)·conj(c_idx)
// before the Cartesian map.
func ReconstructSpherical(cache *Cache[[3]complex128], coeffs *Coefficients) (*volume.Field[[3]complex128], error) {
	const op = "ReconstructSpherical"
	if cache == nil {
		return nil, opError(op, ErrNilCache)
	}
	if err := checkCoefficients(op, cache.layout.Family(), cache.layout, coeffs); err != nil {
		return nil, err
	}
	out := volume.MustNew[[3]complex128](cache.Shape(), volume.WithSpacing(cache.cfg.Spacing))
	for off, k := range cache.kernels {
		accumulateSpin(out.Data(), k.Data(), coeffs.values[off])
	}

	return out, nil
}

func reconstructComplex(op string, family Family, cache *Cache[complex128], coeffs *Coefficients) (*volume.Field[float64], error) {
	if cache == nil {
		return nil, opError(op, ErrNilCache)
	}
	if err := checkCoefficients(op, family, cache.layout, coeffs); err != nil {
		return nil, err
	}

	out := volume.MustNew[float64](cache.Shape(), volume.WithSpacing(cache.cfg.Spacing))
	dst := out.Data()
	for off, k := range cache.kernels {
		weight := 1.0
		if cache.layout.RealData() && cache.layout.Key(off).M > 0 {
			weight = 2
		}
		cc := cmplx.Conj(coeffs.values[off])
		for i, v := range k.Data() {
			dst[i] += weight * real(v*cc)
		}
	}

	return out, nil
}

func reconstructSpinRegen(
	op string,
	family Family,
	cfg Config,
	coeffs *Coefficients,
	shape volume.Shape,
	gen func(Index) (*volume.Field[[3]complex128], error),
) (*volume.Field[[3]complex128], error) {
	if coeffs == nil {
		return nil, opError(op, ErrNilCoefficients)
	}
	if coeffs.layout.Family() != family {
		return nil, fmt.Errorf("%s(%v): %w", op, coeffs.layout.Family(), ErrFamilyMismatch)
	}
	if err := cfg.Validate(); err != nil {
		return nil, opError(op, err)
	}

	out := volume.MustNew[[3]complex128](shape, volume.WithSpacing(cfg.Spacing))
	for idx, c := range coeffs.All() {
		if c == 0 {
			continue
		}
		k, err := gen(idx)
		if err != nil {
			return nil, opError(op, err)
		}
		accumulateSpin(out.Data(), k.Data(), c)
	}

	return out, nil
}

func accumulateSpin(dst, k [][3]complex128, c complex128) {
	cc := cmplx.Conj(c)
	for i, v := range k {
		dst[i][0] += v[0] * cc
		dst[i][1] += v[1] * cc
		dst[i][2] += v[2] * cc
	}
}

func checkCoefficients(op string, family Family, layout *Layout, coeffs *Coefficients) error {
	if coeffs == nil {
		return opError(op, ErrNilCoefficients)
	}
	if layout.Family() != family {
		return fmt.Errorf("%s(%v): %w", op, layout.Family(), ErrFamilyMismatch)
	}
	if !layout.Equal(coeffs.layout) {
		return opError(op, ErrLayoutMismatch)
	}

	return nil
}
