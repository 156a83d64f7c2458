// SPDX-License-Identifier: MIT

package harmonics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxharm/specfn"
	"github.com/katalvlaran/voxharm/volume"
)

// spinOf maps a vector slot (0, 1, 2) to its spin projection σ (+1, 0, −1).
func spinOf(slot int) int { return 1 - slot }

// BuildVectorHarmonic returns the vector spherical harmonic of total angular
// momentum l+k and projection m on a Gaussian shell.
//
// Slot c holds spin σ = 1−c built from the surface kernel Y_l^μ, μ = σ−m,
// weighted by ClebschGordan(l+k, m, l, μ, 1, σ). A slot whose coupling is not
// admissible (or |μ| > l) stays identically zero; e.g. l=k=m=0 is all zero.
//
// Errors: ErrInvalidDegree (l < 0, |m| > l, k ∉ {−1,0,1}) plus the
// BuildScalarHarmonic errors.
func BuildVectorHarmonic(radius, fwhm float64, l, k, m int, spacing volume.Spacing) (*volume.Field[[3]complex128], error) {
	op := fmt.Sprintf("BuildVectorHarmonic(l=%d, k=%d, m=%d)", l, k, m)
	if err := validateVectorIndex(op, l, k, m); err != nil {
		return nil, err
	}
	if err := validateGeometry(op, radius, spacing); err != nil {
		return nil, err
	}
	if math.IsInf(fwhm, 0) {
		return nil, opError(op, ErrInvalidWidth)
	}
	shape := shapeOf(kernelHalf(radius, clampFWHM(fwhm), spacing))

	return coupleSpins(shape, spacing, l, k, m, func(mu int) (*volume.Field[complex128], error) {
		return BuildScalarHarmonic(radius, fwhm, l, mu, false, spacing)
	})
}

// BuildVectorRadialHarmonic is BuildVectorHarmonic built from the radial
// kernels of index n instead of surface kernels.
//
// Errors: as BuildVectorHarmonic plus BuildRadialHarmonic's; an unsupported
// (l, n) pair fails even when every slot would be zero.
func BuildVectorRadialHarmonic(radius float64, n, l, k, m int, spacing volume.Spacing) (*volume.Field[[3]complex128], error) {
	op := fmt.Sprintf("BuildVectorRadialHarmonic(n=%d, l=%d, k=%d, m=%d)", n, l, k, m)
	if err := validateVectorIndex(op, l, k, m); err != nil {
		return nil, err
	}
	if err := validateGeometry(op, radius, spacing); err != nil {
		return nil, err
	}
	if radius == 0 {
		return nil, opError(op, ErrInvalidRadius)
	}
	if _, err := specfn.BesselZero(l, n); err != nil {
		return nil, opError(op, err)
	}
	shape := shapeOf(kernelHalf(radius, radialAngularFWHM, spacing))

	return coupleSpins(shape, spacing, l, k, m, func(mu int) (*volume.Field[complex128], error) {
		return BuildRadialHarmonic(radius, n, l, mu, spacing)
	})
}

func validateVectorIndex(op string, l, k, m int) error {
	if l < 0 || k < -1 || k > 1 || m > l || -m > l {
		return opError(op, ErrInvalidDegree)
	}

	return nil
}

// coupleSpins fills each slot with cg·scalar(μ), skipping inadmissible couplings.
func coupleSpins(
	shape volume.Shape,
	spacing volume.Spacing,
	l, k, m int,
	scalar func(mu int) (*volume.Field[complex128], error),
) (*volume.Field[[3]complex128], error) {
	out := volume.MustNew[[3]complex128](shape, volume.WithSpacing(spacing))
	data := out.Data()
	for slot := range 3 {
		sigma := spinOf(slot)
		mu := sigma - m
		if mu > l || -mu > l {
			continue
		}
		cg, ok := specfn.ClebschGordan(l+k, m, l, mu, 1, sigma)
		if !ok || cg == 0 {
			continue
		}
		s, err := scalar(mu)
		if err != nil {
			return nil, err
		}
		w := complex(cg, 0)
		for i, v := range s.Data() {
			data[i][slot] = w * v
		}
	}

	return out, nil
}
