// SPDX-License-Identifier: MIT

package harmonics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxharm/specfn"
	"github.com/katalvlaran/voxharm/volume"
)

func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// BuildScalarHarmonic returns the discretized spherical harmonic Y_l^m on a
// shell of the given radius.
//
// MAIN DESCRIPTION:
//   - fwhm ≤ 1 is clamped to 1.
//   - Half-extent per axis = ceil(radius/spacing + 3·fwhm); shape is 2h+1,
//     so the kernel is centred on its middle voxel.
//   - Value = w · N_lm · P_l^m(cos θ) · (cos mφ + i·sin mφ) with
//     N_lm = √((2l+1) / (4π·(l+m)!/(l−m)!)).
//   - w = exp(−½·(dist−radius)²·σf), σf = −2·ln½/fwhm²; with fill set,
//     voxels inside the shell get w = 1.
//
// Errors: ErrInvalidDegree, ErrInvalidRadius, ErrInvalidSpacing, ErrInvalidWidth.
//
// Complexity: O(V·l) for V kernel voxels.
func BuildScalarHarmonic(radius, fwhm float64, l, m int, fill bool, spacing volume.Spacing) (*volume.Field[complex128], error) {
	op := fmt.Sprintf("BuildScalarHarmonic(l=%d, m=%d)", l, m)
	if l < 0 || m > l || -m > l {
		return nil, opError(op, ErrInvalidDegree)
	}
	if err := validateGeometry(op, radius, spacing); err != nil {
		return nil, err
	}
	if math.IsInf(fwhm, 0) {
		return nil, opError(op, ErrInvalidWidth)
	}
	fwhm = clampFWHM(fwhm)

	half := kernelHalf(radius, fwhm, spacing)
	out := volume.MustNew[complex128](shapeOf(half), volume.WithSpacing(spacing))
	data := out.Data()
	norm := math.Sqrt(float64(2*l+1) / (4 * math.Pi * specfn.FacLM(l, m)))
	sigma := -2 * lnHalf / (fwhm * fwhm)
	fm := float64(m)

	walkOffsets(half, spacing, func(i int, x, y, z float64) {
		dist := math.Sqrt(x*x + y*y + z*z)
		w := 1.0
		if !fill || dist > radius {
			w = shellWeight(dist, radius, sigma)
		}
		theta, phi := sphericalAngles(x, y, z)
		v := w * norm * specfn.Legendre(l, m, math.Cos(theta))
		sin, cos := math.Sincos(fm * phi)
		data[i] = complex(v*cos, v*sin)
	})

	return out, nil
}
