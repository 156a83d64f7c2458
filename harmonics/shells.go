// SPDX-License-Identifier: MIT

package harmonics

import (
	"math"

	"github.com/katalvlaran/voxharm/volume"
)

// Shell fields share the kernel geometry: half-extent ceil(radius/spacing + 3·fwhm)
// with fwhm clamped at 1. They are handy synthetic inputs for projection.

// BinarySphere marks voxels whose centre lies within spacing_x/2 of the
// shell: |dist − radius| < spacing[2]/2 → 1, else 0.
//
// Errors: ErrInvalidRadius, ErrInvalidSpacing, ErrInvalidWidth.
func BinarySphere(radius, fwhm float64, spacing volume.Spacing) (*volume.Field[float64], error) {
	half, err := shellHalf("BinarySphere", radius, fwhm, spacing)
	if err != nil {
		return nil, err
	}
	out := volume.MustNew[float64](shapeOf(half), volume.WithSpacing(spacing))
	data := out.Data()
	tol := spacing[2] / 2
	walkOffsets(half, spacing, func(i int, x, y, z float64) {
		if math.Abs(math.Sqrt(x*x+y*y+z*z)-radius) < tol {
			data[i] = 1
		}
	})

	return out, nil
}

// SphereSurfaceGauss is the Gaussian shell exp(−½·(dist−radius)²·σf),
// σf = −2·ln½/fwhm², scaled to unit sum.
//
// Errors: as BinarySphere.
func SphereSurfaceGauss(radius, fwhm float64, spacing volume.Spacing) (*volume.Field[float64], error) {
	half, err := shellHalf("SphereSurfaceGauss", radius, fwhm, spacing)
	if err != nil {
		return nil, err
	}
	fwhm = clampFWHM(fwhm)
	out := volume.MustNew[float64](shapeOf(half), volume.WithSpacing(spacing))
	data := out.Data()
	sigma := -2 * lnHalf / (fwhm * fwhm)
	walkOffsets(half, spacing, func(i int, x, y, z float64) {
		data[i] = shellWeight(math.Sqrt(x*x+y*y+z*z), radius, sigma)
	})
	if sum := volume.SumReal(out); sum > 0 {
		for i := range data {
			data[i] /= sum
		}
	}

	return out, nil
}

// Angles holds per-voxel orientation of the offset from the kernel centre.
// Psi is identically zero: a direction fixes only two Euler angles.
type Angles struct {
	Phi   *volume.Field[float64] // azimuth atan2(y, x) ∈ (−π, π]
	Theta *volume.Field[float64] // polar angle from +z, π/2 at the centre voxel
	Psi   *volume.Field[float64]
}

// EulerAngles returns the orientation volumes for the kernel geometry.
//
// Errors: as BinarySphere.
func EulerAngles(radius, fwhm float64, spacing volume.Spacing) (*Angles, error) {
	half, err := shellHalf("EulerAngles", radius, fwhm, spacing)
	if err != nil {
		return nil, err
	}
	shape := shapeOf(half)
	a := &Angles{
		Phi:   volume.MustNew[float64](shape, volume.WithSpacing(spacing)),
		Theta: volume.MustNew[float64](shape, volume.WithSpacing(spacing)),
		Psi:   volume.MustNew[float64](shape, volume.WithSpacing(spacing)),
	}
	phi, theta := a.Phi.Data(), a.Theta.Data()
	walkOffsets(half, spacing, func(i int, x, y, z float64) {
		phi[i] = math.Atan2(y, x)
		r := math.Sqrt(x*x + y*y + z*z)
		if r == 0 {
			theta[i] = math.Pi / 2
			return
		}
		theta[i] = math.Pi/2 - math.Asin(z/r)
	})

	return a, nil
}

func shellHalf(op string, radius, fwhm float64, spacing volume.Spacing) ([3]int, error) {
	if err := validateGeometry(op, radius, spacing); err != nil {
		return [3]int{}, err
	}
	if math.IsInf(fwhm, 0) || math.IsNaN(fwhm) {
		return [3]int{}, opError(op, ErrInvalidWidth)
	}

	return kernelHalf(radius, clampFWHM(fwhm), spacing), nil
}
