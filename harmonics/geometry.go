// SPDX-License-Identifier: MIT

package harmonics

import (
	"math"

	"github.com/katalvlaran/voxharm/volume"
)

// Pole guards. Both are applied exactly where the reference kernels apply
// them so that values stay bit-compatible.
const (
	poleOffset = 1e-5 // added to y when the voxel lies on the z axis
	unitOffset = 1e-8 // pulls an acos argument of exactly ±1 towards zero
)

// ln½ appears in every Gaussian shell weight: σf = −2·ln½ / fwhm².
var lnHalf = math.Log(0.5)

// sphericalAngles converts a centred physical offset into the polar angle θ
// (from +z) and the azimuth φ ∈ [0, 2π).
func sphericalAngles(x, y, z float64) (theta, phi float64) {
	if x*x+y*y == 0 {
		y += poleOffset
	}
	theta = math.Acos(guardUnit(z / math.Sqrt(x*x+y*y+z*z)))
	phi = math.Acos(guardUnit(x / math.Sqrt(x*x+y*y)))
	if y < 0 {
		phi = 2*math.Pi - phi
	}

	return theta, phi
}

func guardUnit(c float64) float64 {
	switch c {
	case 1:
		return c - unitOffset
	case -1:
		return c + unitOffset
	}

	return c
}

// clampFWHM floors the smoothing width at one physical unit.
func clampFWHM(fwhm float64) float64 {
	if !(fwhm > 1) {
		return 1
	}

	return fwhm
}

// kernelHalf returns ceil(radius/spacing + 3·fwhm) per axis.
func kernelHalf(radius, fwhm float64, spacing volume.Spacing) [3]int {
	var h [3]int
	for a := range 3 {
		h[a] = int(math.Ceil(radius/spacing[a] + 3*fwhm))
	}

	return h
}

func shapeOf(half [3]int) volume.Shape {
	return volume.Shape{2*half[0] + 1, 2*half[1] + 1, 2*half[2] + 1}
}

// shellWeight is exp(−½·d²·σf) with d = dist − radius.
func shellWeight(dist, radius, sigmaFactor float64) float64 {
	d := dist - radius
	return math.Exp(-0.5 * d * d * sigmaFactor)
}

// walkOffsets calls fn(i, x, y, z) for every voxel of a kernel with the given
// half-extent, i being the flat offset and (x, y, z) the centred physical offset.
func walkOffsets(half [3]int, spacing volume.Spacing, fn func(i int, x, y, z float64)) {
	shape := shapeOf(half)
	i := 0
	for iz := 0; iz < shape[0]; iz++ {
		z := float64(iz-half[0]) * spacing[0]
		for iy := 0; iy < shape[1]; iy++ {
			y := float64(iy-half[1]) * spacing[1]
			for ix := 0; ix < shape[2]; ix++ {
				x := float64(ix-half[2]) * spacing[2]
				fn(i, x, y, z)
				i++
			}
		}
	}
}

func validateGeometry(op string, radius float64, spacing volume.Spacing) error {
	if !finite(radius) || radius < 0 {
		return opError(op, ErrInvalidRadius)
	}
	if !spacing.Valid() {
		return opError(op, ErrInvalidSpacing)
	}

	return nil
}
