// SPDX-License-Identifier: MIT

package harmonics

import (
	"math"

	"github.com/katalvlaran/voxharm/volume"
)

// Cartesian vector samples are ordered (X, Y, Z); spin samples are ordered
// by slot (σ = +1, 0, −1).
//
//	ToSpherical:    v0 = (−Y − i·Z)/√2,  v1 = X,  v2 = (Y − i·Z)/√2
//	FromSpherical:  X = Re(w1),  Y = −√2·Re(w0),  Z = √2·Im(w0)
//
// Projection sums v·K and reconstruction sums K·conj(c), so a reconstructed
// spin field w approximates conj(v). FromSpherical reads that conjugate
// form: FromSpherical(conj(ToSpherical(f))) == f up to rounding.

// ToSpherical converts a real Cartesian vector field into spin components.
func ToSpherical(f *volume.Field[[3]float64]) *volume.Field[[3]complex128] {
	out := volume.MustNew[[3]complex128](f.Shape(), volume.WithSpacing(f.Spacing()))
	dst := out.Data()
	for i, v := range f.Data() {
		dst[i] = cartesianToSpin(v)
	}

	return out
}

// FromSpherical maps reconstructed spin components back to a real Cartesian
// vector field. Only w0 and w1 are read; the map is exact for the conjugate
// of ToSpherical output.
func FromSpherical(f *volume.Field[[3]complex128]) *volume.Field[[3]float64] {
	out := volume.MustNew[[3]float64](f.Shape(), volume.WithSpacing(f.Spacing()))
	dst := out.Data()
	for i, v := range f.Data() {
		dst[i] = spinToCartesian(v)
	}

	return out
}

func cartesianToSpin(v [3]float64) [3]complex128 {
	x, y, z := v[0], v[1], v[2]
	return [3]complex128{
		complex(-y/math.Sqrt2, -z/math.Sqrt2),
		complex(x, 0),
		complex(y/math.Sqrt2, -z/math.Sqrt2),
	}
}

func spinToCartesian(v [3]complex128) [3]float64 {
	return [3]float64{
		real(v[1]),
		-math.Sqrt2 * real(v[0]),
		math.Sqrt2 * imag(v[0]),
	}
}
