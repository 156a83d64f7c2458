// SPDX-License-Identifier: MIT

package harmonics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxharm/specfn"
	"github.com/katalvlaran/voxharm/volume"
)

// Fixed widths of the angular part and of the exterior damping.
const (
	radialAngularFWHM  = 1.0
	radialExteriorFWHM = 2.0
)

// BuildRadialHarmonic returns the volumetric ("full") harmonic of radial
// index n: the filled angular kernel Y_l^m times J_l(k·r)/√N.
//
// Implementation:
//   - Stage 1: x_ln = BesselZero(l, n), k = x_ln/radius,
//     N = radius³/2 · J_{l+1}(x_ln)².
//   - Stage 2: angular part = BuildScalarHarmonic(radius, 1, l, m, fill=true).
//   - Stage 3: inside the shell value = R(r)·angular; outside it is further
//     damped by exp(−½·(r−radius)²·σ2), σ2 = −2·ln½/4.
//
// n < 1 has no tabulated Bessel zero and, like l or n above 10, yields
// specfn.ErrBesselZeroUnsupported.
//
// Errors: ErrInvalidDegree, ErrInvalidRadius (radius must be > 0),
// ErrInvalidSpacing, specfn.ErrBesselZeroUnsupported.
func BuildRadialHarmonic(radius float64, n, l, m int, spacing volume.Spacing) (*volume.Field[complex128], error) {
	op := fmt.Sprintf("BuildRadialHarmonic(n=%d, l=%d, m=%d)", n, l, m)
	if l < 0 || m > l || -m > l {
		return nil, opError(op, ErrInvalidDegree)
	}
	if err := validateGeometry(op, radius, spacing); err != nil {
		return nil, err
	}
	if radius == 0 {
		return nil, opError(op, ErrInvalidRadius)
	}
	xnl, err := specfn.BesselZero(l, n)
	if err != nil {
		return nil, opError(op, err)
	}

	out, err := BuildScalarHarmonic(radius, radialAngularFWHM, l, m, true, spacing)
	if err != nil {
		return nil, err
	}
	k := xnl / radius
	j := specfn.BesselJ(l+1, xnl)
	invSqrtN := 1 / math.Sqrt(radius*radius*radius/2*j*j)
	sigma := -2 * lnHalf / (radialExteriorFWHM * radialExteriorFWHM)

	data := out.Data()
	walkOffsets(kernelHalf(radius, radialAngularFWHM, spacing), spacing, func(i int, x, y, z float64) {
		r := math.Sqrt(x*x + y*y + z*z)
		v := invSqrtN * specfn.BesselJ(l, k*r)
		if r > radius {
			v *= shellWeight(r, radius, sigma)
		}
		data[i] *= complex(v, 0)
	})

	return out, nil
}
