// SPDX-License-Identifier: MIT

package specfn

import "errors"

var (
	// ErrBesselZeroUnsupported indicates a Bessel zero outside the tabulated
	// range (order l ∈ [0,10], zero index n ∈ [1,10]).
	ErrBesselZeroUnsupported = errors.New("specfn: bessel zero not tabulated (max l=10, n=10)")
)
