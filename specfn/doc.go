// SPDX-License-Identifier: MIT

// Package specfn is the narrow special-function layer used by the harmonic
// kernel generators.
//
// ✨ Contents:
//   - Factorial / FacLM — (l+m)!/(l−m)! normalisation helper
//   - Legendre          — associated Legendre P_l^m(x), Condon–Shortley phase
//   - ClebschGordan     — angular-momentum coupling, result-typed (value, ok)
//   - BesselJ           — cylindrical Bessel function of integer order
//   - BesselZero        — tabulated positive zeros of J_l for l, n ≤ 10
//
// Invalid Clebsch–Gordan triples are not errors: the second return value is
// false and the caller substitutes a zero contribution. Requesting a Bessel
// zero outside the table is a configuration error (ErrBesselZeroUnsupported)
// because no radial profile can be built for it.
//
// All functions are pure and safe for concurrent use.
package specfn
