// SPDX-License-Identifier: MIT

package specfn

import "math"

// Legendre evaluates the associated Legendre polynomial P_l^m(x) including
// the Condon–Shortley phase (−1)^m.
//
// Negative orders use P_l^{−m} = (−1)^m (l−m)!/(l+m)! P_l^m.
// |m| > l or l < 0 yields 0. x is clamped to [−1, 1].
//
// Implementation:
//   - Stage 1: P_m^m = (−1)^m (2m−1)!! (1−x²)^{m/2}.
//   - Stage 2: P_{m+1}^m = x(2m+1) P_m^m.
//   - Stage 3: upward recurrence (i−m) P_i^m = (2i−1) x P_{i−1}^m − (i+m−1) P_{i−2}^m.
//
// Complexity: O(l).
func Legendre(l, m int, x float64) float64 {
	if l < 0 || m > l || -m > l {
		return 0
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	if m < 0 {
		m = -m
		s := 1.0
		if m%2 == 1 {
			s = -1
		}
		return Legendre(l, m, x) * s / FacLM(l, m)
	}

	pmm := 1.0
	if m > 0 {
		r := math.Sqrt((1 - x) * (1 + x))
		f := 1.0
		for i := 1; i <= m; i++ {
			pmm *= -f * r
			f += 2
		}
	}
	if l == m {
		return pmm
	}
	pm1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pm1
	}
	var p float64
	for i := m + 2; i <= l; i++ {
		p = (float64(2*i-1)*x*pm1 - float64(i+m-1)*pmm) / float64(i-m)
		pmm, pm1 = pm1, p
	}

	return p
}
