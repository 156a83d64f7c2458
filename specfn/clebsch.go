// SPDX-License-Identifier: MIT

package specfn

import "math"

// ClebschGordan returns the coupling coefficient ⟨j1 m1; j2 m2 | j m⟩ for
// integer angular momenta, using Racah's closed formula.
//
// The second result is false when the combination is not admissible:
// any j < 0, any |m_i| > j_i, m1+m2 ≠ m, or the triangle rule
// |j1−j2| ≤ j ≤ j1+j2 fails. Callers treat ok=false as "no contribution".
//
// Complexity: O(j1+j2) terms in the Racah sum.
func ClebschGordan(j1, m1, j2, m2, j, m int) (float64, bool) {
	if j1 < 0 || j2 < 0 || j < 0 {
		return 0, false
	}
	if abs(m1) > j1 || abs(m2) > j2 || abs(m) > j {
		return 0, false
	}
	if m1+m2 != m {
		return 0, false
	}
	if j < abs(j1-j2) || j > j1+j2 {
		return 0, false
	}

	pre := float64(2*j+1) *
		Factorial(j+j1-j2) * Factorial(j-j1+j2) * Factorial(j1+j2-j) /
		Factorial(j1+j2+j+1)
	pre = math.Sqrt(pre)
	pre *= math.Sqrt(Factorial(j+m) * Factorial(j-m) *
		Factorial(j1-m1) * Factorial(j1+m1) *
		Factorial(j2-m2) * Factorial(j2+m2))

	// k runs over every value keeping all factorial arguments non-negative.
	kMin := max(0, j2-j-m1, j1-j+m2)
	kMax := min(j1+j2-j, j1-m1, j2+m2)
	var sum float64
	for k := kMin; k <= kMax; k++ {
		den := Factorial(k) *
			Factorial(j1+j2-j-k) *
			Factorial(j1-m1-k) *
			Factorial(j2+m2-k) *
			Factorial(j-j2+m1+k) *
			Factorial(j-j1-m2+k)
		if k%2 == 0 {
			sum += 1 / den
		} else {
			sum -= 1 / den
		}
	}

	return pre * sum, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
