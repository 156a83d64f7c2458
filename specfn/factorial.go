// SPDX-License-Identifier: MIT

package specfn

// Factorial returns n! as a float64. Negative n yields 0.
// Complexity: O(n).
func Factorial(n int) float64 {
	if n < 0 {
		return 0
	}
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}

	return f
}

// FacLM returns (l+m)!/(l−m)!, the ratio used to normalise spherical harmonics.
// m may be negative; for |m| > l the result is 0.
func FacLM(l, m int) float64 {
	if m > l || -m > l {
		return 0
	}
	// Multiply the l−m+1 … l+m range directly to stay exact for moderate l.
	if m >= 0 {
		f := 1.0
		for i := l - m + 1; i <= l+m; i++ {
			f *= float64(i)
		}
		return f
	}
	f := 1.0
	for i := l + m + 1; i <= l-m; i++ {
		f *= float64(i)
	}

	return 1 / f
}
