// SPDX-License-Identifier: MIT
package harmonics_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/voxharm/volume"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// cosine returns |⟨a, b⟩| / (‖a‖·‖b‖) for complex sample slices.
func cosine(a, b []complex128) float64 {
	var dot complex128
	var na, nb float64
	for i := range a {
		dot += a[i] * cmplx.Conj(b[i])
		na += real(a[i])*real(a[i]) + imag(a[i])*imag(a[i])
		nb += real(b[i])*real(b[i]) + imag(b[i])*imag(b[i])
	}

	return cmplx.Abs(dot) / math.Sqrt(na*nb)
}

// cosineReal is cosine for real slices (signed).
func cosineReal(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}

	return dot / math.Sqrt(na*nb)
}

// flattenSpin concatenates the three slots of a spin field.
func flattenSpin(f *volume.Field[[3]complex128]) []complex128 {
	out := make([]complex128, 0, 3*f.Len())
	for _, v := range f.Data() {
		out = append(out, v[0], v[1], v[2])
	}

	return out
}

func randomReal(t testing.TB, shape volume.Shape, seed uint64) *volume.Field[float64] {
	t.Helper()
	f, err := volume.New[float64](shape)
	require.NoError(t, err)
	x := seed | 1
	for i := range f.Data() {
		// xorshift64: deterministic and dependency-free.
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		f.Data()[i] = float64(x%2001)/1000 - 1
	}

	return f
}
