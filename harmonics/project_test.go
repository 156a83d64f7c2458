// SPDX-License-Identifier: MIT
package harmonics_test

import (
	"context"
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxharm/harmonics"
	"github.com/katalvlaran/voxharm/volume"
)

func scalarCache(t testing.TB, opts ...harmonics.Option) *harmonics.Cache[complex128] {
	t.Helper()
	c, err := harmonics.BuildScalarCache(context.Background(), harmonics.NewConfig(opts...))
	require.NoError(t, err)

	return c
}

func vectorCache(t testing.TB, opts ...harmonics.Option) *harmonics.Cache[[3]complex128] {
	t.Helper()
	c, err := harmonics.BuildVectorCache(context.Background(), harmonics.NewConfig(opts...))
	require.NoError(t, err)

	return c
}

// TestProjectAt_ScalarRoundTrip projects Re(K_{2,1}) and reconstructs it.
func TestProjectAt_ScalarRoundTrip(t *testing.T) {
	cache := scalarCache(t, harmonics.WithRadius(5), harmonics.WithFWHM(2), harmonics.WithBand(3))
	target := harmonics.Index{L: 2, M: 1}
	partner := harmonics.Index{L: 2, M: -1}
	k, _ := cache.Kernel(target)
	input := volume.Real(k)

	coeffs, err := harmonics.ProjectRealAt(cache, input, input.Center())
	require.NoError(t, err)
	require.Equal(t, cache.Len(), coeffs.Len())

	peak, _ := coeffs.At(target)
	mirror, _ := coeffs.At(partner)
	// real input: c_{l,−m} = (−1)^m·conj(c_{l,m})
	assert.InDelta(t, cmplx.Abs(peak), cmplx.Abs(mirror), 1e-9*cmplx.Abs(peak))
	for idx, c := range coeffs.All() {
		if idx == target || idx == partner {
			continue
		}
		assert.Less(t, 10*cmplx.Abs(c), cmplx.Abs(peak), "%v leaks into the expansion", idx)
	}

	recon, err := harmonics.ReconstructScalar(cache, coeffs)
	require.NoError(t, err)
	assert.Equal(t, input.Shape(), recon.Shape())
	assert.Greater(t, cosineReal(recon.Data(), input.Data()), 0.99)
}

// TestProjectAt_DominantIndex recovers each pure real kernel of a band.
func TestProjectAt_DominantIndex(t *testing.T) {
	cache := scalarCache(t, harmonics.WithRadius(4), harmonics.WithBand(2))
	for l := 0; l <= 2; l++ {
		k, _ := cache.Kernel(harmonics.Index{L: l})
		coeffs, err := harmonics.ProjectAtCenter(cache, k)
		require.NoError(t, err)
		idx, _ := coeffs.Dominant()
		assert.Equal(t, harmonics.Index{L: l}, idx)
	}
}

// TestKernels_Orthogonality bounds the normalized overlap of distinct kernels.
func TestKernels_Orthogonality(t *testing.T) {
	for _, spacing := range []float64{1, 0.5} {
		cache := scalarCache(t, harmonics.WithRadius(4), harmonics.WithBand(2),
			harmonics.WithSpacing(volume.Spacing{spacing, spacing, spacing}))
		for i := 0; i < cache.Len(); i++ {
			for j := i + 1; j < cache.Len(); j++ {
				a, b := cache.KernelAt(i), cache.KernelAt(j)
				d, err := volume.Dot(a, b)
				require.NoError(t, err)
				overlap := cmplx.Abs(d) / (volume.Norm(a) * volume.Norm(b))
				assert.Less(t, overlap, 1e-3, "spacing %g: %v vs %v",
					spacing, cache.Layout().Key(i), cache.Layout().Key(j))
			}
		}
	}
}

// TestProjectAt_ZeroPadding probes a corner of a constant field.
func TestProjectAt_ZeroPadding(t *testing.T) {
	cache := scalarCache(t, harmonics.WithRadius(2), harmonics.WithBand(1))
	field := volume.MustNew[complex128](volume.Shape{6, 6, 6})
	field.Fill(1)

	coeffs, err := harmonics.ProjectAt(cache, field, [3]float64{0.7, 0.2, 0.9})
	require.NoError(t, err)

	k := cache.KernelAt(0)
	h := k.Shape().Half()
	var want complex128
	k.Do(func(z, y, x int, v complex128) bool {
		fz, fy, fx := z-h[0], y-h[1], x-h[2]
		if field.Contains(fz, fy, fx) {
			want += v
		}
		return true
	})
	got, _ := coeffs.At(harmonics.Index{})
	assert.InDelta(t, real(want), real(got), 1e-12)
	assert.InDelta(t, imag(want), imag(got), 1e-12)

	far, err := harmonics.ProjectAt(cache, field, [3]float64{-100, 0, 0})
	require.NoError(t, err)
	for _, c := range far.Values() {
		assert.Zero(t, c)
	}
}

// TestProjectVolume_MatchesLocal compares every dense voxel with ProjectAt.
func TestProjectVolume_MatchesLocal(t *testing.T) {
	cache := scalarCache(t, harmonics.WithRadius(2), harmonics.WithBand(1), harmonics.WithWorkers(2))
	field := volume.Complex(randomReal(t, volume.Shape{9, 10, 11}, 7))

	dense, err := harmonics.ProjectVolume(context.Background(), cache, field)
	require.NoError(t, err)
	require.Equal(t, cache.Len(), dense.Len())
	assert.True(t, dense.Layout().Equal(cache.Layout()))
	for _, f := range dense.All() {
		assert.Equal(t, field.Shape(), f.Shape())
	}

	for _, p := range [][3]int{{0, 0, 0}, {4, 5, 5}, {8, 9, 10}, {2, 7, 1}} {
		local, err := harmonics.ProjectAt(cache, field, [3]float64{float64(p[0]), float64(p[1]), float64(p[2])})
		require.NoError(t, err)
		sample, err := dense.Sample(p[0], p[1], p[2])
		require.NoError(t, err)
		want, got := local.Values(), sample.Values()
		for i := range want {
			assert.InDelta(t, real(want[i]), real(got[i]), 1e-9, "voxel %v index %v", p, cache.Layout().Key(i))
			assert.InDelta(t, imag(want[i]), imag(got[i]), 1e-9, "voxel %v index %v", p, cache.Layout().Key(i))
		}
	}

	_, err = dense.Sample(9, 0, 0)
	assert.ErrorIs(t, err, volume.ErrOutOfRange)
}

// TestProjectVectorVolume_MatchesLocal is the vector counterpart.
func TestProjectVectorVolume_MatchesLocal(t *testing.T) {
	cache := vectorCache(t, harmonics.WithRadius(1), harmonics.WithBand(1))
	field := volume.MustNew[[3]float64](volume.Shape{7, 8, 9})
	parts := [3]*volume.Field[float64]{
		randomReal(t, field.Shape(), 11), randomReal(t, field.Shape(), 13), randomReal(t, field.Shape(), 17),
	}
	for i := range field.Data() {
		field.Data()[i] = [3]float64{parts[0].Data()[i], parts[1].Data()[i], parts[2].Data()[i]}
	}

	dense, err := harmonics.ProjectVectorVolume(context.Background(), cache, field)
	require.NoError(t, err)
	for _, p := range [][3]int{{3, 4, 4}, {0, 7, 8}, {6, 0, 2}} {
		local, err := harmonics.ProjectVectorAt(cache, field, [3]float64{float64(p[0]), float64(p[1]), float64(p[2])})
		require.NoError(t, err)
		sample, err := dense.Sample(p[0], p[1], p[2])
		require.NoError(t, err)
		for i, w := range local.Values() {
			g := sample.Values()[i]
			assert.InDelta(t, real(w), real(g), 1e-9, "voxel %v", p)
			assert.InDelta(t, imag(w), imag(g), 1e-9, "voxel %v", p)
		}
	}
}

// TestProjectSphericalAt_VectorRoundTrip projects conj(K) for two vector kernels.
func TestProjectSphericalAt_VectorRoundTrip(t *testing.T) {
	cache := vectorCache(t, harmonics.WithRadius(4), harmonics.WithBand(2))
	for _, target := range []harmonics.Index{{L: 1, K: 0, M: 1}, {L: 2, K: 1, M: -1}} {
		k, ok := cache.Kernel(target)
		require.True(t, ok)
		input := k.Clone()
		for i, v := range input.Data() {
			input.Data()[i] = [3]complex128{cmplx.Conj(v[0]), cmplx.Conj(v[1]), cmplx.Conj(v[2])}
		}

		coeffs, err := harmonics.ProjectSphericalAt(cache, input, input.Center())
		require.NoError(t, err)
		idx, c := coeffs.Dominant()
		require.Equal(t, target, idx)
		for other, v := range coeffs.All() {
			if other != target {
				assert.Less(t, 10*cmplx.Abs(v), cmplx.Abs(c), "%v leaks into %v", target, other)
			}
		}

		spin, err := harmonics.ReconstructSpherical(cache, coeffs)
		require.NoError(t, err)
		assert.Greater(t, cosine(flattenSpin(spin), flattenSpin(k)), 0.99, "%v", target)
	}
}

// TestProjectVectorAt_ConvertsToSpin matches the Cartesian and spin entry points.
func TestProjectVectorAt_ConvertsToSpin(t *testing.T) {
	cache := vectorCache(t, harmonics.WithRadius(1), harmonics.WithBand(1))
	field := volume.MustNew[[3]float64](volume.Shape{9, 9, 9})
	for i := range field.Data() {
		field.Data()[i] = [3]float64{math.Sin(float64(i)), math.Cos(float64(i)), 0.25}
	}
	a, err := harmonics.ProjectVectorAtCenter(cache, field)
	require.NoError(t, err)
	b, err := harmonics.ProjectSphericalAt(cache, harmonics.ToSpherical(field), field.Center())
	require.NoError(t, err)
	assert.Equal(t, a.Values(), b.Values())
}

// TestProject_Errors covers the argument sentinels.
func TestProject_Errors(t *testing.T) {
	cache := scalarCache(t, harmonics.WithRadius(1), harmonics.WithBand(0))
	field := volume.MustNew[complex128](volume.Shape{3, 3, 3})

	_, err := harmonics.ProjectAt(nil, field, field.Center())
	assert.ErrorIs(t, err, harmonics.ErrNilCache)
	_, err = harmonics.ProjectAt(cache, nil, [3]float64{})
	assert.ErrorIs(t, err, harmonics.ErrNilField)
	_, err = harmonics.ProjectAt(cache, field, [3]float64{0, math.NaN(), 0})
	assert.ErrorIs(t, err, harmonics.ErrInvalidPosition)
	_, err = harmonics.ProjectRealAt(cache, nil, [3]float64{})
	assert.ErrorIs(t, err, harmonics.ErrNilField)
	_, err = harmonics.ProjectAtCenter(cache, nil)
	assert.ErrorIs(t, err, harmonics.ErrNilField)
	_, err = harmonics.ProjectVectorAt(nil, volume.MustNew[[3]float64](volume.Shape{1, 1, 1}), [3]float64{})
	assert.ErrorIs(t, err, harmonics.ErrNilCache)
	_, err = harmonics.ProjectSphericalAt(nil, nil, [3]float64{})
	assert.ErrorIs(t, err, harmonics.ErrNilCache)

	_, err = harmonics.ProjectVolume(context.Background(), nil, field)
	assert.ErrorIs(t, err, harmonics.ErrNilCache)
	_, err = harmonics.ProjectVectorVolume(context.Background(), nil, nil)
	assert.ErrorIs(t, err, harmonics.ErrNilCache)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = harmonics.ProjectVolume(ctx, cache, field)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestProjectAt_ConcurrentReaders shares one cache across goroutines.
func TestProjectAt_ConcurrentReaders(t *testing.T) {
	cache := scalarCache(t, harmonics.WithRadius(2), harmonics.WithBand(2))
	field := volume.Complex(randomReal(t, volume.Shape{8, 8, 8}, 3))
	want, err := harmonics.ProjectAtCenter(cache, field)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]complex128, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := harmonics.ProjectAtCenter(cache, field)
			if err == nil {
				results[i] = c.Values()
			}
		}()
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want.Values(), got)
	}
}

// cartesianShell places Re(Y_2^0) on a radius-4 shell in one Cartesian
// component and leaves the other two at zero.
func cartesianShell(t *testing.T, axis int) *volume.Field[[3]float64] {
	t.Helper()
	k, err := harmonics.BuildScalarHarmonic(4, 1, 2, 0, false, volume.Isotropic)
	require.NoError(t, err)
	f := volume.MustNew[[3]float64](k.Shape())
	for i, v := range k.Data() {
		f.Data()[i][axis] = real(v)
	}

	return f
}

func flattenCartesian(f *volume.Field[[3]float64]) []float64 {
	out := make([]float64, 0, 3*f.Len())
	for _, v := range f.Data() {
		out = append(out, v[0], v[1], v[2])
	}

	return out
}

func componentOf(f *volume.Field[[3]float64], axis int) []float64 {
	out := make([]float64, f.Len())
	for i, v := range f.Data() {
		out[i] = v[axis]
	}

	return out
}

// TestProjectVectorAt_CartesianRoundTrip projects a shell held in X, Y or Z
// and reconstructs it with every component keeping its sign.
func TestProjectVectorAt_CartesianRoundTrip(t *testing.T) {
	cfg := harmonics.NewConfig(harmonics.WithRadius(4), harmonics.WithBand(3))
	cache, err := harmonics.BuildVectorCache(context.Background(), cfg)
	require.NoError(t, err)

	for axis, name := range []string{"X", "Y", "Z"} {
		t.Run(name, func(t *testing.T) {
			input := cartesianShell(t, axis)
			coeffs, err := harmonics.ProjectVectorAtCenter(cache, input)
			require.NoError(t, err)

			recon, err := harmonics.ReconstructVector(cfg, coeffs)
			require.NoError(t, err)
			require.Equal(t, input.Shape(), recon.Shape())
			assert.Greater(t, cosineReal(flattenCartesian(recon), flattenCartesian(input)), 0.9)
			assert.Greater(t, cosineReal(componentOf(recon, axis), componentOf(input, axis)), 0.9)

			cached, err := harmonics.ReconstructVectorFromCache(cache, coeffs)
			require.NoError(t, err)
			assert.InDeltaSlice(t, flattenCartesian(recon), flattenCartesian(cached), 1e-9)
		})
	}
}

// TestProjectVectorVolume_CartesianRoundTrip runs the same round trip from
// the dense coefficient volumes sampled at the centre voxel.
func TestProjectVectorVolume_CartesianRoundTrip(t *testing.T) {
	cache := vectorCache(t, harmonics.WithRadius(4), harmonics.WithBand(3))

	for axis, name := range []string{"X", "Y", "Z"} {
		t.Run(name, func(t *testing.T) {
			input := cartesianShell(t, axis)
			dense, err := harmonics.ProjectVectorVolume(context.Background(), cache, input)
			require.NoError(t, err)
			h := input.Shape().Half()
			coeffs, err := dense.Sample(h[0], h[1], h[2])
			require.NoError(t, err)

			local, err := harmonics.ProjectVectorAtCenter(cache, input)
			require.NoError(t, err)
			for i, want := range local.Values() {
				got := coeffs.Values()[i]
				require.InDelta(t, real(want), real(got), 1e-9)
				require.InDelta(t, imag(want), imag(got), 1e-9)
			}

			recon, err := harmonics.ReconstructVectorFromCache(cache, coeffs)
			require.NoError(t, err)
			assert.Greater(t, cosineReal(flattenCartesian(recon), flattenCartesian(input)), 0.9)
			assert.Greater(t, cosineReal(componentOf(recon, axis), componentOf(input, axis)), 0.9)
		})
	}
}
