// SPDX-License-Identifier: MIT
package fftconv_test

import (
	"context"
	"errors"
	"iter"
	"math/cmplx"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxharm/fftconv"
	"github.com/katalvlaran/voxharm/volume"
)

func randomField(t testing.TB, shape volume.Shape, seed int64) *volume.Field[complex128] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	f, err := volume.New[complex128](shape)
	require.NoError(t, err)
	for i := range f.Data() {
		f.Data()[i] = complex(rng.Float64()-0.5, rng.Float64()-0.5)
	}

	return f
}

// directCorrelate is the reference out(p) = Σ_s in(p − h + s)·K(s) with zero padding.
func directCorrelate(in, k *volume.Field[complex128]) *volume.Field[complex128] {
	s, ks := in.Shape(), k.Shape()
	h := ks.Half()
	out := volume.MustNew[complex128](s)
	for z := 0; z < s[0]; z++ {
		for y := 0; y < s[1]; y++ {
			for x := 0; x < s[2]; x++ {
				var acc complex128
				for sz := 0; sz < ks[0]; sz++ {
					for sy := 0; sy < ks[1]; sy++ {
						for sx := 0; sx < ks[2]; sx++ {
							iz, iy, ix := z-h[0]+sz, y-h[1]+sy, x-h[2]+sx
							if !in.Contains(iz, iy, ix) {
								continue
							}
							acc += in.AtUnchecked(iz, iy, ix) * k.AtUnchecked(sz, sy, sx)
						}
					}
				}
				_ = out.Set(z, y, x, acc)
			}
		}
	}

	return out
}

func assertFieldsClose(t *testing.T, want, got *volume.Field[complex128], tol float64) {
	t.Helper()
	require.Equal(t, want.Shape(), got.Shape())
	for i := range want.Data() {
		if d := cmplx.Abs(want.Data()[i] - got.Data()[i]); d > tol {
			t.Fatalf("sample %d: want %v got %v (|Δ|=%g)", i, want.Data()[i], got.Data()[i], d)
		}
	}
}

// TestConvolveMany_MatchesDirect compares against the direct sum for several kernel shapes.
func TestConvolveMany_MatchesDirect(t *testing.T) {
	in := randomField(t, volume.Shape{6, 5, 7}, 1)
	kernels := []*volume.Field[complex128]{
		randomField(t, volume.Shape{3, 3, 3}, 2),
		randomField(t, volume.Shape{1, 5, 3}, 3),
		randomField(t, volume.Shape{3, 3, 3}, 4),
		randomField(t, volume.Shape{9, 1, 1}, 5), // larger than the input along z
	}

	var outs []*volume.Field[complex128]
	err := fftconv.ConvolveMany(context.Background(), in, slices.Values(kernels), func(f *volume.Field[complex128]) error {
		outs = append(outs, f)
		return nil
	}, fftconv.WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, outs, len(kernels))

	for i, k := range kernels {
		assertFieldsClose(t, directCorrelate(in, k), outs[i], 1e-10)
	}
}

// TestConvolve_SpacingAndNormalize checks unit-sum scaling and spacing propagation.
func TestConvolve_SpacingAndNormalize(t *testing.T) {
	in := volume.MustNew[complex128](volume.Shape{5, 5, 5}, volume.WithSpacing(volume.Spacing{2, 2, 1}))
	in.Fill(1)
	k := volume.MustNew[complex128](volume.Shape{3, 3, 3})
	k.Fill(2)

	out, err := fftconv.Convolve(context.Background(), in, k, fftconv.WithNormalize(true))
	require.NoError(t, err)
	assert.Equal(t, volume.Spacing{2, 2, 1}, out.Spacing())
	v, _ := out.At(2, 2, 2)
	assert.InDelta(t, 1.0, real(v), 1e-12)
	corner, _ := out.At(0, 0, 0)
	assert.InDelta(t, 8.0/27, real(corner), 1e-12, "corner sees 2x2x2 of the window")

	// A zero-sum kernel is left untouched.
	zs := volume.MustNew[complex128](volume.Shape{1, 1, 2})
	zs.Data()[0], zs.Data()[1] = 1, -1
	out, err = fftconv.Convolve(context.Background(), in, zs, fftconv.WithNormalize(true))
	require.NoError(t, err)
	assertFieldsClose(t, directCorrelate(in, zs), out, 1e-12)
}

// TestConvolveMany_Errors covers nil arguments, empty kernels, emit errors and cancellation.
func TestConvolveMany_Errors(t *testing.T) {
	ctx := context.Background()
	in := randomField(t, volume.Shape{3, 3, 3}, 7)
	k := randomField(t, volume.Shape{1, 1, 1}, 8)
	sink := func(*volume.Field[complex128]) error { return nil }

	err := fftconv.ConvolveMany(ctx, nil, slices.Values([]*volume.Field[complex128]{k}), sink)
	assert.ErrorIs(t, err, fftconv.ErrNilInput)

	err = fftconv.ConvolveMany(ctx, in, slices.Values([]*volume.Field[complex128]{k, nil}), sink)
	assert.ErrorIs(t, err, fftconv.ErrNilInput)

	err = fftconv.ConvolveMany(ctx, in, slices.Values([]*volume.Field[complex128]{{}}), sink)
	assert.ErrorIs(t, err, fftconv.ErrEmptyKernel)

	boom := errors.New("boom")
	calls := 0
	err = fftconv.ConvolveMany(ctx, in, slices.Values([]*volume.Field[complex128]{k, k, k}), func(*volume.Field[complex128]) error {
		calls++
		return boom
	}, fftconv.WithWorkers(1))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	var endless iter.Seq[*volume.Field[complex128]] = func(yield func(*volume.Field[complex128]) bool) {
		for yield(k) {
		}
	}
	err = fftconv.ConvolveMany(cctx, in, endless, sink)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Panics(t, func() { fftconv.WithWorkers(-1) })
}

// TestConvolveMany_StopsOnCancelMidStream cancels from inside emit.
func TestConvolveMany_StopsOnCancelMidStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := randomField(t, volume.Shape{4, 4, 4}, 9)
	k := randomField(t, volume.Shape{3, 3, 3}, 10)
	seen := 0
	var endless iter.Seq[*volume.Field[complex128]] = func(yield func(*volume.Field[complex128]) bool) {
		for yield(k) {
		}
	}
	err := fftconv.ConvolveMany(ctx, in, endless, func(*volume.Field[complex128]) error {
		seen++
		if seen == 5 {
			cancel()
		}
		return nil
	}, fftconv.WithWorkers(2))
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, seen, 5)
}
