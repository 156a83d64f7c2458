// SPDX-License-Identifier: MIT

package fftconv

import (
	"context"
	"fmt"
	"iter"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/voxharm/volume"
)

// ConvolveMany correlates in against every kernel yielded by kernels and
// hands the results to emit, one output per kernel, in kernel order.
//
// MAIN DESCRIPTION:
//   - Kernels are pulled in batches of Workers; a batch is transformed in
//     parallel (errgroup) and emitted in order before the next is pulled,
//     so at most Workers outputs are alive at once.
//   - The input spectrum is computed once per padded shape and reused.
//
// Implementation:
//   - Stage 1: validate in/kernels/emit and resolve options.
//   - Stage 2: per batch, compute any missing input spectra (sequential).
//   - Stage 3: per kernel, wrap the flipped kernel, forward FFT, multiply by
//     the input spectrum, inverse FFT, crop to the input shape.
//   - Stage 4: emit outputs in order; an emit error stops the walk.
//
// Errors:
//   - ErrNilInput, ErrEmptyKernel (wrapped with the kernel ordinal),
//     ctx.Err() on cancellation, or the first error returned by emit.
//
// Complexity:
//   - Time O(K · P log P) for K kernels, Space O(Workers · P).
func ConvolveMany(
	ctx context.Context,
	in *volume.Field[complex128],
	kernels iter.Seq[*volume.Field[complex128]],
	emit func(*volume.Field[complex128]) error,
	opts ...Option,
) error {
	if in == nil || kernels == nil || emit == nil {
		return fmt.Errorf("ConvolveMany: %w", ErrNilInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	workers := o.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	c := &convolver{
		in:        in,
		normalize: o.Normalize,
		spectra:   make(map[volume.Shape][]complex128),
		slots:     make([]worker, workers),
	}
	batch := make([]*volume.Field[complex128], 0, workers)
	ordinal := 0
	for k := range kernels {
		if err := ctx.Err(); err != nil {
			return err
		}
		if k == nil {
			return fmt.Errorf("ConvolveMany: kernel #%d: %w", ordinal, ErrNilInput)
		}
		if !k.Shape().Valid() {
			return fmt.Errorf("ConvolveMany: kernel #%d: %w", ordinal, ErrEmptyKernel)
		}
		ordinal++
		batch = append(batch, k)
		if len(batch) < workers {
			continue
		}
		if err := c.flush(ctx, batch, emit); err != nil {
			return err
		}
		batch = batch[:0]
	}
	if len(batch) > 0 {
		return c.flush(ctx, batch, emit)
	}

	return nil
}

// Convolve is ConvolveMany for a single kernel.
func Convolve(ctx context.Context, in, kernel *volume.Field[complex128], opts ...Option) (*volume.Field[complex128], error) {
	var out *volume.Field[complex128]
	one := func(yield func(*volume.Field[complex128]) bool) { yield(kernel) }
	err := ConvolveMany(ctx, in, one, func(f *volume.Field[complex128]) error {
		out = f
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return out, nil
}

type convolver struct {
	in        *volume.Field[complex128]
	normalize bool
	spectra   map[volume.Shape][]complex128 // read-only while a batch runs
	slots     []worker
}

// worker owns the FFT plans and scratch of one batch slot.
type worker struct {
	plans map[volume.Shape]*plan3
}

func (c *convolver) flush(ctx context.Context, batch []*volume.Field[complex128], emit func(*volume.Field[complex128]) error) error {
	padded := make([]volume.Shape, len(batch))
	for i, k := range batch {
		ps := paddedShape(c.in.Shape(), k.Shape())
		padded[i] = ps
		if _, ok := c.spectra[ps]; !ok {
			c.spectra[ps] = inputSpectrum(c.in, ps)
		}
	}

	outs := make([]*volume.Field[complex128], len(batch))
	g, gctx := errgroup.WithContext(ctx)
	for i, k := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outs[i] = c.slots[i].correlate(c.in, k, padded[i], c.spectra[padded[i]], c.normalize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, out := range outs {
		if err := emit(out); err != nil {
			return err
		}
	}

	return nil
}

func paddedShape(in, k volume.Shape) volume.Shape {
	var ps volume.Shape
	for a := range 3 {
		ps[a] = goodSize(in[a] + k[a] - 1)
	}

	return ps
}

// inputSpectrum zero-pads in to ps (top-left aligned) and transforms it.
func inputSpectrum(in *volume.Field[complex128], ps volume.Shape) []complex128 {
	buf := make([]complex128, ps.Len())
	s := in.Shape()
	src := in.Data()
	for z := 0; z < s[0]; z++ {
		for y := 0; y < s[1]; y++ {
			row := (z*s[1] + y) * s[2]
			copy(buf[(z*ps[1]+y)*ps[2]:], src[row:row+s[2]])
		}
	}
	newPlan3(ps).forward(buf)

	return buf
}

func (w *worker) correlate(
	in, k *volume.Field[complex128],
	ps volume.Shape,
	spectrum []complex128,
	normalize bool,
) *volume.Field[complex128] {
	if w.plans == nil {
		w.plans = make(map[volume.Shape]*plan3)
	}
	plan, ok := w.plans[ps]
	if !ok {
		plan = newPlan3(ps)
		w.plans[ps] = plan
	}

	scale := complex128(1)
	if normalize {
		if s := volume.Sum(k); cmplx.Abs(s) > normalizeEps {
			scale = 1 / s
		}
	}

	// G(u) = K(h − u) stored at u mod P.
	buf := make([]complex128, ps.Len())
	ks := k.Shape()
	h := ks.Half()
	kd := k.Data()
	i := 0
	for sz := 0; sz < ks[0]; sz++ {
		uz := wrap(h[0]-sz, ps[0])
		for sy := 0; sy < ks[1]; sy++ {
			uy := wrap(h[1]-sy, ps[1])
			for sx := 0; sx < ks[2]; sx++ {
				ux := wrap(h[2]-sx, ps[2])
				buf[(uz*ps[1]+uy)*ps[2]+ux] = kd[i] * scale
				i++
			}
		}
	}

	plan.forward(buf)
	for j := range buf {
		buf[j] *= spectrum[j]
	}
	plan.inverse(buf)

	s := in.Shape()
	out := volume.MustNew[complex128](s, volume.WithSpacing(in.Spacing()))
	od := out.Data()
	for z := 0; z < s[0]; z++ {
		for y := 0; y < s[1]; y++ {
			row := (z*s[1] + y) * s[2]
			copy(od[row:row+s[2]], buf[(z*ps[1]+y)*ps[2]:])
		}
	}

	return out
}

func wrap(u, n int) int {
	u %= n
	if u < 0 {
		u += n
	}

	return u
}
