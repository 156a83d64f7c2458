// SPDX-License-Identifier: MIT

package harmonics

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxharm/fftconv"
	"github.com/katalvlaran/voxharm/volume"
)

// ProjectVolume computes, for every cache index, the coefficient volume whose
// voxel p equals ProjectAt(cache, field, p). Kernels are streamed from the
// cache cursor into fftconv.ConvolveMany and the results are stored by an
// output cursor walking the same layout in lock-step.
//
// Errors: ErrNilCache, ErrNilField, ctx.Err(), fftconv errors.
//
// Complexity: O(|layout| · P log P), P = padded voxel count.
func ProjectVolume(ctx context.Context, cache *Cache[complex128], field *volume.Field[complex128]) (*CoefficientVolumes, error) {
	const op = "ProjectVolume"
	if cache == nil {
		return nil, opError(op, ErrNilCache)
	}
	if field == nil {
		return nil, opError(op, ErrNilField)
	}
	log := cache.cfg.logger().With(zap.Stringer("family", cache.layout.Family()))
	start := time.Now()

	out := &CoefficientVolumes{layout: cache.layout, volumes: make([]*volume.Field[complex128], cache.Len())}
	if err := convolveInto(ctx, cache.layout, field, cache.Kernels(), cache.cfg.workers(), out, false); err != nil {
		return nil, opError(op, err)
	}
	log.Debug("dense projection done", zap.Any("shape", field.Shape()), zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

// ProjectVectorVolume is the dense form of ProjectVectorAt: every spin
// component of the converted field is correlated with the matching kernel
// slot and the three results are summed per index.
func ProjectVectorVolume(ctx context.Context, cache *Cache[[3]complex128], field *volume.Field[[3]float64]) (*CoefficientVolumes, error) {
	const op = "ProjectVectorVolume"
	if cache == nil {
		return nil, opError(op, ErrNilCache)
	}
	if field == nil {
		return nil, opError(op, ErrNilField)
	}
	log := cache.cfg.logger().With(zap.Stringer("family", cache.layout.Family()))
	start := time.Now()

	spin := ToSpherical(field)
	out := &CoefficientVolumes{layout: cache.layout, volumes: make([]*volume.Field[complex128], cache.Len())}
	for slot := range 3 {
		kernels := slotKernels(cache, slot)
		if err := convolveInto(ctx, cache.layout, volume.Component(spin, slot), kernels, cache.cfg.workers(), out, slot > 0); err != nil {
			return nil, opError(op, err)
		}
	}
	log.Debug("dense vector projection done", zap.Any("shape", field.Shape()), zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

// convolveInto runs ConvolveMany and places each output at the offset of the
// output cursor, which advances once per emitted volume. With accumulate set
// the outputs are added to the volumes already stored.
func convolveInto(
	ctx context.Context,
	layout *Layout,
	in *volume.Field[complex128],
	kernels iter.Seq[*volume.Field[complex128]],
	workers int,
	out *CoefficientVolumes,
	accumulate bool,
) error {
	cur, err := layout.Cursor()
	if err != nil {
		return err
	}
	emit := func(f *volume.Field[complex128]) error {
		if cur.Done() {
			return ErrLayoutMismatch
		}
		off, _ := layout.Offset(layout.IndexAt(cur.Pos()))
		cur.Next()
		if accumulate && out.volumes[off] != nil {
			return volume.AddTo(out.volumes[off], f)
		}
		out.volumes[off] = f
		return nil
	}
	if err := fftconv.ConvolveMany(ctx, in, kernels, emit, fftconv.WithWorkers(workers)); err != nil {
		return err
	}
	if !cur.Done() {
		return ErrLayoutMismatch
	}

	return nil
}

func slotKernels(cache *Cache[[3]complex128], slot int) iter.Seq[*volume.Field[complex128]] {
	return func(yield func(*volume.Field[complex128]) bool) {
		for k := range cache.Kernels() {
			if !yield(volume.Component(k, slot)) {
				return
			}
		}
	}
}
