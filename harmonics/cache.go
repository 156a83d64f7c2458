// SPDX-License-Identifier: MIT

package harmonics

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/voxharm/volume"
)

// Cache holds one kernel per index of a Layout, in layout order, together
// with the Config it was built from. It is read-only after construction.
type Cache[T volume.Element] struct {
	layout  *Layout
	kernels []*volume.Field[T]
	cfg     Config
}

// Layout returns the index layout.
func (c *Cache[T]) Layout() *Layout { return c.layout }

// Config returns the configuration the cache was built with.
func (c *Cache[T]) Config() Config { return c.cfg }

// Len returns the number of kernels.
func (c *Cache[T]) Len() int { return len(c.kernels) }

// Kernel returns the kernel for idx, or false when idx is not in the layout.
func (c *Cache[T]) Kernel(idx Index) (*volume.Field[T], bool) {
	off, ok := c.layout.Offset(idx)
	if !ok {
		return nil, false
	}

	return c.kernels[off], true
}

// KernelAt returns the kernel at flat offset off.
func (c *Cache[T]) KernelAt(off int) *volume.Field[T] { return c.kernels[off] }

// Shape returns the common kernel shape (zero for an empty cache).
func (c *Cache[T]) Shape() volume.Shape {
	if len(c.kernels) == 0 {
		return volume.Shape{}
	}

	return c.kernels[0].Shape()
}

// All yields (index, kernel) pairs in layout order.
func (c *Cache[T]) All() iter.Seq2[Index, *volume.Field[T]] {
	return func(yield func(Index, *volume.Field[T]) bool) {
		for off, k := range c.kernels {
			if !yield(c.layout.Key(off), k) {
				return
			}
		}
	}
}

// Kernels walks the layout cursor and yields the kernel at each position.
func (c *Cache[T]) Kernels() iter.Seq[*volume.Field[T]] {
	return func(yield func(*volume.Field[T]) bool) {
		cur, err := c.layout.Cursor()
		if err != nil {
			return
		}
		for ; !cur.Done(); cur.Next() {
			off, _ := c.layout.Offset(c.layout.IndexAt(cur.Pos()))
			if !yield(c.kernels[off]) {
				return
			}
		}
	}
}

// BuildScalarCache computes Y_l^m surface kernels for every (l, m) up to cfg.Band.
func BuildScalarCache(ctx context.Context, cfg Config) (*Cache[complex128], error) {
	return buildCache(ctx, cfg, Scalar, func(idx Index) (*volume.Field[complex128], error) {
		return BuildScalarHarmonic(cfg.Radius, cfg.FWHM, idx.L, idx.M, false, cfg.Spacing)
	})
}

// BuildRadialCache computes radial kernels for every (n, l, m); with
// cfg.RealData only m ≥ 0 is stored.
func BuildRadialCache(ctx context.Context, cfg Config) (*Cache[complex128], error) {
	return buildCache(ctx, cfg, Radial, func(idx Index) (*volume.Field[complex128], error) {
		return BuildRadialHarmonic(cfg.Radius, idx.N, idx.L, idx.M, cfg.Spacing)
	})
}

// BuildVectorCache computes vector kernels for every (l, k, m).
func BuildVectorCache(ctx context.Context, cfg Config) (*Cache[[3]complex128], error) {
	return buildCache(ctx, cfg, Vector, func(idx Index) (*volume.Field[[3]complex128], error) {
		return BuildVectorHarmonic(cfg.Radius, cfg.FWHM, idx.L, idx.K, idx.M, cfg.Spacing)
	})
}

// BuildVectorRadialCache computes vector radial kernels for every (n, l, k, m).
func BuildVectorRadialCache(ctx context.Context, cfg Config) (*Cache[[3]complex128], error) {
	return buildCache(ctx, cfg, VectorRadial, func(idx Index) (*volume.Field[[3]complex128], error) {
		return BuildVectorRadialHarmonic(cfg.Radius, idx.N, idx.L, idx.K, idx.M, cfg.Spacing)
	})
}

// buildCache fills every slot of the family layout in parallel.
//
// Implementation:
//   - Stage 1: validate cfg and build the layout.
//   - Stage 2: one errgroup task per index, bounded by cfg.Workers; each task
//     writes only its own slot, so no locking is needed.
//   - Stage 3: the first failure (or ctx cancellation) cancels the rest and
//     is returned; no partial cache escapes.
func buildCache[T volume.Element](
	ctx context.Context,
	cfg Config,
	family Family,
	gen func(Index) (*volume.Field[T], error),
) (*Cache[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout, err := NewLayout(family, cfg.Band, cfg.RealData)
	if err != nil {
		return nil, err
	}
	log := cfg.logger().With(zap.Stringer("family", family), zap.Int("band", cfg.Band))
	start := time.Now()

	kernels := make([]*volume.Field[T], layout.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for off, idx := range layout.All() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			k, err := gen(idx)
			if err != nil {
				return fmt.Errorf("build %v cache at %v: %w", family, idx, err)
			}
			kernels[off] = k
			log.Debug("kernel built", zap.Stringer("index", idx), zap.Any("shape", k.Shape()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("cache build aborted", zap.Error(err))
		return nil, err
	}

	c := &Cache[T]{layout: layout, kernels: kernels, cfg: cfg}
	log.Info("cache built",
		zap.Int("kernels", c.Len()),
		zap.Any("shape", c.Shape()),
		zap.Duration("elapsed", time.Since(start)))

	return c, nil
}
