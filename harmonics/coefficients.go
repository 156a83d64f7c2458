// SPDX-License-Identifier: MIT

package harmonics

import (
	"fmt"
	"iter"
	"math/cmplx"
	"slices"

	"github.com/katalvlaran/voxharm/volume"
)

// Coefficients stores one complex projection per layout index.
// It has no setters and is immutable once returned.
type Coefficients struct {
	layout *Layout
	values []complex128
}

// NewCoefficients copies values into a coefficient set for layout.
// Errors: ErrLayoutMismatch when len(values) != layout.Len().
func NewCoefficients(layout *Layout, values []complex128) (*Coefficients, error) {
	if layout == nil || len(values) != layout.Len() {
		return nil, fmt.Errorf("NewCoefficients(len=%d): %w", len(values), ErrLayoutMismatch)
	}

	return &Coefficients{layout: layout, values: slices.Clone(values)}, nil
}

// Layout returns the index layout.
func (c *Coefficients) Layout() *Layout { return c.layout }

// Len returns the number of coefficients.
func (c *Coefficients) Len() int { return len(c.values) }

// At returns the coefficient of idx, or false when idx is absent.
func (c *Coefficients) At(idx Index) (complex128, bool) {
	off, ok := c.layout.Offset(idx)
	if !ok {
		return 0, false
	}

	return c.values[off], true
}

// Values returns a copy of the coefficients in layout order.
func (c *Coefficients) Values() []complex128 { return slices.Clone(c.values) }

// All yields (index, coefficient) pairs in layout order.
func (c *Coefficients) All() iter.Seq2[Index, complex128] {
	return func(yield func(Index, complex128) bool) {
		for off, v := range c.values {
			if !yield(c.layout.Key(off), v) {
				return
			}
		}
	}
}

// Dominant returns the index with the largest magnitude (first one on ties).
func (c *Coefficients) Dominant() (Index, complex128) {
	best := -1
	var mag float64
	for off, v := range c.values {
		if a := cmplx.Abs(v); best < 0 || a > mag {
			best, mag = off, a
		}
	}
	if best < 0 {
		return Index{}, 0
	}

	return c.layout.Key(best), c.values[best]
}

// CoefficientVolumes is the dense projection result: one coefficient field
// per layout index, each shaped like the projected input.
type CoefficientVolumes struct {
	layout  *Layout
	volumes []*volume.Field[complex128]
}

// Layout returns the index layout.
func (v *CoefficientVolumes) Layout() *Layout { return v.layout }

// Len returns the number of coefficient volumes.
func (v *CoefficientVolumes) Len() int { return len(v.volumes) }

// At returns the coefficient volume of idx, or false when idx is absent.
func (v *CoefficientVolumes) At(idx Index) (*volume.Field[complex128], bool) {
	off, ok := v.layout.Offset(idx)
	if !ok {
		return nil, false
	}

	return v.volumes[off], true
}

// All yields (index, volume) pairs in layout order.
func (v *CoefficientVolumes) All() iter.Seq2[Index, *volume.Field[complex128]] {
	return func(yield func(Index, *volume.Field[complex128]) bool) {
		for off, f := range v.volumes {
			if !yield(v.layout.Key(off), f) {
				return
			}
		}
	}
}

// Sample gathers the coefficient set at voxel (z, y, x).
// Errors: volume.ErrOutOfRange.
func (v *CoefficientVolumes) Sample(z, y, x int) (*Coefficients, error) {
	vals := make([]complex128, len(v.volumes))
	for off, f := range v.volumes {
		s, err := f.At(z, y, x)
		if err != nil {
			return nil, err
		}
		vals[off] = s
	}

	return &Coefficients{layout: v.layout, values: vals}, nil
}
