// SPDX-License-Identifier: MIT

// Package volume - Field storage (row-major z→y→x) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly flat buffer with the explicit offset formula (z*Y + y)*X + x.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep loops deterministic (fixed z→y→x order, no map iteration).
//
// AI-Hints:
//   - Hot loops should read Data() and compute offsets with Index, not At.
//   - Reshape reallocates; keep references to Data() only while the shape is stable.

package volume

import (
	"fmt"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxNew     = "New"
	ctxReshape = "Reshape"
)

// Element lists the sample types a Field may hold.
type Element interface {
	float64 | complex128 | [3]float64 | [3]complex128
}

// Shape is the extent of a field along (z, y, x).
type Shape [3]int

// Spacing is the physical voxel size along (z, y, x).
type Spacing [3]float64

// Len returns the number of voxels described by the shape.
func (s Shape) Len() int { return s[0] * s[1] * s[2] }

// Valid reports whether every extent is strictly positive.
func (s Shape) Valid() bool { return s[0] > 0 && s[1] > 0 && s[2] > 0 }

// Odd reports whether every extent is odd, i.e. the shape has a unique middle voxel.
func (s Shape) Odd() bool { return s[0]%2 == 1 && s[1]%2 == 1 && s[2]%2 == 1 }

// Half returns the integer half-extent per axis (the middle voxel for odd shapes).
func (s Shape) Half() [3]int { return [3]int{s[0] / 2, s[1] / 2, s[2] / 2} }

// fieldErrorf wraps an error with a uniform Field context and callsite indices.
func fieldErrorf(method string, z, y, x int, err error) error {
	return fmt.Errorf("Field.%s(%d,%d,%d): %w", method, z, y, x, err)
}

// Field is a dense 3D array of samples of type T.
//   - shape holds the (z, y, x) extents.
//   - spacing holds the physical voxel size (z, y, x).
//   - data is a flat buffer of length shape.Len() in z→y→x row-major order.
type Field[T Element] struct {
	shape   Shape
	spacing Spacing
	data    []T
}

// New allocates a zero-filled field of the given shape.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate every extent > 0; else ErrBadShape.
//   - Stage 2: resolve options (spacing) and allocate a zero-filled buffer.
//
// Errors:
//   - ErrBadShape (shape contract violation).
//
// Complexity:
//   - Time O(N), Space O(N).
func New[T Element](shape Shape, opts ...Option) (*Field[T], error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("%s%v: %w", ctxNew, shape, ErrBadShape)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Field[T]{
		shape:   shape,
		spacing: o.spacing,
		data:    make([]T, shape.Len()),
	}, nil
}

// MustNew is New for shapes known to be valid at the call site; it panics on error.
func MustNew[T Element](shape Shape, opts ...Option) *Field[T] {
	f, err := New[T](shape, opts...)
	if err != nil {
		panic(err)
	}

	return f
}

// FromData wraps an existing buffer (no copy) as a field of the given shape.
// Returns ErrBadShape if the shape is invalid or does not match len(data).
func FromData[T Element](shape Shape, data []T, opts ...Option) (*Field[T], error) {
	if !shape.Valid() || shape.Len() != len(data) {
		return nil, fmt.Errorf("FromData%v len=%d: %w", shape, len(data), ErrBadShape)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Field[T]{shape: shape, spacing: o.spacing, data: data}, nil
}

// Shape returns the (z, y, x) extents. Complexity: O(1).
func (f *Field[T]) Shape() Shape { return f.shape }

// Spacing returns the physical voxel size. Complexity: O(1).
func (f *Field[T]) Spacing() Spacing { return f.spacing }

// Len returns the number of voxels. Complexity: O(1).
func (f *Field[T]) Len() int { return len(f.data) }

// Data exposes the flat backing buffer (z→y→x order). Mutations are visible.
func (f *Field[T]) Data() []T { return f.data }

// Index returns the flat offset of (z, y, x) without bounds checks.
func (f *Field[T]) Index(z, y, x int) int {
	return (z*f.shape[1]+y)*f.shape[2] + x
}

// Contains reports whether (z, y, x) lies inside the field.
func (f *Field[T]) Contains(z, y, x int) bool {
	return z >= 0 && z < f.shape[0] &&
		y >= 0 && y < f.shape[1] &&
		x >= 0 && x < f.shape[2]
}

// At returns the sample at (z, y, x) or ErrOutOfRange.
// Complexity: O(1).
func (f *Field[T]) At(z, y, x int) (T, error) {
	if !f.Contains(z, y, x) {
		var zero T
		return zero, fieldErrorf(ctxAt, z, y, x, ErrOutOfRange)
	}

	return f.data[f.Index(z, y, x)], nil
}

// AtUnchecked returns the sample at (z, y, x); the caller guarantees bounds.
func (f *Field[T]) AtUnchecked(z, y, x int) T {
	return f.data[f.Index(z, y, x)]
}

// Set stores v at (z, y, x) or returns ErrOutOfRange.
// Complexity: O(1).
func (f *Field[T]) Set(z, y, x int, v T) error {
	if !f.Contains(z, y, x) {
		return fieldErrorf(ctxSet, z, y, x, ErrOutOfRange)
	}
	f.data[f.Index(z, y, x)] = v

	return nil
}

// Center returns the bounding-box centre, shape/2 per axis, in voxel units.
// For odd shapes this is the middle voxel plus one half.
func (f *Field[T]) Center() [3]float64 {
	return [3]float64{
		float64(f.shape[0]) / 2,
		float64(f.shape[1]) / 2,
		float64(f.shape[2]) / 2,
	}
}

// Clone returns a deep copy with identical shape and spacing.
// Complexity: O(N).
func (f *Field[T]) Clone() *Field[T] {
	cp := make([]T, len(f.data))
	copy(cp, f.data)

	return &Field[T]{shape: f.shape, spacing: f.spacing, data: cp}
}

// Fill sets every sample to v.
func (f *Field[T]) Fill(v T) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Reshape reallocates the buffer for a new shape and fills it with v.
// Spacing is preserved. Returns ErrBadShape for invalid shapes.
func (f *Field[T]) Reshape(shape Shape, v T) error {
	if !shape.Valid() {
		return fmt.Errorf("%s%v: %w", ctxReshape, shape, ErrBadShape)
	}
	f.shape = shape
	f.data = make([]T, shape.Len())
	f.Fill(v)

	return nil
}

// Do calls fn for every voxel in z→y→x order; fn returning false stops the walk.
func (f *Field[T]) Do(fn func(z, y, x int, v T) bool) {
	i := 0
	for z := 0; z < f.shape[0]; z++ {
		for y := 0; y < f.shape[1]; y++ {
			for x := 0; x < f.shape[2]; x++ {
				if !fn(z, y, x, f.data[i]) {
					return
				}
				i++
			}
		}
	}
}

// String renders a short summary; fields are too large to dump.
func (f *Field[T]) String() string {
	var zero T
	return fmt.Sprintf("Field[%T]%v spacing=%v", zero, f.shape, f.spacing)
}
