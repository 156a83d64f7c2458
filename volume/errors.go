// SPDX-License-Identifier: MIT
// Package volume: sentinel error set.
// All public functions return these sentinels (optionally wrapped with
// fmt.Errorf("ctx: %w", ErrX)); callers match them via errors.Is.

package volume

import "errors"

var (
	// ErrBadShape is returned when a requested shape has a non-positive extent.
	ErrBadShape = errors.New("volume: invalid shape")

	// ErrOutOfRange indicates that a (z,y,x) index lies outside the field.
	ErrOutOfRange = errors.New("volume: index out of range")

	// ErrShapeMismatch indicates that two operands do not share the same shape.
	ErrShapeMismatch = errors.New("volume: shape mismatch")
)
