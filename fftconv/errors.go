// SPDX-License-Identifier: MIT

package fftconv

import "errors"

var (
	// ErrNilInput is returned for a nil input field, a nil kernel or a nil emit callback.
	ErrNilInput = errors.New("fftconv: nil input")

	// ErrEmptyKernel is returned for a kernel with a zero extent (zero-value Field).
	ErrEmptyKernel = errors.New("fftconv: empty kernel")
)
