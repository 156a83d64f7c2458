// SPDX-License-Identifier: MIT

package multiindex

import "errors"

var (
	// ErrBadDepth is returned when a cursor is requested with depth < 1.
	ErrBadDepth = errors.New("multiindex: depth must be >= 1")

	// ErrNilSize is returned when the SizeFunc is nil.
	ErrNilSize = errors.New("multiindex: nil size function")
)
