// SPDX-License-Identifier: MIT

// Package multiindex provides a generic odometer cursor over nested index
// levels whose extents may depend on the values of the outer levels.
//
// A Cursor of depth d holds d level offsets (outer first). Next increments the
// innermost offset and carries outwards when a level is exhausted, skipping
// levels whose extent is zero. Traversal ends at the sentinel
// [size(0), 0, ..., 0]; two cursors over the same SizeFunc compare with Equal,
// so a Begin/End pair forms a half-open range for one linear walk.
//
// Offsets are always 0-based. Mapping offsets onto domain values (for example
// an order m in [-l, l]) is the caller's job.
//
// Complexity:
//   - Next is O(depth) amortised plus SizeFunc calls.
//   - Count is O(total positions).
package multiindex
