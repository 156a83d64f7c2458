// SPDX-License-Identifier: MIT

package multiindex

import (
	"fmt"
	"iter"
	"slices"
)

// SizeFunc returns the extent of level given the offsets of every outer
// level (len(outer) == level). A zero extent means the level is empty for
// that outer prefix and the odometer carries past it.
type SizeFunc func(level int, outer []int) int

// Cursor is a restartable, forward-only odometer over nested levels.
// The zero value is not usable; build cursors with Begin or End.
type Cursor struct {
	size SizeFunc
	pos  []int
}

func newCursor(depth int, size SizeFunc) (*Cursor, error) {
	if depth < 1 {
		return nil, fmt.Errorf("multiindex.Cursor(depth=%d): %w", depth, ErrBadDepth)
	}
	if size == nil {
		return nil, ErrNilSize
	}

	return &Cursor{size: size, pos: make([]int, depth)}, nil
}

// Begin returns a cursor positioned at the first valid tuple.
// If the structure holds no tuple at all the cursor is already Done.
func Begin(depth int, size SizeFunc) (*Cursor, error) {
	c, err := newCursor(depth, size)
	if err != nil {
		return nil, err
	}
	c.settle()

	return c, nil
}

// End returns the sentinel cursor [size(0), 0, ..., 0].
func End(depth int, size SizeFunc) (*Cursor, error) {
	c, err := newCursor(depth, size)
	if err != nil {
		return nil, err
	}
	c.toEnd()

	return c, nil
}

// Depth returns the number of levels.
func (c *Cursor) Depth() int { return len(c.pos) }

// Pos returns a copy of the current level offsets, outer first.
func (c *Cursor) Pos() []int { return slices.Clone(c.pos) }

// Done reports whether the cursor sits on the end sentinel.
func (c *Cursor) Done() bool {
	return c.pos[0] >= c.size(0, nil)
}

// Equal reports whether both cursors hold identical offsets at every level.
func (c *Cursor) Equal(o *Cursor) bool {
	return o != nil && slices.Equal(c.pos, o.pos)
}

// Next advances to the following tuple. It returns false once the end
// sentinel is reached; calling Next on a Done cursor is a no-op.
func (c *Cursor) Next() bool {
	if c.Done() {
		return false
	}
	c.pos[len(c.pos)-1]++
	c.settle()

	return !c.Done()
}

// Reset rewinds the cursor to the first valid tuple.
func (c *Cursor) Reset() {
	clear(c.pos)
	c.settle()
}

// Clone returns an independent cursor at the same position.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{size: c.size, pos: slices.Clone(c.pos)}
}

// Count returns the number of tuples between Begin and End.
// The receiver's position is left untouched.
func (c *Cursor) Count() int {
	w := c.Clone()
	w.Reset()
	n := 0
	for !w.Done() {
		n++
		w.Next()
	}

	return n
}

// All yields every tuple from the first one in odometer order. Each yielded
// slice is a fresh copy and may be retained.
func (c *Cursor) All() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		w := c.Clone()
		w.Reset()
		for !w.Done() {
			if !yield(w.Pos()) {
				return
			}
			w.Next()
		}
	}
}

// settle moves pos forward to the first valid tuple at or after it.
//
// Implementation:
//   - Stage 1: walk levels outer to inner while each offset is in range.
//   - Stage 2: on overflow zero this and deeper levels, bump the parent and
//     re-check it; overflow of level 0 lands on the end sentinel.
func (c *Cursor) settle() {
	depth := len(c.pos)
	lvl := 0
	for lvl < depth {
		if c.pos[lvl] < c.size(lvl, c.pos[:lvl]) {
			lvl++
			continue
		}
		if lvl == 0 {
			c.toEnd()
			return
		}
		clear(c.pos[lvl:])
		c.pos[lvl-1]++
		lvl--
	}
}

func (c *Cursor) toEnd() {
	clear(c.pos)
	c.pos[0] = c.size(0, nil)
}
