// SPDX-License-Identifier: MIT

package harmonics

import (
	"fmt"
	"iter"
	"slices"

	"github.com/katalvlaran/voxharm/multiindex"
)

// Family selects one of the four kernel index schemes.
type Family uint8

const (
	Scalar Family = iota
	Radial
	Vector
	VectorRadial
)

var familyNames = [...]string{"scalar", "radial", "vector", "vector-radial"}

// String returns the lower-case family name used by the CLI.
func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}

	return fmt.Sprintf("Family(%d)", uint8(f))
}

// ParseFamily is the inverse of Family.String.
func ParseFamily(s string) (Family, error) {
	for i, name := range familyNames {
		if name == s {
			return Family(i), nil
		}
	}

	return 0, fmt.Errorf("ParseFamily(%q): %w", s, ErrFamilyMismatch)
}

// radial reports whether the family carries a radial index n.
func (f Family) radial() bool { return f == Radial || f == VectorRadial }

// vector reports whether the family carries a vector type k.
func (f Family) vector() bool { return f == Vector || f == VectorRadial }

func (f Family) depth() int {
	d := 2
	if f.radial() {
		d++
	}
	if f.vector() {
		d++
	}

	return d
}

// Index addresses one basis element. Fields a family does not use are zero.
type Index struct {
	N int // radial index, ≥ 1 for radial families
	L int // degree
	K int // vector type, −1..1 for vector families
	M int // order
}

func (i Index) String() string {
	return fmt.Sprintf("(n=%d l=%d k=%d m=%d)", i.N, i.L, i.K, i.M)
}

// Layout enumerates every index of a family for a band in canonical
// odometer order and maps indices back to flat offsets.
// A Layout is immutable.
type Layout struct {
	family   Family
	band     int
	realData bool
	keys     []Index
	offsets  map[Index]int
}

// NewLayout builds the layout of family up to band. realData only affects
// the Radial family (m ∈ [0, l]).
//
// Implementation:
//   - Stage 1: validate band (radial families need band ≥ 1).
//   - Stage 2: walk a multiindex cursor over the family's size function and
//     record each decoded Index with its ordinal.
//
// Errors: ErrInvalidBand, ErrFamilyMismatch (unknown family).
func NewLayout(family Family, band int, realData bool) (*Layout, error) {
	if int(family) >= len(familyNames) {
		return nil, fmt.Errorf("NewLayout(%v): %w", family, ErrFamilyMismatch)
	}
	if band < 0 || (family.radial() && band < 1) {
		return nil, fmt.Errorf("NewLayout(%v, band=%d): %w", family, band, ErrInvalidBand)
	}
	lay := &Layout{
		family:   family,
		band:     band,
		realData: realData && family == Radial,
		offsets:  make(map[Index]int),
	}
	cur, err := lay.Cursor()
	if err != nil {
		return nil, err
	}
	for pos := range cur.All() {
		idx := lay.decode(pos)
		lay.offsets[idx] = len(lay.keys)
		lay.keys = append(lay.keys, idx)
	}

	return lay, nil
}

// Family returns the index scheme.
func (l *Layout) Family() Family { return l.family }

// Band returns the maximum degree.
func (l *Layout) Band() int { return l.band }

// RealData reports whether negative radial orders are omitted.
func (l *Layout) RealData() bool { return l.realData }

// Len returns the number of indices.
func (l *Layout) Len() int { return len(l.keys) }

// Keys returns a copy of the indices in canonical order.
func (l *Layout) Keys() []Index { return slices.Clone(l.keys) }

// Key returns the index stored at offset off. Panics when off is out of range.
func (l *Layout) Key(off int) Index { return l.keys[off] }

// Offset returns the flat offset of idx, or false when idx is not part of the layout.
func (l *Layout) Offset(idx Index) (int, bool) {
	off, ok := l.offsets[idx]
	return off, ok
}

// All yields (offset, index) pairs in canonical order.
func (l *Layout) All() iter.Seq2[int, Index] {
	return func(yield func(int, Index) bool) {
		for off, idx := range l.keys {
			if !yield(off, idx) {
				return
			}
		}
	}
}

// Equal reports whether both layouts describe the same index set.
func (l *Layout) Equal(o *Layout) bool {
	if l == nil || o == nil {
		return l == o
	}

	return l.family == o.family && l.band == o.band && l.realData == o.realData
}

// Cursor returns a multiindex cursor positioned at the first index.
// Decode its positions with IndexAt.
func (l *Layout) Cursor() (*multiindex.Cursor, error) {
	return multiindex.Begin(l.family.depth(), l.sizeFunc())
}

// IndexAt decodes a cursor position into an Index.
func (l *Layout) IndexAt(pos []int) Index { return l.decode(pos) }

// sizeFunc maps every level of the family onto its extent given the outer
// offsets. Offsets are 0-based: n = off+1, k = off−1, m = off−l (or off in
// real-data mode).
func (l *Layout) sizeFunc() multiindex.SizeFunc {
	band := l.band
	levels := l.levels()

	return func(level int, outer []int) int {
		switch levels[level] {
		case levelN:
			return band
		case levelL:
			return band + 1
		case levelK:
			return 3
		default:
			deg := outer[slices.Index(levels, levelL)]
			if l.realData {
				return deg + 1
			}
			return 2*deg + 1
		}
	}
}

type tier uint8

const (
	levelN tier = iota
	levelL
	levelK
	levelM
)

func (l *Layout) levels() []tier {
	out := make([]tier, 0, 4)
	if l.family.radial() {
		out = append(out, levelN)
	}
	out = append(out, levelL)
	if l.family.vector() {
		out = append(out, levelK)
	}

	return append(out, levelM)
}

func (l *Layout) decode(pos []int) Index {
	var idx Index
	for i, lv := range l.levels() {
		switch lv {
		case levelN:
			idx.N = pos[i] + 1
		case levelL:
			idx.L = pos[i]
		case levelK:
			idx.K = pos[i] - 1
		case levelM:
			idx.M = pos[i]
			if !l.realData {
				idx.M -= idx.L
			}
		}
	}

	return idx
}
