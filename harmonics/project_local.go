// SPDX-License-Identifier: MIT

package harmonics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxharm/volume"
)

// ProjectAt correlates field with every kernel of a scalar or radial cache,
// with the kernel centre placed on the voxel containing pos.
//
// MAIN DESCRIPTION:
//   - Window start per axis = floor(pos) − kernelShape/2.
//   - c_idx = Σ_s field(start+s) · K_idx(s); no flip, no conjugation.
//   - Samples outside field contribute zero.
//
// pos is in voxel units along (z, y, x); field.Center() is a valid probe.
//
// Errors: ErrNilCache, ErrNilField, ErrInvalidPosition.
//
// Complexity: O(|layout| · V) for V kernel voxels.
func ProjectAt(cache *Cache[complex128], field *volume.Field[complex128], pos [3]float64) (*Coefficients, error) {
	const op = "ProjectAt"
	if cache == nil {
		return nil, opError(op, ErrNilCache)
	}
	if field == nil {
		return nil, opError(op, ErrNilField)
	}
	if err := validatePos(op, pos); err != nil {
		return nil, err
	}

	fd := field.Data()
	vals := make([]complex128, cache.Len())
	for off, k := range cache.kernels {
		kd := k.Data()
		var acc complex128
		overlap(field.Shape(), k.Shape(), windowStart(pos, k.Shape()), func(fi, ki int) {
			acc += fd[fi] * kd[ki]
		})
		vals[off] = acc
	}

	return &Coefficients{layout: cache.layout, values: vals}, nil
}

// ProjectRealAt is ProjectAt for a real-valued field.
func ProjectRealAt(cache *Cache[complex128], field *volume.Field[float64], pos [3]float64) (*Coefficients, error) {
	if field == nil {
		return nil, opError("ProjectRealAt", ErrNilField)
	}

	return ProjectAt(cache, volume.Complex(field), pos)
}

// ProjectAtCenter is ProjectAt at field.Center().
func ProjectAtCenter(cache *Cache[complex128], field *volume.Field[complex128]) (*Coefficients, error) {
	if field == nil {
		return nil, opError("ProjectAtCenter", ErrNilField)
	}

	return ProjectAt(cache, field, field.Center())
}

// ProjectVectorAt projects a real Cartesian vector field onto a vector or
// vector-radial cache. The field is converted with ToSpherical and each spin
// component is correlated with the matching kernel slot; the three sums are
// added into one coefficient per index.
//
// Errors: as ProjectAt.
func ProjectVectorAt(cache *Cache[[3]complex128], field *volume.Field[[3]float64], pos [3]float64) (*Coefficients, error) {
	if field == nil {
		return nil, opError("ProjectVectorAt", ErrNilField)
	}

	return ProjectSphericalAt(cache, ToSpherical(field), pos)
}

// ProjectVectorAtCenter is ProjectVectorAt at field.Center().
func ProjectVectorAtCenter(cache *Cache[[3]complex128], field *volume.Field[[3]float64]) (*Coefficients, error) {
	if field == nil {
		return nil, opError("ProjectVectorAtCenter", ErrNilField)
	}

	return ProjectVectorAt(cache, field, field.Center())
}

// ProjectSphericalAt is ProjectVectorAt for input already given as spin
// components: c_idx = Σ_σ Σ_s v_σ(start+s) · K_idx,σ(s).
func ProjectSphericalAt(cache *Cache[[3]complex128], field *volume.Field[[3]complex128], pos [3]float64) (*Coefficients, error) {
	const op = "ProjectSphericalAt"
	if cache == nil {
		return nil, opError(op, ErrNilCache)
	}
	if field == nil {
		return nil, opError(op, ErrNilField)
	}
	if err := validatePos(op, pos); err != nil {
		return nil, err
	}

	fd := field.Data()
	vals := make([]complex128, cache.Len())
	for off, k := range cache.kernels {
		kd := k.Data()
		var acc complex128
		overlap(field.Shape(), k.Shape(), windowStart(pos, k.Shape()), func(fi, ki int) {
			v, w := fd[fi], kd[ki]
			acc += v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
		})
		vals[off] = acc
	}

	return &Coefficients{layout: cache.layout, values: vals}, nil
}

func validatePos(op string, pos [3]float64) error {
	for _, p := range pos {
		if !finite(p) {
			return fmt.Errorf("%s(pos=%v): %w", op, pos, ErrInvalidPosition)
		}
	}

	return nil
}

// windowStart returns floor(pos) − shape/2 per axis.
func windowStart(pos [3]float64, ks volume.Shape) [3]int {
	h := ks.Half()
	return [3]int{
		int(math.Floor(pos[0])) - h[0],
		int(math.Floor(pos[1])) - h[1],
		int(math.Floor(pos[2])) - h[2],
	}
}

// overlap calls fn(fieldOffset, kernelOffset) for every kernel voxel s whose
// window position start+s lies inside a field of shape fs.
func overlap(fs, ks volume.Shape, start [3]int, fn func(fi, ki int)) {
	var lo, hi [3]int
	for a := range 3 {
		lo[a] = max(0, -start[a])
		hi[a] = min(ks[a], fs[a]-start[a])
		if lo[a] >= hi[a] {
			return
		}
	}
	for sz := lo[0]; sz < hi[0]; sz++ {
		fz := start[0] + sz
		for sy := lo[1]; sy < hi[1]; sy++ {
			fy := start[1] + sy
			fi := (fz*fs[1]+fy)*fs[2] + start[2] + lo[2]
			ki := (sz*ks[1]+sy)*ks[2] + lo[2]
			for sx := lo[2]; sx < hi[2]; sx++ {
				fn(fi, ki)
				fi++
				ki++
			}
		}
	}
}
