// SPDX-License-Identifier: MIT
// Package: volume
//
// Purpose:
//   - Element-wise helpers over complex and real fields used by the harmonic
//     kernels, the convolution primitive and reconstruction.
//   - Every helper walks the flat buffer once in a fixed order.
//
// AI-Hints:
//   - Helpers returning a new field preserve the spacing of their input.
//   - AddTo / AddScaledTo mutate dst in place; shapes must match exactly.

package volume

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

func opErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// SameShape returns ErrShapeMismatch (wrapped with tag) when a and b differ in shape.
func SameShape(tag string, a, b Shape) error {
	if a != b {
		return opErrorf(tag, fmt.Errorf("%v vs %v: %w", a, b, ErrShapeMismatch))
	}

	return nil
}

// Real extracts the real part of a complex field.
func Real(f *Field[complex128]) *Field[float64] {
	return &Field[float64]{shape: f.shape, spacing: f.spacing, data: cmplxs.Real(make([]float64, len(f.data)), f.data)}
}

// Imag extracts the imaginary part of a complex field.
func Imag(f *Field[complex128]) *Field[float64] {
	return &Field[float64]{shape: f.shape, spacing: f.spacing, data: cmplxs.Imag(make([]float64, len(f.data)), f.data)}
}

// Complex promotes a real field to a complex one (imaginary part zero).
func Complex(f *Field[float64]) *Field[complex128] {
	data := cmplxs.Complex(make([]complex128, len(f.data)), f.data, make([]float64, len(f.data)))

	return &Field[complex128]{shape: f.shape, spacing: f.spacing, data: data}
}

// Conj returns the element-wise complex conjugate.
func Conj(f *Field[complex128]) *Field[complex128] {
	out := f.Clone()
	for i, v := range out.data {
		out.data[i] = cmplx.Conj(v)
	}

	return out
}

// Scale multiplies every sample by alpha in place.
func Scale(f *Field[complex128], alpha complex128) {
	cmplxs.Scale(alpha, f.data)
}

// AddTo accumulates src into dst (dst += src).
// Errors: ErrShapeMismatch.
func AddTo(dst, src *Field[complex128]) error {
	if err := SameShape("AddTo", dst.shape, src.shape); err != nil {
		return err
	}
	cmplxs.Add(dst.data, src.data)

	return nil
}

// AddScaledTo accumulates alpha*src into dst.
// Errors: ErrShapeMismatch.
func AddScaledTo(dst *Field[complex128], alpha complex128, src *Field[complex128]) error {
	if err := SameShape("AddScaledTo", dst.shape, src.shape); err != nil {
		return err
	}
	cmplxs.AddScaled(dst.data, alpha, src.data)

	return nil
}

// Sum returns the sum of all complex samples.
func Sum(f *Field[complex128]) complex128 {
	return cmplxs.Sum(f.data)
}

// SumReal returns the sum of all real samples.
func SumReal(f *Field[float64]) float64 {
	return floats.Sum(f.data)
}

// Norm returns the L2 norm sqrt(Σ|v|²) of a complex field.
func Norm(f *Field[complex128]) float64 {
	return cmplxs.Norm(f.data, 2)
}

// NormReal returns the L2 norm of a real field.
func NormReal(f *Field[float64]) float64 {
	return floats.Norm(f.data, 2)
}

// Dot returns Σ a·conj(b) over two complex fields of equal shape.
// Errors: ErrShapeMismatch.
func Dot(a, b *Field[complex128]) (complex128, error) {
	if err := SameShape("Dot", a.shape, b.shape); err != nil {
		return 0, err
	}
	// cmplxs.Dot conjugates its first argument.
	return cmplxs.Dot(b.data, a.data), nil
}

// DotReal returns Σ a·b over two real fields of equal shape.
// Errors: ErrShapeMismatch.
func DotReal(a, b *Field[float64]) (float64, error) {
	if err := SameShape("DotReal", a.shape, b.shape); err != nil {
		return 0, err
	}

	return floats.Dot(a.data, b.data), nil
}

// Components splits a complex 3-vector field into three complex fields.
func Components(f *Field[[3]complex128]) [3]*Field[complex128] {
	var out [3]*Field[complex128]
	for c := range out {
		out[c] = &Field[complex128]{shape: f.shape, spacing: f.spacing, data: make([]complex128, len(f.data))}
	}
	for i, v := range f.data {
		out[0].data[i] = v[0]
		out[1].data[i] = v[1]
		out[2].data[i] = v[2]
	}

	return out
}

// HasNaN reports whether any real or imaginary part is NaN.
func HasNaN(f *Field[complex128]) bool {
	return cmplxs.HasNaN(f.data)
}

// Component extracts slot c (0..2) of a complex 3-vector field.
// Panics when c is outside [0, 2].
func Component(f *Field[[3]complex128], c int) *Field[complex128] {
	if c < 0 || c > 2 {
		panic("volume: Component: slot must be 0, 1 or 2")
	}
	out := &Field[complex128]{shape: f.shape, spacing: f.spacing, data: make([]complex128, len(f.data))}
	for i, v := range f.data {
		out.data[i] = v[c]
	}

	return out
}
