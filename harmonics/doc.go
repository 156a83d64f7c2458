// SPDX-License-Identifier: MIT

// Package harmonics builds discretized spherical and vector spherical
// harmonic kernels on 3D voxel grids, caches them for a whole band, projects
// fields onto them (at a probe or densely over a volume) and reconstructs
// fields from the resulting coefficients.
//
// Families and index schemes (offsets enumerate in odometer order, m last):
//
//	Scalar        (l ∈ [0,band], m ∈ [−l,l])
//	Radial        (n ∈ [1,band], l ∈ [0,band], m ∈ [0,l] in real-data mode, else [−l,l])
//	Vector        (l ∈ [0,band], k ∈ {−1,0,1}, m ∈ [−l,l])
//	VectorRadial  (n ∈ [1,band], l, k, m as Vector)
//
// Kernels:
//   - Scalar: Y_l^m on a Gaussian-weighted shell (BuildScalarHarmonic).
//   - Radial: angular kernel times J_l(k·r)/√N with k = x_ln/radius (BuildRadialHarmonic).
//   - Vector: three spin components σ = +1, 0, −1 (slots 0, 1, 2), each a
//     Clebsch–Gordan weighted scalar kernel of order σ − m (BuildVectorHarmonic).
//
// Projection is a plain correlation (no flip, no conjugation) of the field
// with each kernel over a window whose start is floor(pos) − shape/2 per axis;
// samples outside the field count as zero. Dense projection gives the same
// value at every voxel via FFT (package fftconv).
//
// Reconstruction accumulates Re(K(x)·conj(c)) over all indices. Vector
// reconstruction maps spin components to Cartesian (X, Y, Z) with
// X = Re(v1), Y = −√2·Re(v0), Z = √2·Im(v0).
//
// Configuration follows the functional-options pattern (NewConfig + WithX);
// diagnostics go to an injected *zap.Logger (no-op by default).
//
// Concurrency:
//   - Cache builds and dense projection run data-parallel internally
//     (errgroup, bounded by Config.Workers) and honour context cancellation.
//   - Caches and coefficient sets are read-only after return and safe for
//     concurrent readers.
package harmonics
