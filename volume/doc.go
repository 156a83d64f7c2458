// SPDX-License-Identifier: MIT

// Package volume provides the dense 3D voxel container shared by the
// harmonic kernels, the FFT convolution primitive and the projection
// operators.
//
// A Field stores its samples in one flat row-major buffer ordered
// (z, y, x), so offset = (z*Y + y)*X + x. Every field carries an
// anisotropic voxel spacing (default isotropic unit spacing) which the
// kernel generators use to convert voxel offsets into physical units.
//
// Supported sample types:
//
//	float64        real scalar field
//	complex128     complex scalar field (kernels, coefficient volumes)
//	[3]float64     real 3-vector field
//	[3]complex128  complex 3-vector field (vector harmonic kernels)
//
// Public accessors (At/Set) return sentinel errors instead of panicking;
// hot loops use Index/Data directly.
//
// Complexity quicksheet:
//   - New: O(N) zero-init; At/Set: O(1); Clone/Fill/Reshape: O(N).
package volume
