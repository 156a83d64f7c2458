// SPDX-License-Identifier: MIT

// Package voxharm is a toolkit for rotation-aware 3D volume analysis with
// discretized spherical and vector spherical harmonics.
//
// 🚀 What is in the box?
//
//	• Kernels: Y_l^m on Gaussian shells, volumetric Bessel-radial kernels and
//	  Clebsch–Gordan coupled vector kernels, for arbitrary voxel spacing
//	• Caches: one kernel per basis index for a whole band, built in parallel
//	• Projection: coefficients at a probe voxel or densely over a volume (FFT)
//	• Reconstruction: scalar, radial and vector fields from coefficients
//
// Under the hood the work is split into small packages:
//
//	volume/     — dense 3D fields (row-major z→y→x) + element-wise helpers
//	specfn/     — factorials, associated Legendre, Clebsch–Gordan, Bessel zeros
//	multiindex/ — odometer cursor over ragged nested index ranges
//	fftconv/    — batched 3D FFT correlation of one volume with many kernels
//	harmonics/  — kernels, caches, projection and reconstruction
//	cmd/voxharm — CLI: kernel inspection, projection of raw volumes, round trips
//
// Quick example:
//
//	cfg := harmonics.NewConfig(harmonics.WithRadius(4), harmonics.WithBand(2))
//	cache, _ := harmonics.BuildScalarCache(ctx, cfg)
//	coeffs, _ := harmonics.ProjectRealAt(cache, field, field.Center())
//	recon, _ := harmonics.ReconstructScalar(cache, coeffs)
//
//	go get github.com/katalvlaran/voxharm
package voxharm
