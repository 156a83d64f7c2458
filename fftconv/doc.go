// SPDX-License-Identifier: MIT

// Package fftconv implements the batched multi-kernel correlation used for
// dense harmonic projection.
//
// One complex input volume is correlated against many small kernels. The
// input spectrum is computed once per padded shape and shared read-only;
// every kernel is then transformed, multiplied and inverted on its own
// worker, which owns its gonum CmplxFFT plans (plans are not goroutine-safe).
//
// Alignment:
//
//	out(p) = Σ_s in(p − h + s) · K(s),   h = kernel shape / 2 (integer)
//
// Samples of in outside the volume count as zero. Output has the input's
// shape and spacing, so out(p) equals a direct windowed correlation with the
// kernel centre placed on voxel p.
//
// Padding:
//   - Each axis is padded to the smallest 2·3·5-smooth length ≥ N + K − 1,
//     which rules out circular wrap-around.
//   - The kernel is stored flipped and wrapped, G(u) = K(h − u) at u mod P,
//     so the circular convolution reads out(p) directly at index p.
//
// Complexity (per kernel, P = padded voxel count):
//   - Time O(P log P), Space O(P) per worker.
package fftconv
