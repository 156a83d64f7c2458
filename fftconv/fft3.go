// SPDX-License-Identifier: MIT

package fftconv

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/katalvlaran/voxharm/volume"
)

// plan3 transforms flat z→y→x complex buffers of one padded shape along
// every axis in turn (x lines, then y, then z). Not safe for concurrent use.
type plan3 struct {
	shape volume.Shape
	fft   [3]*fourier.CmplxFFT
	line  []complex128
}

func newPlan3(shape volume.Shape) *plan3 {
	p := &plan3{shape: shape}
	longest := 0
	for a := range 3 {
		p.fft[a] = fourier.NewCmplxFFT(shape[a])
		longest = max(longest, shape[a])
	}
	p.line = make([]complex128, longest)

	return p
}

// forward replaces buf by its unnormalised 3D DFT.
func (p *plan3) forward(buf []complex128) { p.apply(buf, true) }

// inverse replaces buf by its inverse 3D DFT, including the 1/N scaling.
func (p *plan3) inverse(buf []complex128) {
	p.apply(buf, false)
	scale := complex(1/float64(p.shape.Len()), 0)
	for i := range buf {
		buf[i] *= scale
	}
}

func (p *plan3) apply(buf []complex128, fwd bool) {
	total := p.shape.Len()
	stride := 1
	for axis := 2; axis >= 0; axis-- {
		n := p.shape[axis]
		if n > 1 {
			line := p.line[:n]
			t := p.fft[axis]
			// Lines along axis start at o+i for every block o of n·stride samples.
			block := n * stride
			for o := 0; o < total; o += block {
				for i := 0; i < stride; i++ {
					base := o + i
					for j := range line {
						line[j] = buf[base+j*stride]
					}
					if fwd {
						t.Coefficients(line, line)
					} else {
						t.Sequence(line, line)
					}
					for j := range line {
						buf[base+j*stride] = line[j]
					}
				}
			}
		}
		stride *= n
	}
}

// goodSize returns the smallest n' ≥ n whose only prime factors are 2, 3 and 5.
func goodSize(n int) int {
	if n <= 1 {
		return 1
	}
	for m := n; ; m++ {
		r := m
		for _, f := range [3]int{2, 3, 5} {
			for r%f == 0 {
				r /= f
			}
		}
		if r == 1 {
			return m
		}
	}
}
