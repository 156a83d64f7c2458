// SPDX-License-Identifier: MIT

package cli

import (
	"math"
	"math/cmplx"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/voxharm/harmonics"
	"github.com/katalvlaran/voxharm/volume"
)

type kernelReport struct {
	Family  string      `yaml:"family"`
	Index   indexReport `yaml:"index"`
	Shape   [3]int      `yaml:"shape"`
	Spacing [3]float64  `yaml:"spacing"`
	NonZero int         `yaml:"nonzero"`
	Norm    float64     `yaml:"norm"`
	Profile []float64   `yaml:"profile"` // |K| from the centre voxel along +x
}

func newKernelCmd(a *app) *cobra.Command {
	var sel indexFlags
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Build one kernel and print its shape, norm and radial profile",
		Example: `  voxharm kernel --family scalar --l 2 --m 1 --radius 5 --fwhm 2
  voxharm kernel --family vector-radial --n 2 --l 1 --k 1 --m 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fam, idx, err := sel.resolve()
			if err != nil {
				return err
			}
			mag, err := kernelMagnitude(a.cfg, fam, idx)
			if err != nil {
				return err
			}
			a.log.Debug("kernel built", zap.Stringer("family", fam), zap.Stringer("index", idx))

			return writeYAML(cmd.OutOrStdout(), summarizeKernel(fam, idx, mag))
		},
	}
	sel.register(cmd)

	return cmd
}

// kernelMagnitude builds the kernel of idx and returns |K| per voxel
// (the Euclidean norm over spin slots for vector families).
func kernelMagnitude(cfg harmonics.Config, fam harmonics.Family, idx harmonics.Index) (*volume.Field[float64], error) {
	switch fam {
	case harmonics.Scalar, harmonics.Radial:
		var k *volume.Field[complex128]
		var err error
		if fam == harmonics.Scalar {
			k, err = harmonics.BuildScalarHarmonic(cfg.Radius, cfg.FWHM, idx.L, idx.M, false, cfg.Spacing)
		} else {
			k, err = harmonics.BuildRadialHarmonic(cfg.Radius, idx.N, idx.L, idx.M, cfg.Spacing)
		}
		if err != nil {
			return nil, err
		}
		out := volume.MustNew[float64](k.Shape(), volume.WithSpacing(k.Spacing()))
		for i, v := range k.Data() {
			out.Data()[i] = cmplx.Abs(v)
		}
		return out, nil
	default:
		var k *volume.Field[[3]complex128]
		var err error
		if fam == harmonics.Vector {
			k, err = harmonics.BuildVectorHarmonic(cfg.Radius, cfg.FWHM, idx.L, idx.K, idx.M, cfg.Spacing)
		} else {
			k, err = harmonics.BuildVectorRadialHarmonic(cfg.Radius, idx.N, idx.L, idx.K, idx.M, cfg.Spacing)
		}
		if err != nil {
			return nil, err
		}
		parts := volume.Components(k)
		out := volume.MustNew[float64](k.Shape(), volume.WithSpacing(k.Spacing()))
		for i := range out.Data() {
			var s float64
			for _, p := range parts {
				v := p.Data()[i]
				s += real(v)*real(v) + imag(v)*imag(v)
			}
			out.Data()[i] = math.Sqrt(s)
		}
		return out, nil
	}
}

func summarizeKernel(fam harmonics.Family, idx harmonics.Index, mag *volume.Field[float64]) kernelReport {
	rep := kernelReport{
		Family:  fam.String(),
		Index:   reportIndex(idx),
		Shape:   mag.Shape(),
		Spacing: mag.Spacing(),
		Norm:    volume.NormReal(mag),
	}
	for _, v := range mag.Data() {
		if v != 0 {
			rep.NonZero++
		}
	}
	h := mag.Shape().Half()
	for x := h[2]; x < mag.Shape()[2]; x++ {
		rep.Profile = append(rep.Profile, mag.AtUnchecked(h[0], h[1], x))
	}

	return rep
}
