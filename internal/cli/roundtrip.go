// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/voxharm/harmonics"
	"github.com/katalvlaran/voxharm/volume"
)

type roundtripReport struct {
	Family   string      `yaml:"family"`
	Target   indexReport `yaml:"target"`
	Dominant indexReport `yaml:"dominant"`
	// Leak is the largest |c| of an unrelated index relative to |c_target|.
	Leak   float64 `yaml:"leak"`
	Cosine float64 `yaml:"cosine"` // similarity of reconstruction and input
}

func newRoundtripCmd(a *app) *cobra.Command {
	var sel indexFlags
	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Project a pure kernel at its centre and reconstruct it",
		Long: `Builds the cache of the chosen family, feeds the selected kernel back as
input (its real part for scalar families, its conjugate spin form for vector
families), projects at the centre and reconstructs. Reports the dominant
index, the leakage into other indices and the cosine similarity between the
reconstruction and the input.`,
		Example: `  voxharm roundtrip --family scalar --l 2 --m 1 --radius 5 --fwhm 2 --band 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fam, idx, err := sel.resolve()
			if err != nil {
				return err
			}
			var rep roundtripReport
			switch fam {
			case harmonics.Scalar, harmonics.Radial:
				rep, err = a.scalarRoundtrip(cmd, fam, idx)
			default:
				rep, err = a.vectorRoundtrip(cmd, fam, idx)
			}
			if err != nil {
				return err
			}
			a.log.Info("round trip done", zap.Stringer("target", idx), zap.Float64("cosine", rep.Cosine))

			return writeYAML(cmd.OutOrStdout(), rep)
		},
	}
	sel.register(cmd)

	return cmd
}

func (a *app) scalarRoundtrip(cmd *cobra.Command, fam harmonics.Family, idx harmonics.Index) (roundtripReport, error) {
	cache, err := buildComplexCache(cmd.Context(), a.cfg, fam)
	if err != nil {
		return roundtripReport{}, err
	}
	k, ok := cache.Kernel(idx)
	if !ok {
		return roundtripReport{}, fmt.Errorf("index %v is not part of the %v layout", idx, fam)
	}
	input := volume.Real(k)
	coeffs, err := harmonics.ProjectRealAt(cache, input, input.Center())
	if err != nil {
		return roundtripReport{}, err
	}
	var recon *volume.Field[float64]
	if fam == harmonics.Scalar {
		recon, err = harmonics.ReconstructScalar(cache, coeffs)
	} else {
		recon, err = harmonics.ReconstructRadial(cache, coeffs)
	}
	if err != nil {
		return roundtripReport{}, err
	}
	dot, err := volume.DotReal(recon, input)
	if err != nil {
		return roundtripReport{}, err
	}

	// the real part of K_m also excites its conjugate partner −m
	partner := idx
	partner.M = -idx.M
	rep := leakReport(fam, idx, coeffs, partner)
	rep.Cosine = dot / (volume.NormReal(recon) * volume.NormReal(input))

	return rep, nil
}

func (a *app) vectorRoundtrip(cmd *cobra.Command, fam harmonics.Family, idx harmonics.Index) (roundtripReport, error) {
	cache, err := buildVectorCache(cmd.Context(), a.cfg, fam)
	if err != nil {
		return roundtripReport{}, err
	}
	k, ok := cache.Kernel(idx)
	if !ok {
		return roundtripReport{}, fmt.Errorf("index %v is not part of the %v layout", idx, fam)
	}
	// reconstruction returns the conjugate of the projected spin input
	input := k.Clone()
	for i, v := range input.Data() {
		input.Data()[i] = [3]complex128{cmplx.Conj(v[0]), cmplx.Conj(v[1]), cmplx.Conj(v[2])}
	}
	coeffs, err := harmonics.ProjectSphericalAt(cache, input, input.Center())
	if err != nil {
		return roundtripReport{}, err
	}
	spin, err := harmonics.ReconstructSpherical(cache, coeffs)
	if err != nil {
		return roundtripReport{}, err
	}

	var dot complex128
	var nr, nk float64
	parts, ref := volume.Components(spin), volume.Components(k)
	for c := range 3 {
		d, err := volume.Dot(parts[c], ref[c])
		if err != nil {
			return roundtripReport{}, err
		}
		dot += d
		nr += math.Pow(volume.Norm(parts[c]), 2)
		nk += math.Pow(volume.Norm(ref[c]), 2)
	}
	rep := leakReport(fam, idx, coeffs, idx)
	rep.Cosine = cmplx.Abs(dot) / math.Sqrt(nr*nk)

	return rep, nil
}

func leakReport(fam harmonics.Family, target harmonics.Index, c *harmonics.Coefficients, partner harmonics.Index) roundtripReport {
	dom, _ := c.Dominant()
	ref, _ := c.At(target)
	var worst float64
	for idx, v := range c.All() {
		if idx != target && idx != partner {
			worst = max(worst, cmplx.Abs(v))
		}
	}
	rep := roundtripReport{Family: fam.String(), Target: reportIndex(target), Dominant: reportIndex(dom)}
	if r := cmplx.Abs(ref); r > 0 {
		rep.Leak = worst / r
	}

	return rep
}
