// SPDX-License-Identifier: MIT

package cli

import (
	"cmp"
	"fmt"
	"math/cmplx"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/voxharm/harmonics"
	"github.com/katalvlaran/voxharm/volume"
)

type coefficientReport struct {
	Index indexReport `yaml:"index"`
	Re    float64     `yaml:"re"`
	Im    float64     `yaml:"im"`
	Abs   float64     `yaml:"abs"`
}

type volumeReport struct {
	Index indexReport `yaml:"index"`
	Peak  float64     `yaml:"peak"` // max |c| over the volume
	At    [3]int      `yaml:"at"`   // voxel of the peak
	File  string      `yaml:"file,omitempty"`
}

type projectReport struct {
	Family       string              `yaml:"family"`
	Band         int                 `yaml:"band"`
	Shape        [3]int              `yaml:"shape"`
	Position     *[3]float64         `yaml:"position,omitempty"`
	Dominant     *indexReport        `yaml:"dominant,omitempty"`
	Coefficients []coefficientReport `yaml:"coefficients,omitempty"`
	Volumes      []volumeReport      `yaml:"volumes,omitempty"`
}

type projectFlags struct {
	sel    indexFlags
	input  string
	shape  string
	pos    string
	dense  bool
	outDir string
	top    int
}

func newProjectCmd(a *app) *cobra.Command {
	var pf projectFlags
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a raw volume (or a synthetic kernel) onto a kernel cache",
		Long: `Projects a volume onto every kernel of the chosen family up to --band.

Without --input the volume is the real part of the kernel selected by
--n/--l/--k/--m (vector families: its Cartesian form). With --dense every
voxel is projected via FFT; otherwise a single probe at --pos (default: the
volume centre) is reported.`,
		Example: `  voxharm project --input brain.raw --shape 64,64,64 --pos 32,30,31 --band 3
  voxharm project --family radial --l 1 --m 0 --dense --out-dir coeffs/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runProject(cmd, &pf)
		},
	}
	pf.sel.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&pf.input, "input", "i", "", "Raw little-endian float64 volume")
	fs.StringVar(&pf.shape, "shape", "", "Input shape z,y,x (required with --input)")
	fs.StringVar(&pf.pos, "pos", "", "Probe position z,y,x in voxels (default: centre)")
	fs.BoolVar(&pf.dense, "dense", false, "Project every voxel")
	fs.StringVar(&pf.outDir, "out-dir", "", "With --dense, write each coefficient volume as raw complex data")
	fs.IntVar(&pf.top, "top", 0, "Report only the N largest coefficients (0 = all)")
	cmd.MarkFlagsRequiredTogether("input", "shape")

	return cmd
}

func (a *app) runProject(cmd *cobra.Command, pf *projectFlags) error {
	fam, idx, err := pf.sel.resolve()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	rep := projectReport{Family: fam.String(), Band: a.cfg.Band}

	var coeffs *harmonics.Coefficients
	var dense *harmonics.CoefficientVolumes
	switch fam {
	case harmonics.Scalar, harmonics.Radial:
		cache, err := buildComplexCache(ctx, a.cfg, fam)
		if err != nil {
			return err
		}
		field, err := scalarInput(pf, cache, idx)
		if err != nil {
			return err
		}
		rep.Shape = field.Shape()
		if pf.dense {
			dense, err = harmonics.ProjectVolume(ctx, cache, volume.Complex(field))
		} else {
			pos, perr := probe(pf.pos, field.Center())
			if perr != nil {
				return perr
			}
			rep.Position = &pos
			coeffs, err = harmonics.ProjectRealAt(cache, field, pos)
		}
		if err != nil {
			return err
		}
	default:
		cache, err := buildVectorCache(ctx, a.cfg, fam)
		if err != nil {
			return err
		}
		field, err := vectorInput(pf, cache, idx)
		if err != nil {
			return err
		}
		rep.Shape = field.Shape()
		if pf.dense {
			dense, err = harmonics.ProjectVectorVolume(ctx, cache, field)
		} else {
			pos, perr := probe(pf.pos, field.Center())
			if perr != nil {
				return perr
			}
			rep.Position = &pos
			coeffs, err = harmonics.ProjectVectorAt(cache, field, pos)
		}
		if err != nil {
			return err
		}
	}

	if dense != nil {
		rep.Volumes, err = summarizeVolumes(dense, pf.outDir)
		if err != nil {
			return err
		}
		a.log.Info("dense projection written", zap.Int("volumes", len(rep.Volumes)), zap.String("out_dir", pf.outDir))
	} else {
		dom, _ := coeffs.Dominant()
		d := reportIndex(dom)
		rep.Dominant = &d
		rep.Coefficients = summarizeCoefficients(coeffs, pf.top)
	}

	return writeYAML(cmd.OutOrStdout(), rep)
}

func probe(flag string, centre [3]float64) ([3]float64, error) {
	if flag == "" {
		return centre, nil
	}

	return parseTriple(flag)
}

func parseShape(s string) (volume.Shape, error) {
	t, err := parseTriple(s)
	if err != nil {
		return volume.Shape{}, err
	}
	shape := volume.Shape{int(t[0]), int(t[1]), int(t[2])}
	for i := range 3 {
		if float64(shape[i]) != t[i] {
			return volume.Shape{}, fmt.Errorf("shape %q: %w", s, volume.ErrBadShape)
		}
	}
	if !shape.Valid() {
		return volume.Shape{}, fmt.Errorf("shape %q: %w", s, volume.ErrBadShape)
	}

	return shape, nil
}

func scalarInput(pf *projectFlags, cache *harmonics.Cache[complex128], idx harmonics.Index) (*volume.Field[float64], error) {
	if pf.input == "" {
		k, ok := cache.Kernel(idx)
		if !ok {
			return nil, fmt.Errorf("index %v is not part of the %v layout of band %d", idx, cache.Layout().Family(), cache.Layout().Band())
		}
		return volume.Real(k), nil
	}
	shape, err := parseShape(pf.shape)
	if err != nil {
		return nil, err
	}
	data, err := readRaw(pf.input, shape.Len())
	if err != nil {
		return nil, err
	}

	return volume.FromData(shape, data, volume.WithSpacing(cache.Config().Spacing))
}

func vectorInput(pf *projectFlags, cache *harmonics.Cache[[3]complex128], idx harmonics.Index) (*volume.Field[[3]float64], error) {
	if pf.input == "" {
		k, ok := cache.Kernel(idx)
		if !ok {
			return nil, fmt.Errorf("index %v is not part of the %v layout of band %d", idx, cache.Layout().Family(), cache.Layout().Band())
		}
		return harmonics.FromSpherical(k), nil
	}
	shape, err := parseShape(pf.shape)
	if err != nil {
		return nil, err
	}
	data, err := readRaw(pf.input, 3*shape.Len())
	if err != nil {
		return nil, err
	}
	field := volume.MustNew[[3]float64](shape, volume.WithSpacing(cache.Config().Spacing))
	for i := range field.Data() {
		field.Data()[i] = [3]float64{data[3*i], data[3*i+1], data[3*i+2]}
	}

	return field, nil
}

func summarizeCoefficients(c *harmonics.Coefficients, top int) []coefficientReport {
	out := make([]coefficientReport, 0, c.Len())
	for idx, v := range c.All() {
		out = append(out, coefficientReport{Index: reportIndex(idx), Re: real(v), Im: imag(v), Abs: cmplx.Abs(v)})
	}
	slices.SortStableFunc(out, func(x, y coefficientReport) int { return cmp.Compare(y.Abs, x.Abs) })
	if top > 0 && top < len(out) {
		out = out[:top]
	}

	return out
}

func summarizeVolumes(v *harmonics.CoefficientVolumes, outDir string) ([]volumeReport, error) {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, err
		}
	}
	out := make([]volumeReport, 0, v.Len())
	for idx, f := range v.All() {
		rep := volumeReport{Index: reportIndex(idx)}
		f.Do(func(z, y, x int, c complex128) bool {
			if a := cmplx.Abs(c); a > rep.Peak {
				rep.Peak, rep.At = a, [3]int{z, y, x}
			}
			return true
		})
		if outDir != "" {
			rep.File = filepath.Join(outDir, fmt.Sprintf("n%d_l%d_k%d_m%d.raw", idx.N, idx.L, idx.K, idx.M))
			buf := make([]float64, 0, 2*f.Len())
			for _, c := range f.Data() {
				buf = append(buf, real(c), imag(c))
			}
			if err := writeRaw(rep.File, buf); err != nil {
				return nil, err
			}
		}
		out = append(out, rep)
	}

	return out, nil
}
