// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxharm/harmonics"
)

// indexFlags selects one basis element from the command line.
type indexFlags struct {
	family string
	n      int
	l      int
	k      int
	m      int
}

func (f *indexFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.family, "family", harmonics.Scalar.String(), "Kernel family: scalar, radial, vector, vector-radial")
	fs.IntVar(&f.n, "n", 1, "Radial index (radial families)")
	fs.IntVar(&f.l, "l", 0, "Degree")
	fs.IntVar(&f.k, "k", 0, "Vector type -1, 0 or 1 (vector families)")
	fs.IntVar(&f.m, "m", 0, "Order")
}

// resolve parses the family and zeroes the fields it does not use.
func (f *indexFlags) resolve() (harmonics.Family, harmonics.Index, error) {
	fam, err := harmonics.ParseFamily(f.family)
	if err != nil {
		return 0, harmonics.Index{}, err
	}
	idx := harmonics.Index{L: f.l, M: f.m}
	if fam == harmonics.Radial || fam == harmonics.VectorRadial {
		idx.N = f.n
	}
	if fam == harmonics.Vector || fam == harmonics.VectorRadial {
		idx.K = f.k
	}

	return fam, idx, nil
}

// indexReport is the YAML form of harmonics.Index.
type indexReport struct {
	N int `yaml:"n,omitempty"`
	L int `yaml:"l"`
	K int `yaml:"k,omitempty"`
	M int `yaml:"m"`
}

func reportIndex(idx harmonics.Index) indexReport {
	return indexReport{N: idx.N, L: idx.L, K: idx.K, M: idx.M}
}

// parseTriple parses "z,y,x" into three floats.
func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected z,y,x, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		out[i] = v
	}

	return out, nil
}
