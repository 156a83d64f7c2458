// SPDX-License-Identifier: MIT
package cli

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxharm/harmonics"
	"github.com/katalvlaran/voxharm/volume"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run executes the command tree and decodes the YAML report into out.
func run(t *testing.T, out any, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--config", ""))
	if err := root.ExecuteContext(context.Background()); err != nil {
		return err
	}
	if out != nil {
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), out), buf.String())
	}

	return nil
}

func TestKernelCmd_ScalarProfile(t *testing.T) {
	var rep kernelReport
	require.NoError(t, run(t, &rep, "kernel", "--l", "0", "--m", "0", "--radius", "5", "--fwhm", "2"))
	assert.Equal(t, "scalar", rep.Family)
	assert.Equal(t, [3]int{23, 23, 23}, rep.Shape)
	require.Len(t, rep.Profile, 12)
	assert.InDelta(t, 1/(2*math.Sqrt(math.Pi)), rep.Profile[5], 1e-12)
	for i, v := range rep.Profile {
		assert.LessOrEqual(t, v, rep.Profile[5], "profile peaks on the shell (x=%d)", i)
	}
	assert.Equal(t, 23*23*23, rep.NonZero)
}

func TestKernelCmd_VectorAndErrors(t *testing.T) {
	var rep kernelReport
	require.NoError(t, run(t, &rep, "kernel", "--family", "vector", "--l", "0", "--k", "0", "--m", "0", "--radius", "2"))
	assert.Zero(t, rep.NonZero)
	assert.Zero(t, rep.Norm)

	require.NoError(t, run(t, &rep, "kernel", "--family", "vector-radial", "--n", "2", "--l", "1", "--k", "1", "--radius", "2"))
	assert.Equal(t, 2, rep.Index.N)
	assert.Positive(t, rep.Norm)

	err := run(t, nil, "kernel", "--family", "tensor")
	assert.ErrorIs(t, err, harmonics.ErrFamilyMismatch)
	err = run(t, nil, "kernel", "--family", "radial", "--n", "0")
	assert.Error(t, err)
	err = run(t, nil, "kernel", "--l", "1", "--m", "3")
	assert.ErrorIs(t, err, harmonics.ErrInvalidDegree)
}

func TestProjectCmd_Synthetic(t *testing.T) {
	var rep projectReport
	require.NoError(t, run(t, &rep, "project", "--l", "2", "--m", "0", "--radius", "4", "--band", "2"))
	require.NotNil(t, rep.Dominant)
	assert.Equal(t, indexReport{L: 2, M: 0}, *rep.Dominant)
	assert.Len(t, rep.Coefficients, 9)
	assert.Equal(t, *rep.Dominant, rep.Coefficients[0].Index, "coefficients are sorted by magnitude")
	require.NotNil(t, rep.Position)
	assert.Equal(t, [3]float64{7.5, 7.5, 7.5}, *rep.Position)

	require.NoError(t, run(t, &rep, "project", "--family", "vector", "--l", "1", "--k", "1", "--m", "0",
		"--radius", "2", "--band", "1", "--top", "3"))
	assert.Len(t, rep.Coefficients, 3)
}

func TestProjectCmd_RawInput(t *testing.T) {
	shape := volume.Shape{6, 7, 8}
	data := make([]float64, shape.Len())
	for i := range data {
		data[i] = math.Sin(0.37 * float64(i))
	}
	path := filepath.Join(t.TempDir(), "in.raw")
	require.NoError(t, writeRaw(path, data))

	var rep projectReport
	require.NoError(t, run(t, &rep, "project", "--input", path, "--shape", "6,7,8", "--pos", "3,3,4",
		"--radius", "2", "--band", "1"))
	assert.Equal(t, [3]int{6, 7, 8}, rep.Shape)
	require.Len(t, rep.Coefficients, 4)

	cache, err := harmonics.BuildScalarCache(context.Background(), harmonics.NewConfig(harmonics.WithRadius(2), harmonics.WithBand(1)))
	require.NoError(t, err)
	field, err := volume.FromData(shape, data)
	require.NoError(t, err)
	want, err := harmonics.ProjectRealAt(cache, field, [3]float64{3, 3, 4})
	require.NoError(t, err)
	for _, c := range rep.Coefficients {
		w, ok := want.At(harmonics.Index{L: c.Index.L, M: c.Index.M})
		require.True(t, ok)
		assert.InDelta(t, real(w), c.Re, 1e-12)
		assert.InDelta(t, imag(w), c.Im, 1e-12)
	}

	err = run(t, nil, "project", "--input", path, "--shape", "6,7,9")
	assert.ErrorIs(t, err, errRawSize)
	err = run(t, nil, "project", "--input", path, "--shape", "6,7,7")
	assert.ErrorIs(t, err, errRawSize)
	err = run(t, nil, "project", "--input", path, "--shape", "6,7")
	assert.Error(t, err)
	err = run(t, nil, "project", "--input", path)
	assert.Error(t, err, "--shape is required with --input")
}

func TestProjectCmd_DenseWritesVolumes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "coeffs")
	var rep projectReport
	require.NoError(t, run(t, &rep, "project", "--dense", "--out-dir", dir, "--radius", "1", "--band", "0"))
	require.Len(t, rep.Volumes, 1)
	assert.Nil(t, rep.Position)
	assert.Equal(t, [3]int{4, 4, 4}, rep.Volumes[0].At, "peak at the centre of the 9³ input")

	info, err := os.Stat(rep.Volumes[0].File)
	require.NoError(t, err)
	assert.Equal(t, int64(2*8*9*9*9), info.Size())
}

func TestRoundtripCmd(t *testing.T) {
	var rep roundtripReport
	require.NoError(t, run(t, &rep, "roundtrip", "--l", "2", "--m", "1", "--radius", "4", "--band", "2"))
	assert.Equal(t, 2, rep.Dominant.L)
	assert.Equal(t, 1, abs(rep.Dominant.M))
	assert.Less(t, rep.Leak, 0.1)
	assert.Greater(t, rep.Cosine, 0.99)

	require.NoError(t, run(t, &rep, "roundtrip", "--family", "vector", "--l", "1", "--k", "0", "--m", "1",
		"--radius", "4", "--band", "1"))
	assert.Equal(t, indexReport{L: 1, K: 0, M: 1}, rep.Dominant)
	assert.Greater(t, rep.Cosine, 0.99)

	err := run(t, nil, "roundtrip", "--l", "3", "--band", "2")
	assert.Error(t, err, "index outside the band")
}

func TestRoot_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxharm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("radius: 2\nband: 1\nlog_level: warn\n"), 0o644))

	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"project", "--config", path})
	require.NoError(t, root.Execute())
	var rep projectReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rep))
	assert.Len(t, rep.Coefficients, 4)

	buf.Reset()
	root = NewRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"project", "--config", path, "--band", "2"})
	require.NoError(t, root.Execute())
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rep))
	assert.Len(t, rep.Coefficients, 9, "flags override the file")

	err := run(t, nil, "project", "--radius", "-1")
	assert.ErrorIs(t, err, harmonics.ErrInvalidRadius)

	root = NewRootCmd()
	root.SetArgs([]string{"kernel", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, root.Execute(), os.ErrNotExist)
}

func TestParseTriple(t *testing.T) {
	v, err := parseTriple(" 1, 2.5 ,-3")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 2.5, -3}, v)
	_, err = parseTriple("1,x,3")
	assert.Error(t, err)
	_, err = parseShape("1.5,2,3")
	assert.ErrorIs(t, err, volume.ErrBadShape)
	_, err = parseShape("0,2,3")
	assert.ErrorIs(t, err, volume.ErrBadShape)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
