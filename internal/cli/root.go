// SPDX-License-Identifier: MIT

// Package cli wires the voxharm cobra commands: kernel inspection, probe or
// dense projection of raw volumes, and synthetic round trips.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxharm/harmonics"
	"github.com/katalvlaran/voxharm/internal/config"
)

// app carries state shared by every subcommand after PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool

	// flag overrides, applied only when set on the command line
	radius  float64
	fwhm    float64
	band    int
	workers int

	log *zap.Logger
	cfg harmonics.Config
}

// NewRootCmd builds the command tree. Commands write reports to
// cmd.OutOrStdout() and diagnostics to a zap logger on stderr.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "voxharm",
		Short: "Spherical harmonic kernels, projection and reconstruction on voxel grids",
		Long: `voxharm builds discretized (vector) spherical harmonic kernels, projects
3D volumes onto them at a probe voxel or densely over the whole volume, and
reconstructs fields from the resulting coefficients.

Reports are written as YAML to stdout; logs go to stderr.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.Float64Var(&a.radius, "radius", harmonics.DefaultRadius, "Shell radius (overrides config)")
	pf.Float64Var(&a.fwhm, "fwhm", harmonics.DefaultFWHM, "Shell width (overrides config)")
	pf.IntVar(&a.band, "band", harmonics.DefaultBand, "Maximum degree (overrides config)")
	pf.IntVar(&a.workers, "workers", harmonics.DefaultWorkers, "Parallelism bound, 0 = GOMAXPROCS (overrides config)")

	root.AddCommand(newKernelCmd(a), newProjectCmd(a), newRoundtripCmd(a))

	return root
}

// setup loads the config file, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	file, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("radius") {
		file.Radius = a.radius
	}
	if flags.Changed("fwhm") {
		file.FWHM = a.fwhm
	}
	if flags.Changed("band") {
		file.Band = a.band
	}
	if flags.Changed("workers") {
		file.Workers = a.workers
	}

	level, err := file.Level()
	if err != nil {
		return err
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	a.log, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg, err = file.Harmonics(a.log.Named(cmd.Name()))
	return err
}

// writeYAML encodes v as one YAML document.
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return enc.Close()
}
