// SPDX-License-Identifier: MIT

// Package config loads the voxharm YAML configuration file and turns it
// into a validated harmonics.Config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxharm/harmonics"
	"github.com/katalvlaran/voxharm/volume"
)

// File mirrors the on-disk YAML document. Unknown keys are rejected.
type File struct {
	Radius   float64    `yaml:"radius"`
	FWHM     float64    `yaml:"fwhm"`
	Band     int        `yaml:"band"`
	Spacing  [3]float64 `yaml:"spacing"` // z, y, x
	RealData bool       `yaml:"real_data"`
	Workers  int        `yaml:"workers"`
	LogLevel string     `yaml:"log_level"`
}

// Default returns the library defaults with info-level logging.
func Default() *File {
	return &File{
		Radius:   harmonics.DefaultRadius,
		FWHM:     harmonics.DefaultFWHM,
		Band:     harmonics.DefaultBand,
		Spacing:  volume.Isotropic,
		RealData: harmonics.DefaultRealData,
		Workers:  harmonics.DefaultWorkers,
		LogLevel: "info",
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (*File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (f *File) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Save writes the configuration as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Level parses LogLevel; an empty value means info.
func (f *File) Level() (zapcore.Level, error) {
	if f.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(f.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("config log_level: %w", err)
	}

	return lvl, nil
}

// Harmonics converts the file into a harmonics.Config routed to log and
// validates it. User input never reaches the panicking WithX options.
func (f *File) Harmonics(log *zap.Logger) (harmonics.Config, error) {
	cfg := harmonics.Config{
		Radius:   f.Radius,
		FWHM:     f.FWHM,
		Band:     f.Band,
		Spacing:  volume.Spacing(f.Spacing),
		RealData: f.RealData,
		Workers:  f.Workers,
		Logger:   log,
	}
	if err := cfg.Validate(); err != nil {
		return harmonics.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
