// Package config loads and validates run configuration files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-bfs/pkg/batch"
	"github.com/dd0wney/cluso-bfs/pkg/bfs"
	"github.com/dd0wney/cluso-bfs/pkg/device"
	"github.com/dd0wney/cluso-bfs/pkg/validation"
)

// RunConfig describes one invocation of the traversal engine.
type RunConfig struct {
	Variant          string  `yaml:"variant" validate:"required,oneof=naive frontier mask"`
	Layout           string  `yaml:"layout" validate:"required,oneof=compressed vectorized"`
	GroupWidths      []int   `yaml:"group_widths" validate:"required,min=1,dive,gte=1,lte=1024"`
	Iterations       int     `yaml:"iterations" validate:"gte=1"`
	ComputeUnits     int     `yaml:"compute_units" validate:"gte=0"`
	LocalMemoryBytes int     `yaml:"local_memory_bytes" validate:"gte=0"`
	FrontierCapacity int     `yaml:"frontier_capacity" validate:"gte=0"`
	OverflowPolicy   string  `yaml:"overflow_policy" validate:"required,oneof=spill fail"`
	TrackDistances   bool    `yaml:"track_distances"`
	Undirected       bool    `yaml:"undirected"`
	Sources          []int32 `yaml:"sources,omitempty" validate:"dive,gte=0"`
	LogLevel         string  `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

// Default returns the configuration used when no file is given.
func Default() RunConfig {
	return RunConfig{
		Variant:          bfs.Frontier.String(),
		Layout:           batch.Compressed.String(),
		GroupWidths:      []int{32},
		Iterations:       1,
		ComputeUnits:     runtime.NumCPU(),
		LocalMemoryBytes: device.DefaultLocalMemoryBytes,
		OverflowPolicy:   bfs.Spill.String(),
		TrackDistances:   true,
		LogLevel:         "info",
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (RunConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RunConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Validate checks struct tags first, then cross-field rules.
func (c RunConfig) Validate() error {
	if err := validation.Struct(&c); err != nil {
		return err
	}

	return validation.NewConfigValidator("RunConfig").
		When(c.Variant != bfs.Frontier.String(), func(cv *validation.ConfigValidator) {
			cv.Custom("frontier_capacity", func() error {
				if c.FrontierCapacity != 0 {
					return errors.New("only applies to the frontier variant")
				}
				return nil
			})
		}).
		Validate()
}

// Marshal renders the configuration as YAML.
func (c RunConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// VariantValue returns the parsed kernel variant.
func (c RunConfig) VariantValue() (bfs.Variant, error) {
	return bfs.ParseVariant(c.Variant)
}

// LayoutValue returns the parsed batch layout.
func (c RunConfig) LayoutValue() (batch.Layout, error) {
	return batch.ParseLayout(c.Layout)
}

// Options returns the kernel options.
func (c RunConfig) Options() (bfs.Options, error) {
	policy, err := bfs.ParseOverflowPolicy(c.OverflowPolicy)
	if err != nil {
		return bfs.Options{}, err
	}
	return bfs.Options{
		FrontierCapacity: c.FrontierCapacity,
		Overflow:         policy,
		Symmetric:        c.Undirected,
	}, nil
}

// Device returns the device configuration.
func (c RunConfig) Device() device.Config {
	return device.Config{
		ComputeUnits:     validation.DefaultOrInt(c.ComputeUnits, runtime.NumCPU()),
		LocalMemoryBytes: validation.DefaultOrInt(c.LocalMemoryBytes, device.DefaultLocalMemoryBytes),
	}
}

// SourceFor returns the source of graph g, defaulting to node 0.
func (c RunConfig) SourceFor(g int) int32 {
	if g < len(c.Sources) {
		return c.Sources[g]
	}
	return 0
}
