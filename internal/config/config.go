// Package config loads YAML run configurations for the collation and
// export commands, so recurring runs can be described in a file instead
// of a long flag list.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Create holds the settings of a database creation run.
type Create struct {
	Paths            []string `yaml:"paths"`
	Output           string   `yaml:"output"`
	Extensions       []string `yaml:"extensions,omitempty"`
	Pattern          string   `yaml:"pattern,omitempty"`
	RelativePaths    bool     `yaml:"relative_paths,omitempty"`
	SkipBroken       bool     `yaml:"skip_broken,omitempty"`
	IgnoreDuplicates bool     `yaml:"ignore_duplicates,omitempty"`
	Workers          int      `yaml:"workers,omitempty"`
}

// Export holds the settings of a database export run.
type Export struct {
	Database        string `yaml:"database"`
	Output          string `yaml:"output"`
	Format          string `yaml:"format"`
	TargetWidth     int    `yaml:"target_width,omitempty"`
	TargetHeight    int    `yaml:"target_height,omitempty"`
	KeepAspectRatio bool   `yaml:"keep_aspect_ratio,omitempty"`
	NoUpscale       bool   `yaml:"no_upscale,omitempty"`
	IgnoreScaling   bool   `yaml:"ignore_scaling,omitempty"`
	IgnoreWindowing bool   `yaml:"ignore_windowing,omitempty"`
	SkipBroken      bool   `yaml:"skip_broken,omitempty"`
	Workers         int    `yaml:"workers,omitempty"`
}

// LoadCreate reads a creation run configuration from a YAML file.
func LoadCreate(path string) (Create, error) {
	var cfg Create
	if err := load(path, &cfg); err != nil {
		return Create{}, err
	}
	return cfg, nil
}

// LoadExport reads an export run configuration from a YAML file.
func LoadExport(path string) (Export, error) {
	var cfg Export
	if err := load(path, &cfg); err != nil {
		return Export{}, err
	}
	return cfg, nil
}

// SaveCreate writes a creation run configuration to a YAML file, so the
// effective settings of a run can be replayed later.
func SaveCreate(path string, cfg Create) error {
	return save(path, cfg)
}

// SaveExport writes an export run configuration to a YAML file.
func SaveExport(path string, cfg Export) error {
	return save(path, cfg)
}

func load(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func save(path string, in any) error {
	b, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o644)
}
