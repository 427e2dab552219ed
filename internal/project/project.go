// Package project reads directory-local popcal overrides, so a repository
// can pin its own date format or placement.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruminaider/popcal/internal/config"
	"go.yaml.in/yaml/v3"
)

var ErrNoProjectConfig = errors.New("no .popcal.yaml found")

const ConfigFileName = ".popcal.yaml"

// Overrides represents .popcal.yaml. Empty fields keep the global value.
type Overrides struct {
	Position       string `yaml:"position,omitempty"`
	Adjustment     string `yaml:"adjustment,omitempty"`
	Trigger        string `yaml:"trigger,omitempty"`
	Scroll         string `yaml:"scroll,omitempty"`
	DateFormat     string `yaml:"date_format,omitempty"`
	WeekStart      string `yaml:"week_start,omitempty"`
	RangeSeparator string `yaml:"range_separator,omitempty"`
}

func configPath(projectDir string) string {
	return filepath.Join(projectDir, ConfigFileName)
}

// Read loads the overrides stored directly in projectDir.
func Read(projectDir string) (Overrides, error) {
	data, err := os.ReadFile(configPath(projectDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, ErrNoProjectConfig
		}
		return Overrides{}, err
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}
	return o, nil
}

// Write stores o in projectDir.
func Write(projectDir string, o Overrides) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(projectDir), data, 0644)
}

// FindRoot walks up from dir looking for .popcal.yaml.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(configPath(dir)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectConfig
		}
		dir = parent
	}
}

// Apply returns cfg with every non-empty override written over it.
func (o Overrides) Apply(cfg config.Config) config.Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Position, o.Position)
	set(&cfg.Adjustment, o.Adjustment)
	set(&cfg.Trigger, o.Trigger)
	set(&cfg.Scroll, o.Scroll)
	set(&cfg.DateFormat, o.DateFormat)
	set(&cfg.WeekStart, o.WeekStart)
	set(&cfg.RangeSeparator, o.RangeSeparator)
	return cfg
}

// Resolve finds the nearest .popcal.yaml above dir and applies it to cfg.
// It returns the file used, or "" when there is none.
func Resolve(dir string, cfg config.Config) (config.Config, string, error) {
	root, err := FindRoot(dir)
	if errors.Is(err, ErrNoProjectConfig) {
		return cfg, "", nil
	}
	if err != nil {
		return cfg, "", err
	}
	o, err := Read(root)
	if err != nil {
		return cfg, "", err
	}
	return o.Apply(cfg), configPath(root), nil
}
