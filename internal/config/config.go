package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/picker"
	"github.com/ruminaider/popcal/internal/trigger"
	"go.yaml.in/yaml/v3"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// Config represents ~/.config/popcal/config.yaml (or config.toml).
type Config struct {
	Version        string `yaml:"version" toml:"version"`
	Position       string `yaml:"position" toml:"position"`
	Adjustment     string `yaml:"adjustment" toml:"adjustment"`
	Trigger        string `yaml:"trigger" toml:"trigger"`
	Scroll         string `yaml:"scroll" toml:"scroll"`
	DateFormat     string `yaml:"date_format" toml:"date_format"`
	WeekStart      string `yaml:"week_start" toml:"week_start"`
	RangeSeparator string `yaml:"range_separator,omitempty" toml:"range_separator,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Version:        CurrentVersion,
		Position:       "bottom",
		Adjustment:     "counterclockwise",
		Trigger:        "click",
		Scroll:         "reposition",
		DateFormat:     "2006-01-02",
		WeekStart:      "monday",
		RangeSeparator: " - ",
	}
}

// Parse parses config.yaml bytes. Missing keys keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, cfg.Validate()
}

// ParseTOML parses config.toml bytes. Missing keys keep their defaults.
func ParseTOML(data []byte) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// MarshalTOML serializes a Config to TOML bytes.
func MarshalTOML(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads the file at path, choosing the format by extension. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return Parse(data)
}

// LoadFirst loads the first existing path, or the defaults when none exist.
func LoadFirst(paths ...string) (Config, string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	return Default(), "", nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = MarshalTOML(cfg)
	} else {
		data, err = Marshal(cfg)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	var errs []error
	if _, err := overlay.ParsePosition(c.Position); err != nil {
		errs = append(errs, err)
	}
	if _, err := overlay.ParseAdjustment(c.Adjustment); err != nil {
		errs = append(errs, err)
	}
	if _, err := trigger.ParseKind(c.Trigger); err != nil {
		errs = append(errs, err)
	}
	if _, err := overlay.ParseScrollKind(c.Scroll); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Weekday(); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateLayout(c.DateFormat); err != nil {
		errs = append(errs, fmt.Errorf("date_format: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ValidateLayout rejects date layouts that cannot round-trip a day.
func ValidateLayout(layout string) error {
	if strings.TrimSpace(layout) == "" {
		return errors.New("date format is required")
	}
	sample := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, sample.Format(layout))
	if err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	if !parsed.Equal(sample) {
		return errors.New("layout must include year, month and day")
	}
	return nil
}

// Weekday parses WeekStart.
func (c Config) Weekday() (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(c.WeekStart)) {
	case "monday", "":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Monday, fmt.Errorf("unsupported week_start %q", c.WeekStart)
}

// Separator returns RangeSeparator or the default.
func (c Config) Separator() string {
	if c.RangeSeparator == "" {
		return " - "
	}
	return c.RangeSeparator
}

// PickerOptions converts the placement and trigger settings.
func (c Config) PickerOptions() (picker.Options, error) {
	opts := picker.DefaultOptions()
	var err error
	if opts.Position, err = overlay.ParsePosition(c.Position); err != nil {
		return opts, err
	}
	if opts.Adjustment, err = overlay.ParseAdjustment(c.Adjustment); err != nil {
		return opts, err
	}
	if opts.Trigger, err = trigger.ParseKind(c.Trigger); err != nil {
		return opts, err
	}
	if opts.Scroll, err = overlay.ParseScrollKind(c.Scroll); err != nil {
		return opts, err
	}
	return opts, nil
}
