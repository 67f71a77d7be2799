// Package boardcfg loads a board description from YAML and registers its
// GPIO chips and lookup entries with a gpio.Subsystem.
package boardcfg

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"devobj-go/x/logx"

	"gopkg.in/yaml.v3"
)

// Config is the root of a board description.
type Config struct {
	Board   string        `yaml:"board"`
	Logging logx.Config   `yaml:"logging"`
	Chips   []ChipConfig  `yaml:"chips"`
	Lookups []LookupEntry `yaml:"lookups"`
	Capture CaptureConfig `yaml:"capture"`
}

// ChipConfig describes one GPIO controller.
type ChipConfig struct {
	Label   string `yaml:"label"`
	Driver  string `yaml:"driver"`  // "sim" | "pcf8574"
	GPIOs   uint16 `yaml:"gpios"`   // sim only
	Bus     string `yaml:"bus"`     // pcf8574 only, e.g. "i2c0"
	Address uint16 `yaml:"address"` // pcf8574 only; 0 selects the default
}

// LookupEntry maps a logical id to a chip line.
type LookupEntry struct {
	ID     uint16   `yaml:"id"`
	Name   string   `yaml:"name"`
	Chip   string   `yaml:"chip"`
	Offset uint16   `yaml:"offset"`
	Flags  []string `yaml:"flags"`
}

// CaptureConfig sizes the sample buffer used by the capture path.
type CaptureConfig struct {
	Elements int `yaml:"elements"`
}

// Driver kinds.
const (
	DriverSim     = "sim"
	DriverPCF8574 = "pcf8574"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in host board.
func Default() (*Config, error) {
	return Parse(defaultYAML)
}

// Load reads, parses and validates the board file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a board description.
func Parse(data []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing board file: %w", err)
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating board file: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Board:   "host",
		Logging: logx.Config{Level: "info"},
		Capture: CaptureConfig{Elements: 64},
	}
}

// applyEnvOverrides applies DEVOBJ_* environment overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DEVOBJ_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// pins returns the line count a chip entry provides.
func (c ChipConfig) pins() uint16 {
	switch c.Driver {
	case DriverPCF8574:
		return 8
	default:
		return c.GPIOs
	}
}

// Validate checks labels, drivers, references and flag names.
func (c *Config) Validate() error {
	var errs []string

	chips := make(map[string]ChipConfig, len(c.Chips))
	for i, ch := range c.Chips {
		switch {
		case ch.Label == "":
			errs = append(errs, fmt.Sprintf("chips[%d].label is required", i))
			continue
		case chips[ch.Label].Label != "":
			errs = append(errs, fmt.Sprintf("chips[%d]: duplicate label %q", i, ch.Label))
			continue
		}
		switch ch.Driver {
		case DriverSim:
			if ch.GPIOs == 0 {
				errs = append(errs, fmt.Sprintf("chip %q: gpios must be > 0", ch.Label))
			}
		case DriverPCF8574:
			if ch.Bus == "" {
				errs = append(errs, fmt.Sprintf("chip %q: bus is required", ch.Label))
			}
		default:
			errs = append(errs, fmt.Sprintf("chip %q: unknown driver %q", ch.Label, ch.Driver))
		}
		chips[ch.Label] = ch
	}

	ids := make(map[uint16]bool, len(c.Lookups))
	for i, l := range c.Lookups {
		if ids[l.ID] {
			errs = append(errs, fmt.Sprintf("lookups[%d]: duplicate id %d", i, l.ID))
		}
		ids[l.ID] = true
		ch, ok := chips[l.Chip]
		if !ok {
			errs = append(errs, fmt.Sprintf("lookups[%d]: unknown chip %q", i, l.Chip))
		} else if l.Offset >= ch.pins() {
			errs = append(errs, fmt.Sprintf("lookups[%d]: offset %d beyond %d lines of %q", i, l.Offset, ch.pins(), l.Chip))
		}
		if _, err := ParseFlags(l.Flags); err != nil {
			errs = append(errs, fmt.Sprintf("lookups[%d]: %v", i, err))
		}
	}

	if c.Capture.Elements < 2 {
		errs = append(errs, "capture.elements must be at least 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("board errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LookupByName returns the id of the lookup entry called name.
func (c *Config) LookupByName(name string) (uint16, bool) {
	for _, l := range c.Lookups {
		if l.Name == name {
			return l.ID, true
		}
	}
	return 0, false
}
