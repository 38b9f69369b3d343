// Package config loads the optional deployment config file (cohort.yaml).
// The file overrides the built-in branch priority, default group count,
// column names and export settings; everything it omits keeps its default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/cohort/allocate"
	"github.com/tsawler/cohort/branch"
)

// Columns names the roster columns to look for during ingestion.
type Columns struct {
	Roll  string `yaml:"roll"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Export holds output settings for the CLI.
type Export struct {
	// Dir is the directory export files are written into.
	Dir string `yaml:"dir"`

	// Formats lists the formats the group command emits alongside the
	// workbook (csv, tsv, json, markdown).
	Formats []string `yaml:"formats"`
}

// Config is the full deployment configuration.
type Config struct {
	// Groups is the default number of groups when --groups is not given.
	Groups int `yaml:"groups"`

	// Priority overrides the built-in branch draw order.
	Priority []string `yaml:"priority"`

	Columns Columns `yaml:"columns"`
	Export  Export  `yaml:"export"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Groups:   allocate.DefaultGroups,
		Priority: branch.DefaultPriority(),
		Columns:  Columns{Roll: "Roll", Name: "Name", Email: "Email"},
		Export:   Export{Dir: ".", Formats: []string{"csv"}},
	}
}

// Load reads the named YAML file and overlays it on Default. Unknown keys
// are errors so typos fail loudly rather than being ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadIfPresent is Load, except a missing file is not an error.
func LoadIfPresent(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges after decoding.
func (c Config) Validate() error {
	if c.Groups < allocate.MinGroups || c.Groups > allocate.MaxGroups {
		return fmt.Errorf("groups must be between %d and %d, got %d",
			allocate.MinGroups, allocate.MaxGroups, c.Groups)
	}
	seen := make(map[string]bool, len(c.Priority))
	for _, code := range c.Priority {
		if len(code) != 2 {
			return fmt.Errorf("priority code %q must be two letters", code)
		}
		if seen[code] {
			return fmt.Errorf("priority code %q listed twice", code)
		}
		seen[code] = true
	}
	if c.Columns.Roll == "" {
		return fmt.Errorf("columns.roll must not be empty")
	}
	return nil
}
