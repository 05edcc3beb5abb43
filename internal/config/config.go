// Package config handles objtool configuration loading and management.
package config

import (
	"time"
)

// Config holds all importer settings.
type Config struct {
	Parse   ParseConfig   `yaml:"parse" toml:"parse"`
	Bundle  BundleConfig  `yaml:"bundle" toml:"bundle"`
	Import  ImportConfig  `yaml:"import" toml:"import"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ParseConfig holds OBJ parser settings.
type ParseConfig struct {
	RequireGroup bool   `yaml:"require_group" toml:"require_group"` // Reject faces before the first g record
	Charset      string `yaml:"charset" toml:"charset"`             // Source text charset when no BOM is present
	CapacityHint int    `yaml:"capacity_hint" toml:"capacity_hint"` // Expected vertex count, 0 = grow on demand
}

// BundleConfig holds zip bundle settings.
type BundleConfig struct {
	Entry string `yaml:"entry" toml:"entry"` // Entry to import from a bundle
}

// ImportConfig holds importer job settings.
type ImportConfig struct {
	Workers int      `yaml:"workers" toml:"workers"` // Parallel parses for batch imports
	Timeout Duration `yaml:"timeout" toml:"timeout"` // Per-file limit, 0 = none
}

// WatchConfig holds directory watcher settings.
type WatchConfig struct {
	Extensions []string `yaml:"extensions" toml:"extensions"`
	Debounce   Duration `yaml:"debounce" toml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Duration is a time.Duration written as "250ms" in both YAML and TOML.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			RequireGroup: false,
			Charset:      "utf-8",
			CapacityHint: 0,
		},
		Bundle: BundleConfig{
			Entry: "result.obj",
		},
		Import: ImportConfig{
			Workers: 4,
			Timeout: Duration(30 * time.Second),
		},
		Watch: WatchConfig{
			Extensions: []string{".obj", ".zip"},
			Debounce:   Duration(250 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
