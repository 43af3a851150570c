// Package config loads runtime configuration for unitforge from
// .unitforge.yaml, UNITFORGE_* environment variables, and CLI flags,
// in that order of increasing precedence.
package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for a unitforge invocation.
type Config struct {
	CatalogPath   string `mapstructure:"catalog_path"`
	OutDir        string `mapstructure:"out_dir"`
	FactsFormat   string `mapstructure:"facts_format"`
	TelemetryPath string `mapstructure:"telemetry_path"`
	Verbose       bool   `mapstructure:"verbose"`
	Color         bool   `mapstructure:"color"`
}

// Load reads configuration from viper, applying built-in defaults for
// any values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("catalog_path", "units.toml")
	viper.SetDefault("out_dir", ".")
	viper.SetDefault("facts_format", "toml")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("color", true)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
