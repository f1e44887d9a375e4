// Package config loads ambient, non-consensus-critical settings for
// cmd/poolsim: log level, an optional metrics listen address, and the
// data directory the harness persists its mock ledger under. The fee,
// earning, and precision constants the pricing engine depends on are
// never configurable here — they are compile-time constants in package
// core so the product invariant can't be reconfigured out from under it.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the unified configuration for the poolsim harness.
type Config struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Addr    string `mapstructure:"addr"`
	} `mapstructure:"metrics"`

	DataDir string `mapstructure:"data_dir"`
}

// Default returns the harness's built-in defaults, used when no config
// file or environment override is present.
func Default() Config {
	var c Config
	c.Log.Level = "info"
	c.Metrics.Enabled = false
	c.Metrics.Addr = "127.0.0.1:9090"
	c.DataDir = "./poolsim-data"
	return c
}

// Load reads an optional YAML config file and POOLSIM_-prefixed
// environment overrides on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("POOLSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)
	v.SetDefault("data_dir", cfg.DataDir)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
