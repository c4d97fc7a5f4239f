// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// InstallConfig contains dependency installation settings.
type InstallConfig struct {
	// PackageManager is the installer binary: npm, pnpm, yarn or bun.
	// Env: SITEKIT_PACKAGE_MANAGER, Default: npm
	PackageManager string `mapstructure:"packageManager" yaml:"packageManager"`

	// Args are extra arguments appended after "install".
	Args []string `mapstructure:"args" yaml:"args,omitempty"`

	// Timeout bounds the install subprocess, as a Go duration string.
	// Env: SITEKIT_INSTALL_TIMEOUT, Default: 10m
	Timeout string `mapstructure:"timeout" yaml:"timeout"`

	// Skip disables the install stage entirely.
	// Env: SITEKIT_INSTALL_SKIP, Default: false
	Skip bool `mapstructure:"skip" yaml:"skip"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the sitekit CLI configuration loaded from
// ~/.sitekit/config.yaml and SITEKIT_* environment variables.
type Config struct {
	Install InstallConfig `mapstructure:"install" yaml:"install"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// Defaults.
const (
	DefaultPackageManager = "npm"
	DefaultInstallTimeout = "10m"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `sitekit config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Install: InstallConfig{
			PackageManager: DefaultPackageManager,
			Timeout:        DefaultInstallTimeout,
		},
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// InstallTimeout parses the configured install timeout. An empty value
// yields the default.
func (c *Config) InstallTimeout() (time.Duration, error) {
	raw := c.Install.Timeout
	if raw == "" {
		raw = DefaultInstallTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing install.timeout %q: %w", raw, err)
	}
	return d, nil
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command constructor.
type GlobalConfig struct {
	// Config is the loaded configuration; never nil after startup.
	Config *Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Verbose mirrors the --verbose flag.
	Verbose bool
}
