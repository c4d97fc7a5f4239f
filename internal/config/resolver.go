package config

import (
	"os"

	"github.com/sitekit/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// packageManagerEnv overrides install.packageManager.
const packageManagerEnv = "SITEKIT_PACKAGE_MANAGER"

// ResolvedValue is a configuration value together with its provenance.
type ResolvedValue struct {
	// Key is the configuration key.
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values overridden by higher precedence sources.
	Shadowed map[ConfigSource]string
}

// ResolvePackageManagerOptions contains the candidate values.
type ResolvePackageManagerOptions struct {
	// FlagValue is the --package-manager flag value (empty if not set).
	FlagValue string
	// ConfigValue is install.packageManager from the config file.
	ConfigValue string
}

// ResolvePackageManager resolves the installer binary using precedence:
// (1) --package-manager flag, (2) SITEKIT_PACKAGE_MANAGER, (3) config, (4) npm.
func ResolvePackageManager(opts ResolvePackageManagerOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      "install.packageManager",
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(packageManagerEnv)
	configValue := opts.ConfigValue
	// The loader fills defaults into the config struct; treat that as default.
	if configValue == DefaultPackageManager {
		configValue = ""
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, configValue},
		{SourceDefault, DefaultPackageManager},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.source != SourceDefault {
			result.Shadowed[c.source] = c.value
		}
	}

	return result
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
