package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable prefix for sitekit configuration.
const envPrefix = "SITEKIT"

// LoaderOptions configures a single configuration load.
type LoaderOptions struct {
	// ConfigFile is the --config flag value. Empty falls back to
	// SITEKIT_CONFIG and then ~/.sitekit/config.yaml.
	ConfigFile string

	// EnvFile is an optional dotenv file. Only SITEKIT_* keys are applied,
	// and never over variables already present in the environment.
	EnvFile string
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	defaults := DefaultConfig()
	v.SetDefault("install.packageManager", defaults.Install.PackageManager)
	v.SetDefault("install.args", []string{})
	v.SetDefault("install.timeout", defaults.Install.Timeout)
	v.SetDefault("install.skip", false)
	v.SetDefault("log.timestamps", true)

	return &Loader{v: v}
}

// Load loads configuration from file and environment. A missing config
// file is not an error; defaults and environment variables still apply.
func (l *Loader) Load(opts LoaderOptions) (*Config, string, error) {
	if opts.EnvFile != "" {
		if err := applyEnvFile(opts.EnvFile); err != nil {
			return nil, "", err
		}
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, "", fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, "", fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, expandedPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, expandedPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, expandedPath, nil
}

// applyEnvFile copies SITEKIT_* entries from a dotenv file into the process
// environment unless they are already set. A missing file is ignored.
func applyEnvFile(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range values {
		if !strings.HasPrefix(key, envPrefix+"_") {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}

	return nil
}
