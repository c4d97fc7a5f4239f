package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// configEnv overrides the config file location.
	configEnv = "SITEKIT_CONFIG"

	homeDirName    = ".sitekit"
	configFileName = "config.yaml"
)

// Paths contains standard filesystem paths for sitekit.
type Paths struct {
	// ConfigFile is the path to the config file (~/.sitekit/config.yaml).
	ConfigFile string

	// HomeDir is the sitekit home directory (~/.sitekit).
	HomeDir string
}

// DefaultPaths returns the default paths for sitekit.
func DefaultPaths() (*Paths, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locating home directory: %w", err)
	}

	home := filepath.Join(userHome, homeDirName)
	return &Paths{
		ConfigFile: filepath.Join(home, configFileName),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path: SITEKIT_CONFIG when set,
// otherwise ~/.sitekit/config.yaml.
func GetConfigFile() (string, error) {
	if p := os.Getenv(configEnv); p != "" {
		return p, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

// ExpandPath expands a leading "~" or "~/" to the user's home directory.
// "~user" forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	if rest == "" {
		return userHome, nil
	}
	return filepath.Join(userHome, rest[1:]), nil
}

// ConfigFileExists reports whether configFile exists. A directory at that
// path is an error rather than a missing file.
func ConfigFileExists(configFile string) (bool, error) {
	path, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}
