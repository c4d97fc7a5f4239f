package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no tilde", "/absolute/path", "/absolute/path"},
		{"relative path without tilde", "relative/path", "relative/path"},
		{"tilde only", "~", homeDir},
		{"tilde with path", "~/.sitekit/config.yaml", filepath.Join(homeDir, ".sitekit", "config.yaml")},
		{"tilde username unsupported", "~bob/x", "~bob/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetConfigFile(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("SITEKIT_CONFIG", "/etc/sitekit.yaml")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/etc/sitekit.yaml", got)
	})

	t.Run("default under home", func(t *testing.T) {
		t.Setenv("SITEKIT_CONFIG", "")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "config.yaml", filepath.Base(got))
		assert.Equal(t, ".sitekit", filepath.Base(filepath.Dir(got)))
	})
}

func TestConfigFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	exists, err = ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConfigFileExists_Directory(t *testing.T) {
	_, err := ConfigFileExists(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
