// Package config provides CLI command implementations for the config command group.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitekit/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the sitekit CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}

// configPath returns the config file path resolved at startup, falling back
// to the default location.
func configPath(cfg *config.GlobalConfig) (string, error) {
	path := ""
	if cfg != nil {
		path = cfg.ConfigPath
	}
	if path == "" {
		var err error
		path, err = config.GetConfigFile()
		if err != nil {
			return "", fmt.Errorf("getting config file path: %w", err)
		}
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return expanded, nil
}
