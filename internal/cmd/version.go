package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitekit/cli/internal/config"
	"github.com/sitekit/cli/internal/installer"
	"github.com/sitekit/cli/internal/version"
)

// detectTimeout bounds the "<pm> --version" probes.
const detectTimeout = 5 * time.Second

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show sitekit version information.

Displays:
  - sitekit version, commit, and build date
  - package managers found in PATH and whether they are supported`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			w := c.OutOrStdout()
			fmt.Fprintln(w, version.Get().String())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Package managers:")

			ctx, cancel := context.WithTimeout(c.Context(), detectTimeout)
			defer cancel()
			for _, name := range installer.SupportedPackageManagers() {
				fmt.Fprintln(w, formatManager(installer.Detect(ctx, name)))
			}
			return nil
		},
	}
}

func formatManager(info installer.Info, err error) string {
	if err != nil {
		return fmt.Sprintf("  %-6s not found", info.Name)
	}
	status := "compatible"
	if !info.Compatible {
		status = info.Message
	}
	v := "unknown"
	if info.Version != "" {
		v = info.Version
	}
	return fmt.Sprintf("  %-6s %s (%s)  %s", info.Name, v, status, info.Path)
}
