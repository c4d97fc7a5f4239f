package cmdutil

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sitekit/cli/internal/config"
	oerrors "github.com/sitekit/cli/internal/errors"
	"github.com/sitekit/cli/internal/installer"
	"github.com/sitekit/cli/internal/output"
)

// InstallerOpts holds the inputs for NewInstaller.
type InstallerOpts struct {
	// Flags are the install flags from the command line.
	Flags InstallFlags
	// Config is the loaded configuration; defaults apply when nil.
	Config *config.Config
}

// SpinnerInstaller runs the package manager under a spinner when attached
// to a terminal.
type SpinnerInstaller struct {
	Runner *installer.Runner
	Title  string
}

// Install implements scaffold.Installer.
func (s *SpinnerInstaller) Install(ctx context.Context, dir string) error {
	if !output.IsTTY() {
		output.Info(s.Title)
	}
	return output.RunWithSpinner(ctx, func(ctx context.Context) error {
		return s.Runner.Install(ctx, dir)
	}, output.WithTitle(s.Title))
}

// NewInstaller resolves the package manager and install timeout and returns
// the installer for the create command. Invalid settings are returned as an
// *ExitError with ExitValidationError.
func NewInstaller(opts InstallerOpts) (*SpinnerInstaller, config.ResolvedValue, error) {
	conf := opts.Config
	if conf == nil {
		conf = config.DefaultConfig()
	}

	pm := config.ResolvePackageManager(config.ResolvePackageManagerOptions{
		FlagValue:   opts.Flags.PackageManager,
		ConfigValue: conf.Install.PackageManager,
	})
	config.LogResolvedValues(pm)

	supported := installer.SupportedPackageManagers()
	if !slices.Contains(supported, pm.Value) {
		return nil, pm, &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: oerrors.NewValidationError(
				fmt.Sprintf("unsupported package manager %q (from %s)", pm.Value, pm.Source),
				fmt.Sprintf("Supported package managers: %s", strings.Join(supported, ", ")),
			),
		}
	}

	timeout, err := conf.InstallTimeout()
	if err != nil {
		return nil, pm, &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err:  oerrors.NewValidationError(err.Error(), "Set install.timeout to a Go duration such as 10m."),
		}
	}

	return &SpinnerInstaller{
		Runner: installer.NewRunner(pm.Value, conf.Install.Args, timeout),
		Title:  fmt.Sprintf("Installing dependencies with %s...", pm.Value),
	}, pm, nil
}
