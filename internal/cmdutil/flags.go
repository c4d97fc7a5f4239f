// Package cmdutil provides shared command utilities for the create command.
// It centralizes flag group management, installer construction and outcome
// reporting.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitekit/cli/internal/installer"
	"github.com/sitekit/cli/internal/templates"
)

// ScaffoldFlags holds flags that shape the generated project.
type ScaffoldFlags struct {
	Template string
	Yes      bool
}

// AddTo registers the scaffold flags on the given cobra command.
func (f *ScaffoldFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Template, "template", "t", "",
		fmt.Sprintf("Template variant (%s); defaults to the archetype's first variant",
			strings.Join([]string{templates.VariantDefault, templates.VariantTailwind}, ", ")))
	cmd.Flags().BoolVarP(&f.Yes, "yes", "y", false,
		"Skip the confirmation prompt")
}

// InstallFlags holds flags for the dependency install stage.
type InstallFlags struct {
	Skip           bool
	PackageManager string
}

// AddTo registers the install flags on the given cobra command.
func (f *InstallFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.Skip, "skip-install", false,
		"Do not install dependencies (env: SITEKIT_INSTALL_SKIP)")
	cmd.Flags().StringVar(&f.PackageManager, "package-manager", "",
		fmt.Sprintf("Package manager to install with (%s) (env: SITEKIT_PACKAGE_MANAGER)",
			strings.Join(installer.SupportedPackageManagers(), ", ")))
}

// ResolveProjectArgs splits create's positional arguments into the archetype
// and the optional project name.
func ResolveProjectArgs(args []string) (archetype, name string) {
	if len(args) > 0 {
		archetype = args[0]
	}
	if len(args) > 1 {
		name = args[1]
	}
	return archetype, name
}
