package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sitekit/cli/internal/cmdutil"
	"github.com/sitekit/cli/internal/config"
	oerrors "github.com/sitekit/cli/internal/errors"
	"github.com/sitekit/cli/internal/output"
	"github.com/sitekit/cli/internal/scaffold"
	"github.com/sitekit/cli/internal/templates"
)

type createFlags struct {
	scaffold cmdutil.ScaffoldFlags
	install  cmdutil.InstallFlags
}

// NewCreateCmd creates the create command.
func NewCreateCmd(cfg *config.GlobalConfig) *cobra.Command {
	var flags createFlags

	c := &cobra.Command{
		Use:   "create <archetype> [name]",
		Short: "Create a new website project",
		Long: fmt.Sprintf(`Create a new website project from an archetype.

The project is created in ./<name>. When no name is given the archetype's
default name is used. The target directory must not exist. If writing files
or installing dependencies fails, the directory is removed again.

Archetypes: %s

Examples:
  # Landing page in ./my-landing-page, asking for confirmation first
  sitekit create landingpage

  # Blog in ./my-diary without prompting
  sitekit create blog my-diary --yes

  # Portfolio styled with Tailwind CSS, installed with pnpm
  sitekit create portfolio --template tailwind --package-manager pnpm

  # Generate files only
  sitekit create blog --yes --skip-install`, strings.Join(templates.IDs(), ", ")),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			return runCreate(c, args, cfg, flags)
		},
	}

	flags.scaffold.AddTo(c)
	flags.install.AddTo(c)

	return c
}

func runCreate(c *cobra.Command, args []string, cfg *config.GlobalConfig, flags createFlags) error {
	conf := cfg.Config
	if conf == nil {
		conf = config.DefaultConfig()
	}

	inst, pm, err := cmdutil.NewInstaller(cmdutil.InstallerOpts{Flags: flags.install, Config: conf})
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err:  fmt.Errorf("getting working directory: %w", err),
		}
	}

	archetype, name := cmdutil.ResolveProjectArgs(args)
	req := scaffold.Request{
		Archetype: archetype,
		Name:      name,
		Options: scaffold.Options{
			AssumeYes:   flags.scaffold.Yes,
			Template:    flags.scaffold.Template,
			SkipInstall: flags.install.Skip || conf.Install.Skip,
		},
		WorkDir: workDir,
	}

	// Ctrl-C during the run cancels the install and triggers rollback.
	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	confirmer := &output.PromptConfirmer{In: c.InOrStdin(), Out: c.ErrOrStderr()}
	outcome := scaffold.New(confirmer, inst, pm.Value).Run(ctx, req)

	return cmdutil.ReportOutcome(c.OutOrStdout(), c.ErrOrStderr(), outcome, pm.Value)
}
