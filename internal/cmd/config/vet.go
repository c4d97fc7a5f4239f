package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitekit/cli/internal/config"
	oerrors "github.com/sitekit/cli/internal/errors"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the sitekit configuration file",
		Long: `Validate the sitekit configuration file.

Checks that the file parses, that install.packageManager is supported and that
install.timeout is a positive duration. The file at ~/.sitekit/config.yaml is
checked by default. Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *config.GlobalConfig) error {
	path, err := configPath(cfg)
	if err != nil {
		return err
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err:  fmt.Errorf("config file not found: %s (run 'sitekit config init')", path),
		}
	}

	loaded, _, err := config.NewLoader().Load(config.LoaderOptions{ConfigFile: path})
	if err != nil {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err:  oerrors.NewValidationError(err.Error(), "Check the YAML syntax of "+path),
		}
	}

	if err := config.Validate(loaded); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			stderr := c.ErrOrStderr()
			fmt.Fprintln(stderr, "Error: config validation failed")
			fmt.Fprintf(stderr, "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(stderr, "  %s: %s\n", e.Field, e.Message)
			}
			return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}
