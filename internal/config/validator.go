package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sitekit/cli/internal/installer"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a loaded configuration. It returns ValidationErrors when
// one or more fields are invalid.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	pm := cfg.Install.PackageManager
	if pm != "" && !slices.Contains(installer.SupportedPackageManagers(), pm) {
		errs = append(errs, ValidationError{
			Field:   "install.packageManager",
			Message: fmt.Sprintf("unsupported package manager %q (supported: %s)",
				pm, strings.Join(installer.SupportedPackageManagers(), ", ")),
		})
	}

	if d, err := cfg.InstallTimeout(); err != nil {
		errs = append(errs, ValidationError{Field: "install.timeout", Message: err.Error()})
	} else if d <= 0 {
		errs = append(errs, ValidationError{Field: "install.timeout", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
