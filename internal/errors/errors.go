// Package errors provides sentinel errors and exit-code carrying errors for the sitekit CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes returned by the sitekit binary.
const (
	// ExitSuccess indicates the command completed successfully, or the user
	// declined the confirmation prompt.
	ExitSuccess = 0

	// ExitGeneralError indicates a failure at or after directory allocation.
	ExitGeneralError = 1

	// ExitValidationError indicates the request was rejected before any
	// file-system mutation.
	ExitValidationError = 2
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates an unsupported archetype or template variant.
	ErrValidation = errors.New("validation error")

	// ErrAlreadyExists indicates the target path exists before allocation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrGeneration indicates the project files could not be written.
	ErrGeneration = errors.New("generation failed")

	// ErrInstall indicates the package installer failed or could not start.
	ErrInstall = errors.New("install failed")
)

// ExitError wraps an error with the process exit code main should use.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is set when the command already reported the error to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the exit code for an error returned by a command.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, ErrValidation) {
		return ExitValidationError
	}
	return ExitGeneralError
}

// DetailError captures structured, user-facing error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the path the error refers to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, hint string) error {
	return &DetailError{
		Type:    "validation failed",
		Message: message,
		Hint:    hint,
		Cause:   ErrValidation,
	}
}

// NewAlreadyExistsError reports a pre-existing target path. The error
// matches both ErrAlreadyExists and ErrGeneration.
func NewAlreadyExistsError(path string) error {
	return &DetailError{
		Type:     "generation failed",
		Message:  fmt.Sprintf("directory already exists: %s", path),
		Location: path,
		Hint:     "Choose a different name or remove the existing directory.",
		Cause:    fmt.Errorf("%w: %w", ErrAlreadyExists, ErrGeneration),
	}
}

// NewGenerationError reports a failure while writing the project at path.
// The error matches ErrGeneration and err.
func NewGenerationError(path string, err error) error {
	return &DetailError{
		Type:     "generation failed",
		Message:  err.Error(),
		Location: path,
		Cause:    fmt.Errorf("%w: %w", ErrGeneration, err),
	}
}

// NewInstallError reports a failed dependency install for the project at
// path. The error matches ErrInstall and err.
func NewInstallError(path string, err error) error {
	return &DetailError{
		Type:     "install failed",
		Message:  err.Error(),
		Location: path,
		Hint:     "Check the package manager output above, or rerun with --skip-install and install manually.",
		Cause:    fmt.Errorf("%w: %w", ErrInstall, err),
	}
}
