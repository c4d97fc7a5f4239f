// Package scaffold implements the sitekit create pipeline: validate the
// request, confirm, allocate the project directory, generate files and
// install dependencies, rolling back on any failure after allocation.
package scaffold

import (
	"context"

	oerrors "github.com/sitekit/cli/internal/errors"
)

// State is a pipeline stage.
type State int

const (
	Idle State = iota
	Validating
	Confirming
	Allocating
	Generating
	Installing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Confirming:
		return "confirming"
	case Allocating:
		return "allocating"
	case Generating:
		return "generating"
	case Installing:
		return "installing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies how a run ended.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	ValidationFailed
	UserCancelled
	GenerationFailed
	InstallFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case ValidationFailed:
		return "validation failed"
	case UserCancelled:
		return "cancelled"
	case GenerationFailed:
		return "generation failed"
	case InstallFailed:
		return "install failed"
	default:
		return "unknown"
	}
}

// Options tune a single run.
type Options struct {
	// AssumeYes skips the confirmation prompt.
	AssumeYes bool

	// Template selects the archetype variant. Empty selects the default.
	Template string

	// SkipInstall skips the dependency install stage.
	SkipInstall bool
}

// Request is the user's intent for one run.
type Request struct {
	// Archetype is the requested archetype id, matched case-insensitively.
	Archetype string

	// Name is the project name. Empty selects the archetype default.
	Name string

	// Options tune the run.
	Options Options

	// WorkDir is the directory the project is created in. Empty means the
	// process working directory.
	WorkDir string
}

// Project is the resolved target of a run.
type Project struct {
	// Name is the resolved project name.
	Name string

	// Path is the absolute project directory.
	Path string

	// Dir is Path relative to the work directory, or Path itself when the
	// project lies outside it.
	Dir string

	// Archetype is the canonical archetype id.
	Archetype string

	// Template is the resolved variant.
	Template string

	// Files lists the relative paths written, in order.
	Files []string

	// InstallSkipped is set when the install stage did not run.
	InstallSkipped bool
}

// Outcome is the terminal result of a run.
type Outcome struct {
	Kind    OutcomeKind
	Project *Project

	// Err describes the failure. It is nil on success and on a plain decline.
	Err error

	// CleanedUp is set when a directory created by the run was removed.
	CleanedUp bool
}

// ExitCode maps the outcome to a process exit code.
func (o Outcome) ExitCode() int {
	switch o.Kind {
	case Success, UserCancelled:
		return oerrors.ExitSuccess
	case ValidationFailed:
		return oerrors.ExitValidationError
	default:
		return oerrors.ExitGeneralError
	}
}

// Confirmer asks the user a yes/no question. Confirm returns ctx.Err() if
// ctx is cancelled before an answer arrives.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Installer installs dependencies inside a project directory.
type Installer interface {
	Install(ctx context.Context, dir string) error
}
