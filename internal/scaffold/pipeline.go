package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/sitekit/cli/internal/errors"
	"github.com/sitekit/cli/internal/output"
	"github.com/sitekit/cli/internal/templates"
)

// Pipeline runs create requests. The zero value is not usable; Fs and
// Registry must be set. Confirmer may be nil when every request sets
// AssumeYes, and Installer may be nil when every request sets SkipInstall.
type Pipeline struct {
	// Fs is where projects are created.
	Fs afero.Fs

	// Registry resolves archetypes.
	Registry *templates.Registry

	// Confirmer asks before anything is written.
	Confirmer Confirmer

	// Installer runs the package manager in the new project.
	Installer Installer

	// PackageManager is the manager named in generated instructions.
	PackageManager string

	// OnTransition, if set, is called for every state change.
	OnTransition func(from, to State)

	state State
}

// New creates a pipeline over the OS file system and the built-in registry.
func New(confirmer Confirmer, installer Installer, packageManager string) *Pipeline {
	return &Pipeline{
		Fs:             afero.NewOsFs(),
		Registry:       templates.Default(),
		Confirmer:      confirmer,
		Installer:      installer,
		PackageManager: packageManager,
	}
}

// Run executes one request to completion. It never panics on user input and
// always leaves the pipeline in the Done state. Failures after the project
// directory was created remove that directory before returning.
func (p *Pipeline) Run(ctx context.Context, req Request) Outcome {
	p.state = Idle
	p.transition(Validating)

	// Phase 1: VALIDATE archetype and template, resolve name and path.
	desc, ok := p.Registry.Lookup(req.Archetype)
	if !ok {
		return p.finish(Outcome{
			Kind: ValidationFailed,
			Err: oerrors.NewValidationError(
				fmt.Sprintf("unsupported archetype %q; supported archetypes: %s",
					req.Archetype, strings.Join(p.Registry.IDs(), ", ")),
				"Run 'sitekit templates' to see what each archetype generates.",
			),
		})
	}

	variant, err := desc.ResolveVariant(req.Options.Template)
	if err != nil {
		return p.finish(Outcome{
			Kind: ValidationFailed,
			Err: oerrors.NewValidationError(err.Error(),
				"Run 'sitekit templates' to list the templates of each archetype."),
		})
	}

	name := ResolveName(req.Name, desc)
	path, err := resolvePath(req.WorkDir, name)
	if err != nil {
		return p.finish(Outcome{
			Kind: ValidationFailed,
			Err:  oerrors.NewValidationError(err.Error(), ""),
		})
	}

	project := &Project{
		Name:      name,
		Path:      path,
		Dir:       relativeDir(req.WorkDir, path),
		Archetype: desc.ID,
		Template:  variant,
	}
	projLog := output.ProjectLogger(name)

	// Phase 2: CONFIRM before any file-system mutation.
	p.transition(Confirming)
	if !req.Options.AssumeYes {
		if p.Confirmer == nil {
			return p.finish(Outcome{
				Kind:    UserCancelled,
				Project: project,
				Err:     fmt.Errorf("confirmation required: rerun with --yes to skip the prompt"),
			})
		}
		prompt := fmt.Sprintf("Create %s project %q in %s?", desc.ID, name, path)
		confirmed, err := p.Confirmer.Confirm(ctx, prompt)
		if err != nil {
			return p.finish(Outcome{Kind: UserCancelled, Project: project, Err: err})
		}
		if !confirmed {
			return p.finish(Outcome{Kind: UserCancelled, Project: project})
		}
	}
	if err := ctx.Err(); err != nil {
		return p.finish(Outcome{Kind: UserCancelled, Project: project, Err: err})
	}

	// Phase 3: ALLOCATE the project directory. From here on every failure
	// rolls back what this run created.
	p.transition(Allocating)
	root, err := Allocate(p.Fs, path)
	if err != nil {
		if !errors.Is(err, oerrors.ErrAlreadyExists) {
			err = oerrors.NewGenerationError(path, err)
		}
		out := Outcome{Kind: GenerationFailed, Project: project, Err: err}
		if root == "" {
			return p.finish(out)
		}
		return p.finish(p.rollback(out, root))
	}
	projLog.Debug("directory created", "path", path)

	// Phase 4: GENERATE the archetype's files.
	p.transition(Generating)
	files, err := desc.Generate(name, templates.Options{
		Variant:        variant,
		PackageManager: p.PackageManager,
	})
	if err == nil {
		project.Files, err = templates.Write(p.Fs, path, files)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return p.finish(p.rollback(Outcome{
			Kind:    GenerationFailed,
			Project: project,
			Err:     oerrors.NewGenerationError(path, err),
		}, root))
	}
	projLog.Debug("files generated", "count", len(project.Files))

	// Phase 5: INSTALL dependencies.
	p.transition(Installing)
	if req.Options.SkipInstall || p.Installer == nil {
		project.InstallSkipped = true
		projLog.Debug("install skipped")
		return p.finish(Outcome{Kind: Success, Project: project})
	}
	if err := p.Installer.Install(ctx, path); err != nil {
		return p.finish(p.rollback(Outcome{
			Kind:    InstallFailed,
			Project: project,
			Err:     oerrors.NewInstallError(path, err),
		}, root))
	}

	return p.finish(Outcome{Kind: Success, Project: project})
}

// State returns the current state. After Run returns it is Done.
func (p *Pipeline) State() State {
	return p.state
}

// rollback removes root and records the result on the outcome. The outcome
// kind never changes; a cleanup failure is joined to the original error.
func (p *Pipeline) rollback(out Outcome, root string) Outcome {
	if err := Cleanup(p.Fs, root); err != nil {
		output.Warn("cleanup failed", "path", root, "err", err)
		out.Err = fmt.Errorf("%w (cleanup of %s also failed: %v)", out.Err, root, err)
		return out
	}
	output.Debug("rolled back", "path", root)
	out.CleanedUp = true
	return out
}

func (p *Pipeline) finish(out Outcome) Outcome {
	output.Debug("pipeline finished", "outcome", out.Kind.String())
	p.transition(Done)
	return out
}

func (p *Pipeline) transition(to State) {
	from := p.state
	p.state = to
	output.Debug("state", "from", from.String(), "to", to.String())
	if p.OnTransition != nil {
		p.OnTransition(from, to)
	}
}

// resolvePath joins the project name onto the work directory and makes it
// absolute.
func resolvePath(workDir, name string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		workDir = wd
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	path, err := filepath.Abs(filepath.Join(workDir, name))
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}
	return path, nil
}

// relativeDir returns path relative to workDir, or path unchanged when it is
// not below workDir.
func relativeDir(workDir, path string) string {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return path
		}
		workDir = wd
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
