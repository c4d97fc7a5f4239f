package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	oerrors "github.com/sitekit/cli/internal/errors"
	"github.com/sitekit/cli/internal/output"
	"github.com/sitekit/cli/internal/scaffold"
	"github.com/sitekit/cli/internal/templates"
)

// ReportOutcome prints the result of a create run and converts failures into
// an *ExitError carrying the exit code.
func ReportOutcome(stdout, stderr io.Writer, outcome scaffold.Outcome, packageManager string) error {
	switch outcome.Kind {
	case scaffold.Success:
		WriteSuccess(stdout, outcome.Project, packageManager)
		return nil

	case scaffold.UserCancelled:
		if outcome.Err != nil {
			output.Warn("create cancelled", "reason", outcome.Err)
		}
		output.Debug("create cancelled by user")
		return nil

	case scaffold.ValidationFailed:
		return &oerrors.ExitError{Code: outcome.ExitCode(), Err: outcome.Err}

	default:
		stage := "generate"
		if outcome.Kind == scaffold.InstallFailed {
			stage = "install"
		}
		fmt.Fprintln(stderr, output.FormatStageLine(stage, output.StatusFailed))
		if outcome.CleanedUp && outcome.Project != nil {
			fmt.Fprintln(stderr, output.FormatStageLine("cleanup", output.StatusRolledBack))
			output.Debug("project directory removed", "path", outcome.Project.Path)
		}
		PrintSchemaIssues(stderr, outcome.Err)
		return &oerrors.ExitError{Code: outcome.ExitCode(), Err: outcome.Err}
	}
}

// PrintSchemaIssues lists package.json schema violations one per line when
// err carries a *templates.SchemaError.
func PrintSchemaIssues(w io.Writer, err error) {
	var schemaErr *templates.SchemaError
	if !errors.As(err, &schemaErr) {
		return
	}
	for _, issue := range schemaErr.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

// WriteSuccess prints the created file tree and the follow-up commands.
func WriteSuccess(w io.Writer, project *scaffold.Project, packageManager string) {
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created %s project %s in %s",
		project.Archetype,
		output.StyleNoun.Render(project.Name),
		project.Path)))
	fmt.Fprintln(w)
	fmt.Fprint(w, output.RenderFileTree(project.Name, templates.Descriptions(project.Files)))
	fmt.Fprintln(w)

	install := output.StatusDone
	if project.InstallSkipped {
		install = output.StatusSkipped
	}
	fmt.Fprintln(w, output.FormatStageLine("install", install))
	fmt.Fprintln(w)

	fmt.Fprintln(w, output.StyleSummary.Render("Next steps:"))
	fmt.Fprintf(w, "  cd %s\n", shellArg(project.Dir, project.Path))
	if project.InstallSkipped {
		fmt.Fprintf(w, "  %s install\n", packageManager)
	}
	fmt.Fprintf(w, "  %s run dev\n", packageManager)
}

// shellArg returns dir, or fallback when dir is empty, quoted when it
// contains whitespace or quotes.
func shellArg(dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if strings.ContainsAny(dir, " \t'\"") {
		return strconv.Quote(dir)
	}
	return dir
}
