// Package installer runs the project's package manager to install the
// dependencies declared by a generated manifest.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sitekit/cli/internal/output"
)

// waitDelay bounds how long Install waits for output pipes after the
// process is killed; install scripts often leave grandchildren behind.
const waitDelay = 2 * time.Second

// maxDiagnosticLines caps the captured output quoted in Error messages.
const maxDiagnosticLines = 20

// Runner invokes "<PackageManager> install [Args...]" in a project directory.
// The subprocess output is captured, never streamed.
type Runner struct {
	// PackageManager is the binary name. Empty means npm.
	PackageManager string

	// Args are appended after "install".
	Args []string

	// Timeout bounds the whole install. Zero means no timeout.
	Timeout time.Duration
}

// Error reports a failed install together with the captured diagnostics.
type Error struct {
	// Command is the command line that was run.
	Command string

	// Dir is the working directory of the command.
	Dir string

	// ExitCode is the process exit code, or -1 if it never exited normally.
	ExitCode int

	// Output is the captured stdout and stderr.
	Output string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s", e.Command, e.Dir)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " exited with code %d", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if diag := tail(e.Output, maxDiagnosticLines); diag != "" {
		b.WriteString("\n")
		b.WriteString(diag)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewRunner creates a runner for the given package manager.
func NewRunner(packageManager string, args []string, timeout time.Duration) *Runner {
	return &Runner{PackageManager: packageManager, Args: args, Timeout: timeout}
}

func (r *Runner) binary() string {
	if r.PackageManager != "" {
		return r.PackageManager
	}
	return "npm"
}

// Install runs the package manager in dir and blocks until it exits, the
// timeout elapses or ctx is cancelled.
func (r *Runner) Install(ctx context.Context, dir string) error {
	name := r.binary()
	args := append([]string{"install"}, r.Args...)
	commandLine := strings.Join(append([]string{name}, args...), " ")

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	info, err := Detect(ctx, name)
	if err != nil {
		return &Error{Command: commandLine, Dir: dir, ExitCode: -1, Err: err}
	}
	if !info.Compatible {
		output.Warn("package manager may be too old",
			"name", info.Name,
			"version", info.Version,
			"message", info.Message,
		)
	}

	output.Debug("running installer", "command", commandLine, "dir", dir, "binary", info.Path)

	cmd := exec.CommandContext(ctx, info.Path, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	runErr := cmd.Run()
	output.Debug("installer finished", "command", commandLine, "elapsed", time.Since(start).Round(time.Millisecond))

	if runErr == nil {
		return nil
	}

	instErr := &Error{
		Command:  commandLine,
		Dir:      dir,
		ExitCode: -1,
		Output:   out.String(),
		Err:      runErr,
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			instErr.Err = fmt.Errorf("timed out after %s: %w", r.Timeout, ctxErr)
		} else {
			instErr.Err = ctxErr
		}
		return instErr
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		instErr.ExitCode = exitErr.ExitCode()
	}
	return instErr
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}
