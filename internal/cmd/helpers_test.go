package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// runSitekit executes the root command inside a fresh working directory with
// an isolated config file.
func runSitekit(t *testing.T, workDir, stdin string, args ...string) cmdResult {
	t.Helper()

	t.Chdir(workDir)
	t.Setenv("SITEKIT_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("SITEKIT_PACKAGE_MANAGER", "")

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
