package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/sitekit/cli/internal/errors"
	"github.com/sitekit/cli/internal/testutil"
)

func exitCode(t *testing.T, err error) int {
	t.Helper()
	return oerrors.ExitCodeFromError(err)
}

func readPackageJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestNewCreateCmd(t *testing.T) {
	c := NewCreateCmd(nil)

	assert.Equal(t, "create <archetype> [name]", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.Contains(t, c.Long, "landingpage, portfolio, blog")

	for _, name := range []string{"template", "yes", "skip-install", "package-manager"} {
		assert.NotNil(t, c.Flags().Lookup(name), name)
	}
	assert.Equal(t, "y", c.Flags().Lookup("yes").Shorthand)
	assert.Equal(t, "t", c.Flags().Lookup("template").Shorthand)
}

func TestCreate_Args(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "accepts between 1 and 2 arg(s)")

	res = runSitekit(t, dir, "", "create", "blog", "a", "b")
	require.Error(t, res.err)
}

func TestCreate_LandingPageDefaultName(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "landingpage", "--yes", "--skip-install")
	require.NoError(t, res.err, "stderr: %s", res.stderr)

	manifest := readPackageJSON(t, filepath.Join(dir, "my-landing-page", "package.json"))
	deps, ok := manifest["dependencies"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, deps, "react")

	assert.Contains(t, res.stdout, "Created landingpage project")
	assert.Contains(t, res.stdout, "package.json")
	assert.Contains(t, res.stdout, "Next steps:")
	assert.Contains(t, res.stdout, "cd my-landing-page")
	assert.Contains(t, res.stdout, "npm install")
	assert.Contains(t, res.stdout, "npm run dev")
}

func TestCreate_BlogNamed(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "blog", "my-diary", "-y", "--skip-install")
	require.NoError(t, res.err, "stderr: %s", res.stderr)

	manifest := readPackageJSON(t, filepath.Join(dir, "my-diary", "package.json"))
	assert.Equal(t, "my-diary", manifest["name"])
	assert.FileExists(t, filepath.Join(dir, "my-diary", "content", "posts", "hello-world.md"))
	assert.FileExists(t, filepath.Join(dir, "my-diary", ".gitignore"))
}

func TestCreate_NestedNameNextSteps(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "blog", "sites/journal", "-y", "--skip-install")
	require.NoError(t, res.err, "stderr: %s", res.stderr)

	assert.DirExists(t, filepath.Join(dir, "sites", "journal"))
	assert.Contains(t, res.stdout, "cd "+filepath.Join("sites", "journal")+"\n")
}

func TestCreate_CaseInsensitiveArchetype(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "PortFolio", "--yes", "--skip-install")
	require.NoError(t, res.err, "stderr: %s", res.stderr)
	assert.DirExists(t, filepath.Join(dir, "my-portfolio"))
}

func TestCreate_Declined(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "nope\n", ""} {
		t.Run(answer, func(t *testing.T) {
			dir := t.TempDir()

			res := runSitekit(t, dir, answer, "create", "portfolio", "--skip-install")
			require.NoError(t, res.err)
			assert.Equal(t, 0, exitCode(t, res.err))
			assert.Contains(t, res.stderr, "[y/N]")
			assert.NoDirExists(t, filepath.Join(dir, "my-portfolio"))
		})
	}
}

func TestCreate_Confirmed(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "YES\n", "create", "portfolio", "--skip-install")
	require.NoError(t, res.err, "stderr: %s", res.stderr)
	assert.Contains(t, res.stderr, "my-portfolio")
	assert.FileExists(t, filepath.Join(dir, "my-portfolio", "package.json"))
}

func TestCreate_UnknownArchetype(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "unknownarchetype", "--yes")
	require.Error(t, res.err)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(res.err, &exitErr))
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
	assert.Contains(t, res.err.Error(), "landingpage, portfolio, blog")
	assert.Equal(t, map[string]string{".": "<dir>"}, testutil.DirTree(t, dir))
}

func TestCreate_UnknownTemplate(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "blog", "--yes", "--template", "bootstrap")
	require.Error(t, res.err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, res.err))
	assert.NoDirExists(t, filepath.Join(dir, "my-blog"))
}

func TestCreate_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing-dir")
	testutil.WriteFile(t, existing, "notes.md", "keep me")
	testutil.WriteFile(t, existing, "src/main.ts", "x")
	before := testutil.DirTree(t, existing)

	res := runSitekit(t, dir, "", "create", "blog", "existing-dir", "--yes", "--skip-install")
	require.Error(t, res.err)
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(t, res.err))
	assert.ErrorIs(t, res.err, oerrors.ErrAlreadyExists)
	assert.Equal(t, before, testutil.DirTree(t, existing))
	assert.NotContains(t, res.stderr, "rolled back")
}

func TestCreate_InstallSuccess(t *testing.T) {
	testutil.InstallFakeManager(t, "npm", "10.2.4", `mkdir -p node_modules && echo ok > node_modules/.installed`)
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "blog", "--yes")
	require.NoError(t, res.err, "stderr: %s", res.stderr)

	assert.FileExists(t, filepath.Join(dir, "my-blog", "node_modules", ".installed"))
	assert.NotContains(t, res.stdout, "npm install")
	assert.Contains(t, res.stdout, "npm run dev")
}

func TestCreate_InstallFailureRollsBack(t *testing.T) {
	testutil.InstallFakeManager(t, "pnpm", "8.15.0", `echo "ERR_PNPM_FETCH_404" >&2
exit 1`)
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "landingpage", "site", "--yes", "--package-manager", "pnpm")
	require.Error(t, res.err)

	assert.Equal(t, oerrors.ExitGeneralError, exitCode(t, res.err))
	assert.ErrorIs(t, res.err, oerrors.ErrInstall)
	assert.Contains(t, res.err.Error(), "ERR_PNPM_FETCH_404")
	assert.Contains(t, res.stderr, "rolled back")
	assert.NoDirExists(t, filepath.Join(dir, "site"))
}

func TestCreate_PackageManagerFromEnv(t *testing.T) {
	testutil.InstallFakeManager(t, "yarn", "1.22.19", `touch yarn-ran`)
	dir := t.TempDir()

	t.Chdir(dir)
	t.Setenv("SITEKIT_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("SITEKIT_PACKAGE_MANAGER", "yarn")

	root := NewRootCmd()
	root.SetArgs([]string{"create", "portfolio", "--yes"})
	root.SetOut(&discard{})
	root.SetErr(&discard{})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(dir, "my-portfolio", "yarn-ran"))
}

func TestCreate_UnsupportedPackageManager(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "blog", "--yes", "--package-manager", "pip")
	require.Error(t, res.err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, res.err))
	assert.Contains(t, res.err.Error(), "unsupported package manager")
	assert.NoDirExists(t, filepath.Join(dir, "my-blog"))
}

func TestCreate_Tailwind(t *testing.T) {
	dir := t.TempDir()

	res := runSitekit(t, dir, "", "create", "landingpage", "--yes", "--skip-install", "-t", "tailwind")
	require.NoError(t, res.err, "stderr: %s", res.stderr)

	assert.FileExists(t, filepath.Join(dir, "my-landing-page", "tailwind.config.js"))
	manifest := readPackageJSON(t, filepath.Join(dir, "my-landing-page", "package.json"))
	devDeps, ok := manifest["devDependencies"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, devDeps, "tailwindcss")
}

func TestCreate_SkipInstallFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := testutil.WriteFile(t, t.TempDir(), "config.yaml", "install:\n  skip: true\n")

	// No package manager on PATH is needed when install is skipped.
	t.Setenv("PATH", t.TempDir())

	t.Chdir(dir)
	root := NewRootCmd()
	root.SetArgs([]string{"--config", cfgFile, "create", "blog", "--yes"})
	root.SetOut(&discard{})
	root.SetErr(&discard{})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(dir, "my-blog", "package.json"))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
