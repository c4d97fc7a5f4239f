package scaffold

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/cli/internal/templates"
)

const workDir = "/work"

var errInjected = errors.New("injected failure")

// failingFs fails every file creation after the first failAfter.
type failingFs struct {
	afero.Fs
	failAfter int
	creates   int
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&os.O_CREATE != 0 {
		f.creates++
		if f.creates > f.failAfter {
			return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
		}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

// cancellingFs cancels a context on the first file creation, simulating
// Ctrl-C while files are written.
type cancellingFs struct {
	afero.Fs
	cancel context.CancelFunc
}

func (c *cancellingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&os.O_CREATE != 0 {
		c.cancel()
	}
	return c.Fs.OpenFile(name, flag, perm)
}

// racingFs loses the final Mkdir of target to a concurrent run. With
// winnerWrites set the winner's directory is really there afterwards.
type racingFs struct {
	afero.Fs
	target       string
	winnerWrites bool
}

func (r *racingFs) Mkdir(name string, perm os.FileMode) error {
	if name != r.target {
		return r.Fs.Mkdir(name, perm)
	}
	if r.winnerWrites {
		if err := r.Fs.Mkdir(name, perm); err != nil {
			return err
		}
	}
	return &os.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
}

// stuckFs cannot remove anything.
type stuckFs struct {
	afero.Fs
}

func (s stuckFs) RemoveAll(path string) error {
	return &os.PathError{Op: "removeall", Path: path, Err: errInjected}
}

type fakeConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (c *fakeConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, c.err
}

// waitingConfirmer never answers; it returns once ctx is done.
type waitingConfirmer struct{}

func (waitingConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

type fakeInstaller struct {
	fs  afero.Fs
	err error

	dirs []string
	// sawManifest records whether package.json existed when Install ran.
	sawManifest bool
}

func (i *fakeInstaller) Install(ctx context.Context, dir string) error {
	i.dirs = append(i.dirs, dir)
	if i.fs != nil {
		ok, _ := afero.Exists(i.fs, filepath.Join(dir, "package.json"))
		i.sawManifest = ok
	}
	if i.err != nil {
		return i.err
	}
	return ctx.Err()
}

func newTestPipeline(fsys afero.Fs, c Confirmer, i Installer) *Pipeline {
	return &Pipeline{
		Fs:             fsys,
		Registry:       templates.Default(),
		Confirmer:      c,
		Installer:      i,
		PackageManager: "npm",
	}
}

func newWorkFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(workDir, 0o755))
	return fsys
}

// snapshot captures every path and file content under root.
func snapshot(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()
	snap := make(map[string]string)
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			snap[path] = "<dir>"
			return nil
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		snap[path] = string(data)
		return nil
	})
	require.NoError(t, err)
	return snap
}

func dirExists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.DirExists(fsys, path)
	require.NoError(t, err)
	return ok
}
