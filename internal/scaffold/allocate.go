package scaffold

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/sitekit/cli/internal/errors"
	"github.com/sitekit/cli/internal/templates"
)

// ResolveName returns name, or the archetype's default name when name is
// empty. A supplied name is used unchanged.
func ResolveName(name string, d templates.Descriptor) string {
	if name == "" {
		return d.DefaultName
	}
	return name
}

// Allocate creates the directory at path, along with any missing parents.
// It fails with an error matching ErrAlreadyExists if path exists, and never
// touches an existing path. The returned root is the topmost directory the
// call created, which is what a rollback must remove.
func Allocate(fsys afero.Fs, path string) (root string, err error) {
	if _, err := fsys.Stat(path); err == nil {
		return "", oerrors.NewAlreadyExistsError(path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	root = path
	for parent := filepath.Dir(root); parent != root; parent = filepath.Dir(root) {
		if _, err := fsys.Stat(parent); err == nil {
			break
		}
		root = parent
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return root, err
	}
	// Mkdir on the last element fails if a concurrent run got there first.
	if err := fsys.Mkdir(path, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) || os.IsExist(err) {
			removeEmptyParents(fsys, path, root)
			return "", oerrors.NewAlreadyExistsError(path)
		}
		return root, err
	}
	return root, nil
}

// removeEmptyParents removes the parents of path up to and including root
// that MkdirAll created, stopping at the first one that is not empty. A
// concurrent run may own them too, so only empty directories go.
func removeEmptyParents(fsys afero.Fs, path, root string) {
	if root == path {
		return
	}
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		empty, err := afero.IsEmpty(fsys, dir)
		if err != nil || !empty || fsys.Remove(dir) != nil {
			return
		}
		if dir == root {
			return
		}
	}
}

// Cleanup removes path and everything below it. A missing path is not an
// error.
func Cleanup(fsys afero.Fs, path string) error {
	if path == "" {
		return nil
	}
	return fsys.RemoveAll(path)
}
