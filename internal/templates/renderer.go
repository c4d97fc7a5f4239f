package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

const (
	tmplSuffix    = ".tmpl"
	partialPrefix = "_"
)

// dotfiles are stored without their leading dot so they survive embedding
// and tooling that ignores hidden files.
var dotfiles = map[string]string{
	"gitignore": ".gitignore",
}

// Renderer renders template directories from a file system with a fixed set
// of data.
type Renderer struct {
	fsys fs.FS
	data Data
}

// NewRenderer creates a renderer over fsys.
func NewRenderer(fsys fs.FS, data Data) *Renderer {
	return &Renderer{fsys: fsys, data: data}
}

// Render renders every file under the given directories, in directory order
// and then lexical order within a directory. Files ending in .tmpl are
// executed as text/template; other files are copied verbatim. Files whose
// name starts with "_" are partials: they are parsed and shared by all files
// rendered in the same call but are not emitted.
func (r *Renderer) Render(dirs ...string) (FileSet, error) {
	base := template.New("sitekit").Option("missingkey=error")

	type source struct {
		dir  string
		path string
	}
	var sources []source

	for _, dir := range dirs {
		err := fs.WalkDir(r.fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasPrefix(d.Name(), partialPrefix) {
				content, err := fs.ReadFile(r.fsys, p)
				if err != nil {
					return fmt.Errorf("reading %s: %w", p, err)
				}
				if _, err := base.New(p).Parse(string(content)); err != nil {
					return fmt.Errorf("parsing partial %s: %w", p, err)
				}
				return nil
			}
			sources = append(sources, source{dir: dir, path: p})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking template %s: %w", dir, err)
		}
	}

	files := make(FileSet, 0, len(sources))
	for _, src := range sources {
		content, err := fs.ReadFile(r.fsys, src.path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", src.path, err)
		}

		if strings.HasSuffix(src.path, tmplSuffix) {
			content, err = r.execute(base, src.path, content)
			if err != nil {
				return nil, err
			}
		}

		files = append(files, File{
			Path:    targetPath(src.dir, src.path),
			Content: content,
		})
	}

	return files, nil
}

func (r *Renderer) execute(base *template.Template, name string, content []byte) ([]byte, error) {
	tmpl, err := base.Clone()
	if err != nil {
		return nil, fmt.Errorf("cloning templates for %s: %w", name, err)
	}
	if _, err := tmpl.New(name).Parse(string(content)); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, r.data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// targetPath strips the template directory and the .tmpl suffix and restores
// dotfile names.
func targetPath(dir, p string) string {
	rel := strings.TrimPrefix(p, dir+"/")
	rel = strings.TrimSuffix(rel, tmplSuffix)

	parent, name := path.Split(rel)
	if dot, ok := dotfiles[name]; ok {
		name = dot
	}
	return parent + name
}
