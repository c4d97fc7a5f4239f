package templates

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// renderArchetype renders the shared files, the archetype's own tree and the
// tailwind files when selected, preceded by the generated package.json.
func renderArchetype(data Data) (FileSet, error) {
	dirs := []string{commonDir, data.Archetype}
	if data.Tailwind {
		dirs = append(dirs, tailwindDir)
	}

	files, err := NewRenderer(TemplateFS, data).Render(dirs...)
	if err != nil {
		return nil, err
	}

	manifest, err := NewManifest(data).Encode()
	if err != nil {
		return nil, err
	}
	if err := ValidateManifest(manifest); err != nil {
		return nil, err
	}

	return append(FileSet{{Path: manifestPath, Content: manifest}}, files...), nil
}

// renderBlog renders a blog with the seed posts copied to content/posts and
// compiled into src/posts.ts.
func renderBlog(data Data) (FileSet, error) {
	posts, err := LoadPosts(TemplateFS, postsDir)
	if err != nil {
		return nil, err
	}
	data.Posts = posts

	files, err := renderArchetype(data)
	if err != nil {
		return nil, err
	}
	return append(files, postFiles(posts)...), nil
}

// Write writes every file of set under dir, in order, creating parent
// directories as needed. It returns the relative paths written so far, also
// on error.
func Write(fs afero.Fs, dir string, set FileSet) ([]string, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(set))
	for _, f := range set {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}
		if err := afero.WriteFile(fs, target, f.Content, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.Path, err)
		}
		written = append(written, f.Path)
	}
	return written, nil
}

var fileDescriptions = map[string]string{
	"package.json":       "Package manifest",
	"vite.config.ts":     "Vite configuration",
	"tsconfig.json":      "TypeScript configuration",
	"index.html":         "HTML entry point",
	".gitignore":         "Git ignore rules",
	"README.md":          "Getting started",
	"src/main.tsx":       "Application bootstrap",
	"src/App.tsx":        "Root component",
	"src/styles.css":     "Global styles",
	"src/posts.ts":       "Pre-rendered posts",
	"tailwind.config.js": "Tailwind configuration",
	"postcss.config.js":  "PostCSS configuration",
}

// Describe returns a short description for well-known generated files, or ""
// when the file has none.
func Describe(p string) string {
	if desc, ok := fileDescriptions[p]; ok {
		return desc
	}
	switch path.Dir(p) {
	case postsTarget:
		return "Seed post"
	case "src/components":
		return "Component"
	}
	return ""
}

// Descriptions maps each path in paths to its description for tree output.
func Descriptions(paths []string) map[string]string {
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		out[p] = Describe(p)
	}
	return out
}
