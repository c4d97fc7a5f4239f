// Package templates provides the archetype registry and the embedded project
// templates rendered by sitekit create.
package templates

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// File is a single generated file. Path is slash-separated and relative to
// the project root.
type File struct {
	Path    string
	Content []byte
}

// FileSet is the ordered list of files an archetype produces.
type FileSet []File

// Paths returns the relative paths of the set in generation order.
func (s FileSet) Paths() []string {
	paths := make([]string, len(s))
	for i, f := range s {
		paths[i] = f.Path
	}
	return paths
}

// Validate rejects empty, absolute and escaping paths as well as duplicates.
// A valid set can only ever write inside the project root.
func (s FileSet) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, f := range s {
		if f.Path == "" {
			return fmt.Errorf("file with empty path")
		}
		if strings.Contains(f.Path, `\`) {
			return fmt.Errorf("path %q: backslashes are not allowed", f.Path)
		}
		if path.IsAbs(f.Path) || filepath.IsAbs(f.Path) || !filepath.IsLocal(filepath.FromSlash(f.Path)) {
			return fmt.Errorf("path %q escapes the project root", f.Path)
		}
		clean := path.Clean(f.Path)
		if seen[clean] {
			return fmt.Errorf("duplicate path %q", f.Path)
		}
		seen[clean] = true
	}
	return nil
}

// Data is passed to every template.
type Data struct {
	// Name is the project name exactly as resolved (e.g., "my-diary").
	Name string

	// Title is the human-readable form of Name (e.g., "My Diary").
	Title string

	// Archetype is the archetype id (e.g., "blog").
	Archetype string

	// Variant is the selected template variant (e.g., "tailwind").
	Variant string

	// Tailwind is true when the tailwind variant is selected.
	Tailwind bool

	// Description is used for the page meta description and the manifest.
	Description string

	// PackageManager is shown in README instructions.
	PackageManager string

	// Posts holds the pre-rendered seed posts. Only set for blogs.
	Posts []Post
}

// Post is a seed blog post with its Markdown rendered to HTML.
type Post struct {
	Slug     string
	Title    string
	Date     string
	Summary  string
	Markdown []byte
	HTML     string
}
