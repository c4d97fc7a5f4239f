package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

const (
	frontMatterDelim = "---"
	postsTarget      = "content/posts"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

type frontMatter struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Summary string `yaml:"summary"`
}

// LoadPosts reads every Markdown file under dir, parses its YAML front matter
// and renders the body to HTML. Posts are returned in file name order.
func LoadPosts(fsys fs.FS, dir string) ([]Post, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading posts: %w", err)
	}

	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		p := path.Join(dir, entry.Name())
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		post, err := parsePost(strings.TrimSuffix(entry.Name(), ".md"), content)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", p, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func parsePost(slug string, content []byte) (Post, error) {
	meta, body, err := splitFrontMatter(content)
	if err != nil {
		return Post{}, err
	}

	var fm frontMatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return Post{}, fmt.Errorf("parsing front matter: %w", err)
		}
	}
	if fm.Title == "" {
		fm.Title = Title(slug)
	}

	var html bytes.Buffer
	if err := markdown.Convert(body, &html); err != nil {
		return Post{}, fmt.Errorf("rendering markdown: %w", err)
	}

	return Post{
		Slug:     slug,
		Title:    fm.Title,
		Date:     fm.Date,
		Summary:  fm.Summary,
		Markdown: content,
		HTML:     html.String(),
	}, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from the
// Markdown body. Content without front matter is returned as the body.
func splitFrontMatter(content []byte) (meta, body []byte, err error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte(frontMatterDelim+"\n")) {
		return nil, normalized, nil
	}

	rest := normalized[len(frontMatterDelim)+1:]
	end := bytes.Index(rest, []byte("\n"+frontMatterDelim+"\n"))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}
	meta = rest[:end+1]
	body = bytes.TrimLeft(rest[end+len(frontMatterDelim)+2:], "\n")
	return meta, body, nil
}

// postFiles copies the Markdown sources into content/posts.
func postFiles(posts []Post) FileSet {
	files := make(FileSet, 0, len(posts))
	for _, p := range posts {
		files = append(files, File{
			Path:    path.Join(postsTarget, p.Slug+".md"),
			Content: p.Markdown,
		})
	}
	return files
}
