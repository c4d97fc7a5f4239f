package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:files
var embedded embed.FS

//go:embed schema/package.schema.json
var manifestSchema []byte

// TemplateFS exposes the embedded template tree rooted at files/.
var TemplateFS = mustSub(embedded, "files")

const (
	commonDir   = "common"
	tailwindDir = "tailwind"
	postsDir    = "posts"
)

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
