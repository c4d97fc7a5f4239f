package output

import (
	"path"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	branchMid  = "├── "
	branchEnd  = "└── "
	indentBar  = "│   "
	indentNone = "    "

	// descriptionColumn is where file descriptions start.
	descriptionColumn = 30
)

type treeNode struct {
	name        string
	description string

	// children is nil for files.
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return n.children != nil
}

func (n *treeNode) child(name string, dir bool) *treeNode {
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		if dir {
			c.children = make(map[string]*treeNode)
		}
		n.children[name] = c
	}
	return c
}

// sorted returns the children with directories first, each group by name.
func (n *treeNode) sorted() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *treeNode) int {
		if a.isDir() != b.isDir() {
			if a.isDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.name, b.name)
	})
	return out
}

// RenderFileTree renders the files of a generated project as a tree under
// rootName/. files maps relative paths to descriptions; non-empty
// descriptions are aligned at descriptionColumn.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &treeNode{name: rootName, children: make(map[string]*treeNode)}
	for p, desc := range files {
		parts := strings.Split(path.Clean(filepath.ToSlash(p)), "/")
		n := root
		for i, part := range parts {
			n = n.child(part, i < len(parts)-1)
		}
		n.description = desc
	}

	var sb strings.Builder
	sb.WriteString(styleTreeRoot.Render(rootName + "/"))
	sb.WriteByte('\n')
	writeChildren(&sb, root, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, n *treeNode, indent string) {
	children := n.sorted()
	for i, c := range children {
		branch, next := branchMid, indentBar
		if i == len(children)-1 {
			branch, next = branchEnd, indentNone
		}

		label := indent + branch + c.name
		if c.isDir() {
			label += "/"
		}
		sb.WriteString(label)
		if c.description != "" {
			pad := max(descriptionColumn-utf8.RuneCountInString(label), 2)
			sb.WriteString(strings.Repeat(" ", pad))
			sb.WriteString(styleTreeNote.Render(c.description))
		}
		sb.WriteByte('\n')

		if c.isDir() {
			writeChildren(sb, c, indent+next)
		}
	}
}
