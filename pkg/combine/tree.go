// File: pkg/combine/tree.go
package combine

import (
	"path/filepath"
	"sort"
	"strings"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

func (n *treeNode) isDir() bool {
	return len(n.children) > 0
}

// RenderTree renders the slash-separated relative paths as a directory tree
// headed by the base name of root.
func RenderTree(root string, paths []string) string {
	top := &treeNode{name: filepath.Base(root)}
	for _, p := range paths {
		node := top
		for _, part := range strings.Split(strings.Trim(normalizePath(p), "/"), "/") {
			if part == "" {
				continue
			}
			node = node.child(part)
		}
	}

	var treeBuilder strings.Builder
	treeBuilder.WriteString(top.name + "/\n")
	renderChildren(&treeBuilder, top, "")
	return treeBuilder.String()
}

// renderChildren writes n's children: directories first, then files, alphabetically.
func renderChildren(b *strings.Builder, n *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		entries = append(entries, c)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.isDir() {
			b.WriteString(prefix + connector + entry.name + "/\n")
			renderChildren(b, entry, prefix+extension)
			continue
		}
		b.WriteString(prefix + connector + entry.name + "\n")
	}
}
