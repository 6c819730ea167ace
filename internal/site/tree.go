package site

import (
	"path"
	"sort"
	"strconv"
	"strings"
)

// FileTree is a node of the source tree shown on files.html.
type FileTree struct {
	Name     string
	Path     string // slash-separated path relative to the source root
	IsDir    bool
	Children []*FileTree
}

// BuildTree turns a list of slash-separated relative paths into a tree.
func BuildTree(paths []string) *FileTree {
	root := &FileTree{IsDir: true}
	for _, p := range paths {
		parts := strings.Split(path.Clean(p), "/")
		current := root
		for i, part := range parts {
			child := current.child(part)
			if child == nil {
				child = &FileTree{
					Name:  part,
					Path:  strings.Join(parts[:i+1], "/"),
					IsDir: i < len(parts)-1,
				}
				current.Children = append(current.Children, child)
			}
			current = child
		}
	}
	root.sort()
	return root
}

func (t *FileTree) child(name string) *FileTree {
	for _, c := range t.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// sort orders directories before files, each alphabetically.
func (t *FileTree) sort() {
	sort.Slice(t.Children, func(i, j int) bool {
		a, b := t.Children[i], t.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, c := range t.Children {
		if c.IsDir {
			c.sort()
		}
	}
}

// Depth returns the number of directory levels below t, counting t's
// children as level 1.
func (t *FileTree) Depth() int {
	max := 0
	for _, c := range t.Children {
		d := 1
		if c.IsDir {
			d += c.Depth()
		}
		if d > max {
			max = d
		}
	}
	return max
}

// directoryRow is one line of the directory table.
type directoryRow struct {
	ID     string // row_<i>_<j>_..._
	Indent int    // number of ancestors
	Node   *FileTree
	Link   string // listing page, empty for directories
}

// directoryRows flattens the tree depth-first into rows whose IDs encode
// the child index at every level.
func directoryRows(root *FileTree) []directoryRow {
	var rows []directoryRow
	var walk func(n *FileTree, prefix string, indent int)
	walk = func(n *FileTree, prefix string, indent int) {
		for i, c := range n.Children {
			key := prefix + strconv.Itoa(i) + "_"
			row := directoryRow{ID: "row_" + key, Indent: indent, Node: c}
			if !c.IsDir {
				row.Link = listingPath(c.Path)
			}
			rows = append(rows, row)
			if c.IsDir {
				walk(c, key, indent+1)
			}
		}
	}
	walk(root, "", 0)
	return rows
}

// listingPath is the site path of a file's source listing. Every listing
// sits exactly two directories down so its asset prefix is "../../".
func listingPath(rel string) string {
	dir, file := path.Split(rel)
	dir = strings.Trim(dir, "/")
	if dir == "" {
		dir = "_root"
	}
	return "source/" + strings.ReplaceAll(dir, "/", "-") + "/" + file + ".html"
}
