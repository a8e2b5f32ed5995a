// Package tree derives a directory hierarchy from the flat file paths of a
// parsed patch.
package tree

import (
	"slices"
	"strings"

	"github.com/hexbee/git-diff-viewer/internal/patch"
)

// Node is a directory or file entry. The root is synthetic: empty Name and
// Path, IsDir true. Status is meaningful on file nodes only.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Status   patch.Status
	Children []*Node
}

// Build constructs the tree for the given file sequence. Output is
// deterministic regardless of insertion order: children are normalized in a
// final pass so that directories precede files and each group is sorted
// alphabetically, case-insensitively.
func Build(files []patch.FileChange) *Node {
	root := &Node{IsDir: true}
	for _, fc := range files {
		insert(root, fc)
	}
	sortChildren(root)
	return root
}

func insert(root *Node, fc patch.FileChange) {
	segments := strings.Split(fc.Path, "/")
	node := root
	for i, segment := range segments {
		isDir := i < len(segments)-1
		child := node.child(segment)
		if child == nil {
			child = &Node{
				Name:  segment,
				Path:  strings.Join(segments[:i+1], "/"),
				IsDir: isDir,
			}
			node.Children = append(node.Children, child)
		}
		if !isDir {
			child.Status = fc.Status
		}
		node = child
	}
}

func (n *Node) child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func sortChildren(n *Node) {
	slices.SortStableFunc(n.Children, compareNodes)
	for _, c := range n.Children {
		if c.IsDir {
			sortChildren(c)
		}
	}
}

func compareNodes(a, b *Node) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return strings.Compare(la, lb)
	}
	return strings.Compare(a.Name, b.Name)
}

// Find walks to the node with the given path, or nil. The empty path
// resolves to n itself.
func (n *Node) Find(path string) *Node {
	if path == "" {
		return n
	}
	node := n
	for segment := range strings.SplitSeq(path, "/") {
		node = node.child(segment)
		if node == nil {
			return nil
		}
	}
	return node
}

// DirPaths returns the paths of every directory in the tree, excluding the
// synthetic root.
func (n *Node) DirPaths() []string {
	var paths []string
	var walk func(*Node)
	walk = func(node *Node) {
		for _, c := range node.Children {
			if !c.IsDir {
				continue
			}
			paths = append(paths, c.Path)
			walk(c)
		}
	}
	walk(n)
	return paths
}

// Ancestors returns the proper ancestor directory paths of a file path,
// outermost first: "a/b/c.go" yields ["a", "a/b"].
func Ancestors(path string) []string {
	var ancestors []string
	for i, r := range path {
		if r == '/' {
			ancestors = append(ancestors, path[:i])
		}
	}
	return ancestors
}
