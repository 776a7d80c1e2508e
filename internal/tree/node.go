// Package tree accumulates selected paths into a hierarchy and renders it as
// connector-style text.
package tree

import (
	"sort"

	"github.com/temirov/projmap/internal/utils"
)

// Node is one path segment of an accumulated tree.
//
// IsDirectory only ever changes from false to true: a node first inserted as
// a file becomes a directory once a descendant is inserted beneath it.
type Node struct {
	Name        string
	IsDirectory bool
	Children    map[string]*Node
}

// NewRoot creates the root directory node of an accumulated tree.
func NewRoot(name string) *Node {
	return newNode(name, true)
}

func newNode(name string, isDirectory bool) *Node {
	return &Node{Name: name, IsDirectory: isDirectory, Children: map[string]*Node{}}
}

// Insert records relativePath beneath node, creating one node per missing
// segment. Intermediate segments are directories and the final segment takes
// isDirectory. Existing nodes are reused and upgraded to directories when
// required, never downgraded. Empty and "." paths are ignored and yield nil.
func (node *Node) Insert(relativePath string, isDirectory bool) *Node {
	normalizedPath := utils.NormalizeRelativePath(relativePath)
	if normalizedPath == "" || normalizedPath == utils.CurrentDirectory {
		return nil
	}
	segments := utils.SplitPathSegments(normalizedPath)
	current := node
	for segmentIndex, segment := range segments {
		requiresDirectory := isDirectory || segmentIndex < len(segments)-1
		child, exists := current.Children[segment]
		if !exists {
			child = newNode(segment, requiresDirectory)
			current.Children[segment] = child
		} else if requiresDirectory {
			child.markDirectory()
		}
		current = child
	}
	return current
}

// Lookup returns the node at relativePath, or nil when it was never inserted.
func (node *Node) Lookup(relativePath string) *Node {
	current := node
	for _, segment := range utils.SplitPathSegments(utils.NormalizeRelativePath(relativePath)) {
		child, exists := current.Children[segment]
		if !exists {
			return nil
		}
		current = child
	}
	return current
}

func (node *Node) markDirectory() {
	node.IsDirectory = true
}

// SortedChildren returns the children with directories first, each group in
// ordinal name order.
func (node *Node) SortedChildren() []*Node {
	children := make([]*Node, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, child)
	}
	sort.Slice(children, func(left, right int) bool {
		return Less(children[left].Name, children[left].IsDirectory, children[right].Name, children[right].IsDirectory)
	})
	return children
}

// Less orders entries directories first, then by byte-wise name comparison.
func Less(leftName string, leftIsDirectory bool, rightName string, rightIsDirectory bool) bool {
	if leftIsDirectory != rightIsDirectory {
		return leftIsDirectory
	}
	return leftName < rightName
}
