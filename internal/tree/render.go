package tree

const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchPadding   = "│   "
	lastPadding     = "    "

	directorySuffix = "/"
)

// Connector returns the line prefix for an entry and the prefix its children extend.
func Connector(prefix string, isLast bool) (string, string) {
	if isLast {
		return prefix + lastConnector, prefix + lastPadding
	}
	return prefix + branchConnector, prefix + branchPadding
}

// DisplayName appends a trailing slash to directory names.
func DisplayName(name string, isDirectory bool) string {
	if isDirectory {
		return name + directorySuffix
	}
	return name
}

// Render returns the connector lines for every descendant of node. The node
// itself is not rendered.
func Render(node *Node, prefix string) []string {
	var lines []string
	appendRenderedChildren(&lines, node, prefix)
	return lines
}

func appendRenderedChildren(lines *[]string, node *Node, prefix string) {
	if node == nil {
		return
	}
	children := node.SortedChildren()
	for childIndex, child := range children {
		linePrefix, childPrefix := Connector(prefix, childIndex == len(children)-1)
		*lines = append(*lines, linePrefix+DisplayName(child.Name, child.IsDirectory))
		if child.IsDirectory {
			appendRenderedChildren(lines, child, childPrefix)
		}
	}
}
