package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/projmap/internal/filter"
	"github.com/temirov/projmap/internal/tree"
	"github.com/temirov/projmap/internal/types"
	"github.com/temirov/projmap/internal/utils"
)

type TreeEventKind int

const (
	TreeEventDirectory TreeEventKind = iota
	TreeEventFile
)

// TreeEvent describes one entry of the full-dump walk in render order.
type TreeEvent struct {
	Kind         TreeEventKind
	RelativePath string
	// TreeLine is the rendered connector line of the entry.
	TreeLine string
	// Content is the rendered content block of a file entry.
	Content []string
	// Notice is set when the content of a file entry was skipped or truncated.
	Notice string
}

type ProjectStreamOptions struct {
	Root string
	Spec types.FilterSpec
}

type projectStreamContext struct {
	root     string
	rootName string
	policy   filter.Policy
	handler  func(TreeEvent) error
}

// StreamProject walks options.Root depth-first in pre-order and hands every
// entry that survives the skip-lists to handler. Entries are visited
// directories first, then by ordinal name, so handler sees them in the order
// they are rendered. The first directory that cannot be read aborts the walk.
func StreamProject(options ProjectStreamOptions, handler func(TreeEvent) error) error {
	if handler == nil {
		return fmt.Errorf("project stream handler is nil")
	}
	absoluteRoot, absolutePathError := filepath.Abs(options.Root)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, options.Root, absolutePathError)
	}

	ctx := projectStreamContext{
		root:     absoluteRoot,
		rootName: filepath.Base(absoluteRoot),
		policy:   filter.NewPolicy(types.FilterSpec{SkipFolders: options.Spec.SkipFolders, SkipFiles: options.Spec.SkipFiles}),
		handler:  handler,
	}
	return ctx.walkDirectory(absoluteRoot, "")
}

// RootLabel returns the heading line of a report for the scan root.
func RootLabel(root string) (string, error) {
	absoluteRoot, absolutePathError := filepath.Abs(root)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, root, absolutePathError)
	}
	return tree.DisplayName(filepath.Base(absoluteRoot), true), nil
}

func (ctx *projectStreamContext) walkDirectory(directoryPath string, prefix string) error {
	entries, listError := listDirectory(os.ReadDir, directoryPath, ctx.policy)
	if listError != nil {
		return listError
	}

	for entryIndex, entry := range entries {
		isLast := entryIndex == len(entries)-1
		linePrefix, childPrefix := tree.Connector(prefix, isLast)
		childPath := filepath.Join(directoryPath, entry.Name())
		event := TreeEvent{
			RelativePath: utils.RelativePathOrSelf(childPath, ctx.root),
			TreeLine:     linePrefix + tree.DisplayName(entry.Name(), entry.IsDir()),
		}

		if !entry.IsDir() {
			event.Kind = TreeEventFile
			event.Content, event.Notice = renderContentBlock(childPath, utils.DisplayPath(ctx.rootName, event.RelativePath))
			if handlerError := ctx.handler(event); handlerError != nil {
				return handlerError
			}
			continue
		}

		event.Kind = TreeEventDirectory
		if handlerError := ctx.handler(event); handlerError != nil {
			return handlerError
		}
		if walkError := ctx.walkDirectory(childPath, childPrefix); walkError != nil {
			return walkError
		}
	}
	return nil
}
