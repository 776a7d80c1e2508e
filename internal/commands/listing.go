// Package commands contains the directory walks behind the projcore and projdump reports.
package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/temirov/projmap/internal/filter"
	"github.com/temirov/projmap/internal/tree"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// directoryReader lists the entries of one directory.
type directoryReader func(directoryPath string) ([]os.DirEntry, error)

// listDirectory returns the entries of directoryPath that survive the skip-lists,
// directories first and then in ordinal name order.
func listDirectory(readDirectory directoryReader, directoryPath string, policy filter.Policy) ([]os.DirEntry, error) {
	directoryEntries, readDirectoryError := readDirectory(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	keptEntries := directoryEntries[:0]
	for _, directoryEntry := range directoryEntries {
		if policy.ShouldSkip(directoryEntry.Name(), directoryEntry.IsDir()) {
			continue
		}
		keptEntries = append(keptEntries, directoryEntry)
	}
	sort.SliceStable(keptEntries, func(left, right int) bool {
		return tree.Less(keptEntries[left].Name(), keptEntries[left].IsDir(), keptEntries[right].Name(), keptEntries[right].IsDir())
	})
	return keptEntries, nil
}
