// Package utils contains general helper functions shared by the projmap tools.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	pathSegmentSeparator   = "/"
	currentDirectoryPrefix = "./"

	// CurrentDirectory is the relative spelling of the scan root.
	CurrentDirectory = "."
)

// NormalizeRelativePath converts a user supplied path into forward-slash form
// with no leading "./" segments, no leading slashes and no trailing slashes.
// Blank input yields an empty string.
func NormalizeRelativePath(rawPath string) string {
	trimmedPath := strings.TrimSpace(rawPath)
	if trimmedPath == "" {
		return EmptyString
	}
	normalizedPath := filepath.ToSlash(trimmedPath)
	for strings.HasPrefix(normalizedPath, currentDirectoryPrefix) {
		normalizedPath = strings.TrimPrefix(normalizedPath, currentDirectoryPrefix)
	}
	normalizedPath = strings.TrimLeft(normalizedPath, pathSegmentSeparator)
	return strings.TrimRight(normalizedPath, pathSegmentSeparator)
}

// JoinRelativePath appends an entry name to a normalized relative directory path.
// The scan root may be given as "" or ".".
func JoinRelativePath(relativeDirectory string, entryName string) string {
	return NormalizeRelativePath(relativeDirectory + pathSegmentSeparator + entryName)
}

// SplitPathSegments splits a normalized relative path into its non-empty segments.
func SplitPathSegments(relativePath string) []string {
	rawSegments := strings.Split(relativePath, pathSegmentSeparator)
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// RelativePathOrSelf calculates the forward-slash path of fullPath relative to root.
// Returns "." if both resolve to the same directory and the cleaned fullPath
// if no relative form exists.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)
	if cleanPath == cleanRoot {
		return CurrentDirectory
	}
	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// DisplayPath prefixes a relative path with the name of the scan root.
func DisplayPath(rootName string, relativePath string) string {
	return rootName + pathSegmentSeparator + relativePath
}

// DeduplicatePatterns removes duplicate entries from a slice while preserving order.
// The first occurrence of each unique entry is kept.
func DeduplicatePatterns(patterns []string) []string {
	if patterns == nil {
		return nil
	}
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}
