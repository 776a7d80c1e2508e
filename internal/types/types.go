// Package types defines the data structures shared across the projmap packages.
package types

import "fmt"

const (
	CommandCore = "projcore"
	CommandDump = "projdump"
)

// FilterSpec parameterizes a scan. It is passed by value and never mutated during a run.
type FilterSpec struct {
	// SkipFolders lists directory names pruned at every level of a descent.
	SkipFolders []string
	// SkipFiles lists file names dropped at every level of a descent.
	SkipFiles []string
	// NecessaryFolders lists subtree roots, relative to the scan root, included by the core report.
	NecessaryFolders []string
	// NecessaryFiles lists individual files always included by the core report.
	NecessaryFiles []string
	// NecessaryTypes lists case-insensitive filename suffixes a file must end with to be included.
	NecessaryTypes []string
}

// HasSelection reports whether any inclusion mechanism of the core report is configured.
func (spec FilterSpec) HasSelection() bool {
	return len(spec.NecessaryFolders) > 0 || len(spec.NecessaryFiles) > 0 || len(spec.NecessaryTypes) > 0
}

// PathIssue records a configured path that could not be included as requested.
// Expected is empty for missing paths and names the required kind otherwise.
type PathIssue struct {
	RelativePath string
	Expected     string
}

// String renders the issue the way report sections list it.
func (issue PathIssue) String() string {
	if issue.Expected == "" {
		return issue.RelativePath
	}
	return fmt.Sprintf("%s (expected %s)", issue.RelativePath, issue.Expected)
}

const (
	// ExpectedDirectory marks a necessary folder that resolved to a file.
	ExpectedDirectory = "directory"
	// ExpectedFile marks a necessary file that resolved to a directory.
	ExpectedFile = "file"
)
