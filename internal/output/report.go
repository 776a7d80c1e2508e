// Package output renders the projmap reports and writes them to disk.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/temirov/projmap/internal/commands"
	"github.com/temirov/projmap/internal/tree"
	"github.com/temirov/projmap/internal/types"
)

const (
	lineSeparator = "\n"

	missingPathsHeader = "[Missing paths]"
	invalidTypeHeader  = "[Invalid path type]"
	issueEntryFormat   = "  - %s"

	placeholderMessage = "  [necessary_folders, necessary_files, and necessary_types are empty. Please add paths/types to the configuration file]"

	reportFilePermissions = 0o644

	errorWriteReportFormat = "writing %s: %w"
)

// RenderNecessaryReport returns the lines of the core report: the root line,
// the accumulated tree and the missing and invalid path sections when they
// have entries. A report without selection renders the placeholder instead.
func RenderNecessaryReport(report commands.NecessaryReport) []string {
	if !report.Selected {
		return RenderPlaceholderReport(report.RootName)
	}
	lines := []string{tree.DisplayName(report.RootName, true)}
	lines = append(lines, tree.Render(report.Root, "")...)
	lines = appendIssueSection(lines, missingPathsHeader, report.Missing)
	return appendIssueSection(lines, invalidTypeHeader, report.InvalidType)
}

// RenderPlaceholderReport returns the core report shown when nothing is selected.
func RenderPlaceholderReport(rootName string) []string {
	return []string{tree.DisplayName(rootName, true), "", placeholderMessage}
}

func appendIssueSection(lines []string, header string, issues []types.PathIssue) []string {
	if len(issues) == 0 {
		return lines
	}
	lines = append(lines, "", header)
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf(issueEntryFormat, issue.String()))
	}
	return lines
}

// JoinLines joins lines with newlines and terminates the result with one more.
func JoinLines(lines []string) string {
	return strings.Join(lines, lineSeparator) + lineSeparator
}

// WriteReport replaces the file at path with data.
func WriteReport(path string, data []byte) error {
	if writeError := os.WriteFile(path, data, reportFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteReportFormat, path, writeError)
	}
	return nil
}
