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

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// NecessaryReport is the outcome of a selective scan.
type NecessaryReport struct {
	RootName string
	Root     *tree.Node
	// Selected is false when no inclusion list was configured and no scan ran.
	Selected    bool
	Missing     []types.PathIssue
	InvalidType []types.PathIssue
}

type necessaryCollector struct {
	rootDirectory string
	policy        filter.Policy
	readDirectory directoryReader
	report        *NecessaryReport
}

// CollectNecessary accumulates the paths selected by spec beneath rootDirectory.
//
// Necessary folders are descended with the skip-lists applied and files kept
// only when they match the type list. Without necessary folders a non-empty
// type list scans the whole root. Necessary files are added last and bypass
// both the skip-lists and the type list. Missing paths and paths of the wrong
// kind are recorded in the report rather than failing the scan; unreadable
// directories fail it.
func CollectNecessary(rootDirectory string, spec types.FilterSpec) (NecessaryReport, error) {
	return collectNecessary(rootDirectory, spec, os.ReadDir)
}

func collectNecessary(rootDirectory string, spec types.FilterSpec, readDirectory directoryReader) (NecessaryReport, error) {
	absoluteRootDirectory, absolutePathError := filepath.Abs(rootDirectory)
	if absolutePathError != nil {
		return NecessaryReport{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absolutePathError)
	}

	rootName := filepath.Base(absoluteRootDirectory)
	report := NecessaryReport{RootName: rootName, Root: tree.NewRoot(rootName)}
	if !spec.HasSelection() {
		return report, nil
	}
	report.Selected = true

	collector := necessaryCollector{
		rootDirectory: absoluteRootDirectory,
		policy:        filter.NewPolicy(spec),
		readDirectory: readDirectory,
		report:        &report,
	}

	for _, configuredFolder := range spec.NecessaryFolders {
		if folderError := collector.collectFolder(configuredFolder); folderError != nil {
			return NecessaryReport{}, folderError
		}
	}

	if len(spec.NecessaryFolders) == 0 && len(spec.NecessaryTypes) > 0 {
		if walkError := collector.walk(absoluteRootDirectory, utils.CurrentDirectory); walkError != nil {
			return NecessaryReport{}, walkError
		}
	}

	for _, configuredFile := range spec.NecessaryFiles {
		if fileError := collector.collectFile(configuredFile); fileError != nil {
			return NecessaryReport{}, fileError
		}
	}

	return report, nil
}

func (collector *necessaryCollector) collectFolder(configuredFolder string) error {
	relativePath := utils.NormalizeRelativePath(configuredFolder)
	if relativePath == "" {
		return nil
	}
	absolutePath := filepath.Join(collector.rootDirectory, filepath.FromSlash(relativePath))
	info, present := collector.inspect(absolutePath, relativePath)
	if !present {
		return nil
	}
	if !info.IsDir() {
		collector.report.InvalidType = append(collector.report.InvalidType, types.PathIssue{RelativePath: relativePath, Expected: types.ExpectedDirectory})
		return nil
	}
	collector.report.Root.Insert(relativePath, true)
	return collector.walk(absolutePath, relativePath)
}

func (collector *necessaryCollector) collectFile(configuredFile string) error {
	relativePath := utils.NormalizeRelativePath(configuredFile)
	if relativePath == "" {
		return nil
	}
	absolutePath := filepath.Join(collector.rootDirectory, filepath.FromSlash(relativePath))
	info, present := collector.inspect(absolutePath, relativePath)
	if !present {
		return nil
	}
	if info.IsDir() {
		collector.report.InvalidType = append(collector.report.InvalidType, types.PathIssue{RelativePath: relativePath, Expected: types.ExpectedFile})
		return nil
	}
	collector.report.Root.Insert(relativePath, false)
	return nil
}

// inspect stats a configured path without following a final symlink. Paths
// that cannot be stated are recorded as missing.
func (collector *necessaryCollector) inspect(absolutePath string, relativePath string) (os.FileInfo, bool) {
	info, statError := os.Lstat(absolutePath)
	if statError != nil {
		collector.report.Missing = append(collector.report.Missing, types.PathIssue{RelativePath: relativePath})
		return nil, false
	}
	return info, true
}

// walk inserts every surviving entry beneath directoryPath. Directories are
// always inserted so that deeper matches keep their ancestry; files must match
// the type list.
func (collector *necessaryCollector) walk(directoryPath string, relativeDirectory string) error {
	entries, listError := listDirectory(collector.readDirectory, directoryPath, collector.policy)
	if listError != nil {
		return listError
	}
	for _, entry := range entries {
		childPath := filepath.Join(directoryPath, entry.Name())
		childRelativePath := utils.JoinRelativePath(relativeDirectory, entry.Name())
		if entry.IsDir() {
			collector.report.Root.Insert(childRelativePath, true)
			if walkError := collector.walk(childPath, childRelativePath); walkError != nil {
				return walkError
			}
			continue
		}
		if !collector.policy.MatchesType(entry.Name()) {
			continue
		}
		collector.report.Root.Insert(childRelativePath, false)
	}
	return nil
}
