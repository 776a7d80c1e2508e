package config

import (
	"github.com/temirov/projmap/internal/tokenizer"
	"github.com/temirov/projmap/internal/utils"
)

const (
	// DefaultCoreOutput is the report written by projcore.
	DefaultCoreOutput = "project-core.md"
	// DefaultTreeOutput is the tree report written by projdump.
	DefaultTreeOutput = "project-tree.md"
	// DefaultContentOutput is the content report written by projdump.
	DefaultContentOutput = "project-content.md"
)

func defaultSkipFolders() []string {
	return []string{".idea", ".mvn", "doc", "httpRequests", "node_modules", ".git", "dist", "target"}
}

func defaultCoreSkipFiles() []string {
	return []string{DefaultCoreOutput, DefaultTreeOutput, DefaultContentOutput, ".DS_Store", utils.ConfigFileName}
}

func defaultDumpSkipFiles() []string {
	return append(defaultCoreSkipFiles(), "create-env.sh.example")
}

// DefaultConfiguration returns the configuration used when no file overrides it.
// The necessary lists are empty, so projcore renders its placeholder report.
func DefaultConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		Core: CoreConfiguration{
			Output:           DefaultCoreOutput,
			SkipFolders:      defaultSkipFolders(),
			SkipFiles:        defaultCoreSkipFiles(),
			NecessaryFolders: []string{},
			NecessaryFiles:   []string{},
			NecessaryTypes:   []string{},
			Tokens:           TokenConfiguration{Model: tokenizer.DefaultModel},
		},
		Dump: DumpConfiguration{
			TreeOutput:    DefaultTreeOutput,
			ContentOutput: DefaultContentOutput,
			SkipFolders:   defaultSkipFolders(),
			SkipFiles:     defaultDumpSkipFiles(),
			Tokens:        TokenConfiguration{Model: tokenizer.DefaultModel},
		},
	}
}
