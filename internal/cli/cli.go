// Package cli provides the projcore and projdump command line interfaces.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/projmap/internal/config"
	"github.com/temirov/projmap/internal/services/clipboard"
	"github.com/temirov/projmap/internal/tokenizer"
	"github.com/temirov/projmap/internal/types"
	"github.com/temirov/projmap/internal/utils"
)

const (
	configFlagName    = "config"
	versionFlagName   = "version"
	clipboardFlagName = "clipboard"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	globalFlagName    = "global"
	forceFlagName     = "force"

	configFlagDescription    = "configuration file replacing ./" + utils.ConfigFileName
	versionFlagDescription   = "display application version"
	clipboardFlagDescription = "copy the main report to the clipboard"
	tokensFlagDescription    = "log estimated token counts of the written reports"
	modelFlagDescription     = "tokenizer model to use for token counting"
	globalFlagDescription    = "write the global configuration instead of the local one"
	forceFlagDescription     = "overwrite an existing configuration file"

	coreShortDescription = "write a pruned project tree to project-core.md"
	coreLongDescription  = `projcore scans the current directory and writes a tree restricted to the
configured necessary folders, files and filename types.
Paths that are missing or of the wrong kind are listed after the tree.`
	coreUsageExample = `  # Create a local configuration, edit its necessary_* lists, then run
  projcore init
  projcore

  # Estimate the size of the report in tokens
  projcore --tokens`

	dumpShortDescription = "write the full project tree and file contents"
	dumpLongDescription  = `projdump scans the current directory and writes project-tree.md with the
complete tree and project-content.md with the content of every text file.
Large, binary and non UTF-8 files are listed with a notice instead of content.`
	dumpUsageExample = `  # Dump the project and copy the content report to the clipboard
  projdump --clipboard`

	initUse              = "init"
	initShortDescription = "write the default configuration file"

	generatedHeader             = "Generated:"
	generatedEntryFormat        = "  %s"
	configurationWrittenFormat  = "Configuration written to %s"
	dumpSummaryFormat           = "Scanned %d directories and %d files, %d contents skipped or truncated"
	tokenEstimateFormat         = "  %s: %s, %d lines, %d tokens (%s)"
	tokenSkippedFormat          = "  %s: %s, %d lines, tokens not counted"
	warningTokenizerFormat      = "token counting unavailable: %v"
	warningTokenCountFormat     = "failed to count tokens for %s: %v"
	warningClipboardFormat      = "%v"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// commandDependencies holds the collaborators a command run reaches outside the filesystem.
type commandDependencies struct {
	logger     *zap.Logger
	copier     clipboard.Copier
	newCounter func(tokenizer.Config) (tokenizer.Counter, string, error)
}

func defaultDependencies(logger *zap.Logger) commandDependencies {
	if logger == nil {
		logger = zap.NewNop()
	}
	return commandDependencies{
		logger:     logger,
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
	}
}

// runOptions stores the flags shared by both commands.
type runOptions struct {
	configPath  string
	showVersion bool
	clipboard   bool
	tokens      bool
	model       string
}

// ExecuteCore runs the projcore application with the process arguments.
func ExecuteCore(logger *zap.Logger) error {
	return execute(NewCoreCommand(logger))
}

// ExecuteDump runs the projdump application with the process arguments.
func ExecuteDump(logger *zap.Logger) error {
	return execute(NewDumpCommand(logger))
}

func execute(command *cobra.Command) error {
	command.SetArgs(normalizeBooleanFlagArguments(command, os.Args[1:]))
	return command.Execute()
}

// NewCoreCommand builds the projcore root command.
func NewCoreCommand(logger *zap.Logger) *cobra.Command {
	return newCoreCommand(defaultDependencies(logger))
}

// NewDumpCommand builds the projdump root command.
func NewDumpCommand(logger *zap.Logger) *cobra.Command {
	return newDumpCommand(defaultDependencies(logger))
}

func newCoreCommand(dependencies commandDependencies) *cobra.Command {
	return newToolCommand(types.CommandCore, coreShortDescription, coreLongDescription, coreUsageExample, dependencies, runCore)
}

func newDumpCommand(dependencies commandDependencies) *cobra.Command {
	return newToolCommand(types.CommandDump, dumpShortDescription, dumpLongDescription, dumpUsageExample, dependencies, runDump)
}

type toolRunner func(command *cobra.Command, dependencies commandDependencies, workingDirectory string, options runOptions, configuration config.ApplicationConfiguration) error

// newToolCommand builds a zero-argument root command that loads the
// configuration of the working directory and hands it to run.
func newToolCommand(name string, short string, long string, example string, dependencies commandDependencies, run toolRunner) *cobra.Command {
	var options runOptions

	rootCommand := &cobra.Command{
		Use:           name,
		Short:         short,
		Long:          long,
		Example:       example,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), utils.VersionTemplate, name, utils.GetApplicationVersion())
				return err
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: options.configPath,
			})
			if loadError != nil {
				return loadError
			}
			return run(command, dependencies, workingDirectory, options, configuration)
		},
	}

	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &options.showVersion, versionFlagName, false, versionFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &options.clipboard, clipboardFlagName, false, clipboardFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &options.tokens, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	rootCommand.AddCommand(newInitCommand(dependencies))
	return rootCommand
}

func newInitCommand(dependencies commandDependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if err != nil {
				return err
			}
			dependencies.logger.Info(fmt.Sprintf(configurationWrittenFormat, path))
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolvePostProcessing applies the command line flags over the configured
// clipboard and token settings. Flags win only when given explicitly.
func resolvePostProcessing(command *cobra.Command, options runOptions, clipboardSetting *bool, tokens config.TokenConfiguration) postProcessing {
	resolved := postProcessing{model: tokens.Model}
	if clipboardSetting != nil {
		resolved.clipboard = *clipboardSetting
	}
	if tokens.Enabled != nil {
		resolved.tokens = *tokens.Enabled
	}
	flags := command.Flags()
	if flags.Changed(clipboardFlagName) {
		resolved.clipboard = options.clipboard
	}
	if flags.Changed(tokensFlagName) {
		resolved.tokens = options.tokens
	}
	if flags.Changed(modelFlagName) || resolved.model == "" {
		resolved.model = options.model
	}
	return resolved
}
