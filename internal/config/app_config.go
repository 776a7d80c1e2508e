package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/projmap/internal/types"
	"github.com/temirov/projmap/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration.
type ApplicationConfiguration struct {
	Core CoreConfiguration `mapstructure:"core" yaml:"core"`
	Dump DumpConfiguration `mapstructure:"dump" yaml:"dump"`
}

// CoreConfiguration configures the projcore report.
type CoreConfiguration struct {
	Output           string             `mapstructure:"output" yaml:"output"`
	SkipFolders      []string           `mapstructure:"skip_folders" yaml:"skip_folders"`
	SkipFiles        []string           `mapstructure:"skip_files" yaml:"skip_files"`
	NecessaryFolders []string           `mapstructure:"necessary_folders" yaml:"necessary_folders"`
	NecessaryFiles   []string           `mapstructure:"necessary_files" yaml:"necessary_files"`
	NecessaryTypes   []string           `mapstructure:"necessary_types" yaml:"necessary_types"`
	Tokens           TokenConfiguration `mapstructure:"tokens" yaml:"tokens"`
	Clipboard        *bool              `mapstructure:"clipboard" yaml:"clipboard,omitempty"`
}

// DumpConfiguration configures the projdump reports.
type DumpConfiguration struct {
	TreeOutput    string             `mapstructure:"tree_output" yaml:"tree_output"`
	ContentOutput string             `mapstructure:"content_output" yaml:"content_output"`
	SkipFolders   []string           `mapstructure:"skip_folders" yaml:"skip_folders"`
	SkipFiles     []string           `mapstructure:"skip_files" yaml:"skip_files"`
	Tokens        TokenConfiguration `mapstructure:"tokens" yaml:"tokens"`
	Clipboard     *bool              `mapstructure:"clipboard" yaml:"clipboard,omitempty"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Model   string `mapstructure:"model" yaml:"model,omitempty"`
}

// LoadApplicationConfiguration starts from DefaultConfiguration and overlays
// the global file, then the local file. An explicit file path replaces the
// local file and must exist.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	merged := DefaultConfiguration()

	if globalPath, err := GlobalConfigurationPath(); err == nil {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("configuration file %s: %w", localPath, statErr)
		}
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Core = merged.Core.deduplicated()
	merged.Dump = merged.Dump.deduplicated()

	return merged, nil
}

// GlobalConfigurationPath returns the location of the global configuration file.
func GlobalConfigurationPath() (string, error) {
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if homeDirectory == "" {
		return "", errors.New("resolve home directory: empty path")
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
// Strings override when non-empty; lists override when present, so an explicit
// empty list clears the inherited value.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Core = result.Core.merge(override.Core)
	result.Dump = result.Dump.merge(override.Dump)
	return result
}

func (config CoreConfiguration) merge(override CoreConfiguration) CoreConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	result.SkipFolders = mergeList(result.SkipFolders, override.SkipFolders)
	result.SkipFiles = mergeList(result.SkipFiles, override.SkipFiles)
	result.NecessaryFolders = mergeList(result.NecessaryFolders, override.NecessaryFolders)
	result.NecessaryFiles = mergeList(result.NecessaryFiles, override.NecessaryFiles)
	result.NecessaryTypes = mergeList(result.NecessaryTypes, override.NecessaryTypes)
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config DumpConfiguration) merge(override DumpConfiguration) DumpConfiguration {
	result := config
	if override.TreeOutput != "" {
		result.TreeOutput = override.TreeOutput
	}
	if override.ContentOutput != "" {
		result.ContentOutput = override.ContentOutput
	}
	result.SkipFolders = mergeList(result.SkipFolders, override.SkipFolders)
	result.SkipFiles = mergeList(result.SkipFiles, override.SkipFiles)
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (config CoreConfiguration) deduplicated() CoreConfiguration {
	result := config
	result.SkipFolders = utils.DeduplicatePatterns(result.SkipFolders)
	result.SkipFiles = utils.DeduplicatePatterns(result.SkipFiles)
	result.NecessaryFolders = utils.DeduplicatePatterns(result.NecessaryFolders)
	result.NecessaryFiles = utils.DeduplicatePatterns(result.NecessaryFiles)
	result.NecessaryTypes = utils.DeduplicatePatterns(result.NecessaryTypes)
	return result
}

func (config DumpConfiguration) deduplicated() DumpConfiguration {
	result := config
	result.SkipFolders = utils.DeduplicatePatterns(result.SkipFolders)
	result.SkipFiles = utils.DeduplicatePatterns(result.SkipFiles)
	return result
}

// FilterSpec returns the scan parameters of the core report.
func (config CoreConfiguration) FilterSpec() types.FilterSpec {
	return types.FilterSpec{
		SkipFolders:      config.SkipFolders,
		SkipFiles:        config.SkipFiles,
		NecessaryFolders: config.NecessaryFolders,
		NecessaryFiles:   config.NecessaryFiles,
		NecessaryTypes:   config.NecessaryTypes,
	}
}

// FilterSpec returns the scan parameters of the dump reports.
func (config DumpConfiguration) FilterSpec() types.FilterSpec {
	return types.FilterSpec{
		SkipFolders: config.SkipFolders,
		SkipFiles:   config.SkipFiles,
	}
}

func mergeList(base []string, override []string) []string {
	if override == nil {
		return base
	}
	return append([]string{}, override...)
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
