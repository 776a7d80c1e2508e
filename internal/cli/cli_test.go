package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/projmap/internal/services/stream"
	"github.com/temirov/projmap/internal/tokenizer"
	"github.com/temirov/projmap/internal/utils"
)

type recordingCopier struct {
	labels []string
	texts  []string
	err    error
}

func (copier *recordingCopier) Copy(label string, text string) error {
	copier.labels = append(copier.labels, label)
	copier.texts = append(copier.texts, text)
	return copier.err
}

type stubCounter struct{}

func (stubCounter) Name() string { return "stub" }

func (stubCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type commandHarness struct {
	dependencies commandDependencies
	logs         *observer.ObservedLogs
	copier       *recordingCopier
	models       []string
}

func testDependencies(t *testing.T, counterError error) *commandHarness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	harness := &commandHarness{logs: logs, copier: &recordingCopier{}}
	harness.dependencies = commandDependencies{
		logger: zap.New(core),
		copier: harness.copier,
		newCounter: func(cfg tokenizer.Config) (tokenizer.Counter, string, error) {
			harness.models = append(harness.models, cfg.Model)
			if counterError != nil {
				return nil, "", counterError
			}
			return stubCounter{}, "stub-" + cfg.Model, nil
		},
	}
	return harness
}

func (harness *commandHarness) messages(level zapcore.Level) []string {
	var messages []string
	for _, entry := range harness.logs.All() {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

// prepareWorkspace creates a project from files, isolates the global
// configuration and changes into the project. It returns the working directory.
func prepareWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for relativePath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", relativePath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(root)
	workingDirectory, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return workingDirectory
}

func runCommand(command *cobra.Command, arguments ...string) (string, error) {
	if arguments == nil {
		arguments = []string{}
	}
	var commandOutput bytes.Buffer
	command.SetOut(&commandOutput)
	command.SetErr(&commandOutput)
	command.SetArgs(arguments)
	err := command.Execute()
	return commandOutput.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(content)
}

func TestCoreCommandWritesPlaceholderByDefault(t *testing.T) {
	workingDirectory := prepareWorkspace(t, map[string]string{"src/Main.java": "class Main {}"})
	harness := testDependencies(t, nil)

	if _, err := runCommand(newCoreCommand(harness.dependencies)); err != nil {
		t.Fatalf("projcore failed: %v", err)
	}

	rootName := filepath.Base(workingDirectory)
	reportPath := filepath.Join(workingDirectory, "project-core.md")
	expected := rootName + "/\n\n  [necessary_folders, necessary_files, and necessary_types are empty. Please add paths/types to the configuration file]\n"
	if content := readFile(t, reportPath); content != expected {
		t.Fatalf("unexpected report %q", content)
	}
	infos := harness.messages(zapcore.InfoLevel)
	if len(infos) != 2 || infos[0] != "Generated:" || infos[1] != "  "+reportPath {
		t.Fatalf("unexpected log lines %q", infos)
	}
}

func TestCoreCommandUsesLocalConfiguration(t *testing.T) {
	workingDirectory := prepareWorkspace(t, map[string]string{
		".projmap.yaml":       "core:\n  necessary_folders: [api]\n  necessary_files: [missing.txt, README.md]\n  necessary_types: [.java]\n",
		"api/src/Main.java":   "class Main {}",
		"api/pom.xml":         "<project/>",
		"api/target/Gen.java": "class Gen {}",
		"README.md":           "# readme",
		"other/Ignored.java":  "class Ignored {}",
	})
	harness := testDependencies(t, nil)

	if _, err := runCommand(newCoreCommand(harness.dependencies)); err != nil {
		t.Fatalf("projcore failed: %v", err)
	}

	expected := strings.Join([]string{
		filepath.Base(workingDirectory) + "/",
		"├── api/",
		"│   └── src/",
		"│       └── Main.java",
		"└── README.md",
		"",
		"[Missing paths]",
		"  - missing.txt",
		"",
	}, "\n")
	if content := readFile(t, filepath.Join(workingDirectory, "project-core.md")); content != expected {
		t.Fatalf("unexpected report:\n%s\nexpected:\n%s", content, expected)
	}
}

func TestDumpCommandWritesTreeAndContent(t *testing.T) {
	workingDirectory := prepareWorkspace(t, map[string]string{
		"a.txt":                 "hello",
		"sub/b.md":              "x\n",
		"node_modules/dep/i.js": "skipped",
		"create-env.sh.example": "skipped",
	})
	harness := testDependencies(t, nil)
	rootName := filepath.Base(workingDirectory)
	treePath := filepath.Join(workingDirectory, "project-tree.md")
	contentPath := filepath.Join(workingDirectory, "project-content.md")
	expectedTree := rootName + "/\n├── sub/\n│   └── b.md\n└── a.txt\n"
	expectedContent := rootName + "/sub/b.md\n  x\n  \n\n" + rootName + "/a.txt\n  hello\n\n"

	for run := 0; run < 2; run++ {
		if _, err := runCommand(newDumpCommand(harness.dependencies)); err != nil {
			t.Fatalf("projdump run %d failed: %v", run, err)
		}
		if content := readFile(t, treePath); content != expectedTree {
			t.Fatalf("run %d: unexpected tree %q", run, content)
		}
		if content := readFile(t, contentPath); content != expectedContent {
			t.Fatalf("run %d: unexpected content %q", run, content)
		}
	}

	infos := harness.messages(zapcore.InfoLevel)
	expectedInfos := []string{
		"Generated:",
		"  " + treePath,
		"  " + contentPath,
		"Scanned 1 directories and 2 files, 0 contents skipped or truncated",
	}
	if len(infos) != 2*len(expectedInfos) || strings.Join(infos[:len(expectedInfos)], "|") != strings.Join(expectedInfos, "|") {
		t.Fatalf("unexpected log lines %q", infos)
	}
	if warnings := harness.messages(zapcore.WarnLevel); len(warnings) != 0 {
		t.Fatalf("unexpected warnings %q", warnings)
	}
}

func TestDumpCommandLogsContentNotices(t *testing.T) {
	prepareWorkspace(t, map[string]string{
		"bin.dat":        "a\x00b",
		"docs/large.log": strings.Repeat("x", 200001),
		"docs/readme.md": "# docs",
	})
	harness := testDependencies(t, nil)

	if _, err := runCommand(newDumpCommand(harness.dependencies)); err != nil {
		t.Fatalf("projdump failed: %v", err)
	}

	infos := harness.messages(zapcore.InfoLevel)
	if len(infos) != 4 || infos[3] != "Scanned 1 directories and 3 files, 2 contents skipped or truncated" {
		t.Fatalf("unexpected log lines %q", infos)
	}
	expectedWarnings := []string{
		"docs/large.log: [content skipped: file too large 200001 bytes]",
		"bin.dat: [content skipped: not a text file]",
	}
	if warnings := harness.messages(zapcore.WarnLevel); strings.Join(warnings, "|") != strings.Join(expectedWarnings, "|") {
		t.Fatalf("unexpected warnings %q", warnings)
	}
}

func TestDumpCommandOnEmptyProject(t *testing.T) {
	workingDirectory := prepareWorkspace(t, nil)
	harness := testDependencies(t, nil)

	if _, err := runCommand(newDumpCommand(harness.dependencies)); err != nil {
		t.Fatalf("projdump failed: %v", err)
	}
	if content := readFile(t, filepath.Join(workingDirectory, "project-tree.md")); content != filepath.Base(workingDirectory)+"/\n" {
		t.Fatalf("unexpected tree %q", content)
	}
	if content := readFile(t, filepath.Join(workingDirectory, "project-content.md")); content != "\n" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestCommandsPostProcessReports(t *testing.T) {
	workingDirectory := prepareWorkspace(t, map[string]string{"notes.txt": "note"})
	harness := testDependencies(t, nil)

	if _, err := runCommand(newDumpCommand(harness.dependencies), "--tokens", "--clipboard", "--model", "gpt-4o-mini"); err != nil {
		t.Fatalf("projdump failed: %v", err)
	}

	contentPath := filepath.Join(workingDirectory, "project-content.md")
	if len(harness.copier.labels) != 1 || harness.copier.labels[0] != "project-content.md" {
		t.Fatalf("unexpected clipboard labels %q", harness.copier.labels)
	}
	if harness.copier.texts[0] != readFile(t, contentPath) {
		t.Fatalf("clipboard text differs from the content report")
	}
	if len(harness.models) != 1 || harness.models[0] != "gpt-4o-mini" {
		t.Fatalf("unexpected tokenizer models %q", harness.models)
	}

	var estimates []string
	for _, message := range harness.messages(zapcore.InfoLevel) {
		if strings.Contains(message, "tokens (stub-gpt-4o-mini)") {
			estimates = append(estimates, message)
		}
	}
	content := readFile(t, contentPath)
	expectedEstimate := fmt.Sprintf("  %s: %s, %d lines, %d tokens (stub-gpt-4o-mini)", contentPath, utils.FormatFileSize(int64(len(content))), strings.Count(content, "\n"), len([]rune(content)))
	if len(estimates) != 2 || estimates[1] != expectedEstimate {
		t.Fatalf("unexpected token estimates %q, expected the content estimate %q", estimates, expectedEstimate)
	}
}

func TestCommandsReportPostProcessingFailuresAsWarnings(t *testing.T) {
	prepareWorkspace(t, map[string]string{".projmap.yaml": "core:\n  clipboard: true\n  tokens:\n    enabled: true\n"})
	harness := testDependencies(t, errors.New("encoding unavailable"))
	harness.copier.err = errors.New("no clipboard")

	if _, err := runCommand(newCoreCommand(harness.dependencies)); err != nil {
		t.Fatalf("projcore failed: %v", err)
	}
	warnings := harness.messages(zapcore.WarnLevel)
	expected := []string{"token counting unavailable: encoding unavailable", "no clipboard"}
	if strings.Join(warnings, "|") != strings.Join(expected, "|") {
		t.Fatalf("unexpected warnings %q", warnings)
	}
}

func TestFlagsOverrideConfiguredClipboard(t *testing.T) {
	prepareWorkspace(t, map[string]string{".projmap.yaml": "core:\n  clipboard: true\n"})
	harness := testDependencies(t, nil)

	if _, err := runCommand(newCoreCommand(harness.dependencies), "--clipboard=false"); err != nil {
		t.Fatalf("projcore failed: %v", err)
	}
	if len(harness.copier.labels) != 0 {
		t.Fatalf("expected the flag to disable the configured clipboard copy")
	}
}

func TestCommandsRejectInvalidInvocations(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "positional argument", arguments: []string{"extra"}},
		{name: "missing explicit configuration", arguments: []string{"--config", "absent.yaml"}},
		{name: "unknown flag", arguments: []string{"--format", "json"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			workingDirectory := prepareWorkspace(t, nil)
			harness := testDependencies(t, nil)
			if _, err := runCommand(newCoreCommand(harness.dependencies), testCase.arguments...); err == nil {
				t.Fatalf("expected an error")
			}
			if _, statErr := os.Stat(filepath.Join(workingDirectory, "project-core.md")); !os.IsNotExist(statErr) {
				t.Fatalf("expected no report to be written")
			}
		})
	}
}

func TestVersionFlagPrintsVersion(t *testing.T) {
	workingDirectory := prepareWorkspace(t, nil)
	harness := testDependencies(t, nil)

	commandOutput, err := runCommand(newDumpCommand(harness.dependencies), "--version")
	if err != nil {
		t.Fatalf("projdump --version failed: %v", err)
	}
	if !strings.HasPrefix(commandOutput, "projdump version: ") {
		t.Fatalf("unexpected version output %q", commandOutput)
	}
	if _, statErr := os.Stat(filepath.Join(workingDirectory, "project-tree.md")); !os.IsNotExist(statErr) {
		t.Fatalf("expected --version not to write reports")
	}
}

func TestInitSubcommandWritesConfiguration(t *testing.T) {
	workingDirectory := prepareWorkspace(t, nil)
	harness := testDependencies(t, nil)
	configurationPath := filepath.Join(workingDirectory, ".projmap.yaml")

	if _, err := runCommand(newCoreCommand(harness.dependencies), "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(readFile(t, configurationPath), "necessary_types: []") {
		t.Fatalf("expected the default configuration to be written")
	}
	if _, err := runCommand(newCoreCommand(harness.dependencies), "init"); err == nil {
		t.Fatalf("expected init to refuse overwriting")
	}
	if _, err := runCommand(newCoreCommand(harness.dependencies), "init", "--force"); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	infos := harness.messages(zapcore.InfoLevel)
	if len(infos) != 2 || infos[1] != "Configuration written to "+configurationPath {
		t.Fatalf("unexpected log lines %q", infos)
	}
}

func TestInitSubcommandGlobalTarget(t *testing.T) {
	prepareWorkspace(t, nil)
	harness := testDependencies(t, nil)

	if _, err := runCommand(newDumpCommand(harness.dependencies), "init", "--global"); err != nil {
		t.Fatalf("init --global failed: %v", err)
	}
	globalPath := filepath.Join(os.Getenv("HOME"), ".projmap", "config.yaml")
	if _, err := os.Stat(globalPath); err != nil {
		t.Fatalf("expected global configuration at %s: %v", globalPath, err)
	}
}

func TestDispatchStreamPropagatesConsumerError(t *testing.T) {
	consumerError := errors.New("disk full")
	producer := func(ctx context.Context, ch chan<- stream.Event) error {
		for index := 0; index < 3; index++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ch <- stream.Event{Kind: stream.EventKindFile}:
			}
		}
		return nil
	}
	consumed := 0
	consumer := func(stream.Event) error {
		consumed++
		return consumerError
	}

	if err := dispatchStream(context.Background(), producer, consumer); !errors.Is(err, consumerError) {
		t.Fatalf("expected consumer error, got %v", err)
	}
	if consumed != 1 {
		t.Fatalf("expected the pipeline to stop after the first failure, consumed %d", consumed)
	}
}

func TestDispatchStreamPropagatesProducerError(t *testing.T) {
	producerError := errors.New("unreadable directory")
	producer := func(context.Context, chan<- stream.Event) error { return producerError }
	consumer := func(stream.Event) error { return nil }

	if err := dispatchStream(context.Background(), producer, consumer); !errors.Is(err, producerError) {
		t.Fatalf("expected producer error, got %v", err)
	}
}
