package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/projmap/internal/commands"
	"github.com/temirov/projmap/internal/config"
	"github.com/temirov/projmap/internal/output"
	"github.com/temirov/projmap/internal/services/stream"
	"github.com/temirov/projmap/internal/tokenizer"
	"github.com/temirov/projmap/internal/utils"
)

// generatedReport is a report file as written to disk.
type generatedReport struct {
	path string
	data []byte
}

type postProcessing struct {
	clipboard bool
	tokens    bool
	model     string
}

func runCore(command *cobra.Command, dependencies commandDependencies, workingDirectory string, options runOptions, configuration config.ApplicationConfiguration) error {
	core := configuration.Core
	report, collectError := commands.CollectNecessary(workingDirectory, core.FilterSpec())
	if collectError != nil {
		return collectError
	}

	coreReport := generatedReport{
		path: resolveOutputPath(workingDirectory, core.Output),
		data: []byte(output.JoinLines(output.RenderNecessaryReport(report))),
	}
	if writeError := output.WriteReport(coreReport.path, coreReport.data); writeError != nil {
		return writeError
	}

	reports := []generatedReport{coreReport}
	announceGenerated(dependencies, reports)
	finishReports(dependencies, resolvePostProcessing(command, options, core.Clipboard, core.Tokens), reports, coreReport)
	return nil
}

func runDump(command *cobra.Command, dependencies commandDependencies, workingDirectory string, options runOptions, configuration config.ApplicationConfiguration) error {
	dump := configuration.Dump
	rootLabel, labelError := commands.RootLabel(workingDirectory)
	if labelError != nil {
		return labelError
	}

	var treeBuffer bytes.Buffer
	var contentBuffer bytes.Buffer
	renderer := output.NewDumpRenderer(&treeBuffer, &contentBuffer, rootLabel)

	producer := func(streamCtx context.Context, ch chan<- stream.Event) error {
		options := stream.ProjectOptions{
			Root: workingDirectory,
			Spec: dump.FilterSpec(),
		}
		return stream.StreamProject(streamCtx, options, ch)
	}

	ctx := command.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if streamError := renderStream(ctx, producer, renderer); streamError != nil {
		return streamError
	}

	treeReport := generatedReport{path: resolveOutputPath(workingDirectory, dump.TreeOutput), data: treeBuffer.Bytes()}
	contentReport := generatedReport{path: resolveOutputPath(workingDirectory, dump.ContentOutput), data: contentBuffer.Bytes()}
	reports := []generatedReport{treeReport, contentReport}
	for _, report := range reports {
		if writeError := output.WriteReport(report.path, report.data); writeError != nil {
			return writeError
		}
	}

	announceGenerated(dependencies, reports)
	summary := renderer.Summary()
	dependencies.logger.Info(fmt.Sprintf(dumpSummaryFormat, summary.Directories, summary.Files, summary.ElidedContents))
	for _, warning := range renderer.Warnings() {
		dependencies.logger.Warn(warning)
	}
	finishReports(dependencies, resolvePostProcessing(command, options, dump.Clipboard, dump.Tokens), reports, contentReport)
	return nil
}

// renderStream feeds the produced events to renderer and flushes it once the
// producer finished without error.
func renderStream(ctx context.Context, produce func(context.Context, chan<- stream.Event) error, renderer output.StreamRenderer) error {
	if err := dispatchStream(ctx, produce, renderer.Handle); err != nil {
		return err
	}
	return renderer.Flush()
}

func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func resolveOutputPath(workingDirectory string, configuredPath string) string {
	if filepath.IsAbs(configuredPath) {
		return configuredPath
	}
	return filepath.Join(workingDirectory, configuredPath)
}

func announceGenerated(dependencies commandDependencies, reports []generatedReport) {
	dependencies.logger.Info(generatedHeader)
	for _, report := range reports {
		dependencies.logger.Info(fmt.Sprintf(generatedEntryFormat, report.path))
	}
}

// finishReports runs the optional token estimate and clipboard copy. Their
// failures are logged as warnings because the reports are already written.
func finishReports(dependencies commandDependencies, settings postProcessing, reports []generatedReport, mainReport generatedReport) {
	if settings.tokens {
		logTokenEstimates(dependencies, settings.model, reports)
	}
	if settings.clipboard && dependencies.copier != nil {
		if copyError := dependencies.copier.Copy(filepath.Base(mainReport.path), string(mainReport.data)); copyError != nil {
			dependencies.logger.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
		}
	}
}

func logTokenEstimates(dependencies commandDependencies, model string, reports []generatedReport) {
	counter, resolvedModel, counterError := dependencies.newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		dependencies.logger.Warn(fmt.Sprintf(warningTokenizerFormat, counterError))
		return
	}
	for _, report := range reports {
		estimate, countError := tokenizer.EstimateReport(counter, report.data)
		if countError != nil {
			dependencies.logger.Warn(fmt.Sprintf(warningTokenCountFormat, report.path, countError))
			continue
		}
		size := utils.FormatFileSize(int64(estimate.Bytes))
		if !estimate.Counted {
			dependencies.logger.Info(fmt.Sprintf(tokenSkippedFormat, report.path, size, estimate.Lines))
			continue
		}
		dependencies.logger.Info(fmt.Sprintf(tokenEstimateFormat, report.path, size, estimate.Lines, estimate.Tokens, resolvedModel))
	}
}
