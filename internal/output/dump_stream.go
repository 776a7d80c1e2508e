package output

import (
	"bufio"
	"io"

	"github.com/temirov/projmap/internal/services/stream"
)

// DumpRenderer is the StreamRenderer of the full dump.
type DumpRenderer struct {
	tree           *bufio.Writer
	content        *bufio.Writer
	rootLabel      string
	wroteRoot      bool
	contentWritten bool
	warnings       []string
	summary        stream.SummaryEvent
}

// NewDumpRenderer writes the dump tree to treeWriter and the file content
// blocks to contentWriter as stream events arrive. After Flush each writer
// holds its lines joined with newlines and terminated by one more newline.
func NewDumpRenderer(treeWriter, contentWriter io.Writer, rootLabel string) *DumpRenderer {
	return &DumpRenderer{
		tree:      bufio.NewWriter(treeWriter),
		content:   bufio.NewWriter(contentWriter),
		rootLabel: rootLabel,
	}
}

func (renderer *DumpRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		return renderer.writeRoot()
	case stream.EventKindDirectory:
		if event.Directory == nil {
			return nil
		}
		if err := renderer.writeRoot(); err != nil {
			return err
		}
		return writeLine(renderer.tree, event.Directory.TreeLine)
	case stream.EventKindFile:
		if event.File == nil {
			return nil
		}
		if err := renderer.writeRoot(); err != nil {
			return err
		}
		if err := writeLine(renderer.tree, event.File.TreeLine); err != nil {
			return err
		}
		for _, contentLine := range event.File.Content {
			if err := writeLine(renderer.content, contentLine); err != nil {
				return err
			}
			renderer.contentWritten = true
		}
	case stream.EventKindWarning:
		if event.Message != "" {
			renderer.warnings = append(renderer.warnings, event.Path+": "+event.Message)
		}
	case stream.EventKindSummary:
		if event.Summary != nil {
			renderer.summary = *event.Summary
		}
	}
	return nil
}

func (renderer *DumpRenderer) Flush() error {
	if err := renderer.writeRoot(); err != nil {
		return err
	}
	if !renderer.contentWritten {
		if _, err := renderer.content.WriteString(lineSeparator); err != nil {
			return err
		}
	}
	if err := renderer.tree.Flush(); err != nil {
		return err
	}
	return renderer.content.Flush()
}

// Warnings returns the content notices received so far as "path: notice".
func (renderer *DumpRenderer) Warnings() []string {
	return renderer.warnings
}

// Summary returns the counts of the last summary event, or zero counts when none arrived.
func (renderer *DumpRenderer) Summary() stream.SummaryEvent {
	return renderer.summary
}

func (renderer *DumpRenderer) writeRoot() error {
	if renderer.wroteRoot {
		return nil
	}
	renderer.wroteRoot = true
	return writeLine(renderer.tree, renderer.rootLabel)
}

func writeLine(writer *bufio.Writer, line string) error {
	if _, err := writer.WriteString(line); err != nil {
		return err
	}
	_, err := writer.WriteString(lineSeparator)
	return err
}
