package stream

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/projmap/internal/commands"
	"github.com/temirov/projmap/internal/types"
)

type ProjectOptions struct {
	Root string
	Spec types.FilterSpec
}

type emitter struct {
	ctx context.Context
	out chan<- Event
}

func newEmitter(ctx context.Context, out chan<- Event) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return fmt.Errorf("stream: event channel is nil")
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) warn(path, message string) error {
	trimmed := strings.TrimRight(message, "\n")
	if trimmed == "" {
		return nil
	}
	return e.send(Event{
		Kind:    EventKindWarning,
		Path:    path,
		Message: trimmed,
	})
}

type summaryTracker struct {
	directories int
	files       int
	elided      int
}

func (tracker *summaryTracker) summary() *SummaryEvent {
	return &SummaryEvent{
		Directories:    tracker.directories,
		Files:          tracker.files,
		ElidedContents: tracker.elided,
	}
}

// StreamProject walks opts.Root for the full dump and sends one event per
// tree entry to out, framed by start and done events. A file whose content
// was skipped or truncated is followed by a warning event. The walk stops
// when ctx is cancelled or the walk fails.
func StreamProject(ctx context.Context, opts ProjectOptions, out chan<- Event) error {
	if opts.Root == "" {
		return fmt.Errorf("stream: project root path is empty")
	}

	emitter := newEmitter(ctx, out)
	if err := emitter.send(Event{Kind: EventKindStart, Path: opts.Root}); err != nil {
		return err
	}

	tracker := &summaryTracker{}
	handler := func(evt commands.TreeEvent) error {
		switch evt.Kind {
		case commands.TreeEventDirectory:
			tracker.directories++
			return emitter.send(Event{
				Kind: EventKindDirectory,
				Path: evt.RelativePath,
				Directory: &DirectoryEvent{
					TreeLine: evt.TreeLine,
				},
			})
		case commands.TreeEventFile:
			tracker.files++
			if err := emitter.send(Event{
				Kind: EventKindFile,
				Path: evt.RelativePath,
				File: &FileEvent{
					TreeLine: evt.TreeLine,
					Content:  evt.Content,
				},
			}); err != nil {
				return err
			}
			if evt.Notice == "" {
				return nil
			}
			tracker.elided++
			return emitter.warn(evt.RelativePath, evt.Notice)
		default:
			return fmt.Errorf("stream: unknown tree event kind %d", evt.Kind)
		}
	}

	streamOptions := commands.ProjectStreamOptions{Root: opts.Root, Spec: opts.Spec}
	if err := commands.StreamProject(streamOptions, handler); err != nil {
		return err
	}

	if err := emitter.send(Event{Kind: EventKindSummary, Path: opts.Root, Summary: tracker.summary()}); err != nil {
		return err
	}
	return emitter.send(Event{Kind: EventKindDone, Path: opts.Root})
}
