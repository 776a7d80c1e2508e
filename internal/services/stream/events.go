package stream

// EventKind names the stage of the dump an Event belongs to.
type EventKind string

const (
	EventKindStart     EventKind = "start"
	EventKindDirectory EventKind = "directory"
	EventKindFile      EventKind = "file"
	EventKindWarning   EventKind = "warning"
	EventKindSummary   EventKind = "summary"
	EventKindDone      EventKind = "done"
)

// Event is one step of the dump. Path is relative to the project root, except
// for start, summary and done events which carry the root itself.
type Event struct {
	Kind EventKind
	Path string

	Directory *DirectoryEvent
	File      *FileEvent
	Summary   *SummaryEvent
	// Message holds the notice of a warning event.
	Message string
}

// DirectoryEvent describes a directory line of the dump tree.
type DirectoryEvent struct {
	TreeLine string
}

// FileEvent describes a file line of the dump tree together with its content block.
type FileEvent struct {
	TreeLine string
	Content  []string
}

// SummaryEvent counts what the walk visited.
type SummaryEvent struct {
	Directories int
	Files       int
	// ElidedContents counts files whose content was skipped or truncated.
	ElidedContents int
}
