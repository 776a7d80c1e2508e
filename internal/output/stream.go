package output

import (
	"github.com/temirov/projmap/internal/services/stream"
)

// StreamRenderer consumes stream events in order. Flush is called once after the last event.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}

var _ StreamRenderer = (*DumpRenderer)(nil)
