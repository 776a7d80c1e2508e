// Package clipboard copies generated reports to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const errorCopyFormat = "copying %s to clipboard: %w"

// ErrUnsupported is returned when no clipboard utility is available on the host.
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(label string, text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll    func(string) error
	unsupported func() bool
}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{
		writeAll:    clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// Copy writes text to the system clipboard. label names the copied report in errors.
func (service *Service) Copy(label string, text string) error {
	if service.unsupported != nil && service.unsupported() {
		return fmt.Errorf(errorCopyFormat, label, ErrUnsupported)
	}
	if writeError := service.writeAll(text); writeError != nil {
		return fmt.Errorf(errorCopyFormat, label, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
