// package logger wraps the application-wide structured logger.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new [log.Logger] writing to w, with timestamps enabled.
// The writer defaults to [os.Stderr].
func New(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true})
}

// Component creates a child logger tagged with the component name.
func Component(parent *log.Logger, name string) *log.Logger {
	return parent.With("component", name)
}
