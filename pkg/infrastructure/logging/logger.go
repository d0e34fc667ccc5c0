// Package logging constructs the structured logger used by the CLI and the
// persistence layer. The pure engines never log.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to stderr. Verbose lowers the level to Debug.
func New(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "prodplan",
	})
}

// Discard creates a logger that drops everything, for tests and embedding
func Discard() *log.Logger {
	return log.New(io.Discard)
}
