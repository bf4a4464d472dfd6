// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Options selects how chatty and how colorful the logger is.
type Options struct {
	// Quiet drops everything below the error level.
	Quiet bool
	// Verbose enables debug output.
	Verbose bool
	// NoColor disables ANSI styling regardless of terminal support.
	NoColor bool
}

// New builds the logger the command line and the collation pipeline
// share.
func New(opts Options) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	switch {
	case opts.Quiet:
		logger.SetLevel(log.ErrorLevel)
	case opts.Verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if opts.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// Discard returns a logger that drops everything, for tests and for
// callers that opt out of logging entirely.
func Discard() *log.Logger {
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	return logger
}
