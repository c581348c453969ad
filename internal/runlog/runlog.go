// Copyright 2026, the findany contributors.

// Package runlog provides the diagnostic logger used for everything
// that is not matched-line output. It follows muscato's convention of
// tagging every run with a google/uuid identifier, which makes it
// possible to correlate a run's stderr diagnostics even when several
// runs interleave in a shared log collector.
package runlog

import (
	"io"
	"log"

	"github.com/google/uuid"
)

// Logger wraps a standard logger with a run ID prefix and a verbosity
// gate. Ordinary runs stay silent; Verbosef only emits when verbose
// output was requested (-V/--stats).
type Logger struct {
	l       *log.Logger
	verbose bool
	RunID   string
}

// New creates a Logger writing to out, tagged with a freshly generated
// run ID.
func New(out io.Writer, verbose bool) *Logger {
	id := uuid.New().String()
	return &Logger{
		l:       log.New(out, "["+id+"] ", log.LstdFlags),
		verbose: verbose,
		RunID:   id,
	}
}

// Printf always logs, regardless of verbosity.
func (lg *Logger) Printf(format string, args ...interface{}) {
	lg.l.Printf(format, args...)
}

// Verbosef logs only when the logger was constructed with verbose=true.
func (lg *Logger) Verbosef(format string, args ...interface{}) {
	if lg.verbose {
		lg.l.Printf(format, args...)
	}
}

// Fatalf logs and then terminates the process, matching the
// conventions of log.Logger.Fatalf.
func (lg *Logger) Fatalf(format string, args ...interface{}) {
	lg.l.Fatalf(format, args...)
}
