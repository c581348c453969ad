// Copyright 2026, the findany contributors.

// Package matcher drives the per-line scanning loop described in
// SPEC_FULL.md §4.5: read a line, decide whether any needle occurs
// within it, and emit the line (or not) according to the invert flag.
// It wires together linereader, byteutil, trie, and the optional
// bloomaccel pre-filter.
package matcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/kshedden/findany/internal/bloomaccel"
	"github.com/kshedden/findany/internal/byteutil"
	"github.com/kshedden/findany/internal/linereader"
	"github.com/kshedden/findany/internal/trie"
)

// ErrWriteFailed distinguishes a failure writing matched output from a
// failure reading input; the CLI reports the two with different
// messages.
var ErrWriteFailed = errors.New("matcher: write failed")

// Matcher holds the configuration and scratch state for one streaming
// pass over an input.
type Matcher struct {
	Trie           *trie.Trie
	CaseInsensitive bool
	Invert         bool
	Accel          *bloomaccel.Accelerator

	lowerBuf []byte
}

// Stats reports counters accumulated over a Run.
type Stats struct {
	LinesRead    uint64
	LinesMatched uint64
	BytesRead    uint64
}

// Progress is notified periodically with the number of input bytes
// consumed so far; implementations should rate-limit their own display.
type Progress interface {
	Report(processed, total uint64, force bool)
}

// Run streams lines from src to dst, writing each line that contains
// (or, if Invert, does not contain) any needle. total is the known
// input size, or 0 if unknown; it is passed through to prog unchanged.
// A non-nil error wraps either a read failure from src or, tagged with
// ErrWriteFailed, a write failure to dst.
func (m *Matcher) Run(src io.Reader, dst io.Writer, total uint64, prog Progress) (Stats, error) {
	var stats Stats
	r := linereader.New(src)

	var scanner *bloomaccel.Scanner
	if m.Accel != nil {
		scanner = m.Accel.NewScanner()
	}

	for {
		line, err := r.NextLine()
		if err != nil {
			return stats, fmt.Errorf("read input: %w", err)
		}
		if len(line) == 0 {
			break
		}

		stats.LinesRead++
		stats.BytesRead += uint64(len(line))

		matched := m.containsAnyNeedle(line, scanner)
		if matched != m.Invert {
			stats.LinesMatched++
			if _, err := dst.Write(line); err != nil {
				return stats, fmt.Errorf("%w: %v", ErrWriteFailed, err)
			}
		}

		if prog != nil {
			prog.Report(stats.BytesRead, total, false)
		}
	}

	if prog != nil {
		prog.Report(stats.BytesRead, total, true)
	}
	return stats, nil
}

// containsAnyNeedle trims line's trailing newline and carriage return,
// optionally case-folds it, then tests every remaining offset for a
// needle prefix match, consulting the accelerator first when present.
func (m *Matcher) containsAnyNeedle(line []byte, scanner *bloomaccel.Scanner) bool {
	work := byteutil.TrimTrailing(line, '\n')
	work = byteutil.TrimTrailing(work, '\r')

	if m.CaseInsensitive {
		m.lowerBuf = byteutil.ToLower(work, m.lowerBuf)
		work = m.lowerBuf
	}

	if scanner != nil {
		scanner.Reset()
	}

	for i := range work {
		if scanner != nil && !scanner.MayMatchAt(work, i) {
			continue
		}
		if m.Trie.HasPrefixMatch(work[i:]) {
			return true
		}
	}
	return false
}
