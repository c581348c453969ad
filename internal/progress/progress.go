// Copyright 2026, the findany contributors.

// Package progress renders a single-line, self-overwriting progress bar
// to a writer (normally stderr), following the C original's
// print_progress/build_progress_str/format_size trio: a dual rate
// limit (skip an update unless at least one megabyte of additional
// progress has happened AND at least one second has elapsed, unless
// forced), a 32-cell bar, and a human-readable byte count.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	barWidth      = 32
	minByteDelta  = 1 << 20
	minTimeDelta  = time.Second
)

// Reporter tracks the state needed to rate-limit and overwrite progress
// updates. Construct it with New; the zero value has no output writer.
type Reporter struct {
	out io.Writer

	lastReported uint64
	lastTime     time.Time
	lastLineLen  int
	started      bool
}

// New returns a Reporter that writes to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report renders processed/total (total may be 0 if unknown) unless the
// dual rate limit suppresses it. force bypasses the rate limit; the
// caller should pass force=true for the final update so the bar always
// ends at 100%.
func (r *Reporter) Report(processed, total uint64, force bool) {
	now := time.Now()
	if !force && r.started {
		if processed-r.lastReported < minByteDelta {
			return
		}
		if now.Sub(r.lastTime) < minTimeDelta {
			return
		}
	}
	r.lastReported = processed
	r.lastTime = now
	r.started = true

	line := buildProgressString(processed, total)
	pad := ""
	if r.lastLineLen > len(line) {
		pad = strings.Repeat(" ", r.lastLineLen-len(line))
	}
	r.lastLineLen = len(line)
	fmt.Fprintf(r.out, "\r%s%s", line, pad)
}

// Done writes a trailing newline once the final Report has been made,
// so later diagnostic output does not collide with the overwritten
// line.
func (r *Reporter) Done() {
	if r.started {
		fmt.Fprint(r.out, "\n")
	}
}

func buildProgressString(processed, total uint64) string {
	if total == 0 {
		return fmt.Sprintf("%s processed", formatSize(processed))
	}

	frac := float64(processed) / float64(total)
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(barWidth))

	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Repeat("=", filled))
	if filled < barWidth {
		b.WriteByte('>')
		b.WriteString(strings.Repeat(" ", barWidth-filled-1))
	}
	b.WriteByte(']')
	fmt.Fprintf(&b, " %5.1f%% (%s / %s)", frac*100, formatSize(processed), formatSize(total))
	return b.String()
}

// formatSize renders n bytes using the largest unit for which the value
// is at least 1, to one decimal place, matching format_size's B/K/M/G
// ladder.
func formatSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	suffix := "KMGT"[exp]
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), suffix)
}
