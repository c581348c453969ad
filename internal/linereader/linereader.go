// Copyright 2026, the findany contributors.

// Package linereader turns an arbitrary io.Reader into successive line
// slices without loading the whole stream into memory, following the
// fstream_read_line approach: a large refill buffer feeding a
// geometrically-growing line buffer, with the delimiter search done by
// byteutil.IndexByte.
package linereader

import (
	"fmt"
	"io"

	"github.com/kshedden/findany/internal/byteutil"
)

const (
	// RefillSize is the chunk size read from the underlying source on
	// each refill. The C original uses 4 MiB; bounded memory in the
	// input size only requires this to be independent of total input
	// length, not any particular value.
	RefillSize = 4 * 1024 * 1024

	initialLineCapacity = 4096
)

// Reader produces successive lines, each including its trailing '\n' if
// the source had one. The final line of a stream that does not end in
// '\n' is returned without one. An empty slice with a nil error signals
// a clean end of stream.
type Reader struct {
	src io.Reader

	refill    []byte
	refillLen int
	refillOff int

	line []byte
}

// New wraps src. The caller remains responsible for closing src.
func New(src io.Reader) *Reader {
	return &Reader{
		src:    src,
		refill: make([]byte, RefillSize),
	}
}

func (r *Reader) fill() error {
	n, err := r.src.Read(r.refill)
	r.refillLen = n
	r.refillOff = 0
	if err != nil && err != io.EOF {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// NextLine returns the next line. A non-nil error means the underlying
// source failed outright (as distinct from a clean EOF); the caller
// should treat that as fatal rather than as end of stream.
func (r *Reader) NextLine() ([]byte, error) {
	r.line = r.line[:0]
	offset := 0

	if r.refillOff >= r.refillLen {
		if err := r.fill(); err != nil {
			return nil, err
		}
	}

	for r.refillLen > 0 {
		chunk := r.refill[r.refillOff:r.refillLen]
		idx := byteutil.IndexByte(chunk, '\n')

		var length int
		found := idx >= 0
		if found {
			length = idx + 1
		} else {
			length = len(chunk)
		}

		needed := offset + length
		r.ensureLineCapacity(needed)
		r.line = r.line[:needed]
		copy(r.line[offset:needed], chunk[:length])

		r.refillOff += length
		offset = needed

		if found {
			break
		}
		if r.refillOff >= r.refillLen {
			if err := r.fill(); err != nil {
				return nil, err
			}
			if r.refillLen == 0 {
				break
			}
		}
	}

	return r.line, nil
}

// ensureLineCapacity grows the line buffer geometrically (doubling) so
// that repeated growth across very long lines stays amortised O(1) per
// byte, matching the C original's string_expand policy.
func (r *Reader) ensureLineCapacity(needed int) {
	if needed <= cap(r.line) {
		return
	}
	newCap := cap(r.line)
	if newCap == 0 {
		newCap = initialLineCapacity
	}
	for newCap < needed {
		newCap *= 2
	}
	grown := make([]byte, len(r.line), newCap)
	copy(grown, r.line)
	r.line = grown
}
