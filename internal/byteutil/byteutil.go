// Copyright 2026, the findany contributors.

// Package byteutil holds the small byte-level primitives shared by the
// line reader and the matcher: a fast delimiter scan, an ASCII-only
// lowercase fold, and trailing-byte trimming.
package byteutil

import (
	"bytes"
	"sync"
)

// IndexByte returns the offset of the first occurrence of c in buf, or
// -1 if absent. bytes.IndexByte already carries hand-tuned SIMD
// assembly on amd64 and arm64, which is exactly the "vectorised scan,
// scalar fallback" contract called for here; there is nothing this
// package should do differently.
func IndexByte(buf []byte, c byte) int {
	return bytes.IndexByte(buf, c)
}

var (
	lowerOnce  sync.Once
	lowerTable [256]byte
)

func buildLowerTable() {
	for i := 0; i < 256; i++ {
		lowerTable[i] = byte(i)
	}
	for c := byte('A'); c <= 'Z'; c++ {
		lowerTable[c] = c - 'A' + 'a'
	}
}

// ToLower writes the ASCII-lowercase fold of src into dst, reusing dst's
// backing array when it is large enough, and returns the resulting
// slice. Bytes at or above 0x80 map to themselves; this is a byte-wise
// fold, not Unicode case mapping. The lookup table is built at most once
// regardless of how many goroutines call ToLower concurrently.
func ToLower(src []byte, dst []byte) []byte {
	lowerOnce.Do(buildLowerTable)
	if cap(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]
	for i, c := range src {
		dst[i] = lowerTable[c]
	}
	return dst
}

// TrimTrailing shortens b while its last byte equals c. It never
// allocates or mutates the underlying array; it only narrows the slice
// header.
func TrimTrailing(b []byte, c byte) []byte {
	for len(b) > 0 && b[len(b)-1] == c {
		b = b[:len(b)-1]
	}
	return b
}
