// Copyright 2026, the findany contributors.

// Package bloomaccel implements the K-gram Bloom pre-filter accelerator
// described in SPEC_FULL.md §4.7. It is grounded in muscato_screen's
// Bloom-sketch screening stage: a handful of independent rolling hashes
// (buzhash32, following github.com/chmduquesne/rollinghash) feed a bit
// array, and a line offset is only worth walking the trie from if every
// hash's bit is set.
//
// The accelerator can only ever turn a true "no match here" into a fast
// no-op; it never answers "yes" on its own and must never introduce a
// false negative, since the trie remains the sole source of truth for
// leaf membership.
package bloomaccel

import (
	"math/rand"

	"github.com/chmduquesne/rollinghash"
	"github.com/chmduquesne/rollinghash/buzhash32"
	"github.com/golang-collections/go-datastructures/bitarray"
)

const numHash = 4

// Accelerator holds the Bloom filter built from the first Window bytes
// of every needle at least Window bytes long (which, by construction
// from the shortest needle, is every needle).
type Accelerator struct {
	window int
	size   uint64
	bits   bitarray.BitArray
	tables [numHash][256]uint32
}

// MinNeedles is the needle-count threshold: the accelerator is built
// only when the needle count exceeds it, since below that its setup
// cost is not worth paying; the trie's own per-node bitmap already
// handles small dictionaries well.
const MinNeedles = 4096

// MinWindow is the minimum shortest-needle length for which the
// accelerator is built. Below this, the rolling window is too narrow to
// discriminate usefully.
const MinWindow = 4

// Build constructs an accelerator for needles, using window as the
// K-gram width (the shortest needle length). It assumes every entry in
// needles has length >= window; the caller (the needle loader) is
// responsible for having computed window as that minimum.
func Build(needles [][]byte, window int) *Accelerator {
	a := &Accelerator{
		window: window,
		size:   uint64(len(needles))*32 + 1024,
	}
	a.bits = bitarray.NewBitArray(a.size)
	for j := range a.tables {
		genTable(&a.tables[j])
	}

	hashes := make([]rollinghash.Hash32, numHash)
	for j := range hashes {
		hashes[j] = buzhash32.NewFromUint32Array(a.tables[j])
	}

	for _, n := range needles {
		if len(n) < window {
			continue
		}
		for _, h := range hashes {
			h.Reset()
			_, _ = h.Write(n[:window])
			x := uint64(h.Sum32()) % a.size
			a.bits.SetBit(x)
		}
	}

	return a
}

// genTable fills table with a random permutation-free set of 256
// distinct byte->uint32 base values, following the teacher's genTables.
// Base values need not be deterministic across runs: they only affect
// which offsets trigger the (harmless) Bloom false-positive fallback to
// the trie, never the matcher's observable result.
func genTable(table *[256]uint32) {
	seen := make(map[uint32]bool, 256)
	for i := 0; i < 256; i++ {
		for {
			x := uint32(rand.Int63())
			if !seen[x] {
				table[i] = x
				seen[x] = true
				break
			}
		}
	}
}

// Window reports the K-gram width this accelerator was built for.
func (a *Accelerator) Window() int {
	return a.window
}

// Scanner walks a single line's offsets in increasing order, rolling the
// hash state forward one byte at a time instead of recomputing it from
// scratch at every offset.
type Scanner struct {
	acc    *Accelerator
	hashes []rollinghash.Hash32
	pos    int // offset whose window is currently loaded, or -1
}

// NewScanner returns a scanner bound to acc. A Scanner is reused across
// many lines via Reset; it is not safe for concurrent use.
func (a *Accelerator) NewScanner() *Scanner {
	hashes := make([]rollinghash.Hash32, numHash)
	for j := range hashes {
		hashes[j] = buzhash32.NewFromUint32Array(a.tables[j])
	}
	return &Scanner{acc: a, hashes: hashes, pos: -1}
}

// Reset must be called between lines so the scanner does not mistake the
// new line's offset 0 for a continuation of the previous line's window.
func (s *Scanner) Reset() {
	s.pos = -1
}

// MayMatchAt reports whether some needle could possibly start matching
// at line[i:]. A false return is a guarantee; a true return means the
// trie must still be consulted. Offsets with fewer than Window bytes
// remaining always return true, since the accelerator cannot make a
// claim about a window it cannot form.
func (s *Scanner) MayMatchAt(line []byte, i int) bool {
	w := s.acc.window
	if i+w > len(line) {
		return true
	}

	switch {
	case s.pos == i-1 && s.pos >= 0:
		b := line[i+w-1]
		for _, h := range s.hashes {
			h.Roll(b)
		}
	default:
		for _, h := range s.hashes {
			h.Reset()
			_, _ = h.Write(line[i : i+w])
		}
	}
	s.pos = i

	for _, h := range s.hashes {
		x := uint64(h.Sum32()) % s.acc.size
		ok, _ := s.acc.bits.GetBit(x)
		if !ok {
			return false
		}
	}
	return true
}
