// Copyright 2026, the findany contributors.

// Package diagnostics produces informational statistics about a needle
// set. It is grounded in muscato.go's writeNonMatch, which uses a
// willf/bloom filter purely as a membership pre-check before a
// definitive comparison. Here the same pattern estimates a duplicate
// rate among the needles; it is never consulted by the matcher and has
// no effect on matching semantics.
package diagnostics

import "github.com/willf/bloom"

// Stats summarises a needle set for the -V/--stats flag.
type Stats struct {
	Count             int
	ApproxDuplicates  int
	ShortestLen       int
	LongestLen        int
}

// Collect scans needles once, reporting counts and an approximate
// duplicate count. A needle that tests positive in the Bloom filter
// before being added is counted as a probable duplicate; since Bloom
// filters have no false negatives, every exact duplicate is always
// caught, at the cost of occasionally over-counting on a hash
// collision.
func Collect(needles [][]byte) Stats {
	var s Stats
	if len(needles) == 0 {
		return s
	}

	filter := bloom.New(uint(len(needles))*20+64, 5)
	shortest := -1
	for _, n := range needles {
		if len(n) == 0 {
			continue
		}
		if filter.Test(n) {
			s.ApproxDuplicates++
		} else {
			filter.Add(n)
		}
		if shortest == -1 || len(n) < shortest {
			shortest = len(n)
		}
		if len(n) > s.LongestLen {
			s.LongestLen = len(n)
		}
		s.Count++
	}
	if shortest == -1 {
		shortest = 0
	}
	s.ShortestLen = shortest
	return s
}
