// Copyright 2026, the findany contributors.

package bloomaccel

import "testing"

func TestMayMatchAtAcceptsPresentWindow(t *testing.T) {
	needles := [][]byte{[]byte("alpha"), []byte("bravo"), []byte("charlie")}
	acc := Build(needles, 5)

	s := acc.NewScanner()
	line := []byte("xxalphayy")
	found := false
	for i := range line {
		if s.MayMatchAt(line, i) {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one offset to be accepted where a needle's window actually occurs")
	}
}

func TestMayMatchAtNoFalseNegatives(t *testing.T) {
	needles := [][]byte{[]byte("needle"), []byte("haystack"), []byte("trie")}
	window := 4
	acc := Build(needles, window)
	s := acc.NewScanner()

	for _, n := range needles {
		line := []byte("---" + string(n) + "---")
		s.Reset()
		offset := 3
		if !s.MayMatchAt(line, offset) {
			t.Errorf("false negative: accelerator rejected an offset where %q actually starts", n)
		}
	}
}

func TestMayMatchAtRollingMatchesFresh(t *testing.T) {
	needles := [][]byte{[]byte("banana"), []byte("kiwi"), []byte("mango")}
	acc := Build(needles, 4)
	line := []byte("thisisalongerlinewithmangoinit")

	rolling := acc.NewScanner()
	fresh := acc.NewScanner()

	for i := 0; i+4 <= len(line); i++ {
		rollResult := rolling.MayMatchAt(line, i)
		fresh.Reset()
		freshResult := fresh.MayMatchAt(line, i)
		if rollResult != freshResult {
			t.Fatalf("offset %d: rolling scanner (%v) diverged from fresh scanner (%v)", i, rollResult, freshResult)
		}
	}
}

func TestMayMatchAtShortRemainderAlwaysTrue(t *testing.T) {
	needles := [][]byte{[]byte("abcdef")}
	acc := Build(needles, 6)
	s := acc.NewScanner()

	line := []byte("ab")
	if !s.MayMatchAt(line, 0) {
		t.Error("offset with fewer than window bytes remaining must return true")
	}
}
