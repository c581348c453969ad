// Copyright 2026, the findany contributors.

package linereader

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, src io.Reader) []string {
	t.Helper()
	r := New(src)
	var lines []string
	for {
		line, err := r.NextLine()
		if err != nil {
			t.Fatalf("NextLine: %v", err)
		}
		if len(line) == 0 {
			break
		}
		lines = append(lines, string(line))
	}
	return lines
}

func TestBasicLines(t *testing.T) {
	got := readAll(t, strings.NewReader("a\nbb\nccc\n"))
	want := []string{"a\n", "bb\n", "ccc\n"}
	if !equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFinalLineWithoutNewline(t *testing.T) {
	got := readAll(t, strings.NewReader("a\nb"))
	want := []string{"a\n", "b"}
	if !equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyInput(t *testing.T) {
	got := readAll(t, strings.NewReader(""))
	if len(got) != 0 {
		t.Errorf("got %q, want no lines", got)
	}
}

func TestBlankLines(t *testing.T) {
	got := readAll(t, strings.NewReader("\n\na\n\n"))
	want := []string{"\n", "\n", "a\n", "\n"}
	if !equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

// chunkedReader emits at most n bytes per Read call, to exercise line
// boundary independence (P7) regardless of refill granularity.
type chunkedReader struct {
	data []byte
	n    int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	k := c.n
	if k > len(p) {
		k = len(p)
	}
	if k > len(c.data) {
		k = len(c.data)
	}
	copy(p, c.data[:k])
	c.data = c.data[k:]
	return k, nil
}

func TestLineBoundaryIndependence(t *testing.T) {
	text := "the quick brown fox\njumps over\nthe lazy dog\nand then some more text\n"
	want := readAll(t, strings.NewReader(text))

	for _, chunk := range []int{1, 2, 3, 5, 7, 16, 64, 4096} {
		got := readAll(t, &chunkedReader{data: []byte(text), n: chunk})
		if !equal(got, want) {
			t.Errorf("chunk size %d: got %q, want %q", chunk, got, want)
		}
	}
}

func TestCRLFPreservedVerbatim(t *testing.T) {
	got := readAll(t, strings.NewReader("a\r\nb\n"))
	want := []string{"a\r\n", "b\n"}
	if !equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNulByteByteOriented(t *testing.T) {
	input := []byte("ab\x00cd\n")
	r := New(bytes.NewReader(input))
	line, err := r.NextLine()
	if err != nil {
		t.Fatalf("NextLine: %v", err)
	}
	if !bytes.Equal(line, input) {
		t.Errorf("got %q, want %q", line, input)
	}
}

// TestVeryLongLine matches S6's shape: one line far larger than the
// refill buffer must still be returned whole, exercising the geometric
// growth policy.
func TestVeryLongLine(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 5*RefillSize)
	needle := []byte("NEEDLE")
	copy(long[len(long)-100:], needle)
	input := append(append([]byte{}, long...), '\n')

	r := New(bytes.NewReader(input))
	line, err := r.NextLine()
	if err != nil {
		t.Fatalf("NextLine: %v", err)
	}
	if len(line) != len(input) {
		t.Fatalf("got line length %d, want %d", len(line), len(input))
	}
	if !bytes.Contains(line, needle) {
		t.Error("needle not preserved in very long line")
	}

	next, err := r.NextLine()
	if err != nil {
		t.Fatalf("NextLine (second): %v", err)
	}
	if len(next) != 0 {
		t.Errorf("expected end of stream, got %q", next)
	}
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }

func TestReadErrorIsFatal(t *testing.T) {
	sentinel := io.ErrUnexpectedEOF
	r := New(errReader{err: sentinel})
	_, err := r.NextLine()
	if err == nil {
		t.Fatal("expected an error from a failing source")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
