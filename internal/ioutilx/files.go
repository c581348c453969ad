// Copyright 2026, the findany contributors.

// Package ioutilx opens the files findany reads and writes, adding two
// things the standard library does not: transparent Snappy framing for
// paths ending in .sz (grounded in muscato's pervasive use of
// golang/snappy for intermediate files), and a cheap file-size probe
// via golang.org/x/sys/unix for the progress reporter's "of N total"
// display.
package ioutilx

import (
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/sys/unix"
)

const snappySuffix = ".sz"

// OpenRead opens path for reading, returning a reader that transparently
// decompresses Snappy-framed data if path ends in .sz. An empty path
// means stdin; stdin is never treated as compressed, since the caller
// cannot be expected to name it with a suffix.
func OpenRead(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, snappySuffix) {
		return f, nil
	}
	return &szReader{r: snappy.NewReader(f), f: f}, nil
}

type szReader struct {
	r *snappy.Reader
	f *os.File
}

func (s *szReader) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s *szReader) Close() error                { return s.f.Close() }

// CreateWrite creates path for writing (truncating any existing file),
// returning a writer that transparently Snappy-frames its output if
// path ends in .sz. An empty path means stdout.
func CreateWrite(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, snappySuffix) {
		return f, nil
	}
	return &szWriter{w: snappy.NewBufferedWriter(f), f: f}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type szWriter struct {
	w *snappy.Writer
	f *os.File
}

func (s *szWriter) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *szWriter) Close() error {
	if err := s.w.Close(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// FileSize reports f's size in bytes via fstat, and whether the probe
// succeeded. For non-regular files such as pipes, fstat usually
// succeeds with a size of 0; a size of 0, like a failed probe, makes
// the progress reporter omit the "of N total" portion of its display.
func FileSize(f *os.File) (uint64, bool) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return 0, false
	}
	if st.Size < 0 {
		return 0, false
	}
	return uint64(st.Size), true
}
