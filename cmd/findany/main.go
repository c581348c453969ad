// Copyright 2026, the findany contributors.

// Command findany is a line-oriented multi-substring filter: it emits
// every input line containing (or, with -v, not containing) any
// needle from a dictionary supplied as a needle file, inline -s flags,
// or both.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kshedden/findany/internal/bloomaccel"
	"github.com/kshedden/findany/internal/byteutil"
	"github.com/kshedden/findany/internal/diagnostics"
	"github.com/kshedden/findany/internal/ioutilx"
	"github.com/kshedden/findany/internal/linereader"
	"github.com/kshedden/findany/internal/matcher"
	"github.com/kshedden/findany/internal/progress"
	"github.com/kshedden/findany/internal/runlog"
	"github.com/kshedden/findany/internal/trie"
	"github.com/pkg/profile"
)

const usage = `usage: findany [OPTIONS] [SUBSTRINGS] [FILE]

Find any substring from SUBSTRINGS in all lines of FILE (or standard
input) and print the ones that contain at least one.

  -i, --case-insensitive   fold case (ASCII only) when matching
  -v, --invert             emit lines matching no needle
  -o, --output OUTPUT      write to OUTPUT instead of standard output
  -s, --substring STRING   add one needle from the command line
                           (repeatable; must not be combined with the
                           SUBSTRINGS argument)
  -V, --stats              print diagnostic statistics to standard error
      --profile DIR        write a CPU profile (cpu.pprof) into directory DIR
  -h, --help               print this help and exit

Paths ending in .sz are read/written Snappy-compressed transparently.
`

// stringSlice accumulates repeated -s/--substring occurrences.
type stringSlice struct{ values []string }

func (s *stringSlice) String() string { return strings.Join(s.values, ",") }
func (s *stringSlice) Set(v string) error {
	s.values = append(s.values, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stdout, usage)
		return 0
	}

	fs := flag.NewFlagSet("findany", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	var caseInsensitive, invert, help, stats bool
	var output, profileFile string
	var substrings stringSlice

	fs.BoolVar(&caseInsensitive, "i", false, "")
	fs.BoolVar(&caseInsensitive, "case-insensitive", false, "")
	fs.BoolVar(&invert, "v", false, "")
	fs.BoolVar(&invert, "invert", false, "")
	fs.StringVar(&output, "o", "", "")
	fs.StringVar(&output, "output", "", "")
	fs.Var(&substrings, "s", "")
	fs.Var(&substrings, "substring", "")
	fs.BoolVar(&help, "h", false, "")
	fs.BoolVar(&help, "help", false, "")
	fs.BoolVar(&stats, "V", false, "")
	fs.BoolVar(&stats, "stats", false, "")
	fs.StringVar(&profileFile, "profile", "", "")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if help {
		fmt.Fprint(os.Stdout, usage)
		return 0
	}

	positional := fs.Args()
	haveInline := len(substrings.values) > 0

	// Resolution of spec.md §6's positional-argument rule: with -s,
	// SUBSTRINGS is absent and the sole remaining positional (if any)
	// is FILE; otherwise the first positional is the needle-file path
	// SUBSTRINGS and the optional second is FILE. Unlike the C
	// source's switch(argc-optind) fallthrough, which silently
	// overwrites a FILE set from two remaining positionals when -s was
	// also given, two or more positionals alongside -s is a usage
	// error here rather than a silent drop.
	var needleFile string
	var inputPath string
	switch {
	case haveInline:
		switch len(positional) {
		case 0:
		case 1:
			inputPath = positional[0]
		default:
			fmt.Fprintln(os.Stdout, "findany: too many arguments with -s")
			fmt.Fprint(os.Stdout, usage)
			return 2
		}
	case len(positional) == 0:
		fmt.Fprint(os.Stdout, usage)
		return 2
	case len(positional) == 1:
		needleFile = positional[0]
	case len(positional) == 2:
		needleFile = positional[0]
		inputPath = positional[1]
	default:
		fmt.Fprintln(os.Stdout, "findany: too many arguments")
		fmt.Fprint(os.Stdout, usage)
		return 2
	}

	logger := runlog.New(os.Stderr, stats)

	if profileFile != "" {
		stop := profile.Start(profile.ProfilePath(profileFile), profile.Quiet)
		defer stop.Stop()
	}

	needles, err := loadNeedles(needleFile, substrings.values, caseInsensitive)
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
		return 1
	}
	logger.Verbosef("loaded %d needle(s)", len(needles))

	if stats {
		d := diagnostics.Collect(needles)
		logger.Printf("needle stats: count=%d approx_duplicates=%d shortest=%d longest=%d",
			d.Count, d.ApproxDuplicates, d.ShortestLen, d.LongestLen)
	}

	idx := trie.New()
	minLen := -1
	for _, n := range needles {
		idx.Insert(n)
		if minLen == -1 || len(n) < minLen {
			minLen = len(n)
		}
	}
	logger.Verbosef("built trie with %d nodes", idx.NodeCount())

	var accel *bloomaccel.Accelerator
	if len(needles) > bloomaccel.MinNeedles && minLen >= bloomaccel.MinWindow {
		accel = bloomaccel.Build(needles, minLen)
		logger.Verbosef("built K-gram accelerator, window=%d", minLen)
	}

	in, err := ioutilx.OpenRead(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stdout, "findany: cannot open %s\n", displayName(inputPath, "standard input"))
		return 1
	}
	defer in.Close()

	out, err := ioutilx.CreateWrite(output)
	if err != nil {
		fmt.Fprintf(os.Stdout, "findany: cannot open %s\n", displayName(output, "standard output"))
		return 1
	}
	defer out.Close()

	var total uint64
	if f, ok := in.(*os.File); ok {
		if sz, ok := ioutilx.FileSize(f); ok {
			total = sz
		}
	}

	var prog matcher.Progress
	var reporter *progress.Reporter
	if output != "" {
		reporter = progress.New(os.Stderr)
		prog = reporter
	}

	m := &matcher.Matcher{
		Trie:            idx,
		CaseInsensitive: caseInsensitive,
		Invert:          invert,
		Accel:           accel,
	}

	code := runStreaming(m, in, out, total, prog, logger)
	if reporter != nil {
		reporter.Done()
	}
	return code
}

// runStreaming performs the streaming match pass, converting allocation
// exhaustion and the matcher's write-failure sentinel into the
// fatal-message contract of spec.md §7.
func runStreaming(m *matcher.Matcher, in interface {
	Read([]byte) (int, error)
}, out interface {
	Write([]byte) (int, error)
}, total uint64, prog matcher.Progress, logger *runlog.Logger) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stdout, "Not enough memory")
			code = 1
		}
	}()

	stats, err := m.Run(in, out, total, prog)
	if err != nil {
		if errors.Is(err, matcher.ErrWriteFailed) {
			fmt.Fprintln(os.Stdout, "Failed to write")
			return 1
		}
		fmt.Fprintln(os.Stdout, err)
		return 1
	}

	logger.Verbosef("processed %d line(s), matched %d, %d byte(s) read",
		stats.LinesRead, stats.LinesMatched, stats.BytesRead)
	return 0
}

// loadNeedles gathers needles from an optional needle file and any
// inline -s occurrences, applying build-time case folding per
// spec.md §3.
func loadNeedles(needleFile string, inline []string, caseInsensitive bool) ([][]byte, error) {
	var needles [][]byte

	if needleFile != "" {
		fileNeedles, err := loadNeedleFile(needleFile, caseInsensitive)
		if err != nil {
			return nil, err
		}
		needles = append(needles, fileNeedles...)
	}

	for _, s := range inline {
		b := []byte(s)
		if len(b) == 0 {
			continue
		}
		if caseInsensitive {
			b = byteutil.ToLower(b, nil)
		}
		needles = append(needles, b)
	}

	return needles, nil
}

// loadNeedleFile reads one needle per line, per spec.md §6's needle
// file format: strip the trailing '\n' then any trailing '\r' bytes,
// discard empty lines, no escape or comment processing.
func loadNeedleFile(path string, caseInsensitive bool) ([][]byte, error) {
	f, err := ioutilx.OpenRead(path)
	if err != nil {
		return nil, fmt.Errorf("findany: cannot open needle file %s", path)
	}
	defer f.Close()

	var needles [][]byte
	r := linereader.New(f)
	for {
		line, err := r.NextLine()
		if err != nil {
			return nil, fmt.Errorf("findany: reading needle file %s: %w", path, err)
		}
		if len(line) == 0 {
			break
		}
		line = byteutil.TrimTrailing(line, '\n')
		line = byteutil.TrimTrailing(line, '\r')
		if len(line) == 0 {
			continue
		}
		needle := make([]byte, len(line))
		copy(needle, line)
		if caseInsensitive {
			needle = byteutil.ToLower(needle, needle)
		}
		needles = append(needles, needle)
	}
	return needles, nil
}

func displayName(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
