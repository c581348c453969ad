// Copyright 2026, the findany contributors.

// Command findany_gendat generates synthetic needle and input files for
// exercising findany at scale, following muscato_gendat's pattern of a
// flag-configured random-data generator writing directly to files.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/kshedden/findany/internal/ioutilx"
)

var (
	numNeedles int
	needleLen  int
	numLines   int
	lineLen    int
	hitRate    float64
	longLine   int
	needlePath string
	inputPath  string
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func randWord(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return b
}

func generateNeedles() ([][]byte, error) {
	w, err := ioutilx.CreateWrite(needlePath)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	needles := make([][]byte, numNeedles)
	for i := 0; i < numNeedles; i++ {
		n := randWord(needleLen)
		needles[i] = n
		bw.Write(n)
		bw.WriteByte('\n')
	}
	return needles, nil
}

// generateInput writes numLines random lines, each with probability
// hitRate containing one randomly chosen needle at a random offset.
// One additional line of length longLine with a needle planted near
// its end is appended, exercising the same bounded-memory scenario as
// spec.md §8's S6.
func generateInput(needles [][]byte) error {
	w, err := ioutilx.CreateWrite(inputPath)
	if err != nil {
		return err
	}
	defer w.Close()
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for i := 0; i < numLines; i++ {
		line := randWord(lineLen)
		if len(needles) > 0 && rand.Float64() < hitRate {
			n := needles[rand.Intn(len(needles))]
			if len(n) <= len(line) {
				off := rand.Intn(len(line) - len(n) + 1)
				copy(line[off:], n)
			}
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}

	if longLine > 0 && len(needles) > 0 {
		line := randWord(longLine)
		n := needles[0]
		if len(n) <= len(line) {
			off := len(line) - len(n) - 1
			if off < 0 {
				off = 0
			}
			copy(line[off:], n)
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}

	return nil
}

func main() {
	flag.IntVar(&numNeedles, "NumNeedles", 10000, "Number of needles")
	flag.IntVar(&needleLen, "NeedleLen", 8, "Needle length")
	flag.IntVar(&numLines, "NumLines", 100000, "Number of input lines")
	flag.IntVar(&lineLen, "LineLen", 80, "Input line length")
	flag.Float64Var(&hitRate, "HitRate", 0.1, "Fraction of lines containing a needle")
	flag.IntVar(&longLine, "LongLine", 1000000, "Length of one extra long line (0 to disable)")
	flag.StringVar(&needlePath, "NeedleFile", "needles.txt", "Needle output path (.sz for Snappy)")
	flag.StringVar(&inputPath, "InputFile", "input.txt", "Input output path (.sz for Snappy)")
	flag.Parse()

	needles, err := generateNeedles()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := generateInput(needles); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
