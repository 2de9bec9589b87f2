// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package pileup

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/pkg/errors"
)

// samtools mpileup output columns used here; everything after depth (read
// bases, base quals, and further samples) is ignored.
const (
	colRefName = iota
	colPos
	colRefBase
	colDepth
	nUsedCols
)

// maxLineLen bounds a single mpileup line.  Read-base columns at very deep
// positions can be megabytes long.
const maxLineLen = 1 << 30

var bannerPrefixes = [][]byte{[]byte("[mpileup]"), []byte("<mpileup>")}

// ErrMalformed is the cause of every error Reader reports for a badly
// formatted line, as opposed to a failure to read the input.
var ErrMalformed = errors.New("malformed mpileup record")

// IsMalformed returns whether err was caused by badly formatted input.
func IsMalformed(err error) bool {
	return err != nil && errors.Cause(err) == ErrMalformed
}

// Record holds the leading columns of one mpileup line.
type Record struct {
	RefName string
	Pos     PosType
	Depth   uint32
}

// Point returns the (position, depth) pair of the record.
func (r Record) Point() Point {
	return Point{Pos: r.Pos, Depth: r.Depth}
}

// Reader parses samtools-mpileup text.  Log banners that samtools may
// interleave with its output (lines starting with "[mpileup]" or
// "<mpileup>") and empty lines are skipped.
//
// Usage:
//   r := pileup.NewReader(in)
//   for r.Scan() {
//     rec := r.Record()
//     ...
//   }
//   if err := r.Err(); err != nil { ... }
type Reader struct {
	scanner *bufio.Scanner
	lineIdx int
	rec     Record
	err     error
	tokens  [nUsedCols][]byte
}

// NewReader creates a Reader which consumes in.
func NewReader(in io.Reader) *Reader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineLen)
	return &Reader{scanner: scanner}
}

func isBanner(line []byte) bool {
	for _, prefix := range bannerPrefixes {
		if bytes.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// splitTabs stores the first len(tokens) tab-separated fields of line in
// tokens, returning the number found.
func splitTabs(tokens [][]byte, line []byte) int {
	for i := range tokens {
		tabPos := bytes.IndexByte(line, '\t')
		if tabPos == -1 {
			tokens[i] = line
			return i + 1
		}
		tokens[i] = line[:tabPos]
		line = line[tabPos+1:]
	}
	return len(tokens)
}

// Scan advances to the next record.  It returns false at end of input or on
// error; call Err to tell them apart.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		r.lineIdx++
		line := r.scanner.Bytes()
		if len(line) == 0 || isBanner(line) {
			continue
		}
		if line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if r.err = r.parse(line); r.err != nil {
			return false
		}
		return true
	}
	if err := r.scanner.Err(); err != nil {
		r.err = errors.Wrap(err, "error reading mpileup input")
	}
	return false
}

func (r *Reader) parse(line []byte) error {
	tokens := r.tokens[:]
	if n := splitTabs(tokens, line); n < nUsedCols {
		return errors.Wrapf(ErrMalformed, "mpileup line %d: want at least %d columns, got %d", r.lineIdx, nUsedCols, n)
	}
	// Reuse the previous reference name when unchanged; it almost always is.
	if refName := tokens[colRefName]; gunsafe.BytesToString(refName) != r.rec.RefName {
		r.rec.RefName = string(refName)
	}
	pos, err := strconv.ParseInt(gunsafe.BytesToString(tokens[colPos]), 10, 32)
	if err != nil {
		return errors.Wrapf(ErrMalformed, "mpileup line %d: bad position (%v)", r.lineIdx, err)
	}
	if pos < 0 {
		return errors.Wrapf(ErrMalformed, "mpileup line %d: negative position %d", r.lineIdx, pos)
	}
	depth, err := strconv.ParseUint(gunsafe.BytesToString(tokens[colDepth]), 10, 32)
	if err != nil {
		return errors.Wrapf(ErrMalformed, "mpileup line %d: bad depth (%v)", r.lineIdx, err)
	}
	r.rec.Pos = PosType(pos)
	r.rec.Depth = uint32(depth)
	return nil
}

// Record returns the most recent record read by Scan.
func (r *Reader) Record() Record {
	return r.rec
}

// Err returns the first error encountered by Scan, if any.
func (r *Reader) Err() error {
	return r.err
}

// ReadPoints reads every record of an mpileup stream into a []Point, in
// input order.  If refName is nonempty, records on other references are
// skipped.
func ReadPoints(in io.Reader, refName string) ([]Point, error) {
	r := NewReader(in)
	var points []Point
	nSkipped := 0
	for r.Scan() {
		rec := r.Record()
		if refName != "" && rec.RefName != refName {
			nSkipped++
			continue
		}
		points = append(points, rec.Point())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if nSkipped != 0 {
		log.Printf("pileup.ReadPoints: skipped %d record(s) not on reference %s", nSkipped, refName)
	}
	return points, nil
}
