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
package coverage

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/coverage/pileup"
	"github.com/klauspost/compress/gzip"
)

// Result holds the two output sections.
type Result struct {
	// Reserved are the input points at keep positions, verbatim.
	Reserved []pileup.Point
	// Reduced summarizes all other points.
	Reduced []pileup.Point
}

// Compute reads an mpileup stream and runs Partition and Reduce on it
// according to opts.  Records on a reference other than the region's are
// ignored, and a stream with no records left yields an empty Result.
//
// Bad options and malformed mpileup input are reported as errors.Invalid;
// other errors (I/O, an unreadable positions BED file) keep their kind.
func Compute(ctx context.Context, r io.Reader, opts *Opts) (res Result, err error) {
	var p params
	if p, err = opts.parse(ctx); err != nil {
		return
	}
	var points []pileup.Point
	if points, err = pileup.ReadPoints(r, p.refName); err != nil {
		if pileup.IsMalformed(err) {
			err = errors.E(errors.Invalid, err)
		}
		return
	}
	if len(points) == 0 {
		// Nothing to zero-fill against; both sections stay empty.
		log.Debug.Printf("coverage.Compute: no points on reference %s", p.refName)
		return
	}
	reserved, remaining := Partition(points, p.keep)
	var reduced []pileup.Point
	if reduced, err = Reduce(p.region, remaining, p.maxPoints); err != nil {
		return
	}
	log.Debug.Printf("coverage.Compute: %d point(s) read, %d reserved, %d reduced", len(points), len(reserved), len(reduced))
	res.Reserved = reserved
	res.Reduced = reduced
	return
}

// Run reads mpileup text from inPath, and writes the TSV result to outPath.
// "-" stands for stdin and stdout respectively.  A gzipped input is
// decompressed, and the output is BGZF-compressed if outPath ends in ".gz".
func Run(ctx context.Context, inPath, outPath string, opts *Opts) (err error) {
	var in io.Reader
	if inPath == "-" {
		in = os.Stdin
	} else {
		var infile file.File
		if infile, err = file.Open(ctx, inPath); err != nil {
			return
		}
		defer file.CloseAndReport(ctx, infile, &err)
		in = infile.Reader(ctx)
		switch fileio.DetermineType(inPath) {
		case fileio.Gzip:
			var gz *gzip.Reader
			if gz, err = gzip.NewReader(in); err != nil {
				return
			}
			defer func() {
				if e := gz.Close(); e != nil && err == nil {
					err = e
				}
			}()
			in = gz
		}
	}

	var res Result
	if res, err = Compute(ctx, in, opts); err != nil {
		return
	}

	if outPath == "-" {
		return WriteTSV(os.Stdout, res, false)
	}
	var dst file.File
	if dst, err = file.Create(ctx, outPath); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	if err = WriteTSV(dst.Writer(ctx), res, fileio.DetermineType(outPath) == fileio.Gzip); err != nil {
		return
	}
	log.Printf("coverage.Run: wrote %d specific and %d reduced point(s) to %s", len(res.Reserved), len(res.Reduced), outPath)
	return
}
