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
	"io"
	"runtime"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/coverage/pileup"
	"github.com/grailbio/hts/bgzf"
)

// Section headers of the text output.
const (
	SpecificHeader = "#specific_points"
	ReducedHeader  = "#reduced_points"
)

// writeSection appends a header line and one "pos\tdepth" line per point.
// Positions are written as-is; no 0-/1-based conversion is applied.  They are
// nonnegative, since both Region and pileup.Reader reject negative ones.
func writeSection(tsvw *tsv.Writer, header string, points []pileup.Point) error {
	tsvw.WriteString(header)
	if err := tsvw.EndLine(); err != nil {
		return err
	}
	for _, p := range points {
		tsvw.WriteUint32(uint32(p.Pos))
		tsvw.WriteUint32(p.Depth)
		if err := tsvw.EndLine(); err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV writes res to w as two sections, specific (reserved) points
// followed by reduced points:
//
//   #specific_points
//   130045	40
//   #reduced_points
//   130000	33
//   ...
//
// If bgzip is set, the stream is BGZF-compressed.
func WriteTSV(w io.Writer, res Result, bgzip bool) (err error) {
	if bgzip {
		bgzfw := bgzf.NewWriter(w, runtime.NumCPU())
		defer func() {
			if e := bgzfw.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = bgzfw
	}
	tsvw := tsv.NewWriter(w)
	if err = writeSection(tsvw, SpecificHeader, res.Reserved); err != nil {
		return
	}
	if err = writeSection(tsvw, ReducedHeader, res.Reduced); err != nil {
		return
	}
	return tsvw.Flush()
}
