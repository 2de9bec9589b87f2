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
	"math/rand"
	"testing"

	"github.com/grailbio/coverage/pileup"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestPlanWindows(t *testing.T) {
	for n := 1; n <= 300; n++ {
		for maxPoints := 2; maxPoints <= 60; maxPoints++ {
			factor, modulo := planWindows(n, maxPoints)
			if factor <= 1 {
				continue
			}
			total, nWindows, nLarge := 0, 0, 0
			for start := 0; start < n; nWindows++ {
				size := factor
				if nWindows < modulo {
					size++
					nLarge++
				}
				total += size
				start += size
			}
			expect.EQ(t, total, n, "n=%d maxPoints=%d", n, maxPoints)
			expect.EQ(t, nWindows, maxPoints, "n=%d maxPoints=%d", n, maxPoints)
			expect.EQ(t, nLarge, modulo, "n=%d maxPoints=%d", n, maxPoints)
		}
	}
}

func TestDenseSize(t *testing.T) {
	expect.EQ(t, denseSize(Region{Start: 0, End: 0}), 2)
	expect.EQ(t, denseSize(Region{Start: 130000, End: 150000}), 20002)
}

// windowStart is the dense-series offset of window i: the i windows before
// it hold factor slots each, plus one for each of the first modulo.
func windowStart(i, factor, modulo int) int {
	if i < modulo {
		return i * (factor + 1)
	}
	return i*factor + modulo
}

func TestReduceWindowBoundaries(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 4; n <= 200; n++ {
		// denseSize is n, so End = Start + n - 2.
		region := Region{Start: 1000, End: PosType(1000 + n - 2)}
		var points []pileup.Point
		for pos := region.Start; pos <= region.End; pos++ {
			if r.Intn(4) != 0 {
				points = append(points, pileup.Point{Pos: pos, Depth: uint32(r.Intn(1000))})
			}
		}
		dense, err := ZeroFill(region, points)
		assert.NoError(t, err)
		for maxPoints := 2; maxPoints <= 60; maxPoints++ {
			factor, modulo := planWindows(n, maxPoints)
			if factor <= 1 {
				continue
			}
			got, err := Reduce(region, points, maxPoints)
			assert.NoError(t, err)
			assert.EQ(t, len(got), maxPoints, "n=%d maxPoints=%d", n, maxPoints)
			for i, p := range got {
				start := windowStart(i, factor, modulo)
				end := windowStart(i+1, factor, modulo)
				var sum uint64
				for _, d := range dense[start:end] {
					sum += uint64(d.Depth)
				}
				want := pileup.Point{Pos: region.Start + PosType(start), Depth: uint32(sum / uint64(end-start))}
				expect.EQ(t, p, want, "n=%d maxPoints=%d window=%d", n, maxPoints, i)
			}
			expect.EQ(t, windowStart(maxPoints, factor, modulo), n)
		}
	}
}
