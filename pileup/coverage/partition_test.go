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
package coverage_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/coverage/pileup"
	"github.com/grailbio/coverage/pileup/coverage"
	"github.com/grailbio/testutil/expect"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name         string
		points       []pileup.Point
		keep         coverage.KeepSet
		wantReserved []pileup.Point
		wantRemain   []pileup.Point
	}{
		{
			name:         "basic",
			points:       []pileup.Point{{Pos: 1, Depth: 5}, {Pos: 2, Depth: 6}, {Pos: 3, Depth: 7}, {Pos: 4, Depth: 8}, {Pos: 5, Depth: 9}},
			keep:         coverage.KeepSet{2, 4},
			wantReserved: []pileup.Point{{Pos: 2, Depth: 6}, {Pos: 4, Depth: 8}},
			wantRemain:   []pileup.Point{{Pos: 1, Depth: 5}, {Pos: 3, Depth: 7}, {Pos: 5, Depth: 9}},
		},
		{
			name:         "empty_keep",
			points:       []pileup.Point{{Pos: 1, Depth: 5}, {Pos: 2, Depth: 6}},
			keep:         nil,
			wantReserved: nil,
			wantRemain:   []pileup.Point{{Pos: 1, Depth: 5}, {Pos: 2, Depth: 6}},
		},
		{
			name:         "empty_points",
			points:       nil,
			keep:         coverage.KeepSet{3},
			wantReserved: nil,
			wantRemain:   []pileup.Point{},
		},
		{
			// 2 and 4 have no point; 9 must still be found.
			name:         "absent_keep",
			points:       []pileup.Point{{Pos: 1, Depth: 1}, {Pos: 3, Depth: 3}, {Pos: 5, Depth: 5}, {Pos: 9, Depth: 9}},
			keep:         coverage.KeepSet{2, 4, 9},
			wantReserved: []pileup.Point{{Pos: 9, Depth: 9}},
			wantRemain:   []pileup.Point{{Pos: 1, Depth: 1}, {Pos: 3, Depth: 3}, {Pos: 5, Depth: 5}},
		},
		{
			name:         "keep_outside_stream",
			points:       []pileup.Point{{Pos: 10, Depth: 1}, {Pos: 11, Depth: 2}},
			keep:         coverage.KeepSet{1, 100},
			wantReserved: nil,
			wantRemain:   []pileup.Point{{Pos: 10, Depth: 1}, {Pos: 11, Depth: 2}},
		},
		{
			name:         "all_kept",
			points:       []pileup.Point{{Pos: 10, Depth: 1}, {Pos: 11, Depth: 2}},
			keep:         coverage.KeepSet{10, 11},
			wantReserved: []pileup.Point{{Pos: 10, Depth: 1}, {Pos: 11, Depth: 2}},
			wantRemain:   []pileup.Point{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reserved, remaining := coverage.Partition(test.points, test.keep)
			expect.EQ(t, reserved, test.wantReserved)
			expect.EQ(t, remaining, test.wantRemain)
		})
	}
}

func TestPartitionRandom(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for iter := 0; iter < 100; iter++ {
		var (
			points []pileup.Point
			keep   coverage.KeepSet
		)
		for pos := pileup.PosType(0); pos < 500; pos++ {
			if r.Intn(3) != 0 {
				points = append(points, pileup.Point{Pos: pos, Depth: uint32(r.Intn(100))})
			}
			if r.Intn(10) == 0 {
				keep = append(keep, pos)
			}
		}
		reserved, remaining := coverage.Partition(points, keep)
		expect.EQ(t, len(reserved)+len(remaining), len(points))
		nExpected := 0
		for _, p := range points {
			if keep.Contains(p.Pos) {
				nExpected++
			}
		}
		expect.EQ(t, len(reserved), nExpected)
		for _, p := range reserved {
			expect.True(t, keep.Contains(p.Pos), "reserved %v not in keep", p)
		}
		for _, p := range remaining {
			expect.False(t, keep.Contains(p.Pos), "remaining %v in keep", p)
		}
	}
}
