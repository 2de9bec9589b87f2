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
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/coverage/interval"
)

// KeepSet is a strictly increasing list of positions whose depth is reported
// verbatim instead of being averaged.
type KeepSet []PosType

// keepPos adapts a position to llrb.Comparable.
type keepPos PosType

func (p keepPos) Compare(c llrb.Comparable) int {
	q := c.(keepPos)
	switch {
	case p < q:
		return -1
	case p > q:
		return 1
	}
	return 0
}

// NewKeepSet derives the keep positions from a list of sub-regions.  Each
// sub-region contributes its 0-based start plus one, which is the coordinate
// its first base has in pileup records.  The sub-regions may be listed in
// any order and may repeat; the chromosome name is not consulted.
func NewKeepSet(entries []interval.Entry) KeepSet {
	var tree llrb.Tree
	for _, e := range entries {
		tree.Insert(keepPos(e.Start0 + 1))
	}
	keep := make(KeepSet, 0, tree.Len())
	tree.Do(func(c llrb.Comparable) (done bool) {
		keep = append(keep, PosType(c.(keepPos)))
		return false
	})
	return keep
}

// Contains returns whether pos is in the set.
func (k KeepSet) Contains(pos PosType) bool {
	idx := sort.Search(len(k), func(i int) bool { return k[i] >= pos })
	return idx < len(k) && k[idx] == pos
}
