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
	"github.com/grailbio/coverage/pileup"
)

// Partition splits points into the ones whose position is in keep
// (reserved) and all others (remaining), in a single merge pass.  Both
// points and keep must be sorted by increasing position; this is not
// checked.  Each output preserves input order, and every input point lands
// in exactly one output.
//
// Keep positions missing from points are skipped without producing a
// reserved entry.
func Partition(points []pileup.Point, keep KeepSet) (reserved, remaining []pileup.Point) {
	keepIdx := 0
	nKeep := len(keep)
	remaining = make([]pileup.Point, 0, len(points))
	for _, p := range points {
		for keepIdx != nKeep && keep[keepIdx] < p.Pos {
			keepIdx++
		}
		if keepIdx != nKeep && keep[keepIdx] == p.Pos {
			reserved = append(reserved, p)
			keepIdx++
			continue
		}
		remaining = append(remaining, p)
	}
	return
}
