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
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coverage/interval"
	"github.com/grailbio/coverage/pileup"
)

// PosType is the integer type used to represent genomic positions.
type PosType = pileup.PosType

// Region is an inclusive [Start, End] span of one chromosome.
type Region struct {
	Start PosType
	End   PosType
}

// NewRegion returns the region [start, end].  It fails with an
// errors.Invalid error if end < start, or if either bound is outside
// [0, PosTypeMax).
func NewRegion(start, end PosType) (Region, error) {
	r := Region{Start: start, End: end}
	if err := r.validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// RegionFromEntry converts a parsed region string.  The entry's coordinates
// are used verbatim, so "13:130000:150000" becomes [130000, 150000].
func RegionFromEntry(e interval.Entry) (Region, error) {
	return NewRegion(e.Start0, e.End)
}

func (r Region) validate() error {
	if r.End < r.Start {
		return errors.E(errors.Invalid, fmt.Sprintf("InvalidRegion: end %d < start %d", r.End, r.Start))
	}
	// The zero-filled series has a slot at End+1, which must be representable.
	if r.Start < 0 || r.End >= pileup.PosTypeMax {
		return errors.E(errors.Invalid, fmt.Sprintf("InvalidRegion: %v out of range", r))
	}
	return nil
}

// Contains returns whether pos lies in [r.Start, r.End].
func (r Region) Contains(pos PosType) bool {
	return pos >= r.Start && pos <= r.End
}

// String implements fmt.Stringer.
func (r Region) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}
