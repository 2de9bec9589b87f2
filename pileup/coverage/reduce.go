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
	"github.com/grailbio/coverage/pileup"
)

// denseSize is the length of the zero-filled series for region r: one slot
// per position in [r.Start, r.End], plus one trailing slot at r.End+1.
//
// The trailing slot never receives input (points past r.End are dropped),
// but it counts toward the window arithmetic, and existing consumers of the
// reduced output depend on those window boundaries.
func denseSize(r Region) int {
	return int(r.End-r.Start) + 2
}

// checkOrder verifies that the points inside region have strictly increasing
// positions.
func checkOrder(region Region, points []pileup.Point) error {
	prev := region.Start - 1
	for i, p := range points {
		if !region.Contains(p.Pos) {
			continue
		}
		if p.Pos <= prev {
			return errors.E(errors.Invalid, fmt.Sprintf("precondition violated: point %d (%v) is not after position %d", i, p, prev))
		}
		prev = p.Pos
	}
	return nil
}

// ZeroFill returns one point per position in [region.Start, region.End+1],
// taking the depth from points where present and zero elsewhere.  This is
// the series Reduce averages over.  It allocates one point per position, so
// it is meant for small regions.
func ZeroFill(region Region, points []pileup.Point) ([]pileup.Point, error) {
	if err := region.validate(); err != nil {
		return nil, err
	}
	if err := checkOrder(region, points); err != nil {
		return nil, err
	}
	dense := make([]pileup.Point, denseSize(region))
	for i := range dense {
		dense[i].Pos = region.Start + PosType(i)
	}
	for _, p := range points {
		if region.Contains(p.Pos) {
			dense[p.Pos-region.Start].Depth = p.Depth
		}
	}
	return dense, nil
}

// planWindows returns the base window size (factor) and the number of
// windows which are one element larger (modulo) when n elements are split
// into maxPoints windows.
func planWindows(n, maxPoints int) (factor, modulo int) {
	return n / maxPoints, n % maxPoints
}

// Reduce summarizes the depth over region in at most maxPoints points.
//
// The region is zero-filled from points and cut into consecutive windows:
// the first (denseSize % maxPoints) windows hold factor+1 positions and the
// rest hold factor, where factor = denseSize / maxPoints.  Each window
// becomes one point at the window's first position, with the window's mean
// depth rounded down.  The zero-filled series is never materialized, so
// memory use depends on maxPoints and len(points), not on the region size.
//
// If maxPoints <= 1, or if factor <= 1 (the region is less than twice
// maxPoints long), points is returned unchanged.
//
// Reduce returns an errors.Invalid error if region is malformed, or if the
// points inside region are not in strictly increasing position order.
func Reduce(region Region, points []pileup.Point, maxPoints int) ([]pileup.Point, error) {
	if err := region.validate(); err != nil {
		return nil, err
	}
	if err := checkOrder(region, points); err != nil {
		return nil, err
	}
	if maxPoints <= 1 {
		return points, nil
	}
	n := denseSize(region)
	factor, modulo := planWindows(n, maxPoints)
	if factor <= 1 {
		return points, nil
	}

	reduced := make([]pileup.Point, 0, maxPoints)
	pointIdx := 0
	for start, windowIdx := 0, 0; start < n; windowIdx++ {
		windowSize := factor
		if windowIdx < modulo {
			windowSize++
		}
		end := start + windowSize
		// Positions without a point contribute zero to the sum.
		var sum uint64
		for ; pointIdx < len(points); pointIdx++ {
			p := points[pointIdx]
			if !region.Contains(p.Pos) {
				continue
			}
			if int(p.Pos-region.Start) >= end {
				break
			}
			sum += uint64(p.Depth)
		}
		reduced = append(reduced, pileup.Point{
			Pos:   region.Start + PosType(start),
			Depth: uint32(sum / uint64(windowSize)),
		})
		start = end
	}
	return reduced, nil
}
