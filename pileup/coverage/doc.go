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

/*
Package coverage reduces per-base pileup depth over a single region to a
bounded number of points for plotting, while reporting the exact depth at a
small set of positions of interest.

The pipeline has two pure stages:

  reserved, remaining := Partition(points, keep)
  reduced, err := Reduce(region, remaining, maxPoints)

Partition pulls out the points whose positions appear in the keep set.
Reduce zero-fills the region (pileup tools omit zero-depth positions), splits
the dense series into at most maxPoints windows and emits one point per
window: the window's first position and the truncated mean depth.

Run, Compute, WriteTSV and NewHandler wrap the two stages with mpileup
parsing, option handling and output.
*/
package coverage
