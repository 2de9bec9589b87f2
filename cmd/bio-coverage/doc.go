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
bio-coverage shrinks the per-position depth of a samtools mpileup stream to a
bounded number of points, for plotting coverage over a region.

Positions named with -positions (or -positions-bed) are reported verbatim in
a "#specific_points" section.  Every other position of the region, with
missing positions counted as depth 0, is averaged into at most -max-points
consecutive windows, reported in a "#reduced_points" section.

Sample usage:
samtools mpileup -r 13:130001-150000 my.bam | bio-coverage reduce \
    -region 13:130000:150000 \
    -positions 13:130044:130045,13:140042:140043 \
    -max-points 1000 \
    -out coverage.tsv

The same computation is available over HTTP:
bio-coverage serve -port 8080
curl --data-binary @region.mpileup \
    'localhost:8080/coverage?region=13:130000:150000&maxpoints=1000'
*/
package main
