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

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/coverage/interval"
	"gopkg.in/yaml.v3"
)

// Opts holds the user-facing coverage options.  They can be given on the
// command line, as request parameters, or in a YAML file (see LoadOpts).
type Opts struct {
	// MaxPoints bounds the number of reduced points.  Values <= 1 disable
	// reduction.
	MaxPoints int `yaml:"max_points"`
	// Region is the span to reduce, usually "chr:start:end" with a 0-based
	// start, matching what was handed to samtools mpileup.
	Region string `yaml:"region"`
	// Positions is a comma-separated list of sub-regions whose first base is
	// reported verbatim, e.g. "13:130044:130045,13:140042:140043".
	Positions string `yaml:"positions"`
	// PositionsBedPath is a BED file of additional sub-regions, treated like
	// Positions.
	PositionsBedPath string `yaml:"positions_bed"`
}

// DefaultOpts are the defaults used by the command line and the service.
var DefaultOpts = Opts{
	MaxPoints: 1000,
}

// LoadOpts reads options from a YAML file.  Fields absent from the file keep
// their DefaultOpts values; unknown fields are an error.
func LoadOpts(ctx context.Context, path string) (opts Opts, err error) {
	opts = DefaultOpts
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	dec := yaml.NewDecoder(in.Reader(ctx))
	dec.KnownFields(true)
	if err = dec.Decode(&opts); err == io.EOF {
		// Empty file.
		err = nil
	} else if err != nil {
		err = errors.E(errors.Invalid, err, "coverage.LoadOpts: "+path)
	}
	return
}

// params are the parsed form of Opts.
type params struct {
	region    Region
	refName   string
	keep      KeepSet
	maxPoints int
}

func (opts *Opts) parse(ctx context.Context) (p params, err error) {
	if opts.Region == "" {
		err = errors.E(errors.Invalid, "coverage: region is required")
		return
	}
	var entry interval.Entry
	if entry, err = interval.ParseRegionString(opts.Region); err != nil {
		err = errors.E(errors.Invalid, err)
		return
	}
	if p.region, err = RegionFromEntry(entry); err != nil {
		return
	}
	p.refName = entry.ChrName

	var keepEntries []interval.Entry
	if keepEntries, err = interval.ParseRegionList(opts.Positions); err != nil {
		err = errors.E(errors.Invalid, err)
		return
	}
	if opts.PositionsBedPath != "" {
		var bedEntries []interval.Entry
		if bedEntries, err = interval.NewEntriesFromPath(ctx, opts.PositionsBedPath); err != nil {
			return
		}
		keepEntries = append(keepEntries, bedEntries...)
	}
	p.keep = NewKeepSet(keepEntries)
	p.maxPoints = opts.MaxPoints
	return
}
