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
package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/coverage/pileup/coverage"
	"v.io/x/lib/cmdline"
)

// optsFlags are the command-line counterparts of coverage.Opts, shared by
// reduce and serve.
type optsFlags struct {
	configPath string
	opts       coverage.Opts
}

func (f *optsFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "YAML file with default options (keys max_points, region, positions, positions_bed). Flags given on the command line take precedence")
	fs.IntVar(&f.opts.MaxPoints, "max-points", coverage.DefaultOpts.MaxPoints, "Upper bound on the number of reduced points; values <= 1 disable reduction")
	fs.StringVar(&f.opts.Region, "region", "", `Region to reduce, as 'chr:start:end' with a 0-based start (the form
handed to samtools mpileup by coverage services), or samtools-style 'chr:first-last'.`)
	fs.StringVar(&f.opts.Positions, "positions", "", "Comma-separated sub-regions whose first base is reported verbatim, e.g. '13:130044:130045,13:140042:140043'")
	fs.StringVar(&f.opts.PositionsBedPath, "positions-bed", "", "BED file of additional sub-regions, treated like -positions")
}

var optsFlagFields = map[string]func(dst *coverage.Opts, src coverage.Opts){
	"max-points":    func(dst *coverage.Opts, src coverage.Opts) { dst.MaxPoints = src.MaxPoints },
	"region":        func(dst *coverage.Opts, src coverage.Opts) { dst.Region = src.Region },
	"positions":     func(dst *coverage.Opts, src coverage.Opts) { dst.Positions = src.Positions },
	"positions-bed": func(dst *coverage.Opts, src coverage.Opts) { dst.PositionsBedPath = src.PositionsBedPath },
}

// resolve merges the config file, if any, with the flags explicitly set in
// fs.  Without a config file the flag values (defaults included) are used
// as-is.
func (f *optsFlags) resolve(ctx context.Context, fs *flag.FlagSet) (coverage.Opts, error) {
	if f.configPath == "" {
		return f.opts, nil
	}
	opts, err := coverage.LoadOpts(ctx, f.configPath)
	if err != nil {
		return coverage.Opts{}, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if set, ok := optsFlagFields[fl.Name]; ok {
			set(&opts, f.opts)
		}
	})
	return opts, nil
}

func newCmdReduce() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "reduce",
		Short: "Reduce an mpileup stream to specific and reduced coverage points",
		Long: `
Reads samtools mpileup text from the given path ("-" or no argument for
stdin; a .gz path is decompressed) and writes two TSV sections: the depth at
each -positions position, and the region's depth averaged into at most
-max-points windows.`,
		ArgsName: "[inpath]",
	}
	var flags optsFlags
	flags.register(&cmd.Flags)
	outPath := cmd.Flags.String("out", "-", `Output path; "-" for stdout.  A .gz path is BGZF-compressed`)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		inPath := "-"
		switch len(argv) {
		case 0:
		case 1:
			inPath = argv[0]
		default:
			return fmt.Errorf("reduce takes at most one pathname argument, but got %v", argv)
		}
		ctx := vcontext.Background()
		opts, err := flags.resolve(ctx, &cmd.Flags)
		if err != nil {
			return err
		}
		return coverage.Run(ctx, inPath, *outPath, &opts)
	})
	return cmd
}
