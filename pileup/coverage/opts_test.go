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
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
}

func TestLoadOpts(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, "tempDir:", tempDir)

	path := filepath.Join(tempDir, "opts.yaml")
	writeFile(t, path, `
region: 13:130000:150000
positions: 13:130044:130045,13:140042:140043
`)
	opts, err := LoadOpts(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, Opts{
		MaxPoints: 1000,
		Region:    "13:130000:150000",
		Positions: "13:130044:130045,13:140042:140043",
	}, opts)

	writeFile(t, path, "max_points: 20\nregion: chr1:5:10\npositions_bed: /x/y.bed\n")
	opts, err = LoadOpts(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, Opts{MaxPoints: 20, Region: "chr1:5:10", PositionsBedPath: "/x/y.bed"}, opts)

	writeFile(t, path, "")
	opts, err = LoadOpts(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, DefaultOpts, opts)

	writeFile(t, path, "maxpoints: 20\n")
	_, err = LoadOpts(ctx, path)
	assert.True(t, errors.Is(errors.Invalid, err), "got %v", err)

	_, err = LoadOpts(ctx, filepath.Join(tempDir, "missing.yaml"))
	assert.Error(t, err)
}

func TestOptsParse(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, "tempDir:", tempDir)

	bedPath := filepath.Join(tempDir, "keep.bed")
	writeFile(t, bedPath, "13\t140042\t140043\n13\t135000\t135001\n")

	opts := Opts{
		MaxPoints:        50,
		Region:           "13:130000:150000",
		Positions:        "13:130044:130045,13:140042:140043",
		PositionsBedPath: bedPath,
	}
	p, err := opts.parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, Region{Start: 130000, End: 150000}, p.region)
	assert.Equal(t, "13", p.refName)
	assert.Equal(t, KeepSet{130045, 135001, 140043}, p.keep)
	assert.Equal(t, 50, p.maxPoints)

	for _, bad := range []Opts{
		{},
		{Region: "13:150000:130000"},
		{Region: "13:x:y"},
		{Region: "13:1:5", Positions: "13:a:b"},
	} {
		_, err := bad.parse(ctx)
		assert.True(t, errors.Is(errors.Invalid, err), "%+v: got %v", bad, err)
	}

	opts = Opts{Region: "13:1:5", PositionsBedPath: filepath.Join(tempDir, "missing.bed")}
	_, err = opts.parse(ctx)
	assert.Error(t, err)
}
