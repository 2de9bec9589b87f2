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
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// ContentType is the media type of WriteTSV output served over HTTP.
const ContentType = "text/tab-separated-values; charset=utf-8"

// MaxRequestPoints bounds the maxpoints query parameter, since the response
// holds up to that many reduced points.
const MaxRequestPoints = 1000000

// NewHandler builds a gin handler which reduces the mpileup text posted as
// the request body.  Query parameters override the corresponding fields of
// defaults:
//
//   maxpoints  Opts.MaxPoints
//   region     Opts.Region
//   positions  Opts.Positions
//
// Opts.PositionsBedPath can only be set through defaults, since it names a
// file on the server.  The response is the WriteTSV output.  Bad parameters
// or malformed pileup input get a 400 with the error text; any other
// failure is a 500.
func NewHandler(defaults Opts) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := defaults
		if v := c.Query("maxpoints"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.String(http.StatusBadRequest, "invalid maxpoints %q: %v", v, err)
				return
			}
			if n > MaxRequestPoints {
				c.String(http.StatusBadRequest, "invalid maxpoints %d: at most %d allowed", n, MaxRequestPoints)
				return
			}
			opts.MaxPoints = n
		}
		if v := c.Query("region"); v != "" {
			opts.Region = v
		}
		if v, ok := c.GetQuery("positions"); ok {
			opts.Positions = v
		}

		res, err := Compute(c.Request.Context(), c.Request.Body, &opts)
		if err != nil {
			if errors.Is(errors.Invalid, err) {
				log.Debug.Printf("coverage.NewHandler: %s: %v", c.Request.URL, err)
				c.String(http.StatusBadRequest, "%v", err)
				return
			}
			log.Error.Printf("coverage.NewHandler: %s: %v", c.Request.URL, err)
			c.String(http.StatusInternalServerError, "%v", err)
			return
		}
		var buf bytes.Buffer
		if err := WriteTSV(&buf, res, false); err != nil {
			log.Error.Printf("coverage.NewHandler: %s: %v", c.Request.URL, err)
			c.String(http.StatusInternalServerError, "%v", err)
			return
		}
		c.Data(http.StatusOK, ContentType, buf.Bytes())
	}
}
