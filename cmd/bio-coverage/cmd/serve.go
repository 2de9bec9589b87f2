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
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/coverage/pileup/coverage"
	"v.io/x/lib/cmdline"
)

// newRouter serves the coverage computation at POST /coverage.
func newRouter(defaults coverage.Opts) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.POST("/coverage", coverage.NewHandler(defaults))
	return router
}

func newCmdServe() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "serve",
		Short: "Serve coverage reduction over HTTP",
		Long: `
Starts an HTTP server answering POST /coverage.  The request body is mpileup
text; the query parameters maxpoints, region and positions override the
defaults given by flags.  The response is the same TSV that reduce writes.`,
	}
	var flags optsFlags
	flags.register(&cmd.Flags)
	port := cmd.Flags.Int("port", 8080, "Port to listen on")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("serve takes no arguments, but got %v", argv)
		}
		opts, err := flags.resolve(vcontext.Background(), &cmd.Flags)
		if err != nil {
			return err
		}
		addr := fmt.Sprintf(":%d", *port)
		log.Printf("bio-coverage: listening on %s", addr)
		return newRouter(opts).Run(addr)
	})
	return cmd
}
