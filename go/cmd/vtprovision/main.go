/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
vtprovision prepares a keyspace for use by running two vtctldclient commands:

 1. ApplySchema, creating the tables.
 2. ApplyVSchema, sharding those tables with the configured vindexes.

The second command only runs once the first has succeeded. If it fails, the
schema from the first command stays applied; run vtprovision again once the
cause is fixed.

Without --schema-file and --vschema-file, a users table sharded on id by an
xxhash vindex is applied to the commerce keyspace.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"vitess.io/vitess/go/exit"

	"vitess.io/vtprovision/go/cmd/vtprovision/command"
	"vitess.io/vtprovision/go/vt/log"
)

func main() {
	defer exit.Recover()
	defer log.Flush()

	root := command.New()

	// Grab glog's flags and shove 'em on in.
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// hack to get rid of an "ERROR: logging before flag.Parse"
	args := os.Args[:]
	os.Args = os.Args[:1]
	flag.Parse()
	os.Args = args

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error(err)
		exit.Return(1)
	}
}
