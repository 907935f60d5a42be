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

// Package command contains the cobra commands of vtprovision.
package command

import (
	"context"

	"github.com/spf13/cobra"

	"vitess.io/vtprovision/go/vt/log"
	"vitess.io/vtprovision/go/vt/provision"
)

// New returns the vtprovision root command with its subcommands attached.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:   "vtprovision",
		Short: "Applies a table schema and then a vschema to a keyspace using vtctldclient.",
		Long: `Applies a table schema and then a vschema to a keyspace using vtctldclient.

ApplySchema runs first. ApplyVSchema only runs if ApplySchema succeeded, and a
failed ApplyVSchema does not undo the schema.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(cmd.Flags())
		},
		RunE: commandProvision,
	}

	registerConfigFlags(root.PersistentFlags())
	log.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newPrintVSchema())
	return root
}

func commandProvision(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ks, err := cfg.KeyspaceDefinition()
	if err != nil {
		return err
	}

	vtctldclient, err := cfg.VtctldClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.ActionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ActionTimeout)
		defer cancel()
	}

	return provision.New(vtctldclient).Provision(ctx, ks)
}
