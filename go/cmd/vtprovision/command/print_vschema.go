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

package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
)

var prettyMarshalOptions = protojson.MarshalOptions{
	Multiline:     true,
	Indent:        "  ",
	UseProtoNames: true,
}

func newPrintVSchema() *cobra.Command {
	return &cobra.Command{
		Use:   "print-vschema",
		Short: "Prints the vschema that would be passed to ApplyVSchema, without running vtctldclient.",
		Args:  cobra.NoArgs,
		RunE:  commandPrintVSchema,
	}
}

func commandPrintVSchema(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ks, err := cfg.KeyspaceDefinition()
	if err != nil {
		return err
	}

	data, err := prettyMarshalOptions.Marshal(ks.VSchema)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	return nil
}
