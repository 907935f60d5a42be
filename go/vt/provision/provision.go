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

// Package provision applies a table schema and then a vschema to a keyspace
// through vtctldclient.
//
// The two steps are strictly ordered because the vschema's vindexes refer to
// columns created by the schema. A failure in either step is returned as is.
// Nothing is retried, and a failed vschema step does not undo the schema.
package provision

import (
	"context"
	"errors"
	"fmt"

	"vitess.io/vtprovision/go/vt/log"

	vschemapb "vitess.io/vitess/go/vt/proto/vschema"
)

// VtctldClient is the subset of vtctldclient commands the Provisioner needs.
// *vtctldclientproc.VtctldClientProcess implements it.
type VtctldClient interface {
	ApplySchema(ctx context.Context, keyspace string, sql string) error
	ApplyVSchema(ctx context.Context, keyspace string, json string) error
}

// Provisioner applies keyspace definitions.
type Provisioner struct {
	client VtctldClient
}

// New returns a Provisioner that runs its commands through client.
func New(client VtctldClient) *Provisioner {
	return &Provisioner{client: client}
}

// ApplySchema applies ddl to keyspace.
func (p *Provisioner) ApplySchema(ctx context.Context, keyspace string, ddl string) error {
	log.InfoS("Applying schema", "keyspace", keyspace)
	if err := p.client.ApplySchema(ctx, keyspace, ddl); err != nil {
		return fmt.Errorf("apply schema to keyspace %s: %w", keyspace, err)
	}
	return nil
}

// ApplyVSchema serializes vs and applies it to keyspace.
func (p *Provisioner) ApplyVSchema(ctx context.Context, keyspace string, vs *vschemapb.Keyspace) error {
	data, err := MarshalVSchema(vs)
	if err != nil {
		return err
	}
	return p.applyVSchemaJSON(ctx, keyspace, data)
}

func (p *Provisioner) applyVSchemaJSON(ctx context.Context, keyspace string, data string) error {
	log.InfoS("Applying vschema", "keyspace", keyspace)
	if err := p.client.ApplyVSchema(ctx, keyspace, data); err != nil {
		return fmt.Errorf("apply vschema to keyspace %s: %w", keyspace, err)
	}
	return nil
}

// Provision applies ks.SchemaSQL and then ks.VSchema. An empty SchemaSQL or a
// nil VSchema skips that step. The vschema is serialized before anything runs,
// so a vschema that cannot be encoded leaves the keyspace untouched.
func (p *Provisioner) Provision(ctx context.Context, ks *Keyspace) error {
	if ks == nil || ks.Name == "" {
		return errors.New("keyspace name is required")
	}

	var vschemaJSON string
	if ks.VSchema != nil {
		var err error
		if vschemaJSON, err = MarshalVSchema(ks.VSchema); err != nil {
			return err
		}
	}

	log.InfoS("Provisioning keyspace", "keyspace", ks.Name)

	if ks.SchemaSQL != "" {
		if err := p.ApplySchema(ctx, ks.Name, ks.SchemaSQL); err != nil {
			return err
		}
	}

	if ks.VSchema != nil {
		if err := p.applyVSchemaJSON(ctx, ks.Name, vschemaJSON); err != nil {
			if ks.SchemaSQL != "" {
				log.WarnS("Schema was applied but vschema was not", "keyspace", ks.Name)
			}
			return err
		}
	}

	log.InfoS("Done provisioning keyspace", "keyspace", ks.Name)
	return nil
}
