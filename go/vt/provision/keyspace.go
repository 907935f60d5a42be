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

package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"sigs.k8s.io/yaml"

	"vitess.io/vitess/go/json2"

	vschemapb "vitess.io/vitess/go/vt/proto/vschema"
)

// DefaultKeyspace is the keyspace provisioned when none is configured.
const DefaultKeyspace = "commerce"

// DefaultSchemaSQL is applied verbatim, surrounding newlines included.
const DefaultSchemaSQL = `
CREATE TABLE users (
  id BIGINT PRIMARY KEY,
  username VARCHAR(255),
  email VARCHAR(255)
);
`

// DefaultVSchema shards the users table on id with an xxhash vindex.
func DefaultVSchema() *vschemapb.Keyspace {
	return &vschemapb.Keyspace{
		Sharded: true,
		Vindexes: map[string]*vschemapb.Vindex{
			"xxhash": {Type: "xxhash"},
		},
		Tables: map[string]*vschemapb.Table{
			"users": {
				ColumnVindexes: []*vschemapb.ColumnVindex{
					{Column: "id", Name: "xxhash"},
				},
			},
		},
	}
}

// Keyspace is everything applied to one keyspace.
type Keyspace struct {
	Name      string
	SchemaSQL string
	VSchema   *vschemapb.Keyspace
}

// NewDefaultKeyspace returns the users table and its xxhash vschema for the
// named keyspace.
func NewDefaultKeyspace(name string) *Keyspace {
	return &Keyspace{
		Name:      name,
		SchemaSQL: DefaultSchemaSQL,
		VSchema:   DefaultVSchema(),
	}
}

var vschemaMarshalOptions = protojson.MarshalOptions{
	UseProtoNames: true,
}

// MarshalVSchema serializes vs to the JSON accepted by
// `vtctldclient ApplyVSchema --vschema`.
func MarshalVSchema(vs *vschemapb.Keyspace) (string, error) {
	data, err := vschemaMarshalOptions.Marshal(vs)
	if err != nil {
		return "", fmt.Errorf("cannot marshal vschema: %w", err)
	}
	return string(data), nil
}

// ReadSchemaFile returns the contents of a SQL file.
func ReadSchemaFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadVSchemaFile parses a vschema file. Files ending in .yaml or .yml are
// converted from YAML first; anything else is read as JSON.
func ReadVSchemaFile(path string) (*vschemapb.Keyspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %s to JSON: %w", path, err)
		}
	}

	vs := &vschemapb.Keyspace{}
	if err := json2.Unmarshal(data, vs); err != nil {
		return nil, fmt.Errorf("cannot parse vschema %s: %w", path, err)
	}
	return vs, nil
}
