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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
)

func TestDefaultSchemaSQL(t *testing.T) {
	want := "\nCREATE TABLE users (\n  id BIGINT PRIMARY KEY,\n  username VARCHAR(255),\n  email VARCHAR(255)\n);\n"
	assert.Equal(t, want, DefaultSchemaSQL)
}

func TestDefaultVSchemaIsFresh(t *testing.T) {
	a := DefaultVSchema()
	a.Sharded = false
	a.Tables["users"].ColumnVindexes[0].Column = "username"

	b := DefaultVSchema()
	assert.True(t, b.Sharded)
	assert.Equal(t, "id", b.Tables["users"].ColumnVindexes[0].Column)
}

func TestMarshalVSchema(t *testing.T) {
	got, err := MarshalVSchema(DefaultVSchema())
	require.NoError(t, err)
	requireVSchemaEqual(t, wantVSchemaJSON, got)
}

func TestReadVSchemaFile(t *testing.T) {
	dir := t.TempDir()

	yamlVSchema := `
sharded: true
vindexes:
  xxhash:
    type: xxhash
tables:
  users:
    column_vindexes:
      - column: id
        name: xxhash
`

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "json",
			file:    "vschema.json",
			content: wantVSchemaJSON,
		},
		{
			name:    "yaml",
			file:    "vschema.yaml",
			content: yamlVSchema,
		},
		{
			name:    "yml",
			file:    "vschema.YML",
			content: yamlVSchema,
		},
		{
			name:    "bad json",
			file:    "broken.json",
			content: `{"sharded": true,`,
			wantErr: "cannot parse vschema",
		},
		{
			name:    "bad yaml",
			file:    "broken.yaml",
			content: "sharded: [true\n",
			wantErr: "cannot convert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := ReadVSchemaFile(path)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(DefaultVSchema(), got, protocmp.Transform()); diff != "" {
				t.Fatalf("vschema mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err := ReadVSchemaFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte(DefaultSchemaSQL), 0o644))

	got, err := ReadSchemaFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSchemaSQL, got)

	_, err = ReadSchemaFile(filepath.Join(t.TempDir(), "missing.sql"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalExampleMatchesDefaults(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "examples", "local")

	sql, err := ReadSchemaFile(filepath.Join(dir, "create_commerce_schema.sql"))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(DefaultSchemaSQL), strings.TrimSpace(sql))

	vs, err := ReadVSchemaFile(filepath.Join(dir, "vschema_commerce_sharded.json"))
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultVSchema(), vs, protocmp.Transform()); diff != "" {
		t.Fatalf("vschema mismatch (-want +got):\n%s", diff)
	}
}
