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
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vitess.io/vtprovision/go/vt/provision"
	"vitess.io/vtprovision/go/vt/vtctldclientproc"
)

// envPrefix is prepended to every setting when it is read from the
// environment, e.g. VTPROVISION_VSCHEMA_FILE.
const envPrefix = "VTPROVISION"

// Config holds the resolved settings for one run. Flags win over environment
// variables, which win over the config file.
type Config struct {
	Keyspace      string        `mapstructure:"keyspace"`
	SchemaFile    string        `mapstructure:"schema-file"`
	VSchemaFile   string        `mapstructure:"vschema-file"`
	Server        string        `mapstructure:"server"`
	Binary        string        `mapstructure:"vtctldclient-binary"`
	ExtraArgs     string        `mapstructure:"vtctldclient-args"`
	DryRun        bool          `mapstructure:"dry-run"`
	ActionTimeout time.Duration `mapstructure:"action-timeout"`
}

func registerConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a yaml, json or toml file holding any of these settings.")
	fs.String("keyspace", provision.DefaultKeyspace, "Keyspace to provision.")
	fs.String("schema-file", "", "File holding the SQL to apply with ApplySchema. Defaults to the built-in users table.")
	fs.String("vschema-file", "", "JSON or YAML file holding the vschema to apply with ApplyVSchema. Defaults to the built-in xxhash vschema.")
	fs.String("server", "", "vtctld gRPC address passed to vtctldclient as --server. Left to vtctldclient's own default if empty.")
	fs.String("vtctldclient-binary", vtctldclientproc.DefaultBinary, "vtctldclient executable. A bare name is looked up in the working directory, then $PATH.")
	fs.String("vtctldclient-args", "", "Extra flags passed to every vtctldclient invocation, split using shell quoting rules.")
	fs.Bool("dry-run", false, "Log the vtctldclient commands instead of running them.")
	fs.Duration("action-timeout", 0, "Deadline for the whole run. Zero waits for vtctldclient indefinitely.")
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// loadConfig resolves the settings registered on fs, reading the --config
// file first if one was given.
func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	v, err := newViper(fs)
	if err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Keyspace == "" {
		return nil, fmt.Errorf("--keyspace must not be empty")
	}
	return cfg, nil
}

// KeyspaceDefinition builds the keyspace to apply. Files that are not set fall
// back to the built-in users table and vschema.
func (cfg *Config) KeyspaceDefinition() (*provision.Keyspace, error) {
	ks := provision.NewDefaultKeyspace(cfg.Keyspace)

	if cfg.SchemaFile != "" {
		sql, err := provision.ReadSchemaFile(cfg.SchemaFile)
		if err != nil {
			return nil, err
		}
		ks.SchemaSQL = sql
	}

	if cfg.VSchemaFile != "" {
		vs, err := provision.ReadVSchemaFile(cfg.VSchemaFile)
		if err != nil {
			return nil, err
		}
		ks.VSchema = vs
	}

	return ks, nil
}

// VtctldClient returns the process wrapper for the configured binary.
func (cfg *Config) VtctldClient() (*vtctldclientproc.VtctldClientProcess, error) {
	vtctldclient, err := vtctldclientproc.New(cfg.Binary, cfg.Server, cfg.ExtraArgs)
	if err != nil {
		return nil, err
	}
	vtctldclient.DryRun = cfg.DryRun
	return vtctldclient, nil
}
