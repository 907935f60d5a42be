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

// Package vtctldclientproc runs vtctldclient as a child process.
package vtctldclientproc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	"vitess.io/vtprovision/go/vt/log"
)

// DefaultBinary is the executable name used when none is configured.
const DefaultBinary = "vtctldclient"

// VtctldClientProcess is a generic handle for running vtctldclient commands.
type VtctldClientProcess struct {
	// Binary is a path or a bare name. A bare name is looked up in the working
	// directory before $PATH.
	Binary string
	// Server is passed as --server when set. Otherwise vtctldclient uses its
	// own default.
	Server string
	// ExtraArgs are global flags placed ahead of every command.
	ExtraArgs []string
	// DryRun logs each command instead of running it.
	DryRun bool
}

// New returns a VtctldClientProcess. extraArgs is split using shell quoting
// rules, so `--action_timeout 30s --compact` becomes three arguments.
func New(binary, server, extraArgs string) (*VtctldClientProcess, error) {
	if binary == "" {
		binary = DefaultBinary
	}

	args, err := shlex.Split(extraArgs)
	if err != nil {
		return nil, fmt.Errorf("cannot parse vtctldclient args %q: %w", extraArgs, err)
	}

	return &VtctldClientProcess{
		Binary:    binary,
		Server:    server,
		ExtraArgs: args,
	}, nil
}

// ApplySchema runs `ApplySchema --sql=<sql> <keyspace>`.
func (vtctldclient *VtctldClientProcess) ApplySchema(ctx context.Context, keyspace string, sql string) error {
	return vtctldclient.ExecuteCommand(ctx, "ApplySchema", "--sql="+sql, keyspace)
}

// ApplyVSchema runs `ApplyVSchema <keyspace> --vschema=<json>`.
func (vtctldclient *VtctldClientProcess) ApplyVSchema(ctx context.Context, keyspace string, json string) error {
	return vtctldclient.ExecuteCommand(ctx, "ApplyVSchema", keyspace, "--vschema="+json)
}

// ExecuteCommand runs a vtctldclient command and logs its output.
func (vtctldclient *VtctldClientProcess) ExecuteCommand(ctx context.Context, args ...string) error {
	output, err := vtctldclient.ExecuteCommandWithOutput(ctx, args...)
	if output != "" {
		log.InfoS("vtctldclient output", "command", args[0], "output", strings.TrimSpace(output))
	}
	return err
}

// ExecuteCommandWithOutput runs a vtctldclient command and returns its combined
// stdout and stderr. args[0] must be the command name. A run that does not exit
// with status 0 returns a *CommandFailedError.
func (vtctldclient *VtctldClientProcess) ExecuteCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("no vtctldclient command given")
	}

	argv := vtctldclient.argv(args)
	if vtctldclient.DryRun {
		log.InfoS("Dry run, not executing vtctldclient", "args", argv)
		return "", nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	log.InfoS("Executing vtctldclient", "command", args[0], "binary", argv[0])
	log.DebugS("vtctldclient arguments", "args", argv)

	out, err := cmd.CombinedOutput()
	output := string(out)
	if err == nil {
		return output, nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Join(ctxErr, err)
	}

	return output, &CommandFailedError{
		Command:  args[0],
		Args:     argv,
		ExitCode: exitCode,
		Output:   output,
		err:      err,
	}
}

// argv builds the full argument vector, binary first.
func (vtctldclient *VtctldClientProcess) argv(args []string) []string {
	argv := make([]string, 0, 3+len(vtctldclient.ExtraArgs)+len(args))
	argv = append(argv, vtctldclient.binaryPath())
	if vtctldclient.Server != "" {
		argv = append(argv, "--server", vtctldclient.Server)
	}
	argv = append(argv, vtctldclient.ExtraArgs...)
	return append(argv, args...)
}

// binaryPath prefers an executable of the same name in the working directory,
// which exec would otherwise refuse to resolve.
func (vtctldclient *VtctldClientProcess) binaryPath() string {
	binary := vtctldclient.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	if strings.ContainsRune(binary, os.PathSeparator) || strings.ContainsRune(binary, '/') {
		return binary
	}
	if fi, err := os.Stat(binary); err == nil && fi.Mode().IsRegular() && fi.Mode()&0o111 != 0 {
		return "." + string(os.PathSeparator) + binary
	}
	return binary
}
