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

// Package testutil provides a fake vtctldclient executable for tests. The fake
// records the arguments of every invocation and can be told to fail a given
// call.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const script = `#!/bin/sh
state='%s'
n=$(( $(cat "$state/count") + 1 ))
echo "$n" > "$state/count"
mkdir "$state/call$n"
i=0
for a in "$@"; do
	i=$((i + 1))
	printf '%%s' "$a" > "$state/call$n/$i"
done
if [ "$n" = "%d" ]; then
	cat "$state/output" >&2
	exit %d
fi
echo "call $n ok"
`

// FakeVtctldClient is an executable shell script standing in for vtctldclient.
type FakeVtctldClient struct {
	// Path is the absolute path of the script.
	Path  string
	state string
}

// Option configures a FakeVtctldClient.
type Option func(*options)

type options struct {
	failOn   int
	exitCode int
	output   string
}

// FailOn makes the n-th invocation (1-based) print output to stderr and exit
// with exitCode.
func FailOn(n int, exitCode int, output string) Option {
	return func(o *options) {
		o.failOn = n
		o.exitCode = exitCode
		o.output = output
	}
}

// NewFakeVtctldClient writes a fake vtctldclient into a fresh temporary
// directory. Tests using it are skipped on Windows.
func NewFakeVtctldClient(t testing.TB, opts ...Option) *FakeVtctldClient {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake vtctldclient requires /bin/sh")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	dir := t.TempDir()
	state := filepath.Join(dir, "state")
	require.NoError(t, os.Mkdir(state, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(state, "count"), []byte("0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(state, "output"), []byte(o.output), 0o644))

	path := filepath.Join(dir, "vtctldclient")
	require.NoError(t, os.WriteFile(path, fmt.Appendf(nil, script, state, o.failOn, o.exitCode), 0o755))

	return &FakeVtctldClient{Path: path, state: state}
}

// Calls returns the arguments (without the binary) of every invocation so far,
// in order.
func (f *FakeVtctldClient) Calls(t testing.TB) [][]string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(f.state, "count"))
	require.NoError(t, err)
	count, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	calls := make([][]string, 0, count)
	for n := 1; n <= count; n++ {
		dir := filepath.Join(f.state, "call"+strconv.Itoa(n))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)

		args := make([]string, len(entries))
		for i := range args {
			arg, err := os.ReadFile(filepath.Join(dir, strconv.Itoa(i+1)))
			require.NoError(t, err)
			args[i] = string(arg)
		}
		calls = append(calls, args)
	}
	return calls
}

