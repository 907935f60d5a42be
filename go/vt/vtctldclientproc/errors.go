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

package vtctldclientproc

import (
	"fmt"
	"strings"
)

// CommandFailedError is returned when a vtctldclient invocation does not exit
// cleanly. ExitCode is -1 when the process could not be started or was killed
// by a signal.
type CommandFailedError struct {
	// Command is the vtctldclient command that was run, e.g. "ApplySchema".
	Command string
	// Args is the full argument vector, binary first.
	Args     []string
	ExitCode int
	// Output is the combined stdout and stderr of the process.
	Output string

	err error
}

func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("vtctldclient %s failed with exit code %d: %v", e.Command, e.ExitCode, e.err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CommandFailedError) Unwrap() error {
	return e.err
}
