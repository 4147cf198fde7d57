// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package unix

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type CmdExecutor struct {
	*exec.Cmd
	StdOutBuf bytes.Buffer
	StdErrBuf bytes.Buffer
}

// NewCmdExecutor creates a new CmdExecutor.  The process is killed
// when the context ends.
func NewCmdExecutor(ctx context.Context, cmdName string, args ...string) *CmdExecutor {
	e := CmdExecutor{
		Cmd:       exec.CommandContext(ctx, cmdName, args...),
		StdOutBuf: bytes.Buffer{},
		StdErrBuf: bytes.Buffer{},
	}
	e.Cmd.Stdout = &e.StdOutBuf
	e.Cmd.Stderr = &e.StdErrBuf
	return &e
}

// Output runs the command and returns its trimmed standard output.
// On failure the standard error output is folded into the returned
// error.
func (e *CmdExecutor) Output() (string, error) {
	if err := e.Run(); err != nil {
		stderr := strings.TrimSpace(e.StdErrBuf.String())
		if stderr != "" {
			return "", fmt.Errorf("%s: %s", err, stderr)
		}
		return "", err
	}
	return strings.TrimSpace(e.StdOutBuf.String()), nil
}
