// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package logger

import (
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// maxFrames caps the stack walk so a deep recursion cannot flood the
// log.
const maxFrames = 32

// ErrorWithStack logs an error message followed by the call stack of
// the caller.  It is meant for recovery boundaries where the message
// alone does not say where things went wrong.
func ErrorWithStack(format string, a ...any) {
	message := fmt.Sprintf(format, a...)
	log.Error(message + stackTrace())
}

// stackTrace renders the calling stack.  The first two frames are the
// functions in this package and are skipped.
func stackTrace() string {
	trace := ""
	for frame := 2; frame < maxFrames; frame++ {
		_, file, line, ok := runtime.Caller(frame)
		if !ok {
			break
		}
		trace = trace + fmt.Sprintf("\n%s:%d", file, line)
	}
	return trace
}
