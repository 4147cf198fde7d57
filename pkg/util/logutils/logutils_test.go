// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package logutils

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// TestParseLevel tests the ParseLevel function
// GIVEN a log level name
// WHEN ParseLevel is called
// THEN the matching logrus level is returned, with info for unknown names
func TestParseLevel(t *testing.T) {
	testCases := []struct {
		testName string
		level    string
		expected log.Level
	}{
		{
			testName: "error",
			level:    "error",
			expected: log.ErrorLevel,
		},
		{
			testName: "info",
			level:    "info",
			expected: log.InfoLevel,
		},
		{
			testName: "debug",
			level:    "debug",
			expected: log.DebugLevel,
		},
		{
			testName: "trace",
			level:    "trace",
			expected: log.TraceLevel,
		},
		{
			testName: "unknown falls back to info",
			level:    "verbose",
			expected: log.InfoLevel,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLevel(tc.level), "wrong level for %q", tc.level)
		})
	}
}

// TestWaitFor tests the WaitFor function
// GIVEN waiters whose functions all succeed
// WHEN WaitFor runs them
// THEN every function ran, no error is recorded, and false is returned
func TestWaitFor(t *testing.T) {
	ranFirst := false
	ranSecond := false
	waiters := []*Waiter{
		&Waiter{
			Message: "first",
			WaitFunction: func(i interface{}) error {
				ranFirst = true
				return nil
			},
		},
		&Waiter{
			Message: "second",
			Args:    "payload",
			WaitFunction: func(i interface{}) error {
				assert.Equal(t, "payload", i, "args were not handed to the wait function")
				ranSecond = true
				return nil
			},
		},
	}

	haveError := WaitFor(func(s string) {}, waiters)
	assert.False(t, haveError, "a successful wait reported an error")
	assert.True(t, ranFirst, "the first wait function did not run")
	assert.True(t, ranSecond, "the second wait function did not run")
	assert.NoError(t, waiters[0].Error)
	assert.NoError(t, waiters[1].Error)
}

// TestWaitForError tests the WaitFor function
// GIVEN a waiter whose function fails
// WHEN WaitFor runs it
// THEN true is returned and the error is recorded on the waiter
func TestWaitForError(t *testing.T) {
	wantErr := errors.New("cluster is unreachable")
	waiters := []*Waiter{
		&Waiter{
			Message: "doomed",
			WaitFunction: func(i interface{}) error {
				return wantErr
			},
		},
	}

	haveError := WaitFor(func(s string) {}, waiters)
	assert.True(t, haveError, "a failed wait was not reported")
	assert.Equal(t, wantErr, waiters[0].Error, "wrong error recorded")
}
