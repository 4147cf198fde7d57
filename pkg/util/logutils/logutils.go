// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package logutils

import (
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/util"
)

// Waiter defines a function to wait for and a message
// to display while waiting.
type Waiter struct {
	WaitFunction func(interface{}) error
	Args         interface{}
	Message      string
	Error        error
	done         bool
	mutex        sync.RWMutex
}

// Info is a wrapper around log.Info()
func Info(s string) {
	log.Info(s)
}

func waitWithStatus(waiter *Waiter) {
	err := waiter.WaitFunction(waiter.Args)

	waiter.mutex.Lock()
	waiter.done = true
	waiter.Error = err
	log.Debugf("Wait done")
	waiter.mutex.Unlock()
}

// shouldBackup determines if WaitFor
// should back up lines each loop
func shouldBackup() (bool, error) {
	return util.FileIsTTY(os.Stdout)
}

// backup moves the cursor up n lines
//
// ^[[&dA is the VT-100 escape code to move the
// cursor up %d lines.  In GO, ^[ is \x1b
func backup(n int) {
	fmt.Printf("\x1b[%dA", n)
}

var colorReset = "\x1b[0m"
var colorYellow = "\x1b[33m"
var colorGreen = "\x1b[32m"

var clearLine = "\x1b[K"

// printDone prints a message for completed jobs
// formatted based on if it was successful or not.
func printDone(logFn func(string), w *Waiter) {
	if w.Error != nil {
		log.Errorf("%s: %s%s", w.Message, w.Error, clearLine)
	} else {
		// ^[[2K is the VT-100 escape code to clear all text
		// to the right of the cursor.
		logFn(fmt.Sprintf("%s: %s%s%s%s", w.Message, colorGreen, "ok", colorReset, clearLine))
	}
}

var waitStrings []string = []string{
	colorYellow + "waiting",
	colorYellow + "waiting.",
	colorYellow + "waiting..",
	colorYellow + "waiting...",
	colorYellow + "waiting ..",
	colorYellow + "waiting  .",
}

func waitString(msg string, iter int) string {
	idx := iter % len(waitStrings)
	return fmt.Sprintf("%s: %s%s%s", msg, waitStrings[idx], colorReset, clearLine)
}

// WaitFor starts some goroutines and pretty-prints a
// message for each.  Returns true if an Error occurred
// for any of the waiters.
func WaitFor(logFn func(string), waiters []*Waiter) bool {
	haveError := false
	doBackup, err := shouldBackup()
	if log.GetLevel() < log.InfoLevel {
		// only backup if messages are being logged
		doBackup = false
	}

	if err != nil {
		log.Error(err)
		return true
	}

	// Kick off our waiters
	for _, w := range waiters {
		go waitWithStatus(w)
	}

	// Wait for everything, logging as they go
	loops := 0
	for len(waiters) > 0 {
		done := []*Waiter{}
		notDone := []*Waiter{}
		for _, w := range waiters {
			w.mutex.RLock()

			if w.done {
				done = append(done, w)
			} else {
				notDone = append(notDone, w)
			}

			if w.Error != nil {
				haveError = true
			}

			w.mutex.RUnlock()
		}
		for _, w := range done {
			printDone(logFn, w)
		}
		for _, w := range notDone {
			logFn(waitString(w.Message, loops))
		}
		loops = loops + 1

		waiters = notDone
		if len(waiters) == 0 {
			break
		} else if doBackup {
			backup(len(waiters))
		}
		time.Sleep(500 * time.Millisecond)
	}

	return haveError
}

// ParseLevel maps the accepted level names onto logrus levels.  An
// unrecognized name keeps the info level and says so.
func ParseLevel(level string) log.Level {
	switch level {
	case "error":
		return log.ErrorLevel
	case "info":
		return log.InfoLevel
	case "debug":
		return log.DebugLevel
	case "trace":
		return log.TraceLevel
	}
	log.Warnf("%s is not a valid log level, using info", level)
	return log.InfoLevel
}
