// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package k8s

import (
	"bytes"

	log "github.com/sirupsen/logrus"
	"k8s.io/klog/v2"
)

// Logger used to route client-go output through the standard log stream
var myLogger klog.Logger

// RedirectKlog sends client-go log output through logrus so API machinery
// messages honor the configured level and format.  Client-side throttling
// notices are demoted to debug because they fire on every large listing.
func RedirectKlog() {
	klog.SetLoggerWithOptions(myLogger, klog.ContextualLogger(true), klog.WriteKlogBuffer(func(msg []byte) {
		text := bytes.TrimSpace(msg)
		if bytes.Contains(text, []byte("Throttling request")) {
			log.Debugf("%s", text)
			return
		}
		log.Warnf("%s", text)
	}))
}
