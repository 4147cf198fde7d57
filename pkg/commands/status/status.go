// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

// Package status reads back a previously saved report.
package status

import (
	"fmt"
	"os"
	"time"

	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/report"
)

// Get loads the report at path.  A missing file gets a hint about how
// to generate one.
func Get(path string) (*report.StatusReport, error) {
	result, err := report.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no status report at %s, run 'kubehealth analyze' first", path)
		}
		return nil, fmt.Errorf("error reading status report %s: %w", path, err)
	}
	return result, nil
}

// Staleness returns the age of a report and whether it is old enough
// to distrust.  A report is stale once it is more than two serve
// intervals old.
func Staleness(result *report.StatusReport, now time.Time) (time.Duration, bool, error) {
	updated, err := time.Parse(time.RFC3339, result.LastUpdated)
	if err != nil {
		return 0, false, fmt.Errorf("error parsing report timestamp %q: %w", result.LastUpdated, err)
	}
	age := now.Sub(updated)
	return age, age > 2*constants.ServeInterval, nil
}
