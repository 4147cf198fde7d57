// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package report

import (
	"time"

	"github.com/kubehealth/kubehealth/pkg/constants"
)

// HistoricalPlaceholder synthesizes the trailing availability series
// until a real history store exists.  It produces 48 samples at 30
// minute spacing ending at now.  The values follow a fixed pattern
// from the sample index, so the series is reproducible and clearly
// not measured data.
func HistoricalPlaceholder(now time.Time) HistoricalData {
	data := HistoricalData{
		Timestamps:          make([]string, 0, constants.HistoricalSamples),
		AvailabilityHistory: make([]int, 0, constants.HistoricalSamples),
		IncidentHistory:     make([]int, 0, constants.HistoricalSamples),
	}

	for i := constants.HistoricalSamples; i >= 1; i-- {
		sample := now.Add(-time.Duration(i) * constants.HistoricalInterval)
		data.Timestamps = append(data.Timestamps, timestamp(sample))
		data.AvailabilityHistory = append(data.AvailabilityHistory, 95+(i%5))
		incidents := 0
		if i%12 == 0 {
			incidents = 1
		}
		data.IncidentHistory = append(data.IncidentHistory, incidents)
	}
	return data
}
