// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analysis

import (
	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/util"
)

// DetermineOverallStatus grades the whole estate.  Unlike the cluster
// grade, the ratios here are taken over every monitored namespace,
// graded or not, so ungraded namespaces dilute them.  Open incidents
// and low average availability pull the grade down even when the
// namespace ratios look fine.
func DetermineOverallStatus(totalNamespaces int, warning int, critical int, availabilityAverage float64, activeIncidents int) HealthStatus {
	if totalNamespaces == 0 {
		return StatusUnknown
	}
	if util.Ratio(critical, totalNamespaces) > constants.OverallCriticalRatio ||
		availabilityAverage < constants.OverallCriticalAvailability ||
		activeIncidents > constants.OverallIncidentBudget {
		return StatusCritical
	}
	if util.Ratio(warning, totalNamespaces) > constants.OverallWarningRatio ||
		availabilityAverage < constants.OverallWarningAvailability ||
		activeIncidents > 0 {
		return StatusWarning
	}
	return StatusHealthy
}
