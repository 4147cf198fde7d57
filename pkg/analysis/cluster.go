// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analysis

import (
	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/util"
)

// SummarizeCluster tallies namespace health grades within a cluster.
func SummarizeCluster(namespaces []NamespaceAnalysis) ClusterSummary {
	summary := ClusterSummary{TotalNamespaces: len(namespaces)}
	for _, namespace := range namespaces {
		switch namespace.Health {
		case StatusHealthy:
			summary.Healthy++
		case StatusWarning:
			summary.Warning++
		case StatusCritical:
			summary.Critical++
		}
	}
	return summary
}

// DetermineClusterStatus grades a cluster from its namespace health
// tallies.  Namespaces whose health could not be determined do not
// enter the ratios.  A cluster with no graded namespaces is unknown.
func DetermineClusterStatus(healthy int, warning int, critical int) HealthStatus {
	total := healthy + warning + critical
	if total == 0 {
		return StatusUnknown
	}
	criticalRatio := util.Ratio(critical, total)
	if criticalRatio > constants.ClusterCriticalRatio {
		return StatusCritical
	}
	if util.Ratio(warning, total) > constants.ClusterWarningRatio || criticalRatio > 0 {
		return StatusWarning
	}
	return StatusHealthy
}
