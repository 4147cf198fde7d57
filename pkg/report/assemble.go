// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package report

import (
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/logger"
	"github.com/kubehealth/kubehealth/pkg/tenant"
	"github.com/kubehealth/kubehealth/pkg/util"
)

// Assemble merges the cluster analyses and the incident correlations
// into a status report.  It never fails; if anything goes wrong the
// returned report carries the error in place of real data so the
// status file stays well formed.  The same now yields the same
// report.
func Assemble(clusters []analysis.ClusterAnalysis, correlations map[string][]Incident, mapping tenant.Mapping, now time.Time) (result *StatusReport) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.ErrorWithStack("Error assembling status report: %v", recovered)
			result = ErrorReport(fmt.Sprintf("%v", recovered), now)
		}
	}()

	result = &StatusReport{
		LastUpdated:   timestamp(now),
		OverallStatus: analysis.StatusUnknown,
		Summary:       Summary{TotalClusters: len(clusters)},
		Clusters:      []ClusterStatus{},
	}

	totalAvailability := 0.0
	namespaceCount := 0
	for _, cluster := range clusters {
		clusterStatus := assembleCluster(cluster, correlations, mapping, now)
		result.Clusters = append(result.Clusters, clusterStatus)

		for _, namespace := range clusterStatus.Namespaces {
			namespaceCount++
			totalAvailability += namespace.AvailabilityPercentage
			result.Summary.PodsRunning += namespace.Pods.Running
			result.Summary.PodsWithIssues += namespace.Pods.Pending + namespace.Pods.Failed
			for _, incident := range namespace.RelatedIncidents {
				if incident.Active() {
					result.Summary.ActiveIncidents++
				}
			}
			result.HealthDistribution.add(namespace.Status)
		}
	}

	result.Summary.TotalNamespacesMonitored = namespaceCount
	if namespaceCount > 0 {
		result.Summary.AvailabilityAverage = util.Round2(totalAvailability / float64(namespaceCount))
	}
	result.OverallStatus = analysis.DetermineOverallStatus(
		namespaceCount,
		result.HealthDistribution.Warning,
		result.HealthDistribution.Critical,
		result.Summary.AvailabilityAverage,
		result.Summary.ActiveIncidents)
	result.HistoricalData = HistoricalPlaceholder(now)

	log.Infof("Processed data for %d namespaces in %d clusters", namespaceCount, len(clusters))
	return result
}

// assembleCluster builds the report entry for one cluster.  The
// cluster grade is recomputed from the graded namespaces so that it
// reflects the entries actually serialized.
func assembleCluster(cluster analysis.ClusterAnalysis, correlations map[string][]Incident, mapping tenant.Mapping, now time.Time) ClusterStatus {
	clusterStatus := ClusterStatus{
		Name:              cluster.Cluster.Name,
		Location:          cluster.Cluster.Location,
		KubernetesVersion: cluster.Cluster.KubernetesVersion,
		Status:            analysis.StatusUnknown,
		Namespaces:        []NamespaceStatus{},
	}

	var distribution HealthDistribution
	for _, namespace := range cluster.Namespaces {
		related := correlations[namespace.Namespace]
		if related == nil {
			related = []Incident{}
		}
		entry := NamespaceStatus{
			UUID:                   namespace.Namespace,
			OrganizationName:       mapping.OrganizationName(namespace.Namespace),
			Status:                 namespace.Health,
			AvailabilityPercentage: namespace.Availability,
			Pods:                   namespace.Pods,
			Containers:             namespace.Containers,
			RelatedIncidents:       related,
			Issues:                 NamespaceIssues(namespace),
			LastAnalyzed:           timestamp(now),
		}
		distribution.add(entry.Status)
		clusterStatus.Namespaces = append(clusterStatus.Namespaces, entry)
	}

	clusterStatus.Status = analysis.DetermineClusterStatus(distribution.Healthy, distribution.Warning, distribution.Critical)
	return clusterStatus
}

// NamespaceIssues renders the operator-facing issue strings for one
// namespace.  The order is fixed: container trouble first, then pod
// counts, then availability.
func NamespaceIssues(namespace analysis.NamespaceAnalysis) []string {
	issues := []string{}
	if namespace.Containers.CrashLoopBackOff > 0 {
		issues = append(issues, fmt.Sprintf("%d contenedores en CrashLoopBackOff", namespace.Containers.CrashLoopBackOff))
	}
	if namespace.Containers.ImagePullBackOff > 0 {
		issues = append(issues, fmt.Sprintf("%d contenedores con errores de imagen", namespace.Containers.ImagePullBackOff))
	}
	if namespace.Containers.TotalRestarts > constants.NamespaceRestartBudget {
		issues = append(issues, fmt.Sprintf("Reinicios excesivos: %d total", namespace.Containers.TotalRestarts))
	}
	if namespace.Pods.Failed > 0 {
		issues = append(issues, fmt.Sprintf("%d pods fallidos", namespace.Pods.Failed))
	}
	if namespace.Pods.Pending > 0 {
		issues = append(issues, fmt.Sprintf("%d pods pendientes", namespace.Pods.Pending))
	}
	if namespace.Availability < constants.NamespaceWarningAvailability {
		issues = append(issues, fmt.Sprintf("Disponibilidad baja: %s%%", strconv.FormatFloat(namespace.Availability, 'f', -1, 64)))
	}
	return issues
}

// ErrorReport is the report written when assembly or collection
// failed outright.  Every collection is present but empty so readers
// of the status file never see missing keys.
func ErrorReport(message string, now time.Time) *StatusReport {
	return &StatusReport{
		LastUpdated:   timestamp(now),
		OverallStatus: StatusError,
		Error:         message,
		Clusters:      []ClusterStatus{},
		HistoricalData: HistoricalData{
			Timestamps:          []string{},
			AvailabilityHistory: []int{},
			IncidentHistory:     []int{},
		},
	}
}

func timestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
