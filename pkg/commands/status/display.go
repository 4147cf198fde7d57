// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package status

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/report"
)

// Display writes a human readable rendering of a report.
func Display(writer io.Writer, result *report.StatusReport, age time.Duration, stale bool) {
	displaySummary(writer, result, age, stale)
	displayClusters(writer, result)
	displayNamespaces(writer, result)
}

func displaySummary(writer io.Writer, result *report.StatusReport, age time.Duration, stale bool) {
	w := new(tabwriter.Writer).Init(writer, 30, 8, 1, '\t', 0)
	fmt.Fprintf(w, "Overall Status: %s\n", result.OverallStatus)
	fmt.Fprintf(w, "Last Updated: %s (%s ago)\n", result.LastUpdated, age.Round(time.Minute))
	if stale {
		fmt.Fprintf(w, "WARNING: this report is stale, rerun the analysis\n")
	}
	if result.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", result.Error)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Clusters:\t%d\n", result.Summary.TotalClusters)
	fmt.Fprintf(w, "Namespaces monitored:\t%d\n", result.Summary.TotalNamespacesMonitored)
	fmt.Fprintf(w, "Pods running:\t%d\n", result.Summary.PodsRunning)
	fmt.Fprintf(w, "Pods with issues:\t%d\n", result.Summary.PodsWithIssues)
	fmt.Fprintf(w, "Active incidents:\t%d\n", result.Summary.ActiveIncidents)
	fmt.Fprintf(w, "Average availability:\t%.2f%%\n", result.Summary.AvailabilityAverage)
	fmt.Fprintf(w, "Health distribution:\t%d healthy, %d warning, %d critical\n",
		result.HealthDistribution.Healthy,
		result.HealthDistribution.Warning,
		result.HealthDistribution.Critical)
	fmt.Fprintln(w)
	w.Flush()
}

func displayClusters(writer io.Writer, result *report.StatusReport) {
	w := new(tabwriter.Writer).Init(writer, 30, 8, 1, '\t', 0)
	fmt.Fprintf(w, "Clusters:\n")
	fmt.Fprintf(w, "---------\n")
	for _, cluster := range result.Clusters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d namespaces\n",
			cluster.Name,
			cluster.Location,
			cluster.KubernetesVersion,
			cluster.Status,
			len(cluster.Namespaces))
	}
	fmt.Fprintln(w)
	w.Flush()
}

func displayNamespaces(writer io.Writer, result *report.StatusReport) {
	var exists bool

	// Check if any namespace has something to report
	for _, cluster := range result.Clusters {
		for _, namespace := range cluster.Namespaces {
			exists = namespace.Status != analysis.StatusHealthy || exists
		}
	}

	w := new(tabwriter.Writer).Init(writer, 30, 8, 1, '\t', 0)
	fmt.Fprintf(w, "Tenant Namespaces:\n")
	fmt.Fprintf(w, "------------------\n")

	if !exists {
		fmt.Fprintf(writer, "Tenant namespaces are normal\n")
		return
	}

	for _, cluster := range result.Clusters {
		for _, namespace := range cluster.Namespaces {
			if namespace.Status == analysis.StatusHealthy {
				continue
			}
			fmt.Fprintf(w, "Namespace: %s (%s) on %s is %s\n",
				namespace.UUID, namespace.OrganizationName, cluster.Name, namespace.Status)
			for _, issue := range namespace.Issues {
				fmt.Fprintf(w, "%s\n", issue)
			}
			for _, incident := range namespace.RelatedIncidents {
				fmt.Fprintf(w, "Incident #%d: %s (%s)\n", incident.IncidentNumber, incident.Title, incident.Status)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)

	w.Flush()
}
