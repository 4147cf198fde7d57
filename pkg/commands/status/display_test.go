// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package status

import (
	"bytes"
	"testing"
	"time"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/report"
	"github.com/stretchr/testify/assert"
)

func displayFixture() *report.StatusReport {
	return &report.StatusReport{
		LastUpdated:   "2025-03-14T10:00:00Z",
		OverallStatus: analysis.StatusWarning,
		Summary: report.Summary{
			TotalClusters:            1,
			TotalNamespacesMonitored: 2,
			PodsRunning:              7,
			PodsWithIssues:           1,
			ActiveIncidents:          1,
			AvailabilityAverage:      93.75,
		},
		Clusters: []report.ClusterStatus{
			{
				Name:              "ftdsp-prod-aks-cluster-mx",
				Location:          "mexicocentral",
				KubernetesVersion: "1.29.4",
				Status:            analysis.StatusWarning,
				Namespaces: []report.NamespaceStatus{
					{
						UUID:             "7ac93e0f-31a4-4e62-96b6-8f6cb2a1d9be",
						OrganizationName: "Acme Corp",
						Status:           analysis.StatusWarning,
						Issues:           []string{"2 pods pendientes"},
						RelatedIncidents: []report.Incident{
							{IncidentNumber: 1234, Title: "Acme Corp API degraded", Status: "triggered"},
						},
					},
					{
						UUID:             "1b2d7c90-91fd-4cbe-9d5e-4a5f8b7c2222",
						OrganizationName: "Banco Industrial",
						Status:           analysis.StatusHealthy,
					},
				},
			},
		},
		HealthDistribution: report.HealthDistribution{Healthy: 1, Warning: 1},
	}
}

// TestDisplay renders the summary, the cluster, and the troubled
// namespace.
func TestDisplay(t *testing.T) {
	var buffer bytes.Buffer
	Display(&buffer, displayFixture(), 32*time.Minute, false)
	rendered := buffer.String()

	assert.Contains(t, rendered, "Overall Status: warning", "expected the overall grade")
	assert.Contains(t, rendered, "(32m0s ago)", "expected the report age")
	assert.Contains(t, rendered, "Average availability:", "expected the summary block")
	assert.Contains(t, rendered, "93.75%", "expected the availability figure")
	assert.Contains(t, rendered, "ftdsp-prod-aks-cluster-mx", "expected the cluster row")
	assert.Contains(t, rendered, "2 namespaces", "expected the namespace count")
	assert.Contains(t, rendered, "Namespace: 7ac93e0f-31a4-4e62-96b6-8f6cb2a1d9be (Acme Corp)", "expected the troubled namespace")
	assert.Contains(t, rendered, "2 pods pendientes", "expected the issue line")
	assert.Contains(t, rendered, "Incident #1234: Acme Corp API degraded (triggered)", "expected the incident line")
	assert.NotContains(t, rendered, "Banco Industrial", "expected healthy namespaces to stay quiet")
	assert.NotContains(t, rendered, "stale", "expected no staleness warning")
}

// TestDisplayStale warns about an old report.
func TestDisplayStale(t *testing.T) {
	var buffer bytes.Buffer
	Display(&buffer, displayFixture(), 3*time.Hour, true)

	assert.Contains(t, buffer.String(), "WARNING: this report is stale", "expected the staleness warning")
}

// TestDisplayAllHealthy collapses the namespace section.
func TestDisplayAllHealthy(t *testing.T) {
	result := displayFixture()
	result.OverallStatus = analysis.StatusHealthy
	result.Clusters[0].Status = analysis.StatusHealthy
	result.Clusters[0].Namespaces[0].Status = analysis.StatusHealthy
	result.Clusters[0].Namespaces[0].Issues = nil
	result.Clusters[0].Namespaces[0].RelatedIncidents = nil

	var buffer bytes.Buffer
	Display(&buffer, result, time.Minute, false)

	assert.Contains(t, buffer.String(), "Tenant namespaces are normal", "expected the quiet rendering")
	assert.NotContains(t, buffer.String(), "Namespace: 7ac93e0f", "expected no namespace rows")
}
