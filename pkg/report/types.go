// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package report

import (
	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/constants"
)

// StatusError marks a report that could not be assembled.  It appears
// only in the overall_status field, never on a namespace or cluster.
const StatusError = analysis.HealthStatus("error")

// ServiceRef names the service an incident was opened against.
type ServiceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignment names one responder assigned to an incident.
type Assignment struct {
	Assignee string `json:"assignee"`
}

// Incident is the simplified view of an incident embedded in the
// report.  Timestamps stay in the wire format they arrived in.
type Incident struct {
	ID             string       `json:"id"`
	IncidentNumber int          `json:"incident_number"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         string       `json:"status"`
	Urgency        string       `json:"urgency"`
	Priority       string       `json:"priority"`
	Service        ServiceRef   `json:"service"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
	HTMLURL        string       `json:"html_url"`
	Assignments    []Assignment `json:"assignments"`
}

// Active reports whether the incident still needs attention.
func (i Incident) Active() bool {
	return i.Status == constants.IncidentTriggered || i.Status == constants.IncidentAcknowledged
}

// Summary holds the estate-wide counters of a report.
type Summary struct {
	TotalClusters            int     `json:"total_clusters"`
	TotalNamespacesMonitored int     `json:"total_namespaces_monitored"`
	PodsRunning              int     `json:"pods_running"`
	PodsWithIssues           int     `json:"pods_with_issues"`
	ActiveIncidents          int     `json:"active_incidents"`
	AvailabilityAverage      float64 `json:"availability_average"`
}

// HealthDistribution counts graded namespaces.  Namespaces whose
// health is unknown are not represented.
type HealthDistribution struct {
	Healthy  int `json:"healthy"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
}

func (d *HealthDistribution) add(status analysis.HealthStatus) {
	switch status {
	case analysis.StatusHealthy:
		d.Healthy++
	case analysis.StatusWarning:
		d.Warning++
	case analysis.StatusCritical:
		d.Critical++
	}
}

// HistoricalData holds three parallel series, one entry per sample.
type HistoricalData struct {
	Timestamps          []string `json:"timestamps"`
	AvailabilityHistory []int    `json:"availability_history"`
	IncidentHistory     []int    `json:"incident_history"`
}

// NamespaceStatus is the report entry for one tenant namespace.
type NamespaceStatus struct {
	UUID                   string                   `json:"uuid"`
	OrganizationName       string                   `json:"organization_name"`
	Status                 analysis.HealthStatus    `json:"status"`
	AvailabilityPercentage float64                  `json:"availability_percentage"`
	Pods                   analysis.PodCounts       `json:"pods"`
	Containers             analysis.ContainerCounts `json:"containers"`
	RelatedIncidents       []Incident               `json:"related_incidents"`
	Issues                 []string                 `json:"issues"`
	LastAnalyzed           string                   `json:"last_analyzed"`
}

// ClusterStatus is the report entry for one cluster.
type ClusterStatus struct {
	Name              string                `json:"name"`
	Location          string                `json:"location"`
	KubernetesVersion string                `json:"kubernetes_version"`
	Status            analysis.HealthStatus `json:"status"`
	Namespaces        []NamespaceStatus     `json:"namespaces"`
}

// StatusReport is the document written to the status file and served
// over the API.  Field order matches the serialized key order.
type StatusReport struct {
	LastUpdated        string                `json:"last_updated"`
	OverallStatus      analysis.HealthStatus `json:"overall_status"`
	Error              string                `json:"error,omitempty"`
	Summary            Summary               `json:"summary"`
	Clusters           []ClusterStatus       `json:"clusters"`
	HealthDistribution HealthDistribution    `json:"health_distribution"`
	HistoricalData     HistoricalData        `json:"historical_data"`
}
