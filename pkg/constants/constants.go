// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package constants

import "time"

const (
	// Environment variables
	EnvPagerDutyToken     = "PAGERDUTY_API_TOKEN"
	EnvPagerDutyServiceID = "PAGERDUTY_SERVICE_ID"
	EnvAzureUser          = "AZURE_USER"
	EnvClusterPrefix      = "CLUSTER_PREFIX"
	EnvOutputPath         = "OUTPUT_PATH"
	EnvTenantsFile        = "TENANTS_FILE"
	EnvLogLevel           = "LOG_LEVEL"

	// UserConfigDefaults is the per-user overrides file, relative to the
	// home directory.  UserConfigDefaultsEnvironmentVariable points
	// somewhere else entirely.
	UserConfigDefaults                    = ".kubehealth/defaults.yaml"
	UserConfigDefaultsEnvironmentVariable = "KUBEHEALTH_DEFAULTS"

	// Discovery defaults
	ClusterPrefix = "ftdsp-prod-aks-cluster-"

	// File defaults
	OutputPath  = "status.json"
	TenantsFile = "tenants.json"

	// PagerDuty defaults
	PagerDutyAPIURL    = "https://api.pagerduty.com"
	IncidentLookback   = 24 * time.Hour
	IncidentPageLimit  = 100
	PagerDutyTimeout   = 30 * time.Second
	PagerDutyUserAgent = "kubehealth"

	// Incident statuses
	IncidentTriggered    = "triggered"
	IncidentAcknowledged = "acknowledged"
	IncidentResolved     = "resolved"

	// Thresholds for grading a namespace
	NamespaceCriticalAvailability = 80.0
	NamespaceWarningAvailability  = 95.0
	NamespaceRestartBudget        = 20

	// Thresholds for grading a cluster
	ClusterCriticalRatio = 0.1
	ClusterWarningRatio  = 0.3

	// Thresholds for grading the whole estate
	OverallCriticalRatio        = 0.05
	OverallWarningRatio         = 0.2
	OverallCriticalAvailability = 90.0
	OverallWarningAvailability  = 95.0
	OverallIncidentBudget       = 5

	// Per-pod thresholds
	PodRestartBudget = 10

	// Serve defaults
	ServeInterval = 30 * time.Minute
	ServeAddress  = ":8080"

	// Historical placeholder series
	HistoricalSamples  = 48
	HistoricalInterval = 30 * time.Minute

	// Azure CLI
	AzureCommand      = "az"
	AzureTimeout      = 2 * time.Minute
	CredentialTimeout = 5 * time.Minute
)
