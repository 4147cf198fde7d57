// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package constants

const (
	FlagKubeconfig      = "kubeconfig"
	FlagKubeconfigShort = "k"
	FlagKubeconfigHelp  = "the kubeconfig filepath"

	FlagConfig      = "config"
	FlagConfigShort = "c"
	FlagConfigHelp  = "The path to a configuration file. Entries in this file take precedence over the per-user defaults file"

	FlagOutput      = "output"
	FlagOutputShort = "o"
	FlagOutputHelp  = "The path where the status report is written"

	FlagTenants      = "tenants"
	FlagTenantsShort = "t"
	FlagTenantsHelp  = "The path to the tenant mapping file"

	FlagClusterPrefix     = "cluster-prefix"
	FlagClusterPrefixHelp = "Only AKS clusters whose names start with this prefix are considered"

	FlagHours     = "hours"
	FlagHoursHelp = "The incident correlation lookback, in hours. The default is 24"

	FlagSkipIncidents     = "skip-incidents"
	FlagSkipIncidentsHelp = "Skip the PagerDuty incident correlation"

	FlagNoDiscovery     = "no-discovery"
	FlagNoDiscoveryHelp = "Skip fleet discovery and analyze the cluster the current kubeconfig context points at"

	FlagFile      = "file"
	FlagFileShort = "f"
	FlagFileHelp  = "The path to a status report. The default is the configured output path"

	FlagJSON     = "json"
	FlagJSONHelp = "Print the raw status report as JSON"

	FlagSortVersion     = "sort-version"
	FlagSortVersionHelp = "Sort clusters by Kubernetes version, oldest first"

	FlagAddress      = "address"
	FlagAddressShort = "a"
	FlagAddressHelp  = "The address for the HTTP server to listen on"

	FlagInterval     = "interval"
	FlagIntervalHelp = "The delay between analysis passes"

	FlagLogLevel      = "log-level"
	FlagLogLevelShort = "l"
	FlagLogLevelHelp  = "Sets the log level.  Valid values are \"error\", \"info\", \"debug\", and \"trace\"."
)
