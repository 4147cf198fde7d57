// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/azure"
	"github.com/kubehealth/kubehealth/pkg/config"
	"github.com/kubehealth/kubehealth/pkg/config/types"
	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/correlate"
	"github.com/kubehealth/kubehealth/pkg/k8s"
	"github.com/kubehealth/kubehealth/pkg/k8s/client"
	"github.com/kubehealth/kubehealth/pkg/pagerduty"
	"github.com/kubehealth/kubehealth/pkg/report"
	"github.com/kubehealth/kubehealth/pkg/tenant"
	"github.com/kubehealth/kubehealth/pkg/util"
	"github.com/kubehealth/kubehealth/pkg/util/logutils"
)

// Options are the options for the analyze command
type Options struct {
	// KubeConfigPath is the path to the optional kubeconfig file.  When
	// empty, the credentials the Azure CLI writes for each cluster are used.
	KubeConfigPath string

	// Config is the resolved configuration for the run
	Config *types.Config

	// Hours is the incident correlation lookback.  Zero keeps the
	// default window.
	Hours int

	// SkipIncidents disables the PagerDuty lookup and produces a report
	// with no incident correlation
	SkipIncidents bool

	// NoDiscovery analyzes the cluster the kubeconfig currently points
	// at instead of discovering the fleet with the Azure CLI
	NoDiscovery bool
}

// Analyze runs a complete health pass over the cluster fleet: discover
// the clusters, grade every tenant namespace, correlate open incidents,
// and write the status document.  The report is returned so long running
// callers can keep the latest copy in memory.
func Analyze(o Options) (*report.StatusReport, error) {
	start := time.Now()
	conf := o.Config
	ctx := context.Background()

	log.Info("Starting tenant health analysis")

	// Make sure the run can do useful work before touching anything
	if err := validateRun(o); err != nil {
		return nil, err
	}
	if !o.NoDiscovery {
		if err := checkAzure(ctx, conf.Azure.User); err != nil {
			return nil, err
		}
	}

	pd := pagerduty.NewClientWithURL(conf.PagerDuty.Token, conf.PagerDuty.URL)
	if !o.SkipIncidents {
		if _, err := pd.TestConnection(ctx); err != nil {
			return nil, fmt.Errorf("error connecting to PagerDuty: %w", err)
		}
	}

	// Tenant names make the report readable.  The file is optional.
	mapping := tenant.LoadMapping(conf.TenantsFile)

	clusters, err := discoverFleet(ctx, o)
	if err != nil {
		return nil, err
	}
	if len(clusters) == 0 {
		log.Warnf("No clusters found with prefix %s", conf.Azure.ClusterPrefix)
		result := report.Assemble(nil, map[string][]report.Incident{}, mapping, time.Now())
		if err := report.Save(result, conf.OutputPath); err != nil {
			return nil, err
		}
		return result, nil
	}

	// A cluster that cannot be reached is logged and skipped so that one
	// outage does not hide the rest of the fleet.
	analyses, namespaces := analyzeClusters(ctx, clusters, o)
	if len(analyses) == 0 {
		return nil, fmt.Errorf("none of the %d discovered clusters could be analyzed", len(clusters))
	}

	correlations := correlateIncidents(ctx, pd, o, namespaces, mapping)

	result := report.Assemble(analyses, correlations, mapping, time.Now())
	if err := report.Save(result, conf.OutputPath); err != nil {
		return nil, err
	}

	logSummary(result, mapping, namespaces, time.Since(start))
	return result, nil
}

// validateRun fails fast when the run cannot produce a useful report.
// Discovery needs the full Azure settings; analyzing the current
// kubeconfig context only needs PagerDuty when incidents are wanted.
func validateRun(o Options) error {
	if !o.NoDiscovery {
		return config.ValidateForAnalysis(o.Config)
	}
	if !o.SkipIncidents && o.Config.PagerDuty.Token == "" {
		return fmt.Errorf("missing required environment variables: %s", constants.EnvPagerDutyToken)
	}
	return nil
}

// checkAzure verifies the CLI is usable and logged in.
func checkAzure(ctx context.Context, user string) error {
	if err := azure.CheckCLI(ctx); err != nil {
		return err
	}
	subscription, err := azure.SubscriptionID(ctx)
	if err != nil {
		return err
	}
	log.Infof("Using Azure subscription %s", subscription)
	checkAccount(ctx, user)
	return nil
}

// discoverFleet finds the clusters to analyze, either from the Azure
// subscription or from the current kubeconfig context.
func discoverFleet(ctx context.Context, o Options) ([]analysis.ClusterDescriptor, error) {
	if o.NoDiscovery {
		name, err := client.CurrentContext(o.KubeConfigPath)
		if err != nil {
			return nil, fmt.Errorf("error reading the current kubeconfig context: %w", err)
		}
		log.Infof("Skipping discovery, analyzing the current context %s", name)
		return []analysis.ClusterDescriptor{{Name: name}}, nil
	}
	return azure.DiscoverClusters(ctx, o.Config.Azure.ClusterPrefix)
}

// analyzeClusters grades every reachable cluster and collects the
// namespaces that were graded across the fleet.  Each cluster gets its
// own waiter so the operator can follow the pass cluster by cluster.
func analyzeClusters(ctx context.Context, clusters []analysis.ClusterDescriptor, o Options) ([]analysis.ClusterAnalysis, []string) {
	analyses := []analysis.ClusterAnalysis{}
	allNamespaces := []string{}
	for _, cluster := range clusters {
		var clusterAnalysis *analysis.ClusterAnalysis
		haveError := logutils.WaitFor(logutils.Info, []*logutils.Waiter{
			&logutils.Waiter{
				Message: analyzeMessage(cluster),
				WaitFunction: func(i interface{}) error {
					var err error
					clusterAnalysis, err = analyzeCluster(ctx, cluster, o.KubeConfigPath, !o.NoDiscovery)
					return err
				},
			},
		})
		if haveError {
			log.Warnf("Skipping cluster %s", cluster.Name)
			continue
		}
		analyses = append(analyses, *clusterAnalysis)
		for _, namespace := range clusterAnalysis.Namespaces {
			allNamespaces = append(allNamespaces, namespace.Namespace)
		}
	}
	return analyses, allNamespaces
}

func analyzeMessage(cluster analysis.ClusterDescriptor) string {
	if cluster.Location != "" {
		return fmt.Sprintf("Analyzing cluster %s in %s", cluster.Name, cluster.Location)
	}
	return fmt.Sprintf("Analyzing cluster %s", cluster.Name)
}

func analyzeCluster(ctx context.Context, cluster analysis.ClusterDescriptor, kubeConfigPath string, fetchCredentials bool) (*analysis.ClusterAnalysis, error) {
	if fetchCredentials {
		if err := azure.GetCredentials(ctx, cluster.ResourceGroup, cluster.Name); err != nil {
			return nil, err
		}
	}

	_, kubeClient, err := client.GetKubeClient(kubeConfigPath)
	if err != nil {
		return nil, err
	}
	if err := k8s.VerifyConnection(kubeClient); err != nil {
		return nil, err
	}

	// Discovery fills the version for AKS clusters; ask the API server
	// otherwise.
	if cluster.KubernetesVersion == "" {
		if info, err := k8s.GetServerVersion(kubeClient); err == nil {
			cluster.KubernetesVersion = info.GitVersion
		}
	}

	namespaces, err := k8s.GetTenantNamespaces(kubeClient)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	graded := []analysis.NamespaceAnalysis{}
	for _, namespace := range namespaces {
		pods, err := k8s.GetNamespacePods(kubeClient, namespace)
		if err != nil {
			log.Warnf("Skipping namespace %s on %s: %v", namespace, cluster.Name, err)
			continue
		}
		graded = append(graded, analysis.AnalyzeNamespace(namespace, cluster.Name, pods, now))
	}

	summary := analysis.SummarizeCluster(graded)
	// A namespace whose pods could not be listed still counts as monitored
	summary.TotalNamespaces = len(namespaces)

	return &analysis.ClusterAnalysis{
		Cluster:    cluster,
		Namespaces: graded,
		Summary:    summary,
	}, nil
}

// correlateIncidents ties recent incidents to the graded namespaces.  A
// PagerDuty failure degrades the report to one with no incident
// references rather than failing the run.
func correlateIncidents(ctx context.Context, pd *pagerduty.Client, o Options, namespaces []string, mapping tenant.Mapping) map[string][]report.Incident {
	if o.SkipIncidents {
		log.Info("Incident correlation disabled")
		return correlate.Correlate(namespaces, mapping, nil)
	}

	query := pagerduty.IncidentQuery{}
	lookback := constants.IncidentLookback
	if o.Hours > 0 {
		lookback = time.Duration(o.Hours) * time.Hour
		query.Since = time.Now().UTC().Add(-lookback)
	}
	if o.Config.PagerDuty.ServiceID != "" {
		query.ServiceIDs = []string{o.Config.PagerDuty.ServiceID}
	}
	incidents, err := pd.ListIncidents(ctx, query)
	if err != nil {
		log.Warnf("Could not fetch incidents, the report will not reference any: %v", err)
		return correlate.Correlate(namespaces, mapping, nil)
	}
	log.Infof("Fetched %d incidents from the last %s", len(incidents), lookback)
	return correlate.Correlate(namespaces, mapping, pagerduty.SimplifyAll(incidents))
}

// checkAccount warns when the CLI login does not match the configured
// operator.
func checkAccount(ctx context.Context, user string) {
	account, err := azure.AccountInfo(ctx)
	if err != nil {
		log.Debugf("Could not read the Azure account details: %v", err)
		return
	}
	if user != "" && !strings.EqualFold(account.User, user) {
		log.Warnf("Logged in to Azure as %s but %s is %s", account.User, constants.EnvAzureUser, user)
	}
}

func logSummary(result *report.StatusReport, mapping tenant.Mapping, namespaces []string, elapsed time.Duration) {
	unseen := util.NewSetFromMapKeys(mapping)
	for _, namespace := range namespaces {
		unseen.Remove(namespace)
	}
	if unseen.Size() > 0 {
		log.Debugf("%d mapped tenants were not found on any cluster", unseen.Size())
	}

	log.Infof("Clusters analyzed: %d", result.Summary.TotalClusters)
	log.Infof("Namespaces monitored: %d", result.Summary.TotalNamespacesMonitored)
	log.Infof("Active incidents: %d", result.Summary.ActiveIncidents)
	log.Infof("Overall status: %s", result.OverallStatus)
	log.Infof("Analysis finished in %.2fs", elapsed.Seconds())
}
