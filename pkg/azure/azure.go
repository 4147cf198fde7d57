// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/unix"
)

// Runner executes the Azure CLI and returns its standard output.
type Runner func(ctx context.Context, args ...string) (string, error)

var fakeRunner Runner

// SetFakeRunner routes Azure CLI invocations through the given
// function.  It is for testing.
func SetFakeRunner(runner Runner) {
	fakeRunner = runner
}

// ClearFakeRunner undoes SetFakeRunner.
func ClearFakeRunner() {
	fakeRunner = nil
}

func runAz(ctx context.Context, args ...string) (string, error) {
	if fakeRunner != nil {
		return fakeRunner(ctx, args...)
	}
	return unix.NewCmdExecutor(ctx, constants.AzureCommand, args...).Output()
}

// Account identifies the Azure account the CLI is logged in to.
type Account struct {
	SubscriptionID   string
	SubscriptionName string
	User             string
	TenantID         string
}

type accountInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId"`
	User     struct {
		Name string `json:"name"`
	} `json:"user"`
}

type agentPoolProfile struct {
	Count int `json:"count"`
}

type aksCluster struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Location          string             `json:"location"`
	ProvisioningState string             `json:"provisioningState"`
	KubernetesVersion string             `json:"kubernetesVersion"`
	AgentPoolProfiles []agentPoolProfile `json:"agentPoolProfiles"`
}

// CheckCLI verifies the Azure CLI is installed and runnable.
func CheckCLI(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.AzureTimeout)
	defer cancel()
	if _, err := runAz(ctx, "version"); err != nil {
		return fmt.Errorf("azure CLI not found or not working: %w", err)
	}
	return nil
}

// SubscriptionID returns the active subscription.  It fails when the
// CLI is not logged in.
func SubscriptionID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.AzureTimeout)
	defer cancel()
	out, err := runAz(ctx, "account", "show", "--query", "id", "-o", "tsv")
	if err != nil {
		return "", fmt.Errorf("azure CLI is not authenticated, run 'az login': %w", err)
	}
	subscription := strings.TrimSpace(out)
	log.Infof("Authenticated to Azure, subscription %s", subscription)
	return subscription, nil
}

// AccountInfo returns the logged in account.
func AccountInfo(ctx context.Context) (*Account, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.AzureTimeout)
	defer cancel()
	out, err := runAz(ctx, "account", "show", "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("error reading Azure account: %w", err)
	}

	var decoded accountInfo
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		return nil, fmt.Errorf("error parsing Azure account output: %w", err)
	}
	return &Account{
		SubscriptionID:   decoded.ID,
		SubscriptionName: decoded.Name,
		User:             decoded.User.Name,
		TenantID:         decoded.TenantID,
	}, nil
}

// DiscoverClusters lists the AKS clusters of the active subscription
// whose name starts with the prefix, in the order the CLI reports
// them.
func DiscoverClusters(ctx context.Context, prefix string) ([]analysis.ClusterDescriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.AzureTimeout)
	defer cancel()
	log.Info("Searching for AKS clusters")
	out, err := runAz(ctx, "aks", "list", "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("error discovering AKS clusters: %w", err)
	}

	var all []aksCluster
	if err := json.Unmarshal([]byte(out), &all); err != nil {
		return nil, fmt.Errorf("error parsing AKS cluster list: %w", err)
	}

	clusters := []analysis.ClusterDescriptor{}
	for _, cluster := range all {
		if !strings.HasPrefix(cluster.Name, prefix) {
			continue
		}
		descriptor := analysis.ClusterDescriptor{
			Name:              cluster.Name,
			ResourceGroup:     resourceGroupFromID(cluster.ID),
			Location:          cluster.Location,
			Status:            cluster.ProvisioningState,
			KubernetesVersion: cluster.KubernetesVersion,
		}
		for _, pool := range cluster.AgentPoolProfiles {
			descriptor.NodeCount += pool.Count
		}
		clusters = append(clusters, descriptor)
		log.Infof("Found cluster %s (%s)", descriptor.Name, descriptor.ResourceGroup)
	}
	log.Infof("Total clusters found: %d", len(clusters))
	return clusters, nil
}

// GetCredentials merges the cluster's credentials into the local
// kubeconfig, overwriting any stale entry for the same cluster.
func GetCredentials(ctx context.Context, resourceGroup string, name string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CredentialTimeout)
	defer cancel()
	_, err := runAz(ctx, "aks", "get-credentials",
		"--resource-group", resourceGroup,
		"--name", name,
		"--overwrite-existing")
	if err != nil {
		return fmt.Errorf("error getting credentials for %s: %w", name, err)
	}
	log.Infof("Credentials obtained for %s", name)
	return nil
}

// resourceGroupFromID pulls the resource group out of an ARM resource
// ID of the form /subscriptions/<id>/resourcegroups/<group>/...
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	if len(parts) > 4 {
		return parts[4]
	}
	return ""
}
