// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

// Package clusters lists the AKS fleet without analyzing it.
package clusters

import (
	"context"
	"sort"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/azure"
)

// Options are the options for the clusters command
type Options struct {
	// Prefix restricts the listing to cluster names that start with it
	Prefix string
}

// Cluster is a discovered cluster together with its standing in the
// fleet.
type Cluster struct {
	analysis.ClusterDescriptor

	// Outdated is true when the cluster runs an older Kubernetes
	// version than the newest one in the fleet.
	Outdated bool
}

// List discovers the AKS fleet and marks the clusters that trail the
// newest Kubernetes version in it.
func List(o Options) ([]Cluster, error) {
	ctx := context.Background()
	if err := azure.CheckCLI(ctx); err != nil {
		return nil, err
	}
	if _, err := azure.SubscriptionID(ctx); err != nil {
		return nil, err
	}

	descriptors, err := azure.DiscoverClusters(ctx, o.Prefix)
	if err != nil {
		return nil, err
	}

	clusters := make([]Cluster, 0, len(descriptors))
	for _, descriptor := range descriptors {
		clusters = append(clusters, Cluster{ClusterDescriptor: descriptor})
	}
	markOutdated(clusters)
	return clusters, nil
}

// SortByVersion orders clusters from the oldest Kubernetes version to
// the newest.  Clusters whose version does not parse sort last.
func SortByVersion(clusters []Cluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		left, leftErr := semver.NewVersion(clusters[i].KubernetesVersion)
		right, rightErr := semver.NewVersion(clusters[j].KubernetesVersion)
		if leftErr != nil {
			return false
		}
		if rightErr != nil {
			return true
		}
		return left.LessThan(right)
	})
}

// markOutdated flags every cluster running an older Kubernetes version
// than the newest one in the fleet.  A version that does not parse
// leaves its cluster unflagged.
func markOutdated(clusters []Cluster) {
	var newest *semver.Version
	for i := range clusters {
		parsed, err := semver.NewVersion(clusters[i].KubernetesVersion)
		if err != nil {
			log.Debugf("Cannot compare version %q of cluster %s", clusters[i].KubernetesVersion, clusters[i].Name)
			continue
		}
		if newest == nil || newest.LessThan(parsed) {
			newest = parsed
		}
	}
	if newest == nil {
		return
	}

	for i := range clusters {
		parsed, err := semver.NewVersion(clusters[i].KubernetesVersion)
		if err != nil {
			continue
		}
		clusters[i].Outdated = parsed.LessThan(newest)
	}
}
