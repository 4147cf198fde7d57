// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package k8s

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/kubernetes"
)

// GetServerVersion asks the API server for its version
func GetServerVersion(client kubernetes.Interface) (*version.Info, error) {
	return client.Discovery().ServerVersion()
}

// VerifyConnection probes the API server and returns an error when the
// cluster cannot be reached with the active credentials.
func VerifyConnection(client kubernetes.Interface) error {
	info, err := GetServerVersion(client)
	if err != nil {
		return fmt.Errorf("error connecting to the cluster: %w", err)
	}
	log.Debugf("Connected to Kubernetes %s", info.GitVersion)
	return nil
}
