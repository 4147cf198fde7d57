// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package k8s

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// GetNamespaceList returns the list of namespaces
func GetNamespaceList(client kubernetes.Interface) (*v1.NamespaceList, error) {
	return client.CoreV1().Namespaces().List(context.TODO(), metav1.ListOptions{})
}

// GetNamespaces returns the namespace names
func GetNamespaces(cli kubernetes.Interface) ([]string, error) {
	names := []string{}
	list, err := GetNamespaceList(cli)
	if err != nil {
		return nil, err
	}

	for i := range list.Items {
		names = append(names, list.Items[i].Name)
	}
	return names, nil
}

// GetTenantNamespaces returns the names of the namespaces whose name is a
// UUID, in the order the API server returns them.  Tenant workloads always
// run in a namespace named by the tenant UUID, so everything else
// (kube-system, default, and the like) is skipped.
func GetTenantNamespaces(client kubernetes.Interface) ([]string, error) {
	names, err := GetNamespaces(client)
	if err != nil {
		return nil, err
	}

	tenantNamespaces := []string{}
	for _, name := range names {
		if !IsTenantNamespace(name) {
			log.Debugf("Skipping non-tenant namespace %s", name)
			continue
		}
		tenantNamespaces = append(tenantNamespaces, name)
	}
	log.Infof("Found %d tenant namespaces", len(tenantNamespaces))
	return tenantNamespaces, nil
}

// IsTenantNamespace reports whether the namespace name parses as a UUID.
func IsTenantNamespace(name string) bool {
	_, err := uuid.Parse(name)
	return err == nil
}
