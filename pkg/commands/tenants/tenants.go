// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

// Package tenants lists the tenant mapping used by the analysis.
package tenants

import (
	"fmt"
	"os"
	"sort"

	"github.com/kubehealth/kubehealth/pkg/correlate"
	"github.com/kubehealth/kubehealth/pkg/tenant"
)

// Tenant is one row of the mapping together with the keywords the
// incident correlation derives from it.
type Tenant struct {
	UUID             string
	OrganizationName string
	Keywords         []string
}

// List reads the mapping at path, sorted by organization name.
func List(path string) ([]Tenant, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no tenant mapping at %s", path)
		}
		return nil, fmt.Errorf("error reading tenant mapping %s: %w", path, err)
	}

	mapping := tenant.LoadMapping(path)
	rows := make([]Tenant, 0, len(mapping))
	for uuid, organization := range mapping {
		rows = append(rows, Tenant{
			UUID:             uuid,
			OrganizationName: organization,
			Keywords:         correlate.ExtractKeywords(organization),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OrganizationName != rows[j].OrganizationName {
			return rows[i].OrganizationName < rows[j].OrganizationName
		}
		return rows[i].UUID < rows[j].UUID
	})
	return rows, nil
}
