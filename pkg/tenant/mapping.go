// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package tenant

import (
	"os"

	log "github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// Tenant is one entry of the mapping file.  OrganizationName wins
// over Name when both are set.
type Tenant struct {
	UUID             string `json:"uuid"`
	OrganizationName string `json:"organization_name,omitempty"`
	Name             string `json:"name,omitempty"`
}

type mappingFile struct {
	Tenants []Tenant `json:"tenants"`
}

// Mapping maps tenant namespace UUIDs to organization names.
type Mapping map[string]string

// LoadMapping reads the tenant mapping file.  The file is JSON, with
// YAML accepted as well.  A missing or unreadable file is not fatal;
// the analysis simply runs without organization names.  Entries
// without a UUID or a name are skipped.
func LoadMapping(path string) Mapping {
	mapping := Mapping{}
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Tenant mapping file %s not found, organization names will not be resolved", path)
		} else {
			log.Errorf("Error reading tenant mapping file %s: %v", path, err)
		}
		return mapping
	}

	var contents mappingFile
	if err := yaml.Unmarshal(bytes, &contents); err != nil {
		log.Errorf("Error parsing tenant mapping file %s: %v", path, err)
		return mapping
	}

	for _, tenant := range contents.Tenants {
		name := tenant.OrganizationName
		if name == "" {
			name = tenant.Name
		}
		if tenant.UUID == "" || name == "" {
			log.Debugf("Skipping incomplete tenant mapping entry %+v", tenant)
			continue
		}
		mapping[tenant.UUID] = name
	}
	log.Infof("Loaded %d tenant mappings from %s", len(mapping), path)
	return mapping
}

// OrganizationName resolves a namespace UUID to its organization
// name.  Unmapped namespaces keep the UUID as their display name.
func (m Mapping) OrganizationName(uuid string) string {
	if name, ok := m[uuid]; ok {
		return name
	}
	return uuid
}

// Has reports whether the UUID is mapped.
func (m Mapping) Has(uuid string) bool {
	_, ok := m[uuid]
	return ok
}
