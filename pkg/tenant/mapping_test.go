// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package tenant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const mappingJSON = `{
  "tenants": [
    {"uuid": "7ac93e0f-1f38-4f3e-b95e-6a8b37df2d41", "organization_name": "Grupo Andino de Alimentos, S.A. de C.V."},
    {"uuid": "b42cf1a9-52be-4de2-9b2d-3e6c79a41f55", "name": "Northwind Logistics"},
    {"uuid": "", "name": "No UUID Corp"},
    {"uuid": "90b1f3de-7f27-4e0e-a2f3-5b71c2f7a111"}
  ]
}`

func writeMapping(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "tenants.json")
	err := os.WriteFile(path, []byte(contents), 0600)
	assert.NoError(t, err, "could not write mapping file")
	return path
}

func TestLoadMapping(t *testing.T) {
	mapping := LoadMapping(writeMapping(t, mappingJSON))
	assert.Len(t, mapping, 2, "incomplete entries should be skipped")
	assert.Equal(t, "Grupo Andino de Alimentos, S.A. de C.V.", mapping["7ac93e0f-1f38-4f3e-b95e-6a8b37df2d41"])
	assert.Equal(t, "Northwind Logistics", mapping["b42cf1a9-52be-4de2-9b2d-3e6c79a41f55"])
}

func TestLoadMappingMissingFile(t *testing.T) {
	mapping := LoadMapping(filepath.Join(t.TempDir(), "nope.json"))
	assert.NotNil(t, mapping, "a missing file should yield an empty mapping")
	assert.Empty(t, mapping)
}

func TestLoadMappingMalformedFile(t *testing.T) {
	mapping := LoadMapping(writeMapping(t, `{"tenants": [`))
	assert.NotNil(t, mapping, "a malformed file should yield an empty mapping")
	assert.Empty(t, mapping)
}

func TestLoadMappingYAML(t *testing.T) {
	mapping := LoadMapping(writeMapping(t, "tenants:\n- uuid: 7ac93e0f-1f38-4f3e-b95e-6a8b37df2d41\n  name: Acme Corp\n"))
	assert.Equal(t, "Acme Corp", mapping["7ac93e0f-1f38-4f3e-b95e-6a8b37df2d41"])
}

func TestOrganizationName(t *testing.T) {
	mapping := Mapping{"7ac93e0f-1f38-4f3e-b95e-6a8b37df2d41": "Acme Corp"}
	assert.Equal(t, "Acme Corp", mapping.OrganizationName("7ac93e0f-1f38-4f3e-b95e-6a8b37df2d41"))
	assert.Equal(t, "90b1f3de-7f27-4e0e-a2f3-5b71c2f7a111", mapping.OrganizationName("90b1f3de-7f27-4e0e-a2f3-5b71c2f7a111"),
		"unmapped namespaces keep their UUID")
	assert.True(t, mapping.Has("7ac93e0f-1f38-4f3e-b95e-6a8b37df2d41"))
	assert.False(t, mapping.Has("90b1f3de-7f27-4e0e-a2f3-5b71c2f7a111"))
}
