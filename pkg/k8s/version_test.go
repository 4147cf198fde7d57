// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/client-go/kubernetes/fake"
)

// TestVerifyConnection probes a reachable cluster.
func TestVerifyConnection(t *testing.T) {
	client := fake.NewSimpleClientset()
	assert.NoError(t, VerifyConnection(client), "expected the probe to succeed")
}

// TestGetServerVersion returns the discovery version information.
func TestGetServerVersion(t *testing.T) {
	client := fake.NewSimpleClientset()
	info, err := GetServerVersion(client)
	assert.NoError(t, err, "expected no error from discovery")
	assert.NotNil(t, info, "expected version information")
}
