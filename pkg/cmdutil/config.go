// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package cmdutil

import (
	"github.com/kubehealth/kubehealth/pkg/config"
	"github.com/kubehealth/kubehealth/pkg/config/types"
)

// GetFullConfig resolves the effective configuration for a command.
// Values from the command line win over the environment, which wins
// over the explicit config file, which wins over the per-user defaults.
func GetFullConfig(configPath string, flagConfig *types.Config) (*types.Config, error) {
	df, err := config.GetDefaultConfig()
	if err != nil {
		return nil, err
	}

	// Read the config file, if it was specified
	if configPath != "" {
		fileConfig, err := config.ParseConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		merged := types.MergeConfig(df, fileConfig)
		withEnv := config.OverlayEnvironment(&merged)
		df = &withEnv
	}

	full := types.MergeConfig(df, flagConfig)
	return &full, nil
}
