// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kubehealth/kubehealth/pkg/config/types"
	"github.com/kubehealth/kubehealth/pkg/constants"
	"gopkg.in/yaml.v3"
)

// ParseConfig takes a yaml-encoded string and parses it
// into a Config structure.
func ParseConfig(in string) (*types.Config, error) {
	ret := &types.Config{}
	err := yaml.Unmarshal([]byte(in), ret)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// ParseConfigFile takes the path to a file, reads the contents,
// and parses it into a Config structure.
func ParseConfigFile(configPath string) (*types.Config, error) {
	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	conf, err := ParseConfig(string(configBytes))
	if err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %s", configPath, err.Error())
	}
	return conf, nil
}

// GetDefaultConfig returns the global default config.  It starts
// with a hard-coded set of defaults.  It then attempts to read a
// global overrides file.  If such a file is found, the entries in
// that file are merged into the hard-coded defaults.  Finally any
// environment variables that are set override both.
func GetDefaultConfig() (*types.Config, error) {
	defaultConfig := types.Config{
		PagerDuty: types.PagerDuty{
			URL: constants.PagerDutyAPIURL,
		},
		Azure: types.Azure{
			ClusterPrefix: constants.ClusterPrefix,
		},
		Serve: types.Serve{
			Address:  constants.ServeAddress,
			Interval: constants.ServeInterval.String(),
		},
		OutputPath:  constants.OutputPath,
		TenantsFile: constants.TenantsFile,
	}

	homedir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Load in the defaults.  Prefer the path set by KUBEHEALTH_DEFAULTS.
	// If that is not set, use the default path.
	defaultPath := filepath.Join(homedir, constants.UserConfigDefaults)
	defaultPathOvr := os.Getenv(constants.UserConfigDefaultsEnvironmentVariable)
	if defaultPathOvr != "" {
		defaultPath = defaultPathOvr
	}

	configFileDefaults, err := ParseConfigFile(defaultPath)
	if os.IsNotExist(err) {
		ret := OverlayEnvironment(&defaultConfig)
		return &ret, nil
	} else if err != nil {
		return nil, err
	}
	merged := types.MergeConfig(&defaultConfig, configFileDefaults)
	ret := OverlayEnvironment(&merged)
	return &ret, nil
}

// OverlayEnvironment merges the well known environment variables over
// a config.  Variables that are not set leave the config alone.
func OverlayEnvironment(conf *types.Config) types.Config {
	fromEnv := types.Config{
		PagerDuty: types.PagerDuty{
			Token:     os.Getenv(constants.EnvPagerDutyToken),
			ServiceID: os.Getenv(constants.EnvPagerDutyServiceID),
		},
		Azure: types.Azure{
			User:          os.Getenv(constants.EnvAzureUser),
			ClusterPrefix: os.Getenv(constants.EnvClusterPrefix),
		},
		OutputPath:  os.Getenv(constants.EnvOutputPath),
		TenantsFile: os.Getenv(constants.EnvTenantsFile),
		LogLevel:    os.Getenv(constants.EnvLogLevel),
	}
	return types.MergeConfig(conf, &fromEnv)
}

// ValidateForAnalysis checks that the settings an analysis run cannot do
// without are present.  The error names the environment variables that
// provide the missing values.
func ValidateForAnalysis(conf *types.Config) error {
	missing := []string{}
	if conf.PagerDuty.Token == "" {
		missing = append(missing, constants.EnvPagerDutyToken)
	}
	if conf.Azure.User == "" {
		missing = append(missing, constants.EnvAzureUser)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// PollInterval parses the configured serve interval.
func PollInterval(conf *types.Config) (time.Duration, error) {
	if conf.Serve.Interval == "" {
		return constants.ServeInterval, nil
	}
	interval, err := time.ParseDuration(conf.Serve.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid serve interval %q: %s", conf.Serve.Interval, err.Error())
	}
	if interval <= 0 {
		return 0, fmt.Errorf("invalid serve interval %q: must be positive", conf.Serve.Interval)
	}
	return interval, nil
}
