// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package types

// PagerDuty holds the settings used to reach the incident API.
type PagerDuty struct {
	Token     string `yaml:"token"`
	ServiceID string `yaml:"serviceId"`
	URL       string `yaml:"url"`
}

// Azure holds the settings used to discover managed clusters.
type Azure struct {
	User          string `yaml:"user"`
	ClusterPrefix string `yaml:"clusterPrefix"`
}

// Serve holds the settings for the long running poller.
type Serve struct {
	Address  string `yaml:"address"`
	Interval string `yaml:"interval"`
}

type Config struct {
	PagerDuty   PagerDuty `yaml:"pagerduty"`
	Azure       Azure     `yaml:"azure"`
	Serve       Serve     `yaml:"serve"`
	KubeConfig  string    `yaml:"kubeconfig"`
	OutputPath  string    `yaml:"outputPath"`
	TenantsFile string    `yaml:"tenantsFile"`
	LogLevel    string    `yaml:"logLevel"`
}

// ies is short for "If Else String".  If the second argument is
// not empty, it is returned.  Otherwise, the first argument
// is returned.
func ies(i string, e string) string {
	if e != "" {
		return e
	}
	return i
}

// MergePagerDuty takes two PagerDuty settings and merges them into a third.
// The default values for the result come from the first argument.  If a value
// is set in the second argument, that value takes precedence.
func MergePagerDuty(def *PagerDuty, ovr *PagerDuty) PagerDuty {
	// This is safe to shallow copy because all values are scalars
	if ovr == nil {
		return *def
	}

	return PagerDuty{
		Token:     ies(def.Token, ovr.Token),
		ServiceID: ies(def.ServiceID, ovr.ServiceID),
		URL:       ies(def.URL, ovr.URL),
	}
}

// MergeAzure takes two Azure settings and merges them into a third.
// The default values for the result come from the first argument.  If a value
// is set in the second argument, that value takes precedence.
func MergeAzure(def *Azure, ovr *Azure) Azure {
	// This is safe to shallow copy because all values are scalars
	if ovr == nil {
		return *def
	}

	return Azure{
		User:          ies(def.User, ovr.User),
		ClusterPrefix: ies(def.ClusterPrefix, ovr.ClusterPrefix),
	}
}

// MergeServe takes two Serve settings and merges them into a third.
// The default values for the result come from the first argument.  If a value
// is set in the second argument, that value takes precedence.
func MergeServe(def *Serve, ovr *Serve) Serve {
	// This is safe to shallow copy because all values are scalars
	if ovr == nil {
		return *def
	}

	return Serve{
		Address:  ies(def.Address, ovr.Address),
		Interval: ies(def.Interval, ovr.Interval),
	}
}

// MergeConfig takes two Configs and merges them into a third.
// The default values for the result come from the first argument.  If a value
// is set in the second argument, that value takes precedence.
func MergeConfig(def *Config, ovr *Config) Config {
	return Config{
		PagerDuty:   MergePagerDuty(&def.PagerDuty, &ovr.PagerDuty),
		Azure:       MergeAzure(&def.Azure, &ovr.Azure),
		Serve:       MergeServe(&def.Serve, &ovr.Serve),
		KubeConfig:  ies(def.KubeConfig, ovr.KubeConfig),
		OutputPath:  ies(def.OutputPath, ovr.OutputPath),
		TenantsFile: ies(def.TenantsFile, ovr.TenantsFile),
		LogLevel:    ies(def.LogLevel, ovr.LogLevel),
	}
}
