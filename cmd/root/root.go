// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package root

import (
	"github.com/kubehealth/kubehealth/cmd/analyze"
	"github.com/kubehealth/kubehealth/cmd/clusters"
	"github.com/kubehealth/kubehealth/cmd/constants"
	"github.com/kubehealth/kubehealth/cmd/serve"
	"github.com/kubehealth/kubehealth/cmd/status"
	"github.com/kubehealth/kubehealth/cmd/tenants"
	"github.com/kubehealth/kubehealth/cmd/version"
	"github.com/kubehealth/kubehealth/pkg/k8s"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	CommandName = "kubehealth"
	helpShort   = "The kubehealth tool monitors tenant workloads across a fleet of AKS clusters"
	helpLong    = `The kubehealth tool monitors tenant workloads across a fleet of AKS clusters`
)

var logLevel string

func stringToLogLevel(level string) log.Level {
	switch level {
	case "error":
		return log.ErrorLevel
	case "info":
		return log.InfoLevel
	case "debug":
		return log.DebugLevel
	case "trace":
		return log.TraceLevel
	default:
		log.Fatalf("%s is not a valid log level", level)
	}
	return log.InfoLevel
}

// NewRootCmd - create the root cobra command
func NewRootCmd() *cobra.Command {
	cmd := NewCommand(CommandName, helpShort, helpLong)

	// Add commands
	cmd.AddCommand(analyze.NewCmd())
	cmd.AddCommand(clusters.NewCmd())
	cmd.AddCommand(status.NewCmd())
	cmd.AddCommand(tenants.NewCmd())
	cmd.AddCommand(serve.NewCmd())
	cmd.AddCommand(version.NewCmd())

	cmd.PersistentFlags().StringVarP(&logLevel, constants.FlagLogLevel, constants.FlagLogLevelShort, "info", constants.FlagLogLevelHelp)

	return cmd
}

// NewCommand - utility method to create cobra commands
func NewCommand(use string, short string, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetLevel(stringToLogLevel(logLevel))
			k8s.RedirectKlog()
		},
	}

	// Disable usage output on errors
	cmd.SilenceUsage = true
	return cmd
}
