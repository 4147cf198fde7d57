// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analyze

import (
	"github.com/kubehealth/kubehealth/cmd/constants"
	"github.com/kubehealth/kubehealth/pkg/cmdutil"
	"github.com/kubehealth/kubehealth/pkg/commands/analyze"
	"github.com/kubehealth/kubehealth/pkg/config/types"
	"github.com/kubehealth/kubehealth/pkg/util/logutils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	CommandName = "analyze"
	helpShort   = "Analyze the health of every tenant namespace in the fleet"
	helpLong    = `Discover the AKS clusters, grade the health of every tenant namespace, correlate open PagerDuty incidents, and write the status report.`
	helpExample = `
kubehealth analyze
kubehealth analyze --skip-incidents --output /tmp/status.json
kubehealth analyze --no-discovery --kubeconfig ~/.kube/config
`
)

var options analyze.Options
var flagConfig types.Config
var configPath string

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   CommandName,
		Short: helpShort,
		Long:  helpLong,
		Args:  cobra.MatchAll(cobra.ExactArgs(0), cobra.OnlyValidArgs),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return RunCmd(cmd)
	}
	cmd.Example = helpExample
	cmdutil.SilenceUsage(cmd)

	cmd.Flags().StringVarP(&configPath, constants.FlagConfig, constants.FlagConfigShort, "", constants.FlagConfigHelp)
	cmd.Flags().StringVarP(&options.KubeConfigPath, constants.FlagKubeconfig, constants.FlagKubeconfigShort, "", constants.FlagKubeconfigHelp)
	cmd.Flags().StringVarP(&flagConfig.OutputPath, constants.FlagOutput, constants.FlagOutputShort, "", constants.FlagOutputHelp)
	cmd.Flags().StringVarP(&flagConfig.TenantsFile, constants.FlagTenants, constants.FlagTenantsShort, "", constants.FlagTenantsHelp)
	cmd.Flags().StringVar(&flagConfig.Azure.ClusterPrefix, constants.FlagClusterPrefix, "", constants.FlagClusterPrefixHelp)
	cmd.Flags().IntVar(&options.Hours, constants.FlagHours, 0, constants.FlagHoursHelp)
	cmd.Flags().BoolVar(&options.SkipIncidents, constants.FlagSkipIncidents, false, constants.FlagSkipIncidentsHelp)
	cmd.Flags().BoolVar(&options.NoDiscovery, constants.FlagNoDiscovery, false, constants.FlagNoDiscoveryHelp)

	return cmd
}

// RunCmd runs the "kubehealth analyze" command
func RunCmd(cmd *cobra.Command) error {
	conf, err := cmdutil.GetFullConfig(configPath, &flagConfig)
	if err != nil {
		return err
	}
	if conf.LogLevel != "" && !cmd.Flags().Changed(constants.FlagLogLevel) {
		log.SetLevel(logutils.ParseLevel(conf.LogLevel))
	}
	options.Config = conf

	_, err = analyze.Analyze(options)
	return err
}
