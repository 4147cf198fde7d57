// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kubehealth/kubehealth/cmd/constants"
	"github.com/kubehealth/kubehealth/pkg/cmdutil"
	"github.com/kubehealth/kubehealth/pkg/commands/serve"
	"github.com/kubehealth/kubehealth/pkg/config"
	"github.com/kubehealth/kubehealth/pkg/config/types"
	"github.com/kubehealth/kubehealth/pkg/util/logutils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	CommandName = "serve"
	helpShort   = "Run analysis periodically and serve the results over HTTP"
	helpLong    = `Runs the analysis pipeline on an interval and keeps the latest status report in memory.  The report is served as JSON along with Prometheus metrics and a liveness endpoint.  The tenant mapping file is watched for changes and reloaded before the next run.`
	helpExample = `
kubehealth serve
kubehealth serve --address :9090 --interval 10m
`
)

var options serve.Options
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
	cmd.Flags().StringVarP(&flagConfig.Serve.Address, constants.FlagAddress, constants.FlagAddressShort, "", constants.FlagAddressHelp)
	cmd.Flags().StringVar(&flagConfig.Serve.Interval, constants.FlagInterval, "", constants.FlagIntervalHelp)
	cmd.Flags().StringVarP(&options.Analysis.KubeConfigPath, constants.FlagKubeconfig, constants.FlagKubeconfigShort, "", constants.FlagKubeconfigHelp)
	cmd.Flags().StringVarP(&flagConfig.OutputPath, constants.FlagOutput, constants.FlagOutputShort, "", constants.FlagOutputHelp)
	cmd.Flags().StringVarP(&flagConfig.TenantsFile, constants.FlagTenants, constants.FlagTenantsShort, "", constants.FlagTenantsHelp)
	cmd.Flags().StringVar(&flagConfig.Azure.ClusterPrefix, constants.FlagClusterPrefix, "", constants.FlagClusterPrefixHelp)
	cmd.Flags().IntVar(&options.Analysis.Hours, constants.FlagHours, 0, constants.FlagHoursHelp)
	cmd.Flags().BoolVar(&options.Analysis.SkipIncidents, constants.FlagSkipIncidents, false, constants.FlagSkipIncidentsHelp)

	return cmd
}

// RunCmd runs the "kubehealth serve" command
func RunCmd(cmd *cobra.Command) error {
	conf, err := cmdutil.GetFullConfig(configPath, &flagConfig)
	if err != nil {
		return err
	}
	if conf.LogLevel != "" && !cmd.Flags().Changed(constants.FlagLogLevel) {
		log.SetLevel(logutils.ParseLevel(conf.LogLevel))
	}

	interval, err := config.PollInterval(conf)
	if err != nil {
		return err
	}

	options.Analysis.Config = conf
	options.Address = conf.Serve.Address
	options.Interval = interval

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve.New(options).Run(ctx)
}
