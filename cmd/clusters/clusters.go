// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package clusters

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/kubehealth/kubehealth/cmd/constants"
	"github.com/kubehealth/kubehealth/pkg/cmdutil"
	"github.com/kubehealth/kubehealth/pkg/commands/clusters"
	"github.com/kubehealth/kubehealth/pkg/config/types"
	"github.com/kubehealth/kubehealth/pkg/util/logutils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	CommandName = "clusters"
	helpShort   = "List the AKS clusters in the fleet"
	helpLong    = `Lists the AKS clusters that fleet discovery finds, along with their Kubernetes versions and provisioning states.`
	helpExample = `
kubehealth clusters
kubehealth clusters --sort-version
`
)

var flagConfig types.Config
var configPath string
var sortVersion bool

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
	cmd.Flags().StringVar(&flagConfig.Azure.ClusterPrefix, constants.FlagClusterPrefix, "", constants.FlagClusterPrefixHelp)
	cmd.Flags().BoolVar(&sortVersion, constants.FlagSortVersion, false, constants.FlagSortVersionHelp)

	return cmd
}

// RunCmd runs the "kubehealth clusters" command
func RunCmd(cmd *cobra.Command) error {
	conf, err := cmdutil.GetFullConfig(configPath, &flagConfig)
	if err != nil {
		return err
	}
	if conf.LogLevel != "" && !cmd.Flags().Changed(constants.FlagLogLevel) {
		log.SetLevel(logutils.ParseLevel(conf.LogLevel))
	}

	list, err := clusters.List(clusters.Options{Prefix: conf.Azure.ClusterPrefix})
	if err != nil {
		return err
	}
	if sortVersion {
		clusters.SortByVersion(list)
	}

	table := uitable.New()
	table.AddRow("NAME", "RESOURCE GROUP", "LOCATION", "VERSION", "NODES", "STATUS")

	for _, cluster := range list {
		version := cluster.KubernetesVersion
		if cluster.Outdated {
			version = version + " (outdated)"
		}
		table.AddRow(cluster.Name, cluster.ResourceGroup, cluster.Location, version, cluster.NodeCount, cluster.Status)
	}
	fmt.Println(table)

	return nil
}
