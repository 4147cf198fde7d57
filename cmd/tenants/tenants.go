// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package tenants

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/kubehealth/kubehealth/cmd/constants"
	"github.com/kubehealth/kubehealth/pkg/cmdutil"
	"github.com/kubehealth/kubehealth/pkg/commands/tenants"
	"github.com/kubehealth/kubehealth/pkg/config/types"
	"github.com/kubehealth/kubehealth/pkg/util/logutils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	CommandName = "tenants"
	helpShort   = "List the tenant mapping"
	helpLong    = `Lists the tenant namespaces that analysis monitors, along with the organization each one belongs to and the keywords used for incident correlation.`
	helpExample = `
kubehealth tenants
kubehealth tenants --tenants /etc/kubehealth/tenants.json
`
)

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
	cmd.Flags().StringVarP(&flagConfig.TenantsFile, constants.FlagTenants, constants.FlagTenantsShort, "", constants.FlagTenantsHelp)

	return cmd
}

// RunCmd runs the "kubehealth tenants" command
func RunCmd(cmd *cobra.Command) error {
	conf, err := cmdutil.GetFullConfig(configPath, &flagConfig)
	if err != nil {
		return err
	}
	if conf.LogLevel != "" && !cmd.Flags().Changed(constants.FlagLogLevel) {
		log.SetLevel(logutils.ParseLevel(conf.LogLevel))
	}

	rows, err := tenants.List(conf.TenantsFile)
	if err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("UUID", "ORGANIZATION", "KEYWORDS")

	for _, tenant := range rows {
		table.AddRow(tenant.UUID, tenant.OrganizationName, strings.Join(tenant.Keywords, ", "))
	}
	fmt.Println(table)

	return nil
}
