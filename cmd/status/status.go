// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package status

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kubehealth/kubehealth/cmd/constants"
	"github.com/kubehealth/kubehealth/pkg/cmdutil"
	"github.com/kubehealth/kubehealth/pkg/commands/status"
	"github.com/kubehealth/kubehealth/pkg/config/types"
	"github.com/kubehealth/kubehealth/pkg/util/logutils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	CommandName = "status"
	helpShort   = "Display the latest status report"
	helpLong    = `Reads a status report written by a previous analysis and renders the estate summary, the per-cluster listing, and every namespace with issues.  A warning is printed when the report is older than two analysis intervals.`
	helpExample = `
kubehealth status
kubehealth status --file /tmp/status.json
kubehealth status --json
`
)

var flagConfig types.Config
var configPath string
var filePath string
var jsonOutput bool

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
	cmd.Flags().StringVarP(&filePath, constants.FlagFile, constants.FlagFileShort, "", constants.FlagFileHelp)
	cmd.Flags().BoolVar(&jsonOutput, constants.FlagJSON, false, constants.FlagJSONHelp)

	return cmd
}

// RunCmd runs the "kubehealth status" command
func RunCmd(cmd *cobra.Command) error {
	conf, err := cmdutil.GetFullConfig(configPath, &flagConfig)
	if err != nil {
		return err
	}
	if conf.LogLevel != "" && !cmd.Flags().Changed(constants.FlagLogLevel) {
		log.SetLevel(logutils.ParseLevel(conf.LogLevel))
	}

	path := filePath
	if path == "" {
		path = conf.OutputPath
	}

	result, err := status.Get(path)
	if err != nil {
		return err
	}

	if jsonOutput {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	age, stale, err := status.Staleness(result, time.Now())
	if err != nil {
		return err
	}
	status.Display(os.Stdout, result, age, stale)

	return nil
}
