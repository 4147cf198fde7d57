// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package version

import (
	"encoding/json"
	"fmt"

	"github.com/kubehealth/kubehealth/cmd/constants"
	"github.com/kubehealth/kubehealth/pkg/cmdutil"
	"github.com/kubehealth/kubehealth/pkg/version"
	"github.com/spf13/cobra"
)

const (
	CommandName = "version"
	helpShort   = "Display version and build information"
	helpLong    = `Display the version, git commit, and build date of this kubehealth binary.`
	helpExample = `
kubehealth version
`
)

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

	cmd.Flags().BoolVar(&jsonOutput, constants.FlagJSON, false, constants.FlagJSONHelp)

	return cmd
}

// RunCmd runs the "kubehealth version" command
func RunCmd(cmd *cobra.Command) error {
	info := version.Get()

	if jsonOutput {
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Version: %s\n", info.Version)
	fmt.Printf("GitCommit: %s\n", info.GitCommit)
	fmt.Printf("BuildDate: %s\n", info.BuildDate)
	fmt.Printf("GoVersion: %s\n", info.GoVersion)
	fmt.Printf("Platform: %s\n", info.Platform)

	return nil
}
