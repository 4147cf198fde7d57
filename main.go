// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package main

import (
	"os"

	"github.com/kubehealth/kubehealth/cmd/root"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	// Allow timestamps for logging
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	// Allow prefix matching to minimize typing
	cobra.EnablePrefixMatching = true

	flags := pflag.NewFlagSet("kubehealth", pflag.ExitOnError)
	pflag.CommandLine = flags

	rootCmd := root.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
