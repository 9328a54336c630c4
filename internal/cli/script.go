// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/script"
)

var (
	scriptDevice string
	scriptFile   string
	scriptDryRun bool
)

var scriptCmd = &cobra.Command{
	Use:   "script -D device -I file",
	Short: "Run a JSON test script against a device",
	Long: `Run a JSON test script against a device.

The script maps test names to steps; each step reads or writes an
attribute or invokes a command. ${ENV_VAR} references in the file are
expanded from the environment. With --dry-run the steps are printed
but not executed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := script.Load(scriptFile)
		if err != nil {
			return err
		}
		dev, err := openDevice(cmd.Context(), scriptDevice)
		if err != nil {
			return err
		}
		runner := script.NewRunner(appLog, dev, os.Stdout)
		runner.DryRun = scriptDryRun
		failures := runner.Run(s)
		if len(failures) > 0 {
			return fmt.Errorf("%d step(s) failed", len(failures))
		}
		return nil
	},
}

func init() {
	scriptCmd.Flags().StringVarP(&scriptDevice, "device", "D", "", "Device name")
	scriptCmd.Flags().StringVarP(&scriptFile, "input", "I", "", "Script file")
	scriptCmd.Flags().BoolVar(&scriptDryRun, "dry-run", false, "Print steps without executing them")
	scriptCmd.MarkFlagRequired("device")
	scriptCmd.MarkFlagRequired("input")
}
