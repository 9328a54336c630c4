// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

var (
	ctlDevice string
	ctlAdmin  int
	ctlSimul  int
)

var ctlCmd = &cobra.Command{
	Use:       "ctl -D device <on|off|standby|status|ping>",
	Short:     "Switch a device on or off, or check its state",
	ValidArgs: []string{"on", "off", "standby", "status", "ping"},
	Args:      cobra.MaximumNArgs(1),
	Long: `Switch a device on, off or to standby, report its state, or ping it.
Admin mode and simulation mode are set with --admin and --simul.

Examples:
  tangoctl ctl -D mid-csp/control/0 on
  tangoctl ctl -D mid-csp/control/0 status
  tangoctl ctl -D mid-csp/control/0 --admin 1
`,
	RunE: runCtl,
}

func init() {
	ctlCmd.Flags().StringVarP(&ctlDevice, "device", "D", "", "Device name")
	ctlCmd.Flags().IntVar(&ctlAdmin, "admin", -1, "Set admin mode: 0 online, 1 offline")
	ctlCmd.Flags().IntVar(&ctlSimul, "simul", -1, "Set simulation mode: 0 off, 1 on")
	ctlCmd.MarkFlagRequired("device")
}

func runCtl(cmd *cobra.Command, args []string) error {
	dev, err := openDevice(cmd.Context(), ctlDevice)
	if err != nil {
		return err
	}

	if ctlAdmin >= 0 {
		if err := dev.SetAdminMode(tango.AdminMode(ctlAdmin)); err != nil {
			return fmt.Errorf("set admin mode on %s: %w", ctlDevice, err)
		}
		fmt.Printf("%s admin mode set to %s\n", ctlDevice, tango.AdminMode(ctlAdmin))
	}
	if ctlSimul >= 0 {
		if err := dev.SetSimulationMode(ctlSimul); err != nil {
			return fmt.Errorf("set simulation mode on %s: %w", ctlDevice, err)
		}
		fmt.Printf("%s simulation mode set to %d\n", ctlDevice, ctlSimul)
	}
	if len(args) == 0 {
		if ctlAdmin < 0 && ctlSimul < 0 {
			return fmt.Errorf("nothing to do: give an action, --admin or --simul")
		}
		return nil
	}

	switch args[0] {
	case "on":
		return invoke(dev, "On")
	case "off":
		return invoke(dev, "Off")
	case "standby":
		return invoke(dev, "Standby")
	case "status":
		state, err := dev.State()
		if err != nil {
			return fmt.Errorf("state of %s: %w", ctlDevice, err)
		}
		status, err := dev.Status()
		if err != nil {
			return fmt.Errorf("status of %s: %w", ctlDevice, err)
		}
		fmt.Printf("%-40s %s\n%-40s %s\n", ctlDevice+" state", state, ctlDevice+" status", status)
		return nil
	case "ping":
		if err := dev.Ping(); err != nil {
			return fmt.Errorf("ping %s: %w", ctlDevice, err)
		}
		fmt.Printf("%s is alive\n", ctlDevice)
		return nil
	default:
		return fmt.Errorf("unknown action %q", args[0])
	}
}

func invoke(dev tango.DeviceProxy, command string) error {
	if _, err := dev.CommandInOut(command, nil); err != nil {
		return fmt.Errorf("%s on %s: %w", command, ctlDevice, err)
	}
	fmt.Printf("%s %s done\n", ctlDevice, command)
	return nil
}
