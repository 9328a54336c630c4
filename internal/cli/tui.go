// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse devices interactively",
	Long: `Browse devices interactively: a filterable device list with a detail
pane. The same filters as the info command apply.

Examples:
  tangoctl tui --demo
  tangoctl tui -D talon
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := connector()
		if err != nil {
			return err
		}
		ep, err := endpoint(ctx)
		if err != nil {
			return err
		}
		filters := infoFilters()
		filters.Everything = true
		return tui.Run(ctx, tui.Options{
			Log:      appLog,
			Conn:     conn,
			Endpoint: ep,
			Config:   appCfg,
			Filters:  filters,
		})
	},
}

func init() {
	f := tuiCmd.Flags()
	f.StringVarP(&infoDevice, "device", "D", "", "Device name filter")
	f.StringVarP(&infoAttribute, "attribute", "A", "", "Attribute name filter")
	f.StringVarP(&infoCommand, "command", "C", "", "Command name filter")
	f.StringVarP(&infoProperty, "property", "P", "", "Property name filter")
	f.StringVar(&infoClass, "class", "", "Device class filter")
	f.BoolVarP(&infoExact, "exact", "x", false, "Match names exactly instead of by substring")
}
