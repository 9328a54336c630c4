// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/k8s"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/reader"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the Tango database answers",
	Long: `Check each configured Tango host: first a TCP probe, then a device
list through the database. The TCP probe is advisory; the database
query decides the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := connector()
		if err != nil {
			return err
		}
		eps, err := endpoints(ctx)
		if err != nil {
			return err
		}
		timeout := time.Duration(appCfg.TimeoutMillis) * time.Millisecond
		var failed int
		for _, ep := range eps {
			if err := k8s.CheckEndpoint(ep, timeout); err != nil {
				appLog.Warn().Str("tango_host", ep.String()).Err(err).Msg("TCP probe failed")
			}
			db, err := conn.Open(ctx, ep)
			if err != nil {
				fmt.Printf("%-64s FAILED: %v\n", ep, err)
				failed++
				continue
			}
			names, err := reader.ListDevices(appLog, db, appCfg, reader.Filters{Everything: true})
			if err != nil {
				fmt.Printf("%-64s FAILED: %v\n", ep, err)
				failed++
				continue
			}
			fmt.Printf("%-64s ok, %d devices\n", ep, len(names))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d Tango hosts failed", failed, len(eps))
		}
		return nil
	},
}
