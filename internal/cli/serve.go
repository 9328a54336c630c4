// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/websvc"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/k8s"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only web API",
	Long: `Serve the read-only web API: namespaces, device collections in any
render format, pods, services and pod logs. With --demo the built-in
demo devices are served and no cluster is needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := connector()
		if err != nil {
			return err
		}
		var cluster *k8s.Client
		if !flagDemo {
			if cluster, err = k8s.NewClient(appLog); err != nil {
				return err
			}
		}
		svc := websvc.New(appLog, appCfg, conn, cluster)
		return svc.Serve(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}
