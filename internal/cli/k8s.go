// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/k8s"
)

var (
	nsPattern string
	podsLog   bool
)

var nsCmd = &cobra.Command{
	Use:   "ns",
	Short: "List Kubernetes namespaces and their Tango hosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cluster, err := k8s.NewClient(appLog)
		if err != nil {
			return err
		}
		names, err := cluster.Namespaces(cmd.Context(), nsPattern)
		if err != nil {
			return err
		}
		for _, name := range names {
			ep := k8s.TangoEndpoint(name, appCfg.DatabasedsName, appCfg.ClusterDomain, databasedsPort())
			fmt.Printf("%-40s %s\n", name, ep)
		}
		fmt.Printf("%d namespaces\n", len(names))
		return nil
	},
}

var podsCmd = &cobra.Command{
	Use:   "pods",
	Short: "List the pods of a namespace",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagK8sNS == "" {
			return fmt.Errorf("no namespace: use -K")
		}
		cluster, err := k8s.NewClient(appLog)
		if err != nil {
			return err
		}
		pods, err := cluster.Pods(cmd.Context(), flagK8sNS)
		if err != nil {
			return err
		}
		for _, pod := range pods {
			fmt.Printf("%-64s %-16s %s\n", pod.Name, pod.IP, pod.Phase)
			if podsLog {
				log, err := cluster.PodLog(cmd.Context(), flagK8sNS, pod.Name)
				if err != nil {
					appLog.Warn().Str("pod", pod.Name).Err(err).Msg("Could not read pod log")
					continue
				}
				fmt.Println(log)
			}
		}
		fmt.Printf("%d pods\n", len(pods))
		return nil
	},
}

var svcsCmd = &cobra.Command{
	Use:   "svcs",
	Short: "List the services of a namespace",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagK8sNS == "" {
			return fmt.Errorf("no namespace: use -K")
		}
		cluster, err := k8s.NewClient(appLog)
		if err != nil {
			return err
		}
		svcs, err := cluster.Services(cmd.Context(), flagK8sNS)
		if err != nil {
			return err
		}
		for _, svc := range svcs {
			port := ""
			if svc.Port > 0 {
				port = fmt.Sprintf("%d/%s", svc.Port, svc.Protocol)
			}
			fmt.Printf("%-48s %-12s %-16s %s\n", svc.Name, svc.Type, svc.ClusterIP, port)
		}
		fmt.Printf("%d services\n", len(svcs))
		return nil
	},
}

func init() {
	nsCmd.Flags().StringVar(&nsPattern, "pattern", "", "Regular expression filtering namespace names")
	podsCmd.Flags().BoolVar(&podsLog, "log", false, "Print the log of each pod")
}
