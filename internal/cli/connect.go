// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/clierr"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/k8s"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango/fake"
)

// connector returns the device-access implementation: the built-in
// demo devices with --demo, otherwise whatever binding registered
// itself under "tango".
func connector() (tango.Connector, error) {
	if flagDemo {
		return fake.Demo(), nil
	}
	conn, err := tango.LookupConnector("tango")
	if err != nil {
		return nil, clierr.WrapWithHint(err, "run with --demo to use the built-in demo devices")
	}
	return conn, nil
}

func databasedsPort() int {
	if flagPort > 0 {
		return flagPort
	}
	return appCfg.DatabasedsPort
}

// endpoints resolves the Tango hosts to work on, in precedence order:
// -H, -K namespaces, TANGO_HOST, demo.
func endpoints(ctx context.Context) ([]tango.Endpoint, error) {
	if flagHost != "" {
		ep, err := parseTangoHost(flagHost, databasedsPort())
		if err != nil {
			return nil, err
		}
		return []tango.Endpoint{ep}, nil
	}
	if appOpts.Kubernetes && flagK8sNS != "" {
		return namespaceEndpoints(ctx)
	}
	if th := os.Getenv("TANGO_HOST"); th != "" {
		ep, err := parseTangoHost(th, databasedsPort())
		if err != nil {
			return nil, fmt.Errorf("TANGO_HOST: %w", err)
		}
		return []tango.Endpoint{ep}, nil
	}
	if flagDemo {
		return []tango.Endpoint{{Host: "demo", Port: databasedsPort()}}, nil
	}
	hint := "use -H <host> or set TANGO_HOST"
	if appOpts.Kubernetes {
		hint = "use -H <host>, -K <namespace> or set TANGO_HOST"
	}
	return nil, errors.New("no Tango host: " + hint)
}

// endpoint is the single-host form used by commands addressing one
// device.
func endpoint(ctx context.Context) (tango.Endpoint, error) {
	eps, err := endpoints(ctx)
	if err != nil {
		return tango.Endpoint{}, err
	}
	if len(eps) != 1 {
		return tango.Endpoint{}, fmt.Errorf("need exactly one Tango host, got %d", len(eps))
	}
	return eps[0], nil
}

func parseTangoHost(s string, defPort int) (tango.Endpoint, error) {
	host, portStr, found := strings.Cut(s, ":")
	if host == "" {
		return tango.Endpoint{}, fmt.Errorf("empty Tango host in %q", s)
	}
	if !found {
		return tango.Endpoint{Host: host, Port: defPort}, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return tango.Endpoint{}, fmt.Errorf("bad Tango port in %q", s)
	}
	return tango.Endpoint{Host: host, Port: port}, nil
}

// namespaceEndpoints maps the -K value to endpoints. Plain names map
// directly to the expected databaseds DNS name; anything with regular
// expression metacharacters is matched against the live namespace list.
func namespaceEndpoints(ctx context.Context) ([]tango.Endpoint, error) {
	port := databasedsPort()
	var eps []tango.Endpoint
	var cluster *k8s.Client
	for _, part := range strings.Split(flagK8sNS, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.ContainsAny(part, `.*?[]()|^$+\`) {
			eps = append(eps, k8s.TangoEndpoint(part, appCfg.DatabasedsName, appCfg.ClusterDomain, port))
			continue
		}
		if cluster == nil {
			var err error
			if cluster, err = k8s.NewClient(appLog); err != nil {
				return nil, err
			}
		}
		names, err := cluster.Namespaces(ctx, part)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			eps = append(eps, k8s.TangoEndpoint(name, appCfg.DatabasedsName, appCfg.ClusterDomain, port))
		}
	}
	if len(eps) == 0 {
		return nil, fmt.Errorf("no namespace matches %q", flagK8sNS)
	}
	return eps, nil
}

// openDevice opens one named device on the single configured host.
func openDevice(ctx context.Context, name string) (tango.DeviceProxy, error) {
	conn, err := connector()
	if err != nil {
		return nil, err
	}
	ep, err := endpoint(ctx)
	if err != nil {
		return nil, err
	}
	return conn.OpenDevice(ctx, ep, name)
}
