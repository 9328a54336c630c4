// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Command tangoktl is tangoctl for Kubernetes clusters: the same
// device commands plus namespace discovery, pod inspection and the web
// API.
package main

import "github.com/ska-telescope/ska-tangoctl-sub000/internal/cli"

var (
	// BuildTag is set during build
	BuildTag = "dev"
	// BuildDate is set during build
	BuildDate = "unknown"
)

func main() {
	cli.Execute(cli.Options{
		Name:       "tangoktl",
		Kubernetes: true,
		BuildTag:   BuildTag,
		BuildDate:  BuildDate,
	})
}
