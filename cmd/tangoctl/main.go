// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Command tangoctl inspects and administers Tango device servers.
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
		Name:      "tangoctl",
		BuildTag:  BuildTag,
		BuildDate: BuildDate,
	})
}
