// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package tango

import "fmt"

// ConnectionError marks failures to reach the database or to open a
// device, as opposed to a per-item read failure on a reachable device.
type ConnectionError struct {
	Endpoint Endpoint
	Device   string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Device != "" {
		return fmt.Sprintf("connect to device %s (%s): %v", e.Device, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("connect to database %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
