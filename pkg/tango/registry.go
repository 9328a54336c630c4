// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package tango

import (
	"fmt"
	"sort"
	"sync"
)

var (
	connectorsMu sync.RWMutex
	connectors   = map[string]Connector{}
)

// RegisterConnector makes a connector available under a name. Bindings
// register themselves from an init function, like database/sql drivers.
// Registering twice under the same name panics.
func RegisterConnector(name string, c Connector) {
	connectorsMu.Lock()
	defer connectorsMu.Unlock()
	if c == nil {
		panic("tango: RegisterConnector with nil connector")
	}
	if _, dup := connectors[name]; dup {
		panic("tango: RegisterConnector called twice for " + name)
	}
	connectors[name] = c
}

// LookupConnector returns a registered connector by name.
func LookupConnector(name string) (Connector, error) {
	connectorsMu.RLock()
	defer connectorsMu.RUnlock()
	c, ok := connectors[name]
	if !ok {
		return nil, fmt.Errorf("no Tango connector %q registered (have %v)", name, connectorNames())
	}
	return c, nil
}

func connectorNames() []string {
	names := make([]string, 0, len(connectors))
	for name := range connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
