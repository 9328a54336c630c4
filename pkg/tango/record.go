// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package tango

import "sort"

// ReadState says whether an item value was read, and if not, why.
// Records carry the state explicitly; renderers turn it into the
// "N/A"/"N/R" placeholders at the output edge.
type ReadState int

const (
	// StateNotRead means the item was listed but its value was never
	// requested (configuration-only commands, quick listings).
	StateNotRead ReadState = iota
	// StateRead means the value was fetched from the live device.
	StateRead
	// StateBlocked means policy suppressed the read (block list).
	StateBlocked
	// StateFailed means the read or invocation was attempted and failed.
	StateFailed
)

// AttrData is the live reading of one attribute.
type AttrData struct {
	State      ReadState
	Value      any
	Type       string
	DataFormat string
}

// Attribute is one attribute of a device record.
type Attribute struct {
	Data   AttrData
	Config *AttributeConfig
	Error  string
}

// Command is one command of a device record. Value is only set for
// commands on a safe-to-invoke list.
type Command struct {
	Config *CommandConfig
	State  ReadState
	Value  any
	Error  string
}

// Property is one multi-valued property of a device record.
type Property struct {
	State ReadState
	Value []string
}

// Device is the record assembled for one device. Items are keyed by
// their Tango name.
type Device struct {
	Name       string
	Class      string
	Version    string
	AdminMode  string
	Info       *DeviceInfo
	Attributes map[string]*Attribute
	Commands   map[string]*Command
	Properties map[string]*Property
	Errors     []string
}

// AttributeNames returns the attribute names in sorted order.
func (d *Device) AttributeNames() []string {
	return sortedKeys(d.Attributes)
}

// CommandNames returns the command names in sorted order.
func (d *Device) CommandNames() []string {
	return sortedKeys(d.Commands)
}

// PropertyNames returns the property names in sorted order.
func (d *Device) PropertyNames() []string {
	return sortedKeys(d.Properties)
}

// Collection maps device names to records. A nil record marks a device
// that could not be opened; the failure does not abort the collection.
type Collection struct {
	Endpoint Endpoint
	Devices  map[string]*Device
}

// Names returns the device names in sorted order so that every render
// pass walks the collection identically.
func (c *Collection) Names() []string {
	return sortedKeys(c.Devices)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
