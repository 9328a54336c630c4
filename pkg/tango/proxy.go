// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package tango

import (
	"context"
	"fmt"
)

// Endpoint is an explicit Tango database address. It replaces the
// TANGO_HOST environment variable as the way a connection target is
// selected, so independent scans can use independent endpoints.
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// DeviceInfo is the static identification block a device reports.
type DeviceInfo struct {
	Class         string `json:"dev_class"`
	Type          string `json:"dev_type"`
	DocURL        string `json:"doc_url,omitempty"`
	ServerHost    string `json:"server_host"`
	ServerID      string `json:"server_id,omitempty"`
	ServerVersion int    `json:"server_version,omitempty"`
}

// AttributeValue is a live attribute reading.
type AttributeValue struct {
	Value      any
	Type       CmdArgType
	DataFormat DataFormat
}

// AttrEvents is the change/archive/periodic event configuration of an
// attribute.
type AttrEvents struct {
	AbsChange        string `json:"abs_change,omitempty"`
	RelChange        string `json:"rel_change,omitempty"`
	ArchiveAbsChange string `json:"archive_abs_change,omitempty"`
	ArchiveRelChange string `json:"archive_rel_change,omitempty"`
	ArchivePeriod    string `json:"archive_period,omitempty"`
	Period           string `json:"period,omitempty"`
}

// AttributeConfig is the static configuration of one attribute.
type AttributeConfig struct {
	Description  string     `json:"description,omitempty"`
	Format       string     `json:"format,omitempty"`
	DisplayUnit  string     `json:"display_unit,omitempty"`
	StandardUnit string     `json:"standard_unit,omitempty"`
	Writable     string     `json:"writable,omitempty"`
	DataType     CmdArgType `json:"-"`
	DataFormat   DataFormat `json:"-"`
	EnumLabels   []string   `json:"enum_labels,omitempty"`
	MinValue     string     `json:"min_value,omitempty"`
	MaxValue     string     `json:"max_value,omitempty"`
	MinAlarm     string     `json:"min_alarm,omitempty"`
	MaxAlarm     string     `json:"max_alarm,omitempty"`
	Events       AttrEvents `json:"events,omitzero"`
}

// CommandConfig is the static configuration of one command.
type CommandConfig struct {
	InType      CmdArgType
	OutType     CmdArgType
	InTypeDesc  string
	OutTypeDesc string
}

// DeviceProxy is a client handle for one Tango device. All calls block
// until the device answers or the proxy timeout expires.
type DeviceProxy interface {
	Name() string
	Info() (DeviceInfo, error)
	Version() (string, error)

	AttributeList() ([]string, error)
	CommandList() ([]string, error)
	PropertyList(pattern string) ([]string, error)

	ReadAttribute(name string) (AttributeValue, error)
	WriteAttribute(name string, value any) error
	AttributeConfig(name string) (AttributeConfig, error)

	CommandInOut(name string, arg any) (any, error)
	CommandConfig(name string) (CommandConfig, error)

	Property(name string) ([]string, error)

	AdminMode() (AdminMode, error)
	SetAdminMode(mode AdminMode) error
	SimulationMode() (int, error)
	SetSimulationMode(mode int) error

	State() (string, error)
	Status() (string, error)
	Ping() error
}

// Database is a client handle for the Tango database service.
type Database interface {
	// DeviceExported lists the currently exported device names matching
	// the glob pattern, "*" for all.
	DeviceExported(pattern string) ([]string, error)
}

// Connector opens database and device handles against an endpoint. It
// is the seam a real Tango binding implements.
type Connector interface {
	Open(ctx context.Context, ep Endpoint) (Database, error)
	OpenDevice(ctx context.Context, ep Endpoint, name string) (DeviceProxy, error)
}
