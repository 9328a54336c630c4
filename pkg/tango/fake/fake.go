// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package fake provides an in-memory implementation of the tango
// device-access boundary for tests and for the demo web mode.
package fake

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Attr seeds one attribute of a fake device.
type Attr struct {
	Value  tango.AttributeValue
	Config tango.AttributeConfig
	// ReadErr makes ReadAttribute fail with this message.
	ReadErr string
}

// Cmd seeds one command of a fake device.
type Cmd struct {
	Config tango.CommandConfig
	// Reply is returned from CommandInOut.
	Reply any
	// InvokeErr makes CommandInOut fail with this message.
	InvokeErr string
}

// Device is a scriptable DeviceProxy.
type Device struct {
	DevName    string
	DevInfo    tango.DeviceInfo
	DevVersion string
	Admin      tango.AdminMode
	Simulation int
	DevState   string
	DevStatus  string
	Attrs      map[string]*Attr
	Cmds       map[string]*Cmd
	Props      map[string][]string

	mu      sync.Mutex
	invoked []string
	written map[string]any
}

var _ tango.DeviceProxy = (*Device)(nil)

func (d *Device) Name() string { return d.DevName }

func (d *Device) Info() (tango.DeviceInfo, error) { return d.DevInfo, nil }

func (d *Device) Version() (string, error) {
	if d.DevVersion == "" {
		return "", errors.New("no versionId attribute")
	}
	return d.DevVersion, nil
}

func (d *Device) AttributeList() ([]string, error) { return sortedNames(d.Attrs), nil }

func (d *Device) CommandList() ([]string, error) { return sortedNames(d.Cmds), nil }

func (d *Device) PropertyList(pattern string) ([]string, error) {
	return sortedNames(d.Props), nil
}

func (d *Device) ReadAttribute(name string) (tango.AttributeValue, error) {
	a, ok := d.Attrs[name]
	if !ok {
		return tango.AttributeValue{}, fmt.Errorf("attribute %s not found", name)
	}
	if a.ReadErr != "" {
		return tango.AttributeValue{}, errors.New(a.ReadErr)
	}
	return a.Value, nil
}

func (d *Device) WriteAttribute(name string, value any) error {
	a, ok := d.Attrs[name]
	if !ok {
		return fmt.Errorf("attribute %s not found", name)
	}
	if a.Config.Writable == "READ" {
		return fmt.Errorf("attribute %s is not writable", name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.written == nil {
		d.written = map[string]any{}
	}
	d.written[name] = value
	a.Value.Value = value
	return nil
}

func (d *Device) AttributeConfig(name string) (tango.AttributeConfig, error) {
	a, ok := d.Attrs[name]
	if !ok {
		return tango.AttributeConfig{}, fmt.Errorf("attribute %s not found", name)
	}
	return a.Config, nil
}

func (d *Device) CommandInOut(name string, arg any) (any, error) {
	c, ok := d.Cmds[name]
	if !ok {
		return nil, fmt.Errorf("command %s not found", name)
	}
	d.mu.Lock()
	d.invoked = append(d.invoked, name)
	d.mu.Unlock()
	if c.InvokeErr != "" {
		return nil, errors.New(c.InvokeErr)
	}
	return c.Reply, nil
}

func (d *Device) CommandConfig(name string) (tango.CommandConfig, error) {
	c, ok := d.Cmds[name]
	if !ok {
		return tango.CommandConfig{}, fmt.Errorf("command %s not found", name)
	}
	return c.Config, nil
}

func (d *Device) Property(name string) ([]string, error) {
	p, ok := d.Props[name]
	if !ok {
		return nil, fmt.Errorf("property %s not found", name)
	}
	return p, nil
}

func (d *Device) AdminMode() (tango.AdminMode, error) { return d.Admin, nil }

func (d *Device) SetAdminMode(mode tango.AdminMode) error {
	d.Admin = mode
	return nil
}

func (d *Device) SimulationMode() (int, error) { return d.Simulation, nil }

func (d *Device) SetSimulationMode(mode int) error {
	d.Simulation = mode
	return nil
}

func (d *Device) State() (string, error) {
	if d.DevState == "" {
		return "UNKNOWN", nil
	}
	return d.DevState, nil
}

func (d *Device) Status() (string, error) {
	if d.DevStatus == "" {
		return "The device is in UNKNOWN state.", nil
	}
	return d.DevStatus, nil
}

func (d *Device) Ping() error { return nil }

// Invoked reports the commands invoked on this device, in order.
func (d *Device) Invoked() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.invoked...)
}

// Written reports the attribute values written to this device.
func (d *Device) Written() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]any, len(d.written))
	for k, v := range d.written {
		out[k] = v
	}
	return out
}

// Connector serves a fixed set of fake devices, keyed by name.
type Connector struct {
	DevicesByName map[string]*Device
	// FailOpen lists device names whose open fails.
	FailOpen []string
	// FailDatabase makes Open fail outright.
	FailDatabase bool
}

var _ tango.Connector = (*Connector)(nil)

// NewConnector builds a connector from device seeds.
func NewConnector(devices ...*Device) *Connector {
	byName := make(map[string]*Device, len(devices))
	for _, d := range devices {
		byName[d.DevName] = d
	}
	return &Connector{DevicesByName: byName}
}

func (c *Connector) Open(ctx context.Context, ep tango.Endpoint) (tango.Database, error) {
	if c.FailDatabase {
		return nil, &tango.ConnectionError{Endpoint: ep, Err: errors.New("connection refused")}
	}
	return &database{conn: c}, nil
}

func (c *Connector) OpenDevice(ctx context.Context, ep tango.Endpoint, name string) (tango.DeviceProxy, error) {
	for _, fail := range c.FailOpen {
		if strings.EqualFold(fail, name) {
			return nil, &tango.ConnectionError{Endpoint: ep, Device: name, Err: errors.New("device not exported")}
		}
	}
	d, ok := c.DevicesByName[name]
	if !ok {
		return nil, &tango.ConnectionError{Endpoint: ep, Device: name, Err: errors.New("device not defined")}
	}
	return d, nil
}

type database struct {
	conn *Connector
}

func (db *database) DeviceExported(pattern string) ([]string, error) {
	names := make([]string, 0, len(db.conn.DevicesByName)+len(db.conn.FailOpen))
	for name := range db.conn.DevicesByName {
		names = append(names, name)
	}
	names = append(names, db.conn.FailOpen...)
	sort.Strings(names)
	return names, nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
