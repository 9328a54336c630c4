// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package reader

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// DeviceReader assembles the record for one open device.
type DeviceReader struct {
	log     zerolog.Logger
	dev     tango.DeviceProxy
	cfg     config.Config
	filters Filters
	rec     *tango.Device
}

// NewDeviceReader opens the item lists of a device and selects the
// attributes, commands and properties the filters allow. Values are not
// read yet; see ReadValues and ReadConfigs.
func NewDeviceReader(log zerolog.Logger, dev tango.DeviceProxy, cfg config.Config, filters Filters) *DeviceReader {
	rec := &tango.Device{
		Name:       dev.Name(),
		Class:      "---",
		Version:    "N/A",
		AdminMode:  "---",
		Attributes: map[string]*tango.Attribute{},
		Commands:   map[string]*tango.Command{},
		Properties: map[string]*tango.Property{},
	}
	r := &DeviceReader{log: log, dev: dev, cfg: cfg, filters: filters, rec: rec}

	if info, err := dev.Info(); err == nil {
		rec.Info = &info
		rec.Class = info.Class
	} else {
		r.fail("Could not read info: ", err)
	}
	if version, err := dev.Version(); err == nil {
		rec.Version = version
	}
	if mode, err := dev.AdminMode(); err == nil {
		rec.AdminMode = mode.String()
	}

	attribs, err := dev.AttributeList()
	if err != nil {
		r.fail("Could not read attributes: ", err)
	}
	cmds, err := dev.CommandList()
	if err != nil {
		r.fail("Could not read commands: ", err)
	}
	props, err := dev.PropertyList("*")
	if err != nil {
		r.fail("Could not read properties: ", err)
	}

	for _, name := range selectItems(attribs, filters.Attribute,
		filters.Command != "" || filters.Property != "", filters.Exact) {
		rec.Attributes[name] = &tango.Attribute{}
	}
	for _, name := range selectItems(cmds, filters.Command,
		filters.Attribute != "" || filters.Property != "", filters.Exact) {
		rec.Commands[name] = &tango.Command{}
	}
	for _, name := range selectItems(props, filters.Property,
		filters.Attribute != "" || filters.Command != "", filters.Exact) {
		rec.Properties[name] = &tango.Property{}
	}
	log.Debug().Str("device", rec.Name).
		Int("attributes", len(rec.Attributes)).
		Int("commands", len(rec.Commands)).
		Int("properties", len(rec.Properties)).
		Str("class", rec.Class).
		Msg("Add device")
	return r
}

// Record returns the record assembled so far.
func (r *DeviceReader) Record() *tango.Device { return r.rec }

// Matched reports whether any item of the filtered kind survived, so
// the collection reader can drop devices that match nothing.
func (r *DeviceReader) Matched() bool {
	if r.filters.Attribute != "" && len(r.rec.Attributes) == 0 {
		return false
	}
	if r.filters.Command != "" && len(r.rec.Commands) == 0 {
		return false
	}
	if r.filters.Property != "" && len(r.rec.Properties) == 0 {
		return false
	}
	return true
}

func (r *DeviceReader) fail(prefix string, err error) {
	r.log.Warn().Str("device", r.rec.Name).Err(err).Msg(strings.TrimSuffix(prefix, ": "))
	r.rec.Errors = append(r.rec.Errors, prefix+err.Error())
}

// ReadConfigs fetches attribute and command configuration metadata.
// Per-item failures are recorded and do not propagate.
func (r *DeviceReader) ReadConfigs() {
	for name, attr := range r.rec.Attributes {
		cfg, err := r.dev.AttributeConfig(name)
		if err != nil {
			attr.Error = err.Error()
			continue
		}
		attr.Config = &cfg
	}
	for name, cmd := range r.rec.Commands {
		cfg, err := r.dev.CommandConfig(name)
		if err != nil {
			cmd.Error = err.Error()
			continue
		}
		cmd.Config = &cfg
	}
}

// ReadValues reads attribute values, invokes safe commands and fetches
// property values, tolerating per-item failure.
func (r *DeviceReader) ReadValues() {
	r.readAttributeValues()
	r.readCommandValues()
	r.readPropertyValues()
}

func (r *DeviceReader) readAttributeValues() {
	for name, attr := range r.rec.Attributes {
		if slices.Contains(r.cfg.BlockItems.Attributes, name) {
			r.log.Warn().Str("attribute", name).Msg("Not reading attribute value")
			attr.Data = tango.AttrData{State: tango.StateBlocked}
			continue
		}
		val, err := r.dev.ReadAttribute(name)
		if err != nil {
			r.log.Debug().Str("attribute", name).Err(err).Msg("Failed on attribute")
			attr.Error = err.Error()
			attr.Data = tango.AttrData{State: tango.StateFailed, Type: "N/A", DataFormat: "N/A"}
			continue
		}
		attr.Data = tango.AttrData{
			State:      tango.StateRead,
			Value:      normalizeValue(val.Value),
			Type:       val.Type.String(),
			DataFormat: val.DataFormat.String(),
		}
	}
}

func (r *DeviceReader) readCommandValues() {
	for name, cmd := range r.rec.Commands {
		switch {
		case slices.Contains(r.cfg.RunCommands, name):
			reply, err := r.dev.CommandInOut(name, nil)
			if err != nil {
				r.log.Warn().Str("command", name).Err(err).Msg("Could not run command")
				cmd.State = tango.StateFailed
				cmd.Value = "N/A"
				cmd.Error = err.Error()
				continue
			}
			cmd.State = tango.StateRead
			cmd.Value = normalizeValue(reply)
		case slices.Contains(r.cfg.RunCommandsName, name):
			reply, err := r.dev.CommandInOut(name, r.rec.Name)
			if err != nil {
				r.log.Warn().Str("command", name).Err(err).Msg("Could not run command with device name")
				cmd.State = tango.StateFailed
				cmd.Value = "N/A"
				cmd.Error = err.Error()
				continue
			}
			cmd.State = tango.StateRead
			cmd.Value = normalizeValue(reply)
		default:
			// Not on a safe list: configuration only, never invoked.
			cmd.State = tango.StateNotRead
		}
	}
}

func (r *DeviceReader) readPropertyValues() {
	for name, prop := range r.rec.Properties {
		if slices.Contains(r.cfg.BlockItems.Properties, name) {
			r.log.Warn().Str("property", name).Msg("Not reading property value")
			prop.State = tango.StateBlocked
			prop.Value = []string{"N/R"}
			continue
		}
		vals, err := r.dev.Property(name)
		if err != nil {
			r.log.Warn().Str("property", name).Err(err).Msg("Could not get property value")
			prop.State = tango.StateFailed
			prop.Value = []string{"N/A"}
			continue
		}
		prop.State = tango.StateRead
		prop.Value = vals
	}
}

// normalizeValue reshapes a raw boundary value for rendering: JSON
// embedded in a string is parsed so the renderers can recurse into it,
// anything unparsable stays verbatim.
func normalizeValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 {
		return v
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	if (first == '{' && last == '}') || (first == '[' && last == ']') {
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
	}
	return v
}
