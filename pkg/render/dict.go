// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Dict builds the collection dictionary: device name mapped to a
// nested structure, nil for devices that could not be opened. This is
// the structure the JSON and YAML renderers emit unchanged and the
// textual renderers walk. The record's read-state variants become the
// "N/A"/"N/R" placeholders here, at the output edge.
func Dict(coll *tango.Collection, full bool) map[string]any {
	out := make(map[string]any, len(coll.Devices))
	for name, rec := range coll.Devices {
		if rec == nil {
			out[name] = nil
			continue
		}
		out[name] = deviceDict(rec, full)
	}
	return out
}

func deviceDict(rec *tango.Device, full bool) map[string]any {
	dev := map[string]any{
		"name":       rec.Name,
		"dev_class":  rec.Class,
		"version":    rec.Version,
		"admin_mode": rec.AdminMode,
	}
	if len(rec.Errors) > 0 {
		dev["errors"] = rec.Errors
	}
	if rec.Info != nil {
		info := map[string]any{
			"dev_class":   rec.Info.Class,
			"dev_type":    rec.Info.Type,
			"server_host": rec.Info.ServerHost,
		}
		if full {
			info["doc_url"] = rec.Info.DocURL
			info["server_id"] = rec.Info.ServerID
			info["server_version"] = rec.Info.ServerVersion
		}
		dev["info"] = info
	}

	attribs := map[string]any{}
	for name, attr := range rec.Attributes {
		attribs[name] = attributeDict(attr, full)
	}
	dev["attributes"] = attribs

	cmds := map[string]any{}
	for name, cmd := range rec.Commands {
		cmds[name] = commandDict(cmd, full)
	}
	dev["commands"] = cmds

	props := map[string]any{}
	for name, prop := range rec.Properties {
		props[name] = map[string]any{"value": prop.Value}
	}
	dev["properties"] = props
	return dev
}

func attributeDict(attr *tango.Attribute, full bool) map[string]any {
	out := map[string]any{}
	if attr.Error != "" {
		out["error"] = attr.Error
	}
	data := map[string]any{}
	switch attr.Data.State {
	case tango.StateRead:
		data["value"] = attr.Data.Value
		data["type"] = attr.Data.Type
		data["data_format"] = attr.Data.DataFormat
	case tango.StateBlocked:
		data["value"] = "N/A"
	case tango.StateFailed:
		data["type"] = "N/A"
		data["data_format"] = "N/A"
	}
	out["data"] = data
	if full && attr.Config != nil {
		out["config"] = attributeConfigDict(attr.Config)
	}
	return out
}

func attributeConfigDict(cfg *tango.AttributeConfig) map[string]any {
	out := map[string]any{
		"description":   cfg.Description,
		"data_type":     cfg.DataType.String(),
		"data_format":   cfg.DataFormat.String(),
		"display_unit":  cfg.DisplayUnit,
		"standard_unit": cfg.StandardUnit,
		"writable":      cfg.Writable,
	}
	if cfg.Format != "" {
		out["format"] = cfg.Format
	}
	if len(cfg.EnumLabels) > 0 {
		out["enum_labels"] = cfg.EnumLabels
	}
	if cfg.MinValue != "" || cfg.MaxValue != "" {
		out["min_value"] = cfg.MinValue
		out["max_value"] = cfg.MaxValue
	}
	if cfg.MinAlarm != "" || cfg.MaxAlarm != "" {
		out["min_alarm"] = cfg.MinAlarm
		out["max_alarm"] = cfg.MaxAlarm
	}
	if cfg.Events != (tango.AttrEvents{}) {
		events := map[string]any{}
		if cfg.Events.AbsChange != "" || cfg.Events.RelChange != "" {
			events["ch_event"] = map[string]any{
				"abs_change": cfg.Events.AbsChange,
				"rel_change": cfg.Events.RelChange,
			}
		}
		if cfg.Events.ArchiveAbsChange != "" || cfg.Events.ArchiveRelChange != "" ||
			cfg.Events.ArchivePeriod != "" {
			events["arch_event"] = map[string]any{
				"archive_abs_change": cfg.Events.ArchiveAbsChange,
				"archive_rel_change": cfg.Events.ArchiveRelChange,
				"archive_period":     cfg.Events.ArchivePeriod,
			}
		}
		if cfg.Events.Period != "" {
			events["per_event"] = map[string]any{"period": cfg.Events.Period}
		}
		out["events"] = events
	}
	return out
}

func commandDict(cmd *tango.Command, full bool) map[string]any {
	out := map[string]any{}
	if cmd.Error != "" {
		out["error"] = cmd.Error
	}
	cfg := map[string]any{}
	if cmd.Config != nil {
		cfg["in_type"] = cmd.Config.InType.String()
		cfg["out_type"] = cmd.Config.OutType.String()
		if full {
			cfg["in_type_desc"] = cmd.Config.InTypeDesc
			cfg["out_type_desc"] = cmd.Config.OutTypeDesc
		}
	}
	out["config"] = cfg
	// Only invoked commands carry a value key: commands off the safe
	// lists stay configuration-only.
	switch cmd.State {
	case tango.StateRead:
		out["value"] = cmd.Value
	case tango.StateFailed:
		out["value"] = "N/A"
	}
	return out
}
