// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package reader

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Basic is the shallow per-device record: identification and item
// names only, no values or configuration.
type Basic struct {
	Name       string   `json:"name"`
	Class      string   `json:"dev_class"`
	AdminMode  string   `json:"admin_mode"`
	Attributes []string `json:"attributes"`
	Commands   []string `json:"commands"`
	Properties []string `json:"properties"`
}

// ReadBasic reads the shallow record for one open device.
func ReadBasic(log zerolog.Logger, dev tango.DeviceProxy) Basic {
	b := Basic{Name: dev.Name(), Class: "---", AdminMode: "---"}
	if info, err := dev.Info(); err == nil {
		b.Class = info.Class
	}
	if mode, err := dev.AdminMode(); err == nil {
		b.AdminMode = mode.String()
	}
	var err error
	if b.Attributes, err = dev.AttributeList(); err != nil {
		log.Warn().Str("device", b.Name).Err(err).Msg("Could not read attributes")
	}
	if b.Commands, err = dev.CommandList(); err != nil {
		log.Warn().Str("device", b.Name).Err(err).Msg("Could not read commands")
	}
	if b.Properties, err = dev.PropertyList("*"); err != nil {
		log.Warn().Str("device", b.Name).Err(err).Msg("Could not read properties")
	}
	sort.Strings(b.Attributes)
	sort.Strings(b.Commands)
	sort.Strings(b.Properties)
	return b
}

// QuickValues reads the configured list-item columns for one device.
// Items the device does not implement yield "-".
func QuickValues(log zerolog.Logger, dev tango.DeviceProxy, cfg config.Config) map[string]string {
	vals := map[string]string{}

	attribs, _ := dev.AttributeList()
	for name := range cfg.ListItems.Attributes {
		if !slices.Contains(attribs, name) {
			vals[name] = "-"
			continue
		}
		val, err := dev.ReadAttribute(name)
		if err != nil {
			log.Debug().Str("attribute", name).Err(err).Msg("Failed on list attribute")
			vals[name] = "N/A"
			continue
		}
		vals[name] = enumLabel(dev, name, val)
	}

	cmds, _ := dev.CommandList()
	for name := range cfg.ListItems.Commands {
		if !slices.Contains(cmds, name) {
			vals[name] = "-"
			continue
		}
		reply, err := dev.CommandInOut(name, nil)
		if err != nil {
			log.Debug().Str("command", name).Err(err).Msg("Failed on list command")
			vals[name] = "N/A"
			continue
		}
		vals[name] = fmt.Sprint(reply)
	}

	props, _ := dev.PropertyList("*")
	for name := range cfg.ListItems.Properties {
		if !slices.Contains(props, name) {
			vals[name] = "-"
			continue
		}
		pvals, err := dev.Property(name)
		if err != nil {
			vals[name] = "N/A"
			continue
		}
		vals[name] = strings.Join(pvals, cfg.Delimiter)
	}
	return vals
}

// enumLabel renders an enum reading as its label when the attribute
// configuration carries one.
func enumLabel(dev tango.DeviceProxy, name string, val tango.AttributeValue) string {
	if val.Type == tango.DevEnum {
		if cfg, err := dev.AttributeConfig(name); err == nil {
			if idx, ok := enumIndex(val.Value); ok && idx >= 0 && idx < len(cfg.EnumLabels) {
				return cfg.EnumLabels[idx]
			}
		}
	}
	return fmt.Sprint(val.Value)
}

func enumIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
