// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package config holds the built-in tangoctl defaults and the JSON
// override file loading. The safe-command lists and the block lists are
// a safety control against live facility devices, not display tuning:
// only commands on RunCommands (invoked without arguments) or
// RunCommandsName (invoked with the device's own name) are ever run.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ListItems names the attributes, commands and properties shown in the
// quick listing, mapped to their print format ("<10" left, ">11" right
// aligned at that width).
type ListItems struct {
	Attributes map[string]string `json:"attributes"`
	Commands   map[string]string `json:"commands"`
	Properties map[string]string `json:"properties"`
}

// BlockItems names the items whose live value must not be read.
type BlockItems struct {
	Attributes []string `json:"attributes"`
	Commands   []string `json:"commands"`
	Properties []string `json:"properties"`
}

// Config is the tangoctl configuration dictionary.
type Config struct {
	TimeoutMillis   int        `json:"timeout_millis"`
	ClusterDomain   string     `json:"cluster_domain"`
	DatabasedsName  string     `json:"databaseds_name"`
	DatabasedsPort  int        `json:"databaseds_port"`
	DevicePort      int        `json:"device_port"`
	RunCommands     []string   `json:"run_commands"`
	RunCommandsName []string   `json:"run_commands_name"`
	LongAttributes  []string   `json:"long_attributes"`
	IgnoreDevice    []string   `json:"ignore_device"`
	MinStrLen       int        `json:"min_str_len"`
	Delimiter       string     `json:"delimiter"`
	ListItems       ListItems  `json:"list_items"`
	BlockItems      BlockItems `json:"block_items"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		TimeoutMillis:  500,
		ClusterDomain:  "miditf.internal.skao.int",
		DatabasedsName: "tango-databaseds",
		DatabasedsPort: 10000,
		DevicePort:     45450,
		RunCommands: []string{
			"QueryClass",
			"QueryDevice",
			"QuerySubDevice",
			"GetVersionInfo",
			"State",
			"Status",
		},
		RunCommandsName: []string{"DevLockStatus", "DevPollStatus", "GetLoggingTarget"},
		LongAttributes:  []string{"internalModel", "transformedInternalModel"},
		IgnoreDevice:    []string{"sys", "dserver"},
		MinStrLen:       4,
		Delimiter:       ",",
		ListItems: ListItems{
			Attributes: map[string]string{"adminMode": ">11", "versionId": "<10"},
			Commands:   map[string]string{"State": "<10"},
			Properties: map[string]string{"SkaLevel": ">9"},
		},
		BlockItems: BlockItems{
			Attributes: []string{},
			Commands:   []string{},
			Properties: []string{"LibConfiguration"},
		},
	}
}

// Read loads the configuration, overriding defaults from a JSON file
// when name is not empty. Keys missing from the file keep their default
// with a logged warning.
func Read(log zerolog.Logger, name string) (Config, error) {
	cfg := Defaults()
	if name == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", name, err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", name, err)
	}
	// Unmarshalling over the defaults struct keeps the default for every
	// key the file does not mention; only the warning is per key.
	for _, key := range []string{
		"timeout_millis", "cluster_domain", "databaseds_name", "databaseds_port",
		"device_port", "run_commands", "run_commands_name", "long_attributes",
		"ignore_device", "min_str_len", "delimiter", "list_items", "block_items",
	} {
		if _, ok := raw[key]; !ok {
			log.Warn().Str("key", key).Msg("Use default value")
		}
	}
	return cfg, nil
}
