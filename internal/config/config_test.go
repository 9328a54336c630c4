// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 500, cfg.TimeoutMillis)
	assert.Equal(t, "tango-databaseds", cfg.DatabasedsName)
	assert.Equal(t, 10000, cfg.DatabasedsPort)
	assert.Equal(t, 45450, cfg.DevicePort)
	assert.Equal(t, []string{"sys", "dserver"}, cfg.IgnoreDevice)
	assert.Equal(t, ",", cfg.Delimiter)

	assert.Contains(t, cfg.RunCommands, "State")
	assert.Contains(t, cfg.RunCommands, "QueryClass")
	assert.NotContains(t, cfg.RunCommands, "On")
	assert.Contains(t, cfg.RunCommandsName, "DevLockStatus")
	assert.Contains(t, cfg.BlockItems.Properties, "LibConfiguration")

	assert.Equal(t, ">11", cfg.ListItems.Attributes["adminMode"])
	assert.Equal(t, "<10", cfg.ListItems.Commands["State"])
}

func TestReadNoFile(t *testing.T) {
	cfg, err := Read(zerolog.Nop(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestReadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"timeout_millis": 2000,
		"databaseds_name": "custom-databaseds",
		"ignore_device": ["sys"]
	}`), 0644))

	cfg, err := Read(zerolog.Nop(), path)
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.TimeoutMillis)
	assert.Equal(t, "custom-databaseds", cfg.DatabasedsName)
	assert.Equal(t, []string{"sys"}, cfg.IgnoreDevice)
	// Keys not in the file keep their defaults.
	assert.Equal(t, 10000, cfg.DatabasedsPort)
	assert.Equal(t, Defaults().RunCommands, cfg.RunCommands)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(zerolog.Nop(), "/no/such/file.json")
	assert.Error(t, err)
}

func TestReadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	_, err := Read(zerolog.Nop(), path)
	assert.Error(t, err)
}
