// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango/fake"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SCAN_TARGET", "obsState")
	path := writeScript(t, `{
		"test_read": [{"attribute": "${SCAN_TARGET}", "read": null}]
	}`)

	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s["test_read"], 1)
	assert.Equal(t, "obsState", s["test_read"][0].Attribute)
}

func TestLoadBadJSON(t *testing.T) {
	path := writeScript(t, "{broken")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestRunReadWriteCommand(t *testing.T) {
	dev := &fake.Device{
		DevName: "sys/tg_test/1",
		Attrs: map[string]*fake.Attr{
			"double_scalar": {
				Value:  tango.AttributeValue{Value: float64(3.5)},
				Config: tango.AttributeConfig{Writable: "READ_WRITE"},
			},
		},
		Cmds: map[string]*fake.Cmd{
			"On": {},
		},
	}
	path := writeScript(t, `{
		"test_device": [
			{"attribute": "double_scalar", "read": 3.5},
			{"attribute": "double_scalar", "write": 7.25},
			{"attribute": "double_scalar", "read": 7.25},
			{"command": "On"}
		]
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	var out bytes.Buffer
	failures := NewRunner(zerolog.Nop(), dev, &out).Run(s)

	assert.Empty(t, failures)
	assert.Equal(t, []string{"On"}, dev.Invoked())
	assert.Equal(t, 7.25, dev.Written()["double_scalar"])
	assert.Contains(t, out.String(), "Test test_device")
	assert.Contains(t, out.String(), "ok")
}

func TestRunReadMismatch(t *testing.T) {
	dev := &fake.Device{
		DevName: "sys/tg_test/1",
		Attrs: map[string]*fake.Attr{
			"state": {Value: tango.AttributeValue{Value: "OFF"}},
		},
	}
	path := writeScript(t, `{
		"check_on": [{"attribute": "state", "read": "ON"}]
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	var out bytes.Buffer
	failures := NewRunner(zerolog.Nop(), dev, &out).Run(s)

	require.Len(t, failures, 1)
	assert.Equal(t, "check_on", failures[0].Test)
	assert.Contains(t, failures[0].Err.Error(), "got OFF, want ON")
}

func TestRunCollectsFailuresAndContinues(t *testing.T) {
	dev := &fake.Device{
		DevName: "sys/tg_test/1",
		Cmds: map[string]*fake.Cmd{
			"Bad":  {InvokeErr: "command rejected"},
			"Good": {},
		},
	}
	path := writeScript(t, `{
		"sequence": [
			{"command": "Bad"},
			{"command": "Good"}
		]
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	var out bytes.Buffer
	failures := NewRunner(zerolog.Nop(), dev, &out).Run(s)

	require.Len(t, failures, 1)
	assert.Equal(t, 0, failures[0].Step)
	// The failing step does not stop the sequence.
	assert.Equal(t, []string{"Bad", "Good"}, dev.Invoked())
}

func TestRunDryRun(t *testing.T) {
	dev := &fake.Device{
		DevName: "sys/tg_test/1",
		Cmds:    map[string]*fake.Cmd{"On": {}},
		Attrs: map[string]*fake.Attr{
			"double_scalar": {Config: tango.AttributeConfig{Writable: "READ_WRITE"}},
		},
	}
	path := writeScript(t, `{
		"noop": [
			{"command": "On"},
			{"attribute": "double_scalar", "write": 1.0}
		]
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	var out bytes.Buffer
	runner := NewRunner(zerolog.Nop(), dev, &out)
	runner.DryRun = true
	failures := runner.Run(s)

	assert.Empty(t, failures)
	assert.Empty(t, dev.Invoked())
	assert.Empty(t, dev.Written())
	assert.Contains(t, out.String(), "dry run")
}

func TestRunEmptyStep(t *testing.T) {
	dev := &fake.Device{DevName: "sys/tg_test/1"}
	path := writeScript(t, `{"bad": [{}]}`)
	s, err := Load(path)
	require.NoError(t, err)

	failures := NewRunner(zerolog.Nop(), dev, &bytes.Buffer{}).Run(s)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Err.Error(), "neither attribute nor command")
}
