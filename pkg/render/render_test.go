// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

func testCollection() *tango.Collection {
	return &tango.Collection{
		Endpoint: tango.Endpoint{Host: "tango-databaseds", Port: 10000},
		Devices: map[string]*tango.Device{
			"mid-csp/control/0": {
				Name:      "mid-csp/control/0",
				Class:     "CspController",
				Version:   "0.23.3",
				AdminMode: "ONLINE",
				Info: &tango.DeviceInfo{
					Class:      "CspController",
					Type:       "Device_5Impl",
					ServerHost: "tango-host",
				},
				Attributes: map[string]*tango.Attribute{
					"obsState": {
						Data: tango.AttrData{
							State: tango.StateRead, Value: "EMPTY",
							Type: "DevEnum", DataFormat: "SCALAR",
						},
						Config: &tango.AttributeConfig{
							Description: "Observing state",
							Writable:    "READ",
							DataType:    tango.DevEnum,
							DataFormat:  tango.Scalar,
						},
					},
					"blocked": {
						Data: tango.AttrData{State: tango.StateBlocked},
					},
					"broken": {
						Data:  tango.AttrData{State: tango.StateFailed, Type: "N/A", DataFormat: "N/A"},
						Error: "read timed out",
					},
				},
				Commands: map[string]*tango.Command{
					"State": {
						Config: &tango.CommandConfig{OutType: tango.DevState},
						State:  tango.StateRead,
						Value:  "ON",
					},
					"On": {
						Config: &tango.CommandConfig{},
						State:  tango.StateNotRead,
					},
				},
				Properties: map[string]*tango.Property{
					"SkaLevel":         {State: tango.StateRead, Value: []string{"4"}},
					"LibConfiguration": {State: tango.StateBlocked, Value: []string{"N/R"}},
				},
			},
			"mid-csp/broken/0": nil,
		},
	}
}

func TestDictSentinels(t *testing.T) {
	dict := Dict(testCollection(), false)

	assert.Nil(t, dict["mid-csp/broken/0"])
	dev := dict["mid-csp/control/0"].(map[string]any)
	attribs := dev["attributes"].(map[string]any)

	blocked := attribs["blocked"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "N/A", blocked["value"])

	broken := attribs["broken"].(map[string]any)
	data := broken["data"].(map[string]any)
	assert.Equal(t, "N/A", data["type"])
	assert.NotContains(t, data, "value")
	assert.Equal(t, "read timed out", broken["error"])

	cmds := dev["commands"].(map[string]any)
	assert.Contains(t, cmds["State"].(map[string]any), "value")
	assert.NotContains(t, cmds["On"].(map[string]any), "value")
}

func TestJSONRoundTrip(t *testing.T) {
	r := New(zerolog.Nop(), FormatJSON)
	r.Full = true
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, testCollection()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	dev := decoded["mid-csp/control/0"].(map[string]any)
	assert.Equal(t, "CspController", dev["dev_class"])
	assert.Equal(t, "ONLINE", dev["admin_mode"])
	obsState := dev["attributes"].(map[string]any)["obsState"].(map[string]any)
	assert.Equal(t, "EMPTY", obsState["data"].(map[string]any)["value"])
	assert.Equal(t, "Observing state", obsState["config"].(map[string]any)["description"])
	assert.Nil(t, decoded["mid-csp/broken/0"])
}

func TestYAMLRoundTrip(t *testing.T) {
	r := New(zerolog.Nop(), FormatYAML)
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, testCollection()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	dev := decoded["mid-csp/control/0"].(map[string]any)
	assert.Equal(t, "CspController", dev["dev_class"])
}

func TestRenderIdempotent(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML} {
		t.Run(string(format), func(t *testing.T) {
			coll := testCollection()
			r := New(zerolog.Nop(), format)
			r.Full = true
			var first, second bytes.Buffer
			require.NoError(t, r.Write(&first, coll))
			require.NoError(t, r.Write(&second, coll))
			assert.Equal(t, first.String(), second.String())
			assert.NotEmpty(t, first.String())
		})
	}
}

func TestEmptyCollection(t *testing.T) {
	empty := &tango.Collection{Devices: map[string]*tango.Device{}}
	for _, format := range []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown,
		FormatHTML, FormatNames, FormatClass} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, New(zerolog.Nop(), format).Write(&buf, empty))
		})
	}

	var buf bytes.Buffer
	require.NoError(t, New(zerolog.Nop(), FormatJSON).Write(&buf, empty))
	assert.Equal(t, "{}\n", buf.String())

	buf.Reset()
	require.NoError(t, New(zerolog.Nop(), FormatText).Write(&buf, empty))
	assert.Contains(t, buf.String(), "0 devices")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	r := New(zerolog.Nop(), FormatText)
	require.NoError(t, r.Write(&buf, testCollection()))
	out := buf.String()

	assert.Contains(t, out, "Device : mid-csp/control/0")
	assert.Contains(t, out, "Device : mid-csp/broken/0 (N/A)")
	assert.Contains(t, out, "attributes:")
	assert.Contains(t, out, "obsState")
	assert.Contains(t, out, "EMPTY")
	assert.Contains(t, out, "2 devices")
	// Failed devices sort before working ones here, and sections come in
	// a fixed order.
	assert.Less(t, strings.Index(out, "attributes:"), strings.Index(out, "commands:"))
	assert.Less(t, strings.Index(out, "commands:"), strings.Index(out, "properties:"))
}

func TestWriteNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(zerolog.Nop(), FormatNames).Write(&buf, testCollection()))
	out := buf.String()

	assert.Contains(t, out, "mid-csp/control/0\n")
	assert.Contains(t, out, "mid-csp/broken/0 (N/A)\n")
	assert.Contains(t, out, "2 devices")
}

func TestWriteClasses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(zerolog.Nop(), FormatClass).Write(&buf, testCollection()))
	out := buf.String()

	assert.Contains(t, out, "CspController")
	assert.Contains(t, out, "mid-csp/control/0")
	assert.NotContains(t, out, "mid-csp/broken/0")
}

func TestMarkdownEscaping(t *testing.T) {
	coll := &tango.Collection{Devices: map[string]*tango.Device{
		"sys/pipe|test/1": {
			Name:  "sys/pipe|test/1",
			Class: "TangoTest",
			Attributes: map[string]*tango.Attribute{
				"long_scalar|rw": {Data: tango.AttrData{
					State: tango.StateRead, Value: "128",
					Type: "DevLong", DataFormat: "SCALAR",
				}},
			},
			Commands:   map[string]*tango.Command{},
			Properties: map[string]*tango.Property{},
		},
	}}
	var buf bytes.Buffer
	require.NoError(t, New(zerolog.Nop(), FormatMarkdown).Write(&buf, coll))
	out := buf.String()

	assert.Contains(t, out, "## Device sys/pipe\\|test/1")
	assert.Contains(t, out, "### Attributes")
	assert.Contains(t, out, "long\\_scalar\\|rw")
}

func TestHTMLEscapingAndBody(t *testing.T) {
	coll := &tango.Collection{Devices: map[string]*tango.Device{
		"sys/tg_test/1": {
			Name:      "sys/tg_test/1",
			Class:     "TangoTest",
			AdminMode: "---",
			Attributes: map[string]*tango.Attribute{
				"script": {Data: tango.AttrData{
					State: tango.StateRead, Value: "<script>alert(1)</script>",
					Type: "DevString", DataFormat: "SCALAR",
				}},
			},
			Commands:   map[string]*tango.Command{},
			Properties: map[string]*tango.Property{},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, New(zerolog.Nop(), FormatHTML).Write(&buf, coll))
	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>alert")

	buf.Reset()
	r := New(zerolog.Nop(), FormatHTML)
	r.HTMLBody = true
	require.NoError(t, r.Write(&buf, coll))
	assert.NotContains(t, buf.String(), "<html")
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"txt", "json", "yaml", "md", "html", "list", "names", "class"} {
		_, err := ParseFormat(ok)
		assert.NoError(t, err, ok)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
