// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package reader

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango/fake"
)

func testDevice(name, class string, attrs ...string) *fake.Device {
	d := &fake.Device{
		DevName: name,
		DevInfo: tango.DeviceInfo{Class: class, ServerHost: "test-host"},
		Attrs:   map[string]*fake.Attr{},
		Cmds:    map[string]*fake.Cmd{},
		Props:   map[string][]string{"SkaLevel": {"4"}},
	}
	for _, attr := range attrs {
		d.Attrs[attr] = &fake.Attr{
			Value: tango.AttributeValue{Value: "ok", Type: tango.DevString, DataFormat: tango.Scalar},
		}
	}
	return d
}

func TestListDevicesIgnoresPrefixes(t *testing.T) {
	conn := fake.NewConnector(
		testDevice("sys/tg_test/1", "TangoTest"),
		testDevice("dserver/TangoTest/test", "DServer"),
		testDevice("mid-csp/control/0", "CspController"),
	)
	cfg := config.Defaults()
	db, err := conn.Open(context.Background(), tango.Endpoint{Host: "h", Port: 10000})
	require.NoError(t, err)

	names, err := ListDevices(zerolog.Nop(), db, cfg, Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid-csp/control/0"}, names)

	names, err = ListDevices(zerolog.Nop(), db, cfg, Filters{Everything: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"dserver/TangoTest/test", "mid-csp/control/0", "sys/tg_test/1"}, names)
}

func TestListDevicesNameFilter(t *testing.T) {
	conn := fake.NewConnector(
		testDevice("mid-csp/control/0", "CspController"),
		testDevice("mid-csp/subarray/01", "CspSubarray"),
		testDevice("mid-sdp/control/0", "SdpController"),
	)
	db, err := conn.Open(context.Background(), tango.Endpoint{Host: "h", Port: 10000})
	require.NoError(t, err)

	names, err := ListDevices(zerolog.Nop(), db, config.Defaults(), Filters{Device: "CSP"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid-csp/control/0", "mid-csp/subarray/01"}, names)
}

func TestListDevicesExactNameFilter(t *testing.T) {
	conn := fake.NewConnector(
		testDevice("mid-csp/subarray/01", "CspSubarray"),
		testDevice("mid-csp/subarray/012", "CspSubarray"),
	)
	db, err := conn.Open(context.Background(), tango.Endpoint{Host: "h", Port: 10000})
	require.NoError(t, err)

	names, err := ListDevices(zerolog.Nop(), db, config.Defaults(),
		Filters{Device: "mid-csp/subarray/01", Exact: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid-csp/subarray/01"}, names)

	names, err = ListDevices(zerolog.Nop(), db, config.Defaults(),
		Filters{Device: "mid-csp/subarray/01"})
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestReadCollectionOpenFailure(t *testing.T) {
	conn := fake.NewConnector(testDevice("mid-csp/control/0", "CspController", "obsState"))
	conn.FailOpen = []string{"mid-csp/subarray/01"}

	coll, err := ReadCollection(context.Background(), zerolog.Nop(), conn,
		tango.Endpoint{Host: "h", Port: 10000}, config.Defaults(),
		Filters{Everything: true}, Options{Quiet: true, WithValues: true})
	require.NoError(t, err)

	require.Len(t, coll.Devices, 2)
	assert.Nil(t, coll.Devices["mid-csp/subarray/01"])
	require.NotNil(t, coll.Devices["mid-csp/control/0"])
	assert.Equal(t, "CspController", coll.Devices["mid-csp/control/0"].Class)
}

func TestReadCollectionDatabaseFailure(t *testing.T) {
	conn := fake.NewConnector()
	conn.FailDatabase = true

	_, err := ReadCollection(context.Background(), zerolog.Nop(), conn,
		tango.Endpoint{Host: "h", Port: 10000}, config.Defaults(),
		Filters{Everything: true}, Options{Quiet: true})
	require.Error(t, err)
	var cerr *tango.ConnectionError
	assert.ErrorAs(t, err, &cerr)
}

func TestReadCollectionAttributeFilter(t *testing.T) {
	withState := testDevice("mid-csp/subarray/01", "CspSubarray", "obsState", "adminMode")
	withState.Cmds["On"] = &fake.Cmd{}
	noState := testDevice("mid-csp/control/0", "CspController", "adminMode")
	conn := fake.NewConnector(withState, noState)

	coll, err := ReadCollection(context.Background(), zerolog.Nop(), conn,
		tango.Endpoint{Host: "h", Port: 10000}, config.Defaults(),
		Filters{Attribute: "state"}, Options{Quiet: true, WithValues: true})
	require.NoError(t, err)

	// Only the device with a matching attribute survives, and only the
	// matching attribute is kept. The other categories are skipped.
	require.Len(t, coll.Devices, 1)
	rec := coll.Devices["mid-csp/subarray/01"]
	require.NotNil(t, rec)
	assert.Equal(t, []string{"obsState"}, rec.AttributeNames())
	assert.Empty(t, rec.Commands)
	assert.Empty(t, rec.Properties)
}

func TestReadCollectionUniqueClass(t *testing.T) {
	conn := fake.NewConnector(
		testDevice("mid-csp/subarray/01", "CspSubarray"),
		testDevice("mid-csp/subarray/02", "CspSubarray"),
		testDevice("mid-csp/control/0", "CspController"),
	)

	coll, err := ReadCollection(context.Background(), zerolog.Nop(), conn,
		tango.Endpoint{Host: "h", Port: 10000}, config.Defaults(),
		Filters{Everything: true, UniqueClass: true}, Options{Quiet: true})
	require.NoError(t, err)

	require.Len(t, coll.Devices, 2)
	// Names are walked in sorted order, so the first subarray wins.
	assert.Contains(t, coll.Devices, "mid-csp/control/0")
	assert.Contains(t, coll.Devices, "mid-csp/subarray/01")
}

func TestReadCollectionMaxDevices(t *testing.T) {
	conn := fake.NewConnector(
		testDevice("mid-csp/subarray/01", "CspSubarray"),
		testDevice("mid-csp/subarray/02", "CspSubarray"),
		testDevice("mid-csp/subarray/03", "CspSubarray"),
	)

	coll, err := ReadCollection(context.Background(), zerolog.Nop(), conn,
		tango.Endpoint{Host: "h", Port: 10000}, config.Defaults(),
		Filters{Everything: true}, Options{Quiet: true, MaxDevices: 2})
	require.NoError(t, err)
	assert.Len(t, coll.Devices, 2)
}

func TestReadCollectionInterrupted(t *testing.T) {
	conn := fake.NewConnector(testDevice("mid-csp/control/0", "CspController"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	coll, err := ReadCollection(ctx, zerolog.Nop(), conn,
		tango.Endpoint{Host: "h", Port: 10000}, config.Defaults(),
		Filters{Everything: true}, Options{Quiet: true})
	require.NoError(t, err)
	assert.Empty(t, coll.Devices)
}

func TestCheckFilters(t *testing.T) {
	assert.ErrorIs(t, CheckFilters(Filters{}), ErrNoFilters)
	assert.NoError(t, CheckFilters(Filters{Everything: true}))
	assert.NoError(t, CheckFilters(Filters{Device: "csp"}))
	assert.NoError(t, CheckFilters(Filters{Attribute: "state"}))
}

func TestClasses(t *testing.T) {
	coll := &tango.Collection{Devices: map[string]*tango.Device{
		"mid-csp/subarray/01": {Name: "mid-csp/subarray/01", Class: "CspSubarray"},
		"mid-csp/subarray/02": {Name: "mid-csp/subarray/02", Class: "CspSubarray"},
		"mid-csp/control/0":   {Name: "mid-csp/control/0", Class: "CspController"},
		"mid-csp/broken/0":    nil,
	}}
	classes := Classes(coll)
	assert.Equal(t, map[string][]string{
		"CspController": {"mid-csp/control/0"},
		"CspSubarray":   {"mid-csp/subarray/01", "mid-csp/subarray/02"},
	}, classes)
}
