// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package fake

import "github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"

// Demo returns a connector seeded with a small representative device
// set, used by the --demo CLI flag and the demo web mode.
func Demo() *Connector {
	return NewConnector(
		DemoDevice("mid-csp/control/0", "CspController"),
		DemoDevice("mid-csp/subarray/01", "CspSubarray"),
		DemoDevice("mid-sdp/control/0", "SdpController"),
		DemoDevice("sys/tg_test/1", "TangoTest"),
	)
}

// DemoDevice builds one seeded device with a representative attribute,
// command and property set.
func DemoDevice(name, class string) *Device {
	return &Device{
		DevName: name,
		DevInfo: tango.DeviceInfo{
			Class:      class,
			Type:       "Device_5Impl",
			ServerHost: "tango-host",
			ServerID:   class + "/0",
		},
		DevVersion: "0.23.3",
		DevState:   "ON",
		DevStatus:  "The device is in ON state.",
		Attrs: map[string]*Attr{
			"adminMode": {
				Value: tango.AttributeValue{
					Value: int32(tango.AdminOnline),
					Type: tango.DevEnum, DataFormat: tango.Scalar,
				},
				Config: tango.AttributeConfig{
					Description: "The admin mode of the device",
					Writable:    "READ_WRITE",
					DataType:    tango.DevEnum,
					EnumLabels:  []string{"ONLINE", "OFFLINE"},
				},
			},
			"obsState": {
				Value: tango.AttributeValue{
					Value: int32(tango.ObsEmpty),
					Type: tango.DevEnum, DataFormat: tango.Scalar,
				},
				Config: tango.AttributeConfig{
					Description: "The observing state of the device",
					Writable:    "READ",
					DataType:    tango.DevEnum,
					EnumLabels: []string{
						"EMPTY", "RESOURCING", "IDLE", "CONFIGURING", "READY",
						"SCANNING", "ABORTING", "ABORTED", "RESETTING",
						"FAULT", "RESTARTING",
					},
				},
			},
			"versionId": {
				Value: tango.AttributeValue{Value: "0.23.3", Type: tango.DevString, DataFormat: tango.Scalar},
				Config: tango.AttributeConfig{
					Description: "The version id of the device",
					Writable:    "READ",
					DataType:    tango.DevString,
				},
			},
			"buildState": {
				Value: tango.AttributeValue{
					Value:      "lmc-base-classes, 0.23.3, A set of generic base devices",
					Type:       tango.DevString,
					DataFormat: tango.Scalar,
				},
				Config: tango.AttributeConfig{Writable: "READ", DataType: tango.DevString},
			},
		},
		Cmds: map[string]*Cmd{
			"State": {
				Config: tango.CommandConfig{OutType: tango.DevState, OutTypeDesc: "Device state"},
				Reply:  "ON",
			},
			"Status": {
				Config: tango.CommandConfig{OutType: tango.DevString, OutTypeDesc: "Device status"},
				Reply:  "The device is in ON state.",
			},
			"GetVersionInfo": {
				Config: tango.CommandConfig{OutTypeDesc: "Version strings"},
				Reply:  []any{class + ", 0.23.3"},
			},
			"On":      {Config: tango.CommandConfig{}},
			"Off":     {Config: tango.CommandConfig{}},
			"Standby": {Config: tango.CommandConfig{}},
			"Reset":   {Config: tango.CommandConfig{}},
		},
		Props: map[string][]string{
			"SkaLevel":            {"4"},
			"LoggingLevelDefault": {"4"},
			"polled_attr":         {"state", "1000", "healthstate", "1000"},
		},
	}
}
