// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package tango defines the device-access boundary for Tango Controls
// device servers: the proxy and database interfaces a binding has to
// satisfy, plus the record types the readers assemble from them.
//
// The Tango wire protocol (CORBA/GIOP) is not implemented here. A real
// deployment plugs in a binding behind the Connector interface; tests
// and the demo web mode use the in-memory implementation in the fake
// subpackage.
package tango

import "fmt"

// CmdArgType is the Tango argument type code carried in attribute and
// command configuration, 0 through 32.
type CmdArgType int

// CmdArgTypeName maps a type code to its display name. Index 26 is the
// retired DEV_INT form and index 32 is unassigned; both render as
// "Unknown".
var CmdArgTypeName = [...]string{
	"DevVoid",
	"DevBoolean",
	"DevShort",
	"DevLong",
	"DevFloat",
	"DevDouble",
	"DevUShort",
	"DevULong",
	"DevString",
	"DevVarCharArray",
	"DevVarShortArray",
	"DevVarLongArray",
	"DevVarFloatArray",
	"DevVarDoubleArray",
	"DevVarUShortArray",
	"DevVarULongArray",
	"DevVarStringArray",
	"DevVarLongStringArray",
	"DevVarDoubleStringArray",
	"DevState",
	"ConstDevString",
	"DevVarBooleanArray",
	"DevUChar",
	"DevLong64",
	"DevULong64",
	"DevVarLong64Array",
	"Unknown",
	"DevEncoded",
	"DevEnum",
	"DevPipeBlob",
	"DevVarStateArray",
	"DevVarEncodedArray",
	"Unknown",
}

// Well-known type codes used by the readers.
const (
	DevVoid   CmdArgType = 0
	DevString CmdArgType = 8
	DevState  CmdArgType = 19
	DevEnum   CmdArgType = 28
)

func (t CmdArgType) String() string {
	if t < 0 || int(t) >= len(CmdArgTypeName) {
		return "Unknown"
	}
	return CmdArgTypeName[t]
}

// DataFormat describes the shape of an attribute value.
type DataFormat int

const (
	FormatUnknown DataFormat = iota
	Scalar
	Spectrum
	Image
)

func (f DataFormat) String() string {
	switch f {
	case Scalar:
		return "SCALAR"
	case Spectrum:
		return "SPECTRUM"
	case Image:
		return "IMAGE"
	default:
		return "N/A"
	}
}

// AdminMode gates whether a device accepts monitor and control traffic.
type AdminMode int

const (
	AdminOnline AdminMode = iota
	AdminOffline
)

func (m AdminMode) String() string {
	switch m {
	case AdminOnline:
		return "ONLINE"
	case AdminOffline:
		return "OFFLINE"
	default:
		return fmt.Sprintf("AdminMode(%d)", int(m))
	}
}

// ObsState is the observation-state enumeration reported by telescope
// subarray devices.
type ObsState int

const (
	ObsEmpty ObsState = iota
	ObsResourcing
	ObsIdle
	ObsConfiguring
	ObsReady
	ObsScanning
	ObsAborting
	ObsAborted
	ObsResetting
	ObsFault
	ObsRestarting
)

var obsStateName = [...]string{
	"EMPTY",
	"RESOURCING",
	"IDLE",
	"CONFIGURING",
	"READY",
	"SCANNING",
	"ABORTING",
	"ABORTED",
	"RESETTING",
	"FAULT",
	"RESTARTING",
}

func (s ObsState) String() string {
	if s < 0 || int(s) >= len(obsStateName) {
		return fmt.Sprintf("ObsState(%d)", int(s))
	}
	return obsStateName[s]
}
