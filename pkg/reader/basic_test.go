// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package reader

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango/fake"
)

func TestReadBasic(t *testing.T) {
	dev := fake.DemoDevice("mid-csp/control/0", "CspController")
	b := ReadBasic(zerolog.Nop(), dev)

	assert.Equal(t, "mid-csp/control/0", b.Name)
	assert.Equal(t, "CspController", b.Class)
	assert.Equal(t, "ONLINE", b.AdminMode)
	assert.Contains(t, b.Attributes, "adminMode")
	assert.Contains(t, b.Commands, "State")
	assert.Contains(t, b.Properties, "SkaLevel")
}

func TestQuickValues(t *testing.T) {
	dev := fake.DemoDevice("mid-csp/control/0", "CspController")
	cfg := config.Defaults()

	vals := QuickValues(zerolog.Nop(), dev, cfg)

	// adminMode is a DevEnum, so its label is shown instead of the index.
	assert.Equal(t, "ONLINE", vals["adminMode"])
	assert.Equal(t, "0.23.3", vals["versionId"])
	assert.Equal(t, "ON", vals["State"])
	assert.Equal(t, "4", vals["SkaLevel"])
}

func TestQuickValuesMissingAndFailing(t *testing.T) {
	dev := &fake.Device{
		DevName: "mid-csp/control/0",
		Attrs: map[string]*fake.Attr{
			"versionId": {ReadErr: "read failed"},
		},
		Props: map[string][]string{
			"SkaLevel": {"1", "2"},
		},
	}
	cfg := config.Defaults()

	vals := QuickValues(zerolog.Nop(), dev, cfg)

	// Items the device does not implement show "-", failed reads "N/A",
	// multi-valued properties join on the configured delimiter.
	assert.Equal(t, "-", vals["adminMode"])
	assert.Equal(t, "N/A", vals["versionId"])
	assert.Equal(t, "-", vals["State"])
	assert.Equal(t, "1,2", vals["SkaLevel"])
}

func TestEnumLabelOutOfRange(t *testing.T) {
	dev := &fake.Device{
		DevName: "mid-csp/control/0",
		Attrs: map[string]*fake.Attr{
			"adminMode": {
				Value:  tango.AttributeValue{Value: int32(7), Type: tango.DevEnum},
				Config: tango.AttributeConfig{EnumLabels: []string{"ONLINE", "OFFLINE"}},
			},
		},
	}

	vals := QuickValues(zerolog.Nop(), dev, config.Defaults())
	assert.Equal(t, "7", vals["adminMode"])
}
