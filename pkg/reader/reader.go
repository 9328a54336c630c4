// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package reader enumerates Tango devices and assembles display
// records. Enumeration, filtering, value acquisition and record
// assembly are separate stages; a failure on one device or one item is
// recorded in the output and never stops the run.
package reader

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
	"github.com/ska-telescope/ska-tangoctl-sub000/internal/progress"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// ErrNoFilters is returned when a full scan is requested without any
// device or item filter and without the everything flag.
var ErrNoFilters = errors.New(
	"no filters specified, use the list format to list all devices" +
		" or the everything flag for a full display of every device")

// Options tunes a collection read.
type Options struct {
	// Quiet suppresses the progress bar.
	Quiet bool
	// WithValues reads live values and invokes safe commands.
	WithValues bool
	// WithConfigs reads attribute and command configuration.
	WithConfigs bool
	// MaxDevices caps the number of devices read, 0 for no cap.
	MaxDevices int
}

// ListDevices returns the exported device names that pass the ignore
// list and the device name filter, in sorted order.
func ListDevices(log zerolog.Logger, db tango.Database, cfg config.Config, filters Filters) ([]string, error) {
	exported, err := db.DeviceExported("*")
	if err != nil {
		return nil, fmt.Errorf("list exported devices: %w", err)
	}
	sort.Strings(exported)
	var names []string
	for _, name := range exported {
		if !filters.Everything && ignoredDevice(name, cfg.IgnoreDevice) {
			log.Info().Str("device", name).Msg("Skip device")
			continue
		}
		if filters.Device != "" && !matchName(name, filters.Device, filters.Exact) {
			log.Info().Str("device", name).Msg("Ignore device")
			continue
		}
		names = append(names, name)
	}
	log.Debug().Int("devices", len(names)).Msg("Found device names")
	return names, nil
}

// ReadCollection opens every selected device and assembles the
// collection. A device that cannot be opened is stored as a nil record
// and enumeration continues.
func ReadCollection(
	ctx context.Context,
	log zerolog.Logger,
	conn tango.Connector,
	ep tango.Endpoint,
	cfg config.Config,
	filters Filters,
	opts Options,
) (*tango.Collection, error) {
	db, err := conn.Open(ctx, ep)
	if err != nil {
		return nil, err
	}
	names, err := ListDevices(log, db, cfg, filters)
	if err != nil {
		return nil, err
	}
	if opts.MaxDevices > 0 && len(names) > opts.MaxDevices {
		log.Warn().Int("devices", opts.MaxDevices).Msg("Stop reading devices early")
		names = names[:opts.MaxDevices]
	}

	coll := &tango.Collection{Endpoint: ep, Devices: map[string]*tango.Device{}}
	seenClasses := map[string]bool{}
	bar := progress.New(fmt.Sprintf("Read %d exported devices :", len(names)), len(names), opts.Quiet)
	for i, name := range names {
		bar.Step(i)
		if err := ctx.Err(); err != nil {
			// Interrupted: the partial collection stands.
			log.Warn().Int("devices", len(coll.Devices)).Msg("Scan interrupted")
			break
		}
		dev, err := conn.OpenDevice(ctx, ep, name)
		if err != nil {
			log.Warn().Str("device", name).Err(err).Msg("Could not open device")
			coll.Devices[name] = nil
			continue
		}
		r := NewDeviceReader(log, dev, cfg, filters)
		if !r.Matched() {
			log.Debug().Str("device", name).Msg("Skip device without matching items")
			continue
		}
		rec := r.Record()
		if filters.Class != "" && !strings.EqualFold(rec.Class, filters.Class) {
			log.Debug().Str("device", name).Str("class", rec.Class).Msg("Skip device class")
			continue
		}
		if filters.UniqueClass {
			if rec.Class == "---" {
				log.Debug().Str("device", name).Msg("Skip device with unknown class")
				continue
			}
			if seenClasses[rec.Class] {
				log.Debug().Str("device", name).Str("class", rec.Class).Msg("Skip device with known class")
				continue
			}
			seenClasses[rec.Class] = true
		}
		if opts.WithConfigs {
			r.ReadConfigs()
		}
		if opts.WithValues {
			r.ReadValues()
		}
		coll.Devices[name] = rec
	}
	bar.Done()
	log.Info().Int("devices", len(coll.Devices)).Msg("Read devices")
	return coll, nil
}

// CheckFilters enforces the full-scan guard: textual full or short
// scans need at least one filter or the everything flag.
func CheckFilters(filters Filters) error {
	if filters.Active() || filters.Everything {
		return nil
	}
	return ErrNoFilters
}

// Classes groups the devices of a collection by class name.
func Classes(coll *tango.Collection) map[string][]string {
	classes := map[string][]string{}
	for _, name := range coll.Names() {
		rec := coll.Devices[name]
		if rec == nil {
			continue
		}
		classes[rec.Class] = append(classes[rec.Class], rec.Name)
	}
	return classes
}
