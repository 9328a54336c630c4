// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/clierr"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/reader"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/render"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

var (
	infoFormat     string
	infoFull       bool
	infoShort      bool
	infoQuick      bool
	infoDevice     string
	infoAttribute  string
	infoCommand    string
	infoProperty   string
	infoClass      string
	infoEverything bool
	infoUnique     bool
	infoExact      bool
	infoMax        int
	infoOutput     string
)

var infoCmd = &cobra.Command{
	Use:   "info [flags]",
	Short: "Read and display Tango devices",
	Long: `Read devices, their attributes, commands and properties and display
them in the chosen format.

Filters match on a lowercase substring, or the full name with -x.
Filtering on one kind skips the other kinds. Devices under ignored
prefixes (sys, dserver) are excluded unless -e is given. A full scan
with no filters requires -e.

Examples:
  # All attributes of devices matching a name fragment
  tangoctl info -D talon -f txt

  # One attribute across every device, exact match
  tangoctl info -A adminMode -x -f json

  # Quick one-line listing of the configured columns
  tangoctl info -e -l

  # Device names only
  tangoctl info -e -f names
`,
	RunE: runInfo,
}

func init() {
	f := infoCmd.Flags()
	f.StringVarP(&infoFormat, "format", "f", "txt", "Output format: txt, json, yaml, md, html, list, names, class")
	f.BoolVar(&infoFull, "full", false, "Include attribute and command configuration")
	f.BoolVar(&infoShort, "short", false, "Values only, no configuration")
	f.BoolVarP(&infoQuick, "quick", "l", false, "One line per device with the configured columns")
	f.StringVarP(&infoDevice, "device", "D", "", "Device name filter")
	f.StringVarP(&infoAttribute, "attribute", "A", "", "Attribute name filter")
	f.StringVarP(&infoCommand, "command", "C", "", "Command name filter")
	f.StringVarP(&infoProperty, "property", "P", "", "Property name filter")
	f.StringVar(&infoClass, "class", "", "Device class filter")
	f.BoolVarP(&infoEverything, "everything", "e", false, "Include ignored device prefixes and allow a full scan")
	f.BoolVarP(&infoUnique, "unique", "u", false, "One device per class")
	f.BoolVarP(&infoExact, "exact", "x", false, "Match names exactly instead of by substring")
	f.IntVar(&infoMax, "max", 0, "Read at most this many devices (0 for no limit)")
	f.StringVarP(&infoOutput, "output", "O", "", "Write output to a file instead of stdout")
}

func infoFilters() reader.Filters {
	return reader.Filters{
		Device:      infoDevice,
		Attribute:   infoAttribute,
		Command:     infoCommand,
		Property:    infoProperty,
		Class:       infoClass,
		Exact:       infoExact,
		Everything:  infoEverything,
		UniqueClass: infoUnique,
	}
}

// fullRecordFormat reports whether a format assembles complete device
// records. The listing formats (list, names, class) may run without
// filters; the full-record ones refuse an unfiltered scan.
func fullRecordFormat(f render.Format) bool {
	switch f {
	case render.FormatList, render.FormatNames, render.FormatClass:
		return false
	}
	return true
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format := render.Format(infoFormat)
	if infoQuick {
		format = render.FormatList
	}
	if _, err := render.ParseFormat(string(format)); err != nil {
		return err
	}

	filters := infoFilters()
	if fullRecordFormat(format) {
		if err := reader.CheckFilters(filters); err != nil {
			return fmt.Errorf("%w (use -e to read everything)", err)
		}
	}

	conn, err := connector()
	if err != nil {
		return err
	}
	eps, err := endpoints(ctx)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if infoOutput != "" {
		file, err := os.Create(infoOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	var failed bool
	for _, ep := range eps {
		if len(eps) > 1 {
			fmt.Fprintf(out, "Tango host %s\n", ep)
		}
		if err := readAndRender(ctx, out, conn, ep, filters, format); err != nil {
			appLog.Error().Str("tango_host", ep.String()).Err(err).Msg("Read failed")
			failed = true
		}
	}
	if failed {
		return errors.New("not all Tango hosts could be read")
	}
	return nil
}

func readAndRender(
	ctx context.Context,
	out io.Writer,
	conn tango.Connector,
	ep tango.Endpoint,
	filters reader.Filters,
	format render.Format,
) error {
	if format == render.FormatList {
		return runQuick(ctx, out, conn, ep, filters)
	}

	opts := reader.Options{
		Quiet:       quietProgress(),
		WithValues:  true,
		WithConfigs: !infoShort,
		MaxDevices:  infoMax,
	}
	if format == render.FormatNames || format == render.FormatClass {
		opts.WithValues = false
		opts.WithConfigs = false
	}
	coll, err := reader.ReadCollection(ctx, appLog, conn, ep, appCfg, filters, opts)
	if err != nil {
		return err
	}
	if len(coll.Devices) == 0 && format == render.FormatText {
		fmt.Fprintln(out, clierr.NothingFound("devices"))
		return nil
	}

	r := render.New(appLog, format)
	r.Full = infoFull
	return r.Write(out, coll)
}

// runQuick produces the one-line-per-device listing of the configured
// columns without assembling full records.
func runQuick(ctx context.Context, out io.Writer, conn tango.Connector, ep tango.Endpoint, filters reader.Filters) error {
	db, err := conn.Open(ctx, ep)
	if err != nil {
		return err
	}
	names, err := reader.ListDevices(appLog, db, appCfg, filters)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(out, clierr.NothingFound("devices"))
		return nil
	}
	rows := make([]render.QuickRow, 0, len(names))
	for _, name := range names {
		dev, err := conn.OpenDevice(ctx, ep, name)
		if err != nil {
			appLog.Warn().Str("device", name).Err(err).Msg("Could not open device")
			rows = append(rows, render.QuickRow{Device: name, Class: "N/A"})
			continue
		}
		basic := reader.ReadBasic(appLog, dev)
		rows = append(rows, render.QuickRow{
			Device: name,
			Class:  basic.Class,
			Values: reader.QuickValues(appLog, dev, appCfg),
		})
	}
	render.WriteQuick(out, appCfg.ListItems, rows)
	return nil
}
