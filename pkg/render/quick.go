// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
)

// QuickRow is one line of the quick device listing: the configured
// list-item values for one device.
type QuickRow struct {
	Device string
	Class  string
	Values map[string]string
}

// WriteQuick prints the one-line-per-device listing with the column
// set and widths from the configuration ("<10" left aligned, ">11"
// right aligned at that width).
func WriteQuick(w io.Writer, items config.ListItems, rows []QuickRow) {
	for _, r := range rows {
		fmt.Fprintf(w, "%-64s ", r.Device)
		for _, group := range []map[string]string{items.Attributes, items.Commands, items.Properties} {
			for _, name := range sortedKeys(group) {
				val, ok := r.Values[name]
				if !ok {
					// Devices that could not be opened have no values.
					val = "N/A"
				}
				fmt.Fprintf(w, "%s ", formatCell(val, group[name]))
			}
		}
		fmt.Fprintf(w, "%-32s\n", r.Class)
	}
	fmt.Fprintf(w, "%d devices\n", len(rows))
}

// formatCell applies a width spec of the form "<N" or ">N".
func formatCell(value, spec string) string {
	if len(spec) < 2 {
		return value
	}
	width, err := strconv.Atoi(spec[1:])
	if err != nil {
		return value
	}
	if spec[0] == '>' {
		return fmt.Sprintf("%*s", width, value)
	}
	return fmt.Sprintf("%-*s", width, value)
}
