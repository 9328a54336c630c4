// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Column widths for the textual output. Values are truncated to fit;
// this output is for operators, not for round-tripping.
const (
	itemColWidth  = 40
	fieldColWidth = 24
	valueColWidth = 96
)

func (r *Renderer) writeText(w io.Writer, coll *tango.Collection) error {
	s := &textSink{w: w}
	walk(r.log, Dict(coll, r.Full), s)
	fmt.Fprintf(w, "%d devices\n", len(coll.Devices))
	return nil
}

type textSink struct {
	w io.Writer
}

func (s *textSink) BeginDevice(name string, dev map[string]any) {
	fmt.Fprintf(s.w, "Device : %s\n", name)
	for _, field := range []struct{ label, key string }{
		{"class", "dev_class"},
		{"version", "version"},
		{"admin mode", "admin_mode"},
	} {
		if v, ok := dev[field.key]; ok {
			fmt.Fprintf(s.w, "    %-*s %s\n", fieldColWidth, field.label, flatten(v))
		}
	}
	if info, ok := dev["info"].(map[string]any); ok {
		for _, key := range sortedKeys(info) {
			fmt.Fprintf(s.w, "    %-*s %s\n", fieldColWidth, key, flatten(info[key]))
		}
	}
	if errs, ok := dev["errors"].([]string); ok {
		for _, e := range errs {
			fmt.Fprintf(s.w, "    %-*s %s\n", fieldColWidth, "error", e)
		}
	}
}

func (s *textSink) FailedDevice(name string) {
	fmt.Fprintf(s.w, "Device : %s (N/A)\n", name)
}

func (s *textSink) Section(title string) {
	fmt.Fprintf(s.w, "%s:\n", title)
}

func (s *textSink) Item(name string, rows []row) {
	if len(rows) == 0 {
		fmt.Fprintf(s.w, "    %s\n", name)
		return
	}
	for i, r := range rows {
		itemCell := ""
		if i == 0 {
			itemCell = name
		}
		fmt.Fprintf(s.w, "    %-*s %-*s %s\n",
			itemColWidth, trunc(itemCell, itemColWidth),
			fieldColWidth, trunc(r.Key, fieldColWidth),
			trunc(r.Value, valueColWidth))
	}
}

func (s *textSink) EndDevice() {
	fmt.Fprintln(s.w)
}

// trunc cuts a cell to the column width without splitting a rune.
func trunc(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}
