// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

func (r *Renderer) writeMarkdown(w io.Writer, coll *tango.Collection) error {
	s := &markdownSink{w: w}
	walk(r.log, Dict(coll, r.Full), s)
	fmt.Fprintf(w, "%d devices\n", len(coll.Devices))
	return nil
}

type markdownSink struct {
	w       io.Writer
	section string
}

func (s *markdownSink) BeginDevice(name string, dev map[string]any) {
	fmt.Fprintf(s.w, "## Device %s\n\n", escapeMarkdown(name))
	fmt.Fprintln(s.w, "| Field | Value |")
	fmt.Fprintln(s.w, "|:------|:------|")
	for _, field := range []struct{ label, key string }{
		{"class", "dev_class"},
		{"version", "version"},
		{"admin mode", "admin_mode"},
	} {
		if v, ok := dev[field.key]; ok {
			fmt.Fprintf(s.w, "| %s | %s |\n", field.label, escapeMarkdown(flatten(v)))
		}
	}
	if info, ok := dev["info"].(map[string]any); ok {
		for _, key := range sortedKeys(info) {
			fmt.Fprintf(s.w, "| %s | %s |\n", key, escapeMarkdown(flatten(info[key])))
		}
	}
	fmt.Fprintln(s.w)
}

func (s *markdownSink) FailedDevice(name string) {
	fmt.Fprintf(s.w, "## Device %s\n\n*not available*\n\n", escapeMarkdown(name))
}

func (s *markdownSink) Section(title string) {
	fmt.Fprintf(s.w, "### %s\n\n", strings.ToUpper(title[:1])+title[1:])
	fmt.Fprintln(s.w, "| Name | Field | Value |")
	fmt.Fprintln(s.w, "|:-----|:------|:------|")
	s.section = title
}

func (s *markdownSink) Item(name string, rows []row) {
	if len(rows) == 0 {
		fmt.Fprintf(s.w, "| %s | | |\n", escapeMarkdown(name))
		return
	}
	for i, r := range rows {
		itemCell := ""
		if i == 0 {
			itemCell = escapeMarkdown(name)
		}
		fmt.Fprintf(s.w, "| %s | %s | %s |\n",
			itemCell, escapeMarkdown(r.Key),
			escapeMarkdown(trunc(r.Value, valueColWidth)))
	}
}

func (s *markdownSink) EndDevice() {
	fmt.Fprintln(s.w)
}

var markdownEscaper = strings.NewReplacer("|", "\\|", "*", "\\*", "_", "\\_")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
