// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"html"
	"io"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<title>Tango devices</title>
<style>
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 2px 8px; text-align: left; }
th { background: #eee; }
</style>
</head>
<body>
`

const htmlFooter = `</body>
</html>
`

func (r *Renderer) writeHTML(w io.Writer, coll *tango.Collection) error {
	if !r.HTMLBody {
		fmt.Fprint(w, htmlHeader)
	}
	s := &htmlSink{w: w}
	walk(r.log, Dict(coll, r.Full), s)
	fmt.Fprintf(w, "<p>%d devices</p>\n", len(coll.Devices))
	if !r.HTMLBody {
		fmt.Fprint(w, htmlFooter)
	}
	return nil
}

type htmlSink struct {
	w io.Writer
	// tableOpen tracks the current section table so successive
	// sections and EndDevice close it exactly once.
	tableOpen bool
}

func (s *htmlSink) BeginDevice(name string, dev map[string]any) {
	fmt.Fprintf(s.w, "<h2>%s</h2>\n<table>\n", html.EscapeString(name))
	for _, field := range []struct{ label, key string }{
		{"class", "dev_class"},
		{"version", "version"},
		{"admin mode", "admin_mode"},
	} {
		if v, ok := dev[field.key]; ok {
			fmt.Fprintf(s.w, "<tr><td>%s</td><td>%s</td></tr>\n",
				field.label, html.EscapeString(flatten(v)))
		}
	}
	if info, ok := dev["info"].(map[string]any); ok {
		for _, key := range sortedKeys(info) {
			fmt.Fprintf(s.w, "<tr><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(key), html.EscapeString(flatten(info[key])))
		}
	}
	fmt.Fprint(s.w, "</table>\n")
}

func (s *htmlSink) FailedDevice(name string) {
	fmt.Fprintf(s.w, "<h2>%s</h2>\n<p>not available</p>\n", html.EscapeString(name))
}

func (s *htmlSink) Section(title string) {
	s.closeTable()
	fmt.Fprintf(s.w, "<h3>%s</h3>\n<table>\n<tr><th>Name</th><th>Field</th><th>Value</th></tr>\n",
		html.EscapeString(title))
	s.tableOpen = true
}

func (s *htmlSink) Item(name string, rows []row) {
	if len(rows) == 0 {
		fmt.Fprintf(s.w, "<tr><td>%s</td><td></td><td></td></tr>\n", html.EscapeString(name))
		return
	}
	for i, r := range rows {
		itemCell := ""
		if i == 0 {
			itemCell = html.EscapeString(name)
		}
		fmt.Fprintf(s.w, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			itemCell, html.EscapeString(r.Key),
			html.EscapeString(trunc(r.Value, valueColWidth)))
	}
}

func (s *htmlSink) EndDevice() {
	s.closeTable()
}

func (s *htmlSink) closeTable() {
	if s.tableOpen {
		fmt.Fprint(s.w, "</table>\n")
		s.tableOpen = false
	}
}
