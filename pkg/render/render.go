// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a device collection into one of the output
// formats. JSON and YAML pass the collection dictionary through
// unchanged; the textual formats share a single structural walk with
// per-format leaf writers.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Format selects the output rendering.
type Format string

const (
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatList     Format = "list"
	FormatNames    Format = "names"
	FormatClass    Format = "class"
)

// ParseFormat validates a format name from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML,
		FormatList, FormatNames, FormatClass:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Renderer writes collections in a fixed format and verbosity.
type Renderer struct {
	log    zerolog.Logger
	format Format
	// Full includes configuration metadata; otherwise values only.
	Full bool
	// HTMLBody omits the html/head wrapper for web embedding.
	HTMLBody bool
}

// New builds a renderer.
func New(log zerolog.Logger, format Format) *Renderer {
	return &Renderer{log: log, format: format}
}

// Write renders the collection to w.
func (r *Renderer) Write(w io.Writer, coll *tango.Collection) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(Dict(coll, r.Full))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(Dict(coll, r.Full))
	case FormatText:
		return r.writeText(w, coll)
	case FormatMarkdown:
		return r.writeMarkdown(w, coll)
	case FormatHTML:
		return r.writeHTML(w, coll)
	case FormatNames:
		return writeNames(w, coll)
	case FormatClass:
		return writeClasses(w, coll)
	case FormatList:
		return r.writeText(w, coll)
	default:
		return fmt.Errorf("unknown output format %q", r.format)
	}
}

// writeNames prints one device name per line, "(N/A)" marking devices
// that could not be opened.
func writeNames(w io.Writer, coll *tango.Collection) error {
	for _, name := range coll.Names() {
		if coll.Devices[name] == nil {
			fmt.Fprintf(w, "%s (N/A)\n", name)
			continue
		}
		fmt.Fprintln(w, name)
	}
	fmt.Fprintf(w, "%d devices\n", len(coll.Devices))
	return nil
}

// writeClasses prints devices grouped by class.
func writeClasses(w io.Writer, coll *tango.Collection) error {
	classes := map[string][]string{}
	for _, name := range coll.Names() {
		rec := coll.Devices[name]
		if rec == nil {
			continue
		}
		classes[rec.Class] = append(classes[rec.Class], name)
	}
	for _, class := range sortedKeys(classes) {
		fmt.Fprintf(w, "%-32s", class)
		for i, dev := range classes[class] {
			if i > 0 {
				fmt.Fprintf(w, "%-32s", "")
			}
			fmt.Fprintf(w, " %s\n", dev)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
