// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// widthBudget is the column width past which comma-separated strings
// are split onto successive rows.
const widthBudget = 70

// row is one key/value line of an item. A continuation row has an
// empty key.
type row struct {
	Key   string
	Value string
}

// sink receives the structural walk. Each textual format implements
// one; the traversal itself is shared so the formats cannot drift
// apart.
type sink interface {
	BeginDevice(name string, dev map[string]any)
	FailedDevice(name string)
	Section(title string)
	Item(name string, rows []row)
	EndDevice()
}

// walk drives a sink over the collection dictionary: devices in sorted
// order, identification first, then attributes, commands and
// properties.
func walk(log zerolog.Logger, dict map[string]any, s sink) {
	for _, devName := range sortedKeys(dict) {
		raw := dict[devName]
		if raw == nil {
			s.FailedDevice(devName)
			continue
		}
		dev := raw.(map[string]any)
		s.BeginDevice(devName, dev)
		for _, section := range []string{"attributes", "commands", "properties"} {
			items, _ := dev[section].(map[string]any)
			if len(items) == 0 {
				continue
			}
			s.Section(section)
			for _, itemName := range sortedKeys(items) {
				s.Item(itemName, itemRows(log, items[itemName]))
			}
		}
		s.EndDevice()
	}
}

// itemRows flattens one attribute/command/property structure into
// key/value rows, in a stable order: error, value, remaining data
// fields, then config fields.
func itemRows(log zerolog.Logger, item any) []row {
	m, ok := item.(map[string]any)
	if !ok {
		return []row{{Value: fmt.Sprint(item)}}
	}
	var rows []row
	if errStr, ok := m["error"].(string); ok && errStr != "" {
		rows = append(rows, row{Key: "error", Value: errStr})
	}
	if v, ok := m["value"]; ok {
		rows = appendValueRows(log, rows, "value", v)
	}
	if data, ok := m["data"].(map[string]any); ok {
		if v, ok := data["value"]; ok {
			rows = appendValueRows(log, rows, "value", v)
		}
		for _, key := range []string{"type", "data_format"} {
			if v, ok := data[key]; ok {
				rows = append(rows, row{Key: key, Value: fmt.Sprint(v)})
			}
		}
	}
	if cfg, ok := m["config"].(map[string]any); ok {
		for _, key := range sortedKeys(cfg) {
			rows = appendValueRows(log, rows, key, cfg[key])
		}
	}
	return rows
}

// appendValueRows renders one value as one or more rows. One level of
// dict/list nesting is supported; deeper structures are flattened with
// fmt.
func appendValueRows(log zerolog.Logger, rows []row, key string, v any) []row {
	switch val := v.(type) {
	case nil:
		return append(rows, row{Key: key, Value: ""})
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			r := row{Value: fmt.Sprintf("%s : %s", k, flatten(val[k]))}
			if i == 0 {
				r.Key = key
			}
			rows = append(rows, r)
		}
		if len(keys) == 0 {
			rows = append(rows, row{Key: key, Value: "{}"})
		}
		return rows
	case []any:
		return appendListRows(rows, key, val)
	case []string:
		anys := make([]any, len(val))
		for i, s := range val {
			anys[i] = s
		}
		return appendListRows(rows, key, anys)
	case string:
		return appendStringRows(log, rows, key, val)
	default:
		return append(rows, row{Key: key, Value: fmt.Sprint(v)})
	}
}

func appendListRows(rows []row, key string, vals []any) []row {
	if len(vals) == 0 {
		return append(rows, row{Key: key, Value: ""})
	}
	for i, v := range vals {
		r := row{Value: flatten(v)}
		if i == 0 {
			r.Key = key
		}
		rows = append(rows, r)
	}
	return rows
}

// appendStringRows splits multi-line strings on newlines and long
// comma-separated strings on commas. A string that looks like JSON but
// does not parse is printed verbatim with a logged notice.
func appendStringRows(log zerolog.Logger, rows []row, key, s string) []row {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > 1 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '{' && last == '}') || (first == '[' && last == ']') {
			var parsed any
			if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
				log.Info().Str("value", trimmed).Msg("Value looks like JSON but does not parse")
			}
		}
	}
	var lines []string
	switch {
	case strings.Contains(s, "\n"):
		lines = strings.Split(s, "\n")
	case len(s) > widthBudget && strings.Contains(s, ","):
		lines = strings.SplitAfter(s, ",")
	default:
		lines = []string{s}
	}
	for i, line := range lines {
		r := row{Value: line}
		if i == 0 {
			r.Key = key
		}
		rows = append(rows, r)
	}
	return rows
}

func flatten(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
