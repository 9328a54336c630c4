// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package reader

import "strings"

// Filters selects devices and items. Empty strings mean "no filter of
// that kind".
type Filters struct {
	Device    string
	Attribute string
	Command   string
	Property  string
	Class     string
	// Exact switches item matching from substring to whole-name.
	Exact bool
	// Everything disables the ignore-prefix list.
	Everything bool
	// UniqueClass keeps at most one device per distinct class.
	UniqueClass bool
}

// Active reports whether any device or item filter is set.
func (f Filters) Active() bool {
	return f.Device != "" || f.Attribute != "" || f.Command != "" || f.Property != "" ||
		f.Class != ""
}

// matchName applies the item matching rule: exact means lower-cased
// equality, otherwise lower-cased substring.
func matchName(name, filter string, exact bool) bool {
	if exact {
		return strings.EqualFold(name, filter)
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

// selectItems picks the item names to include for one category.
// ownFilter is the filter for this category; otherActive says a filter
// for a different category is set, which skips this category entirely.
func selectItems(names []string, ownFilter string, otherActive, exact bool) []string {
	if ownFilter == "" {
		if otherActive {
			return nil
		}
		return names
	}
	var out []string
	for _, name := range names {
		if matchName(name, ownFilter, exact) {
			out = append(out, name)
		}
	}
	return out
}

// ignoredDevice reports whether the device name starts with one of the
// configured ignore prefixes.
func ignoredDevice(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
