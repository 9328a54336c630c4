// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectItems(t *testing.T) {
	names := []string{"adminMode", "obsState", "State", "versionId"}

	tests := []struct {
		name        string
		ownFilter   string
		otherActive bool
		exact       bool
		want        []string
	}{
		{
			name: "no filters keeps all",
			want: []string{"adminMode", "obsState", "State", "versionId"},
		},
		{
			name:        "other category filter skips this category",
			otherActive: true,
			want:        nil,
		},
		{
			name:      "substring match is case-insensitive",
			ownFilter: "state",
			want:      []string{"obsState", "State"},
		},
		{
			name:      "exact match",
			ownFilter: "state",
			exact:     true,
			want:      []string{"State"},
		},
		{
			name:      "no match yields empty",
			ownFilter: "nothere",
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectItems(names, tt.ownFilter, tt.otherActive, tt.exact)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFiltersActive(t *testing.T) {
	assert.False(t, Filters{}.Active())
	assert.False(t, Filters{Everything: true}.Active())
	assert.True(t, Filters{Device: "csp"}.Active())
	assert.True(t, Filters{Attribute: "state"}.Active())
	assert.True(t, Filters{Class: "CspController"}.Active())
}

func TestIgnoredDevice(t *testing.T) {
	prefixes := []string{"sys", "dserver"}
	assert.True(t, ignoredDevice("sys/tg_test/1", prefixes))
	assert.True(t, ignoredDevice("dserver/TangoTest/test", prefixes))
	assert.False(t, ignoredDevice("mid-csp/control/0", prefixes))
}
