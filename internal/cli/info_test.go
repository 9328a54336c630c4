// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetInfoFlags(t *testing.T) {
	t.Helper()
	resetFlags(t)
	infoFormat, infoOutput = "txt", ""
	infoFull, infoShort, infoQuick = false, false, false
	infoDevice, infoAttribute, infoCommand, infoProperty, infoClass = "", "", "", "", ""
	infoEverything, infoUnique, infoExact = false, false, false
	infoMax = 0
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRoot(Options{Name: "tangoctl"})
	root.SetArgs(args)
	return root.Execute()
}

func TestInfoListingFormatsRunUnfiltered(t *testing.T) {
	for _, format := range []string{"names", "class", "list"} {
		t.Run(format, func(t *testing.T) {
			resetInfoFlags(t)
			out := filepath.Join(t.TempDir(), "out.txt")

			err := runRoot(t, "info", "--demo", "-f", format, "-O", out)
			require.NoError(t, err)

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(data), "mid-csp/control/0")
			assert.NotContains(t, string(data), "sys/tg_test/1")
		})
	}
}

func TestInfoQuickRunsUnfiltered(t *testing.T) {
	resetInfoFlags(t)
	out := filepath.Join(t.TempDir(), "out.txt")

	err := runRoot(t, "info", "--demo", "-l", "-O", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mid-csp/subarray/01")
}

func TestInfoFullScanNeedsFilters(t *testing.T) {
	for _, format := range []string{"txt", "json", "yaml", "md", "html"} {
		t.Run(format, func(t *testing.T) {
			resetInfoFlags(t)

			err := runRoot(t, "info", "--demo", "-f", format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "use -e")
		})
	}
}

func TestInfoNothingFound(t *testing.T) {
	resetInfoFlags(t)
	out := filepath.Join(t.TempDir(), "out.txt")

	err := runRoot(t, "info", "--demo", "-D", "no/such/device", "-f", "txt", "-O", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No devices found")
}

func TestInfoMaxDevices(t *testing.T) {
	resetInfoFlags(t)
	out := filepath.Join(t.TempDir(), "out.txt")

	err := runRoot(t, "info", "--demo", "-e", "-f", "names", "--max", "1", "-O", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1 devices", lines[1])
}

func TestInfoFullScanWithEverything(t *testing.T) {
	resetInfoFlags(t)
	out := filepath.Join(t.TempDir(), "out.json")

	err := runRoot(t, "info", "--demo", "-e", "-f", "json", "-O", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sys/tg_test/1")
}
