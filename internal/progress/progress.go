// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package progress prints a carriage-return progress line while a long
// device scan runs. Purely cosmetic; quiet mode turns it off.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const barLength = 100

// Bar writes a textual progress indicator to stderr.
type Bar struct {
	out    io.Writer
	prefix string
	total  int
	quiet  bool
}

// New builds a bar for total steps. Quiet bars print nothing.
func New(prefix string, total int, quiet bool) *Bar {
	return &Bar{out: os.Stderr, prefix: prefix, total: total, quiet: quiet || total == 0}
}

// Step renders progress after i of total items.
func (b *Bar) Step(i int) {
	if b.quiet {
		return
	}
	pct := i * 100 / b.total
	filled := barLength * i / b.total
	fmt.Fprintf(b.out, "\r%s |%s%s| %d%% complete",
		b.prefix, strings.Repeat("█", filled), strings.Repeat("-", barLength-filled), pct)
}

// Done completes the bar and ends the line.
func (b *Bar) Done() {
	if b.quiet {
		return
	}
	b.Step(b.total)
	fmt.Fprintln(b.out)
}
