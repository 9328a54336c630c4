// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the console logger from the verbosity flags. The
// default level is warn; -v raises to info, -V to debug, -Q drops to
// errors only.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case flagDebug:
		level = zerolog.DebugLevel
	case flagInfo:
		level = zerolog.InfoLevel
	case flagSilent:
		level = zerolog.ErrorLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// quietProgress reports whether the progress bar should be suppressed.
func quietProgress() bool {
	return flagQuiet || flagSilent
}
