// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package script runs JSON test scripts against a device: a named
// sequence of attribute reads and writes and command invocations.
package script

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Step is one action in a test. Exactly one of Attribute or Command is
// set. An attribute step reads when Read is present and writes when
// Write is present; a command step invokes with Args.
type Step struct {
	Attribute string          `json:"attribute,omitempty"`
	Read      json.RawMessage `json:"read,omitempty"`
	Write     json.RawMessage `json:"write,omitempty"`
	Command   string          `json:"command,omitempty"`
	Args      json.RawMessage `json:"args,omitempty"`
}

// Script maps test names to their steps.
type Script map[string][]Step

// Load reads a script file, expanding ${ENV_VAR} references from the
// process environment before parsing.
func Load(name string) (Script, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", name, err)
	}
	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})
	var s Script
	if err := json.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", name, err)
	}
	return s, nil
}

// Result records the outcome of one step.
type Result struct {
	Test string
	Step int
	Desc string
	Err  error
}

// Runner executes a script against one device.
type Runner struct {
	log    zerolog.Logger
	dev    tango.DeviceProxy
	out    io.Writer
	DryRun bool
}

func NewRunner(log zerolog.Logger, dev tango.DeviceProxy, out io.Writer) *Runner {
	return &Runner{log: log, dev: dev, out: out}
}

// Run executes all tests in name order and returns the per-step
// failures. A step failure does not stop the rest of the script.
func (r *Runner) Run(s Script) []Result {
	var failures []Result
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "Test %s\n", name)
		for i, step := range s[name] {
			desc, err := r.runStep(step)
			if err != nil {
				r.log.Error().Err(err).Str("test", name).Int("step", i).Msg("Step failed")
				fmt.Fprintf(r.out, "    %-40s FAILED: %v\n", desc, err)
				failures = append(failures, Result{Test: name, Step: i, Desc: desc, Err: err})
				continue
			}
			fmt.Fprintf(r.out, "    %-40s ok\n", desc)
		}
	}
	return failures
}

func (r *Runner) runStep(step Step) (string, error) {
	switch {
	case step.Attribute != "" && step.Write != nil:
		desc := fmt.Sprintf("write %s <- %s", step.Attribute, step.Write)
		if r.DryRun {
			return desc + " (dry run)", nil
		}
		var value any
		if err := json.Unmarshal(step.Write, &value); err != nil {
			return desc, fmt.Errorf("write value: %w", err)
		}
		return desc, r.dev.WriteAttribute(step.Attribute, value)

	case step.Attribute != "":
		desc := fmt.Sprintf("read %s", step.Attribute)
		if r.DryRun {
			return desc + " (dry run)", nil
		}
		got, err := r.dev.ReadAttribute(step.Attribute)
		if err != nil {
			return desc, err
		}
		if step.Read != nil && string(step.Read) != "null" {
			var want any
			if err := json.Unmarshal(step.Read, &want); err != nil {
				return desc, fmt.Errorf("expected value: %w", err)
			}
			if !valueEqual(got.Value, want) {
				return desc, fmt.Errorf("read %s: got %v, want %v", step.Attribute, got.Value, want)
			}
		}
		return desc, nil

	case step.Command != "":
		desc := fmt.Sprintf("command %s", step.Command)
		if r.DryRun {
			return desc + " (dry run)", nil
		}
		var arg any
		if step.Args != nil && string(step.Args) != "null" {
			if err := json.Unmarshal(step.Args, &arg); err != nil {
				return desc, fmt.Errorf("command argument: %w", err)
			}
		}
		_, err := r.dev.CommandInOut(step.Command, arg)
		return desc, err

	default:
		return "(empty step)", fmt.Errorf("step has neither attribute nor command")
	}
}

// valueEqual compares a read value against the expected value from the
// script. Numbers from JSON are float64, so numeric comparison goes
// through a float conversion.
func valueEqual(got, want any) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	gf, gok := toFloat(got)
	wf, wok := toFloat(want)
	return gok && wok && gf == wf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}
