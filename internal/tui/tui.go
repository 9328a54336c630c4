// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package tui is the interactive device browser: a filterable device
// list with a scrollable detail pane showing the text rendering of one
// device.
package tui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/reader"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/render"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Options carries everything the browser needs to scan.
type Options struct {
	Log      zerolog.Logger
	Conn     tango.Connector
	Endpoint tango.Endpoint
	Config   config.Config
	Filters  reader.Filters
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newModel(ctx, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type keyMap struct {
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type deviceItem struct {
	name  string
	class string
	rec   *tango.Device
}

func (i deviceItem) Title() string { return i.name }

func (i deviceItem) Description() string {
	if i.rec == nil {
		return "not exported"
	}
	return i.class
}

func (i deviceItem) FilterValue() string { return i.name }

type scanDoneMsg struct {
	coll *tango.Collection
	err  error
}

type model struct {
	ctx  context.Context
	opts Options

	spinner spinner.Model
	devices list.Model
	detail  viewport.Model

	coll       *tango.Collection
	loading    bool
	showDetail bool
	width      int
	height     int
	err        error
}

func newModel(ctx context.Context, opts Options) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	devices := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	devices.Title = "Tango devices @ " + opts.Endpoint.String()
	devices.SetShowStatusBar(true)
	devices.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Enter}
	}

	return model{
		ctx:     ctx,
		opts:    opts,
		spinner: sp,
		devices: devices,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scan)
}

func (m model) scan() tea.Msg {
	opts := reader.Options{Quiet: true, WithValues: true, WithConfigs: true}
	coll, err := reader.ReadCollection(m.ctx, m.opts.Log, m.opts.Conn, m.opts.Endpoint,
		m.opts.Config, m.opts.Filters, opts)
	return scanDoneMsg{coll: coll, err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.devices.SetSize(msg.Width, msg.Height-2)
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 3
		return m, nil

	case scanDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.coll = msg.coll
		items := make([]list.Item, 0, len(m.coll.Devices))
		for _, name := range m.coll.Names() {
			rec := m.coll.Devices[name]
			item := deviceItem{name: name, rec: rec}
			if rec != nil {
				item.class = rec.Class
			}
			items = append(items, item)
		}
		return m, m.devices.SetItems(items)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.devices.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.Quit):
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, keys.Back):
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
		case key.Matches(msg, keys.Enter):
			if m.loading || m.showDetail {
				break
			}
			if item, ok := m.devices.SelectedItem().(deviceItem); ok {
				m.detail.SetContent(m.renderDevice(item))
				m.detail.GotoTop()
				m.showDetail = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.showDetail {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.devices, cmd = m.devices.Update(msg)
	}
	return m, cmd
}

// renderDevice runs the text renderer over a single-device collection.
func (m model) renderDevice(item deviceItem) string {
	if item.rec == nil {
		return errorStyle.Render(item.name + " could not be opened")
	}
	sub := &tango.Collection{
		Endpoint: m.coll.Endpoint,
		Devices:  map[string]*tango.Device{item.name: item.rec},
	}
	r := render.New(m.opts.Log, render.FormatText)
	r.Full = true
	var buf bytes.Buffer
	if err := r.Write(&buf, sub); err != nil {
		return errorStyle.Render(err.Error())
	}
	return buf.String()
}

func (m model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Reading devices from %s...\n", m.spinner.View(), m.opts.Endpoint)
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  %v\n", m.err)) +
			statusStyle.Render("\n  q to quit\n")
	}
	if m.showDetail {
		title := titleStyle.Render("Device details")
		status := statusStyle.Render("esc back, arrows scroll, q quit")
		return fmt.Sprintf("%s\n%s\n%s", title, m.detail.View(), status)
	}
	return m.devices.View()
}
