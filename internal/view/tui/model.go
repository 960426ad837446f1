// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-tui/internal/presenter"
)

// Actions are the user actions of the coordinator.
type Actions interface {
	Retry()
	RetryLocation()
	OpenSettings()
	Refresh()
	Share()
}

// Screen is the visible tab.
type Screen int

const (
	ScreenToday Screen = iota
	ScreenForecast
)

// prompt is the single actionable error shown to the user.
type prompt int

const (
	promptNone prompt = iota
	promptFetchFailed
	promptLocationDisabled
	promptLocationUnavailable
)

// Model is the bubbletea model of the weather screens.
type Model struct {
	actions   Actions
	localizer *spreak.Localizer
	copy      func(string) error

	width  int
	height int
	screen Screen

	online   bool
	locating bool
	loading  bool
	prompt   prompt
	data     *presenter.ViewModel
	status   string

	spinner spinner.Model
}

func NewModel(actions Actions, localizer *spreak.Localizer) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		actions:   actions,
		localizer: localizer,
		copy:      clipboard.WriteAll,
		screen:    ScreenToday,
		online:    true,
		locating:  true,
		spinner:   s,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case connectivityMsg:
		m.online = msg.online
		m.locating = false
		return m, nil

	case loadingMsg:
		m.loading = msg.on
		if msg.on {
			m.locating = false
			m.prompt = promptNone
		}
		return m, nil

	case dataReadyMsg:
		model := msg.model
		m.data = &model
		m.prompt = promptNone
		return m, nil

	case fetchFailedMsg:
		m.prompt = promptFetchFailed
		return m, nil

	case locationDisabledMsg:
		m.locating = false
		m.prompt = promptLocationDisabled
		return m, nil

	case locationUnavailableMsg:
		m.locating = false
		m.prompt = promptLocationUnavailable
		return m, nil

	case shareMsg:
		return m, copyToClipboard(m.copy, msg.text)

	case clipboardMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = m.localizer.Get("Copied to clipboard")
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.screen == ScreenToday {
			m.screen = ScreenForecast
		} else {
			m.screen = ScreenToday
		}
		return m, nil
	case "r":
		m.status = ""
		if m.prompt == promptFetchFailed {
			return m, action(m.actions.Retry)
		}
		return m, action(m.actions.Refresh)
	case "l":
		if m.prompt == promptLocationUnavailable || m.prompt == promptLocationDisabled {
			m.locating = true
			m.prompt = promptNone
		}
		return m, action(m.actions.RetryLocation)
	case "o":
		return m, action(m.actions.OpenSettings)
	case "s":
		return m, action(m.actions.Share)
	}
	return m, nil
}

// action runs fn outside the update loop, since coordinator notifications are delivered
// through the same program.
func action(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func copyToClipboard(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: write(text)}
	}
}
