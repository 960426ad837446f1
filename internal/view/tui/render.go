// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/wneessen/weather-tui/internal/presenter"
)

const (
	appTitle   = "weather-tui"
	labelWidth = 30
	iconWidth  = 3
)

func (m Model) View() string {
	var sections []string
	sections = append(sections, m.viewHeader(), "")

	switch {
	case !m.online:
		sections = append(sections, m.viewOffline())
	case m.prompt != promptNone:
		sections = append(sections, m.viewPrompt())
	case m.data == nil:
		sections = append(sections, m.viewWaiting())
	case m.screen == ScreenForecast:
		sections = append(sections, paneStyle.Render(m.viewForecast()))
	default:
		sections = append(sections, paneStyle.Render(m.viewToday()))
	}

	if m.loading && m.data != nil && m.online {
		sections = append(sections, m.spinner.View()+" "+m.localizer.Get("Loading weather data..."))
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.viewHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	tabs := []string{m.localizer.Get("Today"), m.localizer.Get("Forecast")}
	rendered := make([]string, 0, len(tabs)+1)
	rendered = append(rendered, titleStyle.Render(appTitle)+"  ")
	for i, tab := range tabs {
		if Screen(i) == m.screen {
			rendered = append(rendered, activeTabStyle.Render(tab))
			continue
		}
		rendered = append(rendered, tabStyle.Render(tab))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewOffline renders the blocking overlay shown while the network is unreachable.
func (m Model) viewOffline() string {
	box := overlayStyle.Render(m.localizer.Get("No internet connection"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, max(m.height-6, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewPrompt() string {
	var message, key, label string
	switch m.prompt {
	case promptFetchFailed:
		message, key, label = "Can't get actual data from network", "r", "Try again"
	case promptLocationDisabled:
		message, key, label = "Location is disabled", "o", "Enable in settings"
	case promptLocationUnavailable:
		message, key, label = "Can't get actual location", "l", "Try again"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		promptStyle.Render(m.localizer.Get(message)),
		"",
		keyStyle.Render("["+key+"]")+" "+m.localizer.Get(label),
	)
}

func (m Model) viewWaiting() string {
	message := m.localizer.Get("Loading weather data...")
	if m.locating {
		message = m.localizer.Get("Locating...")
	}
	return m.spinner.View() + " " + message
}

func (m Model) viewToday() string {
	today := m.data.Today
	precipitation := today.Precipitation
	if icon, ok := presenter.PrecipitationIcons[today.PrecipitationIcon]; ok {
		precipitation = icon + " " + precipitation
	}

	rows := []struct {
		label string
		value string
	}{
		{"Probability of precipitation", today.Pop},
		{"Precipitation", precipitation},
		{"Pressure", today.Pressure},
		{"Wind speed", today.WindSpeed},
		{"Wind direction", today.WindDirection},
		{"Sunrise", today.Sunrise},
		{"Sunset", today.Sunset},
		{"Moon phase", strings.TrimSpace(today.MoonPhaseIcon + " " + today.MoonPhase)},
	}

	lines := []string{
		titleStyle.Render(today.Location),
		"",
		iconCell(presenter.ConditionIcon(today.Icon)) + valueStyle.Render(today.TempWithDescription),
		"",
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		label := runewidth.FillRight(m.localizer.Get(row.label)+":", labelWidth)
		lines = append(lines, labelStyle.Render(label)+valueStyle.Render(row.value))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewForecast() string {
	forecast := m.data.Forecast
	lines := []string{titleStyle.Render(forecast.City)}
	for _, day := range forecast.Days {
		lines = append(lines, dayHeaderStyle.Render(day.Header))
		for _, slot := range day.Slots {
			temp := runewidth.FillLeft(slot.Temperature, 6)
			lines = append(lines, labelStyle.Render(slot.Time)+"  "+valueStyle.Render(temp)+"  "+
				iconCell(presenter.ConditionIcon(slot.Icon))+slot.Description)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewHelp() string {
	keys := []struct {
		key   string
		label string
	}{
		{"r", "Refresh"},
		{"l", "Try again"},
		{"s", "Share"},
		{"o", "Enable in settings"},
		{"tab", "Switch screen"},
		{"q", "Quit"},
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, keyStyle.Render(k.key)+": "+m.localizer.Get(k.label))
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// iconCell pads an emoji icon to a fixed number of terminal cells.
func iconCell(icon string) string {
	return icon + strings.Repeat(" ", max(1, iconWidth-runewidth.StringWidth(icon)))
}
