// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package jsonview renders the coordinator notifications as JSON lines for status bars.
package jsonview

import (
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-tui/internal/logger"
	"github.com/wneessen/weather-tui/internal/presenter"
	"github.com/wneessen/weather-tui/internal/template"
)

const OutputClass = "weather-tui"

const (
	StateLoading             = "loading"
	StateOK                  = "ok"
	StateOffline             = "offline"
	StateFetchFailed         = "fetch_failed"
	StateLocationDisabled    = "location_disabled"
	StateLocationUnavailable = "location_unavailable"
)

var ErrMissingWriter = errors.New("output writer is required")

// Output is a single line written to the status bar.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
	State   string `json:"state"`
}

// View writes a JSON line whenever the visible output changes.
type View struct {
	encoder   *json.Encoder
	templates *template.Templates
	localizer *spreak.Localizer
	logger    *logger.Logger
	copy      func(string) error

	mu      sync.Mutex
	last    Output
	text    string
	tooltip string
	state   string
	online  bool
	loading bool
}

func New(w io.Writer, tpls *template.Templates, localizer *spreak.Localizer, log *logger.Logger) (*View, error) {
	if w == nil {
		return nil, ErrMissingWriter
	}
	if tpls == nil || localizer == nil || log == nil {
		return nil, errors.New("templates, localizer and logger are required")
	}
	return &View{
		encoder:   json.NewEncoder(w),
		templates: tpls,
		localizer: localizer,
		logger:    log,
		copy:      clipboard.WriteAll,
		state:     StateLoading,
		online:    true,
	}, nil
}

// Announce writes the current output, which is the locating message before any notification.
func (v *View) Announce() {
	v.update(func() {})
}

func (v *View) ConnectivityChanged(online bool) {
	v.update(func() { v.online = online })
}

func (v *View) DataReady(vm presenter.ViewModel) {
	text, err := template.Render(v.templates.Text, vm)
	if err != nil {
		v.logger.Error("failed to render text template", logger.Err(err))
		return
	}
	tooltip, err := template.Render(v.templates.Tooltip, vm)
	if err != nil {
		v.logger.Error("failed to render tooltip template", logger.Err(err))
		return
	}
	v.update(func() {
		v.text, v.tooltip, v.state = text, tooltip, StateOK
	})
}

func (v *View) FetchFailed() {
	v.update(func() { v.state = StateFetchFailed })
}

func (v *View) LocationUnavailable() {
	v.update(func() { v.state = StateLocationUnavailable })
}

func (v *View) LocationDisabled() {
	v.update(func() { v.state = StateLocationDisabled })
}

func (v *View) SetLoadingIndicator(on bool) {
	v.update(func() { v.loading = on })
}

// PresentShareable copies the share text to the clipboard.
func (v *View) PresentShareable(text string) {
	if err := v.copy(text); err != nil {
		v.logger.Error("failed to copy weather data to clipboard", logger.Err(err))
		return
	}
	v.logger.Info("weather data copied to clipboard")
}

// update applies fn and writes the resulting output if it differs from the last one.
func (v *View) update(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn()
	out := v.output()
	if out == v.last {
		return
	}
	if err := v.encoder.Encode(out); err != nil {
		v.logger.Error("failed to encode weather data", logger.Err(err))
		return
	}
	v.last = out
}

func (v *View) output() Output {
	out := Output{Text: v.text, Tooltip: v.tooltip, Class: OutputClass, State: v.state}
	var message string
	switch {
	case !v.online:
		out.State = StateOffline
		message = v.localizer.Get("No internet connection")
	case v.loading:
		out.State = StateLoading
		message = v.localizer.Get("Loading weather data...")
	case v.state == StateFetchFailed:
		message = v.localizer.Get("Can't get actual data from network")
	case v.state == StateLocationDisabled:
		message = v.localizer.Get("Location is disabled")
	case v.state == StateLocationUnavailable:
		message = v.localizer.Get("Can't get actual location")
	case v.state == StateLoading:
		message = v.localizer.Get("Locating...")
	}
	if message == "" {
		return out
	}
	// Keep showing the last weather data and put the status into the tooltip.
	if out.Text == "" {
		out.Text = message
		out.Tooltip = message
		return out
	}
	out.Tooltip = message + "\n\n" + out.Tooltip
	return out
}
