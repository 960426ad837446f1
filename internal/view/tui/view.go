// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wneessen/weather-tui/internal/presenter"
)

// Sender is implemented by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// View forwards the coordinator notifications into the bubbletea program. Notifications
// before Attach are dropped.
type View struct {
	mu     sync.RWMutex
	sender Sender
}

func NewView() *View {
	return &View{}
}

// Attach sets the program the notifications are sent to.
func (v *View) Attach(sender Sender) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sender = sender
}

func (v *View) ConnectivityChanged(online bool) { v.send(connectivityMsg{online: online}) }
func (v *View) DataReady(vm presenter.ViewModel) { v.send(dataReadyMsg{model: vm}) }
func (v *View) FetchFailed() { v.send(fetchFailedMsg{}) }
func (v *View) LocationUnavailable() { v.send(locationUnavailableMsg{}) }
func (v *View) LocationDisabled() { v.send(locationDisabledMsg{}) }
func (v *View) SetLoadingIndicator(on bool) { v.send(loadingMsg{on: on}) }
func (v *View) PresentShareable(text string) { v.send(shareMsg{text: text}) }

func (v *View) send(msg tea.Msg) {
	v.mu.RLock()
	sender := v.sender
	v.mu.RUnlock()
	if sender != nil {
		sender.Send(msg)
	}
}
