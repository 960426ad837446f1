// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package tui

import "github.com/wneessen/weather-tui/internal/presenter"

// Coordinator notifications, forwarded by View.

type connectivityMsg struct {
	online bool
}

type dataReadyMsg struct {
	model presenter.ViewModel
}

type fetchFailedMsg struct{}

type locationUnavailableMsg struct{}

type locationDisabledMsg struct{}

type loadingMsg struct {
	on bool
}

type shareMsg struct {
	text string
}

// clipboardMsg is sent after the share text was copied.
type clipboardMsg struct {
	err error
}
