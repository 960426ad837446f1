// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var ErrEmptyCommand = errors.New("settings command is empty")

// SettingsOpener opens the place where the user can enable location services.
type SettingsOpener interface {
	OpenSettings(ctx context.Context) error
}

// CommandSettingsOpener runs a shell-like command line. Arguments are split on whitespace,
// there is no quoting.
type CommandSettingsOpener struct {
	Command string
}

func (c CommandSettingsOpener) OpenSettings(ctx context.Context) error {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return ErrEmptyCommand
	}
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run settings command %q: %w", c.Command, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
