// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	DBusListNamesAddress = "org.freedesktop.DBus.ListNames"
	GeoClueDBusName      = "org.freedesktop.GeoClue2"
)

// StatusChecker reports whether location services are enabled on this system.
type StatusChecker interface {
	Enabled(ctx context.Context) (bool, error)
}

// ConfigStatus reports location services as disabled if the user turned them off or no
// position source is enabled.
type ConfigStatus struct {
	Disabled         bool
	ProvidersEnabled bool
}

func (c ConfigStatus) Enabled(context.Context) (bool, error) {
	return !c.Disabled && c.ProvidersEnabled, nil
}

// GeoClueStatus reports location services as disabled if the GeoClue2 service is not
// present on the system bus.
type GeoClueStatus struct {
	connect func(ctx context.Context) (*dbus.Conn, error)
}

func NewGeoClueStatus() GeoClueStatus {
	return GeoClueStatus{connect: func(ctx context.Context) (*dbus.Conn, error) {
		return dbus.ConnectSystemBus(dbus.WithContext(ctx))
	}}
}

func (g GeoClueStatus) Enabled(ctx context.Context) (enabled bool, err error) {
	conn, err := g.connect(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close system bus: %w", closeErr))
		}
	}()

	var list []string
	if err = conn.BusObject().CallWithContext(ctx, DBusListNamesAddress, 0).Store(&list); err != nil {
		return false, fmt.Errorf("failed to call DBus ListNames: %w", err)
	}
	return hasName(list, GeoClueDBusName), nil
}

func hasName(list []string, name string) bool {
	for _, v := range list {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}

// Statuses combines several StatusCheckers. Location services are enabled only if all of them
// agree. The first error is returned.
type Statuses []StatusChecker

func (s Statuses) Enabled(ctx context.Context) (bool, error) {
	for _, checker := range s {
		enabled, err := checker.Enabled(ctx)
		if err != nil {
			return false, err
		}
		if !enabled {
			return false, nil
		}
	}
	return true, nil
}
