// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package connectivity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/wneessen/weather-tui/internal/logger"
)

const (
	nmDBusName      = "org.freedesktop.NetworkManager"
	nmDBusPath      = "/org/freedesktop/NetworkManager"
	nmDBusInterface = "org.freedesktop.NetworkManager"
	nmStateProperty = nmDBusInterface + ".State"
	nmWatchMember   = "StateChanged"

	// NM_STATE_CONNECTED_GLOBAL
	nmStateConnectedGlobal = 70

	signalBufferSize    = 8
	busReconnectDelay   = 5 * time.Second
	reconnectDelay      = 2 * time.Second
	subscribeRetryDelay = 10 * time.Second
)

// NetworkManager is a Monitor that follows the global connectivity state of NetworkManager
// via the system D-Bus. Lost bus connections are re-established.
type NetworkManager struct {
	runner
	logger  *logger.Logger
	connect func() (*dbus.Conn, error)
}

func NewNetworkManager(log *logger.Logger) (*NetworkManager, error) {
	if log == nil {
		return nil, ErrMissingLogger
	}
	return &NetworkManager{logger: log, connect: func() (*dbus.Conn, error) {
		return dbus.ConnectSystemBus()
	}}, nil
}

func (n *NetworkManager) Start(ctx context.Context) <-chan State {
	ctx = n.start(ctx)
	states := newEdges()
	go func() {
		defer states.close()
		n.monitor(ctx, states)
	}()
	return states.out
}

func (n *NetworkManager) monitor(ctx context.Context, states *edges) {
	for {
		conn := n.connectToSystemBus(ctx)
		if conn == nil {
			return // the context was cancelled, exit
		}
		if !n.subscribe(ctx, conn) {
			if ctx.Err() != nil {
				return
			}
			continue
		}

		sigCh := make(chan *dbus.Signal, signalBufferSize)
		conn.Signal(sigCh)

		// Subscribed before reading the property, so no transition is lost in between
		state, err := n.currentState(ctx, conn)
		if err != nil {
			n.logger.Error("failed to read NetworkManager state", logger.Err(err))
		} else {
			states.emit(ctx, state)
		}
		n.handleSignals(ctx, sigCh, states)

		conn.RemoveSignal(sigCh)
		if err = conn.Close(); err != nil {
			n.logger.Debug("failed to close system bus connection", logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (n *NetworkManager) connectToSystemBus(ctx context.Context) *dbus.Conn {
	for {
		conn, err := n.connect()
		if err != nil {
			n.logger.Debug("failed to connect to system bus", logger.Err(err))
			select {
			case <-time.After(busReconnectDelay):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		// Ensure cleanup on context cancellation
		context.AfterFunc(ctx, func() {
			_ = conn.Close()
		})
		return conn
	}
}

func (n *NetworkManager) subscribe(ctx context.Context, conn *dbus.Conn) bool {
	if err := conn.AddMatchSignal(dbus.WithMatchInterface(nmDBusInterface),
		dbus.WithMatchMember(nmWatchMember),
	); err != nil {
		n.logger.Error("failed to subscribe to dbus signal", slog.String("interface", nmDBusInterface),
			slog.String("member", nmWatchMember), logger.Err(err))
		_ = conn.Close()
		select {
		case <-time.After(subscribeRetryDelay):
		case <-ctx.Done():
		}
		return false
	}
	n.logger.Debug("subscribed to dbus signal", slog.String("interface", nmDBusInterface),
		slog.String("member", nmWatchMember))
	return true
}

func (n *NetworkManager) currentState(ctx context.Context, conn *dbus.Conn) (State, error) {
	call := conn.Object(nmDBusName, nmDBusPath).CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0,
		nmDBusInterface, "State")
	if call.Err != nil {
		return Unsatisfied, fmt.Errorf("failed to get %s: %w", nmStateProperty, call.Err)
	}
	var variant dbus.Variant
	if err := call.Store(&variant); err != nil {
		return Unsatisfied, fmt.Errorf("failed to read %s: %w", nmStateProperty, err)
	}
	value, ok := variant.Value().(uint32)
	if !ok {
		return Unsatisfied, fmt.Errorf("unexpected type %s for %s", variant.Signature(), nmStateProperty)
	}
	return stateFromNM(value), nil
}

func (n *NetworkManager) handleSignals(ctx context.Context, sigCh chan *dbus.Signal, states *edges) {
	for {
		select {
		case <-ctx.Done():
			return
		case sgn, ok := <-sigCh:
			if !ok {
				// connection likely closed; try to reconnect
				return
			}
			if state, ok := stateFromSignal(sgn); ok {
				states.emit(ctx, state)
			}
		}
	}
}

func stateFromSignal(sgn *dbus.Signal) (State, bool) {
	if sgn == nil || sgn.Name != nmDBusInterface+"."+nmWatchMember || len(sgn.Body) != 1 {
		return Unsatisfied, false
	}
	value, ok := sgn.Body[0].(uint32)
	if !ok {
		return Unsatisfied, false
	}
	return stateFromNM(value), true
}

func stateFromNM(value uint32) State {
	if value == nmStateConnectedGlobal {
		return Satisfied
	}
	return Unsatisfied
}
