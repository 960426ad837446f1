// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"context"
	"fmt"

	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/logger"
)

const (
	busKey       = "weather-tui"
	errBufferLen = 16
)

// GeoBusStream is a Stream that fuses the results of several geobus providers. Only results
// that improve on the best known position are forwarded.
type GeoBusStream struct {
	bus       *geobus.GeoBus
	providers []geobus.Provider
	logger    *logger.Logger
}

func NewGeoBusStream(log *logger.Logger, providers ...geobus.Provider) (*GeoBusStream, error) {
	bus, err := geobus.New(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create geobus: %w", err)
	}
	return &GeoBusStream{bus: bus, providers: providers, logger: log}, nil
}

// Start tracks all providers until ctx is done. The coordinate channel is closed afterwards,
// the error channel is left open and drops errors nobody reads.
func (s *GeoBusStream) Start(ctx context.Context) (<-chan Coordinate, <-chan error) {
	coords := make(chan Coordinate, 1)
	errs := make(chan error, errBufferLen)

	if len(s.providers) == 0 {
		close(coords)
		return coords, errs
	}

	orchestrator := s.bus.NewOrchestrator(s.providers)
	orchestrator.OnError = func(source string, err error) {
		select {
		case errs <- fmt.Errorf("%s: %w", source, err):
		default:
		}
	}

	sub, unsub := s.bus.Subscribe(busKey, 1)
	go orchestrator.Track(ctx, busKey)
	go func() {
		defer close(coords)
		defer unsub()
		for {
			select {
			case <-ctx.Done():
				return
			case r, ok := <-sub:
				if !ok {
					return
				}
				select {
				case coords <- r.Coordinate():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return coords, errs
}
