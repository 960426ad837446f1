// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package location resolves the device position once per request. It wraps a continuous
// position Stream and turns it into a single Outcome: the first coordinate, or the reason
// why there is none.
package location

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/logger"
)

// DefaultGracePeriod is the time the stream gets to deliver a position, and to recover after
// its first error.
const DefaultGracePeriod = time.Second * 15

var (
	ErrLocationDisabled    = errors.New("location services are disabled")
	ErrLocationUnavailable = errors.New("location could not be determined")
	ErrMissingStream       = errors.New("location stream is required")
)

// Coordinate is a position in decimal degrees.
type Coordinate = geobus.Coordinate

// Outcome is the result of a location request. Err is either nil, ErrLocationDisabled or
// ErrLocationUnavailable.
type Outcome struct {
	Coordinate Coordinate
	Err        error
}

// Stream delivers positions continuously until ctx is done. Errors on the error channel are
// not terminal, the stream keeps trying.
type Stream interface {
	Start(ctx context.Context) (<-chan Coordinate, <-chan error)
}

// Options configures a Provider.
type Options struct {
	GracePeriod time.Duration
	Clock       clockwork.Clock
}

// Provider turns a Stream into single-shot location requests.
type Provider struct {
	stream Stream
	status StatusChecker
	logger *logger.Logger
	clock  clockwork.Clock
	grace  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New returns a Provider for the given Stream. The StatusChecker is optional.
func New(stream Stream, status StatusChecker, log *logger.Logger, opts Options) (*Provider, error) {
	if stream == nil {
		return nil, ErrMissingStream
	}
	if log == nil {
		return nil, geobus.ErrNilLogger
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Provider{
		stream: stream,
		status: status,
		logger: log,
		clock:  opts.Clock,
		grace:  opts.GracePeriod,
	}, nil
}

// Request starts the stream and returns a channel that delivers exactly one Outcome before
// it is closed. A previous request that is still running is stopped. If the request is
// stopped or ctx is done before an Outcome is known, the channel is closed without one.
func (p *Provider) Request(ctx context.Context) <-chan Outcome {
	streamCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.mu.Unlock()

	out := make(chan Outcome, 1)
	go p.await(streamCtx, out)
	return out
}

// Stop ends the stream of the running request.
func (p *Provider) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Provider) await(ctx context.Context, out chan<- Outcome) {
	defer close(out)

	if p.status != nil {
		enabled, err := p.status.Enabled(ctx)
		switch {
		case err != nil:
			p.logger.Warn("failed to check location service status", logger.Err(err))
		case !enabled:
			out <- Outcome{Err: ErrLocationDisabled}
			return
		}
	}

	// The timer bounds a silent stream. The first stream error restarts it, so a failing
	// stream gets the full grace period to recover.
	coords, errs := p.stream.Start(ctx)
	timer := p.clock.NewTimer(p.grace)
	defer timer.Stop()
	recovering := false

	for {
		select {
		case <-ctx.Done():
			return
		case coord, ok := <-coords:
			if !ok {
				if ctx.Err() == nil {
					out <- Outcome{Err: ErrLocationUnavailable}
				}
				return
			}
			if !coord.Valid() {
				continue
			}
			out <- Outcome{Coordinate: coord}
			return
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if errors.Is(err, ErrLocationDisabled) {
				out <- Outcome{Err: ErrLocationDisabled}
				return
			}
			p.logger.Debug("location stream reported an error", logger.Err(err))
			if !recovering {
				recovering = true
				p.logger.Debug("waiting for location to recover", slog.Duration("grace_period", p.grace))
				timer.Reset(p.grace)
			}
		case <-timer.Chan():
			p.logger.Debug("no location within the grace period", slog.Bool("stream_errors", recovering))
			out <- Outcome{Err: ErrLocationUnavailable}
			return
		}
	}
}
