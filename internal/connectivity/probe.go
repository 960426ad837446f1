// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	ihttp "github.com/wneessen/weather-tui/internal/http"
	"github.com/wneessen/weather-tui/internal/logger"
)

const (
	DefaultProbeURL      = "https://www.gstatic.com/generate_204"
	DefaultProbeInterval = time.Second * 10
	probeJobName         = "connectivity_probe_job"
)

var (
	ErrMissingClient = errors.New("http client is required")
	ErrMissingLogger = errors.New("logger is required")
)

// ProbeOptions configures a Probe.
type ProbeOptions struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
	Clock    clockwork.Clock
}

// Probe is a Monitor that periodically sends a HEAD request to a well known URL. Any HTTP
// response below 500 counts as reachable.
type Probe struct {
	runner
	http     *ihttp.Client
	logger   *logger.Logger
	url      string
	interval time.Duration
	timeout  time.Duration
	clock    clockwork.Clock
}

func NewProbe(client *ihttp.Client, log *logger.Logger, opts ProbeOptions) (*Probe, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	if log == nil {
		return nil, ErrMissingLogger
	}
	if opts.URL == "" {
		opts.URL = DefaultProbeURL
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultProbeInterval
	}
	if opts.Timeout <= 0 || opts.Timeout > opts.Interval {
		opts.Timeout = opts.Interval
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Probe{
		http:     client,
		logger:   log,
		url:      opts.URL,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		clock:    opts.Clock,
	}, nil
}

// Start schedules the probe job. The first probe runs immediately.
func (p *Probe) Start(ctx context.Context) <-chan State {
	ctx = p.start(ctx)
	states := newEdges()

	scheduler, err := gocron.NewScheduler(gocron.WithClock(p.clock))
	if err != nil {
		p.logger.Error("failed to create probe scheduler", logger.Err(err))
		states.close()
		return states.out
	}
	task := func(ctx context.Context) {
		states.emit(ctx, p.check(ctx))
	}
	if _, err = scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(probeJobName),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		p.logger.Error("failed to create probe job", logger.Err(err))
		states.close()
		return states.out
	}
	scheduler.Start()
	p.logger.Debug("connectivity probe started", slog.String("url", p.url),
		slog.Duration("interval", p.interval))

	go func() {
		<-ctx.Done()
		if err := scheduler.Shutdown(); err != nil {
			p.logger.Error("failed to shut down probe scheduler", logger.Err(err))
		}
		states.close()
	}()
	return states.out
}

func (p *Probe) check(ctx context.Context) State {
	code, err := p.http.Head(ctx, p.url, p.timeout)
	if err != nil {
		p.logger.Debug("connectivity probe failed", logger.Err(err))
		return Unsatisfied
	}
	if code >= http.StatusInternalServerError {
		p.logger.Debug("connectivity probe returned server error", slog.Int("status", code))
		return Unsatisfied
	}
	return Satisfied
}
