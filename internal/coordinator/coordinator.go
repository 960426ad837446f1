// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wneessen/weather-tui/internal/connectivity"
	"github.com/wneessen/weather-tui/internal/location"
	"github.com/wneessen/weather-tui/internal/logger"
	"github.com/wneessen/weather-tui/internal/observability"
	"github.com/wneessen/weather-tui/internal/presenter"
	"github.com/wneessen/weather-tui/internal/weather"
)

const actionQueueSize = 32

var (
	ErrMissingCollaborator = errors.New("missing coordinator collaborator")
	ErrAlreadyRunning      = errors.New("coordinator is already running")
)

// View receives the notifications of the coordinator. All methods are called from the
// coordinator loop and must not call back into the coordinator synchronously.
type View interface {
	ConnectivityChanged(online bool)
	DataReady(vm presenter.ViewModel)
	FetchFailed()
	LocationUnavailable()
	LocationDisabled()
	SetLoadingIndicator(on bool)
	PresentShareable(text string)
}

// LocationProvider resolves a single coordinate per request.
type LocationProvider interface {
	Request(ctx context.Context) <-chan location.Outcome
	Stop()
}

// ViewModelBuilder turns a joined pair of payloads into the view model.
type ViewModelBuilder interface {
	Build(coord location.Coordinate, current *weather.Current, forecast *weather.Forecast,
		at time.Time) presenter.ViewModel
}

// Options holds the collaborators of a Coordinator. Settings, Metrics and Clock are optional.
type Options struct {
	Location  LocationProvider
	Monitor   connectivity.Monitor
	Weather   weather.Client
	Presenter ViewModelBuilder
	Settings  location.SettingsOpener
	View      View
	Metrics   *observability.Metrics
	Clock     clockwork.Clock
}

// joined is the last successfully joined pair of payloads.
type joined struct {
	coord    location.Coordinate
	current  *weather.Current
	forecast *weather.Forecast
}

// Coordinator drives location resolution, connectivity monitoring and the weather fetch
// cycle. Its state is owned by the goroutine executing Run.
type Coordinator struct {
	location  LocationProvider
	monitor   connectivity.Monitor
	weather   weather.Client
	presenter ViewModelBuilder
	settings  location.SettingsOpener
	view      View
	metrics   *observability.Metrics
	clock     clockwork.Clock
	logger    *logger.Logger

	actions chan func()
	started chan struct{}
	done    chan struct{}

	// Loop owned.
	ctx           context.Context
	state         State
	coord         *location.Coordinate
	locationReq   uint64
	monitorGen    uint64
	monitorCancel context.CancelFunc
	cycle         uint64
	barrier       *barrier
	last          *joined
}

// New returns a Coordinator for the given collaborators.
func New(opts Options, log *logger.Logger) (*Coordinator, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: logger", ErrMissingCollaborator)
	}
	switch {
	case opts.Location == nil:
		return nil, fmt.Errorf("%w: location provider", ErrMissingCollaborator)
	case opts.Monitor == nil:
		return nil, fmt.Errorf("%w: connectivity monitor", ErrMissingCollaborator)
	case opts.Weather == nil:
		return nil, fmt.Errorf("%w: weather client", ErrMissingCollaborator)
	case opts.Presenter == nil:
		return nil, fmt.Errorf("%w: presenter", ErrMissingCollaborator)
	case opts.View == nil:
		return nil, fmt.Errorf("%w: view", ErrMissingCollaborator)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Coordinator{
		location:  opts.Location,
		monitor:   opts.Monitor,
		weather:   opts.Weather,
		presenter: opts.Presenter,
		settings:  opts.Settings,
		view:      opts.View,
		metrics:   opts.Metrics,
		clock:     opts.Clock,
		logger:    log.With(slog.String("component", "coordinator")),
		actions:   make(chan func(), actionQueueSize),
		started:   make(chan struct{}),
		done:      make(chan struct{}),
		state:     Idle,
	}, nil
}

// Run executes the coordinator loop until ctx is done. It immediately requests a location.
func (c *Coordinator) Run(ctx context.Context) error {
	select {
	case <-c.started:
		return ErrAlreadyRunning
	default:
		close(c.started)
	}
	defer close(c.done)

	c.ctx = ctx
	c.requestLocation()
	for {
		select {
		case <-ctx.Done():
			c.location.Stop()
			c.stopMonitor()
			c.logger.Debug("coordinator loop stopped", slog.String("state", c.state.String()))
			return nil
		case fn := <-c.actions:
			fn()
		}
	}
}

// Retry re-issues both fetches for the known coordinate. It only applies to a finished cycle,
// before that the connectivity monitor decides when to fetch.
func (c *Coordinator) Retry() {
	c.post(func() {
		if c.coord == nil || !c.state.Joined() {
			c.logger.Debug("ignoring retry", slog.String("state", c.state.String()))
			return
		}
		c.startCycle()
	})
}

// RetryLocation restarts location resolution.
func (c *Coordinator) RetryLocation() {
	c.post(func() {
		if c.state == AwaitingLocation || c.state == Fetching {
			c.logger.Debug("ignoring location retry", slog.String("state", c.state.String()))
			return
		}
		c.stopMonitor()
		c.requestLocation()
	})
}

// Refresh restarts the connectivity monitor after a successful cycle, which in turn starts a
// new cycle once the network is reachable. After a failed cycle it behaves like Retry, while
// location is unavailable it behaves like RetryLocation.
func (c *Coordinator) Refresh() {
	c.post(func() {
		switch c.state {
		case JoinedSuccess:
			c.state = AwaitingConnectivity
			c.startMonitor()
		case JoinedFailure:
			c.startCycle()
		case LocationUnavailable:
			c.requestLocation()
		default:
			c.logger.Debug("ignoring refresh", slog.String("state", c.state.String()))
		}
	})
}

// OpenSettings opens the system location settings. It does not retry the location request.
func (c *Coordinator) OpenSettings() {
	c.post(func() {
		if c.settings == nil {
			c.logger.Warn("no settings opener configured")
			return
		}
		go func(ctx context.Context) {
			if err := c.settings.OpenSettings(ctx); err != nil {
				c.logger.Error("failed to open location settings", logger.Err(err))
			}
		}(c.ctx)
	})
}

// Share formats the last joined weather data and hands it to the view. It is a no-op before
// the first successful cycle.
func (c *Coordinator) Share() {
	c.post(func() {
		if c.last == nil {
			c.logger.Debug("nothing to share yet")
			return
		}
		model := c.presenter.Build(c.last.coord, c.last.current, c.last.forecast, c.clock.Now())
		c.view.PresentShareable(presenter.ShareText(model.Today))
	})
}

// State returns the current state of the loop. It returns Idle once the loop has stopped and
// must not be called before Run.
func (c *Coordinator) State() State {
	result := make(chan State, 1)
	c.post(func() { result <- c.state })
	select {
	case s := <-result:
		return s
	case <-c.done:
		return Idle
	}
}

// post marshals fn into the loop. Posts after the loop stopped are dropped.
func (c *Coordinator) post(fn func()) {
	select {
	case <-c.done:
		c.logger.Debug("dropping late callback")
		return
	default:
	}
	select {
	case <-c.done:
		c.logger.Debug("dropping late callback")
	case c.actions <- fn:
	}
}

func (c *Coordinator) requestLocation() {
	c.state = AwaitingLocation
	c.locationReq++
	id := c.locationReq
	outcomes := c.location.Request(c.ctx)
	go func() {
		outcome, ok := <-outcomes
		if !ok {
			return
		}
		c.post(func() { c.handleLocation(id, outcome) })
	}()
}

func (c *Coordinator) handleLocation(id uint64, outcome location.Outcome) {
	if id != c.locationReq || c.state != AwaitingLocation {
		c.logger.Debug("ignoring stale location outcome")
		return
	}

	switch {
	case errors.Is(outcome.Err, location.ErrLocationDisabled):
		c.countLocation("disabled")
		c.state = LocationDisabled
		c.view.LocationDisabled()
	case outcome.Err != nil:
		c.countLocation("unavailable")
		c.logger.Warn("location unavailable", logger.Err(outcome.Err))
		c.state = LocationUnavailable
		c.view.LocationUnavailable()
	default:
		c.countLocation("success")
		coord := outcome.Coordinate
		c.coord = &coord
		c.location.Stop()
		c.logger.Info("location resolved", slog.Float64("lat", coord.Lat), slog.Float64("lon", coord.Lon),
			slog.Float64("accuracy", coord.Acc))
		c.state = AwaitingConnectivity
		c.startMonitor()
	}
}

func (c *Coordinator) startMonitor() {
	c.stopMonitor()
	ctx, cancel := context.WithCancel(c.ctx)
	c.monitorCancel = cancel
	c.monitorGen++
	gen := c.monitorGen

	states := c.monitor.Start(ctx)
	go func() {
		for s := range states {
			c.post(func() { c.handleConnectivity(gen, s) })
		}
	}()
}

func (c *Coordinator) stopMonitor() {
	if c.monitorCancel == nil {
		return
	}
	c.monitor.Stop()
	c.monitorCancel()
	c.monitorCancel = nil
	c.monitorGen++
}

func (c *Coordinator) handleConnectivity(gen uint64, s connectivity.State) {
	if gen != c.monitorGen {
		return
	}
	if c.metrics != nil {
		c.metrics.ConnectivityEdge.WithLabelValues(s.String()).Inc()
		online := 0.0
		if s == connectivity.Satisfied {
			online = 1
		}
		c.metrics.Online.Set(online)
	}
	c.logger.Debug("connectivity changed", slog.String("state", s.String()))

	if s != connectivity.Satisfied {
		c.view.ConnectivityChanged(false)
		return
	}
	c.view.ConnectivityChanged(true)
	// A failed cycle is retried once the network is back.
	if c.state == Fetching || c.state == JoinedSuccess || c.coord == nil {
		return
	}
	c.startCycle()
}

func (c *Coordinator) startCycle() {
	c.cycle++
	c.barrier = newBarrier(c.cycle)
	c.state = Fetching
	c.view.SetLoadingIndicator(true)
	c.logger.Debug("starting fetch cycle", slog.Uint64("cycle", c.cycle))

	cycle, coord := c.cycle, *c.coord
	ctx := context.WithoutCancel(c.ctx)
	for _, endpoint := range weather.Endpoints {
		go func() {
			start := c.clock.Now()
			payload, err := weather.Fetch(ctx, c.weather, endpoint, coord)
			c.observeFetch(endpoint, start, err)
			c.post(func() { c.handleResult(cycle, endpoint, payload, err) })
		}()
	}
}

func (c *Coordinator) handleResult(cycle uint64, endpoint weather.Endpoint, payload any, err error) {
	if c.barrier == nil || c.barrier.cycle != cycle {
		c.logger.Debug("ignoring stale fetch result", slog.Uint64("cycle", cycle),
			slog.String("endpoint", endpoint.String()))
		return
	}

	result, err := c.barrier.deliver(endpoint, payload, err)
	switch result {
	case joinFailed:
		c.logger.Error("weather fetch failed", slog.String("endpoint", endpoint.String()), logger.Err(err))
		c.countCycle("failure")
		c.state = JoinedFailure
		c.view.FetchFailed()
		c.view.SetLoadingIndicator(false)
	case joinComplete:
		b := c.barrier
		model := c.presenter.Build(*c.coord, b.current, b.forecast, c.clock.Now())
		c.countCycle("success")
		c.state = JoinedSuccess
		c.view.DataReady(model)
		c.view.SetLoadingIndicator(false)
		c.last = &joined{coord: *c.coord, current: b.current, forecast: b.forecast}
		c.stopMonitor()
		c.logger.Info("weather data updated", slog.Uint64("cycle", cycle),
			slog.String("location", b.forecast.Location.String()))
	}
}

func (c *Coordinator) observeFetch(endpoint weather.Endpoint, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.FetchRequests.WithLabelValues(endpoint.String(), outcome).Inc()
	c.metrics.FetchDuration.WithLabelValues(endpoint.String()).Observe(c.clock.Since(start).Seconds())
}

func (c *Coordinator) countLocation(outcome string) {
	if c.metrics != nil {
		c.metrics.LocationOutcomes.WithLabelValues(outcome).Inc()
	}
}

func (c *Coordinator) countCycle(outcome string) {
	if c.metrics != nil {
		c.metrics.Cycles.WithLabelValues(outcome).Inc()
	}
}
