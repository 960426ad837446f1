// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-tui/internal/config"
	"github.com/wneessen/weather-tui/internal/coordinator"
	"github.com/wneessen/weather-tui/internal/http"
	"github.com/wneessen/weather-tui/internal/i18n"
	"github.com/wneessen/weather-tui/internal/location"
	"github.com/wneessen/weather-tui/internal/logger"
	"github.com/wneessen/weather-tui/internal/observability"
	"github.com/wneessen/weather-tui/internal/presenter"
	"github.com/wneessen/weather-tui/internal/template"
	"github.com/wneessen/weather-tui/internal/view/jsonview"
	"github.com/wneessen/weather-tui/internal/view/tui"
)

const (
	OutputTUI  = "tui"
	OutputJSON = "json"
)

var ErrUnsupportedOutput = errors.New("unsupported output mode")

// coordinatorRunner is implemented by *coordinator.Coordinator.
type coordinatorRunner interface {
	tui.Actions
	Run(ctx context.Context) error
}

// Options selects the presentation of the service.
type Options struct {
	// Output is either OutputTUI or OutputJSON.
	Output string
	// Stdout receives the JSON lines or the terminal UI. Defaults to os.Stdout.
	Stdout io.Writer
	// Stdin is read by the terminal UI. Defaults to os.Stdin.
	Stdin io.Reader
}

type Service struct {
	SignalSrc signalSource

	config      *config.Config
	logger      *logger.Logger
	t           *spreak.Localizer
	opts        Options
	metrics     *observability.Metrics
	coordinator coordinatorRunner

	tuiView  *tui.View
	tuiModel tui.Model
	jsonView *jsonview.View
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer, opts Options) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if t == nil {
		return nil, errors.New("localizer is required")
	}
	if opts.Output == "" {
		opts.Output = OutputTUI
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	service := &Service{
		SignalSrc: stdLibSignalSource{},
		config:    conf,
		logger:    log,
		t:         t,
		opts:      opts,
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	service.metrics = metrics

	httpClient := http.NewWithTimeout(log, conf.Weather.Timeout)
	weatherClient, err := service.selectWeatherProvider(httpClient)
	if err != nil {
		return nil, err
	}
	providers, err := service.selectGeobusProviders(httpClient)
	if err != nil {
		return nil, err
	}
	stream, err := location.NewGeoBusStream(log, providers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create location stream: %w", err)
	}
	locator, err := location.New(stream, service.selectStatusChecker(), log,
		location.Options{GracePeriod: conf.Location.GracePeriod})
	if err != nil {
		return nil, fmt.Errorf("failed to create location provider: %w", err)
	}
	monitor, err := service.selectMonitor(http.New(log))
	if err != nil {
		return nil, err
	}
	pres, err := presenter.New(t, i18n.Language(conf.Locale))
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	var view coordinator.View
	switch opts.Output {
	case OutputTUI:
		service.tuiView = tui.NewView()
		view = service.tuiView
	case OutputJSON:
		tpls, err := template.New(conf, t)
		if err != nil {
			return nil, fmt.Errorf("failed to parse templates: %w", err)
		}
		service.jsonView, err = jsonview.New(opts.Stdout, tpls, t, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create JSON view: %w", err)
		}
		view = service.jsonView
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOutput, opts.Output)
	}

	coord, err := coordinator.New(coordinator.Options{
		Location:  locator,
		Monitor:   monitor,
		Weather:   weatherClient,
		Presenter: pres,
		Settings:  location.CommandSettingsOpener{Command: conf.Location.SettingsCommand},
		View:      view,
		Metrics:   metrics,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}
	service.coordinator = coord
	if service.tuiView != nil {
		service.tuiModel = tui.NewModel(service.coordinator, t)
	}

	return service, nil
}

// Run starts the coordinator and the selected output and blocks until ctx is done or the
// terminal UI quits.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.config.Metrics.Listen != "" {
		_, stop, err := s.serveMetrics(ctx, s.config.Metrics.Listen)
		if err != nil {
			return err
		}
		defer stop()
	}

	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGUSR1, syscall.SIGUSR2)
	defer s.SignalSrc.Stop(sigChan)
	go s.HandleSignals(ctx, sigChan)

	coordinatorDone := make(chan error, 1)
	go func() {
		coordinatorDone <- s.coordinator.Run(ctx)
	}()

	var err error
	switch s.opts.Output {
	case OutputTUI:
		err = s.runTUI(ctx)
	case OutputJSON:
		s.jsonView.Announce()
		<-ctx.Done()
	}

	cancel()
	if coordErr := <-coordinatorDone; coordErr != nil {
		err = errors.Join(err, fmt.Errorf("coordinator failed: %w", coordErr))
	}
	return err
}

func (s *Service) runTUI(ctx context.Context) error {
	program := tea.NewProgram(s.tuiModel,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(s.opts.Stdin),
		tea.WithOutput(s.opts.Stdout),
	)
	s.tuiView.Attach(program)

	_, err := program.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	s.logger.Debug("terminal UI closed", slog.String("output", s.opts.Output))
	return nil
}
