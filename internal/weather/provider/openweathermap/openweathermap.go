// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/wneessen/weather-tui/internal/geobus"
	ihttp "github.com/wneessen/weather-tui/internal/http"
	"github.com/wneessen/weather-tui/internal/logger"
	"github.com/wneessen/weather-tui/internal/vartype"
	"github.com/wneessen/weather-tui/internal/weather"
)

const (
	name           = "openweathermap"
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultTimeout = time.Second * 10

	pathOneCall  = "/onecall"
	pathForecast = "/forecast"
	excludeParts = "hourly,minutely,alerts"
)

var ErrMissingAPIKey = errors.New("openweathermap requires an API key")

// Options configures the OpenWeatherMap client.
type Options struct {
	APIKey  string
	BaseURL string
	Lang    string
	Timeout time.Duration
}

type OpenWeatherMap struct {
	http     *ihttp.Client
	log      *logger.Logger
	opts     Options
	circuit  *gobreaker.CircuitBreaker
	validate *validator.Validate
}

func New(client *ihttp.Client, log *logger.Logger, opts Options) (*OpenWeatherMap, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("weather API circuit breaker changed state", slog.String("name", name),
				slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})

	return &OpenWeatherMap{
		http:     client,
		log:      log,
		opts:     opts,
		circuit:  cb,
		validate: validator.New(),
	}, nil
}

func (o *OpenWeatherMap) Name() string {
	return name
}

// Current retrieves the current conditions and the daily forecast from the one call endpoint.
func (o *OpenWeatherMap) Current(ctx context.Context, coords geobus.Coordinate) (*weather.Current, error) {
	res := new(oneCallResponse)
	query := o.query(coords)
	query.Set("exclude", excludeParts)
	if err := o.get(ctx, pathOneCall, query, res); err != nil {
		return nil, err
	}
	return res.toCurrent(), nil
}

// Forecast retrieves the location name and the 3-hour forecast list.
func (o *OpenWeatherMap) Forecast(ctx context.Context, coords geobus.Coordinate) (*weather.Forecast, error) {
	res := new(forecastResponse)
	if err := o.get(ctx, pathForecast, o.query(coords), res); err != nil {
		return nil, err
	}
	return res.toForecast(), nil
}

func (o *OpenWeatherMap) query(coords geobus.Coordinate) url.Values {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", coords.Lat))
	query.Set("lon", fmt.Sprintf("%f", coords.Lon))
	query.Set("appid", o.opts.APIKey)
	if o.opts.Lang != "" {
		query.Set("lang", o.opts.Lang)
	}
	return query
}

// get performs a single request through the circuit breaker and validates the decoded payload.
// Every failure is reported as weather.ErrFetchFailed.
func (o *OpenWeatherMap) get(ctx context.Context, path string, query url.Values, target any) error {
	start := time.Now()
	_, err := o.circuit.Execute(func() (interface{}, error) {
		code, err := o.http.GetWithTimeout(ctx, o.opts.BaseURL+path, target, query, nil, o.opts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve weather data from OpenWeatherMap API: %w", err)
		}
		if code != http.StatusOK {
			return nil, fmt.Errorf("OpenWeatherMap API returned non-positive response code: %d", code)
		}
		return nil, nil
	})
	if err != nil {
		o.log.Debug("weather API request failed", slog.String("path", path),
			slog.Duration("duration", time.Since(start)), logger.Err(err))
		return fmt.Errorf("%w: %w", weather.ErrFetchFailed, err)
	}
	if err = o.validate.Struct(target); err != nil {
		return fmt.Errorf("%w: invalid %s payload: %w", weather.ErrFetchFailed, strings.TrimPrefix(path, "/"), err)
	}
	o.log.Debug("weather API request succeeded", slog.String("path", path),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func toConditions(in []condition) []weather.Condition {
	out := make([]weather.Condition, 0, len(in))
	for _, c := range in {
		out = append(out, weather.Condition{
			ID:          *c.ID,
			Summary:     c.Main,
			Description: c.Description,
			Icon:        c.Icon,
		})
	}
	return out
}

func (r *oneCallResponse) toCurrent() *weather.Current {
	current := &weather.Current{
		TemperatureKelvin: *r.Current.Temp,
		PressureHPa:       *r.Current.Pressure,
		WindSpeedMS:       *r.Current.WindSpeed,
		WindDegrees:       *r.Current.WindDeg,
		Conditions:        toConditions(r.Current.Weather),
		Daily:             make([]weather.Daily, 0, len(r.Daily)),
	}
	for _, d := range r.Daily {
		current.Daily = append(current.Daily, weather.Daily{
			MeanTemperatureKelvin:    *d.Temp.Day,
			PressureHPa:              *d.Pressure,
			Conditions:               toConditions(d.Weather),
			PrecipitationProbability: *d.Pop,
			Snow:                     vartype.FromPtr(d.Snow),
			Rain:                     vartype.FromPtr(d.Rain),
		})
	}
	return current
}

func (r *forecastResponse) toForecast() *weather.Forecast {
	forecast := &weather.Forecast{
		Location: weather.LocationName{City: r.City.Name, Country: r.City.Country},
		Entries:  make([]weather.ForecastEntry, 0, len(r.List)),
	}
	for _, item := range r.List {
		forecast.Entries = append(forecast.Entries, weather.ForecastEntry{
			Time:              time.Unix(*item.Dt, 0),
			TemperatureKelvin: *item.Main.Temp,
			Conditions:        toConditions(item.Weather),
		})
	}
	return forecast
}
