// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/vartype"
)

// ErrFetchFailed is returned for every failed request, regardless of whether the transport, the
// API or the payload decoding failed.
var ErrFetchFailed = errors.New("failed to fetch weather data")

// Endpoint identifies one of the two weather API requests.
type Endpoint int

const (
	EndpointCurrent Endpoint = iota
	EndpointForecast
)

// Endpoints lists all endpoints that make up a full fetch cycle.
var Endpoints = []Endpoint{EndpointCurrent, EndpointForecast}

func (e Endpoint) String() string {
	switch e {
	case EndpointCurrent:
		return "current"
	case EndpointForecast:
		return "forecast"
	default:
		return fmt.Sprintf("endpoint(%d)", int(e))
	}
}

// Client is implemented by each weather API backend.
type Client interface {
	Name() string
	Current(ctx context.Context, coords geobus.Coordinate) (*Current, error)
	Forecast(ctx context.Context, coords geobus.Coordinate) (*Forecast, error)
}

// Condition is a single weather condition as reported by the API.
type Condition struct {
	ID          int
	Summary     string
	Description string
	Icon        string
}

// Current holds the current conditions and the daily forecast. Daily is never empty; index 0
// is today.
type Current struct {
	TemperatureKelvin float64
	PressureHPa       int
	WindSpeedMS       float64
	WindDegrees       int
	Conditions        []Condition
	Daily             []Daily
}

// Daily is the forecast summary for a single day.
type Daily struct {
	MeanTemperatureKelvin    float64
	PressureHPa              int
	Conditions               []Condition
	PrecipitationProbability float64
	Snow                     vartype.VarFloat64
	Rain                     vartype.VarFloat64
}

// ForecastEntry is a single 3-hour forecast slot.
type ForecastEntry struct {
	Time              time.Time
	TemperatureKelvin float64
	Conditions        []Condition
}

// LocationName is the human readable name of the forecast location.
type LocationName struct {
	City    string
	Country string
}

func (l LocationName) String() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + " " + l.Country
}

// Forecast holds the location name and the 3-hour forecast list.
type Forecast struct {
	Location LocationName
	Entries  []ForecastEntry
}

// Today returns the daily entry for today.
func (c *Current) Today() (Daily, bool) {
	if c == nil || len(c.Daily) == 0 {
		return Daily{}, false
	}
	return c.Daily[0], true
}

// PrimaryCondition returns the first condition of the current conditions.
func (c *Current) PrimaryCondition() Condition {
	return primary(c.Conditions)
}

// PrimaryCondition returns the first condition of the forecast slot.
func (e ForecastEntry) PrimaryCondition() Condition {
	return primary(e.Conditions)
}

func primary(conditions []Condition) Condition {
	if len(conditions) == 0 {
		return Condition{}
	}
	return conditions[0]
}

// Fetch issues the request for the given endpoint. The returned payload is a *Current or a
// *Forecast. Every error wraps ErrFetchFailed.
func Fetch(ctx context.Context, client Client, endpoint Endpoint, coords geobus.Coordinate) (any, error) {
	var payload any
	var err error
	switch endpoint {
	case EndpointCurrent:
		payload, err = client.Current(ctx, coords)
	case EndpointForecast:
		payload, err = client.Forecast(ctx, coords)
	default:
		return nil, fmt.Errorf("%w: unsupported endpoint %s", ErrFetchFailed, endpoint)
	}
	if err != nil && !errors.Is(err, ErrFetchFailed) {
		err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return payload, err
}
