// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wneessen/weather-tui/internal/geobus"
	ihttp "github.com/wneessen/weather-tui/internal/http"
)

const (
	APIEndpoint   = "https://reallyfreegeoip.org/json/"
	LookupTimeout = time.Second * 5
	name          = "geoip"
)

var ErrMissingClient = errors.New("http client is required")

// Provider resolves the position from the public IP address. It is the least accurate
// source, the accuracy is derived from how detailed the answer of the API is.
type Provider struct {
	http     *ihttp.Client
	endpoint string
	poller   geobus.Poller
}

type APIResult struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country_name"`
	RegionCode  string  `json:"region_code,omitempty"`
	Region      string  `json:"region_name,omitempty"`
	City        string  `json:"city,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func New(client *ihttp.Client) (*Provider, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	provider := &Provider{http: client, endpoint: APIEndpoint}
	provider.poller = geobus.Poller{
		Source: name,
		Period: time.Minute * 30,
		TTL:    time.Hour,
		Locate: provider.locate,
	}
	return provider, nil
}

func (p *Provider) Name() string {
	return name
}

func (p *Provider) LookupStream(ctx context.Context, key string) <-chan geobus.Result {
	return p.poller.LookupStream(ctx, key)
}

func (p *Provider) locate(ctx context.Context) (geobus.Coordinate, error) {
	result := new(APIResult)
	code, err := p.http.GetWithTimeout(ctx, p.endpoint, result, nil, nil, LookupTimeout)
	if err != nil {
		return geobus.Coordinate{}, fmt.Errorf("failed to get geolocation data from API: %w", err)
	}
	if code != http.StatusOK {
		return geobus.Coordinate{}, fmt.Errorf("geolocation API returned unexpected status: %d", code)
	}

	return geobus.Coordinate{
		Lat: geobus.Truncate(result.Latitude, geobus.TruncPrecision),
		Lon: geobus.Truncate(result.Longitude, geobus.TruncPrecision),
		Acc: result.accuracy(),
	}, nil
}

func (r *APIResult) accuracy() float64 {
	switch {
	case r.ZipCode != "":
		return geobus.AccuracyZip
	case r.City != "":
		return geobus.AccuracyCity
	case r.RegionCode != "":
		return geobus.AccuracyRegion
	case r.CountryCode != "":
		return geobus.AccuracyCountry
	default:
		return geobus.AccuracyUnknown
	}
}
