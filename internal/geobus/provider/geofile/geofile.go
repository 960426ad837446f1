// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geofile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weather-tui/internal/geobus"
)

const name = "geolocation_file"

var ErrNoCoordinates = errors.New("no valid coordinates found in geolocation file")

// Provider reads a static "lat,lon" position from a user maintained file. Lines starting
// with "#" are ignored, the first parseable line wins.
type Provider struct {
	path   string
	poller geobus.Poller
}

// New returns a Provider for the file at path. The file is re-read every two minutes,
// so edits are picked up while running.
func New(path string) *Provider {
	provider := &Provider{path: path}
	provider.poller = geobus.Poller{
		Source: name,
		Period: time.Minute * 2,
		TTL:    time.Hour,
		Locate: provider.locate,
	}
	return provider
}

func (p *Provider) Name() string {
	return name
}

func (p *Provider) LookupStream(ctx context.Context, key string) <-chan geobus.Result {
	return p.poller.LookupStream(ctx, key)
}

func (p *Provider) locate(context.Context) (geobus.Coordinate, error) {
	lat, lon, err := p.readFile()
	if err != nil {
		return geobus.Coordinate{}, err
	}
	return geobus.Coordinate{Lat: lat, Lon: lon, Acc: geobus.AccuracyZip}, nil
}

func (p *Provider) readFile() (lat, lon float64, err error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read geolocation file %q: %w", p.path, err)
	}
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		latStr, lonStr, found := strings.Cut(line, ",")
		if !found {
			continue
		}
		if lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64); err != nil {
			continue
		}
		if lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64); err != nil {
			continue
		}
		coord := geobus.Coordinate{Lat: lat, Lon: lon}
		if !coord.Valid() {
			continue
		}
		return lat, lon, nil
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrNoCoordinates, p.path)
}
