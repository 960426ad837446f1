// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ichnaea

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/wneessen/weather-tui/internal/geobus"
	ihttp "github.com/wneessen/weather-tui/internal/http"
)

const (
	APIEndpoint   = "https://api.beacondb.net/v1/geolocate"
	LookupTimeout = time.Second * 5
	wifiScanTime  = time.Minute * 2
	name          = "ichnaea"
)

var ErrMissingClient = errors.New("http client is required")

// Scanner lists the wireless access points currently in range.
type Scanner interface {
	AccessPoints() ([]WirelessNetwork, error)
}

// Provider resolves the position via an Ichnaea compatible API (beaconDB by default). Nearby
// WiFi access points are sent along with the request, if a Scanner is available.
type Provider struct {
	http     *ihttp.Client
	scanner  Scanner
	endpoint string
	poller   geobus.Poller

	apLock sync.RWMutex
	aps    []WirelessNetwork
}

type APIResult struct {
	Location struct {
		Latitude  float64 `json:"lat"`
		Longitude float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
}

type WirelessNetwork struct {
	LastSeen       int64  `json:"age"`
	MACAddress     string `json:"macAddress"`
	SignalStrength int32  `json:"signalStrength"`
}

// New returns a Provider that scans for access points via nl80211. On systems without WiFi
// support the lookup falls back to the IP address only.
func New(client *ihttp.Client) (*Provider, error) {
	scanner, err := NewWifiScanner()
	if err != nil {
		return NewWithScanner(client, nil)
	}
	return NewWithScanner(client, scanner)
}

// NewWithScanner returns a Provider using the given Scanner. A nil Scanner disables access
// point scanning.
func NewWithScanner(client *ihttp.Client, scanner Scanner) (*Provider, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	provider := &Provider{
		http:     client,
		scanner:  scanner,
		endpoint: APIEndpoint,
	}
	provider.poller = geobus.Poller{
		Source: name,
		Period: time.Minute * 5,
		TTL:    time.Hour,
		Locate: provider.locate,
	}
	return provider, nil
}

func (p *Provider) Name() string {
	return name
}

func (p *Provider) LookupStream(ctx context.Context, key string) <-chan geobus.Result {
	if p.scanner != nil {
		p.scanAccessPoints()
		go p.monitorAccessPoints(ctx)
	}
	return p.poller.LookupStream(ctx, key)
}

func (p *Provider) monitorAccessPoints(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wifiScanTime):
		}
		p.scanAccessPoints()
	}
}

func (p *Provider) scanAccessPoints() {
	list, err := p.scanner.AccessPoints()
	if err != nil {
		return
	}
	p.apLock.Lock()
	p.aps = list
	p.apLock.Unlock()
}

func (p *Provider) accessPoints() []WirelessNetwork {
	p.apLock.RLock()
	defer p.apLock.RUnlock()
	return p.aps
}

func (p *Provider) locate(ctx context.Context) (geobus.Coordinate, error) {
	type request struct {
		ConsiderIP   bool              `json:"considerIp"`
		Accesspoints []WirelessNetwork `json:"wifiAccessPoints,omitempty"`
	}
	req := request{
		ConsiderIP:   true,
		Accesspoints: p.accessPoints(),
	}
	bodyBuffer := bytes.NewBuffer(nil)
	if err := json.NewEncoder(bodyBuffer).Encode(req); err != nil {
		return geobus.Coordinate{}, fmt.Errorf("failed to encode wifi list to JSON: %w", err)
	}

	result := new(APIResult)
	code, err := p.http.PostWithTimeout(ctx, p.endpoint, result, bodyBuffer,
		map[string]string{"Content-Type": "application/json"}, LookupTimeout)
	if err != nil {
		return geobus.Coordinate{}, fmt.Errorf("failed to get geolocation data from API: %w", err)
	}
	if code != http.StatusOK {
		return geobus.Coordinate{}, fmt.Errorf("geolocation API returned unexpected status: %d", code)
	}

	return geobus.Coordinate{
		Lat: geobus.Truncate(result.Location.Latitude, geobus.TruncPrecision),
		Lon: geobus.Truncate(result.Location.Longitude, geobus.TruncPrecision),
		Acc: geobus.Truncate(result.Accuracy, geobus.TruncPrecision),
	}, nil
}
