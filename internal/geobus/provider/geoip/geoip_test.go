// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"strings"
	"testing"
	"testing/synctest"

	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/http"
	"github.com/wneessen/weather-tui/internal/logger"
	"github.com/wneessen/weather-tui/internal/testhelper"
)

const (
	testFile        = "../../../../testdata/geoip.json"
	testFileCountry = "../../../../testdata/geoip_country.json"
	testLat         = 40.7185
	testLon         = -74.0025
)

func TestNew(t *testing.T) {
	t.Run("new GeoIP provider succeeds", func(t *testing.T) {
		provider, err := New(http.New(logger.New(slog.LevelInfo)))
		if err != nil {
			t.Fatalf("failed to create GeoIP provider: %s", err)
		}
		if provider.Name() != name {
			t.Errorf("expected provider name to be %s, got %s", name, provider.Name())
		}
	})
	t.Run("GeoIP without http client fails", func(t *testing.T) {
		_, err := New(nil)
		if !errors.Is(err, ErrMissingClient) {
			t.Errorf("expected error to be %s, got %v", ErrMissingClient, err)
		}
	})
}

func TestProvider_locate(t *testing.T) {
	tests := []struct {
		name string
		file string
		lat  float64
		lon  float64
		acc  float64
	}{
		{"zip code accuracy", testFile, testLat, testLon, geobus.AccuracyZip},
		{"country accuracy", testFileCountry, 51.2993, 9.491, geobus.AccuracyCountry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := testProvider(t, testhelper.FileResponse(t, tt.file, stdhttp.StatusOK))
			coord, err := provider.locate(t.Context())
			if err != nil {
				t.Fatalf("failed to locate coordinates via GeoIP: %s", err)
			}
			if coord.Lat != tt.lat {
				t.Errorf("expected latitude to be %f, got %f", tt.lat, coord.Lat)
			}
			if coord.Lon != tt.lon {
				t.Errorf("expected longitude to be %f, got %f", tt.lon, coord.Lon)
			}
			if coord.Acc != tt.acc {
				t.Errorf("expected accuracy to be %f, got %f", tt.acc, coord.Acc)
			}
		})
	}
	t.Run("locate fails with broken JSON", func(t *testing.T) {
		provider := testProvider(t, func(*stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: stdhttp.StatusOK,
				Body:       io.NopCloser(strings.NewReader("NOT_JSON")),
				Header:     make(stdhttp.Header),
			}, nil
		})
		if _, err := provider.locate(t.Context()); err == nil {
			t.Fatal("expected locate to fail")
		}
	})
	t.Run("locate fails on non-200 status", func(t *testing.T) {
		provider := testProvider(t, testhelper.FileResponse(t, testFile, stdhttp.StatusTooManyRequests))
		if _, err := provider.locate(t.Context()); err == nil {
			t.Fatal("expected locate to fail")
		}
	})
}

func TestAPIResult_accuracy(t *testing.T) {
	tests := []struct {
		name   string
		result APIResult
		want   float64
	}{
		{"nothing", APIResult{}, geobus.AccuracyUnknown},
		{"country", APIResult{CountryCode: "DE"}, geobus.AccuracyCountry},
		{"region", APIResult{CountryCode: "DE", RegionCode: "HE"}, geobus.AccuracyRegion},
		{"city", APIResult{CountryCode: "DE", RegionCode: "HE", City: "Kassel"}, geobus.AccuracyCity},
		{"zip", APIResult{CountryCode: "DE", City: "Kassel", ZipCode: "34117"}, geobus.AccuracyZip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.accuracy(); got != tt.want {
				t.Errorf("expected accuracy to be %f, got %f", tt.want, got)
			}
		})
	}
}

func TestProvider_LookupStream(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		provider := testProvider(t, testhelper.FileResponse(t, testFile, stdhttp.StatusOK))
		out := provider.LookupStream(ctx, "test")
		result := <-out
		cancel()
		synctest.Wait()

		if result.Err != nil {
			t.Fatalf("expected result without error, got %s", result.Err)
		}
		if result.Lat != testLat || result.Lon != testLon {
			t.Errorf("expected %f,%f, got %f,%f", testLat, testLon, result.Lat, result.Lon)
		}
		if result.Source != name {
			t.Errorf("expected source to be %s, got %s", name, result.Source)
		}
	})
}

func testProvider(t *testing.T, fn func(*stdhttp.Request) (*stdhttp.Response, error)) *Provider {
	t.Helper()
	client := http.New(logger.New(slog.LevelInfo))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	provider, err := New(client)
	if err != nil {
		t.Fatalf("failed to create GeoIP provider: %s", err)
	}
	return provider
}
