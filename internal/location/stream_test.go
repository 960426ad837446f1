// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/logger"
)

type geoProviderMock struct {
	name    string
	results []geobus.Result
}

func (p geoProviderMock) Name() string { return p.name }

func (p geoProviderMock) LookupStream(ctx context.Context, key string) <-chan geobus.Result {
	out := make(chan geobus.Result)
	go func() {
		defer close(out)
		for _, r := range p.results {
			r.Key = key
			r.Source = p.name
			select {
			case <-ctx.Done():
				return
			case out <- r:
			}
		}
		<-ctx.Done()
	}()
	return out
}

func TestGeoBusStream_Start(t *testing.T) {
	t.Run("coordinates and errors are forwarded", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		failing := geoProviderMock{name: "failing", results: []geobus.Result{{Err: errors.New("lookup failed")}}}
		working := geoProviderMock{name: "working", results: []geobus.Result{
			{Lat: 51.5, Lon: -0.12, AccuracyMeters: geobus.AccuracyCity, At: time.Now(), TTL: time.Hour},
		}}
		stream, err := NewGeoBusStream(logger.New(slog.LevelDebug), failing, working)
		if err != nil {
			t.Fatalf("failed to create geobus stream: %s", err)
		}
		coords, errs := stream.Start(ctx)

		select {
		case coord := <-coords:
			if coord.Lat != 51.5 || coord.Lon != -0.12 || coord.Acc != geobus.AccuracyCity {
				t.Errorf("unexpected coordinate: %+v", coord)
			}
		case <-time.After(testTimeout):
			t.Fatal("timed out waiting for coordinate")
		}
		select {
		case err := <-errs:
			if err == nil {
				t.Error("expected forwarded error to be non-nil")
			}
		case <-time.After(testTimeout):
			t.Fatal("timed out waiting for error")
		}

		cancel()
		select {
		case _, ok := <-coords:
			for ok {
				_, ok = <-coords
			}
		case <-time.After(testTimeout):
			t.Fatal("expected coordinate channel to be closed")
		}
	})
	t.Run("no providers closes the stream", func(t *testing.T) {
		stream, err := NewGeoBusStream(logger.New(slog.LevelDebug))
		if err != nil {
			t.Fatalf("failed to create geobus stream: %s", err)
		}
		coords, _ := stream.Start(t.Context())
		if _, ok := <-coords; ok {
			t.Error("expected coordinate channel to be closed")
		}
	})
}
