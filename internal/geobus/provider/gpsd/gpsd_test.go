// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package gpsd

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/wneessen/weather-tui/internal/geobus"
)

func TestNew(t *testing.T) {
	t.Run("empty address falls back to default", func(t *testing.T) {
		provider := New("")
		if provider.addr != DefaultAddr {
			t.Errorf("expected address to be %s, got %s", DefaultAddr, provider.addr)
		}
		if provider.Name() != name {
			t.Errorf("expected provider name to be %s, got %s", name, provider.Name())
		}
	})
	t.Run("custom address is kept", func(t *testing.T) {
		provider := New("gps.local:2947")
		if provider.addr != "gps.local:2947" {
			t.Errorf("expected address to be %s, got %s", "gps.local:2947", provider.addr)
		}
	})
}

func TestFix_Accuracy(t *testing.T) {
	tests := []struct {
		name string
		fix  Fix
		want float64
	}{
		{"error estimates", Fix{Epx: 3, Epy: 4, Mode: mode3D}, 5},
		{"3D fallback", Fix{Mode: mode3D}, fallbackAccuracy3DFix},
		{"2D fallback", Fix{Mode: mode2D}, fallbackAccuracy2DFix},
		{"no fix", Fix{Mode: 1}, fallbackAccuracyNoFix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fix.Accuracy(); got != tt.want {
				t.Errorf("expected accuracy to be %f, got %f", tt.want, got)
			}
		})
	}
}

func TestProvider_LookupStream(t *testing.T) {
	t.Run("connection failure is reported and followed by a fix", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			runCount := 0
			provider := New("")
			provider.period = time.Millisecond * 10
			provider.watchFn = func(ctx context.Context, _ string, onFix func(Fix)) error {
				runCount++
				if runCount == 1 {
					return errors.New("intentionally failing")
				}
				onFix(Fix{Lat: 1, Lon: 2, Mode: 1})
				onFix(Fix{Lat: 1, Lon: 2, Epx: 3, Epy: 4, Mode: mode3D})
				onFix(Fix{Lat: 1, Lon: 2, Epx: 3, Epy: 4, Mode: mode3D})
				<-ctx.Done()
				return ctx.Err()
			}

			out := provider.LookupStream(ctx, "test")
			first := <-out
			if first.Err == nil {
				t.Fatal("expected first result to carry the connection error")
			}
			second := <-out
			if second.Err != nil {
				t.Fatalf("expected second result to succeed, got %s", second.Err)
			}
			if second.Lat != 1 || second.Lon != 2 || second.AccuracyMeters != 5 {
				t.Errorf("unexpected result: %+v", second)
			}
			if second.Source != name {
				t.Errorf("expected source to be %s, got %s", name, second.Source)
			}

			synctest.Wait()
			select {
			case r := <-out:
				t.Errorf("expected duplicate fix to be suppressed, got %+v", r)
			default:
			}
			cancel()
			synctest.Wait()
			if _, ok := <-out; ok {
				t.Error("expected stream to be closed")
			}
		})
	})
	t.Run("ended session is reported", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			provider := New("")
			provider.watchFn = func(context.Context, string, func(Fix)) error { return nil }
			out := provider.LookupStream(ctx, "test")
			result := <-out
			if result.Err == nil {
				t.Error("expected ended session to be reported as error")
			}
			cancel()
			synctest.Wait()
		})
	})
}

func TestProvider_createResult(t *testing.T) {
	provider := New("")
	result := provider.createResult("test", geobus.Coordinate{Lat: 1, Lon: 2, Acc: geobus.AccuracyCity})
	if result.Key != "test" || result.Source != name {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.TTL != provider.ttl {
		t.Errorf("expected TTL to be %s, got %s", provider.ttl, result.TTL)
	}
}
