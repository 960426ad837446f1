// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package gpsd

import (
	"context"
	"fmt"
	"time"

	"github.com/stratoberry/go-gpsd"

	"github.com/wneessen/weather-tui/internal/geobus"
)

const (
	DefaultAddr = "localhost:2947"
	name        = "gpsd"
)

// WatchFunc connects to the gpsd at addr and calls onFix for every position report until the
// session ends or ctx is done.
type WatchFunc func(ctx context.Context, addr string, onFix func(Fix)) error

// Provider streams positions from a local gpsd. If the daemon is not reachable or the session
// ends, the error is reported on the stream and the provider reconnects after period.
type Provider struct {
	addr    string
	period  time.Duration
	ttl     time.Duration
	watchFn WatchFunc
}

func New(addr string) *Provider {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Provider{
		addr:    addr,
		period:  time.Second * 30,
		ttl:     time.Minute * 2,
		watchFn: watch,
	}
}

func (p *Provider) Name() string {
	return name
}

func (p *Provider) LookupStream(ctx context.Context, key string) <-chan geobus.Result {
	out := make(chan geobus.Result)

	go func() {
		defer close(out)
		state := geobus.GeolocationState{}
		send := func(r geobus.Result) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- r:
				return true
			}
		}

		for {
			err := p.watchFn(ctx, p.addr, func(fix Fix) {
				if !fix.Has2DFix() {
					return
				}
				coord := geobus.Coordinate{
					Lat: geobus.Truncate(fix.Lat, geobus.TruncPrecision),
					Lon: geobus.Truncate(fix.Lon, geobus.TruncPrecision),
					Acc: geobus.Truncate(fix.Accuracy(), geobus.TruncPrecision),
				}
				if !state.HasChanged(coord) {
					return
				}
				state.Update(coord)
				send(p.createResult(key, coord))
			})
			if ctx.Err() != nil {
				return
			}
			if err == nil {
				err = fmt.Errorf("gpsd session at %q ended", p.addr)
			}
			if !send(geobus.Result{Key: key, Source: name, At: time.Now(), Err: err}) {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(p.period):
			}
		}
	}()

	return out
}

func (p *Provider) createResult(key string, coord geobus.Coordinate) geobus.Result {
	return geobus.Result{
		Key:            key,
		Lat:            coord.Lat,
		Lon:            coord.Lon,
		AccuracyMeters: coord.Acc,
		Source:         name,
		At:             time.Now(),
		TTL:            p.ttl,
	}
}

// watch is the WatchFunc backed by go-gpsd. The library offers no way to close a session, so
// on cancellation the connection is left to the process teardown.
func watch(ctx context.Context, addr string, onFix func(Fix)) error {
	session, err := gpsd.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to gpsd at %q: %w", addr, err)
	}
	session.AddFilter("TPV", func(r interface{}) {
		tpv, ok := r.(*gpsd.TPVReport)
		if !ok {
			return
		}
		onFix(Fix{
			Lat:  tpv.Lat,
			Lon:  tpv.Lon,
			Alt:  tpv.Alt,
			Epx:  tpv.Epx,
			Epy:  tpv.Epy,
			Mode: int(tpv.Mode),
		})
	})

	done := session.Watch()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
