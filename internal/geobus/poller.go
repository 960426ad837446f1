// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geobus

import (
	"context"
	"time"
)

// Poller implements the lookup stream for providers that determine the position on demand.
// It calls Locate once right away and then every Period. A Result is emitted for every
// positional change and for every failed lookup.
type Poller struct {
	Source string
	Period time.Duration
	TTL    time.Duration
	Locate func(ctx context.Context) (Coordinate, error)
}

// LookupStream starts polling and returns the result stream. The stream is closed once ctx is done.
func (p Poller) LookupStream(ctx context.Context, key string) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		state := GeolocationState{}
		firstRun := true

		for {
			if !firstRun {
				select {
				case <-ctx.Done():
					return
				case <-time.After(p.Period):
				}
			}
			firstRun = false

			coord, err := p.Locate(ctx)
			if err != nil {
				if !p.emit(ctx, out, Result{Key: key, Source: p.Source, At: time.Now(), Err: err}) {
					return
				}
				continue
			}

			// Only emit if values changed or it's the first read
			if !state.HasChanged(coord) {
				continue
			}
			state.Update(coord)
			if !p.emit(ctx, out, p.NewResult(key, coord)) {
				return
			}
		}
	}()
	return out
}

// NewResult composes a Result for the given coordinate.
func (p Poller) NewResult(key string, coord Coordinate) Result {
	return Result{
		Key:            key,
		Lat:            coord.Lat,
		Lon:            coord.Lon,
		AccuracyMeters: coord.Acc,
		Source:         p.Source,
		At:             time.Now(),
		TTL:            p.TTL,
	}
}

func (p Poller) emit(ctx context.Context, out chan<- Result, r Result) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- r:
		return true
	}
}
