// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geobus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wneessen/weather-tui/internal/logger"
)

// Orchestrator coordinates the tracking and publication of geolocation results from multiple
// providers through a GeoBus.
type Orchestrator struct {
	Bus       *GeoBus
	Providers []Provider

	// OnError, if set, is called for every failed provider lookup. It is called from the
	// provider goroutines and must not block.
	OnError func(source string, err error)
}

// Track initiates concurrent geolocation tracking for a given key across multiple providers in the Orchestrator.
// It blocks until ctx is done and all providers have returned.
func (o *Orchestrator) Track(ctx context.Context, key string) {
	var wg sync.WaitGroup
	for _, p := range o.Providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			o.trackProvider(ctx, p, key)
		}(p)
	}
	<-ctx.Done()
	wg.Wait()
}

// trackProvider continuously tracks a Provider for geolocation data, publishing results to
// the GeoBus and implementing backoff.
func (o *Orchestrator) trackProvider(ctx context.Context, p Provider, key string) {
	backoff := initialBackoff
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		lookupChan, err := o.safeLookup(ctx, p, key)
		if err != nil {
			o.reportError(p.Name(), err)
			if !sleepOrDone(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

	stream:
		for {
			select {
			case <-ctx.Done():
				return
			case r, ok := <-lookupChan:
				if !ok {
					if !sleepOrDone(ctx, backoff) {
						return
					}
					backoff = nextBackoff(backoff)
					break stream
				}
				if r.Err != nil {
					o.reportError(p.Name(), r.Err)
					continue
				}
				o.Bus.Publish(r)
				backoff = initialBackoff
			}
		}
	}
}

func (o *Orchestrator) reportError(source string, err error) {
	o.Bus.logger.Debug("geolocation provider lookup failed", slog.String("source", source), logger.Err(err))
	if o.OnError != nil {
		o.OnError(source, err)
	}
}

// safeLookup safely invokes the LookupStream method on a Provider and recovers from potential panics.
func (o *Orchestrator) safeLookup(ctx context.Context, provider Provider, key string) (ch <-chan Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			ch, err = nil, fmt.Errorf("provider %s panicked: %v", provider.Name(), r)
		}
	}()
	ch = provider.LookupStream(ctx, key)
	if ch == nil {
		return nil, fmt.Errorf("provider %s returned no result stream", provider.Name())
	}
	return ch, nil
}
