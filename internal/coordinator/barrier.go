// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package coordinator

import (
	"fmt"

	"github.com/wneessen/weather-tui/internal/weather"
)

type joinResult int

const (
	joinPending joinResult = iota
	joinFailed
	joinComplete
)

// barrier joins the two fetches of one cycle. The first failure completes the barrier, any
// result after completion is ignored.
type barrier struct {
	cycle    uint64
	current  *weather.Current
	forecast *weather.Forecast
	failed   bool
	done     bool
}

func newBarrier(cycle uint64) *barrier {
	return &barrier{cycle: cycle}
}

// deliver stores the result of an endpoint and reports whether the barrier completed with it.
func (b *barrier) deliver(endpoint weather.Endpoint, payload any, err error) (joinResult, error) {
	if b.done {
		return joinPending, nil
	}
	if err == nil {
		err = b.store(endpoint, payload)
	}
	if err != nil {
		b.failed, b.done = true, true
		return joinFailed, err
	}
	if b.current != nil && b.forecast != nil {
		b.done = true
		return joinComplete, nil
	}
	return joinPending, nil
}

func (b *barrier) store(endpoint weather.Endpoint, payload any) error {
	switch p := payload.(type) {
	case *weather.Current:
		if endpoint == weather.EndpointCurrent && p != nil && len(p.Daily) > 0 {
			b.current = p
			return nil
		}
	case *weather.Forecast:
		if endpoint == weather.EndpointForecast && p != nil {
			b.forecast = p
			return nil
		}
	}
	return fmt.Errorf("%w: unexpected payload %T for %s", weather.ErrFetchFailed, payload, endpoint)
}
