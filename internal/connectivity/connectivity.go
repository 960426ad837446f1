// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package connectivity observes network reachability and reports its transitions.
package connectivity

import (
	"context"
	"sync"
)

// State is the reachability of the network.
type State int

const (
	Unsatisfied State = iota
	Satisfied
)

func (s State) String() string {
	switch s {
	case Satisfied:
		return "satisfied"
	case Unsatisfied:
		return "unsatisfied"
	default:
		return "unknown"
	}
}

// Monitor reports reachability transitions. Start emits the current state first and afterwards
// only changes. Stop ends the monitor and closes the channel. A stopped Monitor can be started
// again.
type Monitor interface {
	Start(ctx context.Context) <-chan State
	Stop()
}

// edges forwards states to a channel, suppressing repeated states.
type edges struct {
	mu     sync.Mutex
	out    chan State
	last   State
	have   bool
	closed bool
}

func newEdges() *edges {
	return &edges{out: make(chan State, 1)}
}

// emit sends s if it differs from the last sent state. It gives up once ctx is done.
func (e *edges) emit(ctx context.Context, s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || (e.have && e.last == s) {
		return
	}
	select {
	case <-ctx.Done():
		return
	case e.out <- s:
		e.last, e.have = s, true
	}
}

func (e *edges) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.out)
	}
}

// runner keeps the cancel function of the running monitor.
type runner struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// start cancels a running monitor and returns the context for the new one.
func (r *runner) start(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	r.mu.Unlock()
	return ctx
}

func (r *runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
