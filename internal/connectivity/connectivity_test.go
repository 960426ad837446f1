// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package connectivity

import (
	"context"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Satisfied, "satisfied"},
		{Unsatisfied, "unsatisfied"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEdges(t *testing.T) {
	t.Run("duplicates are suppressed", func(t *testing.T) {
		states := newEdges()
		ctx := t.Context()

		states.emit(ctx, Satisfied)
		if got := <-states.out; got != Satisfied {
			t.Errorf("expected %s, got %s", Satisfied, got)
		}
		states.emit(ctx, Satisfied)
		select {
		case got := <-states.out:
			t.Errorf("expected duplicate to be suppressed, got %s", got)
		default:
		}
		states.emit(ctx, Unsatisfied)
		if got := <-states.out; got != Unsatisfied {
			t.Errorf("expected %s, got %s", Unsatisfied, got)
		}
	})
	t.Run("emit gives up on cancelled context", func(t *testing.T) {
		states := newEdges()
		states.emit(t.Context(), Satisfied)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		states.emit(ctx, Unsatisfied)
		<-states.out
		select {
		case got := <-states.out:
			t.Errorf("expected no state, got %s", got)
		default:
		}
	})
	t.Run("emit after close is a no-op", func(t *testing.T) {
		states := newEdges()
		states.close()
		states.close()
		states.emit(t.Context(), Satisfied)
		if _, ok := <-states.out; ok {
			t.Error("expected channel to be closed")
		}
	})
}

func TestRunner(t *testing.T) {
	var r runner
	first := r.start(t.Context())
	second := r.start(t.Context())
	if first.Err() == nil {
		t.Error("expected first context to be cancelled by second start")
	}
	r.Stop()
	if second.Err() == nil {
		t.Error("expected second context to be cancelled by stop")
	}
	r.Stop()
}
