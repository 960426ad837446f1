// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weather_tui"

// Metrics holds the Prometheus counters, histograms, and gauges of the weather pipeline.
type Metrics struct {
	registry prometheus.Gatherer

	// Weather API metrics.
	FetchRequests *prometheus.CounterVec   // labels: endpoint={current,forecast}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: endpoint={current,forecast}

	// Coordinator metrics.
	Cycles           *prometheus.CounterVec // labels: outcome={success,failure}
	LocationOutcomes *prometheus.CounterVec // labels: outcome={success,disabled,unavailable}
	ConnectivityEdge *prometheus.CounterVec // labels: state={satisfied,unsatisfied}
	Online           prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the given registry. A nil registry
// selects the default Prometheus registry.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	m := newMetrics()
	m.registry = gatherer
	for _, c := range m.collectors() {
		if err := registerer.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m, err := NewMetrics(prometheus.NewRegistry())
	if err != nil {
		panic(err)
	}
	return m
}

// Handler returns the HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FetchRequests,
		m.FetchDuration,
		m.Cycles,
		m.LocationOutcomes,
		m.ConnectivityEdge,
		m.Online,
	}
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Weather API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Weather API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		Cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cycles_total",
			Help:      "Completed fetch cycles by outcome.",
		}, []string{"outcome"}),
		LocationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_requests_total",
			Help:      "Location requests by outcome.",
		}, []string{"outcome"}),
		ConnectivityEdge: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connectivity_transitions_total",
			Help:      "Observed connectivity transitions by new state.",
		}, []string{"state"}),
		Online: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online",
			Help:      "1 when the network is reachable, 0 otherwise.",
		}),
	}
}
