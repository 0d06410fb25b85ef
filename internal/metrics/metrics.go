// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

const namespace = "arith_lexer"

// Collector counts analyzed lines and classified lexemes.
type Collector struct {
	registry *prometheus.Registry

	lexemes  *prometheus.CounterVec
	lines    prometheus.Counter
	duration prometheus.Histogram
}

// NewCollector creates a Collector registered on its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		lexemes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lexemes_total",
			Help:      "Number of classified lexemes by category.",
		}, []string{"category"}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Number of analyzed lines.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent analyzing a source.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	c.registry.MustRegister(c.lexemes, c.lines, c.duration)

	// Expose every category from the start, even before it is first seen.
	for _, category := range lexer.Categories() {
		c.lexemes.WithLabelValues(string(category))
	}
	return c
}

// Observe records one analyzed source.
func (c *Collector) Observe(lines [][]lexer.Record, elapsed time.Duration) {
	c.lines.Add(float64(len(lines)))
	for _, records := range lines {
		for _, r := range records {
			c.lexemes.WithLabelValues(string(r.Category)).Inc()
		}
	}
	c.duration.Observe(elapsed.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
