// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package webmachine

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and histograms a Dispatcher reports against
// every dispatched request. The zero value is not usable; build one with
// NewMetrics and register it with a prometheus.Registerer.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	decisionSteps   *prometheus.HistogramVec
}

// NewMetrics builds a Metrics instance under the given namespace (e.g.
// "webmachine") but does not register it anywhere.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests dispatched to a resource, by route and final status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent running the decision graph and finalizer for a request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		decisionSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decision_steps",
			Help:      "Number of decision-graph transitions taken to reach a terminal state.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 100},
		}, []string{"route"}),
	}
}

// MustRegister registers every collector in m with reg, panicking on a
// duplicate registration — intended for use at startup only.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.decisionSteps)
}

func (m *Metrics) observe(route string, status int, steps int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
	m.decisionSteps.WithLabelValues(route).Observe(float64(steps))
}
