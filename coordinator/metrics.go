/*
Copyright 2024 Robert Terhaar <robbyt@robbyt.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package coordinator

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "coordinator"

type metrics struct {
	registered prometheus.Gauge
	outcomes   *prometheus.CounterVec
	shutdowns  prometheus.Counter
	duration   prometheus.Histogram
}

// newMetrics builds the collectors and registers them with reg when it is not nil.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "registered_workers",
			Help:      "Number of workers registered with the coordinator.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "worker_outcomes_total",
			Help:      "Joined workers by outcome.",
		}, []string{"outcome"}),
		shutdowns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "shutdowns_total",
			Help:      "Completed shutdown sequences.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "shutdown_duration_seconds",
			Help:      "Time from shutdown start until every worker was joined.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.registered, m.outcomes, m.shutdowns, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observe(r *Report) {
	m.shutdowns.Inc()
	m.duration.Observe(r.Duration.Seconds())
	for _, o := range r.Outcomes {
		if o.OK() {
			m.outcomes.WithLabelValues("success").Inc()
			continue
		}
		m.outcomes.WithLabelValues("failed").Inc()
	}
}
