package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	generations *prometheus.CounterVec
	latency     prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainy_course_generations_total",
				Help: "Course generation requests by outcome",
			},
			[]string{"outcome"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "trainy_course_generation_duration_seconds",
				Help:    "Time spent generating a course",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
		),
	}
	reg.MustRegister(m.generations, m.latency)
	return m
}

// outcome counts one request ending with the given outcome.
func (m *metrics) outcome(name string) {
	m.generations.WithLabelValues(name).Inc()
}
