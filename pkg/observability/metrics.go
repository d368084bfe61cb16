package observability

import (
	"context"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records machine activity as Prometheus collectors.
type Metrics struct {
	transitions   *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	stateEntries  *prometheus.CounterVec
	historyLength prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rewind",
				Name:      "transitions_total",
				Help:      "Total number of completed machine operations, by kind.",
			},
			[]string{"kind"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rewind",
				Name:      "rejections_total",
				Help:      "Total number of operations rejected for an invalid state or transition.",
			},
			[]string{"kind"},
		),
		stateEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rewind",
				Name:      "state_entries_total",
				Help:      "Total number of times a state became current.",
			},
			[]string{"state"},
		),
		historyLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "rewind",
				Name:      "history_length",
				Help:      "History length observed after each operation.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.transitions, m.rejections, m.stateEntries, m.historyLength} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(string(e.Kind)).Inc()
			m.stateEntries.WithLabelValues(e.To).Inc()
			m.historyLength.Observe(float64(e.HistoryLen))
		},
		OnRejected: func(_ context.Context, e *domain.RejectionEvent) {
			m.rejections.WithLabelValues(string(e.Kind)).Inc()
		},
	}
}
