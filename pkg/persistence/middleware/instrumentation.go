package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

type storeMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

type instrumentationMiddleware struct {
	next    ports.SnapshotStore
	metrics *storeMetrics
}

// NewInstrumentationMiddleware records the latency of every store operation in
// rewind_store_operation_duration_seconds{op} and failures in
// rewind_store_errors_total{op}. A missing session is not a failure.
func NewInstrumentationMiddleware(reg prometheus.Registerer) (Middleware, error) {
	metrics := &storeMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rewind_store_operation_duration_seconds",
			Help:    "Latency of snapshot store operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rewind_store_errors_total",
			Help: "Total number of failed snapshot store operations.",
		}, []string{"op"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{metrics.duration, metrics.failures} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &instrumentationMiddleware{next: next, metrics: metrics}
	}, nil
}

func (m *instrumentationMiddleware) observe(op string, start time.Time, err error) {
	m.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		m.metrics.failures.WithLabelValues(op).Inc()
	}
}

func (m *instrumentationMiddleware) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	start := time.Now()
	err := m.next.Save(ctx, sessionID, snap)
	m.observe("save", start, err)
	return err
}

func (m *instrumentationMiddleware) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	start := time.Now()
	snap, err := m.next.Load(ctx, sessionID)
	m.observe("load", start, err)
	return snap, err
}

func (m *instrumentationMiddleware) Delete(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, sessionID)
	m.observe("delete", start, err)
	return err
}

func (m *instrumentationMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
