package observability

import (
	"context"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records check outcomes in Prometheus collectors.
type Metrics struct {
	Checks   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Steps    *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acceptor_checks_total",
				Help: "Total number of checks by verdict",
			},
			[]string{"machine", "kind", "verdict"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "acceptor_check_duration_seconds",
				Help:    "Duration of checks",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"machine", "kind"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "acceptor_check_steps",
				Help:    "Configurations explored per check",
				Buckets: prometheus.ExponentialBuckets(1, 4, 12),
			},
			[]string{"kind"},
		),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "acceptor_checks_in_flight",
			Help: "Checks currently running",
		}),
	}
	for _, c := range []prometheus.Collector{m.Checks, m.Duration, m.Steps, m.InFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCheckStart: func(_ context.Context, ev *domain.CheckEvent) {
			m.InFlight.Inc()
		},
		OnCheckEnd: func(_ context.Context, ev *domain.CheckEvent) {
			m.InFlight.Dec()
			if ev.Outcome == nil {
				return
			}
			m.Checks.WithLabelValues(ev.Machine, ev.Kind, string(ev.Outcome.Verdict)).Inc()
			m.Duration.WithLabelValues(ev.Machine, ev.Kind).Observe(ev.Outcome.Duration.Seconds())
			m.Steps.WithLabelValues(ev.Kind).Observe(float64(ev.Outcome.Steps))
		},
	}
}
