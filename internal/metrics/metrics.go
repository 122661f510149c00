// Package metrics exports Prometheus collectors for profile generation and
// sync score storage.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sync_engine"

// Store operation labels.
const (
	OpLoadChart   = "load_chart"
	OpLoadPersons = "load_persons"
	OpSaveScore   = "save_score"
	OpGetScore    = "get_score"
)

// Recorder records service metrics. A nil Recorder is a no-op.
type Recorder struct {
	profiles      *prometheus.CounterVec
	scores        prometheus.Histogram
	storeDuration *prometheus.HistogramVec
	storeErrors   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg, reusing collectors
// that are already registered. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	profiles, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_generated_total",
		Help:      "Connection profiles generated, by dominant theme and archetype.",
	}, []string{"theme", "archetype"}))
	if err != nil {
		return nil, err
	}

	scores, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "profile_score",
		Help:      "Distribution of generated compatibility scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	}))
	if err != nil {
		return nil, err
	}

	storeDuration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Latency of database operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	storeErrors, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operation_errors_total",
		Help:      "Failed database operations.",
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	return &Recorder{
		profiles:      profiles,
		scores:        scores,
		storeDuration: storeDuration,
		storeErrors:   storeErrors,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

// ObserveProfile counts a generated profile and records its score.
func (r *Recorder) ObserveProfile(p synastry.ConnectionProfile) {
	if r == nil {
		return
	}
	r.profiles.WithLabelValues(string(p.DominantTheme.Name), string(p.Archetype.ID)).Inc()
	r.scores.Observe(float64(p.Score))
}

// ObserveStore records the latency and outcome of one store operation.
func (r *Recorder) ObserveStore(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.storeDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		r.storeErrors.WithLabelValues(op).Inc()
	}
}
