package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telemetry records request and provider metrics for the assistant.
// A nil *Telemetry is valid and drops every observation, so callers never
// need to guard their instrumentation sites.
type Telemetry struct {
	chatServed      *prometheus.CounterVec
	fallbackTotal   prometheus.Counter
	attemptDuration *prometheus.HistogramVec
	storeOps        *prometheus.CounterVec
}

// New registers the assistant collectors on the default registry.
func New(namespace string) *Telemetry {
	if namespace == "" {
		namespace = "finadvisor"
	}
	return &Telemetry{
		chatServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_responses_total",
			Help:      "Chat responses served, by producing provider.",
		}, []string{"provider"}),
		fallbackTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_fallback_total",
			Help:      "Chat responses that were not produced by the first-choice provider.",
		}),
		attemptDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_attempt_seconds",
			Help:      "Duration of individual provider attempts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "outcome"}),
		storeOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_store_ops_total",
			Help:      "Session store operations, by backend and operation.",
		}, []string{"backend", "op"}),
	}
}

// ChatServed records one served chat response.
func (t *Telemetry) ChatServed(provider string, usedFallback bool) {
	if t == nil {
		return
	}
	t.chatServed.WithLabelValues(provider).Inc()
	if usedFallback {
		t.fallbackTotal.Inc()
	}
}

// ObserveAttempt records one provider attempt with its outcome
// ("ok", "error" or "short").
func (t *Telemetry) ObserveAttempt(provider, outcome string, d time.Duration) {
	if t == nil {
		return
	}
	t.attemptDuration.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

// StoreOp records one session store operation.
func (t *Telemetry) StoreOp(backend, op string) {
	if t == nil {
		return
	}
	t.storeOps.WithLabelValues(backend, op).Inc()
}
