// Package metrics exposes status-change and outbox counters through Prometheus.
package metrics

import (
	"net/http"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tracker"

var _ ports.TransitionMetrics = &TransitionMetrics{}

// TransitionMetrics owns its registry so tests and multiple servers in one
// process never collide on the default one.
type TransitionMetrics struct {
	registry   *prometheus.Registry
	applied    *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	deliveries *prometheus.CounterVec
}

func NewTransitionMetrics() *TransitionMetrics {
	m := &TransitionMetrics{
		registry: prometheus.NewRegistry(),
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Persisted status transitions by target stage and origin.",
		}, []string{"stage", "automatic"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "Refused status changes by reason.",
		}, []string{"reason"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "Notification delivery attempts by outcome.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.applied,
		m.rejected,
		m.deliveries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *TransitionMetrics) TransitionApplied(record component.TransitionRecord) {
	automatic := "false"
	if record.IsAutomatic() {
		automatic = "true"
	}
	m.applied.WithLabelValues(StageLabel(record), automatic).Inc()
}

func (m *TransitionMetrics) TransitionRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *TransitionMetrics) NotificationDelivered(ok bool) {
	result := "error"
	if ok {
		result = "success"
	}
	m.deliveries.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *TransitionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// StageLabel keeps label cardinality bounded: treatment stages collapse to
// TREATMENT_<PHASE> whatever the treatment name.
func StageLabel(record component.TransitionRecord) string {
	to := record.To()
	if to.IsTreatment() {
		return "TREATMENT_" + to.Phase().String()
	}
	return string(to.Stage())
}

// Registry returns the registry the counters live in.
func (m *TransitionMetrics) Registry() *prometheus.Registry {
	return m.registry
}
