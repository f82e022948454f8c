// Package metrics exposes Prometheus collectors for the LogFlow server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/logflow/internal/automation"
	"github.com/mmynk/logflow/internal/cleaning"
)

const namespace = "logflow"

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec

	automationTransitions *prometheus.CounterVec
	automationJobs        *prometheus.GaugeVec

	ruleReloads *prometheus.CounterVec
	cleanedRows *prometheus.CounterVec
}

// New creates and registers every collector, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Connect RPCs handled, by procedure and code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		automationTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "automation_transitions_total",
			Help:      "Automation state transitions, by resulting phase.",
		}, []string{"phase"}),
		automationJobs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "automation_jobs",
			Help:      "Automation jobs currently in each phase.",
		}, []string{"phase"}),
		ruleReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleaning_rule_reloads_total",
			Help:      "Cleaning rule file reloads, by result.",
		}, []string{"result"}),
		cleanedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleaning_items_total",
			Help:      "Items processed by cleaning passes, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.automationTransitions,
		m.automationJobs,
		m.ruleReloads,
		m.cleanedRows,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// AutomationObserver returns a tracker observer that counts transitions and
// keeps the per-phase job gauge current.
func (m *Metrics) AutomationObserver() automation.Observer {
	return func(_ automation.Job, rec automation.Record) {
		if rec.Event != automation.EventCreated {
			m.automationTransitions.WithLabelValues(string(rec.To.Phase)).Inc()
		}
		if rec.From.Phase == rec.To.Phase {
			return
		}
		if rec.From.Phase != "" {
			m.automationJobs.WithLabelValues(string(rec.From.Phase)).Dec()
		}
		m.automationJobs.WithLabelValues(string(rec.To.Phase)).Inc()
	}
}

// ObserveReload records the outcome of a rules reload.
func (m *Metrics) ObserveReload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ruleReloads.WithLabelValues(result).Inc()
}

// ObserveCleaning records the outcome counts of a cleaning pass.
func (m *Metrics) ObserveCleaning(res cleaning.Result) {
	m.cleanedRows.WithLabelValues("kept").Add(float64(res.CleanedCount))
	m.cleanedRows.WithLabelValues("removed").Add(float64(res.RemovedCount))
	m.cleanedRows.WithLabelValues("warning").Add(float64(len(res.Warnings)))
}
