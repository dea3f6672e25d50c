// Package opsmetrics tracks internal pipeline instrumentation — samples
// ingested, parse errors, flush outcomes — using a Prometheus registry,
// and exposes it over HTTP for server mode (SPEC_FULL.md §4.7A). This is
// additive telemetry about the pipeline itself; it is never part of the
// required /health or /metrics JSON bodies from spec §6.
package opsmetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the counters/gauges described in SPEC_FULL.md §4.7A. It
// is safe for concurrent use: every exported method delegates to a
// Prometheus metric, which is itself concurrency-safe.
type Registry struct {
	reg *prometheus.Registry

	samplesIngested prometheus.Counter
	parseErrors     prometheus.Counter
	flushTotal      prometheus.Counter
	flushFailures   prometheus.Counter
	bufferDepth     prometheus.Gauge
	uptime          prometheus.Gauge

	start time.Time
}

// New creates a Registry with its own private Prometheus registry so
// Heartbeat's /internal/metrics never picks up process-wide collectors
// registered by other packages.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg:   reg,
		start: time.Now(),
		samplesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartbeat_samples_ingested_total",
			Help: "Total number of samples successfully decoded and dispatched to the active mode.",
		}),
		parseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartbeat_parse_errors_total",
			Help: "Total number of collector stdout lines rejected by the decoder.",
		}),
		flushTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartbeat_flush_total",
			Help: "Total number of successful server-mode buffer flushes to disk.",
		}),
		flushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartbeat_flush_failures_total",
			Help: "Total number of server-mode flush attempts that failed.",
		}),
		bufferDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heartbeat_buffer_depth",
			Help: "Current number of samples buffered awaiting the next flush.",
		}),
		uptime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heartbeat_uptime_seconds",
			Help: "Seconds since this Heartbeat process started.",
		}),
	}
	reg.MustRegister(r.samplesIngested, r.parseErrors, r.flushTotal, r.flushFailures, r.bufferDepth, r.uptime)
	return r
}

// ObserveSample records one successfully decoded sample.
func (r *Registry) ObserveSample() { r.samplesIngested.Inc() }

// ObserveParseError records one rejected collector line.
func (r *Registry) ObserveParseError() { r.parseErrors.Inc() }

// ObserveFlush records a flush outcome and the resulting buffer depth.
func (r *Registry) ObserveFlush(ok bool, remainingDepth int) {
	if ok {
		r.flushTotal.Inc()
	} else {
		r.flushFailures.Inc()
	}
	r.bufferDepth.Set(float64(remainingDepth))
}

// SetBufferDepth updates the current buffer depth gauge outside of a flush
// (e.g. immediately after an append).
func (r *Registry) SetBufferDepth(n int) { r.bufferDepth.Set(float64(n)) }

// Handler returns the Prometheus exposition HTTP handler for this registry.
// The uptime gauge is refreshed on every request it serves.
func (r *Registry) Handler() http.Handler {
	h := promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.uptime.Set(time.Since(r.start).Seconds())
		h.ServeHTTP(w, req)
	})
}
