// Package metrics exposes submission measurements in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/accai/internal/orchestration"
)

// Namespace prefixes every metric name.
const Namespace = "accai"

// Metrics records submissions, per-target outcomes and HTTP requests in a
// private registry. It implements orchestration.MetricsRecorder.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	submissions    *prometheus.CounterVec
	submissionTime prometheus.Histogram
	inFlight       prometheus.Gauge
	targetResults  *prometheus.CounterVec
	targetTime     *prometheus.HistogramVec
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
}

var _ orchestration.MetricsRecorder = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them, together with the Go
// runtime and process collectors, in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "submissions_total",
			Help:      "Finished submissions by final status.",
		}, []string{"status"}),
		submissionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "submission_duration_seconds",
			Help:      "Wall time of finished submissions.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "submissions_in_flight",
			Help:      "Submissions currently running.",
		}),
		targetResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "target_results_total",
			Help:      "Per-target generation outcomes.",
		}, []string{"target", "outcome"}),
		targetTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "target_duration_seconds",
			Help:      "Wall time of each target generation.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"target"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "Served HTTP requests by path and status code.",
		}, []string{"path", "code"}),
	}
	reg.MustRegister(
		m.submissions,
		m.submissionTime,
		m.inFlight,
		m.targetResults,
		m.targetTime,
		m.activeRequests,
		m.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler { return m.handler }

// WritePrometheus writes the current metrics in the exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// SubmissionStarted increments the in-flight gauge.
func (m *Metrics) SubmissionStarted() {
	m.inFlight.Inc()
}

// SubmissionFinished records the outcome and duration of a submission.
func (m *Metrics) SubmissionFinished(status orchestration.Status, d time.Duration) {
	m.inFlight.Dec()
	m.submissions.WithLabelValues(status.String()).Inc()
	m.submissionTime.Observe(d.Seconds())
}

// TargetFinished records the outcome and duration of one target.
func (m *Metrics) TargetFinished(target string, ok bool, d time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.targetResults.WithLabelValues(target, outcome).Inc()
	m.targetTime.WithLabelValues(target).Observe(d.Seconds())
}

// IncrementActiveRequests marks the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of an HTTP request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest counts a served HTTP request.
func (m *Metrics) ObserveRequest(path string, code int) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}
