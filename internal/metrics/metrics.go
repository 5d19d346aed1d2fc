// Package metrics exposes prometheus collectors for calculation requests.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mediation_calc"

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Engine labels.
const (
	EngineInvoice  = "invoice"
	EngineDeadline = "deadline"
)

// Recorder counts calculations and HTTP requests on its own registry.
type Recorder struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	options      *prometheus.CounterVec
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Calculations performed, by engine and outcome.",
		}, []string{"engine", "outcome"}),
		options: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_options_total",
			Help:      "Invoice breakdowns computed, by tax treatment option.",
		}, []string{"option"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests, by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	r.registry.MustRegister(
		r.calculations,
		r.options,
		r.requests,
		r.duration,
		collectors.NewGoCollector(),
	)
	return r
}

// Calculation records one engine call.
func (r *Recorder) Calculation(engine string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.calculations.WithLabelValues(engine, outcome).Inc()
}

// Option records a breakdown computed under option code.
func (r *Recorder) Option(code int) {
	r.options.WithLabelValues(strconv.Itoa(code)).Inc()
}

// Request records a finished HTTP request.
func (r *Recorder) Request(route string, status int, seconds float64) {
	r.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(route).Observe(seconds)
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
