package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service collectors behind one scrape endpoint.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	AuditPublished prometheus.Counter
	AuditParked    prometheus.Counter

	OutboxPending  prometheus.Gauge
	OutboxReplayed prometheus.Counter
	OutboxRetried  prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	auditPublished := prometheus.NewCounter(prometheus.CounterOpts{Name: "admin_audit_published_total"})
	auditParked := prometheus.NewCounter(prometheus.CounterOpts{Name: "admin_audit_parked_total"})

	outboxPending := prometheus.NewGauge(prometheus.GaugeOpts{Name: "admin_outbox_pending"})
	outboxReplayed := prometheus.NewCounter(prometheus.CounterOpts{Name: "admin_outbox_replayed_total"})
	outboxRetried := prometheus.NewCounter(prometheus.CounterOpts{Name: "admin_outbox_retried_total"})

	r.MustRegister(
		httpRequests, httpDuration,
		auditPublished, auditParked,
		outboxPending, outboxReplayed, outboxRetried,
		collectors.NewGoCollector(),
	)

	return &Registry{
		reg:            r,
		HTTPRequests:   httpRequests,
		HTTPDuration:   httpDuration,
		AuditPublished: auditPublished,
		AuditParked:    auditParked,
		OutboxPending:  outboxPending,
		OutboxReplayed: outboxReplayed,
		OutboxRetried:  outboxRetried,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
